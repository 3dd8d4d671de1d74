//go:build amd64

package bitscan

import "golang.org/x/sys/cpu"

var (
	useAVX2  = cpu.X86.HasAVX2
	useSSE42 = cpu.X86.HasSSE42
)

// HasAVX2 reports whether the running CPU advertises AVX2 support.
func HasAVX2() bool {
	return useAVX2
}

// HasSSE42 reports whether the running CPU advertises SSE4.2 support.
func HasSSE42() bool {
	return useSSE42
}
