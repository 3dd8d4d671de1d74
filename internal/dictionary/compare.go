package dictionary

import "encoding/binary"

// equalBytes compares a and b eight bytes at a time, the same
// SWAR-flavored word comparison internal/bitscan uses for delimiter
// detection, falling back to a byte loop for the remainder. Both a and b
// are always exactly len(a) bytes of real, already-length-matched data
// (the caller checks lengths first), so no page-safety fallback is needed
// here the way it is for the 16-byte hash seed load.
func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	n := len(a)
	i := 0
	for ; i+8 <= n; i += 8 {
		if binary.LittleEndian.Uint64(a[i:i+8:i+8]) != binary.LittleEndian.Uint64(b[i:i+8:i+8]) {
			return false
		}
	}
	for ; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
