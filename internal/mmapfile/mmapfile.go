// Package mmapfile memory-maps the input file for zero-copy ingest.
//
// The mapped slice is widened past the file's logical end into the
// zero-filled tail of the mapping's final page, so the scanner's fixed
// window lookahead and the decoder's 8-byte load never need a bounds
// check. When the file size leaves no such tail room in its final page,
// Open falls back to reading the file into an ordinary padded buffer.
package mmapfile

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// TailPadding is the number of extra bytes every File guarantees are
// readable past the logical end of the input: one full scanner window, so
// the final window refill and the decoder's fixed 8-byte load never need
// a bounds check. The kernel zero-fills the tail of a mapping's last
// file-backed page, which covers this whenever the file size leaves at
// least TailPadding bytes of room in that page; when it doesn't, Open
// falls back to reading the file into an ordinary padded buffer.
const TailPadding = 64

// File is a view of the input file: a memory mapping when the file's size
// leaves tail-padding room in its final page, a heap buffer otherwise.
type File struct {
	data []byte // size+TailPadding readable bytes
	size int    // the real file size
	raw  []byte // the slice syscall.Mmap returned, kept for Munmap; nil if unmapped
}

// Open opens path read-only. If hugepages is true, it asks the kernel for
// a MAP_HUGETLB mapping and silently falls back to a normal mapping if the
// system has no hugepage pool configured; the hint is advisory, never a
// hard requirement.
func Open(path string, hugepages bool) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmapfile: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("mmapfile: %w", err)
	}
	size := int(info.Size())
	if size == 0 {
		return &File{data: make([]byte, TailPadding), size: 0}, nil
	}

	pageSize := os.Getpagesize()
	tailRoom := 0
	if rem := size % pageSize; rem != 0 {
		tailRoom = pageSize - rem
	}
	if tailRoom < TailPadding {
		// The padding would spill into pages past EOF, which fault on
		// access instead of reading as zero. Rare (the file size has
		// to land within TailPadding bytes of a page boundary); fall
		// back to an ordinary padded read.
		data := make([]byte, size+TailPadding)
		if _, err := io.ReadFull(f, data[:size]); err != nil {
			return nil, fmt.Errorf("mmapfile: read %s: %w", path, err)
		}
		return &File{data: data, size: size}, nil
	}

	flags := syscall.MAP_SHARED
	if hugepages {
		flags |= unix.MAP_HUGETLB
	}

	data, raw, err := mmap(int(f.Fd()), size, flags)
	if err != nil && hugepages {
		data, raw, err = mmap(int(f.Fd()), size, syscall.MAP_SHARED)
	}
	if err != nil {
		return nil, fmt.Errorf("mmapfile: mmap %s: %w", path, err)
	}

	return &File{data: data, size: size, raw: raw}, nil
}

// mmap maps sz bytes of fd and widens the returned view to cover
// TailPadding bytes of the zero-filled remainder of the mapping's final
// page; the caller has already checked that room exists. The unwidened
// slice is returned alongside, since syscall.Munmap identifies a mapping
// by the exact slice Mmap handed out.
func mmap(fd int, sz int, flags int) (view, raw []byte, err error) {
	raw, err = syscall.Mmap(fd, 0, sz, syscall.PROT_READ, flags)
	if err != nil {
		return nil, nil, err
	}
	bh := (*reflect.SliceHeader)(unsafe.Pointer(&raw))
	vh := (*reflect.SliceHeader)(unsafe.Pointer(&view))
	vh.Data = bh.Data
	vh.Len = sz + TailPadding
	vh.Cap = vh.Len
	return view, raw, nil
}

// Bytes returns the logical file contents. The returned slice's capacity
// extends TailPadding bytes past its length, so resliced reads into the
// padding stay inside readable memory.
func (f *File) Bytes() []byte {
	return f.data[:f.size]
}

// Close unmaps the file, if it was mapped.
func (f *File) Close() error {
	if f.raw == nil {
		return nil
	}
	if err := syscall.Munmap(f.raw); err != nil {
		return fmt.Errorf("mmapfile: munmap: %w", err)
	}
	f.raw = nil
	return nil
}
