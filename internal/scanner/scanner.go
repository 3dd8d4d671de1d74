// Package scanner implements the byte-level line scanner: given a
// contiguous shard of the input buffer, it yields each line's station-name
// slice and the absolute offset of its temperature reading.
//
// Separator and newline positions come from two bitmasks computed once per
// 64-byte window and walked with bits.TrailingZeros64, so the hot loop
// never rescans bytes it has already classified. The window is refilled
// lazily, only when both masks run out of bits at or after the current
// offset.
package scanner

import (
	"math/bits"

	"github.com/onebrc/stationstats/internal/bitscan"
)

// Scanner walks one shard of the file buffer, emitting (name, tempOffset)
// pairs in file order. It never reads outside [start, end) except for a
// bounded tail lookahead — callers must guarantee at least
// bitscan.WindowSize bytes are readable past the last byte of the shard.
type Scanner struct {
	data   []byte
	end    int
	base   int // absolute start of the currently loaded window
	offset int // next search position, relative to base, in [0, WindowSize)
	scMask uint64
	nlMask uint64
}

// New creates a scanner over data[start:end]. start must be 0 or the byte
// after a '\n'; likewise end. data must have at least bitscan.WindowSize
// bytes readable starting at start (and, in general, past end up to the
// final window load).
func New(data []byte, start, end int) *Scanner {
	s := &Scanner{data: data, end: end, base: start}
	s.scMask, s.nlMask = bitscan.ComputeMasks(data[start : start+bitscan.WindowSize])
	return s
}

// refill slides the window forward by exactly one WindowSize and recomputes
// both masks from a single pass over the new window. Both masks must always
// describe the same window, so they are never recomputed independently.
func (s *Scanner) refill() {
	s.base += bitscan.WindowSize
	s.offset = 0
	s.scMask, s.nlMask = bitscan.ComputeMasks(s.data[s.base : s.base+bitscan.WindowSize])
}

// findAtOrAfter returns the absolute position of the lowest set bit in
// *mask at or after the scanner's current offset, refilling the window as
// many times as necessary. Both masks always describe the window based at
// s.base, so a refill mid-search simply restarts the hunt in fresh bits.
func (s *Scanner) findAtOrAfter(mask *uint64) int {
	for {
		m := *mask
		if s.offset > 0 {
			m &^= (uint64(1) << uint(s.offset)) - 1
		}
		if m != 0 {
			return s.base + bits.TrailingZeros64(m)
		}
		s.refill()
	}
}

// Next returns the next line's station-name slice and the absolute offset
// of its temperature reading, or ok=false when the shard is exhausted.
func (s *Scanner) Next() (name []byte, tempOffset int, ok bool) {
	if s.base+s.offset >= s.end {
		return nil, 0, false
	}

	lineStart := s.base + s.offset

	sepAbs := s.findAtOrAfter(&s.scMask)
	s.scMask &^= uint64(1) << uint(sepAbs-s.base)

	if sepAbs-s.base+1 >= bitscan.WindowSize {
		s.refill()
	} else {
		s.offset = sepAbs - s.base + 1
	}

	nlAbs := s.findAtOrAfter(&s.nlMask)
	s.nlMask &^= uint64(1) << uint(nlAbs-s.base)
	s.offset = nlAbs - s.base + 1
	if s.offset >= bitscan.WindowSize {
		s.refill()
	}

	return s.data[lineStart:sepAbs], sepAbs + 1, true
}
