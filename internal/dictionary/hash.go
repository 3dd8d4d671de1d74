// Package dictionary implements the station-name dictionary: a fixed-size,
// open-addressed hash table that maps a station name to a stable slot
// index, shared (lock-free) across workers or private to a single one.
//
// Shared slots are published through a 3-state tag held in the slot's
// length field: empty, initializing (a worker is mid-copy of the name
// bytes), and initialized (the length itself). Claiming is a single
// compare-and-swap; publication is a release store of the length, so
// readers that observe it may compare the name without further
// synchronization.
package dictionary

import (
	"encoding/binary"
	"math/bits"
)

// MaxNameLen and MinNameLen bound a station name per the grammar.
const (
	MinNameLen = 2
	MaxNameLen = 50
)

// hashMagic is a sparse 64-bit multiplier (4 bits set) chosen offline for
// even distribution after the shift; sparse multipliers are cheap for a
// scalar multiplier-shift hash and keep the hot path to one multiply.
const hashMagic uint64 = (1 << 63) | (1 << 41) | (1 << 17) | (1 << 3)

// hashShift discards the low, low-quality bits of the product before the
// caller masks down to the table's capacity.
const hashShift = 24

// lenMixConst folds the name length into the hash so names that are a
// prefix of one another (e.g. "Riga" vs. "Rigaa") do not collide before
// the multiply-shift stage gets a chance to separate them.
const lenMixConst uint64 = 0x9E3779B97F4A7C15

// lenMasks[l] is a 16-byte mask whose first min(l,16) bytes are 0xFF and
// the rest are zero, used to blank out bytes read past a short name's end
// during the 16-byte seed load.
var lenMasks [MaxNameLen + 1][16]byte

func init() {
	for l := range lenMasks {
		for i := 0; i < 16 && i < l; i++ {
			lenMasks[l][i] = 0xFF
		}
	}
}

// load16 reads up to the first 16 bytes of name into a zero-padded array.
// If name's backing array doesn't actually have 16 bytes available from
// its start (because it is the last few bytes of the mapped file), it
// falls back to copying only the real bytes — the slice capacity check
// below is the same safety guarantee a raw 16-byte pointer read would need
// a page-boundary check for, expressed in ordinary bounds-checked Go.
func load16(name []byte) [16]byte {
	var v [16]byte
	if cap(name) >= 16 {
		copy(v[:], name[:16])
	} else {
		copy(v[:], name)
	}
	mask := lenMasks[len(name)]
	for i := range v {
		v[i] &= mask[i]
	}
	return v
}

// hashName computes the slot index for name within a table of the given
// capacity mask (capacity-1, capacity a power of two).
func hashName(name []byte, mask uint32) uint32 {
	v := load16(name)
	f := binary.LittleEndian.Uint64(v[0:8]) ^ binary.LittleEndian.Uint64(v[8:16])
	f ^= bits.RotateLeft64(lenMixConst*uint64(len(name)), 32)
	h := (f * hashMagic) >> hashShift
	return uint32(h) & mask
}
