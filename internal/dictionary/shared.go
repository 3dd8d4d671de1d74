package dictionary

import (
	"errors"
	"runtime"
	"sync/atomic"
)

// ErrDictionarySaturated is returned when a lookup probes every slot in the
// table without finding or claiming one for the requested name. It
// indicates the table's capacity was configured too small for the
// station-name cardinality actually present in the input.
var ErrDictionarySaturated = errors.New("dictionary: probed full capacity without finding a free slot")

const (
	stateEmpty        = int32(0)
	stateInitializing = int32(-1)
	// any state > 0 is INITIALIZED and equals the station name's length.
)

// sharedSlot is one bucket of a SharedTable. state is the publication tag:
// 0 (empty) -> -1 (initializing, name bytes being written) -> len(name)
// (initialized). Readers acquire-load state and only trust name once they
// observe state > 0.
type sharedSlot struct {
	state int32
	name  [MaxNameLen]byte
}

// SharedTable is the multi-worker station dictionary: many goroutines call
// Lookup concurrently, racing to claim empty slots via compare-and-swap.
// Slot indices are stable for the table's lifetime once assigned, so
// workers can key a private per-worker Summary array by the returned
// index without further coordination.
type SharedTable struct {
	slots []sharedSlot
	mask  uint32
}

// NewSharedTable allocates a table with 2^capacityLog2 slots.
func NewSharedTable(capacityLog2 uint) *SharedTable {
	capacity := uint32(1) << capacityLog2
	return &SharedTable{
		slots: make([]sharedSlot, capacity),
		mask:  capacity - 1,
	}
}

// Capacity returns the number of slots in the table.
func (t *SharedTable) Capacity() int {
	return len(t.slots)
}

// Lookup returns the stable slot index for name, publishing a new slot if
// this is the first worker to observe that name. Safe for concurrent use
// by any number of goroutines.
func (t *SharedTable) Lookup(name []byte) (uint32, error) {
	idx := hashName(name, t.mask)

probe:
	for probes := uint32(0); probes < uint32(len(t.slots)); probes++ {
		s := &t.slots[idx]
		for {
			state := atomic.LoadInt32(&s.state)
			switch {
			case state > 0:
				if int(state) == len(name) && equalBytes(s.name[:state], name) {
					return idx, nil
				}
				idx = (idx + 1) & t.mask
				continue probe
			case state == stateEmpty:
				if atomic.CompareAndSwapInt32(&s.state, stateEmpty, stateInitializing) {
					copy(s.name[:], name)
					atomic.StoreInt32(&s.state, int32(len(name)))
					return idx, nil
				}
				// Lost the race; re-read and try this slot again.
				continue
			default: // stateInitializing: another worker is mid-publish.
				runtime.Gosched()
				continue
			}
		}
	}
	return 0, ErrDictionarySaturated
}

// Name returns the published name stored at idx. Only valid to call for an
// index previously returned by Lookup.
func (t *SharedTable) Name(idx uint32) []byte {
	s := &t.slots[idx]
	n := atomic.LoadInt32(&s.state)
	return s.name[:n]
}
