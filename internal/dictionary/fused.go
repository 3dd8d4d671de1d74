package dictionary

import "github.com/onebrc/stationstats/internal/summary"

// Entry is one bucket of a FusedTable: name publication and the station's
// running summary live in the same slot since only one worker ever
// touches this table, so no atomics or publication protocol are needed —
// state is still 0/empty, >0/occupied (holding the name's length) for
// symmetry with SharedTable, but every transition is a plain store.
type Entry struct {
	state int32
	name  [MaxNameLen]byte
	summary.Summary
}

// FusedTable is the single-worker station dictionary: name lookup and the
// per-station running summary are combined in one table, avoiding the
// indirection a split SharedTable + per-worker summary array would cost
// when there is only one worker to begin with.
type FusedTable struct {
	slots []Entry
	mask  uint32
}

// NewFusedTable allocates a table with 2^capacityLog2 slots.
func NewFusedTable(capacityLog2 uint) *FusedTable {
	capacity := uint32(1) << capacityLog2
	return &FusedTable{
		slots: make([]Entry, capacity),
		mask:  capacity - 1,
	}
}

// Capacity returns the number of slots in the table.
func (t *FusedTable) Capacity() int {
	return len(t.slots)
}

// Lookup returns the slot for name, creating it (with Min/Max/Sum/Count
// zeroed) if this is the first time it is seen. Not safe for concurrent
// use — FusedTable exists precisely to avoid paying for synchronization
// when there's only one worker.
func (t *FusedTable) Lookup(name []byte) (*Entry, error) {
	idx := hashName(name, t.mask)
	for probes := uint32(0); probes < uint32(len(t.slots)); probes++ {
		s := &t.slots[idx]
		switch {
		case s.state > 0:
			if int(s.state) == len(name) && equalBytes(s.name[:s.state], name) {
				return s, nil
			}
		case s.state == stateEmpty:
			copy(s.name[:], name)
			s.state = int32(len(name))
			return s, nil
		}
		idx = (idx + 1) & t.mask
	}
	return nil, ErrDictionarySaturated
}

// Name returns the station name stored in slot s.
func (s *Entry) Name() []byte {
	return s.name[:s.state]
}

// Each calls fn once for every occupied slot, in table (not name) order.
func (t *FusedTable) Each(fn func(name []byte, s summary.Summary)) {
	for i := range t.slots {
		e := &t.slots[i]
		if e.state > 0 {
			fn(e.name[:e.state], e.Summary)
		}
	}
}
