// Package worker drives one shard of the input through the scanner,
// decoder, and dictionary, producing either a fully-populated FusedTable
// (single-worker mode) or a private Summary array keyed by SharedTable
// slot index (multi-worker mode). A worker never suspends and never
// observes another worker's summaries.
package worker

import (
	"fmt"

	"github.com/onebrc/stationstats/internal/decode"
	"github.com/onebrc/stationstats/internal/dictionary"
	"github.com/onebrc/stationstats/internal/scanner"
	"github.com/onebrc/stationstats/internal/summary"
)

// decodeTemp selects the checked or unchecked decode path. The 8-byte
// reslice may extend past the buffer's logical length into its tail
// padding (slicing up to capacity), which the coordinator's input
// contract guarantees is readable.
func decodeTemp(data []byte, tempOffset int, strict bool) (int16, error) {
	p := data[tempOffset : tempOffset+8]
	if !strict {
		return decode.Decode(p), nil
	}
	return decode.CheckedDecode(p)
}

// RunFused processes data[start:end] against a single-worker FusedTable:
// no atomics, no merge step, the table itself is the final result once the
// single shard has been processed.
func RunFused(data []byte, start, end int, strict bool, tbl *dictionary.FusedTable) error {
	sc := scanner.New(data, start, end)
	for {
		name, tempOffset, ok := sc.Next()
		if !ok {
			return nil
		}
		entry, err := tbl.Lookup(name)
		if err != nil {
			return fmt.Errorf("worker: %w", err)
		}
		tenths, err := decodeTemp(data, tempOffset, strict)
		if err != nil {
			return fmt.Errorf("worker: %w", err)
		}
		entry.Update(tenths)
	}
}

// Result is one worker's private view of a multi-worker run: a Summary
// per slot in the shared dictionary, indexed identically across workers
// so the coordinator can merge position-by-position after every worker
// has joined.
type Result struct {
	Summaries []summary.Summary
}

// RunShared processes data[start:end] against a SharedTable, accumulating
// into a private Summary array the coordinator merges after every worker
// joins. Multiple workers may call RunShared concurrently over the same
// SharedTable; each worker's Result is private and needs no locking.
func RunShared(data []byte, start, end int, strict bool, tbl *dictionary.SharedTable) (Result, error) {
	res := Result{Summaries: make([]summary.Summary, tbl.Capacity())}
	sc := scanner.New(data, start, end)
	for {
		name, tempOffset, ok := sc.Next()
		if !ok {
			return res, nil
		}
		idx, err := tbl.Lookup(name)
		if err != nil {
			return res, fmt.Errorf("worker: %w", err)
		}
		tenths, err := decodeTemp(data, tempOffset, strict)
		if err != nil {
			return res, fmt.Errorf("worker: %w", err)
		}
		res.Summaries[idx].Update(tenths)
	}
}
