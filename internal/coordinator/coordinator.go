// Package coordinator shards the input buffer across workers on line
// boundaries, launches and joins them, and merges their per-worker
// summaries into the final per-station result after all workers have
// quiesced.
package coordinator

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/onebrc/stationstats/internal/dictionary"
	"github.com/onebrc/stationstats/internal/format"
	"github.com/onebrc/stationstats/internal/summary"
	"github.com/onebrc/stationstats/internal/worker"
)

// minCapacityForMaxStations is the smallest acceptable dictionary
// capacity, 2^15: the multi-worker default, giving a load factor of
// ~0.305 at the full 10,000-name cardinality. Anything smaller pushes
// probe chains meaningfully past the ~0.3 load-factor target.
const minCapacityForMaxStations = 1 << 15

// ErrCapacityTooSmall is returned by Config.Validate when
// DictionaryCapacityLog2 would force a load factor above the ceiling for
// the maximum station-name cardinality.
var ErrCapacityTooSmall = errors.New("coordinator: dictionary capacity too small for 10,000 station names at load factor <= 0.3")

// Config controls a single ingest run.
type Config struct {
	// Workers is the number of shards/goroutines. 0 selects
	// runtime.NumCPU(). 1 selects the fused single-worker dictionary
	// layout; >1 selects the shared multi-worker layout.
	Workers int

	// DictionaryCapacityLog2 sizes the dictionary to 2^N slots.
	DictionaryCapacityLog2 uint

	// Strict enables grammar-checked temperature decoding: the run fails
	// on the first malformed temperature reading instead of treating the
	// input as known-good. Station names are not validated.
	Strict bool

	// Verbose enables the ticker-driven progress reporter.
	Verbose bool
}

// Validate fails fast, before any worker launches.
func (c Config) Validate() error {
	capacity := uint64(1) << c.DictionaryCapacityLog2
	if capacity < minCapacityForMaxStations {
		return ErrCapacityTooSmall
	}
	return nil
}

func resolveWorkers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// shardBoundaries splits data into n contiguous, line-aligned regions by
// advancing each naive byte-count cut point forward to the first byte
// after the next '\n'.
func shardBoundaries(data []byte, n int) []int {
	total := len(data)
	bounds := make([]int, n+1)
	bounds[n] = total
	for i := 1; i < n; i++ {
		cut := total * i / n
		for cut < total && data[cut] != '\n' {
			cut++
		}
		if cut < total {
			cut++
		}
		bounds[i] = cut
	}
	return bounds
}

// Run ingests data and returns the final per-station summaries. data must
// have internal/bitscan.WindowSize bytes safely readable past its end
// (internal/mmapfile guarantees this for a mapped input file).
func Run(data []byte, cfg Config) ([]format.Station, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := resolveWorkers(cfg.Workers)
	if n > 1 && len(data) < n {
		n = 1
	}
	bounds := shardBoundaries(data, n)

	rep := newReporter(cfg.Verbose)
	rep.start()
	defer rep.stop()

	if n == 1 {
		tbl := dictionary.NewFusedTable(cfg.DictionaryCapacityLog2)
		if err := worker.RunFused(data, bounds[0], bounds[1], cfg.Strict, tbl); err != nil {
			return nil, fmt.Errorf("coordinator: %w", err)
		}
		var stations []format.Station
		tbl.Each(func(name []byte, s summary.Summary) {
			stations = append(stations, format.Station{Name: string(name), Summary: s})
		})
		return stations, nil
	}

	tbl := dictionary.NewSharedTable(cfg.DictionaryCapacityLog2)
	results := make([]worker.Result, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := worker.RunShared(data, bounds[i], bounds[i+1], cfg.Strict, tbl)
			results[i] = res
			errs[i] = err
			rep.addShard()
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("coordinator: %w", err)
		}
	}

	merged := make([]summary.Summary, tbl.Capacity())
	for _, res := range results {
		for idx, s := range res.Summaries {
			merged[idx].Merge(s)
		}
	}

	var stations []format.Station
	for idx, s := range merged {
		if s.Count == 0 {
			continue
		}
		stations = append(stations, format.Station{Name: string(tbl.Name(uint32(idx))), Summary: s})
	}
	return stations, nil
}
