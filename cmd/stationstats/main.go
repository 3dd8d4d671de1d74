// Command stationstats ingests a `<name>;<temp>` measurement file and
// prints each station's minimum, mean, and maximum temperature, sorted
// by station name.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/onebrc/stationstats/internal/bitscan"
	"github.com/onebrc/stationstats/internal/coordinator"
	"github.com/onebrc/stationstats/internal/format"
	"github.com/onebrc/stationstats/internal/mmapfile"
)

const Version = "0.1.0"

func main() {
	fs := flag.NewFlagSet("stationstats", flag.ExitOnError)

	input := fs.String("input", "", "Path to the measurements file (required)")
	workers := fs.Int("workers", runtime.NumCPU(), "Number of parallel workers (1 selects the single-worker fused dictionary layout)")
	dictBits := fs.Int("dict-bits", 0, "log2 of the dictionary capacity (0 selects 20 for workers=1, 15 otherwise)")
	hugepages := fs.Bool("hugepages", false, "Hint the kernel to back the mapped input with huge pages, where available")
	strict := fs.Bool("strict", false, "Validate every temperature reading's grammar instead of trusting the fast decoder's precondition")
	verbose := fs.Bool("verbose", false, "Print shard-completion progress to stderr")

	_ = fs.Parse(os.Args[1:])

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		fs.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*input, *workers, *dictBits, *hugepages, *strict, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "stationstats: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath string, workers, dictBits int, hugepages, strict, verbose bool) error {
	if verbose {
		fmt.Fprintf(os.Stderr, "stationstats %s: avx2=%v sse4.2=%v\n",
			Version, bitscan.HasAVX2(), bitscan.HasSSE42())
	}

	f, err := mmapfile.Open(inputPath, hugepages)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer f.Close()

	if dictBits == 0 {
		if workers == 1 {
			dictBits = 20
		} else {
			dictBits = 15
		}
	}

	cfg := coordinator.Config{
		Workers:                workers,
		DictionaryCapacityLog2: uint(dictBits),
		Strict:                 strict,
		Verbose:                verbose,
	}

	stations, err := coordinator.Run(f.Bytes(), cfg)
	if err != nil {
		return fmt.Errorf("running ingest: %w", err)
	}

	return format.Write(os.Stdout, stations)
}
