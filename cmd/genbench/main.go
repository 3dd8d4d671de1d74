// Command genbench generates a synthetic measurements file for
// benchmarking the ingest pipeline: `<name>;<temp>` lines drawn from a
// bounded station-name pool, so cardinality stays well under the
// 10,000-name ceiling regardless of how large -size-mb is.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
)

// stationNames is a fixed pool bounded well under the grammar's 10,000
// distinct-name ceiling, long enough to exercise realistic hash
// distribution without inflating the dictionary with one-off names.
var stationNames = []string{
	"Hamburg", "Bulawayo", "Palembang", "Riga", "Zagreb", "Abha", "Kampala",
	"Tirana", "Cabo San Lucas", "Ouagadougou", "Reykjavik", "Perth",
	"San Francisco", "Dar es Salaam", "Tashkent", "Wellington", "Baghdad",
	"Quito", "Valletta", "Istanbul", "Kuala Lumpur", "Bridgetown", "Niamey",
	"Yellowknife", "Fresno", "Vilnius", "Conakry", "Johannesburg",
	"Gaborone", "Minsk",
}

func main() {
	sizeMB := flag.Int("size-mb", 500, "Target output size in megabytes")
	output := flag.String("output", "", "Output file path (required)")
	seed := flag.Int64("seed", 123, "RNG seed, for reproducible benchmark inputs")
	flag.Parse()

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: -output is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := generate(*output, *sizeMB, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "genbench: %v\n", err)
		os.Exit(1)
	}
}

func generate(path string, sizeMB int, seed int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("genbench: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 64*1024)
	rng := rand.New(rand.NewSource(seed))

	limit := int64(sizeMB) * 1024 * 1024
	var written int64
	var rows int
	buf := make([]byte, 0, 64)

	for written < limit {
		rows++
		name := stationNames[rng.Intn(len(stationNames))]
		tenths := rng.Intn(1999) - 999 // -99.9 .. 99.9

		buf = buf[:0]
		buf = append(buf, name...)
		buf = append(buf, ';')
		buf = appendTenths(buf, tenths)
		buf = append(buf, '\n')

		n, err := w.Write(buf)
		written += int64(n)
		if err != nil {
			return fmt.Errorf("genbench: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("genbench: %w", err)
	}

	fmt.Printf("genbench: wrote %d rows (%.2f MB) to %s\n", rows, float64(written)/1024/1024, path)
	return nil
}

// appendTenths appends the canonical decimal rendering of a signed tenths
// value, e.g. -45 -> "-4.5", matching the grammar internal/decode expects.
func appendTenths(buf []byte, tenths int) []byte {
	if tenths < 0 {
		buf = append(buf, '-')
		tenths = -tenths
	}
	return fmt.Appendf(buf, "%d.%d", tenths/10, tenths%10)
}
