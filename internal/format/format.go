// Package format renders the final per-station summaries, sorted by name,
// as `{name=min/mean/max, ...}` with each number to exactly one fractional
// digit. All arithmetic stays in integer tenths; the mean comes from
// summary.Summary.MeanTenths, so no float rounding is involved.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/onebrc/stationstats/internal/summary"
)

// Station pairs a name with its final summary, the unit format.Write
// renders.
type Station struct {
	Name    string
	Summary summary.Summary
}

// Write renders stations, sorted by name, to w as
// "{name1=min1/mean1/max1, name2=min2/mean2/max2, ...}\n".
func Write(w io.Writer, stations []Station) error {
	sort.Slice(stations, func(i, j int) bool { return stations[i].Name < stations[j].Name })

	var b strings.Builder
	for i, s := range stations {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%s/%s/%s", s.Name,
			formatTenths(s.Summary.Min), formatTenths(int16(s.Summary.MeanTenths())), formatTenths(s.Summary.Max))
	}
	_, err := fmt.Fprintf(w, "{%s}\n", b.String())
	return err
}

// formatTenths renders a signed tenths-of-a-degree value as a decimal
// string with exactly one fractional digit, e.g. -45 -> "-4.5".
func formatTenths(tenths int16) string {
	neg := tenths < 0
	a := int(tenths)
	if neg {
		a = -a
	}
	s := fmt.Sprintf("%d.%d", a/10, a%10)
	if neg {
		s = "-" + s
	}
	return s
}
