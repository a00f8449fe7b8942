package domain

import (
	"math"
	"strings"
)

// Diagnostics describes what the parser and filter did with a payload. It is
// informational only and never changes the computed summary.
type Diagnostics struct {
	// DataLines counts the lines after the header, blank ones included.
	DataLines int
	Blank     int
	// Dropped holds the 1-based line numbers of non-blank lines without
	// exactly three fields.
	Dropped    []int
	Records    int
	NaNYear    int
	NaNTotal   int
	NaNMedian  int
	OutOfRange int
	// DuplicateYears lists in-range years seen more than once, in first-seen
	// order.
	DuplicateYears []float64
}

// Clean reports whether every data line became an in-range record with
// numeric fields.
func (d Diagnostics) Clean() bool {
	return len(d.Dropped) == 0 && d.NaNYear == 0 && d.NaNTotal == 0 &&
		d.NaNMedian == 0 && d.OutOfRange == 0 && len(d.DuplicateYears) == 0
}

// Diagnose inspects text the same way ParseRecords and FilterRange do and
// counts the anomalies they silently absorb.
func Diagnose(text string, yr YearRange) Diagnostics {
	var d Diagnostics
	seen := make(map[float64]int)

	for i, line := range dataLines(text) {
		d.DataLines++
		if strings.TrimSpace(line) == "" {
			d.Blank++
			continue
		}
		cols := strings.Split(line, ",")
		if len(cols) != fieldsPerRecord {
			d.Dropped = append(d.Dropped, i+2)
			continue
		}

		d.Records++
		year := ParseNumber(cols[0]).Float()
		if math.IsNaN(year) {
			d.NaNYear++
		}
		if math.IsNaN(ParseNumber(cols[1]).Float()) {
			d.NaNTotal++
		}
		if math.IsNaN(ParseNumber(cols[2]).Float()) {
			d.NaNMedian++
		}

		if !yr.Contains(year) {
			if !math.IsNaN(year) {
				d.OutOfRange++
			}
			continue
		}
		seen[year]++
		if seen[year] == 2 {
			d.DuplicateYears = append(d.DuplicateYears, year)
		}
	}
	return d
}
