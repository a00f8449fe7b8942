package domain

import (
	"math"
	"sort"
)

// HistogramBin counts the values in [Lo, Hi). The last bin also holds Hi.
type HistogramBin struct {
	Lo    float64
	Hi    float64
	Count int
}

// BoxStats is the five-number summary of a sample. Quartiles use linear
// interpolation between order statistics.
type BoxStats struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// FiniteTotals returns the totals of series that are neither NaN nor
// infinite, in input order.
func FiniteTotals(series []SeriesPoint) []float64 {
	out := make([]float64, 0, len(series))
	for _, p := range series {
		if math.IsNaN(p.Total) || math.IsInf(p.Total, 0) {
			continue
		}
		out = append(out, p.Total)
	}
	return out
}

// Histogram splits the span of values into bins equal-width bins. It returns
// nil for an empty sample or a non-positive bin count; a sample with a single
// distinct value yields one bin.
func Histogram(values []float64, bins int) []HistogramBin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		return []HistogramBin{{Lo: lo, Hi: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i] = HistogramBin{Lo: lo + float64(i)*width, Hi: lo + float64(i+1)*width}
	}
	out[bins-1].Hi = hi
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// Box returns the five-number summary of values, or false when values is
// empty.
func Box(values []float64) (BoxStats, bool) {
	if len(values) == 0 {
		return BoxStats{}, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return BoxStats{
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}, true
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	i := int(math.Floor(pos))
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}
