package domain

import "time"

// Record is one parsed data line. Any field may be NaN when the source text
// had no numeric prefix.
type Record struct {
	Year   float64 `json:"year"`
	Total  float64 `json:"total"`
	Median float64 `json:"median"`
}

// YearRange is a closed interval of years.
type YearRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultYearRange covers the 2006-2100 projection period.
var DefaultYearRange = YearRange{Min: 2006, Max: 2100}

// StatisticsSummary holds the means over the in-range records. Both means are
// NaN when Count is zero.
type StatisticsSummary struct {
	MeanTotal  float64
	MeanMedian float64
	Count      int
}

// SeriesPoint is one (year, total) pair for the chart, in input order.
type SeriesPoint struct {
	Year  float64
	Total float64
}

// Analysis is everything derived from one raw payload.
type Analysis struct {
	Parsed    int
	Retained  []Record
	Summary   StatisticsSummary
	Series    []SeriesPoint
	Extremes  *Extremes
	Variation []VariationPoint
}

// Report is the immutable product of one pipeline run.
type Report struct {
	RunID      string
	Source     string
	ComputedAt time.Time
	YearRange  YearRange
	Analysis
}
