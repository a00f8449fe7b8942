package domain

import "math"

// Extremes holds the driest and wettest points of a series.
type Extremes struct {
	Driest  SeriesPoint
	Wettest SeriesPoint
}

// VariationPoint is the percent change in total from the previous point.
type VariationPoint struct {
	Year    float64
	Percent float64
}

// FindExtremes returns the lowest and highest total in series. NaN totals are
// skipped and the first occurrence wins ties. It returns nil when no point has
// a numeric total.
func FindExtremes(series []SeriesPoint) *Extremes {
	var ext *Extremes
	for _, p := range series {
		if math.IsNaN(p.Total) {
			continue
		}
		if ext == nil {
			ext = &Extremes{Driest: p, Wettest: p}
			continue
		}
		if p.Total < ext.Driest.Total {
			ext.Driest = p
		}
		if p.Total > ext.Wettest.Total {
			ext.Wettest = p
		}
	}
	return ext
}

// VariationRates returns the percent change between consecutive points. The
// first point has no predecessor and gets NaN.
func VariationRates(series []SeriesPoint) []VariationPoint {
	out := make([]VariationPoint, len(series))
	for i, p := range series {
		out[i] = VariationPoint{Year: p.Year, Percent: math.NaN()}
		if i > 0 {
			prev := series[i-1].Total
			out[i].Percent = (p.Total - prev) / prev * 100
		}
	}
	return out
}
