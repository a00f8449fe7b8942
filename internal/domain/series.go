package domain

// ChartAxis describes the fixed chart layout for a year range.
type ChartAxis struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Step        float64 `json:"step"`
	XLabel      string  `json:"x_label"`
	YLabel      string  `json:"y_label"`
	SeriesLabel string  `json:"series_label"`
}

// ChartAxisFor returns the x-axis clamp for yr with a one-year tick step.
func ChartAxisFor(yr YearRange) ChartAxis {
	return ChartAxis{
		Min:         yr.Min,
		Max:         yr.Max,
		Step:        1,
		XLabel:      "Año",
		YLabel:      "Precipitación Total",
		SeriesLabel: "Precipitación Total",
	}
}

// ProjectSeries maps each record to a chart point. Order is preserved and
// duplicate years are kept.
func ProjectSeries(records []Record) []SeriesPoint {
	points := make([]SeriesPoint, len(records))
	for i, rec := range records {
		points[i] = SeriesPoint{Year: rec.Year, Total: rec.Total}
	}
	return points
}
