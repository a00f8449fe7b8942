package domain

// Analyze runs the synchronous part of the pipeline over a raw payload:
// parse, filter by yr, then aggregate and project the same filtered records.
func Analyze(text string, yr YearRange) Analysis {
	parsed := ParseRecords(text)
	retained := FilterRange(parsed, yr)
	series := ProjectSeries(retained)

	return Analysis{
		Parsed:    len(parsed),
		Retained:  retained,
		Summary:   Aggregate(retained),
		Series:    series,
		Extremes:  FindExtremes(series),
		Variation: VariationRates(series),
	}
}
