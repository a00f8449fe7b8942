package domain

// Contains reports whether year lies within the inclusive bounds. NaN is
// never contained.
func (r YearRange) Contains(year float64) bool {
	return year >= r.Min && year <= r.Max
}

// Valid reports whether the range is non-empty.
func (r YearRange) Valid() bool {
	return r.Min <= r.Max
}

// FilterRange returns the records whose year lies in yr, preserving order.
func FilterRange(records []Record, yr YearRange) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if yr.Contains(rec.Year) {
			out = append(out, rec)
		}
	}
	return out
}
