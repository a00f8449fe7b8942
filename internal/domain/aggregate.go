package domain

// Aggregate computes the mean total and mean median of records.
//
// An empty input yields NaN means (0/0). A NaN field poisons only the mean it
// contributes to.
func Aggregate(records []Record) StatisticsSummary {
	var sumTotal, sumMedian float64
	count := 0
	for _, rec := range records {
		sumTotal += rec.Total
		sumMedian += rec.Median
		count++
	}
	n := float64(count)
	return StatisticsSummary{
		MeanTotal:  sumTotal / n,
		MeanMedian: sumMedian / n,
		Count:      count,
	}
}
