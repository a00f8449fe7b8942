package domain

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	// MissingValue is the sentinel used by the gridded daily files.
	MissingValue = -999

	daysPerRow      = 31
	dailyLeadFields = 3 // id, year, month
)

// DailyRow is one station-month line of a daily grid file. Days holds one
// entry per calendar slot; missing or unparseable cells are nil.
type DailyRow struct {
	ID    string
	Year  int
	Month int
	Days  [daysPerRow]*float64
}

// DailyStats counts what ParseDaily saw.
type DailyStats struct {
	Rows      int
	Malformed int
	Cells     int
	Missing   int
}

// MissingPercent returns the share of day cells holding the missing sentinel.
func (s DailyStats) MissingPercent() float64 {
	if s.Cells == 0 {
		return 0
	}
	return float64(s.Missing) / float64(s.Cells) * 100
}

// Add accumulates other into s.
func (s *DailyStats) Add(other DailyStats) {
	s.Rows += other.Rows
	s.Malformed += other.Malformed
	s.Cells += other.Cells
	s.Missing += other.Missing
}

// AnnualRow is one line of the annual summary consumed by ParseRecords.
type AnnualRow struct {
	Year   int
	Total  float64
	Median float64
}

// ParseDaily reads a whitespace-delimited daily grid: a header line followed
// by "id year month day_1 ... day_31" rows. Rows with the wrong field count
// or a non-integer year/month are counted as malformed and skipped.
func ParseDaily(r io.Reader) ([]DailyRow, DailyStats, error) {
	var (
		rows  []DailyRow
		stats DailyStats
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		stats.Rows++

		row, missing, ok := parseDailyFields(fields)
		if !ok {
			stats.Malformed++
			continue
		}
		stats.Cells += daysPerRow
		stats.Missing += missing
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("read daily grid: %w", err)
	}
	return rows, stats, nil
}

func parseDailyFields(fields []string) (DailyRow, int, bool) {
	if len(fields) != dailyLeadFields+daysPerRow {
		return DailyRow{}, 0, false
	}
	year, errY := strconv.Atoi(fields[1])
	month, errM := strconv.Atoi(fields[2])
	if errY != nil || errM != nil {
		return DailyRow{}, 0, false
	}

	row := DailyRow{ID: fields[0], Year: year, Month: month}
	missing := 0
	for i, raw := range fields[dailyLeadFields:] {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if v == MissingValue {
			missing++
			continue
		}
		row.Days[i] = &v
	}
	return row, missing, true
}

// SummarizeDaily groups the non-missing daily values by year and returns the
// annual total and median, sorted by year. Years without any value are left
// out.
func SummarizeDaily(rows []DailyRow) []AnnualRow {
	byYear := make(map[int][]float64)
	for i := range rows {
		for _, v := range rows[i].Days {
			if v != nil {
				byYear[rows[i].Year] = append(byYear[rows[i].Year], *v)
			}
		}
	}

	out := make([]AnnualRow, 0, len(byYear))
	for year, values := range byYear {
		var total float64
		for _, v := range values {
			total += v
		}
		out = append(out, AnnualRow{Year: year, Total: total, Median: median(values)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// WriteAnnualCSV writes rows in the three-column layout ParseRecords expects.
func WriteAnnualCSV(w io.Writer, rows []AnnualRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "total_precipitation", "median_precipitation"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		rec := []string{
			strconv.Itoa(row.Year),
			strconv.FormatFloat(row.Total, 'f', -1, 64),
			strconv.FormatFloat(row.Median, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write year %d: %w", row.Year, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DailySummary condenses a set of daily grids into headline statistics.
// AnnualMeanChange is the mean difference between consecutive years and is
// NaN with fewer than two years.
type DailySummary struct {
	MissingPercent        float64
	AnnualAverage         float64
	AnnualTotal           float64
	AnnualMeanChange      float64
	WettestYear           int
	DriestYear            int
	HighestMonthlyAverage float64
	LowestMonthlyAverage  float64
}

// SummarizeStatistics derives a DailySummary from parsed rows, their parse
// stats and the annual totals built by SummarizeDaily. A month's average is
// the mean over day slots of each slot's mean across years and stations.
// It reports false when annual is empty.
func SummarizeStatistics(rows []DailyRow, stats DailyStats, annual []AnnualRow) (DailySummary, bool) {
	if len(annual) == 0 {
		return DailySummary{}, false
	}

	s := DailySummary{
		MissingPercent:   stats.MissingPercent(),
		AnnualMeanChange: math.NaN(),
		WettestYear:      annual[0].Year,
		DriestYear:       annual[0].Year,
	}
	wettest, driest := annual[0].Total, annual[0].Total
	for i, row := range annual {
		s.AnnualTotal += row.Total
		if row.Total > wettest {
			wettest, s.WettestYear = row.Total, row.Year
		}
		if row.Total < driest {
			driest, s.DriestYear = row.Total, row.Year
		}
		if i == 1 {
			s.AnnualMeanChange = 0
		}
		if i > 0 {
			s.AnnualMeanChange += row.Total - annual[i-1].Total
		}
	}
	s.AnnualAverage = s.AnnualTotal / float64(len(annual))
	if len(annual) > 1 {
		s.AnnualMeanChange /= float64(len(annual) - 1)
	}

	monthly := monthlyAverages(rows)
	s.HighestMonthlyAverage, s.LowestMonthlyAverage = math.NaN(), math.NaN()
	for i, avg := range monthly {
		if i == 0 || avg > s.HighestMonthlyAverage {
			s.HighestMonthlyAverage = avg
		}
		if i == 0 || avg < s.LowestMonthlyAverage {
			s.LowestMonthlyAverage = avg
		}
	}
	return s, true
}

func monthlyAverages(rows []DailyRow) []float64 {
	type slot struct {
		sum float64
		n   int
	}
	byMonth := make(map[int]*[daysPerRow]slot)
	for i := range rows {
		slots, ok := byMonth[rows[i].Month]
		if !ok {
			slots = new([daysPerRow]slot)
			byMonth[rows[i].Month] = slots
		}
		for d, v := range rows[i].Days {
			if v != nil {
				slots[d].sum += *v
				slots[d].n++
			}
		}
	}

	months := make([]int, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Ints(months)

	out := make([]float64, 0, len(months))
	for _, m := range months {
		var sum float64
		var n int
		for _, sl := range byMonth[m] {
			if sl.n > 0 {
				sum += sl.sum / float64(sl.n)
				n++
			}
		}
		if n > 0 {
			out = append(out, sum/float64(n))
		}
	}
	return out
}

// WriteStatisticsCSV writes s as a header row and one value row. NaN values
// are written as empty cells.
func WriteStatisticsCSV(w io.Writer, s DailySummary) error {
	cw := csv.NewWriter(w)
	header := []string{
		"missing_data_percentage", "annual_avg", "annual_totals", "annual_data_diff",
		"wettest_year", "driest_year", "highest_monthly_avg", "lowest_monthly_avg",
	}
	values := []string{
		formatStat(s.MissingPercent),
		formatStat(s.AnnualAverage),
		formatStat(s.AnnualTotal),
		formatStat(s.AnnualMeanChange),
		strconv.Itoa(s.WettestYear),
		strconv.Itoa(s.DriestYear),
		formatStat(s.HighestMonthlyAverage),
		formatStat(s.LowestMonthlyAverage),
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.Write(values); err != nil {
		return fmt.Errorf("write statistics: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
