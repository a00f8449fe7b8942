package domain

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dailyLine builds a grid row with the given day values, padding the rest of
// the month with the missing sentinel.
func dailyLine(id string, year, month int, days ...float64) string {
	cells := make([]string, 0, daysPerRow)
	for _, d := range days {
		cells = append(cells, fmt.Sprint(d))
	}
	for len(cells) < daysPerRow {
		cells = append(cells, "-999")
	}
	return fmt.Sprintf("%s %d %d %s", id, year, month, strings.Join(cells, " "))
}

func TestParseDaily(t *testing.T) {
	input := strings.Join([]string{
		"precip MIROC5 RCP60 REGRESION decimas 1",
		dailyLine("P10033", 2006, 1, 1, 2, 3),
		dailyLine("P10033", 2006, 2, 4),
		"P10033 2006 3 1 2 3",
		"P10033 year 4 " + strings.Repeat("0 ", daysPerRow),
		"",
	}, "\n")

	rows, stats, err := ParseDaily(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 2, stats.Malformed)
	assert.Equal(t, 2*daysPerRow, stats.Cells)
	assert.Equal(t, (daysPerRow-3)+(daysPerRow-1), stats.Missing)
	assert.InDelta(t, float64(stats.Missing)/float64(stats.Cells)*100, stats.MissingPercent(), 1e-9)

	require.NotNil(t, rows[0].Days[0])
	assert.Equal(t, 1.0, *rows[0].Days[0])
	assert.Nil(t, rows[0].Days[3])
}

func TestDailyStats_MissingPercentEmpty(t *testing.T) {
	assert.Equal(t, 0.0, DailyStats{}.MissingPercent())
}

func TestSummarizeDaily(t *testing.T) {
	input := strings.Join([]string{
		"header",
		dailyLine("A", 2007, 1, 10, 20),
		dailyLine("A", 2006, 1, 1, 2, 3),
		dailyLine("B", 2006, 1, 4),
		dailyLine("A", 2008, 1),
	}, "\n")
	rows, _, err := ParseDaily(strings.NewReader(input))
	require.NoError(t, err)

	annual := SummarizeDaily(rows)
	require.Len(t, annual, 2, "years without values are left out")

	assert.Equal(t, AnnualRow{Year: 2006, Total: 10, Median: 2.5}, annual[0])
	assert.Equal(t, AnnualRow{Year: 2007, Total: 30, Median: 15}, annual[1])
}

func TestWriteAnnualCSV_FeedsRecordParser(t *testing.T) {
	rows := []AnnualRow{{2006, 812.5, 1.25}, {2007, 790, 0}}

	var buf bytes.Buffer
	require.NoError(t, WriteAnnualCSV(&buf, rows))

	assert.Equal(t, "year,total_precipitation,median_precipitation\n2006,812.5,1.25\n2007,790,0\n", buf.String())

	records := ParseRecords(buf.String())
	require.Len(t, records, 2)
	assert.Equal(t, Record{2006, 812.5, 1.25}, records[0])
}

func TestSummarizeStatistics(t *testing.T) {
	input := strings.Join([]string{
		"header",
		dailyLine("A", 2006, 1, 1, 2, 3),
		dailyLine("B", 2006, 1, 4),
		dailyLine("A", 2007, 1, 10, 20),
		dailyLine("A", 2007, 2, 6),
	}, "\n")
	rows, stats, err := ParseDaily(strings.NewReader(input))
	require.NoError(t, err)

	s, ok := SummarizeStatistics(rows, stats, SummarizeDaily(rows))
	require.True(t, ok)

	assert.InDelta(t, stats.MissingPercent(), s.MissingPercent, 1e-9)
	assert.InDelta(t, 23.0, s.AnnualAverage, 1e-9)
	assert.InDelta(t, 46.0, s.AnnualTotal, 1e-9)
	assert.InDelta(t, 26.0, s.AnnualMeanChange, 1e-9)
	assert.Equal(t, 2007, s.WettestYear)
	assert.Equal(t, 2006, s.DriestYear)
	// January slot means are 5, 11 and 3; February has a single 6.
	assert.InDelta(t, 19.0/3, s.HighestMonthlyAverage, 1e-9)
	assert.InDelta(t, 6.0, s.LowestMonthlyAverage, 1e-9)
}

func TestSummarizeStatistics_SingleYear(t *testing.T) {
	rows, stats, err := ParseDaily(strings.NewReader("header\n" + dailyLine("A", 2006, 3, 2, 4)))
	require.NoError(t, err)

	s, ok := SummarizeStatistics(rows, stats, SummarizeDaily(rows))
	require.True(t, ok)

	assert.True(t, math.IsNaN(s.AnnualMeanChange))
	assert.Equal(t, 2006, s.WettestYear)
	assert.Equal(t, 2006, s.DriestYear)
	assert.InDelta(t, 3.0, s.HighestMonthlyAverage, 1e-9)
	assert.InDelta(t, 3.0, s.LowestMonthlyAverage, 1e-9)
}

func TestSummarizeStatistics_NoYears(t *testing.T) {
	_, ok := SummarizeStatistics(nil, DailyStats{}, nil)
	assert.False(t, ok)
}

func TestWriteStatisticsCSV(t *testing.T) {
	s := DailySummary{
		MissingPercent:        12.5,
		AnnualAverage:         23,
		AnnualTotal:           46,
		AnnualMeanChange:      math.NaN(),
		WettestYear:           2007,
		DriestYear:            2006,
		HighestMonthlyAverage: 6.5,
		LowestMonthlyAverage:  6,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStatisticsCSV(&buf, s))

	assert.Equal(t,
		"missing_data_percentage,annual_avg,annual_totals,annual_data_diff,wettest_year,driest_year,highest_monthly_avg,lowest_monthly_avg\n"+
			"12.5,23,46,,2007,2006,6.5,6\n",
		buf.String())
}
