package xlsx

import (
	"bytes"
	"math"
	"testing"

	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteReport(t *testing.T) {
	report := &domain.Report{
		RunID:     "run-1",
		YearRange: domain.DefaultYearRange,
		Analysis: domain.Analysis{
			Summary: domain.StatisticsSummary{MeanTotal: 15, MeanMedian: math.NaN(), Count: 2},
			Series:  []domain.SeriesPoint{{Year: 2006, Total: 10}, {Year: 2007, Total: math.NaN()}},
		},
	}

	data, err := WriteReport(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, SeriesSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	want := [][]string{
		{"Precipitación Total Promedio", "Precipitación Mediana Promedio"},
		{"15.00", "NaN"},
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("summary sheet mismatch (-want +got):\n%s", diff)
	}

	series, err := f.GetRows(SeriesSheet)
	require.NoError(t, err)
	want = [][]string{
		{"Año", "Precipitación Total"},
		{"2006", "10"},
		{"2007", "NaN"},
	}
	if diff := cmp.Diff(want, series); diff != "" {
		t.Errorf("series sheet mismatch (-want +got):\n%s", diff)
	}
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, 12.5, cellValue(12.5))
	assert.Equal(t, "NaN", cellValue(math.NaN()))
	assert.Equal(t, "-Infinity", cellValue(math.Inf(-1)))
}
