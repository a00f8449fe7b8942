package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiniteTotals(t *testing.T) {
	series := []SeriesPoint{{2006, 1}, {2007, math.NaN()}, {2008, math.Inf(1)}, {2009, 4}}
	if diff := cmp.Diff([]float64{1, 4}, FiniteTotals(series)); diff != "" {
		t.Errorf("FiniteTotals mismatch (-want +got):\n%s", diff)
	}
}

func TestHistogram(t *testing.T) {
	bins := Histogram([]float64{0, 1, 2, 3, 4, 10}, 5)
	want := []HistogramBin{
		{Lo: 0, Hi: 2, Count: 2},
		{Lo: 2, Hi: 4, Count: 2},
		{Lo: 4, Hi: 6, Count: 1},
		{Lo: 6, Hi: 8, Count: 0},
		{Lo: 8, Hi: 10, Count: 1},
	}
	if diff := cmp.Diff(want, bins); diff != "" {
		t.Errorf("Histogram mismatch (-want +got):\n%s", diff)
	}
}

func TestHistogram_Degenerate(t *testing.T) {
	assert.Nil(t, Histogram(nil, 20))
	assert.Nil(t, Histogram([]float64{1}, 0))
	assert.Equal(t, []HistogramBin{{Lo: 5, Hi: 5, Count: 3}}, Histogram([]float64{5, 5, 5}, 20))
}

func TestBox(t *testing.T) {
	box, ok := Box([]float64{7, 1, 3, 5, 9})
	require.True(t, ok)
	assert.Equal(t, BoxStats{Min: 1, Q1: 3, Median: 5, Q3: 7, Max: 9}, box)

	box, ok = Box([]float64{1, 2, 3, 4})
	require.True(t, ok)
	assert.InDelta(t, 1.75, box.Q1, 1e-9)
	assert.InDelta(t, 2.5, box.Median, 1e-9)
	assert.InDelta(t, 3.25, box.Q3, 1e-9)

	_, ok = Box(nil)
	assert.False(t, ok)
}
