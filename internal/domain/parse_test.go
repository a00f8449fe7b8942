package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "year,total_precipitation,median_precipitation"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  float64
		valid bool
	}{
		{"integer", "2006", 2006, true},
		{"decimal", "812.45", 812.45, true},
		{"negative", "-3.5", -3.5, true},
		{"explicit plus", "+7", 7, true},
		{"leading dot", ".5", 0.5, true},
		{"trailing dot", "5.", 5, true},
		{"exponent", "1.5e3", 1500, true},
		{"incomplete exponent", "2e", 2, true},
		{"numeric prefix", "12.5mm", 12.5, true},
		{"leading whitespace", "  42", 42, true},
		{"trailing carriage return", "10\r", 10, true},
		{"infinity", "Infinity", math.Inf(1), true},
		{"negative infinity", "-Infinity", math.Inf(-1), true},
		{"overflow saturates", "1e999", math.Inf(1), true},
		{"letters", "abc", 0, false},
		{"empty", "", 0, false},
		{"sign only", "-", 0, false},
		{"dot only", ".", 0, false},
		{"hex is not parsed as hex", "0x10", 0, true},
		{"go-style inf is rejected", "inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := ParseNumber(tt.in)
			assert.Equal(t, tt.valid, n.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, n.Value)
			} else {
				assert.True(t, math.IsNaN(n.Float()))
			}
		})
	}
}

func TestParseRecords(t *testing.T) {
	nanEq := cmpopts.EquateNaNs()

	t.Run("discards header", func(t *testing.T) {
		got := ParseRecords(testHeader + "\n2006,10,5\n2007,20,15")
		want := []Record{{2006, 10, 5}, {2007, 20, 15}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("CRLF line endings", func(t *testing.T) {
		got := ParseRecords(testHeader + "\r\n2006,10,5\r\n2007,20,15\r\n")
		want := []Record{{2006, 10, 5}, {2007, 20, 15}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("wrong field counts are dropped", func(t *testing.T) {
		got := ParseRecords(testHeader + "\n2006,10\n2007,20,15,1\n2008,30,25\n\n,,,")
		require.Len(t, got, 1)
		assert.Equal(t, Record{2008, 30, 25}, got[0])
	})

	t.Run("non-numeric field becomes NaN", func(t *testing.T) {
		got := ParseRecords(testHeader + "\n2010,abc,5")
		want := []Record{{2010, math.NaN(), 5}}
		if diff := cmp.Diff(want, got, nanEq); diff != "" {
			t.Fatalf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty fields still form a record", func(t *testing.T) {
		got := ParseRecords(testHeader + "\n,,")
		require.Len(t, got, 1)
		assert.True(t, math.IsNaN(got[0].Year))
		assert.True(t, math.IsNaN(got[0].Total))
		assert.True(t, math.IsNaN(got[0].Median))
	})

	t.Run("header only", func(t *testing.T) {
		assert.Empty(t, ParseRecords(testHeader))
		assert.Empty(t, ParseRecords(testHeader+"\n"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ParseRecords(""))
	})

	t.Run("first line is dropped even if it looks like data", func(t *testing.T) {
		got := ParseRecords("2006,10,5\n2007,20,15")
		require.Len(t, got, 1)
		assert.Equal(t, 2007.0, got[0].Year)
	})
}

func TestParseRecords_NeverKeepsTwoOrFourFieldLines(t *testing.T) {
	lines := []string{
		"2006,10",
		"2006,10,5,1",
		"abc,def",
		"1,2,3,4",
		"2050",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			assert.Empty(t, ParseRecords(testHeader+"\n"+line))
		})
	}
}
