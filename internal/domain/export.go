package domain

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

const (
	// ExportFilename is the download name for the summary blob.
	ExportFilename = "statistics_summary.csv"
	// ExportContentType is the MIME type of the summary blob.
	ExportContentType = "text/csv; charset=utf-8"

	meanTotalLabel  = "Precipitación Total Promedio"
	meanMedianLabel = "Precipitación Mediana Promedio"
)

// ExportHeader returns the two fixed column names of the export.
func ExportHeader() []string {
	return []string{meanTotalLabel, meanMedianLabel}
}

// ExportRow returns both means formatted to two decimals.
func ExportRow(s StatisticsSummary) []string {
	return []string{FormatFixed2(s.MeanTotal), FormatFixed2(s.MeanMedian)}
}

// ExportCSV renders the summary as a header line and a data line. Neither
// value can contain a comma, so no quoting is applied.
func ExportCSV(s StatisticsSummary) []byte {
	return []byte(strings.Join(ExportHeader(), ",") + "\n" + strings.Join(ExportRow(s), ","))
}

// SummaryText renders the two-line on-screen summary.
func SummaryText(s StatisticsSummary) string {
	return meanTotalLabel + ": " + FormatFixed2(s.MeanTotal) + "\n" +
		meanMedianLabel + ": " + FormatFixed2(s.MeanMedian)
}

// FormatFixed2 formats v with exactly two decimals. NaN renders as "NaN" and
// infinities as "Infinity"/"-Infinity". Ties are rounded away from zero using
// the exact binary value of v, and magnitudes of 1e21 or more fall back to
// exponent notation.
func FormatFixed2(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	scaled := new(big.Rat).SetFloat64(v)
	scaled.Mul(scaled, big.NewRat(100, 1))

	num, den := scaled.Num(), scaled.Denom()
	n, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Lsh(rem, 1).Cmp(den) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	for len(digits) < 3 {
		digits = "0" + digits
	}
	return sign + digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}
