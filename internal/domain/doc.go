// Package domain models annual precipitation summaries and the statistics
// derived from them.
//
// # Data Source
//
// The input is a small delimited text file produced by the daily aggregation
// step (see [SummarizeDaily]) from gridded climate projections covering
// 2006-2100. The service fetches the file once per run from disk, over HTTP,
// or from a Kafka topic.
//
// # Input Format
//
//	year,total_precipitation,median_precipitation
//	2006,812.4,1.2
//	2007,790.1,0.9
//
// Line 1 is a header and is always discarded. Lines may end in LF or CRLF.
// There is no quoting or escaping: a line is split on every comma, and only
// lines that produce exactly three fields become a [Record]. Anything else is
// dropped without a diagnostic.
//
// # Numeric Conventions
//
// Fields are parsed permissively by [ParseNumber]: leading whitespace is
// skipped and the longest numeric prefix is used, so "12.5mm" is 12.5 and
// "abc" is not a number. A field with no numeric prefix becomes NaN instead
// of rejecting the line.
//
// NaN is an ordinary value in this package. It fails every range comparison,
// poisons any sum it joins, and is rendered as the literal text "NaN" by
// [FormatFixed2]. An empty input produces NaN means (0/0). None of these
// cases are errors.
//
// # Year Range
//
// Statistics and the chart series are restricted to one closed [YearRange]
// (2006-2100 by default). The same value must feed [FilterRange] on both the
// aggregation path and the chart path so the chart shows exactly the records
// the means were computed from.
package domain
