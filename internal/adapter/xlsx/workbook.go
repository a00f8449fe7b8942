// Package xlsx renders a report as a spreadsheet download.
package xlsx

import (
	"fmt"
	"math"

	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	// Filename is the download name for the workbook.
	Filename = "statistics_summary.xlsx"
	// ContentType is the MIME type of the workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	SummarySheet = "Resumen"
	SeriesSheet  = "Serie"
)

// WriteReport builds a workbook with the summary (same header and values as
// the CSV export) and the chart series.
func WriteReport(report *domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRow(f, SummarySheet, 1, toAny(domain.ExportHeader())); err != nil {
		return nil, err
	}
	if err := writeRow(f, SummarySheet, 2, toAny(domain.ExportRow(report.Summary))); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SeriesSheet); err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}
	axis := domain.ChartAxisFor(report.YearRange)
	if err := writeRow(f, SeriesSheet, 1, []any{axis.XLabel, axis.YLabel}); err != nil {
		return nil, err
	}
	for i, p := range report.Series {
		if err := writeRow(f, SeriesSheet, i+2, []any{cellValue(p.Year), cellValue(p.Total)}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// cellValue keeps finite numbers numeric and renders the rest as text.
func cellValue(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.FormatFixed2(v)
	}
	return v
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
