package cli

import (
	"fmt"
	"os"

	"github.com/couchcryptid/precip-summary-service/internal/adapter/xlsx"
	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/spf13/cobra"
)

var (
	exportInput  string
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the summary to statistics_summary.csv or .xlsx",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "CSV path or http(s) URL")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (defaults to the download name for the format)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "csv or xlsx")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportFormat != "csv" && exportFormat != "xlsx" {
		return fmt.Errorf("invalid --format %q: want csv or xlsx", exportFormat)
	}

	a, yr, err := analyzeInput(cmd, exportInput)
	if err != nil {
		return err
	}

	out := exportOut
	var data []byte
	switch exportFormat {
	case "xlsx":
		if out == "" {
			out = xlsx.Filename
		}
		data, err = xlsx.WriteReport(&domain.Report{YearRange: yr, Analysis: a})
		if err != nil {
			return err
		}
	default:
		if out == "" {
			out = domain.ExportFilename
		}
		data = domain.ExportCSV(a.Summary)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	cmd.Printf("wrote %s (%d records)\n", out, a.Summary.Count)
	return nil
}
