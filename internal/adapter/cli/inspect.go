package cli

import (
	"errors"
	"strings"

	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/spf13/cobra"
)

var (
	inspectInput  string
	inspectStrict bool
)

var errNotClean = errors.New("input has anomalies")

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Report lines and values the summary silently skips",
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectInput, "input", "i", "", "CSV path or http(s) URL")
	inspectCmd.Flags().BoolVar(&inspectStrict, "strict", false, "exit non-zero when any anomaly is found")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
	yr, err := yearRange()
	if err != nil {
		return err
	}
	payload, err := fetchInput(cmd, inspectInput)
	if err != nil {
		return err
	}

	d := domain.Diagnose(payload, yr)
	cmd.Printf("data lines:     %d (%d blank)\n", d.DataLines, d.Blank)
	cmd.Printf("records:        %d\n", d.Records)
	cmd.Printf("dropped lines:  %d%s\n", len(d.Dropped), lineList(d.Dropped))
	cmd.Printf("NaN year:       %d\n", d.NaNYear)
	cmd.Printf("NaN total:      %d\n", d.NaNTotal)
	cmd.Printf("NaN median:     %d\n", d.NaNMedian)
	cmd.Printf("out of range:   %d\n", d.OutOfRange)
	cmd.Printf("duplicate years: %d%s\n", len(d.DuplicateYears), yearList(d.DuplicateYears))

	if d.Clean() {
		cmd.Println("OK")
		return nil
	}
	if inspectStrict {
		return errNotClean
	}
	return nil
}

func lineList(lines []int) string {
	if len(lines) == 0 {
		return ""
	}
	parts := make([]string, len(lines))
	for i, n := range lines {
		parts[i] = formatNumber(float64(n))
	}
	return " (lines " + strings.Join(parts, ", ") + ")"
}

func yearList(years []float64) string {
	if len(years) == 0 {
		return ""
	}
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = formatNumber(y)
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
