package cli

import (
	"math"
	"strconv"

	"github.com/spf13/cobra"
)

var seriesInput string

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Print the chart series as year,total rows",
	Args:  cobra.NoArgs,
	RunE:  runSeries,
}

func init() {
	seriesCmd.Flags().StringVarP(&seriesInput, "input", "i", "", "CSV path or http(s) URL")
	rootCmd.AddCommand(seriesCmd)
}

func runSeries(cmd *cobra.Command, _ []string) error {
	a, _, err := analyzeInput(cmd, seriesInput)
	if err != nil {
		return err
	}
	cmd.Println("year,total")
	for _, p := range a.Series {
		cmd.Println(formatNumber(p.Year) + "," + formatNumber(p.Total))
	}
	return nil
}

func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
