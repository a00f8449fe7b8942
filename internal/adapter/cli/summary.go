package cli

import (
	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/spf13/cobra"
)

var summaryInput string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the mean total and mean median precipitation",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryInput, "input", "i", "", "CSV path or http(s) URL")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	a, _, err := analyzeInput(cmd, summaryInput)
	if err != nil {
		return err
	}
	cmd.Println(domain.SummaryText(a.Summary))
	return nil
}
