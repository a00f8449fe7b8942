package cli

import (
	"fmt"
	"os"

	"github.com/couchcryptid/precip-summary-service/internal/adapter/chart"
	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/spf13/cobra"
)

var (
	chartInput  string
	chartOut    string
	chartWidth  int
	chartHeight int
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the total precipitation series as a PNG line chart",
	Args:  cobra.NoArgs,
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().StringVarP(&chartInput, "input", "i", "", "CSV path or http(s) URL")
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "chart.png", "output PNG path")
	chartCmd.Flags().IntVar(&chartWidth, "width", 800, "image width in pixels")
	chartCmd.Flags().IntVar(&chartHeight, "height", 400, "image height in pixels")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, _ []string) error {
	a, yr, err := analyzeInput(cmd, chartInput)
	if err != nil {
		return err
	}

	png, err := chart.NewRenderer(newLogger(cmd)).RenderPNG(a.Series, domain.ChartAxisFor(yr), chartWidth, chartHeight)
	if err != nil {
		return err
	}
	if err := os.WriteFile(chartOut, png, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", chartOut, err)
	}
	cmd.Printf("wrote %s (%d points)\n", chartOut, len(a.Series))
	return nil
}
