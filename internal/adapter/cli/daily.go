package cli

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/spf13/cobra"
)

var (
	dailyDir      string
	dailyOut      string
	dailyStatsOut string
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Build the annual year,total,median CSV from daily .dat grid files",
	Long: `daily walks a directory for .dat files holding "id year month day_1 ... day_31"
rows, drops the -999 missing sentinel, and writes one annual total and median
per year in the layout the summary commands read. It also prints headline
statistics, and writes them as CSV when --stats-out is set.`,
	Args: cobra.NoArgs,
	RunE: runDaily,
}

func init() {
	dailyCmd.Flags().StringVarP(&dailyDir, "dir", "d", "", "directory containing .dat files")
	dailyCmd.Flags().StringVarP(&dailyOut, "out", "o", "precipitation_summary.csv", "output CSV path")
	dailyCmd.Flags().StringVar(&dailyStatsOut, "stats-out", "", "optional statistics CSV path")
	_ = dailyCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	logger := newLogger(cmd)

	var (
		rows  []domain.DailyRow
		stats domain.DailyStats
		files int
	)
	err := filepath.WalkDir(dailyDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".dat") {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		fileRows, fileStats, err := domain.ParseDaily(f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("parsed daily file", "path", path, "rows", fileStats.Rows, "malformed", fileStats.Malformed)

		rows = append(rows, fileRows...)
		stats.Add(fileStats)
		files++
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", dailyDir, err)
	}
	if files == 0 {
		return fmt.Errorf("no .dat files under %s", dailyDir)
	}

	annual := domain.SummarizeDaily(rows)
	var buf bytes.Buffer
	if err := domain.WriteAnnualCSV(&buf, annual); err != nil {
		return err
	}
	if err := os.WriteFile(dailyOut, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dailyOut, err)
	}

	cmd.Printf("files: %d, rows: %d, malformed: %d\n", files, stats.Rows, stats.Malformed)
	cmd.Printf("missing: %.2f%% of %d day cells\n", stats.MissingPercent(), stats.Cells)
	cmd.Printf("wrote %s (%d years)\n", dailyOut, len(annual))

	summary, ok := domain.SummarizeStatistics(rows, stats, annual)
	if !ok {
		return nil
	}
	cmd.Printf("annual average: %.2f, total: %.2f, mean change: %s\n",
		summary.AnnualAverage, summary.AnnualTotal, formatNumber(summary.AnnualMeanChange))
	cmd.Printf("wettest year: %d, driest year: %d\n", summary.WettestYear, summary.DriestYear)
	cmd.Printf("monthly average: highest %.2f, lowest %.2f\n",
		summary.HighestMonthlyAverage, summary.LowestMonthlyAverage)

	if dailyStatsOut == "" {
		return nil
	}
	buf.Reset()
	if err := domain.WriteStatisticsCSV(&buf, summary); err != nil {
		return err
	}
	if err := os.WriteFile(dailyStatsOut, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dailyStatsOut, err)
	}
	cmd.Printf("wrote %s\n", dailyStatsOut)
	return nil
}
