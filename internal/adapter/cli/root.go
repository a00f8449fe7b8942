// Package cli implements the precipctl command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/precip-summary-service/internal/adapter/source"
	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/couchcryptid/precip-summary-service/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	yearMin      float64
	yearMax      float64
	fetchTimeout time.Duration
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "precipctl",
	Short: "Summarize projected annual precipitation",
	Long: `precipctl reads a year,total,median CSV, keeps the rows inside the
configured year range, and prints or exports the mean total and mean median
precipitation.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&yearMin, "year-min", domain.DefaultYearRange.Min, "first year included in the summary")
	pf.Float64Var(&yearMax, "year-max", domain.DefaultYearRange.Max, "last year included in the summary")
	pf.DurationVar(&fetchTimeout, "timeout", 10*time.Second, "timeout for HTTP inputs")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func yearRange() (domain.YearRange, error) {
	yr := domain.YearRange{Min: yearMin, Max: yearMax}
	if !yr.Valid() {
		return yr, fmt.Errorf("--year-min (%g) must not exceed --year-max (%g)", yearMin, yearMax)
	}
	return yr, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// newSource picks an HTTP source for http(s) URLs and a file source otherwise.
func newSource(input string, logger *slog.Logger) pipeline.Source {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return source.NewHTTP(input, fetchTimeout, logger)
	}
	return source.NewFile(input)
}

// fetchInput returns the raw payload for input.
func fetchInput(cmd *cobra.Command, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("--input is required")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	payload, err := newSource(input, newLogger(cmd)).Fetch(ctx)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// analyzeInput fetches input and runs the analysis over the flag year range.
func analyzeInput(cmd *cobra.Command, input string) (domain.Analysis, domain.YearRange, error) {
	yr, err := yearRange()
	if err != nil {
		return domain.Analysis{}, yr, err
	}
	payload, err := fetchInput(cmd, input)
	if err != nil {
		return domain.Analysis{}, yr, err
	}
	return domain.Analyze(payload, yr), yr, nil
}
