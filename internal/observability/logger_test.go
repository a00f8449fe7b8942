package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/couchcryptid/precip-summary-service/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNewLogger_HandlerFormat(t *testing.T) {
	text := NewLogger(&config.Config{LogLevel: "debug", LogFormat: "text"})
	assert.IsType(t, &slog.TextHandler{}, text.Handler())
	assert.True(t, text.Enabled(context.Background(), slog.LevelDebug))

	js := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "json"})
	assert.IsType(t, &slog.JSONHandler{}, js.Handler())
	assert.False(t, js.Enabled(context.Background(), slog.LevelInfo))
}

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()
	a.Fetches.Inc()

	assert.NotSame(t, a.Fetches, b.Fetches)
	assert.NotNil(t, a.Exports.WithLabelValues("csv"))
	assert.NotNil(t, b.ChartCache.WithLabelValues("hit"))
}
