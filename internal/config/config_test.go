package config

import (
	"testing"
	"time"

	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceFile, cfg.SourceKind)
	assert.Equal(t, "data/precipitation_summary.csv", cfg.SourcePath)
	assert.Empty(t, cfg.SourceURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, domain.DefaultYearRange, cfg.YearRange())
	assert.Zero(t, cfg.RefreshInterval)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "precipitation-summary-raw", cfg.KafkaSourceTopic)
	assert.Equal(t, "precipitation-summary-reports", cfg.KafkaSinkTopic)
	assert.Equal(t, "precip-summary", cfg.KafkaGroupID)
	assert.False(t, cfg.KafkaPublishEnabled)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "output", cfg.GalleryDir)
	assert.True(t, cfg.GalleryRender)
	assert.Equal(t, 64, cfg.ChartCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("SOURCE_KIND", "http")
	t.Setenv("SOURCE_URL", "http://data.local/precipitation_summary.csv")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("YEAR_MIN", "2020")
	t.Setenv("YEAR_MAX", "2050")
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_PUBLISH_ENABLED", "true")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("GALLERY_DIR", "/srv/gallery")
	t.Setenv("GALLERY_RENDER", "false")
	t.Setenv("CHART_CACHE_SIZE", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceHTTP, cfg.SourceKind)
	assert.Equal(t, "http://data.local/precipitation_summary.csv", cfg.SourceURL)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, domain.YearRange{Min: 2020, Max: 2050}, cfg.YearRange())
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.True(t, cfg.KafkaPublishEnabled)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/srv/gallery", cfg.GalleryDir)
	assert.False(t, cfg.GalleryRender)
	assert.Equal(t, 8, cfg.ChartCacheSize)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown source kind", map[string]string{"SOURCE_KIND": "ftp"}, "SOURCE_KIND"},
		{"http without url", map[string]string{"SOURCE_KIND": "http"}, "SOURCE_URL"},
		{"bad fetch timeout", map[string]string{"FETCH_TIMEOUT": "soon"}, "FETCH_TIMEOUT"},
		{"zero fetch timeout", map[string]string{"FETCH_TIMEOUT": "0s"}, "FETCH_TIMEOUT"},
		{"negative refresh interval", map[string]string{"REFRESH_INTERVAL": "-1s"}, "REFRESH_INTERVAL"},
		{"non-numeric year", map[string]string{"YEAR_MIN": "two thousand"}, "YEAR_MIN"},
		{"inverted range", map[string]string{"YEAR_MIN": "2100", "YEAR_MAX": "2006"}, "YEAR_MAX"},
		{"bad cache size", map[string]string{"CHART_CACHE_SIZE": "0"}, "CHART_CACHE_SIZE"},
		{"bad shutdown timeout", map[string]string{"SHUTDOWN_TIMEOUT": "nope"}, "SHUTDOWN_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_SingleYearRange(t *testing.T) {
	t.Setenv("YEAR_MIN", "2050")
	t.Setenv("YEAR_MAX", "2050")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.YearRange().Contains(2050))
}
