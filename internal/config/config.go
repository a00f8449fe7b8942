package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/precip-summary-service/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Source kinds accepted by SOURCE_KIND.
const (
	SourceFile  = "file"
	SourceHTTP  = "http"
	SourceKafka = "kafka"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	SourceKind      string
	SourcePath      string
	SourceURL       string
	FetchTimeout    time.Duration
	YearMin         float64
	YearMax         float64
	RefreshInterval time.Duration

	KafkaBrokers        []string
	KafkaSourceTopic    string
	KafkaSinkTopic      string
	KafkaGroupID        string
	KafkaPublishEnabled bool

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	GalleryDir     string
	GalleryRender  bool
	ChartCacheSize int
}

// YearRange returns the configured closed year interval.
func (c *Config) YearRange() domain.YearRange {
	return domain.YearRange{Min: c.YearMin, Max: c.YearMax}
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "10s", false)
	if err != nil {
		return nil, err
	}
	refreshInterval, err := parseDuration("REFRESH_INTERVAL", "0s", true)
	if err != nil {
		return nil, err
	}

	yearMin, err := parseYear("YEAR_MIN", domain.DefaultYearRange.Min)
	if err != nil {
		return nil, err
	}
	yearMax, err := parseYear("YEAR_MAX", domain.DefaultYearRange.Max)
	if err != nil {
		return nil, err
	}

	chartCacheSize, err := parseCacheSize()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SourceKind:      sharedcfg.EnvOrDefault("SOURCE_KIND", SourceFile),
		SourcePath:      sharedcfg.EnvOrDefault("SOURCE_PATH", "data/precipitation_summary.csv"),
		SourceURL:       os.Getenv("SOURCE_URL"),
		FetchTimeout:    fetchTimeout,
		YearMin:         yearMin,
		YearMax:         yearMax,
		RefreshInterval: refreshInterval,

		KafkaBrokers:        sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:    sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "precipitation-summary-raw"),
		KafkaSinkTopic:      sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "precipitation-summary-reports"),
		KafkaGroupID:        sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "precip-summary"),
		KafkaPublishEnabled: os.Getenv("KAFKA_PUBLISH_ENABLED") == "true",

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GalleryDir:     sharedcfg.EnvOrDefault("GALLERY_DIR", "output"),
		GalleryRender:  os.Getenv("GALLERY_RENDER") != "false",
		ChartCacheSize: chartCacheSize,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.SourceKind {
	case SourceFile:
		if c.SourcePath == "" {
			return errors.New("SOURCE_PATH is required when SOURCE_KIND is file")
		}
	case SourceHTTP:
		if c.SourceURL == "" {
			return errors.New("SOURCE_URL is required when SOURCE_KIND is http")
		}
	case SourceKafka:
		if c.KafkaSourceTopic == "" {
			return errors.New("KAFKA_SOURCE_TOPIC is required when SOURCE_KIND is kafka")
		}
	default:
		return fmt.Errorf("invalid SOURCE_KIND %q: want file, http or kafka", c.SourceKind)
	}

	if !c.YearRange().Valid() {
		return fmt.Errorf("YEAR_MIN (%g) must not exceed YEAR_MAX (%g)", c.YearMin, c.YearMax)
	}
	if (c.SourceKind == SourceKafka || c.KafkaPublishEnabled) && len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if c.KafkaPublishEnabled && c.KafkaSinkTopic == "" {
		return errors.New("KAFKA_SINK_TOPIC is required when KAFKA_PUBLISH_ENABLED is true")
	}
	return nil
}

func parseDuration(key, def string, allowZero bool) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseYear(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseCacheSize() (int, error) {
	s := os.Getenv("CHART_CACHE_SIZE")
	if s == "" {
		return 64, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid CHART_CACHE_SIZE")
	}
	return n, nil
}
