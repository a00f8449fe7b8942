// Command precipsvc serves the precipitation summary over HTTP and keeps it
// fresh from a file, HTTP or Kafka source.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/precip-summary-service/internal/adapter/chart"
	"github.com/couchcryptid/precip-summary-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/precip-summary-service/internal/adapter/kafka"
	"github.com/couchcryptid/precip-summary-service/internal/adapter/source"
	"github.com/couchcryptid/precip-summary-service/internal/config"
	"github.com/couchcryptid/precip-summary-service/internal/observability"
	"github.com/couchcryptid/precip-summary-service/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	opts := pipeline.Options{
		YearRange:       cfg.YearRange(),
		RefreshInterval: cfg.RefreshInterval,
	}

	var (
		src    pipeline.Source
		reader *kafkaadapter.Reader
	)
	switch cfg.SourceKind {
	case config.SourceHTTP:
		src = source.NewHTTP(cfg.SourceURL, cfg.FetchTimeout, logger)
	case config.SourceKafka:
		reader = kafkaadapter.NewReader(cfg, logger)
		src = reader
		opts.Follow = cfg.RefreshInterval == 0
	default:
		src = source.NewFile(cfg.SourcePath)
	}
	logger.Info("summary source configured", "kind", cfg.SourceKind, "source", src.Name(), "year_min", cfg.YearMin, "year_max", cfg.YearMax)

	renderer := chart.NewRenderer(logger)

	var (
		pubs   pipeline.Publishers
		writer *kafkaadapter.Writer
	)
	if cfg.GalleryRender && cfg.GalleryDir != "" {
		pubs = append(pubs, chart.NewGallery(renderer, cfg.GalleryDir, logger))
		logger.Info("gallery rendering enabled", "dir", cfg.GalleryDir)
	}
	if cfg.KafkaPublishEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		pubs = append(pubs, writer)
		logger.Info("report publishing enabled", "topic", cfg.KafkaSinkTopic)
	}

	var pub pipeline.Publisher
	if len(pubs) > 0 {
		pub = pubs
	}
	p := pipeline.New(src, pub, logger, metrics, opts)

	charts := chart.NewCachedRenderer(renderer, cfg.ChartCacheSize, metrics)
	api := httpadapter.NewAPI(p, charts, metrics, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, api, cfg.GalleryDir, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
