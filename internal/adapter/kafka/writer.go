package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/precip-summary-service/internal/config"
	"github.com/couchcryptid/precip-summary-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes the exported summary of each report to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes the report's CSV export as a single message keyed by run id.
func (w *Writer) Publish(ctx context.Context, report *domain.Report) error {
	if err := w.writer.WriteMessages(ctx, serializeToMessage(report)); err != nil {
		return fmt.Errorf("publish report %s: %w", report.RunID, err)
	}
	w.logger.Debug("report published", "run_id", report.RunID, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage renders a Report into the export blob and its headers.
func serializeToMessage(report *domain.Report) kafkago.Message {
	return kafkago.Message{
		Key:   []byte(report.RunID),
		Value: domain.ExportCSV(report.Summary),
		Headers: []kafkago.Header{
			{Key: "run_id", Value: []byte(report.RunID)},
			{Key: "content_type", Value: []byte(domain.ExportContentType)},
			{Key: "filename", Value: []byte(domain.ExportFilename)},
			{Key: "computed_at", Value: []byte(report.ComputedAt.Format(time.RFC3339))},
		},
	}
}
