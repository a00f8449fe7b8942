package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/couchcryptid/precip-summary-service/internal/config"
	kafkago "github.com/segmentio/kafka-go"
)

// Reader consumes summary CSV payloads from a Kafka topic.
// It implements pipeline.Source and pipeline.Acker: each Fetch returns the
// next message, and Ack commits it once the report has been published.
type Reader struct {
	reader *kafkago.Reader
	topic  string
	logger *slog.Logger

	mu      sync.Mutex
	pending *kafkago.Message
}

// NewReader creates a consumer-group reader for the configured source topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaSourceTopic,
		GroupID:  cfg.KafkaGroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Reader{reader: r, topic: cfg.KafkaSourceTopic, logger: logger}
}

func (r *Reader) Name() string { return "kafka:" + r.topic }

// Fetch blocks until a message is available and returns its value. The
// message stays uncommitted until Ack.
func (r *Reader) Fetch(ctx context.Context) ([]byte, error) {
	msg, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch message: %w", err)
	}

	r.mu.Lock()
	r.pending = &msg
	r.mu.Unlock()

	r.logger.Debug("payload received", messageAttrs(msg)...)
	return msg.Value, nil
}

// Ack commits the offset of the last fetched message. It is a no-op when
// nothing is pending.
func (r *Reader) Ack(ctx context.Context) error {
	r.mu.Lock()
	msg := r.pending
	r.pending = nil
	r.mu.Unlock()

	if msg == nil {
		return nil
	}
	if err := r.reader.CommitMessages(ctx, *msg); err != nil {
		return fmt.Errorf("commit offset: %w", err)
	}
	r.logger.Debug("offset committed", messageAttrs(*msg)...)
	return nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// messageAttrs returns the log attributes identifying msg.
func messageAttrs(msg kafkago.Message) []any {
	attrs := []any{
		"topic", msg.Topic,
		"partition", msg.Partition,
		"offset", msg.Offset,
		"bytes", len(msg.Value),
	}
	if len(msg.Key) > 0 {
		attrs = append(attrs, "key", string(msg.Key))
	}
	return attrs
}
