// Package kafka publishes domain events to Kafka topics with segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"etching/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
)

// Topics routes events by the prefix of their type ("order." or "quote.").
type Topics struct {
	Order string
	Quote string
}

// For returns the topic for eventType or an error for an unrouted prefix.
func (t Topics) For(eventType string) (string, error) {
	prefix, _, _ := strings.Cut(eventType, ".")
	switch prefix {
	case "order":
		return t.Order, nil
	case "quote":
		return t.Quote, nil
	default:
		return "", fmt.Errorf("no topic configured for event type %q", eventType)
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes domain events to Kafka as JSON envelopes.
type Publisher struct {
	writer   messageWriter
	topics   Topics
	producer string
	logger   *slog.Logger
}

// NewWriter builds the writer used in production. Topic is left empty on the
// writer because every message carries its own.
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// NewPublisher wraps writer. producer is stamped on every envelope.
func NewPublisher(writer messageWriter, topics Topics, producer string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		writer:   writer,
		topics:   topics,
		producer: producer,
		logger:   logger.With("component", "kafka_publisher"),
	}
}

// Publish writes all events in one batch. Messages are keyed by aggregate id
// so events of one aggregate stay ordered within a partition.
func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		topic, err := p.topics.For(ev.EventType())
		if err != nil {
			return err
		}

		env, err := NewEnvelope(p.producer, ev)
		if err != nil {
			return err
		}
		value, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("marshal envelope: %w", err)
		}

		msgs = append(msgs, kafka.Message{
			Topic: topic,
			Key:   []byte(ev.AggregateID().String()),
			Value: value,
			Time:  ev.OccurredAt(),
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(ev.EventType())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d messages: %w", len(msgs), err)
	}

	p.logger.Debug("events published", "count", len(msgs))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events. Used when no brokers are configured.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher returns a publisher that only logs.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger.With("component", "noop_publisher")}
}

// Publish logs each event at debug level and drops it.
func (p *NoopPublisher) Publish(_ context.Context, events ...kernel.DomainEvent) error {
	for _, ev := range events {
		p.logger.Debug("event dropped", "event_type", ev.EventType(), "aggregate_id", ev.AggregateID().String())
	}
	return nil
}

// Close is a no-op.
func (p *NoopPublisher) Close() error {
	return nil
}
