package event

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// MessageWriter is the subset of *kafka.Writer the relay uses
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter builds an asynchronous writer for the relay topic. Delivery
// failures are reported through the completion callback and logged.
func NewKafkaWriter(cfg config.KafkaConfig, logger *zap.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		Async:        true,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				logger.Error("Kafka relay delivery failed",
					zap.Int("messages", len(msgs)),
					zap.Error(err))
			}
		},
	}
}

// KafkaRelay forwards every domain event to Kafka as an Envelope. Messages
// are keyed by aggregate id so one aggregate's events share a partition.
type KafkaRelay struct {
	writer MessageWriter
	codec  *Codec
	logger *zap.Logger
}

// NewKafkaRelay creates a relay writing through writer
func NewKafkaRelay(writer MessageWriter, codec *Codec, logger *zap.Logger) *KafkaRelay {
	if codec == nil {
		codec = NewCodec()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaRelay{writer: writer, codec: codec, logger: logger}
}

// EventTypes subscribes the relay to every event
func (r *KafkaRelay) EventTypes() []string { return nil }

// Handle encodes and writes one event
func (r *KafkaRelay) Handle(ctx context.Context, evt shared.DomainEvent) error {
	value, err := r.codec.Encode(evt)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(evt.AggregateID().String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.EventType())},
			{Key: "aggregate_type", Value: []byte(evt.AggregateType())},
		},
		Time: evt.OccurredAt(),
	}
	if err := r.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka relay %s: %w", evt.EventType(), err)
	}
	return nil
}

// Close flushes pending messages and closes the writer
func (r *KafkaRelay) Close() error {
	return r.writer.Close()
}

var _ shared.EventHandler = (*KafkaRelay)(nil)
