package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/SscSPs/document_reception_app/internal/core/ports"
	"github.com/SscSPs/document_reception_app/internal/platform/metrics"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes notification events to a single topic, keyed by
// notification ID so events for one notification stay ordered.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}, topic)
}

func newKafkaPublisher(w messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic}
}

var _ ports.NotificationEventPublisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.NotificationEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		metrics.EventPublishTotal.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.NotificationID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		metrics.EventPublishTotal.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	metrics.EventPublishTotal.WithLabelValues(p.topic, "success").Inc()
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events. It is used when no brokers are configured.
type NoopPublisher struct{}

var _ ports.NotificationEventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, domain.NotificationEvent) error { return nil }
func (NoopPublisher) Close() error                                          { return nil }
