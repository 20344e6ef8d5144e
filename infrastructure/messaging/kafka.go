/*
Package messaging delivers outbox events to kafka.

The publisher implements the outbox worker's publisher interface; when kafka
is not configured the worker falls back to the logging publisher instead.
*/
package messaging

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"storefront/config"
	"storefront/pkg/logger"
)

// KafkaPublisher writes outbox events to a kafka topic, keyed by event type
// so consumers see per-type ordering
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the configured brokers and topic
func NewKafkaPublisher(cfg *config.KafkaConfig) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	logger.Info("Kafka publisher configured",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
	)
	return &KafkaPublisher{writer: writer}
}

// Publish writes one event to the topic
func (p *KafkaPublisher) Publish(ctx context.Context, eventType, payload string) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: []byte(payload),
	})
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
