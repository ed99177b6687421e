package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"agriconnect/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher implements EventPublisher on a Kafka topic, keyed by order number
type kafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on the given brokers
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) service.EventPublisher {
	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
		logger: logger,
	}
}

func (p *kafkaPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	attributes := eventAttributes(event)
	headers := make([]kafka.Header, 0, len(attributes))
	for k, v := range attributes {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	msg := kafka.Message{
		Key:     []byte(event.OrderNumber),
		Value:   value,
		Headers: headers,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to write kafka message")
	}

	p.logger.InfoContext(ctx, "[Kafka] Event published",
		slog.String("type", event.Type),
		slog.String("order_number", event.OrderNumber),
	)

	return nil
}

func (p *kafkaPublisher) Close() error {
	return errors.WithStack(p.writer.Close())
}
