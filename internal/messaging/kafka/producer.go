package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/pkg/logger"
)

// Producer публикует события бронирования в Kafka
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   logger.Logger
}

// NewProducer создает новый Kafka producer
func NewProducer(brokers []string, topic string, log logger.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return newProducer(producer, topic, log), nil
}

func newProducer(producer sarama.SyncProducer, topic string, log logger.Logger) *Producer {
	if topic == "" {
		topic = DefaultOrdersTopic
	}
	return &Producer{
		producer: producer,
		topic:    topic,
		logger:   log.With("component", "kafka-producer"),
	}
}

// PublishOrderCreated публикует событие создания брони.
// Ключ сообщения - ID машины, чтобы события одной машины попадали в одну партицию.
func (p *Producer) PublishOrderCreated(ctx context.Context, event domain.OrderCreatedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(NewOrderCreated(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	key := event.CarID.String()
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderEventType), Value: []byte(EventTypeOrderCreated)},
		},
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.Debug("Order event sent to kafka", map[string]interface{}{
		"topic":     p.topic,
		"key":       key,
		"partition": partition,
		"offset":    offset,
	})
	return nil
}

// Close закрывает producer
func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}

// NoopPublisher используется, когда Kafka отключена
type NoopPublisher struct{}

// PublishOrderCreated ничего не делает
func (NoopPublisher) PublishOrderCreated(context.Context, domain.OrderCreatedEvent) error {
	return nil
}
