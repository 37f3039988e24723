package notifications

import (
	"context"
	"fmt"
	"time"

	"glowbook/internal/bookings"
	"glowbook/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer publishes booking lifecycle events. It satisfies the booking
// service's EventPublisher dependency.
type Producer interface {
	PublishBookingEvent(ctx context.Context, eventType string, booking *bookings.Booking) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka event producer
type KafkaProducerConfig struct {
	Brokers          []string
	BookingTopic     string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		BookingTopic:     "booking-events",
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
	}
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
	log      *logger.Logger
}

// NewKafkaProducer creates a new Kafka booking event producer
func NewKafkaProducer(config *KafkaProducerConfig, log *logger.Logger) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one booking's events on one partition.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	if log == nil {
		log = logger.GetDefault()
	}

	return &kafkaProducer{
		producer: producer,
		config:   config,
		log:      log,
	}, nil
}

func (p *kafkaProducer) PublishBookingEvent(ctx context.Context, eventType string, booking *bookings.Booking) error {
	event := NewBookingEvent(eventType, booking)

	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.BookingTopic,
		Key:       sarama.StringEncoder(event.PartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Timestamp: event.OccurredAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(eventType)},
			{Key: []byte("event_id"), Value: []byte(event.EventID.String())},
		},
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	p.log.InfoWithContext(ctx, "Booking event published", map[string]interface{}{
		"event_type":     eventType,
		"booking_number": booking.BookingNumber,
		"partition":      partition,
		"offset":         offset,
	})
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.producer.Close()
}
