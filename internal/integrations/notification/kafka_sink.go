package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// MessageWriter подмножество *kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink публикует события в Kafka. Ключ сообщения - номер бронирования,
// поэтому события одной записи попадают в одну партицию по порядку.
type KafkaSink struct {
	writer         MessageWriter
	topicConfirmed string
	topicCancelled string
}

// NewKafkaWriter создает writer для списка брокеров
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaSink создает канал публикации в Kafka
func NewKafkaSink(writer MessageWriter, topicConfirmed, topicCancelled string) *KafkaSink {
	return &KafkaSink{
		writer:         writer,
		topicConfirmed: topicConfirmed,
		topicCancelled: topicCancelled,
	}
}

func (s *KafkaSink) Name() string {
	return "kafka"
}

func (s *KafkaSink) Send(ctx context.Context, event Event) error {
	topic, err := s.topicFor(event.Type)
	if err != nil {
		return err
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to encode event: %v", ErrInternal, err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(event.Payload.BookingReference),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: write to %s: %v", ErrInternal, topic, err)
	}

	return nil
}

// Close закрывает writer
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

func (s *KafkaSink) topicFor(eventType string) (string, error) {
	switch eventType {
	case domain.EventAppointmentConfirmed:
		return s.topicConfirmed, nil
	case domain.EventAppointmentCancelled:
		return s.topicCancelled, nil
	default:
		return "", fmt.Errorf("%w: unknown event type %q", ErrInternal, eventType)
	}
}
