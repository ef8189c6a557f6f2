package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lacque/pkg/kafka"
	"lacque/pkg/logger"
	"lacque/pkg/model"
)

// EventPublisher emits booking lifecycle events for the operator console.
// Publishing is best effort, a failed publish never fails the booking.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event model.BookingEvent) error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaEventPublisher(producer *kafka.Producer, log *logger.Logger) EventPublisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) PublishBookingEvent(ctx context.Context, event model.BookingEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	msg := kafka.NewMessage().
		WithKey(event.MerchantID).
		WithValue(event).
		WithEventID(event.ID).
		WithEventType(event.Type).
		WithSource("wizard").
		Build()

	return p.producer.Publish(ctx, msg)
}

// NopEventPublisher discards events. Used when no broker is configured
// and in tests.
type NopEventPublisher struct{}

func (NopEventPublisher) PublishBookingEvent(ctx context.Context, event model.BookingEvent) error {
	return nil
}
