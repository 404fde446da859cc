// Package events publishes booking lifecycle events.
package events

import (
	"context"
	"time"

	"cafebook/pkg/kafka"
	"cafebook/pkg/middleware"
	"cafebook/pkg/model"
)

const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"

	SchemaVersion = "1"
	Source        = "cafebook-api"
)

type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	CafeID        string    `json:"cafe_id"`
	SlotID        string    `json:"slot_id"`
	Status        string    `json:"status"`
	CustomerEmail string    `json:"customer_email"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking) error
}

type noopPublisher struct{}

// NewNoopPublisher is used when no Kafka brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, *model.Booking) error {
	return nil
}

type kafkaPublisher struct {
	producer *kafka.Producer
	timeout  time.Duration
}

func NewKafkaPublisher(producer *kafka.Producer, timeout time.Duration) Publisher {
	return &kafkaPublisher{
		producer: producer,
		timeout:  timeout,
	}
}

// Publish is keyed by slot so events for one slot stay ordered. The write is
// detached from request cancellation but bounded by the publish timeout.
func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	msg, err := NewMessage(ctx, eventType, booking)
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	return p.producer.Publish(pubCtx, msg)
}

func NewMessage(ctx context.Context, eventType string, booking *model.Booking) (kafka.Message, error) {
	event := BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		CafeID:        booking.CafeID,
		SlotID:        booking.SlotID,
		Status:        booking.Status,
		CustomerEmail: booking.CustomerEmail,
		OccurredAt:    time.Now().UTC(),
	}

	return kafka.NewMessage().
		WithKey(booking.SlotID).
		WithEventType(eventType).
		WithEventID("").
		WithCorrelationID(middleware.RequestID(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithValue(event).
		Build()
}
