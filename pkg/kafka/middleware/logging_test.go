package kafka_middleware

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"cafebook/pkg/kafka"
	"cafebook/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestLoggingProducerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: logger.DEBUG, Output: &buf, Service: "test"})

	mw := LoggingProducerMiddleware(log)
	msg := kafka.Message{
		Key:     "slot-1",
		Topic:   "cafebook.bookings",
		Headers: map[string]string{kafka.HeaderEventType: "booking.created"},
	}

	err := mw(context.Background(), msg, func(context.Context, kafka.Message) error { return nil })
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Published message")
	assert.Contains(t, buf.String(), "booking.created")

	buf.Reset()
	boom := errors.New("boom")
	err = mw(context.Background(), msg, func(context.Context, kafka.Message) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "Failed to publish message")
}
