// Package mongo holds helpers shared by the MongoDB repositories.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
)

// WithTimeout bounds ctx by timeout without extending an earlier deadline.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// ParseID converts a hex id, wrapping invalid with the offending value.
func ParseID(id string, invalid error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", invalid, id)
	}
	return oid, nil
}

// IsTransient reports store errors worth retrying: network failures and
// server-side timeouts. A cancelled caller context is never transient.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if driver.IsNetworkError(err) {
		return true
	}
	return driver.IsTimeout(err) && !errors.Is(err, context.DeadlineExceeded)
}

// HexID returns the hex form of an InsertedID.
func HexID(insertedID any) string {
	if oid, ok := insertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}
