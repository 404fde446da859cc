package errors

import "errors"

var (
	ErrNotFound = errors.New("slot not found")

	ErrInvalidID = errors.New("invalid slot ID format")

	// ErrSlotUnavailable means a conditional claim matched no document: the
	// slot is booked by someone else.
	ErrSlotUnavailable = errors.New("slot is not available")
)
