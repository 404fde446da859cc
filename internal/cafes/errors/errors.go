package errors

import "errors"

var (
	ErrNotFound = errors.New("cafe not found")

	ErrInvalidID = errors.New("invalid cafe ID format")
)
