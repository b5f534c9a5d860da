package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrFlightDateInPast = errors.New("flight date cannot be in the past")

	ErrInvalidStatusTransition = errors.New("invalid booking status transition")
)
