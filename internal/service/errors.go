package service

import "errors"

var (
	// ErrForbidden is returned when an authenticated caller acts on a
	// resource it does not own or lacks the role for.
	ErrForbidden = errors.New("forbidden")

	// ErrOrderDelivered rejects customer cancellation of a delivered order.
	ErrOrderDelivered = errors.New("cannot cancel a delivered order")

	// ErrValidation tags malformed input; handlers map it to 400.
	ErrValidation = errors.New("validation failed")
)
