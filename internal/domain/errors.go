package domain

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrSlotConflict        = errors.New("slot already booked")
	ErrAvailabilityUnknown = errors.New("availability unknown")
	ErrIdempotencyConflict = errors.New("idempotency conflict")
	ErrPayment             = errors.New("payment failed")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
)
