package calendar

import "errors"

var (
	ErrSlotTaken         = errors.New("slot is already taken")
	ErrSlotNotFound      = errors.New("slot is not blocked")
	ErrSlotHeldByBooking = errors.New("slot is held by a booking and cannot be unblocked directly")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime       = errors.New("invalid time, expected HH:MM")
	ErrInvalidRange      = errors.New("invalid date range")
)
