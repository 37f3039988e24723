package locations

import "errors"

var (
	ErrLocationNotFound = errors.New("transport location not found")
	ErrInvalidLocation  = errors.New("location must be either a known zone or a custom address")
	ErrInvalidDistance  = errors.New("distance cannot be negative")
	ErrInvalidBanding   = errors.New("transport bands must be strictly increasing in distance with non-decreasing fees")
)
