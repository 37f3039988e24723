package packages

import "errors"

var (
	ErrPackageNotFound = errors.New("service package not found")
	ErrInvalidType     = errors.New("invalid package type")
	ErrNegativeRate    = errors.New("role rates cannot be negative")
	ErrMaidBoundsOrder = errors.New("max maids must be greater than or equal to min maids")
)
