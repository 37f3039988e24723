package bookings

import "errors"

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrMissingIdentity     = errors.New("booking requires a registered user or complete guest contact details")
	ErrPackageUnavailable  = errors.New("package is not available for booking")
	ErrRoleNotOffered      = errors.New("package does not offer a rate for the requested role")
	ErrMaidCountOutOfRange = errors.New("maid count is outside the package bounds")
	ErrNoAttendees         = errors.New("booking must include at least one attendee")
	ErrDateInPast          = errors.New("booking date must be in the future")
	ErrZeroValueBooking    = errors.New("booking total must be greater than zero")
	ErrSlotUnavailable     = errors.New("requested slot is no longer available")
	ErrTooLateToCancel     = errors.New("booking is too close to the appointment to cancel")
	ErrInvalidTransition   = errors.New("booking status transition not allowed")
	ErrNotOwner            = errors.New("booking belongs to another customer")
)
