package bookings

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusConfirmed   Status = "CONFIRMED"
	StatusDepositPaid Status = "DEPOSIT_PAID"
	StatusCompleted   Status = "COMPLETED"
	StatusCancelled   Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDepositPaid, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo encodes the lifecycle: the happy path advances one step
// at a time, and any non-terminal state may be cancelled.
func (s Status) CanTransitionTo(next Status) bool {
	if next == StatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusDepositPaid
	case StatusDepositPaid:
		return next == StatusCompleted
	}
	return false
}
