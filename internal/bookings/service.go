package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowbook/internal/calendar"
	"glowbook/internal/locations"
	"glowbook/internal/packages"
	"glowbook/internal/pricing"
	"glowbook/pkg/logger"

	"github.com/google/uuid"
)

// Booking event types published on the notification stream.
const (
	EventBookingCreated     = "booking.created"
	EventBookingConfirmed   = "booking.confirmed"
	EventBookingDepositPaid = "booking.deposit_paid"
	EventBookingCompleted   = "booking.completed"
	EventBookingCancelled   = "booking.cancelled"
)

// PackageCatalog is the slice of the packages service this package needs.
type PackageCatalog interface {
	GetPackage(ctx context.Context, id uuid.UUID) (*packages.ServicePackage, error)
}

// TransportQuoter resolves transport fees for either location arm.
type TransportQuoter interface {
	TransportFee(ctx context.Context, loc locations.Location) (float64, error)
}

// AvailabilityStore claims and releases calendar slots. Reserve is the
// single authority on slot exclusivity.
type AvailabilityStore interface {
	Reserve(ctx context.Context, date, timeOfDay string, bookingID uuid.UUID) error
	ReleaseBooking(ctx context.Context, bookingID uuid.UUID) error
}

// EventPublisher emits booking lifecycle events. Publishing is best-effort;
// a broken broker never fails a booking operation.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, booking *Booking) error
}

// CancelActor identifies who is asking for a cancellation.
type CancelActor struct {
	UserID  *uuid.UUID
	IsAdmin bool
}

// Service interface defines the contract for booking business logic
type Service interface {
	Submit(ctx context.Context, req SubmitBookingRequest) (*BookingConfirmationResponse, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByNumber(ctx context.Context, bookingNumber string) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	Confirm(ctx context.Context, id uuid.UUID) (*Booking, error)
	MarkDepositPaid(ctx context.Context, id uuid.UUID) (*Booking, error)
	Complete(ctx context.Context, id uuid.UUID) (*Booking, error)
	Cancel(ctx context.Context, id uuid.UUID, actor CancelActor) error
	SetAdminNotes(ctx context.Context, id uuid.UUID, notes string) (*Booking, error)
}

type service struct {
	repo         Repository
	catalog      PackageCatalog
	transport    TransportQuoter
	availability AvailabilityStore
	publisher    EventPublisher
	calculator   *pricing.Calculator

	cancellationCutoff time.Duration
	submitTimeout      time.Duration
	now                func() time.Time
	log                *logger.Logger
}

// NewService wires the booking orchestrator. publisher may be nil when the
// broker is disabled.
func NewService(
	repo Repository,
	catalog PackageCatalog,
	transport TransportQuoter,
	availability AvailabilityStore,
	publisher EventPublisher,
	calculator *pricing.Calculator,
	cancellationCutoff time.Duration,
	submitTimeout time.Duration,
	log *logger.Logger,
) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo:               repo,
		catalog:            catalog,
		transport:          transport,
		availability:       availability,
		publisher:          publisher,
		calculator:         calculator,
		cancellationCutoff: cancellationCutoff,
		submitTimeout:      submitTimeout,
		now:                time.Now,
		log:                log,
	}
}

// Submit validates, prices, reserves the slot and persists the booking.
// The slot claim happens before the insert; if the insert fails the claim
// is rolled back so the slot is not leaked.
func (s *service) Submit(ctx context.Context, req SubmitBookingRequest) (*BookingConfirmationResponse, error) {
	if s.submitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.submitTimeout)
		defer cancel()
	}

	identity := req.identity()
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	pkg, err := s.catalog.GetPackage(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, packages.ErrPackageNotFound) {
			return nil, ErrPackageUnavailable
		}
		return nil, fmt.Errorf("failed to load package: %w", err)
	}
	if !pkg.IsActive {
		return nil, ErrPackageUnavailable
	}

	counts := pricing.AttendeeCounts{
		Brides:  req.Brides,
		Maids:   req.Maids,
		Mothers: req.Mothers,
		Others:  req.Others,
	}
	if err := s.validateAttendees(pkg, counts); err != nil {
		return nil, err
	}

	location := req.location()
	if err := location.Validate(); err != nil {
		return nil, err
	}

	slotDate, err := calendar.ParseDate(req.SlotDate)
	if err != nil {
		return nil, err
	}
	slotTime, err := calendar.ParseTime(req.SlotTime)
	if err != nil {
		return nil, err
	}
	slotStart, err := calendar.SlotStart(slotDate, slotTime, nil)
	if err != nil {
		return nil, err
	}
	if !slotStart.After(s.now()) {
		return nil, ErrDateInPast
	}

	transportFee, err := s.transport.TransportFee(ctx, location)
	if err != nil {
		return nil, err
	}

	quote, err := s.calculator.Compute(pkg.Rates(), counts, transportFee)
	if err != nil {
		return nil, err
	}
	if quote.Total <= 0 {
		return nil, ErrZeroValueBooking
	}

	bookingNumber, err := s.nextBookingNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking number: %w", err)
	}

	booking := &Booking{
		ID:            uuid.New(),
		BookingNumber: bookingNumber,
		Status:        StatusPending,
		UserID:        identity.UserID,
		PackageID:     pkg.ID,
		Brides:        counts.Brides,
		Maids:         counts.Maids,
		Mothers:       counts.Mothers,
		Others:        counts.Others,
		LocationID:    location.LocationID,
		SlotDate:      slotDate,
		SlotTime:      slotTime,
		Subtotal:      quote.Subtotal,
		TransportCost: quote.Transport,
		TotalAmount:   quote.Total,
		DepositAmount: quote.Deposit,
	}
	if identity.Guest != nil {
		booking.GuestName = identity.Guest.Name
		booking.GuestEmail = identity.Guest.Email
		booking.GuestPhone = identity.Guest.Phone
	}
	if location.Custom != nil {
		booking.CustomAddress = location.Custom.Address
		km := location.Custom.DistanceKm
		booking.CustomDistanceKm = &km
	}

	if err := s.availability.Reserve(ctx, slotDate, slotTime, booking.ID); err != nil {
		if errors.Is(err, calendar.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("failed to reserve slot: %w", err)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		// The slot was claimed for a booking that now does not exist;
		// release it before reporting the failure.
		if releaseErr := s.availability.ReleaseBooking(context.WithoutCancel(ctx), booking.ID); releaseErr != nil {
			s.log.ErrorWithContext(ctx, "Failed to roll back slot reservation", releaseErr, map[string]interface{}{
				"booking_number": bookingNumber,
				"slot_date":      slotDate,
				"slot_time":      slotTime,
			})
		} else {
			s.log.LogReservationRollback(ctx, slotDate, slotTime, err)
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.log.LogBookingCreated(ctx, booking.BookingNumber, booking.PackageID.String(), booking.TotalAmount)
	s.publish(ctx, EventBookingCreated, booking)

	return newConfirmationResponse(booking), nil
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByNumber(ctx context.Context, bookingNumber string) (*Booking, error) {
	return s.repo.GetByNumber(ctx, bookingNumber)
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.GetUserBookings(ctx, userID, query)
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.GetAllBookings(ctx, query)
}

func (s *service) Confirm(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.advance(ctx, id, StatusConfirmed, EventBookingConfirmed)
}

func (s *service) MarkDepositPaid(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.advance(ctx, id, StatusDepositPaid, EventBookingDepositPaid)
}

func (s *service) Complete(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.advance(ctx, id, StatusCompleted, EventBookingCompleted)
}

func (s *service) advance(ctx context.Context, id uuid.UUID, next Status, eventType string) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
	}

	stamp := s.now()
	if err := s.repo.UpdateStatus(ctx, id, next, &stamp); err != nil {
		return nil, err
	}

	from := booking.Status
	booking.Status = next
	switch next {
	case StatusDepositPaid:
		booking.DepositPaidAt = &stamp
	case StatusCompleted:
		booking.CompletedAt = &stamp
	}

	s.log.LogBookingStatusChanged(ctx, booking.BookingNumber, string(from), string(next))
	s.publish(ctx, eventType, booking)
	return booking, nil
}

// Cancel releases the booking's slot and marks it cancelled. Cancelling a
// booking that is already cancelled is a no-op. Customers must cancel
// before the cutoff; admins may cancel any non-terminal booking at any time.
func (s *service) Cancel(ctx context.Context, id uuid.UUID, actor CancelActor) error {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status == StatusCancelled {
		return nil
	}
	if booking.Status.IsTerminal() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, StatusCancelled)
	}

	if !actor.IsAdmin {
		if actor.UserID == nil || !booking.IsOwnedBy(*actor.UserID) {
			return ErrNotOwner
		}
		slotStart, err := calendar.SlotStart(booking.SlotDate, booking.SlotTime, nil)
		if err != nil {
			return err
		}
		if slotStart.Sub(s.now()) < s.cancellationCutoff {
			return ErrTooLateToCancel
		}
	}

	stamp := s.now()
	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled, &stamp); err != nil {
		return err
	}

	if err := s.availability.ReleaseBooking(ctx, booking.ID); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to release slot for cancelled booking", err, map[string]interface{}{
			"booking_number": booking.BookingNumber,
		})
	}

	booking.Status = StatusCancelled
	booking.CancelledAt = &stamp

	s.log.LogBookingCancelled(ctx, booking.BookingNumber, actor.IsAdmin)
	s.publish(ctx, EventBookingCancelled, booking)
	return nil
}

func (s *service) SetAdminNotes(ctx context.Context, id uuid.UUID, notes string) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAdminNotes(ctx, id, notes); err != nil {
		return nil, err
	}

	booking.AdminNotes = notes
	return booking, nil
}

func (s *service) validateAttendees(pkg *packages.ServicePackage, counts pricing.AttendeeCounts) error {
	if counts.Brides < 0 || counts.Maids < 0 || counts.Mothers < 0 || counts.Others < 0 {
		return pricing.ErrNegativeCount
	}
	if counts.Brides+counts.Maids+counts.Mothers+counts.Others == 0 {
		return ErrNoAttendees
	}

	roleCounts := []struct {
		role  string
		count int
	}{
		{"bride", counts.Brides},
		{"maid", counts.Maids},
		{"mother", counts.Mothers},
		{"other", counts.Others},
	}
	for _, rc := range roleCounts {
		if rc.count > 0 && !pkg.OffersRole(rc.role) {
			return fmt.Errorf("%w: %s", ErrRoleNotOffered, rc.role)
		}
	}

	if pkg.MinMaids != nil && counts.Maids > 0 && counts.Maids < *pkg.MinMaids {
		return ErrMaidCountOutOfRange
	}
	if pkg.MaxMaids != nil && counts.Maids > *pkg.MaxMaids {
		return ErrMaidCountOutOfRange
	}
	return nil
}

// nextBookingNumber yields BK-<year>-<seq>, sequence scoped to the year.
func (s *service) nextBookingNumber(ctx context.Context) (string, error) {
	year := s.now().Year()
	seq, err := s.repo.NextSequence(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BK-%d-%04d", year, seq), nil
}

func (s *service) publish(ctx context.Context, eventType string, booking *Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishBookingEvent(ctx, eventType, booking); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to publish booking event", err, map[string]interface{}{
			"event_type":     eventType,
			"booking_number": booking.BookingNumber,
		})
	}
}
