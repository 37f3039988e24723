package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"glowbook/internal/calendar"
	"glowbook/internal/locations"
	"glowbook/internal/packages"
	"glowbook/internal/pricing"
	"glowbook/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUUID() uuid.UUID { return uuid.New() }

// fixedNow keeps slot-date arithmetic deterministic across test runs.
var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)

type fakeBookingRepo struct {
	mu         sync.Mutex
	bookings   map[uuid.UUID]*Booking
	seq        map[int]int
	failCreate error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[uuid.UUID]*Booking),
		seq:      make(map[int]int),
	}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return f.failCreate
	}
	booking.CreatedAt = fixedNow
	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByNumber(ctx context.Context, bookingNumber string) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.BookingNumber == bookingNumber {
			copied := *b
			return &copied, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, stampedAt *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	b.Status = status
	if stampedAt != nil {
		switch status {
		case StatusDepositPaid:
			b.DepositPaidAt = stampedAt
		case StatusCancelled:
			b.CancelledAt = stampedAt
		case StatusCompleted:
			b.CompletedAt = stampedAt
		}
	}
	return nil
}

func (f *fakeBookingRepo) UpdateAdminNotes(ctx context.Context, id uuid.UUID, notes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	b.AdminNotes = notes
	return nil
}

func (f *fakeBookingRepo) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Booking
	for _, b := range f.bookings {
		if b.IsOwnedBy(userID) {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Booking
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) NextSequence(ctx context.Context, year int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq[year]++
	return f.seq[year], nil
}

type fakeCatalog struct {
	pkgs map[uuid.UUID]*packages.ServicePackage
}

func (f *fakeCatalog) GetPackage(ctx context.Context, id uuid.UUID) (*packages.ServicePackage, error) {
	pkg, ok := f.pkgs[id]
	if !ok {
		return nil, packages.ErrPackageNotFound
	}
	return pkg, nil
}

type fakeQuoter struct {
	fee float64
	err error
}

func (f *fakeQuoter) TransportFee(ctx context.Context, loc locations.Location) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if err := loc.Validate(); err != nil {
		return 0, err
	}
	if loc.LocationID != nil {
		return f.fee, nil
	}
	if loc.Custom.DistanceKm <= 10 {
		return 0, nil
	}
	return f.fee, nil
}

// fakeAvailability mirrors the unique-index semantics of the real store.
type fakeAvailability struct {
	mu    sync.Mutex
	slots map[string]uuid.UUID
}

func newFakeAvailability() *fakeAvailability {
	return &fakeAvailability{slots: make(map[string]uuid.UUID)}
}

func (f *fakeAvailability) Reserve(ctx context.Context, date, timeOfDay string, bookingID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := date + "T" + timeOfDay
	if _, taken := f.slots[key]; taken {
		return calendar.ErrSlotTaken
	}
	f.slots[key] = bookingID
	return nil
}

func (f *fakeAvailability) ReleaseBooking(ctx context.Context, bookingID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, holder := range f.slots {
		if holder == bookingID {
			delete(f.slots, key)
		}
	}
	return nil
}

func (f *fakeAvailability) isFree(date, timeOfDay string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, taken := f.slots[date+"T"+timeOfDay]
	return !taken
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (f *fakePublisher) PublishBookingEvent(ctx context.Context, eventType string, booking *Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, eventType)
	return nil
}

type fixture struct {
	svc       Service
	repo      *fakeBookingRepo
	slots     *fakeAvailability
	publisher *fakePublisher
	pkgID     uuid.UUID
}

func ptr(v float64) *float64 { return &v }
func iptr(v int) *int        { return &v }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	pkgID := newUUID()
	catalog := &fakeCatalog{pkgs: map[uuid.UUID]*packages.ServicePackage{
		pkgID: {
			ID:          pkgID,
			Name:        "Bridal Deluxe",
			PackageType: packages.TypeBridalLarge,
			BridePrice:  ptr(3000),
			MaidPrice:   ptr(1500),
			MinMaids:    iptr(2),
			MaxMaids:    iptr(6),
			IsActive:    true,
		},
	}}

	calc, err := pricing.New(0.5)
	require.NoError(t, err)

	repo := newFakeBookingRepo()
	slots := newFakeAvailability()
	publisher := &fakePublisher{}

	svc := &service{
		repo:               repo,
		catalog:            catalog,
		transport:          &fakeQuoter{fee: 500},
		availability:       slots,
		publisher:          publisher,
		calculator:         calc,
		cancellationCutoff: 24 * time.Hour,
		submitTimeout:      5 * time.Second,
		now:                func() time.Time { return fixedNow },
		log:                logger.GetDefault(),
	}

	return &fixture{
		svc:       svc,
		repo:      repo,
		slots:     slots,
		publisher: publisher,
		pkgID:     pkgID,
	}
}

func validRequest(f *fixture) SubmitBookingRequest {
	userID := newUUID()
	return SubmitBookingRequest{
		UserID:           &userID,
		PackageID:        f.pkgID,
		Brides:           1,
		Maids:            2,
		CustomAddress:    "12 Rose St",
		CustomDistanceKm: 18,
		SlotDate:         "2026-09-14",
		SlotTime:         "14:00",
	}
}

func TestSubmit_PricesAndReserves(t *testing.T) {
	f := newFixture(t)

	confirmation, err := f.svc.Submit(context.Background(), validRequest(f))
	require.NoError(t, err)

	assert.Equal(t, "BK-2026-0001", confirmation.BookingNumber)
	assert.Equal(t, StatusPending, confirmation.Status)
	assert.Equal(t, 6000.0, confirmation.Subtotal)
	assert.Equal(t, 500.0, confirmation.TransportCost)
	assert.Equal(t, 6500.0, confirmation.TotalAmount)
	assert.Equal(t, 3250.0, confirmation.DepositAmount)

	assert.False(t, f.slots.isFree("2026-09-14", "14:00"))
	assert.Equal(t, []string{EventBookingCreated}, f.publisher.events)

	stored, err := f.svc.GetBooking(context.Background(), confirmation.BookingID)
	require.NoError(t, err)
	assert.Equal(t, confirmation.BookingNumber, stored.BookingNumber)
	assert.Equal(t, "12 Rose St", stored.CustomAddress)
}

func TestSubmit_BookingNumbersAreSequentialPerYear(t *testing.T) {
	f := newFixture(t)

	req := validRequest(f)
	first, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)

	req2 := validRequest(f)
	req2.SlotTime = "16:00"
	second, err := f.svc.Submit(context.Background(), req2)
	require.NoError(t, err)

	assert.Equal(t, "BK-2026-0001", first.BookingNumber)
	assert.Equal(t, "BK-2026-0002", second.BookingNumber)
}

// The maid minimum is a party-size rule, not a requirement to bring maids:
// a bride-only booking under a package with minMaids set is accepted.
func TestSubmit_ZeroMaidsSkipsMinimumBound(t *testing.T) {
	f := newFixture(t)

	req := validRequest(f)
	req.Maids = 0

	confirmation, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, confirmation.Subtotal)
}

func TestSubmit_GuestBooking(t *testing.T) {
	f := newFixture(t)

	req := validRequest(f)
	req.UserID = nil
	req.GuestName = "Amara Osei"
	req.GuestEmail = "amara@example.com"
	req.GuestPhone = "+4915201234567"

	confirmation, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)

	stored, err := f.svc.GetBooking(context.Background(), confirmation.BookingID)
	require.NoError(t, err)
	assert.Nil(t, stored.UserID)
	assert.Equal(t, "Amara Osei", stored.GuestName)
}

func TestSubmit_ValidationFailures(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		mutate  func(*SubmitBookingRequest)
		wantErr error
	}{
		{
			name: "no identity at all",
			mutate: func(r *SubmitBookingRequest) {
				r.UserID = nil
			},
			wantErr: ErrMissingIdentity,
		},
		{
			name: "incomplete guest contact",
			mutate: func(r *SubmitBookingRequest) {
				r.UserID = nil
				r.GuestName = "Amara Osei"
			},
			wantErr: ErrMissingIdentity,
		},
		{
			name: "unknown package",
			mutate: func(r *SubmitBookingRequest) {
				r.PackageID = newUUID()
			},
			wantErr: ErrPackageUnavailable,
		},
		{
			name: "role without a rate",
			mutate: func(r *SubmitBookingRequest) {
				r.Mothers = 1
			},
			wantErr: ErrRoleNotOffered,
		},
		{
			name: "too few maids",
			mutate: func(r *SubmitBookingRequest) {
				r.Maids = 1
			},
			wantErr: ErrMaidCountOutOfRange,
		},
		{
			name: "too many maids",
			mutate: func(r *SubmitBookingRequest) {
				r.Maids = 7
			},
			wantErr: ErrMaidCountOutOfRange,
		},
		{
			name: "no attendees",
			mutate: func(r *SubmitBookingRequest) {
				r.Brides, r.Maids = 0, 0
			},
			wantErr: ErrNoAttendees,
		},
		{
			name: "both location arms",
			mutate: func(r *SubmitBookingRequest) {
				id := newUUID()
				r.LocationID = &id
			},
			wantErr: locations.ErrInvalidLocation,
		},
		{
			name: "no location at all",
			mutate: func(r *SubmitBookingRequest) {
				r.CustomAddress = ""
			},
			wantErr: locations.ErrInvalidLocation,
		},
		{
			name: "malformed date",
			mutate: func(r *SubmitBookingRequest) {
				r.SlotDate = "14/09/2026"
			},
			wantErr: calendar.ErrInvalidDate,
		},
		{
			name: "malformed time",
			mutate: func(r *SubmitBookingRequest) {
				r.SlotTime = "2pm"
			},
			wantErr: calendar.ErrInvalidTime,
		},
		{
			name: "date in the past",
			mutate: func(r *SubmitBookingRequest) {
				r.SlotDate = "2026-05-30"
			},
			wantErr: ErrDateInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(f)
			tt.mutate(&req)
			_, err := f.svc.Submit(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Nothing above should have claimed the slot.
	assert.True(t, f.slots.isFree("2026-09-14", "14:00"))
}

func TestSubmit_InactivePackage(t *testing.T) {
	f := newFixture(t)
	catalog := f.svc.(*service).catalog.(*fakeCatalog)
	catalog.pkgs[f.pkgID].IsActive = false

	_, err := f.svc.Submit(context.Background(), validRequest(f))
	assert.ErrorIs(t, err, ErrPackageUnavailable)
}

func TestSubmit_SlotAlreadyTaken(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), validRequest(f))
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), validRequest(f))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestSubmit_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)

	const contenders = 16
	var wg sync.WaitGroup
	results := make(chan error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Submit(context.Background(), validRequest(f))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrSlotUnavailable)
		}
	}
	assert.Equal(t, 1, wins, "exactly one submission should win the slot")
}

func TestSubmit_RollsBackSlotOnPersistFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.failCreate = errors.New("connection reset")

	_, err := f.svc.Submit(context.Background(), validRequest(f))
	require.Error(t, err)

	// The reservation must not outlive the failed insert.
	assert.True(t, f.slots.isFree("2026-09-14", "14:00"))
	assert.Empty(t, f.publisher.events)

	// The slot is claimable again once the repository recovers.
	f.repo.failCreate = nil
	_, err = f.svc.Submit(context.Background(), validRequest(f))
	assert.NoError(t, err)
}

func TestLifecycleTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	confirmation, err := f.svc.Submit(ctx, validRequest(f))
	require.NoError(t, err)
	id := confirmation.BookingID

	// Completing a pending booking skips steps.
	_, err = f.svc.Complete(ctx, id)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	booking, err := f.svc.Confirm(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, booking.Status)

	booking, err = f.svc.MarkDepositPaid(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusDepositPaid, booking.Status)
	assert.NotNil(t, booking.DepositPaidAt)

	booking, err = f.svc.Complete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, booking.Status)
	assert.NotNil(t, booking.CompletedAt)

	// Terminal bookings cannot be confirmed again.
	_, err = f.svc.Confirm(ctx, id)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.Equal(t, []string{
		EventBookingCreated,
		EventBookingConfirmed,
		EventBookingDepositPaid,
		EventBookingCompleted,
	}, f.publisher.events)
}

func TestCancel_OwnerBeforeCutoff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := validRequest(f)
	confirmation, err := f.svc.Submit(ctx, req)
	require.NoError(t, err)

	err = f.svc.Cancel(ctx, confirmation.BookingID, CancelActor{UserID: req.UserID})
	require.NoError(t, err)

	booking, err := f.svc.GetBooking(ctx, confirmation.BookingID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, booking.Status)
	assert.NotNil(t, booking.CancelledAt)
	assert.True(t, f.slots.isFree("2026-09-14", "14:00"))

	// Cancelling again is a no-op.
	err = f.svc.Cancel(ctx, confirmation.BookingID, CancelActor{UserID: req.UserID})
	assert.NoError(t, err)
}

func TestCancel_TooCloseToAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := validRequest(f)
	req.SlotDate = "2026-06-02" // under 24h from fixedNow
	req.SlotTime = "10:00"
	confirmation, err := f.svc.Submit(ctx, req)
	require.NoError(t, err)

	err = f.svc.Cancel(ctx, confirmation.BookingID, CancelActor{UserID: req.UserID})
	assert.ErrorIs(t, err, ErrTooLateToCancel)

	// The cutoff does not bind admins.
	err = f.svc.Cancel(ctx, confirmation.BookingID, CancelActor{IsAdmin: true})
	assert.NoError(t, err)
	assert.True(t, f.slots.isFree("2026-06-02", "10:00"))
}

func TestCancel_OwnershipAndTerminalGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := validRequest(f)
	confirmation, err := f.svc.Submit(ctx, req)
	require.NoError(t, err)

	stranger := newUUID()
	err = f.svc.Cancel(ctx, confirmation.BookingID, CancelActor{UserID: &stranger})
	assert.ErrorIs(t, err, ErrNotOwner)

	// Walk the booking to COMPLETED; cancellation is then refused.
	_, err = f.svc.Confirm(ctx, confirmation.BookingID)
	require.NoError(t, err)
	_, err = f.svc.MarkDepositPaid(ctx, confirmation.BookingID)
	require.NoError(t, err)
	_, err = f.svc.Complete(ctx, confirmation.BookingID)
	require.NoError(t, err)

	err = f.svc.Cancel(ctx, confirmation.BookingID, CancelActor{IsAdmin: true})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPublisherFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker unreachable")

	confirmation, err := f.svc.Submit(context.Background(), validRequest(f))
	require.NoError(t, err)
	assert.NotEmpty(t, confirmation.BookingNumber)
}

func TestSetAdminNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	confirmation, err := f.svc.Submit(ctx, validRequest(f))
	require.NoError(t, err)

	booking, err := f.svc.SetAdminNotes(ctx, confirmation.BookingID, "bride allergic to latex")
	require.NoError(t, err)
	assert.Equal(t, "bride allergic to latex", booking.AdminNotes)

	_, err = f.svc.SetAdminNotes(ctx, newUUID(), "x")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
