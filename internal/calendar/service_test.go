package calendar

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepository backs the service with a map guarded by a mutex, so the
// duplicate-key semantics of the unique index can be exercised under
// concurrency.
type memRepository struct {
	mu    sync.Mutex
	slots map[string]*CalendarSlot
}

func newMemRepository() *memRepository {
	return &memRepository{slots: make(map[string]*CalendarSlot)}
}

func slotKey(date, timeOfDay string) string {
	return date + "T" + timeOfDay
}

func (m *memRepository) Insert(ctx context.Context, slot *CalendarSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := slotKey(slot.SlotDate, slot.SlotTime)
	if _, exists := m.slots[key]; exists {
		return ErrSlotTaken
	}
	slot.ID = uuid.New()
	copied := *slot
	m.slots[key] = &copied
	return nil
}

func (m *memRepository) Find(ctx context.Context, date, timeOfDay string) (*CalendarSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot, ok := m.slots[slotKey(date, timeOfDay)]
	if !ok {
		return nil, ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (m *memRepository) FindRange(ctx context.Context, from, to string) ([]CalendarSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []CalendarSlot
	for _, slot := range m.slots {
		if slot.SlotDate >= from && slot.SlotDate <= to {
			out = append(out, *slot)
		}
	}
	return out, nil
}

func (m *memRepository) Delete(ctx context.Context, date, timeOfDay string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := slotKey(date, timeOfDay)
	if _, ok := m.slots[key]; !ok {
		return 0, nil
	}
	delete(m.slots, key)
	return 1, nil
}

func (m *memRepository) DeleteByBooking(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key, slot := range m.slots {
		if slot.BookingID != nil && *slot.BookingID == bookingID {
			delete(m.slots, key)
			n++
		}
	}
	return n, nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, nil, 0, nil)
}

func TestBlockAndUnblock(t *testing.T) {
	repo := newMemRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	slot, err := svc.Block(ctx, "2026-09-14", "14:00", "studio maintenance")
	require.NoError(t, err)
	assert.Equal(t, HoldAdminBlock, slot.Reason)

	free, err := svc.IsFree(ctx, "2026-09-14", "14:00")
	require.NoError(t, err)
	assert.False(t, free)

	// Blocking the same slot twice loses to the first block.
	_, err = svc.Block(ctx, "2026-09-14", "14:00", "again")
	assert.ErrorIs(t, err, ErrSlotTaken)

	require.NoError(t, svc.Unblock(ctx, "2026-09-14", "14:00"))

	free, err = svc.IsFree(ctx, "2026-09-14", "14:00")
	require.NoError(t, err)
	assert.True(t, free)

	// Unblocking a free slot reports not found.
	err = svc.Unblock(ctx, "2026-09-14", "14:00")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

// Admin blocks and booking reservations compete for the same key: a blocked
// slot cannot be reserved and a reserved slot cannot be blocked.
func TestBlockAndReserveExcludeEachOther(t *testing.T) {
	repo := newMemRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Block(ctx, "2026-09-20", "11:00", "deep clean")
	require.NoError(t, err)

	err = svc.Reserve(ctx, "2026-09-20", "11:00", uuid.New())
	assert.ErrorIs(t, err, ErrSlotTaken)

	require.NoError(t, svc.Reserve(ctx, "2026-09-21", "11:00", uuid.New()))
	_, err = svc.Block(ctx, "2026-09-21", "11:00", "deep clean")
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUnblockRefusesBookingHold(t *testing.T) {
	repo := newMemRepository()
	svc := newTestService(repo)
	ctx := context.Background()
	bookingID := uuid.New()

	require.NoError(t, svc.Reserve(ctx, "2026-09-15", "10:00", bookingID))

	err := svc.Unblock(ctx, "2026-09-15", "10:00")
	assert.ErrorIs(t, err, ErrSlotHeldByBooking)

	// The booking lifecycle is the only way out.
	require.NoError(t, svc.ReleaseBooking(ctx, bookingID))
	free, err := svc.IsFree(ctx, "2026-09-15", "10:00")
	require.NoError(t, err)
	assert.True(t, free)
}

func TestReleaseBookingIsIdempotent(t *testing.T) {
	repo := newMemRepository()
	svc := newTestService(repo)
	ctx := context.Background()
	bookingID := uuid.New()

	require.NoError(t, svc.Reserve(ctx, "2026-09-16", "09:00", bookingID))
	require.NoError(t, svc.ReleaseBooking(ctx, bookingID))
	require.NoError(t, svc.ReleaseBooking(ctx, bookingID))
	require.NoError(t, svc.ReleaseBooking(ctx, uuid.New()))
}

func TestReserveConcurrentSameSlot(t *testing.T) {
	repo := newMemRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	const contenders = 32
	var wg sync.WaitGroup
	results := make(chan error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Reserve(ctx, "2026-10-01", "11:00", uuid.New())
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			assert.ErrorIs(t, err, ErrSlotTaken)
			losses++
		}
	}
	assert.Equal(t, 1, wins, "exactly one contender should claim the slot")
	assert.Equal(t, contenders-1, losses)
}

func TestQueryRangeValidation(t *testing.T) {
	svc := newTestService(newMemRepository())
	ctx := context.Background()

	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"bad from", "14-09-2026", "2026-09-20", ErrInvalidDate},
		{"bad to", "2026-09-14", "soon", ErrInvalidDate},
		{"reversed range", "2026-09-20", "2026-09-14", ErrInvalidRange},
		{"range too wide", "2026-01-01", "2028-01-01", ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.QueryRange(ctx, tt.from, tt.to)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestQueryRangeReturnsOccupiedSlots(t *testing.T) {
	repo := newMemRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Block(ctx, "2026-09-14", "14:00", "")
	require.NoError(t, err)
	require.NoError(t, svc.Reserve(ctx, "2026-09-15", "10:00", uuid.New()))
	_, err = svc.Block(ctx, "2026-10-02", "12:00", "")
	require.NoError(t, err)

	slots, err := svc.QueryRange(ctx, "2026-09-01", "2026-09-30")
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestParseHelpers(t *testing.T) {
	_, err := ParseDate("2026-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseTime("25:00")
	assert.ErrorIs(t, err, ErrInvalidTime)

	d, err := ParseDate("2026-09-14")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-14", d)

	tm, err := ParseTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", tm)
}
