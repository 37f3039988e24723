package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowbook/pkg/cache"
	"glowbook/pkg/logger"

	"github.com/google/uuid"
)

// maxRangeDays caps a single availability query.
const maxRangeDays = 366

// Service is the availability store. All slot claims go through Insert so
// exclusivity is decided by the database, never by an in-process check.
type Service interface {
	QueryRange(ctx context.Context, from, to string) ([]CalendarSlot, error)
	IsFree(ctx context.Context, date, timeOfDay string) (bool, error)
	Block(ctx context.Context, date, timeOfDay, note string) (*CalendarSlot, error)
	Unblock(ctx context.Context, date, timeOfDay string) error
	Reserve(ctx context.Context, date, timeOfDay string, bookingID uuid.UUID) error
	ReleaseBooking(ctx context.Context, bookingID uuid.UUID) error
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
	log      *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service, cacheTTL time.Duration, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func (s *service) QueryRange(ctx context.Context, from, to string) ([]CalendarSlot, error) {
	from, err := ParseDate(from)
	if err != nil {
		return nil, err
	}
	to, err = ParseDate(to)
	if err != nil {
		return nil, err
	}
	if to < from {
		return nil, ErrInvalidRange
	}
	fromDay, _ := time.Parse(dateLayout, from)
	toDay, _ := time.Parse(dateLayout, to)
	if toDay.Sub(fromDay) > maxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, maxRangeDays)
	}

	if s.cache == nil {
		return s.repo.FindRange(ctx, from, to)
	}

	var slots []CalendarSlot
	err = s.cache.GetOrSet(ctx, cache.CalendarRangeKey(from, to), s.cacheTTL, func() (interface{}, error) {
		return s.repo.FindRange(ctx, from, to)
	}, &slots)
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *service) IsFree(ctx context.Context, date, timeOfDay string) (bool, error) {
	date, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	timeOfDay, err = ParseTime(timeOfDay)
	if err != nil {
		return false, err
	}

	_, err = s.repo.Find(ctx, date, timeOfDay)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

func (s *service) Block(ctx context.Context, date, timeOfDay, note string) (*CalendarSlot, error) {
	date, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	timeOfDay, err = ParseTime(timeOfDay)
	if err != nil {
		return nil, err
	}

	slot := &CalendarSlot{
		SlotDate: date,
		SlotTime: timeOfDay,
		Reason:   HoldAdminBlock,
		Note:     note,
	}
	if err := s.repo.Insert(ctx, slot); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.LogSlotBlocked(ctx, date, timeOfDay, string(HoldAdminBlock))
	return slot, nil
}

// Unblock removes an admin block. Slots held by a booking are released only
// through the booking lifecycle, never here.
func (s *service) Unblock(ctx context.Context, date, timeOfDay string) error {
	date, err := ParseDate(date)
	if err != nil {
		return err
	}
	timeOfDay, err = ParseTime(timeOfDay)
	if err != nil {
		return err
	}

	slot, err := s.repo.Find(ctx, date, timeOfDay)
	if err != nil {
		return err
	}
	if slot.Reason == HoldBooking {
		return ErrSlotHeldByBooking
	}

	affected, err := s.repo.Delete(ctx, date, timeOfDay)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	s.invalidate(ctx)
	s.log.LogSlotReleased(ctx, date, timeOfDay)
	return nil
}

// Reserve claims a slot on behalf of a booking. ErrSlotTaken means another
// booking or an admin block won the slot.
func (s *service) Reserve(ctx context.Context, date, timeOfDay string, bookingID uuid.UUID) error {
	date, err := ParseDate(date)
	if err != nil {
		return err
	}
	timeOfDay, err = ParseTime(timeOfDay)
	if err != nil {
		return err
	}

	slot := &CalendarSlot{
		SlotDate:  date,
		SlotTime:  timeOfDay,
		Reason:    HoldBooking,
		BookingID: &bookingID,
	}
	if err := s.repo.Insert(ctx, slot); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// ReleaseBooking frees every slot held by the booking. Releasing a booking
// that holds nothing is a no-op, so release is safe to repeat.
func (s *service) ReleaseBooking(ctx context.Context, bookingID uuid.UUID) error {
	affected, err := s.repo.DeleteByBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.invalidate(ctx)
	}
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(ctx, cache.CalendarPattern())
}
