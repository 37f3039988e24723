package calendar

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, slot *CalendarSlot) error
	Find(ctx context.Context, date, timeOfDay string) (*CalendarSlot, error)
	FindRange(ctx context.Context, from, to string) ([]CalendarSlot, error)
	Delete(ctx context.Context, date, timeOfDay string) (int64, error)
	DeleteByBooking(ctx context.Context, bookingID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Insert claims a slot. Losing a race for the same (date, time) surfaces as
// ErrSlotTaken; there is no read-before-write window to exploit.
func (r *repository) Insert(ctx context.Context, slot *CalendarSlot) error {
	err := r.db.WithContext(ctx).Create(slot).Error
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlotTaken
		}
		return err
	}
	return nil
}

func (r *repository) Find(ctx context.Context, date, timeOfDay string) (*CalendarSlot, error) {
	var slot CalendarSlot
	err := r.db.WithContext(ctx).
		Where("slot_date = ? AND slot_time = ?", date, timeOfDay).
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (r *repository) FindRange(ctx context.Context, from, to string) ([]CalendarSlot, error) {
	var slots []CalendarSlot
	err := r.db.WithContext(ctx).
		Where("slot_date BETWEEN ? AND ?", from, to).
		Order("slot_date ASC, slot_time ASC").
		Find(&slots).Error
	return slots, err
}

func (r *repository) Delete(ctx context.Context, date, timeOfDay string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("slot_date = ? AND slot_time = ?", date, timeOfDay).
		Delete(&CalendarSlot{})
	return result.RowsAffected, result.Error
}

func (r *repository) DeleteByBooking(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Delete(&CalendarSlot{})
	return result.RowsAffected, result.Error
}

// isDuplicateKey matches both gorm's translated error and the raw Postgres
// unique violation (SQLSTATE 23505), since translation depends on driver
// configuration.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") || strings.Contains(msg, "duplicate key")
}
