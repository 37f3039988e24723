package calendar

import (
	"time"

	"github.com/google/uuid"
)

// Hold reasons. A slot row exists only while the slot is occupied.
type HoldReason string

const (
	HoldBooking    HoldReason = "BOOKING"
	HoldAdminBlock HoldReason = "ADMIN_BLOCK"
)

// CalendarSlot marks one (date, time) pair as taken. Exclusivity is
// enforced by a unique index on (slot_date, slot_time); concurrent inserts
// for the same pair lose with a duplicate key error.
type CalendarSlot struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SlotDate  string     `gorm:"type:date;not null;index:idx_calendar_slot,unique" json:"slot_date"`
	SlotTime  string     `gorm:"type:varchar(5);not null;index:idx_calendar_slot,unique" json:"slot_time"`
	Reason    HoldReason `gorm:"type:varchar(20);not null" json:"reason"`
	BookingID *uuid.UUID `gorm:"type:uuid;index" json:"booking_id,omitempty"`
	Note      string     `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (CalendarSlot) TableName() string {
	return "calendar_slots"
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ParseDate validates and normalizes a calendar date.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(dateLayout), nil
}

// ParseTime validates and normalizes a slot time of day.
func ParseTime(s string) (string, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", ErrInvalidTime
	}
	return t.Format(timeLayout), nil
}

// SlotStart combines a normalized date and time into a wall-clock instant
// in the studio's local timezone.
func SlotStart(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+timeOfDay, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
