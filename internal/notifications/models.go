package notifications

import (
	"encoding/json"
	"time"

	"glowbook/internal/bookings"

	"github.com/google/uuid"
)

// BookingEvent is the envelope published for every booking lifecycle
// change. Downstream consumers (email, SMS, back-office dashboards) key
// off EventType.
type BookingEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`

	BookingID     uuid.UUID       `json:"booking_id"`
	BookingNumber string          `json:"booking_number"`
	Status        bookings.Status `json:"status"`
	SlotDate      string          `json:"slot_date"`
	SlotTime      string          `json:"slot_time"`
	TotalAmount   float64         `json:"total_amount"`
	DepositAmount float64         `json:"deposit_amount"`

	// Contact details for the notifier. Either a user reference or the
	// guest triple, mirroring the booking's identity variant.
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	GuestName  string     `json:"guest_name,omitempty"`
	GuestEmail string     `json:"guest_email,omitempty"`
	GuestPhone string     `json:"guest_phone,omitempty"`
}

// NewBookingEvent snapshots the booking into an event envelope.
func NewBookingEvent(eventType string, b *bookings.Booking) *BookingEvent {
	return &BookingEvent{
		EventID:       uuid.New(),
		EventType:     eventType,
		OccurredAt:    time.Now(),
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		Status:        b.Status,
		SlotDate:      b.SlotDate,
		SlotTime:      b.SlotTime,
		TotalAmount:   b.TotalAmount,
		DepositAmount: b.DepositAmount,
		UserID:        b.UserID,
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		GuestPhone:    b.GuestPhone,
	}
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events for one booking to the same partition so
// consumers see its lifecycle in order.
func (e *BookingEvent) PartitionKey() string {
	return e.BookingID.String()
}
