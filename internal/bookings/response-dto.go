package bookings

import (
	"time"

	"github.com/google/uuid"
)

// BookingConfirmationResponse is returned after a successful submission.
type BookingConfirmationResponse struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	Status        Status    `json:"status"`
	SlotDate      string    `json:"slot_date"`
	SlotTime      string    `json:"slot_time"`
	Subtotal      float64   `json:"subtotal"`
	TransportCost float64   `json:"transport_cost"`
	TotalAmount   float64   `json:"total_amount"`
	DepositAmount float64   `json:"deposit_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

func newConfirmationResponse(b *Booking) *BookingConfirmationResponse {
	return &BookingConfirmationResponse{
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		Status:        b.Status,
		SlotDate:      b.SlotDate,
		SlotTime:      b.SlotTime,
		Subtotal:      b.Subtotal,
		TransportCost: b.TransportCost,
		TotalAmount:   b.TotalAmount,
		DepositAmount: b.DepositAmount,
		CreatedAt:     b.CreatedAt,
	}
}

// BookingListResponse wraps a paginated booking listing.
type BookingListResponse struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
