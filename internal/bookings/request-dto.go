package bookings

import (
	"strings"

	"glowbook/internal/locations"

	"github.com/google/uuid"
)

// SubmitBookingRequest carries a booking submission. The controller fills
// UserID from the access token when one is present; guests supply the
// contact triple instead.
type SubmitBookingRequest struct {
	UserID *uuid.UUID `json:"-"`

	GuestName  string `json:"guest_name" binding:"omitempty,min=2,max=150"`
	GuestEmail string `json:"guest_email" binding:"omitempty,email"`
	GuestPhone string `json:"guest_phone" binding:"omitempty,min=5,max=30"`

	PackageID uuid.UUID `json:"package_id" binding:"required"`
	Brides    int       `json:"brides" binding:"gte=0"`
	Maids     int       `json:"maids" binding:"gte=0"`
	Mothers   int       `json:"mothers" binding:"gte=0"`
	Others    int       `json:"others" binding:"gte=0"`

	LocationID       *uuid.UUID `json:"location_id"`
	CustomAddress    string     `json:"custom_address" binding:"omitempty,max=500"`
	CustomDistanceKm float64    `json:"custom_distance_km" binding:"gte=0"`

	SlotDate string `json:"slot_date" binding:"required,slotdate"`
	SlotTime string `json:"slot_time" binding:"required,slottime"`
}

// identity assembles the variant; an empty result fails Validate.
func (r SubmitBookingRequest) identity() Identity {
	if r.UserID != nil {
		return Registered(*r.UserID)
	}
	if r.GuestName != "" || r.GuestEmail != "" || r.GuestPhone != "" {
		return Guest(r.GuestName, r.GuestEmail, r.GuestPhone)
	}
	return Identity{}
}

// location assembles the variant; setting both arms or neither fails
// Validate.
func (r SubmitBookingRequest) location() locations.Location {
	loc := locations.Location{LocationID: r.LocationID}
	if strings.TrimSpace(r.CustomAddress) != "" {
		loc.Custom = &locations.CustomLocation{
			Address:    r.CustomAddress,
			DistanceKm: r.CustomDistanceKm,
		}
	}
	return loc
}

type AdminNotesRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}
