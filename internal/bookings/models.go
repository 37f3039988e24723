package bookings

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GuestContact identifies a customer who books without an account.
type GuestContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Identity is a tagged variant: a booking belongs either to a registered
// user or to a guest described by a complete contact triple.
type Identity struct {
	UserID *uuid.UUID    `json:"user_id,omitempty"`
	Guest  *GuestContact `json:"guest,omitempty"`
}

// Registered builds the account arm of the variant.
func Registered(userID uuid.UUID) Identity {
	return Identity{UserID: &userID}
}

// Guest builds the anonymous arm of the variant.
func Guest(name, email, phone string) Identity {
	return Identity{Guest: &GuestContact{Name: name, Email: email, Phone: phone}}
}

// Validate enforces the exactly-one-arm invariant. A guest arm requires
// all three contact fields.
func (i Identity) Validate() error {
	hasUser := i.UserID != nil
	hasGuest := i.Guest != nil

	if hasUser == hasGuest {
		return ErrMissingIdentity
	}
	if hasGuest {
		if strings.TrimSpace(i.Guest.Name) == "" ||
			strings.TrimSpace(i.Guest.Email) == "" ||
			strings.TrimSpace(i.Guest.Phone) == "" {
			return ErrMissingIdentity
		}
	}
	return nil
}

// Booking is the appointment record. Money fields are snapshotted at
// submission time so later package or transport changes never reprice an
// existing booking.
type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingNumber string    `gorm:"uniqueIndex;not null" json:"booking_number"`
	Status        Status    `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`

	// Identity variant, flattened for storage. UserID set for registered
	// customers, guest fields set otherwise.
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	GuestName  string     `gorm:"type:varchar(150)" json:"guest_name,omitempty"`
	GuestEmail string     `gorm:"type:varchar(150)" json:"guest_email,omitempty"`
	GuestPhone string     `gorm:"type:varchar(30)" json:"guest_phone,omitempty"`

	PackageID uuid.UUID `gorm:"type:uuid;not null;index" json:"package_id"`
	Brides    int       `gorm:"not null;default:0;check:brides >= 0" json:"brides"`
	Maids     int       `gorm:"not null;default:0;check:maids >= 0" json:"maids"`
	Mothers   int       `gorm:"not null;default:0;check:mothers >= 0" json:"mothers"`
	Others    int       `gorm:"not null;default:0;check:others >= 0" json:"others"`

	// Location variant, flattened for storage.
	LocationID       *uuid.UUID `gorm:"type:uuid" json:"location_id,omitempty"`
	CustomAddress    string     `gorm:"type:text" json:"custom_address,omitempty"`
	CustomDistanceKm *float64   `gorm:"type:decimal(6,1)" json:"custom_distance_km,omitempty"`

	SlotDate string `gorm:"type:date;not null;index" json:"slot_date"`
	SlotTime string `gorm:"type:varchar(5);not null" json:"slot_time"`

	Subtotal      float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TransportCost float64 `gorm:"type:decimal(10,2);not null" json:"transport_cost"`
	TotalAmount   float64 `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	DepositAmount float64 `gorm:"type:decimal(10,2);not null" json:"deposit_amount"`

	DepositPaidAt *time.Time `json:"deposit_paid_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	AdminNotes    string     `gorm:"type:text" json:"admin_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// Identity reassembles the variant from the flattened columns.
func (b *Booking) Identity() Identity {
	if b.UserID != nil {
		return Identity{UserID: b.UserID}
	}
	return Identity{Guest: &GuestContact{Name: b.GuestName, Email: b.GuestEmail, Phone: b.GuestPhone}}
}

// IsOwnedBy reports whether the booking belongs to the given user.
func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.UserID != nil && *b.UserID == userID
}

// BookingCounter backs booking number generation, one row per year.
type BookingCounter struct {
	Year int `gorm:"primaryKey" json:"year"`
	Seq  int `gorm:"not null;default:0" json:"seq"`
}

func (BookingCounter) TableName() string {
	return "booking_counters"
}
