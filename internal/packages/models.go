package packages

import (
	"time"

	"glowbook/internal/pricing"

	"github.com/google/uuid"
)

// PackageType classifies a bookable offering
type PackageType string

const (
	TypeBridalLarge PackageType = "bridal_large"
	TypeBridalSmall PackageType = "bridal_small"
	TypeBrideOnly   PackageType = "bride_only"
	TypeRegular     PackageType = "regular"
	TypeClasses     PackageType = "classes"
)

func (t PackageType) IsValid() bool {
	switch t {
	case TypeBridalLarge, TypeBridalSmall, TypeBrideOnly, TypeRegular, TypeClasses:
		return true
	}
	return false
}

func (t PackageType) String() string {
	return string(t)
}

// ServicePackage is a bookable offering with per-attendee-role pricing.
// A nil rate means the role is not offered under this package.
type ServicePackage struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Description string      `json:"description"`
	PackageType PackageType `gorm:"type:varchar(20);not null" json:"package_type"`

	BridePrice  *float64 `gorm:"type:decimal(10,2)" json:"bride_price,omitempty"`
	MaidPrice   *float64 `gorm:"type:decimal(10,2)" json:"maid_price,omitempty"`
	MotherPrice *float64 `gorm:"type:decimal(10,2)" json:"mother_price,omitempty"`
	OtherPrice  *float64 `gorm:"type:decimal(10,2)" json:"other_price,omitempty"`

	MinMaids        *int `json:"min_maids,omitempty"`
	MaxMaids        *int `json:"max_maids,omitempty"`
	DurationMinutes *int `json:"duration_minutes,omitempty"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServicePackage) TableName() string {
	return "service_packages"
}

// Rates exposes the package's rate table in the shape the price calculator takes.
func (p *ServicePackage) Rates() pricing.RoleRates {
	return pricing.RoleRates{
		Bride:  p.BridePrice,
		Maid:   p.MaidPrice,
		Mother: p.MotherPrice,
		Other:  p.OtherPrice,
	}
}

// OffersRole reports whether a role is chargeable under this package.
// A zero rate counts as not offered: bookings may not request attendees
// the package cannot price.
func (p *ServicePackage) OffersRole(role string) bool {
	var rate *float64
	switch role {
	case "bride":
		rate = p.BridePrice
	case "maid":
		rate = p.MaidPrice
	case "mother":
		rate = p.MotherPrice
	case "other":
		rate = p.OtherPrice
	}
	return rate != nil && *rate > 0
}
