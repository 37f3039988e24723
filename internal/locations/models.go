package locations

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransportLocation is a named service zone with a fixed transport fee.
type TransportLocation struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name          string    `gorm:"uniqueIndex;not null" json:"name"`
	TransportCost float64   `gorm:"type:decimal(10,2);not null;default:0" json:"transport_cost"`
	IsFree        bool      `gorm:"default:false" json:"is_free"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (TransportLocation) TableName() string {
	return "transport_locations"
}

// CustomLocation is a free-form address with a computed distance from the hub.
type CustomLocation struct {
	Address    string  `json:"address"`
	DistanceKm float64 `json:"distance_km"`
}

// Location is a tagged variant: a booking is served either at a predefined
// zone or at a custom address. Exactly one arm is set.
type Location struct {
	LocationID *uuid.UUID      `json:"location_id,omitempty"`
	Custom     *CustomLocation `json:"custom,omitempty"`
}

// Predefined builds the zone arm of the variant.
func Predefined(id uuid.UUID) Location {
	return Location{LocationID: &id}
}

// Custom builds the free-form arm of the variant.
func Custom(address string, distanceKm float64) Location {
	return Location{Custom: &CustomLocation{Address: address, DistanceKm: distanceKm}}
}

// Validate enforces the exactly-one-arm invariant and the shape of each arm.
func (l Location) Validate() error {
	hasZone := l.LocationID != nil
	hasCustom := l.Custom != nil

	if hasZone == hasCustom {
		return ErrInvalidLocation
	}
	if hasCustom {
		if strings.TrimSpace(l.Custom.Address) == "" {
			return ErrInvalidLocation
		}
		if l.Custom.DistanceKm < 0 {
			return ErrInvalidDistance
		}
	}
	return nil
}
