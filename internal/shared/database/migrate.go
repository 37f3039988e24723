package database

import (
	"glowbook/internal/bookings"
	"glowbook/internal/calendar"
	"glowbook/internal/locations"
	"glowbook/internal/packages"
	"glowbook/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&packages.ServicePackage{},
		&locations.TransportLocation{},
		&calendar.CalendarSlot{},
		&bookings.Booking{},
		&bookings.BookingCounter{},
	)
}
