package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the supporting indexes the booking flow queries
// rely on. The (slot_date, slot_time) unique index that serializes slot
// claims is created by AutoMigrate from the CalendarSlot model tags; it is
// not duplicated here.
func MigrateConstraints(db *gorm.DB) error {
	statements := []string{
		// Index for availability range queries
		`CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_calendar_slots_date
		ON calendar_slots (slot_date);`,

		// Index for releasing a booking's slots
		`CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_calendar_slots_booking_id
		ON calendar_slots (booking_id);`,

		// Index for per-customer booking listings
		`CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_bookings_user_status
		ON bookings (user_id, status);`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
