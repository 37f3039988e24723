package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

// Every statement must be idempotent DDL Postgres actually accepts; a syntax
// error here aborts startup because InitDB treats it as fatal.
func TestMigrateConstraints_IssuesIdempotentIndexDDL(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec(`CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_calendar_slots_date`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_calendar_slots_booking_id`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_bookings_user_status`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, MigrateConstraints(gdb))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateConstraints_StopsOnFirstFailure(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec(`CREATE INDEX CONCURRENTLY IF NOT EXISTS idx_calendar_slots_date`).
		WillReturnError(assert.AnError)

	err := MigrateConstraints(gdb)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
