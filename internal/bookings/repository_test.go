package bookings

import (
	"context"
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

func TestNextSequence(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewRepository(gdb)

	mock.ExpectQuery("INSERT INTO booking_counters").
		WithArgs(2026).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(7))

	seq, err := repo.NextSequence(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, 7, seq)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextSequence_NewYearStartsAtOne(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewRepository(gdb)

	mock.ExpectQuery("INSERT INTO booking_counters").
		WithArgs(2027).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(1))

	seq, err := repo.NextSequence(context.Background(), 2027)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	assert.NoError(t, mock.ExpectationsWereMet())
}
