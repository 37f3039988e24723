package bookings

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingListQuery carries filters and pagination for booking listings.
type BookingListQuery struct {
	Status   string
	DateFrom string
	DateTo   string
	Page     int
	Limit    int
}

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByNumber(ctx context.Context, bookingNumber string) (*Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, stampedAt *time.Time) error
	UpdateAdminNotes(ctx context.Context, id uuid.UUID, notes string) error

	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	// NextSequence atomically advances the per-year booking counter.
	NextSequence(ctx context.Context, year int) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByNumber(ctx context.Context, bookingNumber string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("booking_number = ?", bookingNumber).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus writes the new status and, when stampedAt is set, the
// timestamp column that belongs to it.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, stampedAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}

	if stampedAt != nil {
		switch status {
		case StatusDepositPaid:
			updates["deposit_paid_at"] = *stampedAt
		case StatusCancelled:
			updates["cancelled_at"] = *stampedAt
		case StatusCompleted:
			updates["completed_at"] = *stampedAt
		}
	}

	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) UpdateAdminNotes(ctx context.Context, id uuid.UUID, notes string) error {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Update("admin_notes", notes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID)
	return r.paginate(base, query)
}

func (r *repository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	base := r.db.WithContext(ctx).Model(&Booking{})
	return r.paginate(base, query)
}

func (r *repository) paginate(base *gorm.DB, query BookingListQuery) ([]Booking, int64, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	base = r.applyFilters(base, query)

	var totalCount int64
	if err := base.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var bookings []Booking
	offset := (query.Page - 1) * query.Limit
	err := base.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

// NextSequence relies on an upsert so concurrent submissions each get a
// distinct sequence number.
func (r *repository) NextSequence(ctx context.Context, year int) (int, error) {
	var seq int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO booking_counters (year, seq) VALUES (?, 1)
		ON CONFLICT (year) DO UPDATE SET seq = booking_counters.seq + 1
		RETURNING seq;
	`, year).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// applyFilters applies query filters to the GORM query
func (r *repository) applyFilters(query *gorm.DB, filters BookingListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.DateFrom != "" {
		if _, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("slot_date >= ?", filters.DateFrom)
		}
	}

	if filters.DateTo != "" {
		if _, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			query = query.Where("slot_date <= ?", filters.DateTo)
		}
	}

	return query
}

// CalculateTotalPages converts a row count and page size into page count.
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
