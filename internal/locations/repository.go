package locations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, loc *TransportLocation) error
	GetByID(ctx context.Context, id uuid.UUID) (*TransportLocation, error)
	Update(ctx context.Context, loc *TransportLocation) error
	List(ctx context.Context, activeOnly bool) ([]TransportLocation, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, loc *TransportLocation) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*TransportLocation, error) {
	var loc TransportLocation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&loc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &loc, nil
}

func (r *repository) Update(ctx context.Context, loc *TransportLocation) error {
	result := r.db.WithContext(ctx).Save(loc)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]TransportLocation, error) {
	var locs []TransportLocation
	query := r.db.WithContext(ctx).Model(&TransportLocation{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name ASC").Find(&locs).Error
	return locs, err
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&TransportLocation{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}
