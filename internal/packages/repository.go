package packages

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, pkg *ServicePackage) error
	GetByID(ctx context.Context, id uuid.UUID) (*ServicePackage, error)
	Update(ctx context.Context, pkg *ServicePackage) error
	List(ctx context.Context, activeOnly bool) ([]ServicePackage, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, pkg *ServicePackage) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*ServicePackage, error) {
	var pkg ServicePackage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) Update(ctx context.Context, pkg *ServicePackage) error {
	result := r.db.WithContext(ctx).Save(pkg)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPackageNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]ServicePackage, error) {
	var pkgs []ServicePackage
	query := r.db.WithContext(ctx).Model(&ServicePackage{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("created_at DESC").Find(&pkgs).Error
	return pkgs, err
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&ServicePackage{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPackageNotFound
	}
	return nil
}
