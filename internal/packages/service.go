package packages

import (
	"context"
	"fmt"
	"time"

	"glowbook/pkg/cache"

	"github.com/google/uuid"
)

// Service interface defines the contract for package management
type Service interface {
	CreatePackage(ctx context.Context, req CreatePackageRequest) (*ServicePackage, error)
	GetPackage(ctx context.Context, id uuid.UUID) (*ServicePackage, error)
	UpdatePackage(ctx context.Context, id uuid.UUID, req UpdatePackageRequest) (*ServicePackage, error)
	ListPackages(ctx context.Context, activeOnly bool) ([]ServicePackage, error)
	DeactivatePackage(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
}

// NewService creates a new package service instance. cache may be nil when
// Redis is unavailable; reads then go straight to the repository.
func NewService(repo Repository, cacheService cache.Service, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
	}
}

func (s *service) CreatePackage(ctx context.Context, req CreatePackageRequest) (*ServicePackage, error) {
	pkgType := PackageType(req.PackageType)
	if !pkgType.IsValid() {
		return nil, ErrInvalidType
	}

	pkg := &ServicePackage{
		Name:            req.Name,
		Description:     req.Description,
		PackageType:     pkgType,
		BridePrice:      req.BridePrice,
		MaidPrice:       req.MaidPrice,
		MotherPrice:     req.MotherPrice,
		OtherPrice:      req.OtherPrice,
		MinMaids:        req.MinMaids,
		MaxMaids:        req.MaxMaids,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}

	if err := validateRates(pkg); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	s.invalidate(ctx, pkg.ID)
	return pkg, nil
}

func (s *service) GetPackage(ctx context.Context, id uuid.UUID) (*ServicePackage, error) {
	if s.cache == nil {
		return s.repo.GetByID(ctx, id)
	}

	var pkg ServicePackage
	err := s.cache.GetOrSet(ctx, cache.PackageKey(id.String()), s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetByID(ctx, id)
	}, &pkg)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *service) UpdatePackage(ctx context.Context, id uuid.UUID, req UpdatePackageRequest) (*ServicePackage, error) {
	pkg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.PackageType != nil {
		pkgType := PackageType(*req.PackageType)
		if !pkgType.IsValid() {
			return nil, ErrInvalidType
		}
		pkg.PackageType = pkgType
	}
	if req.BridePrice != nil {
		pkg.BridePrice = req.BridePrice
	}
	if req.MaidPrice != nil {
		pkg.MaidPrice = req.MaidPrice
	}
	if req.MotherPrice != nil {
		pkg.MotherPrice = req.MotherPrice
	}
	if req.OtherPrice != nil {
		pkg.OtherPrice = req.OtherPrice
	}
	if req.MinMaids != nil {
		pkg.MinMaids = req.MinMaids
	}
	if req.MaxMaids != nil {
		pkg.MaxMaids = req.MaxMaids
	}
	if req.DurationMinutes != nil {
		pkg.DurationMinutes = req.DurationMinutes
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}
	pkg.UpdatedAt = time.Now()

	if err := validateRates(pkg); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	s.invalidate(ctx, pkg.ID)
	return pkg, nil
}

func (s *service) ListPackages(ctx context.Context, activeOnly bool) ([]ServicePackage, error) {
	if s.cache == nil || !activeOnly {
		return s.repo.List(ctx, activeOnly)
	}

	var pkgs []ServicePackage
	err := s.cache.GetOrSet(ctx, cache.PackageListKey(), s.cacheTTL, func() (interface{}, error) {
		return s.repo.List(ctx, true)
	}, &pkgs)
	if err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (s *service) DeactivatePackage(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// validateRates enforces the package invariants: non-negative rates,
// max maids >= min maids when both bounds are present.
func validateRates(pkg *ServicePackage) error {
	for _, rate := range []*float64{pkg.BridePrice, pkg.MaidPrice, pkg.MotherPrice, pkg.OtherPrice} {
		if rate != nil && *rate < 0 {
			return ErrNegativeRate
		}
	}
	if pkg.MinMaids != nil && pkg.MaxMaids != nil && *pkg.MaxMaids < *pkg.MinMaids {
		return ErrMaidBoundsOrder
	}
	return nil
}

func (s *service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, cache.PackageKey(id.String()))
	_ = s.cache.Delete(ctx, cache.PackageListKey())
}
