package locations

import (
	"context"
	"fmt"
	"time"

	"glowbook/internal/shared/config"
	"glowbook/pkg/cache"

	"github.com/google/uuid"
)

// Service interface defines the contract for transport location management
// and transport fee resolution.
type Service interface {
	CreateLocation(ctx context.Context, req CreateLocationRequest) (*TransportLocation, error)
	GetLocation(ctx context.Context, id uuid.UUID) (*TransportLocation, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*TransportLocation, error)
	ListLocations(ctx context.Context, activeOnly bool) ([]TransportLocation, error)
	DeactivateLocation(ctx context.Context, id uuid.UUID) error
	TransportFee(ctx context.Context, loc Location) (float64, error)
}

type service struct {
	repo      Repository
	cache     cache.Service
	cacheTTL  time.Duration
	bands     []config.DistanceBand
	beyondFee float64
}

// NewService validates the distance banding once at construction so that
// fee lookups never have to re-check it. Bands must be strictly increasing
// in MaxKm with non-decreasing, non-negative fees.
func NewService(repo Repository, cacheService cache.Service, cacheTTL time.Duration, bands []config.DistanceBand, beyondFee float64) (Service, error) {
	if err := validateBands(bands, beyondFee); err != nil {
		return nil, err
	}
	return &service{
		repo:      repo,
		cache:     cacheService,
		cacheTTL:  cacheTTL,
		bands:     bands,
		beyondFee: beyondFee,
	}, nil
}

func validateBands(bands []config.DistanceBand, beyondFee float64) error {
	if len(bands) == 0 {
		return fmt.Errorf("%w: at least one band is required", ErrInvalidBanding)
	}
	if beyondFee < 0 {
		return fmt.Errorf("%w: beyond fee is negative", ErrInvalidBanding)
	}
	prevKm := 0.0
	prevFee := -1.0
	for i, b := range bands {
		if b.MaxKm <= prevKm && i > 0 {
			return fmt.Errorf("%w: band %d does not increase distance", ErrInvalidBanding, i)
		}
		if b.MaxKm <= 0 {
			return fmt.Errorf("%w: band %d has non-positive distance", ErrInvalidBanding, i)
		}
		if b.Fee < 0 {
			return fmt.Errorf("%w: band %d has negative fee", ErrInvalidBanding, i)
		}
		if b.Fee < prevFee {
			return fmt.Errorf("%w: band %d fee decreases", ErrInvalidBanding, i)
		}
		prevKm = b.MaxKm
		prevFee = b.Fee
	}
	if beyondFee < prevFee {
		return fmt.Errorf("%w: beyond fee is below the last band", ErrInvalidBanding)
	}
	return nil
}

func (s *service) CreateLocation(ctx context.Context, req CreateLocationRequest) (*TransportLocation, error) {
	loc := &TransportLocation{
		Name:          req.Name,
		TransportCost: req.TransportCost,
		IsFree:        req.IsFree,
		IsActive:      true,
	}
	if loc.IsFree {
		loc.TransportCost = 0
	}

	if err := s.repo.Create(ctx, loc); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	s.invalidate(ctx, loc.ID)
	return loc, nil
}

func (s *service) GetLocation(ctx context.Context, id uuid.UUID) (*TransportLocation, error) {
	if s.cache == nil {
		return s.repo.GetByID(ctx, id)
	}

	var loc TransportLocation
	err := s.cache.GetOrSet(ctx, cache.LocationKey(id.String()), s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetByID(ctx, id)
	}, &loc)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (s *service) UpdateLocation(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*TransportLocation, error) {
	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.TransportCost != nil {
		loc.TransportCost = *req.TransportCost
	}
	if req.IsFree != nil {
		loc.IsFree = *req.IsFree
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
	if loc.IsFree {
		loc.TransportCost = 0
	}
	loc.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, loc); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	s.invalidate(ctx, loc.ID)
	return loc, nil
}

func (s *service) ListLocations(ctx context.Context, activeOnly bool) ([]TransportLocation, error) {
	if s.cache == nil || !activeOnly {
		return s.repo.List(ctx, activeOnly)
	}

	var locs []TransportLocation
	err := s.cache.GetOrSet(ctx, cache.LocationListKey(), s.cacheTTL, func() (interface{}, error) {
		return s.repo.List(ctx, true)
	}, &locs)
	if err != nil {
		return nil, err
	}
	return locs, nil
}

func (s *service) DeactivateLocation(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// TransportFee resolves the fee for either arm of the variant. Predefined
// zones carry their stored cost (zero when marked free); custom addresses
// are priced by distance banding.
func (s *service) TransportFee(ctx context.Context, loc Location) (float64, error) {
	if err := loc.Validate(); err != nil {
		return 0, err
	}

	if loc.LocationID != nil {
		zone, err := s.GetLocation(ctx, *loc.LocationID)
		if err != nil {
			return 0, err
		}
		if zone.IsFree {
			return 0, nil
		}
		return zone.TransportCost, nil
	}

	return s.feeForDistance(loc.Custom.DistanceKm), nil
}

func (s *service) feeForDistance(km float64) float64 {
	for _, b := range s.bands {
		if km <= b.MaxKm {
			return b.Fee
		}
	}
	return s.beyondFee
}

func (s *service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, cache.LocationKey(id.String()))
	_ = s.cache.Delete(ctx, cache.LocationListKey())
}
