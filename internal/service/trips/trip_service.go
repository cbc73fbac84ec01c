package trips

import (
	"context"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/Domenick1991/busbooking/internal/repository"
)

type TripUseCase interface {
	Search(ctx context.Context, fromCity, toCity, date string) ([]domain.Trip, error)
	GetByID(ctx context.Context, id string) (*domain.Trip, error)
}

type TripCache interface {
	GetTrip(ctx context.Context, tripID string) (*domain.Trip, error)
	SetTrip(ctx context.Context, trip *domain.Trip) error
}

type TripService struct {
	repo  repository.TripRepository
	cache TripCache
}

func NewTripService(repo repository.TripRepository, cache TripCache) *TripService {
	return &TripService{repo: repo, cache: cache}
}

// Search is a passthrough to the directory; availability changes too fast
// for search results to be worth caching.
func (s *TripService) Search(ctx context.Context, fromCity, toCity, date string) ([]domain.Trip, error) {
	return s.repo.Search(ctx, fromCity, toCity, date)
}

// GetByID is cache-aside per trip: a cache miss or cache error falls through
// to the directory, and a fresh read repopulates the cache best effort.
func (s *TripService) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTrip(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetTrip(ctx, trip)
	}
	return trip, nil
}

var _ TripUseCase = (*TripService)(nil)
