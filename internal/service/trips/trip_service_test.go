package trips

import (
	"context"
	"testing"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *MockTripRepository) Search(ctx context.Context, fromCity, toCity, date string) ([]domain.Trip, error) {
	args := m.Called(ctx, fromCity, toCity, date)
	return args.Get(0).([]domain.Trip), args.Error(1)
}

type MockTripCache struct {
	mock.Mock
}

func (m *MockTripCache) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *MockTripCache) SetTrip(ctx context.Context, trip *domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func TestTripService_GetByID_CacheHit(t *testing.T) {
	repo := &MockTripRepository{}
	cache := &MockTripCache{}
	service := NewTripService(repo, cache)
	ctx := context.Background()

	trip := &domain.Trip{ID: "trip-1", TotalSeats: 40}
	cache.On("GetTrip", ctx, "trip-1").Return(trip, nil).Once()

	got, err := service.GetByID(ctx, "trip-1")
	assert.NoError(t, err)
	assert.Equal(t, trip, got)

	repo.AssertNotCalled(t, "GetByID")
	cache.AssertExpectations(t)
}

func TestTripService_GetByID_CacheMissFallsThrough(t *testing.T) {
	repo := &MockTripRepository{}
	cache := &MockTripCache{}
	service := NewTripService(repo, cache)
	ctx := context.Background()

	trip := &domain.Trip{ID: "trip-1", TotalSeats: 40}
	cache.On("GetTrip", ctx, "trip-1").Return(nil, nil).Once()
	repo.On("GetByID", ctx, "trip-1").Return(trip, nil).Once()
	cache.On("SetTrip", ctx, trip).Return(nil).Once()

	got, err := service.GetByID(ctx, "trip-1")
	assert.NoError(t, err)
	assert.Equal(t, trip, got)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestTripService_GetByID_CacheErrorIgnored(t *testing.T) {
	repo := &MockTripRepository{}
	cache := &MockTripCache{}
	service := NewTripService(repo, cache)
	ctx := context.Background()

	trip := &domain.Trip{ID: "trip-1"}
	cache.On("GetTrip", ctx, "trip-1").Return(nil, assert.AnError).Once()
	repo.On("GetByID", ctx, "trip-1").Return(trip, nil).Once()
	cache.On("SetTrip", ctx, trip).Return(assert.AnError).Once()

	got, err := service.GetByID(ctx, "trip-1")
	assert.NoError(t, err)
	assert.Equal(t, trip, got)
}

func TestTripService_GetByID_RepositoryError(t *testing.T) {
	repo := &MockTripRepository{}
	service := NewTripService(repo, nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, "missing").
		Return(nil, domain.NotFoundError{Resource: "trip", ID: "missing"}).Once()

	_, err := service.GetByID(ctx, "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestTripService_Search_Passthrough(t *testing.T) {
	repo := &MockTripRepository{}
	cache := &MockTripCache{}
	service := NewTripService(repo, cache)
	ctx := context.Background()

	found := []domain.Trip{{ID: "trip-1"}, {ID: "trip-2"}}
	repo.On("Search", ctx, "Mumbai", "Pune", "2026-09-01").Return(found, nil).Once()

	got, err := service.Search(ctx, "Mumbai", "Pune", "2026-09-01")
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	cache.AssertNotCalled(t, "GetTrip")
	repo.AssertExpectations(t)
}
