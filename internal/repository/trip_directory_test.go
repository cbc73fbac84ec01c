package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTripRepository_GetByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/routes/trip-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {
			"_id": "trip-1",
			"bus": {"busName": "Night Rider", "busType": "Sleeper", "operatorName": "BlueLine", "totalSeats": 40},
			"fromCity": "Mumbai",
			"toCity": "Pune",
			"date": "2026-09-01T00:00:00Z",
			"departureTime": "22:30",
			"arrivalTime": "05:30",
			"duration": "7h",
			"price": 500,
			"bookedSeats": [3, 4],
			"boardingPoints": [{"location": "Central Station", "time": "21:30"}],
			"droppingPoints": [{"location": "City Gate", "time": "05:30"}]
		}}`))
	}))
	defer server.Close()

	repo := NewTripRepository(server.URL, time.Second)
	trip, err := repo.GetByID(context.Background(), "trip-1")
	assert.NoError(t, err)
	assert.Equal(t, "trip-1", trip.ID)
	assert.Equal(t, "Night Rider", trip.BusName)
	assert.Equal(t, "Mumbai", trip.FromCity)
	assert.Equal(t, 40, trip.TotalSeats)
	assert.Equal(t, []int{3, 4}, trip.BookedSeats)
	assert.Equal(t, int64(500), trip.Price)
	assert.Equal(t, 38, trip.AvailableSeats())
	assert.Equal(t, "Central Station", trip.BoardingPoints[0].Location)
	assert.Equal(t, "City Gate", trip.DroppingPoints[0].Location)
}

func TestTripRepository_GetByID_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	repo := NewTripRepository(server.URL, time.Second)
	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestTripRepository_GetByID_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	repo := NewTripRepository(server.URL, time.Second)
	_, err := repo.GetByID(context.Background(), "trip-1")
	assert.True(t, domain.IsServiceUnavailable(err))
}

func TestTripRepository_GetByID_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	repo := NewTripRepository(server.URL, time.Second)
	_, err := repo.GetByID(context.Background(), "trip-1")
	assert.True(t, domain.IsServiceUnavailable(err))
}

func TestTripRepository_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/routes/search", r.URL.Path)
		assert.Equal(t, "Mumbai", r.URL.Query().Get("fromCity"))
		assert.Equal(t, "Pune", r.URL.Query().Get("toCity"))
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [
			{"_id": "trip-1", "bus": {"totalSeats": 40}, "price": 500},
			{"_id": "trip-2", "bus": {"totalSeats": 32}, "price": 750}
		]}`))
	}))
	defer server.Close()

	repo := NewTripRepository(server.URL, time.Second)
	found, err := repo.Search(context.Background(), "Mumbai", "Pune", "2026-09-01")
	assert.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "trip-1", found[0].ID)
	assert.Equal(t, int64(750), found[1].Price)
}

func TestTripRepository_Search_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	repo := NewTripRepository(server.URL, time.Second)
	found, err := repo.Search(context.Background(), "Mumbai", "Goa", "2026-09-01")
	assert.NoError(t, err)
	assert.Empty(t, found)
}
