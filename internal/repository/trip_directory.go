package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Domenick1991/busbooking/internal/domain"
)

// TripRepository reads trip metadata from the remote trip directory service,
// which owns the inventory. The directory is the only source of truth for
// booked seats; nothing is written through this interface.
type TripRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Trip, error)
	Search(ctx context.Context, fromCity, toCity, date string) ([]domain.Trip, error)
}

type HTTPTripRepository struct {
	baseURL string
	client  *http.Client
}

func NewTripRepository(baseURL string, timeout time.Duration) TripRepository {
	return &HTTPTripRepository{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type pointDTO struct {
	Location string `json:"location"`
	Time     string `json:"time"`
}

type busDTO struct {
	BusName      string `json:"busName"`
	BusType      string `json:"busType"`
	OperatorName string `json:"operatorName"`
	TotalSeats   int    `json:"totalSeats"`
}

type tripDTO struct {
	ID             string     `json:"_id"`
	Bus            busDTO     `json:"bus"`
	FromCity       string     `json:"fromCity"`
	ToCity         string     `json:"toCity"`
	Date           time.Time  `json:"date"`
	DepartureTime  string     `json:"departureTime"`
	ArrivalTime    string     `json:"arrivalTime"`
	Duration       string     `json:"duration"`
	Price          int64      `json:"price"`
	BookedSeats    []int      `json:"bookedSeats"`
	BoardingPoints []pointDTO `json:"boardingPoints"`
	DroppingPoints []pointDTO `json:"droppingPoints"`
}

type tripResponse struct {
	Data tripDTO `json:"data"`
}

type tripListResponse struct {
	Data []tripDTO `json:"data"`
}

func (r *HTTPTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	endpoint := fmt.Sprintf("%s/routes/%s", r.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, domain.ServiceUnavailableError{Service: "directory", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.NotFoundError{Resource: "trip", ID: id}
	case resp.StatusCode != http.StatusOK:
		return nil, domain.ServiceUnavailableError{Service: "directory", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var body tripResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.ServiceUnavailableError{Service: "directory", Err: err}
	}

	trip := toDomainTrip(body.Data)
	return &trip, nil
}

func (r *HTTPTripRepository) Search(ctx context.Context, fromCity, toCity, date string) ([]domain.Trip, error) {
	params := url.Values{}
	params.Set("fromCity", fromCity)
	params.Set("toCity", toCity)
	params.Set("date", date)

	endpoint := fmt.Sprintf("%s/routes/search?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, domain.ServiceUnavailableError{Service: "directory", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ServiceUnavailableError{Service: "directory", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var body tripListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.ServiceUnavailableError{Service: "directory", Err: err}
	}

	trips := make([]domain.Trip, 0, len(body.Data))
	for _, dto := range body.Data {
		trips = append(trips, toDomainTrip(dto))
	}
	return trips, nil
}

func toDomainTrip(dto tripDTO) domain.Trip {
	trip := domain.Trip{
		ID:            dto.ID,
		BusName:       dto.Bus.BusName,
		BusType:       dto.Bus.BusType,
		OperatorName:  dto.Bus.OperatorName,
		FromCity:      dto.FromCity,
		ToCity:        dto.ToCity,
		Date:          dto.Date,
		DepartureTime: dto.DepartureTime,
		ArrivalTime:   dto.ArrivalTime,
		Duration:      dto.Duration,
		TotalSeats:    dto.Bus.TotalSeats,
		BookedSeats:   dto.BookedSeats,
		Price:         dto.Price,
	}
	for _, p := range dto.BoardingPoints {
		trip.BoardingPoints = append(trip.BoardingPoints, domain.Point{Location: p.Location, Time: p.Time})
	}
	for _, p := range dto.DroppingPoints {
		trip.DroppingPoints = append(trip.DroppingPoints, domain.Point{Location: p.Location, Time: p.Time})
	}
	return trip
}
