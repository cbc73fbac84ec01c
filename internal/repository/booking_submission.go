package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Domenick1991/busbooking/internal/domain"
)

// BookingRepository talks to the remote booking submission service. Submit
// issues exactly one call per invocation; retry policy belongs to callers.
type BookingRepository interface {
	Submit(ctx context.Context, request domain.BookingRequest, authToken string) (*domain.Reservation, error)
	ListByUser(ctx context.Context, authToken string) ([]domain.Booking, error)
	Cancel(ctx context.Context, bookingID, authToken string) (*domain.Booking, error)
}

type HTTPBookingRepository struct {
	baseURL string
	client  *http.Client
}

func NewBookingRepository(baseURL string, timeout time.Duration) BookingRepository {
	return &HTTPBookingRepository{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type passengerDTO struct {
	SeatNumber int    `json:"seatNumber"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
}

type submitRequestDTO struct {
	RouteID          string         `json:"routeId"`
	PassengerDetails []passengerDTO `json:"passengerDetails"`
	BoardingPoint    pointDTO       `json:"boardingPoint"`
	DroppingPoint    pointDTO       `json:"droppingPoint"`
	PaymentMethod    string         `json:"paymentMethod"`
}

type bookingDTO struct {
	ID            string    `json:"_id"`
	RouteID       string    `json:"routeId"`
	FromCity      string    `json:"fromCity"`
	ToCity        string    `json:"toCity"`
	Seats         []int     `json:"seats"`
	BoardingPoint pointDTO  `json:"boardingPoint"`
	DroppingPoint pointDTO  `json:"droppingPoint"`
	Status        string    `json:"status"`
	TotalPrice    int64     `json:"totalPrice"`
	CreatedAt     time.Time `json:"createdAt"`
}

type submitResponse struct {
	Data    bookingDTO `json:"data"`
	Message string     `json:"message"`
}

type bookingListResponse struct {
	Data []bookingDTO `json:"data"`
}

func (r *HTTPBookingRepository) Submit(ctx context.Context, request domain.BookingRequest, authToken string) (*domain.Reservation, error) {
	dto := submitRequestDTO{
		RouteID:       request.TripID,
		BoardingPoint: pointDTO{Location: request.BoardingPoint},
		DroppingPoint: pointDTO{Location: request.DroppingPoint},
		PaymentMethod: request.PaymentMethod,
	}
	for _, p := range request.Passengers {
		dto.PassengerDetails = append(dto.PassengerDetails, passengerDTO{
			SeatNumber: p.SeatNumber,
			Name:       p.Name,
			Age:        p.Age,
			Gender:     string(p.Gender),
		})
	}

	payload, err := json.Marshal(dto)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/bookings", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, domain.ServiceUnavailableError{Service: "booking", Err: err}
	}
	defer resp.Body.Close()

	var body submitResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		if decodeErr != nil {
			return nil, domain.ServiceUnavailableError{Service: "booking", Err: decodeErr}
		}
		return &domain.Reservation{ID: body.Data.ID}, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrNotAuthenticated
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// Business rejection, e.g. a seat taken between load and submit.
		return nil, domain.RejectionError{Reason: body.Message}
	default:
		return nil, domain.ServiceUnavailableError{Service: "booking", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
}

func (r *HTTPBookingRepository) ListByUser(ctx context.Context, authToken string) ([]domain.Booking, error) {
	endpoint := fmt.Sprintf("%s/bookings/my-bookings", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, domain.ServiceUnavailableError{Service: "booking", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrNotAuthenticated
	case resp.StatusCode != http.StatusOK:
		return nil, domain.ServiceUnavailableError{Service: "booking", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var body bookingListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.ServiceUnavailableError{Service: "booking", Err: err}
	}

	bookings := make([]domain.Booking, 0, len(body.Data))
	for _, dto := range body.Data {
		bookings = append(bookings, toDomainBooking(dto))
	}
	return bookings, nil
}

func (r *HTTPBookingRepository) Cancel(ctx context.Context, bookingID, authToken string) (*domain.Booking, error) {
	endpoint := fmt.Sprintf("%s/bookings/%s/cancel", r.baseURL, url.PathEscape(bookingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, domain.ServiceUnavailableError{Service: "booking", Err: err}
	}
	defer resp.Body.Close()

	var body submitResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	switch {
	case resp.StatusCode == http.StatusOK:
		if decodeErr != nil {
			return nil, domain.ServiceUnavailableError{Service: "booking", Err: decodeErr}
		}
		booking := toDomainBooking(body.Data)
		return &booking, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrNotAuthenticated
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.NotFoundError{Resource: "booking", ID: bookingID}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, domain.RejectionError{Reason: body.Message}
	default:
		return nil, domain.ServiceUnavailableError{Service: "booking", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
}

func toDomainBooking(dto bookingDTO) domain.Booking {
	return domain.Booking{
		ID:            dto.ID,
		TripID:        dto.RouteID,
		FromCity:      dto.FromCity,
		ToCity:        dto.ToCity,
		Seats:         dto.Seats,
		BoardingPoint: dto.BoardingPoint.Location,
		DroppingPoint: dto.DroppingPoint.Location,
		Status:        domain.BookingStatus(dto.Status),
		TotalPrice:    dto.TotalPrice,
		CreatedAt:     dto.CreatedAt,
	}
}
