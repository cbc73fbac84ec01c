package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/Domenick1991/busbooking/internal/service/trips"
	"github.com/gin-gonic/gin"
)

type TripHandler struct {
	service trips.TripUseCase
}

func NewTripHandler(service trips.TripUseCase) *TripHandler {
	return &TripHandler{service: service}
}

func (h *TripHandler) Register(router *gin.RouterGroup) {
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
}

type pointResponse struct {
	Location string `json:"location"`
	Time     string `json:"time"`
}

type tripResponse struct {
	ID             string          `json:"id"`
	BusName        string          `json:"bus_name"`
	BusType        string          `json:"bus_type"`
	OperatorName   string          `json:"operator_name"`
	FromCity       string          `json:"from_city"`
	ToCity         string          `json:"to_city"`
	Date           string          `json:"date"`
	DepartureTime  string          `json:"departure_time"`
	ArrivalTime    string          `json:"arrival_time"`
	Duration       string          `json:"duration"`
	TotalSeats     int             `json:"total_seats"`
	AvailableSeats int             `json:"available_seats"`
	BookedSeats    []int           `json:"booked_seats"`
	Price          int64           `json:"price"`
	BoardingPoints []pointResponse `json:"boarding_points"`
	DroppingPoints []pointResponse `json:"dropping_points"`
}

func (h *TripHandler) search(c *gin.Context) {
	fromCity := c.Query("from")
	toCity := c.Query("to")
	date := c.Query("date")
	if fromCity == "" || toCity == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from, to and date are required"})
		return
	}

	found, err := h.service.Search(c.Request.Context(), fromCity, toCity, date)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]tripResponse, 0, len(found))
	for _, trip := range found {
		out = append(out, toTripResponse(trip))
	}
	c.JSON(http.StatusOK, out)
}

func (h *TripHandler) get(c *gin.Context) {
	trip, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toTripResponse(*trip))
}

func toTripResponse(trip domain.Trip) tripResponse {
	resp := tripResponse{
		ID:             trip.ID,
		BusName:        trip.BusName,
		BusType:        trip.BusType,
		OperatorName:   trip.OperatorName,
		FromCity:       trip.FromCity,
		ToCity:         trip.ToCity,
		Date:           trip.Date.Format(time.RFC3339),
		DepartureTime:  trip.DepartureTime,
		ArrivalTime:    trip.ArrivalTime,
		Duration:       trip.Duration,
		TotalSeats:     trip.TotalSeats,
		AvailableSeats: trip.AvailableSeats(),
		BookedSeats:    trip.BookedSeats,
		Price:          trip.Price,
	}
	for _, p := range trip.BoardingPoints {
		resp.BoardingPoints = append(resp.BoardingPoints, pointResponse{Location: p.Location, Time: p.Time})
	}
	for _, p := range trip.DroppingPoints {
		resp.DroppingPoints = append(resp.DroppingPoints, pointResponse{Location: p.Location, Time: p.Time})
	}
	return resp
}
