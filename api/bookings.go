package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/busbooking/internal/auth"
	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/Domenick1991/busbooking/internal/repository"
	"github.com/gin-gonic/gin"
)

// BookingHandler serves the traveler's booking history, proxied from the
// submission service which owns confirmed bookings.
type BookingHandler struct {
	bookings repository.BookingRepository
}

func NewBookingHandler(bookings repository.BookingRepository) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.PUT("/:id/cancel", h.cancel)
}

type bookingResponse struct {
	ID            string `json:"id"`
	TripID        string `json:"trip_id"`
	FromCity      string `json:"from_city"`
	ToCity        string `json:"to_city"`
	Seats         []int  `json:"seats"`
	BoardingPoint string `json:"boarding_point"`
	DroppingPoint string `json:"dropping_point"`
	Status        string `json:"status"`
	TotalPrice    int64  `json:"total_price"`
	CreatedAt     string `json:"created_at"`
}

func (h *BookingHandler) list(c *gin.Context) {
	token, err := auth.ExtractBearer(c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	bookings, err := h.bookings.ListByUser(c.Request.Context(), token)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	token, err := auth.ExtractBearer(c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookings.Cancel(c.Request.Context(), c.Param("id"), token)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*booking))
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		TripID:        b.TripID,
		FromCity:      b.FromCity,
		ToCity:        b.ToCity,
		Seats:         b.Seats,
		BoardingPoint: b.BoardingPoint,
		DroppingPoint: b.DroppingPoint,
		Status:        string(b.Status),
		TotalPrice:    b.TotalPrice,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}
