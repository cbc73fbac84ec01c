package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/busbooking/internal/auth"
	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/Domenick1991/busbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the seat-selection and booking-composition workflow
// to the presentation layer. All writes are synchronous except submit.
type SessionHandler struct {
	manager  *booking.Manager
	provider *auth.Provider
}

func NewSessionHandler(manager *booking.Manager, provider *auth.Provider) *SessionHandler {
	return &SessionHandler{manager: manager, provider: provider}
}

func (h *SessionHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.start)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.end)
	router.POST("/:id/seats/:seat/toggle", h.toggleSeat)
	router.PUT("/:id/passengers/:seat", h.updatePassenger)
	router.PUT("/:id/points", h.setPoints)
	router.GET("/:id/price", h.price)
	router.POST("/:id/submit", h.submit)
}

type startSessionRequest struct {
	TripID string `json:"trip_id"`
}

type passengerResponse struct {
	SeatNumber int    `json:"seat_number"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
}

// seatRowWidth is the fixed presentation width of the seat grid. Row and
// column are a derived view over the seat number, never stored.
const seatRowWidth = 4

type seatResponse struct {
	Number int    `json:"number"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Status string `json:"status"`
}

type priceResponse struct {
	SeatCount    int   `json:"seat_count"`
	PerSeatPrice int64 `json:"per_seat_price"`
	Total        int64 `json:"total"`
}

type sessionResponse struct {
	ID            string              `json:"id"`
	State         string              `json:"state"`
	Trip          tripResponse        `json:"trip"`
	Seats         []seatResponse      `json:"seats"`
	Selected      []int               `json:"selected"`
	Passengers    []passengerResponse `json:"passengers"`
	BoardingPoint string              `json:"boarding_point"`
	DroppingPoint string              `json:"dropping_point"`
	Price         priceResponse       `json:"price"`
	ReservationID string              `json:"reservation_id,omitempty"`
}

func (h *SessionHandler) start(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.manager.Start(c.Request.Context(), req.TripID, user)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toSessionResponse(session))
}

func (h *SessionHandler) get(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *SessionHandler) end(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}
	h.manager.End(session.ID)
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) toggleSeat(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	seat, err := strconv.Atoi(c.Param("seat"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seat number"})
		return
	}

	if err := session.Composer.ToggleSeat(seat); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

type updatePassengerRequest struct {
	Name   *string `json:"name"`
	Age    *int    `json:"age"`
	Gender *string `json:"gender"`
}

func (h *SessionHandler) updatePassenger(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	seat, err := strconv.Atoi(c.Param("seat"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seat number"})
		return
	}

	var req updatePassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := booking.PassengerUpdate{Name: req.Name, Age: req.Age}
	if req.Gender != nil {
		gender := domain.Gender(*req.Gender)
		update.Gender = &gender
	}

	if err := session.Composer.UpdatePassenger(seat, update); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

type setPointsRequest struct {
	BoardingPoint *string `json:"boarding_point"`
	DroppingPoint *string `json:"dropping_point"`
}

func (h *SessionHandler) setPoints(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	var req setPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.BoardingPoint != nil {
		if err := session.Composer.SetBoardingPoint(*req.BoardingPoint); err != nil {
			c.JSON(statusFromError(err), gin.H{"error": err.Error()})
			return
		}
	}
	if req.DroppingPoint != nil {
		if err := session.Composer.SetDroppingPoint(*req.DroppingPoint); err != nil {
			c.JSON(statusFromError(err), gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *SessionHandler) price(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	summary := session.Composer.PriceSummary()
	c.JSON(http.StatusOK, priceResponse{
		SeatCount:    summary.SeatCount,
		PerSeatPrice: summary.PerSeatPrice,
		Total:        summary.Total,
	})
}

func (h *SessionHandler) submit(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	token, err := auth.ExtractBearer(c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.manager.Submit(c.Request.Context(), session.ID, token)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservation_id": reservation.ID,
		"state":          string(session.Composer.State()),
	})
}

func (h *SessionHandler) currentUser(c *gin.Context) (*auth.User, error) {
	token, err := auth.ExtractBearer(c.GetHeader("Authorization"))
	if err != nil {
		return nil, err
	}
	return h.provider.UserFromToken(token)
}

// ownedSession resolves the session in the path and checks it belongs to the
// caller. It writes the error response itself on failure.
func (h *SessionHandler) ownedSession(c *gin.Context) (*booking.Session, bool) {
	user, err := h.currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return nil, false
	}

	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return nil, false
	}

	if session.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "session belongs to another user"})
		return nil, false
	}
	return session, true
}

func toSessionResponse(session *booking.Session) sessionResponse {
	snapshot := session.Composer.Snapshot()
	trip := session.Composer.Trip()

	seats := make([]seatResponse, 0, trip.TotalSeats)
	selected := make(map[int]bool, len(snapshot.Selected))
	for _, s := range snapshot.Selected {
		selected[s] = true
	}
	for n := 1; n <= trip.TotalSeats; n++ {
		status := "available"
		switch {
		case trip.IsBooked(n):
			status = "booked"
		case selected[n]:
			status = "selected"
		}
		seats = append(seats, seatResponse{
			Number: n,
			Row:    (n-1)/seatRowWidth + 1,
			Column: (n-1)%seatRowWidth + 1,
			Status: status,
		})
	}

	passengers := make([]passengerResponse, 0, len(snapshot.Passengers))
	for _, p := range snapshot.Passengers {
		passengers = append(passengers, passengerResponse{
			SeatNumber: p.SeatNumber,
			Name:       p.Name,
			Age:        p.Age,
			Gender:     string(p.Gender),
		})
	}

	return sessionResponse{
		ID:            session.ID,
		State:         string(snapshot.State),
		Trip:          toTripResponse(*trip),
		Seats:         seats,
		Selected:      snapshot.Selected,
		Passengers:    passengers,
		BoardingPoint: snapshot.BoardingPoint,
		DroppingPoint: snapshot.DroppingPoint,
		Price: priceResponse{
			SeatCount:    snapshot.Price.SeatCount,
			PerSeatPrice: snapshot.Price.PerSeatPrice,
			Total:        snapshot.Price.Total,
		},
		ReservationID: snapshot.ReservationID,
	}
}

// statusFromError maps the domain error taxonomy onto HTTP statuses. No
// error is fatal: every failure leaves the draft in a well-defined state.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSeatUnavailable),
		errors.Is(err, domain.ErrSelectionFull),
		errors.Is(err, domain.ErrSubmissionInFlight),
		errors.Is(err, domain.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptySelection),
		errors.Is(err, domain.ErrNotValidated),
		domain.IsIncompletePassenger(err):
		return http.StatusUnprocessableEntity
	case domain.IsRejection(err):
		return http.StatusConflict
	case domain.IsServiceUnavailable(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
