package booking

import (
	"context"
	"sync"

	"github.com/Domenick1991/busbooking/internal/domain"
)

// DefaultPaymentMethod tags every booking request; payment itself is handled
// downstream by the submission service.
const DefaultPaymentMethod = "credit_card"

// Submitter is the remote booking submission service as the composer sees it.
type Submitter interface {
	Submit(ctx context.Context, request domain.BookingRequest, authToken string) (*domain.Reservation, error)
}

// PassengerUpdate carries per-field edits for one passenger record. Nil
// fields are left untouched.
type PassengerUpdate struct {
	Name   *string
	Age    *int
	Gender *domain.Gender
}

// Composer owns the draft for one booking session: the seat selection, one
// passenger record per selected seat, the boarding/dropping choice and the
// submission protocol. Mutations are serialized behind a mutex; the
// Submitting state additionally rejects them while a call is in flight.
type Composer struct {
	mu            sync.Mutex
	trip          *domain.Trip
	seats         *SeatMap
	records       map[int]domain.Passenger
	boardingPoint string
	droppingPoint string
	state         domain.WorkflowState
	validated     bool
	reservationID string
}

func NewComposer(trip *domain.Trip) *Composer {
	c := &Composer{
		trip:    trip,
		seats:   NewSeatMap(trip),
		records: make(map[int]domain.Passenger),
		state:   domain.StateBrowsing,
	}
	if len(trip.BoardingPoints) > 0 {
		c.boardingPoint = trip.BoardingPoints[0].Location
	}
	if len(trip.DroppingPoints) > 0 {
		c.droppingPoint = trip.DroppingPoints[0].Location
	}
	return c
}

func (c *Composer) Trip() *domain.Trip {
	return c.trip
}

// ToggleSeat flips a seat and reconciles the passenger records: a newly
// selected seat gets a fresh default record appended at the end, a removed
// seat loses its record, and records for untouched seats keep their edits.
// A seat removed and re-added comes back with fresh defaults.
func (c *Composer) ToggleSeat(seat int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutableLocked(); err != nil {
		return err
	}

	if err := c.seats.Toggle(seat); err != nil {
		return err
	}

	if c.seats.IsSelected(seat) {
		c.records[seat] = domain.Passenger{SeatNumber: seat, Gender: domain.GenderMale}
	} else {
		delete(c.records, seat)
	}

	c.validated = false
	c.recomputeStateLocked()
	return nil
}

// UpdatePassenger edits the record for one seat. A seat with no record
// (already removed) is a silent no-op.
func (c *Composer) UpdatePassenger(seat int, update PassengerUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutableLocked(); err != nil {
		return err
	}

	record, ok := c.records[seat]
	if !ok {
		return nil
	}

	if update.Name != nil {
		record.Name = *update.Name
	}
	if update.Age != nil {
		record.Age = *update.Age
	}
	if update.Gender != nil {
		record.Gender = *update.Gender
	}
	c.records[seat] = record

	c.validated = false
	c.state = domain.StateComposing
	return nil
}

func (c *Composer) SetBoardingPoint(location string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutableLocked(); err != nil {
		return err
	}
	c.boardingPoint = location
	c.validated = false
	return nil
}

func (c *Composer) SetDroppingPoint(location string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutableLocked(); err != nil {
		return err
	}
	c.droppingPoint = location
	c.validated = false
	return nil
}

// PriceSummary recomputes the totals on every call; price is a pure function
// of the current selection size.
func (c *Composer) PriceSummary() domain.PriceSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := c.seats.Count()
	return domain.PriceSummary{
		SeatCount:    count,
		PerSeatPrice: c.trip.Price,
		Total:        c.trip.Price * int64(count),
	}
}

// Passengers returns the records in seat selection order.
func (c *Composer) Passengers() []domain.Passenger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passengersLocked()
}

func (c *Composer) passengersLocked() []domain.Passenger {
	out := make([]domain.Passenger, 0, c.seats.Count())
	for _, seat := range c.seats.Selected() {
		out = append(out, c.records[seat])
	}
	return out
}

// Validate checks the draft is submittable: at least one seat, and every
// passenger record carries a non-empty name and positive age. The first
// incomplete seat in selection order is reported.
func (c *Composer) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Composer) validateLocked() error {
	if c.seats.Count() == 0 {
		return domain.ErrEmptySelection
	}
	for _, seat := range c.seats.Selected() {
		record := c.records[seat]
		if record.Name == "" || record.Age <= 0 {
			return domain.IncompletePassengerError{Seat: seat}
		}
	}
	c.validated = true
	if c.state != domain.StateSubmitting && c.state != domain.StateConfirmed {
		c.state = domain.StateValidated
	}
	return nil
}

// BuildRequest assembles the immutable submission payload. Calling it before
// a successful Validate is a programming error and fails with ErrNotValidated.
func (c *Composer) BuildRequest() (domain.BookingRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.validated {
		return domain.BookingRequest{}, domain.ErrNotValidated
	}
	return c.buildRequestLocked(), nil
}

func (c *Composer) buildRequestLocked() domain.BookingRequest {
	return domain.BookingRequest{
		TripID:        c.trip.ID,
		Passengers:    c.passengersLocked(),
		BoardingPoint: c.boardingPoint,
		DroppingPoint: c.droppingPoint,
		PaymentMethod: DefaultPaymentMethod,
	}
}

// Submit validates the draft and, only if validation passes, issues exactly
// one call to the submission service. Validation failures never reach the
// network. A rejection or outage returns the session to Composing with the
// selection and passenger records intact; there is no automatic retry, which
// would risk duplicate bookings.
func (c *Composer) Submit(ctx context.Context, submitter Submitter, authToken string) (*domain.Reservation, error) {
	c.mu.Lock()
	if c.state == domain.StateSubmitting {
		c.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	}
	if c.state == domain.StateConfirmed {
		c.mu.Unlock()
		return nil, domain.ErrSessionClosed
	}
	if err := c.validateLocked(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	request := c.buildRequestLocked()
	c.state = domain.StateSubmitting
	c.mu.Unlock()

	reservation, err := submitter.Submit(ctx, request, authToken)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = domain.StateComposing
		c.validated = false
		return nil, err
	}

	c.state = domain.StateConfirmed
	c.reservationID = reservation.ID
	return reservation, nil
}

func (c *Composer) State() domain.WorkflowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot captures a consistent read of the whole draft for rendering.
type Snapshot struct {
	State         domain.WorkflowState
	Selected      []int
	Passengers    []domain.Passenger
	BoardingPoint string
	DroppingPoint string
	Price         domain.PriceSummary
	ReservationID string
}

func (c *Composer) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := c.seats.Count()
	return Snapshot{
		State:         c.state,
		Selected:      c.seats.Selected(),
		Passengers:    c.passengersLocked(),
		BoardingPoint: c.boardingPoint,
		DroppingPoint: c.droppingPoint,
		Price: domain.PriceSummary{
			SeatCount:    count,
			PerSeatPrice: c.trip.Price,
			Total:        c.trip.Price * int64(count),
		},
		ReservationID: c.reservationID,
	}
}

// mutableLocked gates every mutation on the workflow state.
func (c *Composer) mutableLocked() error {
	switch c.state {
	case domain.StateSubmitting:
		return domain.ErrSubmissionInFlight
	case domain.StateConfirmed:
		return domain.ErrSessionClosed
	}
	return nil
}

func (c *Composer) recomputeStateLocked() {
	switch {
	case c.seats.Count() == 0:
		c.state = domain.StateBrowsing
	case c.anyEditsLocked():
		c.state = domain.StateComposing
	default:
		c.state = domain.StateSelecting
	}
}

func (c *Composer) anyEditsLocked() bool {
	for _, record := range c.records {
		if record.Name != "" || record.Age > 0 {
			return true
		}
	}
	return false
}
