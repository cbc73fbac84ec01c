package booking

import (
	"github.com/Domenick1991/busbooking/internal/domain"
)

// MaxSeatsPerBooking is the selection ceiling for a single booking.
const MaxSeatsPerBooking = 6

// SeatMap tracks the seats chosen for one trip. Selection order is
// preserved: it drives both the passenger form order and the payload order
// sent to the submission service. Seats already booked on the trip are
// immutable inputs and can never enter the selection.
type SeatMap struct {
	trip     *domain.Trip
	selected []int
}

func NewSeatMap(trip *domain.Trip) *SeatMap {
	return &SeatMap{trip: trip}
}

// Toggle flips the selection state of a seat. A booked or out-of-range seat
// returns ErrSeatUnavailable and changes nothing. Selecting a seventh seat
// returns ErrSelectionFull and changes nothing.
func (m *SeatMap) Toggle(seat int) error {
	if seat < 1 || seat > m.trip.TotalSeats || m.trip.IsBooked(seat) {
		return domain.ErrSeatUnavailable
	}

	if idx := m.indexOf(seat); idx >= 0 {
		m.selected = append(m.selected[:idx], m.selected[idx+1:]...)
		return nil
	}

	if len(m.selected) >= MaxSeatsPerBooking {
		return domain.ErrSelectionFull
	}

	m.selected = append(m.selected, seat)
	return nil
}

func (m *SeatMap) IsBooked(seat int) bool {
	return m.trip.IsBooked(seat)
}

func (m *SeatMap) IsSelected(seat int) bool {
	return m.indexOf(seat) >= 0
}

// Selected returns the chosen seats in selection order.
func (m *SeatMap) Selected() []int {
	out := make([]int, len(m.selected))
	copy(out, m.selected)
	return out
}

func (m *SeatMap) Count() int {
	return len(m.selected)
}

func (m *SeatMap) indexOf(seat int) int {
	for i, s := range m.selected {
		if s == seat {
			return i
		}
	}
	return -1
}
