package booking

import (
	"testing"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testTrip() *domain.Trip {
	return &domain.Trip{
		ID:          "trip-1",
		TotalSeats:  40,
		BookedSeats: []int{3, 4},
		Price:       500,
		BoardingPoints: []domain.Point{
			{Location: "Central Station", Time: "21:30"},
			{Location: "Airport Road", Time: "22:00"},
		},
		DroppingPoints: []domain.Point{
			{Location: "City Gate", Time: "05:30"},
			{Location: "Main Square", Time: "06:00"},
		},
	}
}

func TestSeatMap_Toggle_SelectAndDeselect(t *testing.T) {
	m := NewSeatMap(testTrip())

	assert.NoError(t, m.Toggle(1))
	assert.NoError(t, m.Toggle(2))
	assert.Equal(t, []int{1, 2}, m.Selected())
	assert.True(t, m.IsSelected(1))

	assert.NoError(t, m.Toggle(1))
	assert.Equal(t, []int{2}, m.Selected())
	assert.False(t, m.IsSelected(1))
}

func TestSeatMap_Toggle_BookedSeatIsNoOp(t *testing.T) {
	m := NewSeatMap(testTrip())

	err := m.Toggle(3)
	assert.ErrorIs(t, err, domain.ErrSeatUnavailable)
	assert.Empty(t, m.Selected())
	assert.True(t, m.IsBooked(3))
	assert.False(t, m.IsSelected(3))
}

func TestSeatMap_Toggle_OutOfRange(t *testing.T) {
	m := NewSeatMap(testTrip())

	testCases := []struct {
		name string
		seat int
	}{
		{name: "zero", seat: 0},
		{name: "negative", seat: -1},
		{name: "past total", seat: 41},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := m.Toggle(tc.seat)
			assert.ErrorIs(t, err, domain.ErrSeatUnavailable)
			assert.Empty(t, m.Selected())
		})
	}
}

func TestSeatMap_Toggle_CapacityCeiling(t *testing.T) {
	m := NewSeatMap(testTrip())

	for _, seat := range []int{1, 2, 5, 6, 7, 8} {
		assert.NoError(t, m.Toggle(seat))
	}
	assert.Equal(t, MaxSeatsPerBooking, m.Count())

	err := m.Toggle(9)
	assert.ErrorIs(t, err, domain.ErrSelectionFull)
	assert.Equal(t, []int{1, 2, 5, 6, 7, 8}, m.Selected())

	// Deselecting an already-selected seat still works at the ceiling.
	assert.NoError(t, m.Toggle(5))
	assert.Equal(t, []int{1, 2, 6, 7, 8}, m.Selected())
}

func TestSeatMap_SelectionOrderIsDeterministic(t *testing.T) {
	first := NewSeatMap(testTrip())
	second := NewSeatMap(testTrip())

	sequence := []int{7, 1, 3, 12, 7, 2, 7}
	for _, seat := range sequence {
		_ = first.Toggle(seat)
		_ = second.Toggle(seat)
	}

	assert.Equal(t, first.Selected(), second.Selected())
	assert.Equal(t, []int{1, 12, 7, 2}, first.Selected())
}

func TestSeatMap_NeverContainsBookedSeat(t *testing.T) {
	m := NewSeatMap(testTrip())

	for seat := 1; seat <= 12; seat++ {
		_ = m.Toggle(seat)
	}

	for _, seat := range m.Selected() {
		assert.False(t, m.IsBooked(seat))
	}
	assert.LessOrEqual(t, m.Count(), MaxSeatsPerBooking)
}
