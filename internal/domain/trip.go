package domain

import "time"

// Point is a boarding or dropping stop on a trip.
type Point struct {
	Location string
	Time     string
}

type Trip struct {
	ID             string
	BusName        string
	BusType        string
	OperatorName   string
	FromCity       string
	ToCity         string
	Date           time.Time
	DepartureTime  string
	ArrivalTime    string
	Duration       string
	TotalSeats     int
	BookedSeats    []int
	Price          int64
	BoardingPoints []Point
	DroppingPoints []Point
}

// AvailableSeats is TotalSeats minus the seats already reserved by others.
func (t Trip) AvailableSeats() int {
	return t.TotalSeats - len(t.BookedSeats)
}

func (t Trip) IsBooked(seat int) bool {
	for _, s := range t.BookedSeats {
		if s == seat {
			return true
		}
	}
	return false
}
