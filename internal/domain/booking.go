package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Passenger holds the per-seat traveler details required before submission.
type Passenger struct {
	SeatNumber int
	Name       string
	Age        int
	Gender     Gender
}

// WorkflowState is the booking session lifecycle. A rejected submission
// returns the session to StateComposing with the draft intact.
type WorkflowState string

const (
	StateBrowsing   WorkflowState = "BROWSING"
	StateSelecting  WorkflowState = "SELECTING"
	StateComposing  WorkflowState = "COMPOSING"
	StateValidated  WorkflowState = "VALIDATED"
	StateSubmitting WorkflowState = "SUBMITTING"
	StateConfirmed  WorkflowState = "CONFIRMED"
)

type PriceSummary struct {
	SeatCount    int
	PerSeatPrice int64
	Total        int64
}

// BookingRequest is the immutable payload sent to the submission service.
// Passengers are ordered by seat selection order.
type BookingRequest struct {
	TripID        string
	Passengers    []Passenger
	BoardingPoint string
	DroppingPoint string
	PaymentMethod string
}

// Reservation is a confirmed booking returned by the submission service.
type Reservation struct {
	ID string
}

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a history entry served by the submission service.
type Booking struct {
	ID            string
	TripID        string
	FromCity      string
	ToCity        string
	Seats         []int
	BoardingPoint string
	DroppingPoint string
	Status        BookingStatus
	TotalPrice    int64
	CreatedAt     time.Time
}
