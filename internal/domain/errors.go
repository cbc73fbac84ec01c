package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSeatUnavailable signals a toggle on a seat already reserved by others.
	ErrSeatUnavailable = errors.New("seat is not available")
	// ErrSelectionFull signals the per-booking seat ceiling was hit.
	ErrSelectionFull = errors.New("maximum seats per booking reached")
	// ErrEmptySelection blocks submission of a draft with no seats chosen.
	ErrEmptySelection = errors.New("no seats selected")
	// ErrNotValidated means buildRequest was called before a successful Validate.
	ErrNotValidated = errors.New("draft has not been validated")
	// ErrSubmissionInFlight rejects mutations while a submission is pending.
	ErrSubmissionInFlight = errors.New("submission in flight")
	// ErrSessionClosed rejects operations on a confirmed or ended session.
	ErrSessionClosed = errors.New("booking session is closed")
	// ErrNotAuthenticated is a precondition failure raised before a workflow starts.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// IncompletePassengerError names the first seat, in selection order, whose
// passenger record is missing a name or a positive age.
type IncompletePassengerError struct {
	Seat int
}

func (e IncompletePassengerError) Error() string {
	return fmt.Sprintf("passenger details incomplete for seat %d", e.Seat)
}

// RejectionError is a business-level refusal from the submission service.
// The draft is preserved so the user can adjust and retry.
type RejectionError struct {
	Reason string
}

func (e RejectionError) Error() string {
	if e.Reason == "" {
		return "booking failed"
	}
	return e.Reason
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ServiceUnavailableError wraps a transport or server-side failure of a
// remote collaborator; the workflow aborts upward.
type ServiceUnavailableError struct {
	Service string
	Err     error
}

func (e ServiceUnavailableError) Error() string {
	return fmt.Sprintf("%s service unavailable: %v", e.Service, e.Err)
}

func (e ServiceUnavailableError) Unwrap() error { return e.Err }

func IsIncompletePassenger(err error) bool {
	var target IncompletePassengerError
	return errors.As(err, &target)
}

func IsRejection(err error) bool {
	var target RejectionError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsServiceUnavailable(err error) bool {
	var target ServiceUnavailableError
	return errors.As(err, &target)
}
