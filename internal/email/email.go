package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/busbooking/internal/kafka"
	"go.uber.org/zap"
)

type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

// Send renders a notification for a booking lifecycle event. Delivery is a
// stub; the message body is what a real SMTP sender would get.
func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	var body string
	switch event.Type {
	case "booking_confirmed":
		body = fmt.Sprintf("Your booking %s for trip %s (seats %s) is confirmed.",
			event.ReservationID, event.TripID, joinSeats(event.Seats))
	case "booking_rejected":
		body = fmt.Sprintf("Your booking for trip %s was rejected: %s.", event.TripID, event.Reason)
	default:
		body = fmt.Sprintf("Update for trip %s: %s.", event.TripID, event.Type)
	}

	s.log.Info("sending notification",
		zap.String("user_id", event.UserID),
		zap.String("type", event.Type),
		zap.String("body", body),
	)
	return nil
}

func joinSeats(seats []int) string {
	parts := make([]string, len(seats))
	for i, s := range seats {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return strings.Join(parts, ", ")
}
