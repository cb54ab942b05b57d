package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingEventsChannel is the broker channel booking events are published on.
const BookingEventsChannel = "booking_events"

// Booking event types published to the message broker after commit.
const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCompleted = "booking_completed"
	EventBookingCancelled = "booking_cancelled"
)

// BookingEvent is the post-commit notification payload. The worker turns it
// into customer email; the core never sends mail inside a transaction.
type BookingEvent struct {
	Type          string        `json:"type"`
	BookingID     uuid.UUID     `json:"booking_id"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	StylistName   *string       `json:"stylist_name,omitempty"`
	BookingDate   time.Time     `json:"booking_date"`
	StartTime     string        `json:"booking_time"`
	Services      []string      `json:"services"`
	TotalPrice    float64       `json:"total_price"`
	Status        BookingStatus `json:"status"`
	OccurredAt    time.Time     `json:"occurred_at"`
}
