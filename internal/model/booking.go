package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// Booking holds an appointment. Times of day are zero-padded "HH:MM" strings,
// matching the TIME columns; the fixed width makes lexical comparison agree
// with temporal order. EndTime is derived from StartTime plus the summed
// service durations at creation and never edited independently.
type Booking struct {
	Base
	CustomerID   uuid.UUID     `json:"customer_id" db:"customer_id"`
	StylistID    *uuid.UUID    `json:"stylist_id" db:"stylist_id"`
	BookingDate  time.Time     `json:"booking_date" db:"booking_date"`
	StartTime    string        `json:"booking_time" db:"booking_time"`
	EndTime      string        `json:"end_time" db:"end_time"`
	Status       BookingStatus `json:"status" db:"status"`
	TotalPrice   float64       `json:"total_price" db:"total_price"`
	Notes        *string       `json:"notes" db:"notes"`
	CancelReason *string       `json:"cancellation_reason" db:"cancellation_reason"`
}

// BookingService is a price-snapshot line item. The price is copied from the
// service at booking time and stays fixed across later catalog edits.
type BookingService struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BookingID uuid.UUID `json:"booking_id" db:"booking_id"`
	ServiceID uuid.UUID `json:"service_id" db:"service_id"`
	Name      string    `json:"name" db:"name"`
	Duration  int       `json:"duration" db:"duration"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BookingDetail is a booking joined with its line items and, when assigned,
// the stylist's public fields.
type BookingDetail struct {
	Booking
	Services       []*BookingService `json:"services"`
	StylistName    *string           `json:"stylist_name,omitempty"`
	Specialization *string           `json:"stylist_specialization,omitempty"`
}

// TimeRange is a half-open [Start, End) interval within a single day.
type TimeRange struct {
	Start string `db:"booking_time" json:"start"`
	End   string `db:"end_time" json:"end"`
}

// Overlaps reports whether two half-open intervals intersect. Touching
// intervals (a.End == b.Start) do not overlap.
func (a TimeRange) Overlaps(b TimeRange) bool {
	return a.Start < b.End && b.Start < a.End
}

type CreateBookingRequest struct {
	ServiceIDs  []uuid.UUID `json:"service_ids" binding:"required,min=1"`
	StylistID   *uuid.UUID  `json:"stylist_id"`
	BookingDate string      `json:"booking_date" binding:"required,datetime=2006-01-02,futuredate"`
	StartTime   string      `json:"booking_time" binding:"required,datetime=15:04"`
	Notes       *string     `json:"notes" binding:"omitempty,max=1000"`
}

type UpdateBookingStatusRequest struct {
	Status    BookingStatus `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
	StylistID *uuid.UUID    `json:"stylist_id"`
}

type CancelBookingRequest struct {
	Reason *string `json:"cancellation_reason" binding:"omitempty,max=500"`
}

type BookingFilters struct {
	CustomerID *uuid.UUID
	StylistID  *uuid.UUID
	Status     BookingStatus
	Date       *time.Time
	Search     string
	Pagination Pagination
}

// BookingStats is the admin aggregate over all bookings.
type BookingStats struct {
	TotalBookings  int     `json:"total_bookings" db:"total_bookings"`
	PendingCount   int     `json:"pending_count" db:"pending_count"`
	ConfirmedCount int     `json:"confirmed_count" db:"confirmed_count"`
	CompletedCount int     `json:"completed_count" db:"completed_count"`
	CancelledCount int     `json:"cancelled_count" db:"cancelled_count"`
	TotalRevenue   float64 `json:"total_revenue" db:"total_revenue"`
	TodayBookings  int     `json:"today_bookings" db:"today_bookings"`
	WeekBookings   int     `json:"week_bookings" db:"week_bookings"`
	MonthBookings  int     `json:"month_bookings" db:"month_bookings"`
}
