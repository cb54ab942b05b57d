package model

import (
	"time"

	"github.com/google/uuid"
)

// DashboardStats is the headline aggregate for the admin dashboard. Revenue
// counts only confirmed and completed bookings.
type DashboardStats struct {
	TotalCustomers  int     `json:"total_customers" db:"total_customers"`
	TotalBookings   int     `json:"total_bookings" db:"total_bookings"`
	TodayBookings   int     `json:"today_bookings" db:"today_bookings"`
	TotalRevenue    float64 `json:"total_revenue" db:"total_revenue"`
	TodayRevenue    float64 `json:"today_revenue" db:"today_revenue"`
	MonthRevenue    float64 `json:"month_revenue" db:"month_revenue"`
	PendingBookings int     `json:"pending_bookings" db:"pending_bookings"`
	ConfirmedCount  int     `json:"confirmed_bookings" db:"confirmed_bookings"`
	ActiveServices  int     `json:"active_services" db:"active_services"`
	ActiveStylists  int     `json:"active_stylists" db:"active_stylists"`
}

// RecentBooking is a compact row for the dashboard's latest-activity list.
type RecentBooking struct {
	BookingID     uuid.UUID     `json:"booking_id" db:"booking_id"`
	BookingDate   time.Time     `json:"booking_date" db:"booking_date"`
	StartTime     string        `json:"booking_time" db:"booking_time"`
	Status        BookingStatus `json:"status" db:"status"`
	TotalPrice    float64       `json:"total_price" db:"total_price"`
	CustomerName  string        `json:"customer_name" db:"customer_name"`
	CustomerEmail string        `json:"customer_email" db:"customer_email"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

type Dashboard struct {
	Stats          *DashboardStats  `json:"stats"`
	RecentBookings []*RecentBooking `json:"recent_bookings"`
}
