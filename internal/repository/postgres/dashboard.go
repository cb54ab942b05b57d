package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/beautysalon/salon-api/internal/model"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

func (r *dashboardRepository) Stats(ctx context.Context) (*model.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM customers) AS total_customers,
			(SELECT COUNT(*) FROM bookings) AS total_bookings,
			(SELECT COUNT(*) FROM bookings WHERE booking_date = CURRENT_DATE) AS today_bookings,
			(SELECT COALESCE(SUM(total_price), 0) FROM bookings
				WHERE status IN ('confirmed', 'completed')) AS total_revenue,
			(SELECT COALESCE(SUM(total_price), 0) FROM bookings
				WHERE status IN ('confirmed', 'completed')
				  AND booking_date = CURRENT_DATE) AS today_revenue,
			(SELECT COALESCE(SUM(total_price), 0) FROM bookings
				WHERE status IN ('confirmed', 'completed')
				  AND booking_date >= date_trunc('month', CURRENT_DATE)) AS month_revenue,
			(SELECT COUNT(*) FROM bookings WHERE status = 'pending') AS pending_bookings,
			(SELECT COUNT(*) FROM bookings WHERE status = 'confirmed') AS confirmed_bookings,
			(SELECT COUNT(*) FROM services WHERE is_active = true) AS active_services,
			(SELECT COUNT(*) FROM stylists s
				JOIN users u ON u.id = s.user_id
				WHERE s.is_available = true AND u.is_active = true) AS active_stylists
	`
	var stats model.DashboardStats
	if err := sqlx.GetContext(ctx, r.q, &stats, query); err != nil {
		return nil, apperr.NewPersistence(err)
	}
	return &stats, nil
}

func (r *dashboardRepository) RecentBookings(ctx context.Context, limit int) ([]*model.RecentBooking, error) {
	query := `
		SELECT b.id AS booking_id, b.booking_date,
			   to_char(b.booking_time, 'HH24:MI') AS booking_time,
			   b.status, b.total_price, b.created_at,
			   u.name AS customer_name, u.email AS customer_email
		FROM bookings b
		JOIN customers c ON c.id = b.customer_id
		JOIN users u ON u.id = c.user_id
		ORDER BY b.created_at DESC
		LIMIT $1
	`
	bookings := []*model.RecentBooking{}
	if err := sqlx.SelectContext(ctx, r.q, &bookings, query, limit); err != nil {
		return nil, apperr.NewPersistence(err)
	}
	return bookings, nil
}
