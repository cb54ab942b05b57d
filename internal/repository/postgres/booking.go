package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/beautysalon/salon-api/internal/model"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

// bookingColumns renders times of day back to zero-padded "HH:MM" so Go-side
// comparisons agree with the TIME columns.
const bookingColumns = `
	id, customer_id, stylist_id, booking_date,
	to_char(booking_time, 'HH24:MI') AS booking_time,
	to_char(end_time, 'HH24:MI') AS end_time,
	status, total_price, notes, cancellation_reason, created_at, updated_at
`

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, customer_id, stylist_id, booking_date, booking_time, end_time,
			status, total_price, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.CustomerID,
		booking.StylistID,
		booking.BookingDate,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.TotalPrice,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return nil
}

func (r *bookingRepository) CreateLineItems(ctx context.Context, items []*model.BookingService) error {
	query := `
		INSERT INTO booking_services (id, booking_id, service_id, name, duration, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.CreatedAt = time.Now()
		_, err := r.q.ExecContext(ctx, query,
			item.ID,
			item.BookingID,
			item.ServiceID,
			item.Name,
			item.Duration,
			item.Price,
			item.CreatedAt,
		)
		if err != nil {
			return apperr.NewPersistence(err)
		}
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	var booking model.Booking
	if err := sqlx.GetContext(ctx, r.q, &booking, query, id); err != nil {
		return nil, wrapErr(err, "booking")
	}
	return &booking, nil
}

func (r *bookingRepository) GetForCustomer(ctx context.Context, id, customerID uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND customer_id = $2`
	var booking model.Booking
	if err := sqlx.GetContext(ctx, r.q, &booking, query, id, customerID); err != nil {
		return nil, wrapErr(err, "booking")
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filters.CustomerID != nil {
		where += fmt.Sprintf(" AND b.customer_id = $%d", argPos)
		args = append(args, *filters.CustomerID)
		argPos++
	}
	if filters.StylistID != nil {
		where += fmt.Sprintf(" AND b.stylist_id = $%d", argPos)
		args = append(args, *filters.StylistID)
		argPos++
	}
	if filters.Status != "" {
		where += fmt.Sprintf(" AND b.status = $%d", argPos)
		args = append(args, filters.Status)
		argPos++
	}
	if filters.Date != nil {
		where += fmt.Sprintf(" AND b.booking_date = $%d", argPos)
		args = append(args, *filters.Date)
		argPos++
	}
	if filters.Search != "" {
		where += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM users u
			JOIN customers c ON c.user_id = u.id
			WHERE c.id = b.customer_id AND (u.name ILIKE $%d OR u.email ILIKE $%d)
		)`, argPos, argPos)
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM bookings b " + where
	if err := sqlx.GetContext(ctx, r.q, &total, countQuery, args...); err != nil {
		return nil, 0, apperr.NewPersistence(err)
	}

	query := fmt.Sprintf(`
		SELECT b.id, b.customer_id, b.stylist_id, b.booking_date,
			   to_char(b.booking_time, 'HH24:MI') AS booking_time,
			   to_char(b.end_time, 'HH24:MI') AS end_time,
			   b.status, b.total_price, b.notes, b.cancellation_reason,
			   b.created_at, b.updated_at
		FROM bookings b
		%s
		ORDER BY b.booking_date DESC, b.booking_time DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filters.Pagination.PageSize, filters.Pagination.Offset())

	bookings := []*model.Booking{}
	if err := sqlx.SelectContext(ctx, r.q, &bookings, query, args...); err != nil {
		return nil, 0, apperr.NewPersistence(err)
	}
	return bookings, total, nil
}

// LineItemsForBookings fetches line items for a page of bookings in one query
// and groups them by booking id.
func (r *bookingRepository) LineItemsForBookings(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]*model.BookingService, error) {
	grouped := make(map[uuid.UUID][]*model.BookingService, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, booking_id, service_id, name, duration, price, created_at
		FROM booking_services
		WHERE booking_id IN (?)
		ORDER BY created_at
	`, bookingIDs)
	if err != nil {
		return nil, apperr.NewPersistence(err)
	}
	query = r.q.Rebind(query)

	items := []*model.BookingService{}
	if err := sqlx.SelectContext(ctx, r.q, &items, query, args...); err != nil {
		return nil, apperr.NewPersistence(err)
	}
	for _, item := range items {
		grouped[item.BookingID] = append(grouped[item.BookingID], item)
	}
	return grouped, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus, stylistID *uuid.UUID) error {
	query := `
		UPDATE bookings
		SET status = $1,
			stylist_id = COALESCE($2, stylist_id),
			updated_at = $3
		WHERE id = $4
	`
	result, err := r.q.ExecContext(ctx, query, status, stylistID, time.Now(), id)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return requireRow(result, "booking")
}

func (r *bookingRepository) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE bookings
		SET status = $1, cancellation_reason = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.q.ExecContext(ctx, query, model.BookingStatusCancelled, reason, time.Now(), id)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return requireRow(result, "booking")
}

func (r *bookingRepository) HasConflict(ctx context.Context, stylistID uuid.UUID, date time.Time, startTime, endTime string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE stylist_id = $1
			  AND booking_date = $2
			  AND booking_time < $4 AND end_time > $3
			  AND status NOT IN ('cancelled', 'no_show')
		)
	`
	var exists bool
	if err := sqlx.GetContext(ctx, r.q, &exists, query, stylistID, date, startTime, endTime); err != nil {
		return false, apperr.NewPersistence(err)
	}
	return exists, nil
}

func (r *bookingRepository) BookedIntervals(ctx context.Context, date time.Time, stylistID *uuid.UUID) ([]model.TimeRange, error) {
	query := `
		SELECT to_char(booking_time, 'HH24:MI') AS booking_time,
			   to_char(end_time, 'HH24:MI') AS end_time
		FROM bookings
		WHERE booking_date = $1
		  AND status NOT IN ('cancelled', 'no_show')
	`
	args := []interface{}{date}
	if stylistID != nil {
		query += " AND stylist_id = $2"
		args = append(args, *stylistID)
	}

	intervals := []model.TimeRange{}
	if err := sqlx.SelectContext(ctx, r.q, &intervals, query, args...); err != nil {
		return nil, apperr.NewPersistence(err)
	}
	return intervals, nil
}

func (r *bookingRepository) CountByCustomerWithStatuses(ctx context.Context, customerID uuid.UUID, statuses []model.BookingStatus) (int, error) {
	query, args, err := sqlx.In(`
		SELECT COUNT(*) FROM bookings
		WHERE customer_id = ? AND status IN (?)
	`, customerID, statuses)
	if err != nil {
		return 0, apperr.NewPersistence(err)
	}
	query = r.q.Rebind(query)

	var count int
	if err := sqlx.GetContext(ctx, r.q, &count, query, args...); err != nil {
		return 0, apperr.NewPersistence(err)
	}
	return count, nil
}

func (r *bookingRepository) Stats(ctx context.Context) (*model.BookingStats, error) {
	query := `
		SELECT COUNT(*) AS total_bookings,
			   COUNT(*) FILTER (WHERE status = 'pending') AS pending_count,
			   COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed_count,
			   COUNT(*) FILTER (WHERE status = 'completed') AS completed_count,
			   COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled_count,
			   COALESCE(SUM(total_price) FILTER (WHERE status IN ('confirmed', 'completed')), 0) AS total_revenue,
			   COUNT(*) FILTER (WHERE booking_date = CURRENT_DATE) AS today_bookings,
			   COUNT(*) FILTER (WHERE booking_date >= date_trunc('week', CURRENT_DATE)) AS week_bookings,
			   COUNT(*) FILTER (WHERE booking_date >= date_trunc('month', CURRENT_DATE)) AS month_bookings
		FROM bookings
	`
	var stats model.BookingStats
	if err := sqlx.GetContext(ctx, r.q, &stats, query); err != nil {
		return nil, apperr.NewPersistence(err)
	}
	return &stats, nil
}
