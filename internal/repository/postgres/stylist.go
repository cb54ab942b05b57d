package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/beautysalon/salon-api/internal/model"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

func (r *stylistRepository) Get(ctx context.Context, id uuid.UUID) (*model.Stylist, error) {
	query := `
		SELECT s.id, s.user_id, s.specialization, s.experience_years, s.rating,
			   s.total_reviews, s.is_available, s.created_at, s.updated_at,
			   u.name, u.avatar, u.is_active AS user_active
		FROM stylists s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
	`
	var stylist model.Stylist
	if err := sqlx.GetContext(ctx, r.q, &stylist, query, id); err != nil {
		return nil, wrapErr(err, "stylist")
	}
	return &stylist, nil
}

// Lock takes FOR UPDATE on the stylist row. Concurrent booking transactions
// for the same stylist queue behind it, so the second one runs its conflict
// check only after the first has committed. Locking the stylist rather than
// the day's bookings matters: on an empty day there would be no booking rows
// to lock and two creates could pass the conflict check side by side.
func (r *stylistRepository) Lock(ctx context.Context, id uuid.UUID) error {
	query := `SELECT id FROM stylists WHERE id = $1 FOR UPDATE`
	var locked uuid.UUID
	if err := sqlx.GetContext(ctx, r.q, &locked, query, id); err != nil {
		return wrapErr(err, "stylist")
	}
	return nil
}

func (r *stylistRepository) ListAvailable(ctx context.Context) ([]*model.Stylist, error) {
	query := `
		SELECT s.id, s.user_id, s.specialization, s.experience_years, s.rating,
			   s.total_reviews, s.is_available, s.created_at, s.updated_at,
			   u.name, u.avatar, u.is_active AS user_active
		FROM stylists s
		JOIN users u ON u.id = s.user_id
		WHERE s.is_available = true AND u.is_active = true
		ORDER BY s.rating DESC, u.name
	`
	stylists := []*model.Stylist{}
	if err := sqlx.SelectContext(ctx, r.q, &stylists, query); err != nil {
		return nil, apperr.NewPersistence(err)
	}
	return stylists, nil
}
