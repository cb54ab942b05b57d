package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/beautysalon/salon-api/internal/model"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (
			id, user_id, address, date_of_birth, gender, preferences,
			loyalty_points, membership_tier, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if customer.Tier == "" {
		customer.Tier = model.TierBronze
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	_, err := r.q.ExecContext(ctx, query,
		customer.ID,
		customer.UserID,
		customer.Address,
		customer.DateOfBirth,
		customer.Gender,
		customer.Preferences,
		customer.LoyaltyPoints,
		customer.Tier,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `
		SELECT id, user_id, address, date_of_birth, gender, preferences,
			   loyalty_points, membership_tier, created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	var customer model.Customer
	if err := sqlx.GetContext(ctx, r.q, &customer, query, id); err != nil {
		return nil, wrapErr(err, "customer")
	}
	return &customer, nil
}

func (r *customerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Customer, error) {
	query := `
		SELECT id, user_id, address, date_of_birth, gender, preferences,
			   loyalty_points, membership_tier, created_at, updated_at
		FROM customers
		WHERE user_id = $1
	`
	var customer model.Customer
	if err := sqlx.GetContext(ctx, r.q, &customer, query, userID); err != nil {
		return nil, wrapErr(err, "customer")
	}
	return &customer, nil
}

func (r *customerRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*model.CustomerProfile, error) {
	query := `
		SELECT u.id AS user_id, u.name, u.email, u.phone, u.avatar, u.role,
			   c.id AS customer_id, c.address, c.date_of_birth, c.gender,
			   c.preferences, c.loyalty_points, c.membership_tier, u.created_at
		FROM users u
		JOIN customers c ON c.user_id = u.id
		WHERE u.id = $1
	`
	var profile model.CustomerProfile
	err := sqlx.GetContext(ctx, r.q, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound("customer profile")
	}
	if err != nil {
		return nil, apperr.NewPersistence(err)
	}
	return &profile, nil
}

func (r *customerRepository) Update(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) error {
	query := `
		UPDATE customers
		SET address = COALESCE($1, address),
			date_of_birth = COALESCE($2, date_of_birth),
			gender = COALESCE($3, gender),
			preferences = COALESCE($4, preferences),
			updated_at = $5
		WHERE user_id = $6
	`
	result, err := r.q.ExecContext(ctx, query,
		req.Address,
		req.DateOfBirth,
		req.Gender,
		req.Preferences,
		time.Now(),
		userID,
	)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return requireRow(result, "customer")
}

func (r *customerRepository) AddLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error {
	query := `
		UPDATE customers
		SET loyalty_points = loyalty_points + $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.q.ExecContext(ctx, query, points, time.Now(), id)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return requireRow(result, "customer")
}

func (r *customerRepository) UpdateTier(ctx context.Context, id uuid.UUID, tier model.MembershipTier) error {
	query := `
		UPDATE customers
		SET membership_tier = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.q.ExecContext(ctx, query, tier, time.Now(), id)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return requireRow(result, "customer")
}
