package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/beautysalon/salon-api/internal/model"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, name, email, password_hash, phone, avatar, role, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.q.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Avatar,
		user.Role,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, name, email, password_hash, phone, avatar, role, is_active,
			   last_login_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user model.User
	if err := sqlx.GetContext(ctx, r.q, &user, query, id); err != nil {
		return nil, wrapErr(err, "user")
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, password_hash, phone, avatar, role, is_active,
			   last_login_at, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var user model.User
	if err := sqlx.GetContext(ctx, r.q, &user, query, email); err != nil {
		return nil, wrapErr(err, "user")
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) error {
	query := `
		UPDATE users
		SET name = COALESCE($1, name),
			phone = COALESCE($2, phone),
			updated_at = $3
		WHERE id = $4
	`
	result, err := r.q.ExecContext(ctx, query, req.Name, req.Phone, time.Now(), id)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return requireRow(result, "user")
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`
	result, err := r.q.ExecContext(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return requireRow(result, "user")
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET last_login_at = $1 WHERE id = $2`
	if _, err := r.q.ExecContext(ctx, query, time.Now(), id); err != nil {
		return apperr.NewPersistence(err)
	}
	return nil
}
