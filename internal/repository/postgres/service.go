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

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (
			id, name, description, price, duration, category_id, image,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	service.CreatedAt = time.Now()
	service.UpdatedAt = time.Now()

	_, err := r.q.ExecContext(ctx, query,
		service.ID,
		service.Name,
		service.Description,
		service.Price,
		service.Duration,
		service.CategoryID,
		service.Image,
		service.IsActive,
		service.CreatedAt,
		service.UpdatedAt,
	)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, name, description, price, duration, category_id, image,
			   is_active, created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var service model.Service
	if err := sqlx.GetContext(ctx, r.q, &service, query, id); err != nil {
		return nil, wrapErr(err, "service")
	}
	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context, filters *model.ServiceFilters) ([]*model.Service, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filters.CategoryID != nil {
		where += fmt.Sprintf(" AND category_id = $%d", argPos)
		args = append(args, *filters.CategoryID)
		argPos++
	}
	if filters.IsActive != nil {
		where += fmt.Sprintf(" AND is_active = $%d", argPos)
		args = append(args, *filters.IsActive)
		argPos++
	}
	if filters.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM services " + where
	if err := sqlx.GetContext(ctx, r.q, &total, countQuery, args...); err != nil {
		return nil, 0, apperr.NewPersistence(err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, price, duration, category_id, image,
			   is_active, created_at, updated_at
		FROM services
		%s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filters.Pagination.PageSize, filters.Pagination.Offset())

	services := []*model.Service{}
	if err := sqlx.SelectContext(ctx, r.q, &services, query, args...); err != nil {
		return nil, 0, apperr.NewPersistence(err)
	}
	return services, total, nil
}

func (r *serviceRepository) ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Service, error) {
	if len(ids) == 0 {
		return []*model.Service{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, name, description, price, duration, category_id, image,
			   is_active, created_at, updated_at
		FROM services
		WHERE id IN (?) AND is_active = true
	`, ids)
	if err != nil {
		return nil, apperr.NewPersistence(err)
	}
	query = r.q.Rebind(query)

	services := []*model.Service{}
	if err := sqlx.SelectContext(ctx, r.q, &services, query, args...); err != nil {
		return nil, apperr.NewPersistence(err)
	}
	return services, nil
}

func (r *serviceRepository) ListCategories(ctx context.Context) ([]*model.ServiceCategory, error) {
	query := `
		SELECT c.id, c.name, c.description, COUNT(s.id) AS service_count
		FROM service_categories c
		LEFT JOIN services s ON s.category_id = c.id AND s.is_active = true
		GROUP BY c.id, c.name, c.description
		ORDER BY c.name
	`
	categories := []*model.ServiceCategory{}
	if err := sqlx.SelectContext(ctx, r.q, &categories, query); err != nil {
		return nil, apperr.NewPersistence(err)
	}
	return categories, nil
}

func (r *serviceRepository) ListPopular(ctx context.Context, limit int) ([]*model.PopularService, error) {
	query := `
		SELECT s.id, s.name, s.description, s.price, s.duration, s.category_id,
			   s.image, s.is_active, s.created_at, s.updated_at,
			   COUNT(bs.id) AS booking_count
		FROM services s
		LEFT JOIN booking_services bs ON bs.service_id = s.id
		WHERE s.is_active = true
		GROUP BY s.id
		ORDER BY booking_count DESC, s.name
		LIMIT $1
	`
	services := []*model.PopularService{}
	if err := sqlx.SelectContext(ctx, r.q, &services, query, limit); err != nil {
		return nil, apperr.NewPersistence(err)
	}
	return services, nil
}

func (r *serviceRepository) Update(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) error {
	query := `
		UPDATE services
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			price = COALESCE($3, price),
			duration = COALESCE($4, duration),
			category_id = COALESCE($5, category_id),
			is_active = COALESCE($6, is_active),
			updated_at = $7
		WHERE id = $8
	`
	result, err := r.q.ExecContext(ctx, query,
		req.Name,
		req.Description,
		req.Price,
		req.Duration,
		req.CategoryID,
		req.IsActive,
		time.Now(),
		id,
	)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return requireRow(result, "service")
}

func (r *serviceRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE services SET is_active = $1, updated_at = $2 WHERE id = $3`
	result, err := r.q.ExecContext(ctx, query, active, time.Now(), id)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return requireRow(result, "service")
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM services WHERE id = $1`
	result, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return apperr.NewPersistence(err)
	}
	return requireRow(result, "service")
}
