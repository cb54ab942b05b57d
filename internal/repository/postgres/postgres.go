package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/beautysalon/salon-api/internal/repository"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
	"github.com/beautysalon/salon-api/pkg/metrics"
)

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx, so every repository
// works unchanged inside and outside a transaction.
type queryer interface {
	sqlx.ExtContext
}

// Store implements repository.Store over postgres.
type Store struct {
	db   *sqlx.DB
	m    *metrics.Metrics
	q    queryer
	inTx bool
}

// NewStore builds a store over db. A non-nil metrics handle adds per-statement
// operation counters and latency observations.
func NewStore(db *sqlx.DB, m *metrics.Metrics) *Store {
	return &Store{db: db, m: m, q: instrument(db, m)}
}

// WithTx executes fn within a transaction. A nil return commits; an error or
// panic rolls back. Calls made while already inside a transaction reuse it.
func (s *Store) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.NewPersistence(err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Store{db: s.db, m: s.m, q: instrument(tx, s.m), inTx: true}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperr.NewPersistence(err)
	}
	return nil
}

func (s *Store) Users() repository.UserRepository          { return &userRepository{q: s.q} }
func (s *Store) Customers() repository.CustomerRepository  { return &customerRepository{q: s.q} }
func (s *Store) Services() repository.ServiceRepository    { return &serviceRepository{q: s.q} }
func (s *Store) Stylists() repository.StylistRepository    { return &stylistRepository{q: s.q} }
func (s *Store) Bookings() repository.BookingRepository    { return &bookingRepository{q: s.q} }
func (s *Store) Dashboard() repository.DashboardRepository { return &dashboardRepository{q: s.q} }

type userRepository struct {
	q queryer
}

type customerRepository struct {
	q queryer
}

type serviceRepository struct {
	q queryer
}

type stylistRepository struct {
	q queryer
}

type bookingRepository struct {
	q queryer
}

type dashboardRepository struct {
	q queryer
}

// wrapErr maps store failures onto the error taxonomy: missing rows become
// NotFoundError, everything else PersistenceError.
func wrapErr(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NewNotFound(resource)
	}
	return apperr.NewPersistence(err)
}

// requireRow turns a zero-row UPDATE/DELETE into a NotFoundError.
func requireRow(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.NewPersistence(err)
	}
	if rows == 0 {
		return apperr.NewNotFound(resource)
	}
	return nil
}
