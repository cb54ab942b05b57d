package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/beautysalon/salon-api/internal/model"
)

// Store bundles the repositories over one database handle. WithTx runs fn
// against a store bound to a single transaction: a nil return commits, an
// error or panic rolls back every write. Nested WithTx calls join the
// enclosing transaction.
type Store interface {
	WithTx(ctx context.Context, fn func(Store) error) error

	Users() UserRepository
	Customers() CustomerRepository
	Services() ServiceRepository
	Stylists() StylistRepository
	Bookings() BookingRepository
	Dashboard() DashboardRepository
}

type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) error
		UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
		TouchLastLogin(ctx context.Context, id uuid.UUID) error
	}

	CustomerRepository interface {
		Create(ctx context.Context, customer *model.Customer) error
		Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Customer, error)
		GetProfile(ctx context.Context, userID uuid.UUID) (*model.CustomerProfile, error)
		Update(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) error
		AddLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error
		UpdateTier(ctx context.Context, id uuid.UUID, tier model.MembershipTier) error
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		List(ctx context.Context, filters *model.ServiceFilters) ([]*model.Service, int, error)
		ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Service, error)
		ListCategories(ctx context.Context) ([]*model.ServiceCategory, error)
		ListPopular(ctx context.Context, limit int) ([]*model.PopularService, error)
		Update(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) error
		SetActive(ctx context.Context, id uuid.UUID, active bool) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	StylistRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Stylist, error)
		ListAvailable(ctx context.Context) ([]*model.Stylist, error)

		// Lock takes a row lock on the stylist for the rest of the enclosing
		// transaction, serializing concurrent bookings for that stylist. The
		// stylist row always exists, so the lock holds even on a day with no
		// bookings yet.
		Lock(ctx context.Context, id uuid.UUID) error
	}

	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
		CreateLineItems(ctx context.Context, items []*model.BookingService) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		GetForCustomer(ctx context.Context, id, customerID uuid.UUID) (*model.Booking, error)
		List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, int, error)
		LineItemsForBookings(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]*model.BookingService, error)

		UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus, stylistID *uuid.UUID) error
		Cancel(ctx context.Context, id uuid.UUID, reason string) error

		HasConflict(ctx context.Context, stylistID uuid.UUID, date time.Time, startTime, endTime string) (bool, error)
		BookedIntervals(ctx context.Context, date time.Time, stylistID *uuid.UUID) ([]model.TimeRange, error)

		CountByCustomerWithStatuses(ctx context.Context, customerID uuid.UUID, statuses []model.BookingStatus) (int, error)
		Stats(ctx context.Context) (*model.BookingStats, error)
	}

	DashboardRepository interface {
		Stats(ctx context.Context) (*model.DashboardStats, error)
		RecentBookings(ctx context.Context, limit int) ([]*model.RecentBooking, error)
	}
)
