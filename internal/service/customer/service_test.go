package customer

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautysalon/salon-api/internal/model"
	"github.com/beautysalon/salon-api/internal/repository"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
	"github.com/beautysalon/salon-api/pkg/logger"
)

type fakeStore struct {
	repository.Store
	user     *model.User
	customer *model.Customer
	settled  int
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

func (s *fakeStore) Users() repository.UserRepository         { return &fakeUsers{s: s} }
func (s *fakeStore) Customers() repository.CustomerRepository { return &fakeCustomers{s: s} }
func (s *fakeStore) Bookings() repository.BookingRepository   { return &fakeBookings{s: s} }

type fakeUsers struct {
	repository.UserRepository
	s *fakeStore
}

func (r *fakeUsers) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if r.s.user == nil || r.s.user.ID != id {
		return nil, apperr.NewNotFound("user")
	}
	return r.s.user, nil
}

func (r *fakeUsers) Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) error {
	if req.Name != nil {
		r.s.user.Name = *req.Name
	}
	if req.Phone != nil {
		r.s.user.Phone = req.Phone
	}
	return nil
}

type fakeCustomers struct {
	repository.CustomerRepository
	s *fakeStore
}

func (r *fakeCustomers) Create(ctx context.Context, customer *model.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.s.customer = customer
	return nil
}

func (r *fakeCustomers) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Customer, error) {
	if r.s.customer == nil || r.s.customer.UserID != userID {
		return nil, apperr.NewNotFound("customer")
	}
	return r.s.customer, nil
}

func (r *fakeCustomers) GetProfile(ctx context.Context, userID uuid.UUID) (*model.CustomerProfile, error) {
	if r.s.customer == nil || r.s.customer.UserID != userID {
		return nil, apperr.NewNotFound("customer profile")
	}
	return &model.CustomerProfile{
		UserID:        r.s.user.ID,
		Name:          r.s.user.Name,
		Email:         r.s.user.Email,
		Phone:         r.s.user.Phone,
		CustomerID:    r.s.customer.ID,
		Address:       r.s.customer.Address,
		LoyaltyPoints: r.s.customer.LoyaltyPoints,
		Tier:          r.s.customer.Tier,
	}, nil
}

func (r *fakeCustomers) Update(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) error {
	if r.s.customer == nil || r.s.customer.UserID != userID {
		return apperr.NewNotFound("customer")
	}
	if req.Address != nil {
		r.s.customer.Address = req.Address
	}
	return nil
}

func (r *fakeCustomers) UpdateTier(ctx context.Context, id uuid.UUID, tier model.MembershipTier) error {
	r.s.customer.Tier = tier
	return nil
}

type fakeBookings struct {
	repository.BookingRepository
	s *fakeStore
}

func (r *fakeBookings) CountByCustomerWithStatuses(ctx context.Context, customerID uuid.UUID, statuses []model.BookingStatus) (int, error) {
	return r.s.settled, nil
}

func newTestService(store *fakeStore) *Service {
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewService(store, log)
}

func seededStore(settled int, tier model.MembershipTier) *fakeStore {
	userID := uuid.New()
	return &fakeStore{
		user: &model.User{
			Base:  model.Base{ID: userID},
			Name:  "Minji Kim",
			Email: "minji@example.com",
		},
		customer: &model.Customer{
			Base:   model.Base{ID: uuid.New()},
			UserID: userID,
			Tier:   tier,
		},
		settled: settled,
	}
}

func TestGetProfile(t *testing.T) {
	store := seededStore(3, model.TierBronze)
	svc := newTestService(store)

	profile, err := svc.GetProfile(context.Background(), store.user.ID)
	require.NoError(t, err)

	assert.Equal(t, "Minji Kim", profile.Name)
	assert.Equal(t, 3, profile.ConfirmedBookings)
	assert.Equal(t, model.TierBronze, profile.Tier)
}

func TestGetProfileHealsStaleTier(t *testing.T) {
	// Stored tier lags the settled booking count; the read fixes it.
	store := seededStore(12, model.TierBronze)
	svc := newTestService(store)

	profile, err := svc.GetProfile(context.Background(), store.user.ID)
	require.NoError(t, err)

	assert.Equal(t, model.TierSilver, profile.Tier)
	assert.Equal(t, model.TierSilver, store.customer.Tier)
}

func TestGetProfileCreatesMissingCustomer(t *testing.T) {
	store := seededStore(0, model.TierBronze)
	store.customer = nil
	svc := newTestService(store)

	profile, err := svc.GetProfile(context.Background(), store.user.ID)
	require.NoError(t, err)

	assert.Equal(t, model.TierBronze, profile.Tier)
	require.NotNil(t, store.customer)
	assert.Equal(t, store.user.ID, store.customer.UserID)
}

func TestGetProfileUnknownUser(t *testing.T) {
	store := seededStore(0, model.TierBronze)
	store.customer = nil
	svc := newTestService(store)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateProfile(t *testing.T) {
	store := seededStore(0, model.TierBronze)
	svc := newTestService(store)

	name := "Minji Park"
	address := "12 Gangnam-daero"
	profile, err := svc.UpdateProfile(context.Background(), store.user.ID, &model.UpdateProfileRequest{
		Name:    &name,
		Address: &address,
	})
	require.NoError(t, err)

	assert.Equal(t, "Minji Park", profile.Name)
	require.NotNil(t, profile.Address)
	assert.Equal(t, "12 Gangnam-daero", *profile.Address)
}
