package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/beautysalon/salon-api/internal/model"
	"github.com/beautysalon/salon-api/internal/repository"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

// fakeStore is an in-memory repository.Store. WithTx snapshots the maps and
// restores them when fn fails, mirroring a rollback.
type fakeStore struct {
	users     map[uuid.UUID]*model.User
	customers map[uuid.UUID]*model.Customer
	services  map[uuid.UUID]*model.Service
	stylists  map[uuid.UUID]*model.Stylist
	bookings  map[uuid.UUID]*model.Booking
	lineItems map[uuid.UUID][]*model.BookingService

	failLineItems bool

	// ops records lock, conflict-check and insert calls in order.
	ops []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[uuid.UUID]*model.User{},
		customers: map[uuid.UUID]*model.Customer{},
		services:  map[uuid.UUID]*model.Service{},
		stylists:  map[uuid.UUID]*model.Stylist{},
		bookings:  map[uuid.UUID]*model.Booking{},
		lineItems: map[uuid.UUID][]*model.BookingService{},
	}
}

type storeState struct {
	users     map[uuid.UUID]*model.User
	customers map[uuid.UUID]*model.Customer
	services  map[uuid.UUID]*model.Service
	stylists  map[uuid.UUID]*model.Stylist
	bookings  map[uuid.UUID]*model.Booking
	lineItems map[uuid.UUID][]*model.BookingService
}

func (s *fakeStore) snapshot() storeState {
	state := storeState{
		users:     map[uuid.UUID]*model.User{},
		customers: map[uuid.UUID]*model.Customer{},
		services:  map[uuid.UUID]*model.Service{},
		stylists:  map[uuid.UUID]*model.Stylist{},
		bookings:  map[uuid.UUID]*model.Booking{},
		lineItems: map[uuid.UUID][]*model.BookingService{},
	}
	for id, u := range s.users {
		c := *u
		state.users[id] = &c
	}
	for id, cu := range s.customers {
		c := *cu
		state.customers[id] = &c
	}
	for id, sv := range s.services {
		c := *sv
		state.services[id] = &c
	}
	for id, st := range s.stylists {
		c := *st
		state.stylists[id] = &c
	}
	for id, b := range s.bookings {
		c := *b
		state.bookings[id] = &c
	}
	for id, items := range s.lineItems {
		copied := make([]*model.BookingService, len(items))
		for i, item := range items {
			c := *item
			copied[i] = &c
		}
		state.lineItems[id] = copied
	}
	return state
}

func (s *fakeStore) restore(state storeState) {
	s.users = state.users
	s.customers = state.customers
	s.services = state.services
	s.stylists = state.stylists
	s.bookings = state.bookings
	s.lineItems = state.lineItems
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	state := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(state)
		return err
	}
	return nil
}

func (s *fakeStore) Users() repository.UserRepository          { return &fakeUsers{s} }
func (s *fakeStore) Customers() repository.CustomerRepository  { return &fakeCustomers{s} }
func (s *fakeStore) Services() repository.ServiceRepository    { return &fakeServices{s} }
func (s *fakeStore) Stylists() repository.StylistRepository    { return &fakeStylists{s} }
func (s *fakeStore) Bookings() repository.BookingRepository    { return &fakeBookings{s} }
func (s *fakeStore) Dashboard() repository.DashboardRepository { return &fakeDashboard{s} }

type fakeUsers struct{ s *fakeStore }

func (r *fakeUsers) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	c := *user
	r.s.users[user.ID] = &c
	return nil
}

func (r *fakeUsers) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperr.NewNotFound("user")
	}
	c := *u
	return &c, nil
}

func (r *fakeUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, apperr.NewNotFound("user")
}

func (r *fakeUsers) Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) error {
	u, ok := r.s.users[id]
	if !ok {
		return apperr.NewNotFound("user")
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	return nil
}

func (r *fakeUsers) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := r.s.users[id]
	if !ok {
		return apperr.NewNotFound("user")
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUsers) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	return nil
}

type fakeCustomers struct{ s *fakeStore }

func (r *fakeCustomers) Create(ctx context.Context, customer *model.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if customer.Tier == "" {
		customer.Tier = model.TierBronze
	}
	c := *customer
	r.s.customers[customer.ID] = &c
	return nil
}

func (r *fakeCustomers) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	cu, ok := r.s.customers[id]
	if !ok {
		return nil, apperr.NewNotFound("customer")
	}
	c := *cu
	return &c, nil
}

func (r *fakeCustomers) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Customer, error) {
	for _, cu := range r.s.customers {
		if cu.UserID == userID {
			c := *cu
			return &c, nil
		}
	}
	return nil, apperr.NewNotFound("customer")
}

func (r *fakeCustomers) GetProfile(ctx context.Context, userID uuid.UUID) (*model.CustomerProfile, error) {
	u, ok := r.s.users[userID]
	if !ok {
		return nil, apperr.NewNotFound("customer profile")
	}
	cu, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.NewNotFound("customer profile")
	}
	return &model.CustomerProfile{
		UserID:        u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		CustomerID:    cu.ID,
		LoyaltyPoints: cu.LoyaltyPoints,
		Tier:          cu.Tier,
	}, nil
}

func (r *fakeCustomers) Update(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) error {
	for _, cu := range r.s.customers {
		if cu.UserID == userID {
			if req.Address != nil {
				cu.Address = req.Address
			}
			return nil
		}
	}
	return apperr.NewNotFound("customer")
}

func (r *fakeCustomers) AddLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error {
	cu, ok := r.s.customers[id]
	if !ok {
		return apperr.NewNotFound("customer")
	}
	cu.LoyaltyPoints += points
	return nil
}

func (r *fakeCustomers) UpdateTier(ctx context.Context, id uuid.UUID, tier model.MembershipTier) error {
	cu, ok := r.s.customers[id]
	if !ok {
		return apperr.NewNotFound("customer")
	}
	cu.Tier = tier
	return nil
}

type fakeServices struct{ s *fakeStore }

func (r *fakeServices) Create(ctx context.Context, service *model.Service) error {
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	c := *service
	r.s.services[service.ID] = &c
	return nil
}

func (r *fakeServices) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	sv, ok := r.s.services[id]
	if !ok {
		return nil, apperr.NewNotFound("service")
	}
	c := *sv
	return &c, nil
}

func (r *fakeServices) List(ctx context.Context, filters *model.ServiceFilters) ([]*model.Service, int, error) {
	out := []*model.Service{}
	for _, sv := range r.s.services {
		c := *sv
		out = append(out, &c)
	}
	return out, len(out), nil
}

func (r *fakeServices) ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Service, error) {
	out := []*model.Service{}
	seen := map[uuid.UUID]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if sv, ok := r.s.services[id]; ok && sv.IsActive {
			c := *sv
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeServices) ListCategories(ctx context.Context) ([]*model.ServiceCategory, error) {
	return []*model.ServiceCategory{}, nil
}

func (r *fakeServices) ListPopular(ctx context.Context, limit int) ([]*model.PopularService, error) {
	return []*model.PopularService{}, nil
}

func (r *fakeServices) Update(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) error {
	sv, ok := r.s.services[id]
	if !ok {
		return apperr.NewNotFound("service")
	}
	if req.Price != nil {
		sv.Price = *req.Price
	}
	if req.IsActive != nil {
		sv.IsActive = *req.IsActive
	}
	return nil
}

func (r *fakeServices) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	sv, ok := r.s.services[id]
	if !ok {
		return apperr.NewNotFound("service")
	}
	sv.IsActive = active
	return nil
}

func (r *fakeServices) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.services[id]; !ok {
		return apperr.NewNotFound("service")
	}
	delete(r.s.services, id)
	return nil
}

type fakeStylists struct{ s *fakeStore }

func (r *fakeStylists) Get(ctx context.Context, id uuid.UUID) (*model.Stylist, error) {
	st, ok := r.s.stylists[id]
	if !ok {
		return nil, apperr.NewNotFound("stylist")
	}
	c := *st
	return &c, nil
}

func (r *fakeStylists) Lock(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.stylists[id]; !ok {
		return apperr.NewNotFound("stylist")
	}
	r.s.ops = append(r.s.ops, "lock stylist")
	return nil
}

func (r *fakeStylists) ListAvailable(ctx context.Context) ([]*model.Stylist, error) {
	out := []*model.Stylist{}
	for _, st := range r.s.stylists {
		if st.Bookable() {
			c := *st
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeBookings struct{ s *fakeStore }

func (r *fakeBookings) Create(ctx context.Context, booking *model.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	c := *booking
	r.s.bookings[booking.ID] = &c
	r.s.ops = append(r.s.ops, "insert booking")
	return nil
}

func (r *fakeBookings) CreateLineItems(ctx context.Context, items []*model.BookingService) error {
	if r.s.failLineItems {
		return apperr.NewPersistence(errors.New("line item insert failed"))
	}
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		c := *item
		r.s.lineItems[item.BookingID] = append(r.s.lineItems[item.BookingID], &c)
	}
	return nil
}

func (r *fakeBookings) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, apperr.NewNotFound("booking")
	}
	c := *b
	return &c, nil
}

func (r *fakeBookings) GetForCustomer(ctx context.Context, id, customerID uuid.UUID) (*model.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok || b.CustomerID != customerID {
		return nil, apperr.NewNotFound("booking")
	}
	c := *b
	return &c, nil
}

func (r *fakeBookings) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, int, error) {
	out := []*model.Booking{}
	for _, b := range r.s.bookings {
		if filters.CustomerID != nil && b.CustomerID != *filters.CustomerID {
			continue
		}
		if filters.StylistID != nil && (b.StylistID == nil || *b.StylistID != *filters.StylistID) {
			continue
		}
		if filters.Status != "" && b.Status != filters.Status {
			continue
		}
		c := *b
		out = append(out, &c)
	}
	return out, len(out), nil
}

func (r *fakeBookings) LineItemsForBookings(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]*model.BookingService, error) {
	grouped := map[uuid.UUID][]*model.BookingService{}
	for _, id := range bookingIDs {
		for _, item := range r.s.lineItems[id] {
			c := *item
			grouped[id] = append(grouped[id], &c)
		}
	}
	return grouped, nil
}

func (r *fakeBookings) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus, stylistID *uuid.UUID) error {
	b, ok := r.s.bookings[id]
	if !ok {
		return apperr.NewNotFound("booking")
	}
	b.Status = status
	if stylistID != nil {
		b.StylistID = stylistID
	}
	return nil
}

func (r *fakeBookings) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	b, ok := r.s.bookings[id]
	if !ok {
		return apperr.NewNotFound("booking")
	}
	b.Status = model.BookingStatusCancelled
	b.CancelReason = &reason
	return nil
}

func (r *fakeBookings) HasConflict(ctx context.Context, stylistID uuid.UUID, date time.Time, startTime, endTime string) (bool, error) {
	r.s.ops = append(r.s.ops, "check conflict")
	requested := model.TimeRange{Start: startTime, End: endTime}
	for _, b := range r.s.bookings {
		if b.StylistID == nil || *b.StylistID != stylistID {
			continue
		}
		if !sameDay(b.BookingDate, date) {
			continue
		}
		if b.Status == model.BookingStatusCancelled || b.Status == model.BookingStatusNoShow {
			continue
		}
		if requested.Overlaps(model.TimeRange{Start: b.StartTime, End: b.EndTime}) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookings) BookedIntervals(ctx context.Context, date time.Time, stylistID *uuid.UUID) ([]model.TimeRange, error) {
	out := []model.TimeRange{}
	for _, b := range r.s.bookings {
		if !sameDay(b.BookingDate, date) {
			continue
		}
		if stylistID != nil && (b.StylistID == nil || *b.StylistID != *stylistID) {
			continue
		}
		if b.Status == model.BookingStatusCancelled || b.Status == model.BookingStatusNoShow {
			continue
		}
		out = append(out, model.TimeRange{Start: b.StartTime, End: b.EndTime})
	}
	return out, nil
}

func (r *fakeBookings) CountByCustomerWithStatuses(ctx context.Context, customerID uuid.UUID, statuses []model.BookingStatus) (int, error) {
	count := 0
	for _, b := range r.s.bookings {
		if b.CustomerID != customerID {
			continue
		}
		for _, status := range statuses {
			if b.Status == status {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeBookings) Stats(ctx context.Context) (*model.BookingStats, error) {
	stats := &model.BookingStats{}
	for _, b := range r.s.bookings {
		stats.TotalBookings++
		switch b.Status {
		case model.BookingStatusPending:
			stats.PendingCount++
		case model.BookingStatusConfirmed:
			stats.ConfirmedCount++
			stats.TotalRevenue += b.TotalPrice
		case model.BookingStatusCompleted:
			stats.CompletedCount++
			stats.TotalRevenue += b.TotalPrice
		case model.BookingStatusCancelled:
			stats.CancelledCount++
		}
	}
	return stats, nil
}

type fakeDashboard struct{ s *fakeStore }

func (r *fakeDashboard) Stats(ctx context.Context) (*model.DashboardStats, error) {
	return &model.DashboardStats{}, nil
}

func (r *fakeDashboard) RecentBookings(ctx context.Context, limit int) ([]*model.RecentBooking, error) {
	return []*model.RecentBooking{}, nil
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

type fakeBroker struct {
	events []*model.BookingEvent
}

func (b *fakeBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	b.events = append(b.events, message.(*model.BookingEvent))
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

func (b *fakeBroker) Close() error { return nil }
