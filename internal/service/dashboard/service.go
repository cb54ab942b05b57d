package dashboard

import (
	"context"

	"github.com/beautysalon/salon-api/internal/model"
	"github.com/beautysalon/salon-api/internal/repository"
)

const recentBookingsLimit = 10

// Service assembles the admin dashboard.
type Service struct {
	store repository.Store
}

func NewService(store repository.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context) (*model.Dashboard, error) {
	stats, err := s.store.Dashboard().Stats(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.store.Dashboard().RecentBookings(ctx, recentBookingsLimit)
	if err != nil {
		return nil, err
	}
	return &model.Dashboard{Stats: stats, RecentBookings: recent}, nil
}
