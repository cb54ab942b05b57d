package stylist

import (
	"context"

	"github.com/google/uuid"

	"github.com/beautysalon/salon-api/internal/model"
	"github.com/beautysalon/salon-api/internal/repository"
)

// Service serves the public stylist directory.
type Service struct {
	store repository.Store
}

func NewService(store repository.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Stylist, error) {
	return s.store.Stylists().Get(ctx, id)
}

func (s *Service) ListAvailable(ctx context.Context) ([]*model.Stylist, error) {
	return s.store.Stylists().ListAvailable(ctx)
}
