package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/beautysalon/salon-api/internal/model"
	"github.com/beautysalon/salon-api/internal/repository"
	"github.com/beautysalon/salon-api/pkg/logger"
)

const (
	categoriesCacheKey = "catalog:categories"
	popularCacheKey    = "catalog:popular"

	cacheTTL     = 5 * time.Minute
	popularLimit = 10
)

// Service serves the service catalog. Category and popularity aggregates are
// cached; any catalog mutation flushes the cache.
type Service struct {
	store  repository.Store
	cache  *gocache.Cache
	logger *logger.Logger
}

func NewService(store repository.Store, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		cache:  gocache.New(cacheTTL, 10*time.Minute),
		logger: log,
	}
}

func (s *Service) List(ctx context.Context, filters *model.ServiceFilters) ([]*model.Service, model.PageInfo, error) {
	filters.Pagination.Normalize(20, 100)

	services, total, err := s.store.Services().List(ctx, filters)
	if err != nil {
		return nil, model.PageInfo{}, err
	}
	return services, model.NewPageInfo(filters.Pagination, total), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return s.store.Services().Get(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]*model.ServiceCategory, error) {
	if cached, ok := s.cache.Get(categoriesCacheKey); ok {
		return cached.([]*model.ServiceCategory), nil
	}

	categories, err := s.store.Services().ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(categoriesCacheKey, categories, cacheTTL)
	return categories, nil
}

func (s *Service) ListPopular(ctx context.Context) ([]*model.PopularService, error) {
	if cached, ok := s.cache.Get(popularCacheKey); ok {
		return cached.([]*model.PopularService), nil
	}

	popular, err := s.store.Services().ListPopular(ctx, popularLimit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(popularCacheKey, popular, cacheTTL)
	return popular, nil
}

func (s *Service) Create(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	service := &model.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		CategoryID:  req.CategoryID,
		IsActive:    true,
	}
	if err := s.store.Services().Create(ctx, service); err != nil {
		return nil, err
	}
	s.cache.Flush()
	return service, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	if err := s.store.Services().Update(ctx, id, req); err != nil {
		return nil, err
	}
	s.cache.Flush()
	return s.store.Services().Get(ctx, id)
}

// Delete retires a service. Services that were ever booked are deactivated
// instead of removed so historical line items keep a valid reference.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.Services().Delete(ctx, id)
	if err != nil {
		// Foreign key violations land here; fall back to deactivation.
		if deactivateErr := s.store.Services().SetActive(ctx, id, false); deactivateErr == nil {
			s.logger.Info("service had bookings, deactivated instead of deleted", "service_id", id)
			err = nil
		}
	}
	if err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}
