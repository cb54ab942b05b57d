package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/beautysalon/salon-api/internal/model"
	"github.com/beautysalon/salon-api/internal/repository"
	"github.com/beautysalon/salon-api/internal/service/booking"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
	"github.com/beautysalon/salon-api/pkg/logger"
)

// Service serves customer profiles. Profile reads recompute the membership
// tier from the settled booking count and heal the stored value when it has
// drifted, so a missed upgrade fixes itself on the next read.
type Service struct {
	store  repository.Store
	logger *logger.Logger
}

func NewService(store repository.Store, log *logger.Logger) *Service {
	return &Service{store: store, logger: log}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*model.CustomerProfile, error) {
	if err := s.ensureCustomer(ctx, userID); err != nil {
		return nil, err
	}

	profile, err := s.store.Customers().GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	settled, err := s.store.Bookings().CountByCustomerWithStatuses(ctx, profile.CustomerID, []model.BookingStatus{
		model.BookingStatusConfirmed,
		model.BookingStatusCompleted,
	})
	if err != nil {
		return nil, err
	}
	profile.ConfirmedBookings = settled

	if tier := booking.TierFor(settled); tier != profile.Tier {
		if err := s.store.Customers().UpdateTier(ctx, profile.CustomerID, tier); err != nil {
			return nil, err
		}
		s.logger.Info("healed membership tier on profile read",
			"customer_id", profile.CustomerID, "from", profile.Tier, "to", tier)
		profile.Tier = tier
	}
	return profile, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.CustomerProfile, error) {
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if req.Name != nil || req.Phone != nil {
			if err := tx.Users().Update(ctx, userID, &model.UpdateUserRequest{
				Name:  req.Name,
				Phone: req.Phone,
			}); err != nil {
				return err
			}
		}
		return tx.Customers().Update(ctx, userID, req)
	})
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// ensureCustomer creates the customer record on first profile access for
// users registered before profiles existed.
func (s *Service) ensureCustomer(ctx context.Context, userID uuid.UUID) error {
	_, err := s.store.Customers().GetByUserID(ctx, userID)
	if err == nil {
		return nil
	}
	if !apperr.IsNotFound(err) {
		return err
	}

	if _, err := s.store.Users().Get(ctx, userID); err != nil {
		return err
	}
	return s.store.Customers().Create(ctx, &model.Customer{
		UserID: userID,
		Tier:   model.TierBronze,
	})
}
