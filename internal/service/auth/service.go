package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/beautysalon/salon-api/internal/model"
	"github.com/beautysalon/salon-api/internal/repository"
	pkgauth "github.com/beautysalon/salon-api/pkg/auth"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
	"github.com/beautysalon/salon-api/pkg/logger"
	"github.com/beautysalon/salon-api/pkg/security"
)

// Service handles registration, login and password changes. Registration
// creates the user and their customer profile in one transaction.
type Service struct {
	store  repository.Store
	hasher security.PasswordHasher
	jwt    pkgauth.JWTService
	logger *logger.Logger
}

func NewService(store repository.Store, hasher security.PasswordHasher, jwt pkgauth.JWTService, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		jwt:    jwt,
		logger: log,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        &req.Phone,
		Role:         model.UserRoleCustomer,
		IsActive:     true,
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		_, err := tx.Users().GetByEmail(ctx, req.Email)
		if err == nil {
			return apperr.NewConflict("email is already registered")
		}
		if !apperr.IsNotFound(err) {
			return err
		}

		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		return tx.Customers().Create(ctx, &model.Customer{
			UserID:      user.ID,
			Address:     req.Address,
			DateOfBirth: req.DateOfBirth,
			Gender:      req.Gender,
			Tier:        model.TierBronze,
		})
	})
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, apperr.NewPersistence(err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return &model.TokenResponse{Token: token, User: user}, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.store.Users().GetByEmail(ctx, req.Email)
	if apperr.IsNotFound(err) {
		return nil, apperr.NewUnauthorized("invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.NewUnauthorized("account is deactivated")
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperr.NewUnauthorized("invalid email or password")
	}

	if err := s.store.Users().TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Error(err, "failed to record login time", "user_id", user.ID)
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, apperr.NewPersistence(err)
	}
	return &model.TokenResponse{Token: token, User: user}, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error {
	user, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, req.CurrentPassword); err != nil {
		return apperr.NewUnauthorized("current password is incorrect")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	return s.store.Users().UpdatePassword(ctx, userID, hash)
}
