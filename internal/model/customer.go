package model

import (
	"time"

	"github.com/google/uuid"
)

type MembershipTier string

const (
	TierBronze MembershipTier = "bronze"
	TierSilver MembershipTier = "silver"
	TierGold   MembershipTier = "gold"
)

// Customer is the loyalty profile hanging off a user record. It is created
// lazily on first booking or profile access and never deleted; deactivation
// happens through the owning user.
type Customer struct {
	Base
	UserID        uuid.UUID      `json:"user_id" db:"user_id"`
	Address       *string        `json:"address" db:"address"`
	DateOfBirth   *time.Time     `json:"date_of_birth" db:"date_of_birth"`
	Gender        *string        `json:"gender" db:"gender"`
	Preferences   *string        `json:"preferences" db:"preferences"`
	LoyaltyPoints int            `json:"loyalty_points" db:"loyalty_points"`
	Tier          MembershipTier `json:"membership_tier" db:"membership_tier"`
}

// CustomerProfile is the joined user+customer view returned by profile reads.
type CustomerProfile struct {
	UserID            uuid.UUID      `json:"user_id" db:"user_id"`
	Name              string         `json:"name" db:"name"`
	Email             string         `json:"email" db:"email"`
	Phone             *string        `json:"phone" db:"phone"`
	Avatar            *string        `json:"avatar" db:"avatar"`
	Role              string         `json:"role" db:"role"`
	CustomerID        uuid.UUID      `json:"customer_id" db:"customer_id"`
	Address           *string        `json:"address" db:"address"`
	DateOfBirth       *time.Time     `json:"date_of_birth" db:"date_of_birth"`
	Gender            *string        `json:"gender" db:"gender"`
	Preferences       *string        `json:"preferences" db:"preferences"`
	LoyaltyPoints     int            `json:"loyalty_points" db:"loyalty_points"`
	Tier              MembershipTier `json:"membership_tier" db:"membership_tier"`
	ConfirmedBookings int            `json:"confirmed_bookings" db:"-"`
	MemberSince       time.Time      `json:"member_since" db:"created_at"`
}

// UpdateProfileRequest lists the mutable profile fields; nil means unchanged.
type UpdateProfileRequest struct {
	Name        *string    `json:"name"`
	Phone       *string    `json:"phone"`
	Address     *string    `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender" binding:"omitempty,oneof=male female other"`
	Preferences *string    `json:"preferences"`
}
