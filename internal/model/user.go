package model

import (
	"time"
)

// User role constants
const (
	UserRoleAdmin    = "admin"
	UserRoleStylist  = "stylist"
	UserRoleCustomer = "customer"
)

// User represents a system user. Customers and stylists both own a user
// record; the role decides which profile table hangs off it.
type User struct {
	Base
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	Password     string     `json:"password,omitempty" db:"-"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Phone        *string    `json:"phone" db:"phone"`
	Avatar       *string    `json:"avatar" db:"avatar"`
	Role         string     `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
}

// UpdateUserRequest lists the mutable user fields; nil means unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}
