package model

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required,min=8"`
	FullName    string     `json:"full_name" binding:"required,max=255"`
	Phone       string     `json:"phone" binding:"required,max=32"`
	Address     *string    `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender" binding:"omitempty,oneof=male female other"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type TokenClaims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

type TokenResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
