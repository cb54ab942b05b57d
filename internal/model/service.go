package model

import (
	"github.com/google/uuid"
)

// Service is a bookable salon treatment. Price and duration are copied onto
// booking line items at booking time, so editing a service never rewrites
// history.
type Service struct {
	Base
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	Price       float64    `json:"price" db:"price"`
	Duration    int        `json:"duration" db:"duration"` // minutes
	CategoryID  *uuid.UUID `json:"category_id" db:"category_id"`
	Image       *string    `json:"image" db:"image"`
	IsActive    bool       `json:"is_active" db:"is_active"`
}

type ServiceCategory struct {
	ID           uuid.UUID `json:"category_id" db:"id"`
	Name         string    `json:"category_name" db:"name"`
	Description  *string   `json:"description" db:"description"`
	ServiceCount int       `json:"service_count" db:"service_count"`
}

// PopularService is a catalog entry ranked by how often it was booked.
type PopularService struct {
	Service
	BookingCount int `json:"booking_count" db:"booking_count"`
}

type CreateServiceRequest struct {
	Name        string     `json:"name" binding:"required,max=255"`
	Description *string    `json:"description"`
	Price       float64    `json:"price" binding:"required,gte=0"`
	Duration    int        `json:"duration" binding:"required,gt=0"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// UpdateServiceRequest lists the mutable service fields; nil means unchanged.
type UpdateServiceRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=255"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price" binding:"omitempty,gte=0"`
	Duration    *int       `json:"duration" binding:"omitempty,gt=0"`
	CategoryID  *uuid.UUID `json:"category_id"`
	IsActive    *bool      `json:"is_active"`
}

type ServiceFilters struct {
	CategoryID *uuid.UUID
	IsActive   *bool
	Search     string
	Pagination Pagination
}
