package model

import (
	"github.com/google/uuid"
)

// Stylist is the staff profile hanging off a user record.
type Stylist struct {
	Base
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	Specialization  *string   `json:"specialization" db:"specialization"`
	ExperienceYears int       `json:"experience_years" db:"experience_years"`
	Rating          float64   `json:"rating" db:"rating"`
	TotalReviews    int       `json:"total_reviews" db:"total_reviews"`
	IsAvailable     bool      `json:"is_available" db:"is_available"`

	// Joined from the owning user row.
	Name       string  `json:"name" db:"name"`
	Avatar     *string `json:"avatar" db:"avatar"`
	UserActive bool    `json:"-" db:"user_active"`
}

// Bookable reports whether the stylist can take new bookings.
func (s *Stylist) Bookable() bool {
	return s.IsAvailable && s.UserActive
}
