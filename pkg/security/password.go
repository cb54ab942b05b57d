package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

// MinPasswordLen is the shortest password Hash accepts. The binding rules on
// the auth request structs enforce the same floor at the API edge.
const MinPasswordLen = 8

// PasswordHasher hashes customer passwords and verifies login attempts.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed hasher. Costs outside bcrypt's
// supported range fall back to the default cost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

// Hash rejects passwords outside bcrypt's usable length range with a
// ValidationError before hashing.
func (b *bcryptHasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLen {
		return "", apperr.NewValidation(fmt.Sprintf("password must be at least %d characters", MinPasswordLen))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.NewValidation("password is too long")
	}
	if err != nil {
		return "", apperr.NewPersistence(err)
	}
	return string(hash), nil
}

// Compare returns bcrypt's mismatch error untouched; callers decide how a
// failed comparison surfaces to the client.
func (b *bcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
