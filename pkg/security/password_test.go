package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)

	assert.NoError(t, hasher.Compare(hash, "supersecret"))
	assert.Error(t, hasher.Compare(hash, "wrongpassword"))
}

func TestHashRejectsShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash("short")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	// bcrypt only reads the first 72 bytes; anything longer is rejected
	// instead of silently truncated.
	_, err := hasher.Hash(strings.Repeat("a", 100))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	hasher := NewBcryptHasher(99)

	hash, err := hasher.Hash("supersecret")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "supersecret"))
}
