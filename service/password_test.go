package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	password := "mySecretPassword123"

	hashed, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, password, hashed)

	assert.True(t, hasher.Compare(hashed, password))
	assert.False(t, hasher.Compare(hashed, "notMyPassword"))
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	hashed, err := NewBcryptHasher(DefaultBcryptCost).Hash("Secret123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}
