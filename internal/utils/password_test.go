package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("zxcvbnm", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "zxcvbnm", hash)

	assert.True(t, VerifyPassword(hash, "zxcvbnm"))
	assert.False(t, VerifyPassword(hash, "a invalid password for user"))
	assert.False(t, VerifyPassword("not-a-hash", "zxcvbnm"))
}

func TestHashPassword_OutOfRangeCost(t *testing.T) {
	hash, err := HashPassword("abc", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
