package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestNewAccessToken_RoundTrip(t *testing.T) {
	access, err := NewAccessToken(testSecret, 42, 9, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, access.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), access.Exp, 5*time.Second)

	claims, err := ParseAccessToken(testSecret, access.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(9), claims.RoleID)
	assert.Equal(t, "42", claims.Subject)

	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	access, err := NewAccessToken(testSecret, 1, 2, time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", access.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseAccessToken_Expired(t *testing.T) {
	access, err := NewAccessToken(testSecret, 1, 2, -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, access.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseAccessToken_MissingExpiry(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "role_id": 9})
	raw, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, raw)
	assert.Error(t, err)
}

func TestParseAccessToken_RejectsNoneAlgorithm(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":     "1",
		"role_id": 9,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, raw)
	assert.Error(t, err)
}

func TestParseAccessToken_Malformed(t *testing.T) {
	for _, raw := range []string{"", "abc", "a.b.c", strings.Repeat("x", 64)} {
		_, err := ParseAccessToken(testSecret, raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestClaims_UserIDInvalidSubject(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}
	_, err := c.UserID()
	assert.Error(t, err)
}
