package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried by every access token. RoleID decides
// which guarded endpoints the bearer may call; Subject holds the user id
// as a decimal string.
type Claims struct {
	RoleID int64 `json:"role_id"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a numeric user id.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are stateless: nothing about them is stored server-side.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// errUnexpectedSigningMethod rejects tokens signed with anything but HMAC,
// including the "none" algorithm.
var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// NewAccessToken builds and signs an HS256 JWT for a user. The token
// carries sub (user id), role_id, iat and exp.
func NewAccessToken(secret string, userID, roleID int64, ttl time.Duration) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := Claims{
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of raw and returns its
// claims. Any verification failure is returned as-is so callers can decide
// how to surface it.
func ParseAccessToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
