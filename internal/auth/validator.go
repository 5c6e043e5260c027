// Package auth verifies bearer tokens and evaluates role policies over
// their claims. Both pieces are stateless; a single TokenValidator is
// shared by every request.
package auth

import (
	"fmt"
	"time"

	"github.com/iliyamo/inventory-service/internal/apperr"
	"github.com/iliyamo/inventory-service/internal/utils"
)

// TokenValidator issues and verifies HS256 access tokens.
type TokenValidator struct {
	secret string
	ttl    time.Duration
}

// NewTokenValidator returns a validator signing with secret. Issued tokens
// live for ttl.
func NewTokenValidator(secret string, ttl time.Duration) *TokenValidator {
	return &TokenValidator{secret: secret, ttl: ttl}
}

// Issue signs a new access token for the given user.
func (v *TokenValidator) Issue(userID, roleID int64) (utils.AccessToken, error) {
	return utils.NewAccessToken(v.secret, userID, roleID, v.ttl)
}

// Decode verifies token and returns its claims. Every verification failure
// (bad signature, wrong algorithm, malformed, expired) is reported as
// apperr.ErrInvalidToken.
func (v *TokenValidator) Decode(token string) (*utils.Claims, error) {
	claims, err := utils.ParseAccessToken(v.secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidToken, err)
	}
	return claims, nil
}

// Authorize decodes token and checks it against p.
func (v *TokenValidator) Authorize(token string, p Policy) (*utils.Claims, error) {
	claims, err := v.Decode(token)
	if err != nil {
		return nil, err
	}
	if !p.Allows(claims) {
		return nil, apperr.ErrUnauthorizedUser
	}
	return claims, nil
}

// ValidateRoleID fails with apperr.ErrUnauthorizedUser when the token's
// role differs from expectedRoleID.
func (v *TokenValidator) ValidateRoleID(token string, expectedRoleID int64) error {
	_, err := v.Authorize(token, Exact(expectedRoleID))
	return err
}

// ValidateEmployeeOrMaster fails with apperr.ErrUnauthorizedUser when the
// token's role is neither employee nor master.
func (v *TokenValidator) ValidateEmployeeOrMaster(token string) error {
	_, err := v.Authorize(token, EmployeeOrMaster)
	return err
}
