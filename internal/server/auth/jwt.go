// Package auth holds the credential and token primitives of the server:
// the password strength policy, the bcrypt password hasher and the HS256
// token manager, plus helpers to carry verified claims in a context.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is how long an issued token stays valid.
const DefaultTokenValidity = 7 * 24 * time.Hour

// Identity is the user data embedded into a token.
type Identity struct {
	ID       int64
	Username string
	Email    string
}

// Claims is the token payload: the identity plus the registered exp/iat
// claims. It is returned as-is by GET /api/me.
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Identity returns the identity part of the claims.
func (c *Claims) Identity() Identity {
	return Identity{ID: c.UserID, Username: c.Username, Email: c.Email}
}

// TokenManager issues and verifies signed bearer tokens. It holds only
// immutable configuration and is safe for concurrent use.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenManager returns a TokenManager signing with secret. A non-positive
// validity falls back to DefaultTokenValidity.
func NewTokenManager(secret []byte, validity time.Duration) *TokenManager {
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	return &TokenManager{secret: secret, validity: validity, now: time.Now}
}

// Issue signs a token for id expiring validity after now.
func (m *TokenManager) Issue(id Identity) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   id.ID,
		Username: id.Username,
		Email:    id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
	})

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature, algorithm and expiry of tokenString. Every failure
// wraps common.ErrInvalidToken; the cause is kept for logging only.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: expired", common.ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
