package auth

import (
	"fmt"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost gives hashing times in the tens of milliseconds.
const DefaultBcryptCost = 10

// PasswordHasher hashes passwords and checks candidates against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, clamped to bcrypt's range.
// Zero selects DefaultBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	switch {
	case cost == 0:
		cost = DefaultBcryptCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the configured bcrypt cost.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash returns a salted bcrypt hash; hashing the same password twice yields
// different strings.
func (h *BcryptHasher) Hash(password string) (string, error) {
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	hash, err := bcrypt.GenerateFromPassword(pw, h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash is a
// mismatch, never an error.
func (h *BcryptHasher) Verify(password, hash string) bool {
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	return bcrypt.CompareHashAndPassword([]byte(hash), pw) == nil
}
