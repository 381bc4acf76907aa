package users

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/server/auth"
)

// TokenIssuer mints a bearer token for an identity.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// Service orchestrates signup and login on top of a Repository, a password
// hasher and a token issuer.
type Service struct {
	repo             Repository
	hasher           auth.PasswordHasher
	tokens           TokenIssuer
	unifyLoginErrors bool

	dummyOnce sync.Once
	dummyHash string
}

// NewService builds a Service. With unifyLoginErrors set, an unknown login
// id is reported as common.ErrInvalidCredentials and still costs one
// password verification.
func NewService(repo Repository, hasher auth.PasswordHasher, tokens TokenIssuer, unifyLoginErrors bool) *Service {
	return &Service{
		repo:             repo,
		hasher:           hasher,
		tokens:           tokens,
		unifyLoginErrors: unifyLoginErrors,
	}
}

// Signup validates the input, stores a new user and returns a token for it.
func (s *Service) Signup(ctx context.Context, username, email, password string) (*AuthResult, error) {
	if username == "" || email == "" || password == "" {
		return nil, common.ErrMissingFields
	}

	if !auth.ValidatePassword(password) {
		return nil, common.ErrWeakPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	user, err := s.repo.Create(ctx, &User{Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("%w: error creating user: %w", common.ErrorInternal, err)
	}

	return s.authResult(user)
}

// Login looks the user up by username or email, case-insensitively, checks
// the password and returns a fresh token.
func (s *Service) Login(ctx context.Context, loginID, password string) (*AuthResult, error) {
	if loginID == "" || password == "" {
		return nil, common.ErrMissingFields
	}

	user, err := s.repo.GetUserByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			if s.unifyLoginErrors {
				s.hasher.Verify(password, s.getDummyHash())
				return nil, common.ErrInvalidCredentials
			}
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: error searching user: %w", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return s.authResult(user)
}

func (s *Service) authResult(user *User) (*AuthResult, error) {
	token, err := s.tokens.Issue(auth.Identity{ID: user.ID, Username: user.Username, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

func (s *Service) getDummyHash() string {
	s.dummyOnce.Do(func() {
		seed, err := common.MakeRandHexString(16)
		if err != nil {
			seed = "gophboard-dummy"
		}
		// a failed hash leaves dummyHash empty; Verify then simply returns false
		s.dummyHash, _ = s.hasher.Hash(seed)
	})
	return s.dummyHash
}
