// Package service provides the business logic for credentials and documents,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/docstore/internal/models"
)

const (
	// MinPasswordLength is the shortest password accepted at signup.
	MinPasswordLength = 4
	// MaxPasswordLength is the longest password bcrypt can hash.
	MaxPasswordLength = 72
)

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	// Load returns the full username to password hash mapping.
	Load(ctx context.Context) (map[string]string, error)
	// PasswordHash returns the stored hash for login and whether it exists.
	PasswordHash(ctx context.Context, login string) (string, bool, error)
	// RegisterUser persists a new user. Returns models.ErrUsernameTaken
	// if login is already present.
	RegisterUser(ctx context.Context, login, passwordHash string) error
}

// AuthService validates logins and registers new users.
type AuthService struct {
	// repo performs the data-layer operations.
	repo AuthRepository
	// cost is the bcrypt work factor for new hashes.
	cost int
	log  *zap.Logger

	// mu covers the check-then-insert of Register.
	mu sync.Mutex
}

// NewAuthService constructs an AuthService using the provided repository.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewAuthService(repo AuthRepository, cost int, log *zap.Logger) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{repo: repo, cost: cost, log: log}
}

// Load returns every known username with its password hash.
func (s *AuthService) Load(ctx context.Context) (map[string]string, error) {
	return s.repo.Load(ctx)
}

// Validate reports whether password matches the stored hash of username.
// Unknown users are not an error.
func (s *AuthService) Validate(ctx context.Context, username, password string) (bool, error) {
	hash, ok, err := s.repo.PasswordHash(ctx, username)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		s.log.Warn("stored password hash is unusable", zap.String("user", username), zap.Error(err))
		return false, nil
	}
}

// Register creates username with a fresh bcrypt hash of password.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" {
		return models.ErrInvalidUsername
	}
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return models.ErrInvalidPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists, err := s.repo.PasswordHash(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return models.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.RegisterUser(ctx, username, string(hash)); err != nil {
		return err
	}

	s.log.Info("user registered", zap.String("user", username))
	return nil
}
