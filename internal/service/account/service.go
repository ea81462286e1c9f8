package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"pizza-storefront/internal/auth"
	"pizza-storefront/internal/domain"
	userrepo "pizza-storefront/internal/repository/user"
)

// ErrInvalidInput is returned for blank usernames or short passwords.
var ErrInvalidInput = errors.New("invalid input")

// Service handles registration and login.
type Service struct {
	repo        userrepo.Repository
	tokens      *auth.Issuer
	passwordMin int
	logger      *log.Logger
}

func New(repo userrepo.Repository, tokens *auth.Issuer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, tokens: tokens, passwordMin: 6, logger: logger}
}

// Register creates an account with the user role.
func (s *Service) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.create(ctx, username, password, domain.RoleUser)
}

// Login verifies credentials and returns the account with a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Printf("account: login username=%s rejected", u.Username)
		return nil, "", domain.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(*u)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// EnsureAdmin creates the admin account unless the username is already taken.
// It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	_, err = s.create(ctx, username, password, domain.RoleAdmin)
	if errors.Is(err, domain.ErrDuplicateUsername) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service) create(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username required", ErrInvalidInput)
	}
	if len(password) < s.passwordMin {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, s.passwordMin)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.User{Username: username, PasswordHash: string(hashed), Role: role})
}
