package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/NotJorge/tienda-informatica/internal/auth"
	"github.com/NotJorge/tienda-informatica/internal/domain"
	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

// AuthService authenticates back-office users and hands out bearer tokens.
type AuthService struct {
	users  domain.UserRepository
	tokens *auth.Manager
}

func NewAuthService(users domain.UserRepository, tokens *auth.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login verifies the credentials and returns a signed token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", apperrors.UnauthorizedError("invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.UnauthorizedError("invalid credentials")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", apperrors.InternalError("failed to issue token", err)
	}
	return token, nil
}

// EnsureAdminUser creates the bootstrap administrator account if no user
// with the given username exists yet. An existing account is left untouched,
// so rotating the configured password does not overwrite a live deployment.
func (s *AuthService) EnsureAdminUser(ctx context.Context, username, password string) error {
	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = s.users.Create(ctx, &domain.User{
		Name:         "Admin",
		Username:     username,
		PasswordHash: string(hash),
		Roles:        []domain.Role{domain.RoleAdmin, domain.RoleUser},
	})
	if errors.Is(err, domain.ErrUsernameTaken) {
		// Another instance won the race.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	slog.Info("Bootstrap admin user created", "username", username)
	return nil
}
