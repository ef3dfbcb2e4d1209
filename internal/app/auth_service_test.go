package app

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/NotJorge/tienda-informatica/internal/auth"
	"github.com/NotJorge/tienda-informatica/internal/domain"
	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

func newAuthService(t *testing.T, users *mockUserRepo) (*AuthService, *auth.Manager) {
	t.Helper()
	manager := auth.NewManager("0123456789abcdef0123456789abcdef", time.Hour, clockwork.NewFakeClock())
	return NewAuthService(users, manager), manager
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login_Succeeds(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			return &domain.User{
				ID:           1,
				Username:     username,
				PasswordHash: hashPassword(t, "secret"),
				Roles:        []domain.Role{domain.RoleAdmin},
			}, nil
		},
	}
	svc, manager := newAuthService(t, users)

	token, err := svc.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.True(t, claims.HasRole(domain.RoleAdmin))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			return &domain.User{Username: username, PasswordHash: hashPassword(t, "secret")}, nil
		},
	}
	svc, _ := newAuthService(t, users)

	_, err := svc.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeUnauthorized, apperrors.AsStructuredError(err).Type)
}

func TestAuthService_Login_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t, &mockUserRepo{})

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	require.Error(t, err)

	structured := apperrors.AsStructuredError(err)
	assert.Equal(t, apperrors.TypeUnauthorized, structured.Type)
	assert.Equal(t, "invalid credentials", structured.Message)
}

func TestAuthService_EnsureAdminUser_CreatesWhenMissing(t *testing.T) {
	var created *domain.User
	users := &mockUserRepo{
		createFn: func(_ context.Context, user *domain.User) (*domain.User, error) {
			created = user
			user.ID = 1
			return user, nil
		},
	}
	svc, _ := newAuthService(t, users)

	require.NoError(t, svc.EnsureAdminUser(context.Background(), "admin", "admin1234"))

	require.NotNil(t, created)
	assert.Equal(t, "admin", created.Username)
	assert.True(t, created.HasRole(domain.RoleAdmin))
	assert.True(t, created.HasRole(domain.RoleUser))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("admin1234")))
}

func TestAuthService_EnsureAdminUser_LeavesExistingAccountAlone(t *testing.T) {
	users := &mockUserRepo{
		findByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: username, PasswordHash: hashPassword(t, "original")}, nil
		},
		createFn: func(_ context.Context, user *domain.User) (*domain.User, error) {
			t.Fatal("existing admin must not be recreated")
			return nil, nil
		},
	}
	svc, _ := newAuthService(t, users)

	require.NoError(t, svc.EnsureAdminUser(context.Background(), "admin", "rotated"))
}

func TestAuthService_EnsureAdminUser_ToleratesConcurrentBootstrap(t *testing.T) {
	users := &mockUserRepo{
		createFn: func(_ context.Context, user *domain.User) (*domain.User, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	svc, _ := newAuthService(t, users)

	require.NoError(t, svc.EnsureAdminUser(context.Background(), "admin", "admin1234"))
}

func TestAuthService_BootstrappedAdminCanLogin(t *testing.T) {
	var stored *domain.User
	users := &mockUserRepo{
		findByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			if stored == nil {
				return nil, domain.ErrUserNotFound
			}
			return stored, nil
		},
		createFn: func(_ context.Context, user *domain.User) (*domain.User, error) {
			user.ID = 1
			stored = user
			return user, nil
		},
	}
	svc, manager := newAuthService(t, users)

	require.NoError(t, svc.EnsureAdminUser(context.Background(), "admin", "admin1234"))

	token, err := svc.Login(context.Background(), "admin", "admin1234")
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.True(t, claims.HasRole(domain.RoleAdmin))
}
