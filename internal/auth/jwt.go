// Package auth issues and validates the bearer tokens that guard the API.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/NotJorge/tienda-informatica/internal/domain"
	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

const issuer = "tienda-informatica"

// Claims carries the authenticated username and roles inside the token.
type Claims struct {
	Roles []domain.Role `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims carry the given role.
func (c *Claims) HasRole(role domain.Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Manager signs and verifies HS256 tokens with a shared secret.
type Manager struct {
	secret []byte
	expiry time.Duration
	clock  clockwork.Clock
}

func NewManager(secret string, expiry time.Duration, clock clockwork.Clock) *Manager {
	return &Manager{secret: []byte(secret), expiry: expiry, clock: clock}
}

// Issue creates a signed token for the user, expiring after the configured
// lifetime.
func (m *Manager) Issue(user *domain.User) (string, error) {
	now := m.clock.Now()
	claims := Claims{
		Roles: user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning its claims. Any failure
// (bad signature, wrong algorithm, expired, malformed) comes back as an
// unauthorized error.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithLeeway(5*time.Second),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil {
		return nil, apperrors.UnauthorizedError("invalid token").WithField("cause", err.Error())
	}
	if !token.Valid || claims.Subject == "" {
		return nil, apperrors.UnauthorizedError("invalid token")
	}
	return claims, nil
}

// ExtractBearer pulls the token out of an Authorization header value.
func ExtractBearer(header string) (string, error) {
	const prefix = "Bearer "
	if header == "" {
		return "", apperrors.UnauthorizedError("missing authorization header")
	}
	if !strings.HasPrefix(header, prefix) {
		return "", apperrors.UnauthorizedError("authorization header must use the Bearer scheme")
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", apperrors.UnauthorizedError("missing bearer token")
	}
	return token, nil
}
