package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NotJorge/tienda-informatica/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	var roles []string
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, last_name, username, email, password_hash, roles, is_deleted, created_at, updated_at
		FROM users
		WHERE username = $1 AND NOT is_deleted`,
		username,
	).Scan(&u.ID, &u.Name, &u.LastName, &u.Username, &u.Email, &u.PasswordHash, &roles, &u.IsDeleted, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	u.Roles = make([]domain.Role, 0, len(roles))
	for _, role := range roles {
		u.Roles = append(u.Roles, domain.Role(role))
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, last_name, username, email, password_hash, roles)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		user.Name, user.LastName, user.Username, user.Email, user.PasswordHash, roles,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, domain.ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
