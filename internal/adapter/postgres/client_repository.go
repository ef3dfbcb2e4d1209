package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NotJorge/tienda-informatica/internal/domain"
)

const clientColumns = `id, username, name, address, email, phone, image, is_deleted, created_at, updated_at`

var clientSortColumns = map[string]string{
	"id":       "id",
	"username": "username",
	"name":     "name",
	"email":    "email",
}

type ClientRepo struct {
	pool *pgxpool.Pool
}

func NewClientRepo(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID, &c.Username, &c.Name, &c.Address, &c.Email, &c.Phone,
		&c.Image, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) FindAll(ctx context.Context, filter domain.ClientFilter, p domain.Pageable) ([]domain.Client, int64, error) {
	p = p.Normalize()

	var conds []string
	var args []any
	if filter.Username != "" {
		args = append(args, "%"+filter.Username+"%")
		conds = append(conds, fmt.Sprintf("username ILIKE $%d", len(args)))
	}
	if filter.IsDeleted != nil {
		args = append(args, *filter.IsDeleted)
		conds = append(conds, fmt.Sprintf("is_deleted = $%d", len(args)))
	}
	var where string
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM clients`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	sortCol, ok := clientSortColumns[p.SortBy]
	if !ok {
		sortCol = "id"
	}
	query := fmt.Sprintf(`SELECT %s FROM clients%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		clientColumns, where, sortCol, strings.ToUpper(p.Direction), len(args)+1, len(args)+2)
	args = append(args, p.Size, p.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *client)
	}
	return clients, total, rows.Err()
}

func (r *ClientRepo) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := scanClient(r.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1 AND NOT is_deleted`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

func (r *ClientRepo) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	created, err := scanClient(r.pool.QueryRow(ctx, `
		INSERT INTO clients (username, name, address, email, phone, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+clientColumns,
		client.Username, client.Name, client.Address, client.Email, client.Phone, client.Image))
	if isUniqueViolation(err) {
		return nil, domain.ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert client: %w", err)
	}
	return created, nil
}

func (r *ClientRepo) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	updated, err := scanClient(r.pool.QueryRow(ctx, `
		UPDATE clients
		SET name = $2, address = $3, email = $4, phone = $5, image = $6, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
		RETURNING `+clientColumns,
		client.ID, client.Name, client.Address, client.Email, client.Phone, client.Image))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return updated, nil
}

// Delete soft-deletes the client; the row stays for audit and listing with
// isDeleted=true.
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE clients SET is_deleted = true, updated_at = now() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
