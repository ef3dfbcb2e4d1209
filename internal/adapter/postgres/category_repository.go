package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NotJorge/tienda-informatica/internal/domain"
)

const categoryColumns = `id, name, created_at, updated_at`

var categorySortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) FindAll(ctx context.Context, filter domain.CategoryFilter, p domain.Pageable) ([]domain.Category, int64, error) {
	p = p.Normalize()

	var where string
	var args []any
	if filter.Name != "" {
		where = " WHERE name ILIKE $1"
		args = append(args, "%"+filter.Name+"%")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM categories`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	sortCol, ok := categorySortColumns[p.SortBy]
	if !ok {
		sortCol = "id"
	}
	query := fmt.Sprintf(`SELECT %s FROM categories%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		categoryColumns, where, sortCol, strings.ToUpper(p.Direction), len(args)+1, len(args)+2)
	args = append(args, p.Size, p.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *category)
	}
	return categories, total, rows.Err()
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := scanCategory(r.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by ID: %w", err)
	}
	return category, nil
}

func (r *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	created, err := scanCategory(r.pool.QueryRow(ctx, `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING `+categoryColumns, category.Name))
	if isUniqueViolation(err) {
		return nil, domain.ErrCategoryNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	return created, nil
}

func (r *CategoryRepo) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	updated, err := scanCategory(r.pool.QueryRow(ctx, `
		UPDATE categories
		SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+categoryColumns, category.ID, category.Name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if isUniqueViolation(err) {
		return nil, domain.ErrCategoryNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return updated, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("category still referenced by products: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
