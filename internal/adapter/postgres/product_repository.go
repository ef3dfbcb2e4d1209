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

// productColumns must match the Scan order in scanProduct.
const productColumns = `id, name, weight, price, img, stock, description, category_id, created_at, updated_at`

var productSortColumns = map[string]string{
	"id":     "id",
	"name":   "name",
	"weight": "weight",
	"price":  "price",
	"stock":  "stock",
}

// ProductRepo implements domain.ProductRepository backed by PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Weight, &p.Price, &p.Image, &p.Stock,
		&p.Description, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func productWhere(filter domain.ProductFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *ProductRepo) FindAll(ctx context.Context, filter domain.ProductFilter, p domain.Pageable) ([]domain.Product, int64, error) {
	p = p.Normalize()
	where, args := productWhere(filter)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	sortCol, ok := productSortColumns[p.SortBy]
	if !ok {
		sortCol = "id"
	}
	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		productColumns, where, sortCol, strings.ToUpper(p.Direction), len(args)+1, len(args)+2)
	args = append(args, p.Size, p.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	return products, total, rows.Err()
}

func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return product, nil
}

func (r *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	created, err := scanProduct(r.pool.QueryRow(ctx, `
		INSERT INTO products (name, weight, price, img, stock, description, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns,
		product.Name, product.Weight, product.Price, product.Image,
		product.Stock, product.Description, product.CategoryID,
	))
	if isForeignKeyViolation(err) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	return created, nil
}

func (r *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	updated, err := scanProduct(r.pool.QueryRow(ctx, `
		UPDATE products
		SET name = $2, weight = $3, price = $4, img = $5, stock = $6,
		    description = $7, category_id = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		product.ID, product.Name, product.Weight, product.Price, product.Image,
		product.Stock, product.Description, product.CategoryID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if isForeignKeyViolation(err) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return updated, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
