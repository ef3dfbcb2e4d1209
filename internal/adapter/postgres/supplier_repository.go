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

const supplierColumns = `id, name, contact, address, created_at, updated_at`

var supplierSortColumns = map[string]string{
	"id":      "id",
	"name":    "name",
	"contact": "contact",
	"address": "address",
}

type SupplierRepo struct {
	pool *pgxpool.Pool
}

func NewSupplierRepo(pool *pgxpool.Pool) *SupplierRepo {
	return &SupplierRepo{pool: pool}
}

func scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	var s domain.Supplier
	if err := row.Scan(&s.ID, &s.Name, &s.Contact, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepo) FindAll(ctx context.Context, filter domain.SupplierFilter, p domain.Pageable) ([]domain.Supplier, int64, error) {
	p = p.Normalize()

	var conds []string
	var args []any
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Address != "" {
		args = append(args, "%"+filter.Address+"%")
		conds = append(conds, fmt.Sprintf("address ILIKE $%d", len(args)))
	}
	var where string
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM suppliers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count suppliers: %w", err)
	}

	sortCol, ok := supplierSortColumns[p.SortBy]
	if !ok {
		sortCol = "id"
	}
	query := fmt.Sprintf(`SELECT %s FROM suppliers%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		supplierColumns, where, sortCol, strings.ToUpper(p.Direction), len(args)+1, len(args)+2)
	args = append(args, p.Size, p.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, *supplier)
	}
	return suppliers, total, rows.Err()
}

func (r *SupplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	supplier, err := scanSupplier(r.pool.QueryRow(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier by ID: %w", err)
	}
	return supplier, nil
}

func (r *SupplierRepo) Create(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	created, err := scanSupplier(r.pool.QueryRow(ctx, `
		INSERT INTO suppliers (name, contact, address)
		VALUES ($1, $2, $3)
		RETURNING `+supplierColumns,
		supplier.Name, supplier.Contact, supplier.Address))
	if err != nil {
		return nil, fmt.Errorf("failed to insert supplier: %w", err)
	}
	return created, nil
}

func (r *SupplierRepo) Update(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	updated, err := scanSupplier(r.pool.QueryRow(ctx, `
		UPDATE suppliers
		SET name = $2, contact = $3, address = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+supplierColumns,
		supplier.ID, supplier.Name, supplier.Contact, supplier.Address))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return updated, nil
}

func (r *SupplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}
