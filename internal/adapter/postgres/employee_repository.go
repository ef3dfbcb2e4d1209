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

const employeeColumns = `id, name, salary, position, created_at, updated_at`

var employeeSortColumns = map[string]string{
	"id":       "id",
	"name":     "name",
	"salary":   "salary",
	"position": "position",
}

type EmployeeRepo struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepo(pool *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{pool: pool}
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	if err := row.Scan(&e.ID, &e.Name, &e.Salary, &e.Position, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) FindAll(ctx context.Context, filter domain.EmployeeFilter, p domain.Pageable) ([]domain.Employee, int64, error) {
	p = p.Normalize()

	var conds []string
	var args []any
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Position != "" {
		args = append(args, "%"+filter.Position+"%")
		conds = append(conds, fmt.Sprintf("position ILIKE $%d", len(args)))
	}
	var where string
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM employees`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	sortCol, ok := employeeSortColumns[p.SortBy]
	if !ok {
		sortCol = "id"
	}
	query := fmt.Sprintf(`SELECT %s FROM employees%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		employeeColumns, where, sortCol, strings.ToUpper(p.Direction), len(args)+1, len(args)+2)
	args = append(args, p.Size, p.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, *employee)
	}
	return employees, total, rows.Err()
}

func (r *EmployeeRepo) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := scanEmployee(r.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return employee, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	created, err := scanEmployee(r.pool.QueryRow(ctx, `
		INSERT INTO employees (name, salary, position)
		VALUES ($1, $2, $3)
		RETURNING `+employeeColumns,
		employee.Name, employee.Salary, employee.Position))
	if err != nil {
		return nil, fmt.Errorf("failed to insert employee: %w", err)
	}
	return created, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	updated, err := scanEmployee(r.pool.QueryRow(ctx, `
		UPDATE employees
		SET name = $2, salary = $3, position = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+employeeColumns,
		employee.ID, employee.Name, employee.Salary, employee.Position))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return updated, nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}
