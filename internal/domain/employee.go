package domain

import (
	"context"
	"time"

	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

// Employee is a member of the store's staff.
type Employee struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Salary    float64   `json:"salary"`
	Position  string    `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type EmployeeCreateRequest struct {
	Name     string  `json:"name"`
	Salary   float64 `json:"salary"`
	Position string  `json:"position"`
}

func (r EmployeeCreateRequest) Validate() error {
	if r.Name == "" {
		return apperrors.ValidationError("name is required").WithField("field", "name")
	}
	if r.Salary <= 0 {
		return apperrors.ValidationError("salary must be positive").WithField("field", "salary")
	}
	if r.Position == "" {
		return apperrors.ValidationError("position is required").WithField("field", "position")
	}
	return nil
}

type EmployeeUpdateRequest struct {
	Name     *string  `json:"name"`
	Salary   *float64 `json:"salary"`
	Position *string  `json:"position"`
}

func (r EmployeeUpdateRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return apperrors.ValidationError("name cannot be empty").WithField("field", "name")
	}
	if r.Salary != nil && *r.Salary <= 0 {
		return apperrors.ValidationError("salary must be positive").WithField("field", "salary")
	}
	if r.Position != nil && *r.Position == "" {
		return apperrors.ValidationError("position cannot be empty").WithField("field", "position")
	}
	return nil
}

type EmployeeFilter struct {
	Name     string
	Position string
}

type EmployeeRepository interface {
	FindAll(ctx context.Context, filter EmployeeFilter, p Pageable) ([]Employee, int64, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, id int64) error
}
