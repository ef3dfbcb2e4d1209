package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

// Supplier is a company the store buys stock from.
type Supplier struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Contact   int       `json:"contact"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SupplierCreateRequest struct {
	Name    string `json:"name"`
	Contact int    `json:"contact"`
	Address string `json:"address"`
}

func (r SupplierCreateRequest) Validate() error {
	if len(r.Name) < 3 || len(r.Name) > 50 {
		return apperrors.ValidationError("name must be between 3 and 50 characters").WithField("field", "name")
	}
	if r.Contact < 0 {
		return apperrors.ValidationError("contact cannot be negative").WithField("field", "contact")
	}
	if len(r.Address) < 2 || len(r.Address) > 50 {
		return apperrors.ValidationError("address must be between 2 and 50 characters").WithField("field", "address")
	}
	return nil
}

type SupplierUpdateRequest struct {
	Name    *string `json:"name"`
	Contact *int    `json:"contact"`
	Address *string `json:"address"`
}

func (r SupplierUpdateRequest) Validate() error {
	if r.Name != nil && (len(*r.Name) < 3 || len(*r.Name) > 50) {
		return apperrors.ValidationError("name must be between 3 and 50 characters").WithField("field", "name")
	}
	if r.Contact != nil && *r.Contact < 0 {
		return apperrors.ValidationError("contact cannot be negative").WithField("field", "contact")
	}
	if r.Address != nil && (len(*r.Address) < 2 || len(*r.Address) > 50) {
		return apperrors.ValidationError("address must be between 2 and 50 characters").WithField("field", "address")
	}
	return nil
}

type SupplierFilter struct {
	Name    string
	Address string
}

type SupplierRepository interface {
	FindAll(ctx context.Context, filter SupplierFilter, p Pageable) ([]Supplier, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	Create(ctx context.Context, supplier *Supplier) (*Supplier, error)
	Update(ctx context.Context, supplier *Supplier) (*Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
