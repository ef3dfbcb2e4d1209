package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

// Product is a catalog item belonging to one category.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Weight      float64   `json:"weight"`
	Price       float64   `json:"price"`
	Image       string    `json:"img"`
	Stock       int       `json:"stock"`
	Description string    `json:"description"`
	CategoryID  uuid.UUID `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductCreateRequest is the payload for creating a product.
type ProductCreateRequest struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
	CategoryID  string  `json:"categoryId"`
}

// Validate checks the request and reports every offending field.
func (r ProductCreateRequest) Validate() error {
	if len(r.Name) < 3 || len(r.Name) > 50 {
		return apperrors.ValidationError("name must be between 3 and 50 characters").WithField("field", "name")
	}
	if r.Price < 0 {
		return apperrors.ValidationError("price cannot be negative").WithField("field", "price")
	}
	if r.Weight < 0 {
		return apperrors.ValidationError("weight cannot be negative").WithField("field", "weight")
	}
	if r.Stock < 0 {
		return apperrors.ValidationError("stock cannot be negative").WithField("field", "stock")
	}
	if _, err := uuid.Parse(r.CategoryID); err != nil {
		return apperrors.ValidationError("categoryId must be a valid UUID").WithField("field", "categoryId")
	}
	return nil
}

// ProductUpdateRequest is the payload for updating a product. Nil fields are
// left unchanged.
type ProductUpdateRequest struct {
	Name        *string  `json:"name"`
	Weight      *float64 `json:"weight"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Description *string  `json:"description"`
	CategoryID  *string  `json:"categoryId"`
}

func (r ProductUpdateRequest) Validate() error {
	if r.Name != nil && (len(*r.Name) < 3 || len(*r.Name) > 50) {
		return apperrors.ValidationError("name must be between 3 and 50 characters").WithField("field", "name")
	}
	if r.Price != nil && *r.Price < 0 {
		return apperrors.ValidationError("price cannot be negative").WithField("field", "price")
	}
	if r.Weight != nil && *r.Weight < 0 {
		return apperrors.ValidationError("weight cannot be negative").WithField("field", "weight")
	}
	if r.Stock != nil && *r.Stock < 0 {
		return apperrors.ValidationError("stock cannot be negative").WithField("field", "stock")
	}
	if r.CategoryID != nil {
		if _, err := uuid.Parse(*r.CategoryID); err != nil {
			return apperrors.ValidationError("categoryId must be a valid UUID").WithField("field", "categoryId")
		}
	}
	return nil
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Name       string
	MaxPrice   *float64
	CategoryID *uuid.UUID
}

// ProductRepository is the persistence port for products.
type ProductRepository interface {
	FindAll(ctx context.Context, filter ProductFilter, p Pageable) ([]Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, product *Product) (*Product, error)
	Update(ctx context.Context, product *Product) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
