package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

// Category groups products. Names are unique, case-insensitively.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CategoryCreateRequest struct {
	Name string `json:"name"`
}

func (r CategoryCreateRequest) Validate() error {
	if len(r.Name) < 3 || len(r.Name) > 50 {
		return apperrors.ValidationError("name must be between 3 and 50 characters").WithField("field", "name")
	}
	return nil
}

type CategoryUpdateRequest struct {
	Name *string `json:"name"`
}

func (r CategoryUpdateRequest) Validate() error {
	if r.Name != nil && (len(*r.Name) < 3 || len(*r.Name) > 50) {
		return apperrors.ValidationError("name must be between 3 and 50 characters").WithField("field", "name")
	}
	return nil
}

type CategoryFilter struct {
	Name string
}

type CategoryRepository interface {
	FindAll(ctx context.Context, filter CategoryFilter, p Pageable) ([]Category, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	Create(ctx context.Context, category *Category) (*Category, error)
	Update(ctx context.Context, category *Category) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
