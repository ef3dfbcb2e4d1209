package domain

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

// Client is a store customer. Clients are soft-deleted: a delete marks
// IsDeleted instead of removing the row.
type Client struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Image     string    `json:"image"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ClientCreateRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func (r ClientCreateRequest) Validate() error {
	if len(r.Username) < 3 || len(r.Username) > 50 {
		return apperrors.ValidationError("username must be between 3 and 50 characters").WithField("field", "username")
	}
	if r.Name == "" {
		return apperrors.ValidationError("name is required").WithField("field", "name")
	}
	if !strings.Contains(r.Email, "@") {
		return apperrors.ValidationError("email must be a valid address").WithField("field", "email")
	}
	return nil
}

type ClientUpdateRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
}

func (r ClientUpdateRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return apperrors.ValidationError("name cannot be empty").WithField("field", "name")
	}
	if r.Email != nil && !strings.Contains(*r.Email, "@") {
		return apperrors.ValidationError("email must be a valid address").WithField("field", "email")
	}
	return nil
}

// ClientFilter narrows client listings. IsDeleted defaults to "only live
// clients" at the service layer when unset.
type ClientFilter struct {
	Username  string
	IsDeleted *bool
}

type ClientRepository interface {
	FindAll(ctx context.Context, filter ClientFilter, p Pageable) ([]Client, int64, error)
	FindByID(ctx context.Context, id int64) (*Client, error)
	Create(ctx context.Context, client *Client) (*Client, error)
	Update(ctx context.Context, client *Client) (*Client, error)
	// Delete soft-deletes the client.
	Delete(ctx context.Context, id int64) error
}
