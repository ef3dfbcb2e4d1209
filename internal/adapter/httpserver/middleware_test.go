package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotJorge/tienda-informatica/internal/domain"
	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

func TestAsStructuredError_MapsDomainSentinels(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantType   apperrors.ErrorType
		wantStatus int
	}{
		{"product not found", domain.ErrProductNotFound, apperrors.TypeNotFound, http.StatusNotFound},
		{"client not found", domain.ErrClientNotFound, apperrors.TypeNotFound, http.StatusNotFound},
		{"employee not found", domain.ErrEmployeeNotFound, apperrors.TypeNotFound, http.StatusNotFound},
		{"category name taken", domain.ErrCategoryNameTaken, apperrors.TypeConflict, http.StatusConflict},
		{"username taken", domain.ErrUsernameTaken, apperrors.TypeConflict, http.StatusConflict},
		{"invalid credentials", domain.ErrInvalidCredentials, apperrors.TypeUnauthorized, http.StatusUnauthorized},
		{"wrapped sentinel", fmt.Errorf("lookup: %w", domain.ErrCategoryNotFound), apperrors.TypeNotFound, http.StatusNotFound},
		{"unknown error", fmt.Errorf("connection reset"), apperrors.TypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			structured := asStructuredError(tt.err)
			assert.Equal(t, tt.wantType, structured.Type)
			assert.Equal(t, tt.wantStatus, structured.HTTPStatus())
		})
	}
}

func TestAsStructuredError_KeepsStructuredErrors(t *testing.T) {
	original := apperrors.ValidationError("price must not be negative")
	assert.Same(t, original, asStructuredError(original))
}

func TestDeleteClient_NotFoundSurfacesAs404(t *testing.T) {
	clients := &mockClientService{
		deleteFn: func(_ context.Context, id int64) error {
			return domain.ErrClientNotFound
		},
	}
	srv := newTestServer(t, withClients(clients))
	token := issueToken(t, srv, domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/api/clients/123", nil)
	rec := doRequest(srv, authed(req, token))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestCreateCategory_DuplicateNameSurfacesAs409(t *testing.T) {
	categories := &mockCategoryService{
		createFn: func(_ context.Context, req domain.CategoryCreateRequest) (*domain.Category, error) {
			return nil, domain.ErrCategoryNameTaken
		},
	}
	srv := newTestServer(t, withCategories(categories))
	token := issueToken(t, srv, domain.RoleAdmin)

	body := strings.NewReader(`{"name":"PERIFERICOS"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/categories", body)
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(srv, authed(req, token))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "conflict")
}
