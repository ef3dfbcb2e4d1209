package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"validation", ValidationError("bad input"), http.StatusBadRequest},
		{"not found", NotFoundError("missing"), http.StatusNotFound},
		{"conflict", ConflictError("duplicate"), http.StatusConflict},
		{"unauthorized", UnauthorizedError("no token"), http.StatusUnauthorized},
		{"forbidden", ForbiddenError("no role"), http.StatusForbidden},
		{"internal", InternalError("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestErrorString(t *testing.T) {
	err := NotFoundError("product not found")
	assert.Equal(t, "not_found: product not found", err.Error())

	cause := errors.New("connection refused")
	wrapped := InternalError("query failed", cause)
	assert.Equal(t, "internal: query failed: connection refused", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestWithField(t *testing.T) {
	err := ValidationError("price must be positive").
		WithField("price", -3.5).
		WithField("field", "price")

	assert.Equal(t, -3.5, err.Context["price"])
	assert.Equal(t, "price", err.Context["field"])

	resp := err.ToResponse()
	assert.Equal(t, "price must be positive", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
}

func TestAsStructuredError(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))

	structured := NotFoundError("gone")
	assert.Same(t, structured, AsStructuredError(structured))

	wrapped := fmt.Errorf("handler: %w", structured)
	assert.Same(t, structured, AsStructuredError(wrapped))

	plain := errors.New("something broke")
	got := AsStructuredError(plain)
	require.NotNil(t, got)
	assert.Equal(t, TypeInternal, got.Type)
	assert.ErrorIs(t, got, plain)
}
