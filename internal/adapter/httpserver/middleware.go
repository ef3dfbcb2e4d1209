package httpserver

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/NotJorge/tienda-informatica/internal/adapter/metrics"
	"github.com/NotJorge/tienda-informatica/internal/auth"
	"github.com/NotJorge/tienda-informatica/internal/platform/correlation"
	"github.com/NotJorge/tienda-informatica/internal/domain"
	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

const claimsContextKey = "claims"

// correlationMiddleware tags each request context with a short random ID that
// the logging handler attaches to every log line.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := correlation.WithID(c.Request().Context(), correlation.NewID())
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

var (
	readerRole = domain.RoleUser
	writerRole = domain.RoleAdmin
)

var notFoundSentinels = []error{
	domain.ErrProductNotFound,
	domain.ErrCategoryNotFound,
	domain.ErrSupplierNotFound,
	domain.ErrClientNotFound,
	domain.ErrEmployeeNotFound,
	domain.ErrUserNotFound,
}

var conflictSentinels = []error{
	domain.ErrCategoryNameTaken,
	domain.ErrUsernameTaken,
}

// asStructuredError translates repository sentinels into the structured
// taxonomy before falling back to the generic internal wrapping. Without the
// translation a missing row would surface as a 500.
func asStructuredError(err error) *apperrors.Error {
	var structuredErr *apperrors.Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			return apperrors.NotFoundError(sentinel.Error())
		}
	}
	for _, sentinel := range conflictSentinels {
		if errors.Is(err, sentinel) {
			return apperrors.ConflictError(sentinel.Error())
		}
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return apperrors.UnauthorizedError("invalid credentials")
	}

	return apperrors.AsStructuredError(err)
}

// ErrorHandlingMiddleware converts structured errors into JSON responses with
// the matching status code. echo's own HTTP errors pass through untouched.
// httpMetrics may be nil.
func ErrorHandlingMiddleware(httpMetrics *metrics.HTTPMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			structuredErr := asStructuredError(err)
			logError(c, structuredErr)
			if httpMetrics != nil {
				httpMetrics.ErrorsTotal.WithLabelValues(string(structuredErr.Type)).Inc()
			}

			if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
				return fmt.Errorf("failed to write error response: %w", err)
			}
			return nil
		}
	}
}

func logError(c echo.Context, err *apperrors.Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	if claims := claimsFrom(c); claims != nil {
		attrs = append(attrs, "username", claims.Subject)
	}

	switch err.Type {
	case apperrors.TypeValidation:
		slog.Info("Validation error", attrs...)
	case apperrors.TypeNotFound:
		slog.Info("Not found", attrs...)
	case apperrors.TypeUnauthorized, apperrors.TypeForbidden:
		slog.Info("Access denied", attrs...)
	case apperrors.TypeConflict:
		slog.Warn("Conflict", attrs...)
	case apperrors.TypeInternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.Error("Internal error", attrs...)
	default:
		slog.Error("Unknown error type", attrs...)
	}
}

// authMiddleware validates the bearer token and stores its claims on the
// request context.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := auth.ExtractBearer(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return err
		}

		claims, err := s.tokens.Validate(token)
		if err != nil {
			return err
		}

		c.Set(claimsContextKey, claims)
		return next(c)
	}
}

// requireRoleMiddleware rejects authenticated requests whose token lacks the
// given role.
func (s *Server) requireRoleMiddleware(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := claimsFrom(c)
			if claims == nil {
				return apperrors.UnauthorizedError("missing credentials")
			}
			if !claims.HasRole(role) {
				return apperrors.ForbiddenError("insufficient permissions").WithField("required_role", string(role))
			}
			return next(c)
		}
	}
}

func claimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsContextKey).(*auth.Claims)
	return claims
}
