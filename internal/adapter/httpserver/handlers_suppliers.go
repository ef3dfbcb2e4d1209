package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NotJorge/tienda-informatica/internal/domain"
	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

func (s *Server) handleListSuppliers(c echo.Context) error {
	filter := domain.SupplierFilter{
		Name:    c.QueryParam("name"),
		Address: c.QueryParam("address"),
	}

	page, err := s.services.Suppliers.FindAll(c.Request().Context(), filter, parsePageable(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

func (s *Server) handleGetSupplier(c echo.Context) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	supplier, err := s.services.Suppliers.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, supplier)
}

func (s *Server) handleCreateSupplier(c echo.Context) error {
	var req domain.SupplierCreateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	supplier, err := s.services.Suppliers.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, supplier)
}

func (s *Server) handleUpdateSupplier(c echo.Context) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	var req domain.SupplierUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	supplier, err := s.services.Suppliers.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, supplier)
}

func (s *Server) handleDeleteSupplier(c echo.Context) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	if err := s.services.Suppliers.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
