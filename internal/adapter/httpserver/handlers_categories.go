package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NotJorge/tienda-informatica/internal/domain"
	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

func (s *Server) handleListCategories(c echo.Context) error {
	filter := domain.CategoryFilter{Name: c.QueryParam("name")}

	page, err := s.services.Categories.FindAll(c.Request().Context(), filter, parsePageable(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

func (s *Server) handleGetCategory(c echo.Context) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	category, err := s.services.Categories.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

func (s *Server) handleCreateCategory(c echo.Context) error {
	var req domain.CategoryCreateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	category, err := s.services.Categories.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(c echo.Context) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	var req domain.CategoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	category, err := s.services.Categories.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(c echo.Context) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	if err := s.services.Categories.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
