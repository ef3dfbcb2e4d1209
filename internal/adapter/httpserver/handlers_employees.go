package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NotJorge/tienda-informatica/internal/domain"
	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

func (s *Server) handleListEmployees(c echo.Context) error {
	filter := domain.EmployeeFilter{
		Name:     c.QueryParam("name"),
		Position: c.QueryParam("position"),
	}

	page, err := s.services.Employees.FindAll(c.Request().Context(), filter, parsePageable(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

func (s *Server) handleGetEmployee(c echo.Context) error {
	id, err := parseInt64Param(c)
	if err != nil {
		return err
	}

	employee, err := s.services.Employees.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

func (s *Server) handleCreateEmployee(c echo.Context) error {
	var req domain.EmployeeCreateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	employee, err := s.services.Employees.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, employee)
}

func (s *Server) handleUpdateEmployee(c echo.Context) error {
	id, err := parseInt64Param(c)
	if err != nil {
		return err
	}

	var req domain.EmployeeUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	employee, err := s.services.Employees.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

func (s *Server) handleDeleteEmployee(c echo.Context) error {
	id, err := parseInt64Param(c)
	if err != nil {
		return err
	}

	if err := s.services.Employees.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
