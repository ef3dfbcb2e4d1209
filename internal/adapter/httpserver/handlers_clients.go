package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/NotJorge/tienda-informatica/internal/domain"
	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

func (s *Server) handleListClients(c echo.Context) error {
	filter := domain.ClientFilter{Username: c.QueryParam("username")}

	if raw := c.QueryParam("isDeleted"); raw != "" {
		isDeleted, err := strconv.ParseBool(raw)
		if err != nil {
			return apperrors.ValidationError("isDeleted must be a boolean").WithField("field", "isDeleted")
		}
		filter.IsDeleted = &isDeleted
	}

	page, err := s.services.Clients.FindAll(c.Request().Context(), filter, parsePageable(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

func (s *Server) handleGetClient(c echo.Context) error {
	id, err := parseInt64Param(c)
	if err != nil {
		return err
	}

	client, err := s.services.Clients.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

func (s *Server) handleCreateClient(c echo.Context) error {
	var req domain.ClientCreateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	client, err := s.services.Clients.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

func (s *Server) handleUpdateClient(c echo.Context) error {
	id, err := parseInt64Param(c)
	if err != nil {
		return err
	}

	var req domain.ClientUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	client, err := s.services.Clients.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

func (s *Server) handleDeleteClient(c echo.Context) error {
	id, err := parseInt64Param(c)
	if err != nil {
		return err
	}

	if err := s.services.Clients.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleUpdateClientImage(c echo.Context) error {
	id, err := parseInt64Param(c)
	if err != nil {
		return err
	}

	upload, err := openImageUpload(c)
	if err != nil {
		return err
	}
	defer upload.Close()

	client, err := s.services.Clients.UpdateImage(c.Request().Context(), id, upload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}
