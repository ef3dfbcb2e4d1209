package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/NotJorge/tienda-informatica/internal/domain"
	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

func (s *Server) handleListProducts(c echo.Context) error {
	filter := domain.ProductFilter{Name: c.QueryParam("name")}

	if raw := c.QueryParam("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return apperrors.ValidationError("maxPrice must be a number").WithField("field", "maxPrice")
		}
		filter.MaxPrice = &maxPrice
	}
	if raw := c.QueryParam("categoryId"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return apperrors.ValidationError("categoryId must be a valid UUID").WithField("field", "categoryId")
		}
		filter.CategoryID = &categoryID
	}

	page, err := s.services.Products.FindAll(c.Request().Context(), filter, parsePageable(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

func (s *Server) handleGetProduct(c echo.Context) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	product, err := s.services.Products.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (s *Server) handleCreateProduct(c echo.Context) error {
	var req domain.ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	product, err := s.services.Products.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

func (s *Server) handleUpdateProduct(c echo.Context) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	var req domain.ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	product, err := s.services.Products.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(c echo.Context) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	if err := s.services.Products.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleUpdateProductImage(c echo.Context) error {
	id, err := parseUUIDParam(c)
	if err != nil {
		return err
	}

	upload, err := openImageUpload(c)
	if err != nil {
		return err
	}
	defer upload.Close()

	product, err := s.services.Products.UpdateImage(c.Request().Context(), id, upload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func parseUUIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("id must be a valid UUID").WithField("field", "id")
	}
	return id, nil
}
