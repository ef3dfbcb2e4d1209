package httpserver

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

// openImageUpload pulls the "file" part out of a multipart request and checks
// its declared content type. The storage layer re-validates by decoding.
func openImageUpload(c echo.Context) (multipart.File, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, apperrors.ValidationError("multipart field 'file' is required").WithField("field", "file")
	}

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.ValidationError("uploaded file must be an image").
			WithField("field", "file").
			WithField("content_type", contentType)
	}

	upload, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.InternalError("failed to open upload", err)
	}
	return upload, nil
}

func parseInt64Param(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError("id must be an integer").WithField("field", "id")
	}
	return id, nil
}
