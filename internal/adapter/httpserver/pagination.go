package httpserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/NotJorge/tienda-informatica/internal/domain"
)

// parsePageable reads page/size/sortBy/direction query parameters. Garbage
// numbers fall back to the defaults rather than failing the request.
func parsePageable(c echo.Context) domain.Pageable {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	return domain.Pageable{
		Page:      page,
		Size:      size,
		SortBy:    c.QueryParam("sortBy"),
		Direction: c.QueryParam("direction"),
	}.Normalize()
}

// paginationLinks builds an RFC 5988 Link header pointing at the first, last
// and adjacent pages of the listing.
func paginationLinks(requestURL *url.URL, page, size, totalPages int) string {
	var links []string

	add := func(target int, rel string) {
		q := requestURL.Query()
		q.Set("page", strconv.Itoa(target))
		q.Set("size", strconv.Itoa(size))
		u := *requestURL
		u.RawQuery = q.Encode()
		links = append(links, fmt.Sprintf("<%s>; rel=\"%s\"", u.String(), rel))
	}

	if page+1 < totalPages {
		add(page+1, "next")
	}
	if page > 0 {
		add(page-1, "prev")
	}
	if totalPages > 0 {
		add(0, "first")
		add(totalPages-1, "last")
	}

	return strings.Join(links, ", ")
}

// respondPage writes the page envelope plus the Link header.
func respondPage[T any](c echo.Context, page *domain.PageResponse[T]) error {
	if link := paginationLinks(c.Request().URL, page.PageNumber, page.PageSize, page.TotalPages); link != "" {
		c.Response().Header().Set("Link", link)
	}
	return c.JSON(http.StatusOK, page)
}
