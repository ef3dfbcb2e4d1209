package domain

import "strings"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pageable describes the slice of a collection a caller wants: zero-based
// page number, page size, and sort order.
type Pageable struct {
	Page      int
	Size      int
	SortBy    string
	Direction string
}

// Normalize clamps the pageable into valid bounds and canonicalizes the sort
// direction to "asc" or "desc".
func (p Pageable) Normalize() Pageable {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.SortBy == "" {
		p.SortBy = "id"
	}
	if strings.EqualFold(p.Direction, "desc") {
		p.Direction = "desc"
	} else {
		p.Direction = "asc"
	}
	return p
}

// Offset returns the row offset for this page.
func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// PageResponse is the pagination envelope returned by list endpoints.
type PageResponse[T any] struct {
	Content           []T    `json:"content"`
	TotalPages        int    `json:"totalPages"`
	TotalElements     int64  `json:"totalElements"`
	PageSize          int    `json:"pageSize"`
	PageNumber        int    `json:"pageNumber"`
	TotalPageElements int    `json:"totalPageElements"`
	Empty             bool   `json:"empty"`
	First             bool   `json:"first"`
	Last              bool   `json:"last"`
	SortBy            string `json:"sortBy"`
	Direction         string `json:"direction"`
}

// NewPageResponse assembles the envelope from one page of content and the
// total number of matching elements.
func NewPageResponse[T any](content []T, total int64, p Pageable) PageResponse[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if p.Size > 0 {
		totalPages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}

	return PageResponse[T]{
		Content:           content,
		TotalPages:        totalPages,
		TotalElements:     total,
		PageSize:          p.Size,
		PageNumber:        p.Page,
		TotalPageElements: len(content),
		Empty:             len(content) == 0,
		First:             p.Page == 0,
		Last:              totalPages == 0 || p.Page >= totalPages-1,
		SortBy:            p.SortBy,
		Direction:         p.Direction,
	}
}
