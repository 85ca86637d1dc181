package helpers

import (
	"net/http"
	"strconv"

	"giftregistry/internal/domain"
)

// Pagination defaults and the hard page-size cap.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size from the query string. Values that
// are missing, malformed, or out of range fall back to the defaults; page_size
// is clamped to MaxPageSize.
func ParsePagination(r *http.Request) domain.PaginationParams {
	return domain.PaginationParams{
		Page:     intQuery(r, "page", DefaultPage, 0),
		PageSize: intQuery(r, "page_size", DefaultPageSize, MaxPageSize),
	}
}

func intQuery(r *http.Request, name string, def, max int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return def
	}
	if max > 0 && v > max {
		return max
	}
	return v
}

// PaginationMeta accompanies every paginated list response.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta derives the metadata for one page of total results.
// TotalPages rounds up; a zero page size yields zero pages.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
