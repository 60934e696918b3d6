package handler

import (
	"math"

	"github.com/andsetyobudi/ban-bengkel/internal/query"
)

// PaginatedResponse is the envelope of every paginated list endpoint.
type PaginatedResponse struct {
	Data        any   `json:"data"`
	TotalRows   int64 `json:"totalRows"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

// NewPaginatedResponse echoes the effective page and page size, not the raw
// query values.
func NewPaginatedResponse(data any, totalRows int64, page, pageSize int) PaginatedResponse {
	page, pageSize = query.NormalizePage(page, pageSize)

	totalPages := 0
	if totalRows > 0 {
		totalPages = int(math.Ceil(float64(totalRows) / float64(pageSize)))
	}

	return PaginatedResponse{
		Data:        data,
		TotalRows:   totalRows,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
	}
}
