package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nrandria/tutoria/internal/app/models/dto"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	DefaultPage  = 1 // page numbers are 1-based
)

// CalculateOffsetLimit calculates the offset and limit for SQL queries
// based on a 1-based page index.
func CalculateOffsetLimit(page, limit int) (offset uint64, normalized int) {
	if limit <= 0 || limit > MaxLimit {
		normalized = DefaultLimit
	} else {
		normalized = limit
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * normalized)
	return offset, normalized
}

// NewPaginationMeta creates pagination metadata from a total computed
// over the full filtered set.
func NewPaginationMeta(total int64, page, limit int) dto.PaginationMeta {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return dto.PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ParsePaginationParams extracts and validates pagination parameters
// from the request.
func ParsePaginationParams(c *gin.Context) (page, limit int) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limitStr := c.DefaultQuery("limit", "10")
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return page, limit
}

// ParseSortParams extracts sortBy/sortOrder from the request.
func ParseSortParams(c *gin.Context) (sortBy, sortOrder string) {
	return c.Query("sortBy"), c.DefaultQuery("sortOrder", "asc")
}
