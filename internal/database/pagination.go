package database

import (
	"github.com/vidtube/backend/pkg/models"
)

const maxPageLimit = 100

// normalizePage clamps page and limit to sane positive values. Both are
// 1-indexed; a page past the last yields an empty result set downstream,
// never an error.
func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// buildPagination derives page metadata from the total row count.
func buildPagination(page, limit int, totalItems int64) models.Pagination {
	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	return models.Pagination{
		Page:        page,
		Limit:       limit,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && totalItems > 0,
	}
}
