package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults applied", 0, 0, 1, 10},
		{"negative values", -3, -5, 1, 10},
		{"passthrough", 2, 25, 2, 25},
		{"limit capped", 1, 5000, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := normalizePage(tt.page, tt.limit, 10)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestBuildPagination(t *testing.T) {
	p := buildPagination(2, 10, 35)
	assert.Equal(t, 4, p.TotalPages)
	assert.Equal(t, int64(35), p.TotalItems)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
}

func TestBuildPaginationFirstPage(t *testing.T) {
	p := buildPagination(1, 10, 5)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}

func TestBuildPaginationPastLastPage(t *testing.T) {
	// a page past the end still reports consistent metadata
	p := buildPagination(9, 10, 35)
	assert.Equal(t, 4, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
}

func TestBuildPaginationEmpty(t *testing.T) {
	p := buildPagination(1, 10, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}
