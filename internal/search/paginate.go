package search

import (
	"math"

	"github.com/rogerio-castellano/listing-search/internal/models"
)

// ResultPage is one page of an archive.
type ResultPage struct {
	Listings     []models.Listing `json:"listings"`
	TotalMatches int              `json:"total_matches"`
	TotalPages   int              `json:"total_pages"`
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
	Sort         SortKey          `json:"sort"`
	View         ViewMode         `json:"view"`
}

// Window converts a 1-based page into an offset/limit pair.
func Window(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if page-1 > math.MaxInt/size {
		return math.MaxInt, size
	}
	return (page - 1) * size, size
}

func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate returns items[(page-1)*size : page*size], clamped to the slice.
// A page past the end is empty, not an error.
func Paginate[T any](items []T, page, size int) []T {
	offset, limit := Window(page, size)
	return Slice(items, offset, limit)
}

// Slice returns the window of items starting at offset. A limit <= 0 means
// everything from offset on; an offset past the end yields an empty slice.
func Slice[T any](items []T, offset, limit int) []T {
	offset = max(offset, 0)
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}
