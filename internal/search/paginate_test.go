package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name          string
		page, size    int
		offset, limit int
	}{
		{"first page", 1, 12, 0, 12},
		{"third page", 3, 10, 20, 10},
		{"zero page", 0, 12, 0, 12},
		{"negative page", -4, 12, 0, 12},
		{"zero size", 2, 0, DefaultPageSize, DefaultPageSize},
		{"overflow", math.MaxInt, 48, math.MaxInt, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := Window(tt.page, tt.size)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.limit, limit)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(1, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, Paginate(items, 1, 3))
	assert.Equal(t, []int{7}, Paginate(items, 3, 3))
	assert.Equal(t, []int{}, Paginate(items, 4, 3))
	assert.Equal(t, Paginate(items, 1, 3), Paginate(items, 0, 3))
	assert.Equal(t, Paginate(items, 1, 3), Paginate(items, -2, 3))
}

func TestPaginate_PagesCoverEveryItemOnce(t *testing.T) {
	items := make([]int, 29)
	for i := range items {
		items[i] = i
	}

	for _, size := range []int{1, 5, 12, 29, 48} {
		var seen []int
		for page := 1; page <= TotalPages(len(items), size); page++ {
			got := Paginate(items, page, size)
			assert.LessOrEqual(t, len(got), size)
			seen = append(seen, got...)
		}
		assert.Equal(t, items, seen, "size %d", size)
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name          string
		offset, limit int
		want          []int
	}{
		{"window", 1, 2, []int{2, 3}},
		{"clamped to end", 3, 10, []int{4, 5}},
		{"no limit", 2, 0, []int{3, 4, 5}},
		{"negative offset", -3, 2, []int{1, 2}},
		{"past the end", 5, 2, []int{}},
		{"huge limit", 0, math.MaxInt, []int{1, 2, 3, 4, 5}},
		{"huge offset", math.MaxInt, 48, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slice(items, tt.offset, tt.limit))
		})
	}
}
