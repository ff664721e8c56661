package search

import (
	"testing"
	"time"

	"github.com/rogerio-castellano/listing-search/internal/models"
	"github.com/stretchr/testify/assert"
)

func ids(ls []models.Listing) []int {
	out := make([]int, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func sortFixture() []models.Listing {
	day := func(d int) time.Time { return time.Date(2024, 5, d, 9, 0, 0, 0, time.UTC) }
	return []models.Listing{
		{ID: 5, Title: "beach house", Price: ptr(300000.0), Bedrooms: ptr(2), Sqft: ptr(1200), ListedAt: day(3)},
		{ID: 2, Title: "Alpine Cabin", Price: ptr(150000.0), Bedrooms: ptr(4), ListedAt: day(9)},
		{ID: 9, Title: "", Price: nil, Bedrooms: ptr(4), Sqft: ptr(2000)},
		{ID: 1, Title: "Cottage", Price: ptr(300000.0), Bedrooms: nil, Sqft: ptr(900), ListedAt: day(9)},
		{ID: 4, Title: "  ", Price: ptr(90000.0), Bedrooms: ptr(1), ListedAt: day(1)},
	}
}

func TestSortListings(t *testing.T) {
	tests := []struct {
		key  SortKey
		want []int
	}{
		{SortPriceAsc, []int{4, 2, 1, 5, 9}},
		{SortPriceDesc, []int{1, 5, 2, 4, 9}},
		{SortDateDesc, []int{1, 2, 5, 4, 9}},
		{SortBedroomsDesc, []int{2, 9, 5, 4, 1}},
		{SortSqftDesc, []int{9, 5, 1, 2, 4}},
		{SortNameAsc, []int{2, 5, 1, 4, 9}},
		{SortNameDesc, []int{1, 5, 2, 4, 9}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			ls := sortFixture()
			SortListings(ls, OrderFor(tt.key))
			assert.Equal(t, tt.want, ids(ls))
		})
	}
}

func TestSortListings_IsDeterministic(t *testing.T) {
	a := sortFixture()
	b := sortFixture()
	b[0], b[4] = b[4], b[0]
	b[1], b[3] = b[3], b[1]

	for key := range orders {
		SortListings(a, OrderFor(key))
		SortListings(b, OrderFor(key))
		assert.Equal(t, ids(a), ids(b), "sort %s", key)
	}
}

func TestParseSortKey(t *testing.T) {
	key, ok := ParseSortKey("Price_Desc")
	assert.True(t, ok)
	assert.Equal(t, SortPriceDesc, key)

	_, ok = ParseSortKey("cheapest")
	assert.False(t, ok)
}

func TestOrderFor_UnknownKeyFallsBackToNewest(t *testing.T) {
	o := OrderFor("nonsense")
	assert.Equal(t, Order{Key: SortDateDesc, Field: FieldListedAt, Direction: Desc}, o)
}
