package search_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rogerio-castellano/listing-search/internal/models"
	"github.com/rogerio-castellano/listing-search/internal/repo"
	"github.com/rogerio-castellano/listing-search/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func listing(id int, title, address string, price *float64, beds *int, status models.Status) models.Listing {
	return models.Listing{
		ID:           id,
		Title:        title,
		Address:      address,
		Price:        price,
		Bedrooms:     beds,
		Bathrooms:    ptr(2.0),
		PropertyType: models.PropertyTypeHouse,
		Status:       status,
		ListedAt:     time.Date(2025, 1, id, 12, 0, 0, 0, time.UTC),
	}
}

// archive holds fifteen listings; four active ones cost between 200000 and
// 500000 inclusive and have at least three bedrooms (ids 1, 2, 4, 5).
func archive() []models.Listing {
	active, sold, pending := models.StatusActive, models.StatusSold, models.StatusPending
	return []models.Listing{
		listing(1, "Cozy home on Main Street", "1 Oak Road", ptr(250000.0), ptr(3), active),
		listing(2, "Family colonial", "2 Birch Lane", ptr(450000.0), ptr(4), active),
		listing(3, "Starter ranch", "3 Cedar Court", ptr(199999.0), ptr(3), active),
		listing(4, "Lake view estate", "4 Shore Drive", ptr(500000.0), ptr(5), active),
		listing(5, "Split level", "5 Pine Street", ptr(200000.0), ptr(3), active),
		listing(6, "Brick duplex", "6 MAIN STREET", ptr(300000.0), ptr(2), active),
		listing(7, "Main Street craftsman", "7 Walnut Way", ptr(350000.0), ptr(3), sold),
		listing(8, "Hilltop cape", "8 Summit Road", ptr(400000.0), ptr(4), pending),
		listing(9, "Modern farmhouse", "9 Meadow Lane", ptr(600000.0), ptr(4), active),
		listing(10, "Price on request", "10 Hidden Path", nil, ptr(3), active),
		listing(11, "Studio conversion", "11 Mill Street", ptr(320000.0), nil, active),
		listing(12, "Tiny cottage", "12 Creek Road", ptr(150000.0), ptr(1), active),
		listing(13, "Withdrawn victorian", "13 Elm Street", ptr(275000.0), ptr(3), models.StatusWithdrawn),
		listing(14, "Just over budget", "14 Ridge Road", ptr(500001.0), ptr(3), active),
		listing(15, "Garden bungalow", "15 Rose Avenue", ptr(220000.0), ptr(2), active),
	}
}

func newService(options ...search.ServiceOption) *search.Service {
	return search.NewService("active", repo.NewInMemoryListingRepository(archive()...), search.DefaultOptions(), options...)
}

func listingIDs(ls []models.Listing) []int {
	out := make([]int, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func TestService_PriceBedroomsScenario(t *testing.T) {
	s := newService()
	params := url.Values{
		"min_price": {"200000"},
		"max_price": {"500000"},
		"bedrooms":  {"3"},
		"sort":      {"price_asc"},
	}

	page, err := s.Search(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, []int{5, 1, 2, 4}, listingIDs(page.Listings))
	assert.Equal(t, 4, page.TotalMatches)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, search.SortPriceAsc, page.Sort)
}

func TestService_TextSearchIsCaseInsensitive(t *testing.T) {
	s := newService()

	page, err := s.Search(context.Background(), url.Values{"s": {"main street"}, "sort": {"price_asc"}})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 6}, listingIDs(page.Listings))

	page, err = s.Search(context.Background(), url.Values{"s": {"Main Street"}, "status": {"all"}, "sort": {"price_asc"}})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 6, 7}, listingIDs(page.Listings))
}

func TestService_DefaultsToActiveListings(t *testing.T) {
	s := newService()

	page, err := s.Search(context.Background(), url.Values{})
	require.NoError(t, err)

	assert.Equal(t, 12, page.TotalMatches)
	assert.Len(t, page.Listings, search.DefaultPageSize)
	assert.Equal(t, 1, page.TotalPages)
	for _, l := range page.Listings {
		assert.Equal(t, models.StatusActive, l.Status)
	}
	assert.Equal(t, 15, page.Listings[0].ID, "newest first")
}

func TestService_ResultsRespectBounds(t *testing.T) {
	s := newService()
	bounds := []url.Values{
		{"min_price": {"250000"}},
		{"max_price": {"300000"}},
		{"min_price": {"220000"}, "max_price": {"450000"}},
		{"bedrooms": {"4"}},
		{"bedrooms": {"3"}, "max_price": {"$300,000"}, "status": {"any"}},
	}

	for _, params := range bounds {
		q := search.Normalize(params, search.DefaultOptions())
		page, err := s.Run(context.Background(), q)
		require.NoError(t, err)
		require.NotEmpty(t, page.Listings, "params %v", params)

		for _, l := range page.Listings {
			if q.MinPrice != nil {
				require.NotNil(t, l.Price)
				assert.GreaterOrEqual(t, *l.Price, *q.MinPrice)
			}
			if q.MaxPrice != nil {
				require.NotNil(t, l.Price)
				assert.LessOrEqual(t, *l.Price, *q.MaxPrice)
			}
			if q.MinBedrooms != nil {
				require.NotNil(t, l.Bedrooms)
				assert.GreaterOrEqual(t, *l.Bedrooms, *q.MinBedrooms)
			}
		}
	}
}

func TestService_SearchIsIdempotent(t *testing.T) {
	s := newService()
	params := url.Values{"s": {"street"}, "status": {"all"}, "sort": {"name_asc"}, "per_page": {"3"}, "paged": {"2"}}

	first, err := s.Search(context.Background(), params)
	require.NoError(t, err)
	second, err := s.Search(context.Background(), params)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated search differs (-first +second):\n%s", diff)
	}
}

func TestService_PagesPartitionTheMatches(t *testing.T) {
	s := newService()
	all, err := s.Search(context.Background(), url.Values{"status": {"all"}, "per_page": {"48"}})
	require.NoError(t, err)
	require.Len(t, all.Listings, 15)

	var seen []int
	for p := 1; p <= 4; p++ {
		page, err := s.Search(context.Background(), url.Values{"status": {"all"}, "per_page": {"4"}, "paged": {fmt.Sprint(p)}})
		require.NoError(t, err)
		assert.Equal(t, 4, page.TotalPages)
		assert.Equal(t, 15, page.TotalMatches)
		seen = append(seen, listingIDs(page.Listings)...)
	}
	assert.Equal(t, listingIDs(all.Listings), seen)
}

func TestService_InvalidPageMeansFirstPage(t *testing.T) {
	s := newService()
	first, err := s.Search(context.Background(), url.Values{"paged": {"1"}})
	require.NoError(t, err)

	for _, p := range []string{"0", "-1", "two"} {
		page, err := s.Search(context.Background(), url.Values{"paged": {p}})
		require.NoError(t, err)
		assert.Equal(t, first, page, "paged=%s", p)
	}
}

func TestService_PageBeyondLastIsEmpty(t *testing.T) {
	s := newService()
	page, err := s.Search(context.Background(), url.Values{"per_page": {"5"}, "paged": {"9"}})
	require.NoError(t, err)

	assert.NotNil(t, page.Listings)
	assert.Empty(t, page.Listings)
	assert.Equal(t, 12, page.TotalMatches)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 9, page.Page)
}

func TestService_SoldArchive(t *testing.T) {
	opts := search.Options{DefaultStatuses: []models.Status{models.StatusSold}}
	s := search.NewService("sold", repo.NewInMemoryListingRepository(archive()...), opts)

	page, err := s.Search(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Equal(t, []int{7}, listingIDs(page.Listings))
	assert.Equal(t, "sold", s.Archive())
	assert.Equal(t, search.DefaultPageSize, s.Options().PageSize)
}

type failingSource struct{ err error }

func (f failingSource) Find(context.Context, search.Request) ([]models.Listing, int, error) {
	return nil, 0, f.err
}

func TestService_SourceErrorIsReturned(t *testing.T) {
	boom := errors.New("connection refused")
	s := search.NewService("active", failingSource{err: boom}, search.DefaultOptions())

	_, err := s.Search(context.Background(), url.Values{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

type memoryCache struct {
	pages          map[string]search.ResultPage
	gets, sets     int
	getErr, setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{pages: make(map[string]search.ResultPage)}
}

func (c *memoryCache) Get(_ context.Context, key string) (search.ResultPage, bool, error) {
	c.gets++
	if c.getErr != nil {
		return search.ResultPage{}, false, c.getErr
	}
	p, ok := c.pages[key]
	return p, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, page search.ResultPage) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.pages[key] = page
	return nil
}

type countingSource struct {
	search.Source
	calls int
}

func (c *countingSource) Find(ctx context.Context, req search.Request) ([]models.Listing, int, error) {
	c.calls++
	return c.Source.Find(ctx, req)
}

func TestService_CachesPages(t *testing.T) {
	cache := newMemoryCache()
	src := &countingSource{Source: repo.NewInMemoryListingRepository(archive()...)}
	s := search.NewService("active", src, search.DefaultOptions(), search.WithCache(cache))

	first, err := s.Search(context.Background(), url.Values{"bedrooms": {"3"}})
	require.NoError(t, err)
	second, err := s.Search(context.Background(), url.Values{"bedrooms": {"3.0"}})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls, "normalized duplicates hit the cache")
	assert.Equal(t, 1, cache.sets)

	_, err = s.Search(context.Background(), url.Values{"bedrooms": {"4"}})
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestService_CacheErrorsFallBackToSource(t *testing.T) {
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	src := &countingSource{Source: repo.NewInMemoryListingRepository(archive()...)}
	s := search.NewService("active", src, search.DefaultOptions(), search.WithCache(cache))

	page, err := s.Search(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 12, page.TotalMatches)
	assert.Equal(t, 1, src.calls)
}

func TestCacheKey(t *testing.T) {
	opts := search.DefaultOptions()
	a := search.Normalize(url.Values{"property_type": {"condo,house"}, "min_price": {"$200,000"}}, opts)
	b := search.Normalize(url.Values{"property_type": {"house", "condo"}, "min_price": {"200000"}}, opts)
	c := search.Normalize(url.Values{"property_type": {"house"}, "min_price": {"200000"}}, opts)

	assert.Equal(t, search.CacheKey("active", a), search.CacheKey("active", b))
	assert.NotEqual(t, search.CacheKey("active", a), search.CacheKey("active", c))
	assert.NotEqual(t, search.CacheKey("active", a), search.CacheKey("sold", a))
}

func TestCacheKey_TermCannotForgeFields(t *testing.T) {
	price := 5.0
	plain := search.Query{Term: "x", MinPrice: &price, Page: 1, PageSize: 12}
	forged := search.Query{Term: `x|min_price=5`, Page: 1, PageSize: 12}
	quoted := search.Query{Term: `x"|min_price=5`, Page: 1, PageSize: 12}

	assert.NotEqual(t, search.CacheKey("active", plain), search.CacheKey("active", forged))
	assert.NotEqual(t, search.CacheKey("active", forged), search.CacheKey("active", quoted))
}
