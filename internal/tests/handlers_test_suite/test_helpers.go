package handlers_test_suite

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	api "github.com/rogerio-castellano/listing-search/internal/http"
	handler "github.com/rogerio-castellano/listing-search/internal/http/handlers"
	"github.com/rogerio-castellano/listing-search/internal/models"
	"github.com/rogerio-castellano/listing-search/internal/repo"
	"github.com/rogerio-castellano/listing-search/internal/search"
)

var listingRepo *repo.InMemoryListingRepository

func init() {
	setupTestRepos()
}

func setupTestRepos() {
	listingRepo = repo.NewInMemoryListingRepository()
	handler.SetListingRepo(listingRepo)
	handler.SetMetricsRepo(repo.NewInMemoryMetricsRepository(listingRepo))

	sold := search.DefaultOptions()
	sold.DefaultStatuses = []models.Status{models.StatusSold}
	handler.SetActiveArchive(search.NewService("active", listingRepo, search.DefaultOptions()))
	handler.SetSoldArchive(search.NewService("sold", listingRepo, sold))
}

func newRouter() http.Handler {
	return api.NewRouter(api.RouterConfig{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
}

func clearAllListings() {
	listingRepo.Clear()
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

// seedListings stores fifteen listings. Four active ones cost between 200000
// and 500000 and have three bedrooms or more.
func seedListings() {
	day := func(d int) time.Time { return time.Date(2025, 2, d, 8, 0, 0, 0, time.UTC) }
	add := func(title, address string, price *float64, beds *int, pt models.PropertyType, st models.Status, d int) {
		listingRepo.Add(models.Listing{
			Title:        title,
			Address:      address,
			Price:        price,
			Bedrooms:     beds,
			Bathrooms:    fptr(2),
			PropertyType: pt,
			Status:       st,
			ListedAt:     day(d),
		})
	}

	add("Cozy home on Main Street", "1 Oak Road", fptr(250000), iptr(3), models.PropertyTypeHouse, models.StatusActive, 1)
	add("Family colonial", "2 Birch Lane", fptr(450000), iptr(4), models.PropertyTypeHouse, models.StatusActive, 2)
	add("Starter ranch", "3 Cedar Court", fptr(199999), iptr(3), models.PropertyTypeHouse, models.StatusActive, 3)
	add("Lake view estate", "4 Shore Drive", fptr(500000), iptr(5), models.PropertyTypeHouse, models.StatusActive, 4)
	add("Harbor condo", "5 Pine Street", fptr(200000), iptr(3), models.PropertyTypeCondo, models.StatusActive, 5)
	add("Brick duplex", "6 MAIN STREET", fptr(300000), iptr(2), models.PropertyTypeMultiFamily, models.StatusActive, 6)
	add("Main Street craftsman", "7 Walnut Way", fptr(350000), iptr(3), models.PropertyTypeHouse, models.StatusSold, 7)
	add("Hilltop cape", "8 Summit Road", fptr(400000), iptr(4), models.PropertyTypeHouse, models.StatusPending, 8)
	add("Modern farmhouse", "9 Meadow Lane", fptr(600000), iptr(4), models.PropertyTypeHouse, models.StatusActive, 9)
	add("Price on request", "10 Hidden Path", nil, iptr(3), models.PropertyTypeHouse, models.StatusActive, 10)
	add("Studio conversion", "11 Mill Street", fptr(320000), nil, models.PropertyTypeCondo, models.StatusActive, 11)
	add("Tiny cottage", "12 Creek Road", fptr(150000), iptr(1), models.PropertyTypeHouse, models.StatusActive, 12)
	add("Withdrawn victorian", "13 Elm Street", fptr(275000), iptr(3), models.PropertyTypeHouse, models.StatusWithdrawn, 13)
	add("Just over budget", "14 Ridge Road", fptr(500001), iptr(3), models.PropertyTypeHouse, models.StatusActive, 14)
	add("Garden townhouse", "15 Rose Avenue", fptr(220000), iptr(2), models.PropertyTypeTownhouse, models.StatusActive, 15)
}

func modelsListingWithLocation(lat, lng float64) models.Listing {
	return models.Listing{
		Title:        "Sunny bungalow",
		Address:      "12 Main Street, Springfield",
		Price:        fptr(325000),
		PropertyType: models.PropertyTypeHouse,
		Status:       models.StatusActive,
		ListedAt:     time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
		Latitude:     &lat,
		Longitude:    &lng,
	}
}

func newGet(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	return serve(r, newGet(target))
}

func decodeSearch(w *httptest.ResponseRecorder) (handler.ListingsSearchResult, error) {
	var resp handler.ListingsSearchResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	return resp, err
}

func titles(resp handler.ListingsSearchResult) []string {
	out := make([]string, len(resp.Data))
	for i, l := range resp.Data {
		out[i] = l.Title
	}
	return out
}

// brokenRepo fails every read, standing in for an unreachable database.
type brokenRepo struct{}

var errUnavailable = errors.New("connection refused")

func (brokenRepo) Find(context.Context, search.Request) ([]models.Listing, int, error) {
	return nil, 0, errUnavailable
}

func (brokenRepo) GetByID(context.Context, int) (models.Listing, error) {
	return models.Listing{}, errUnavailable
}

func (brokenRepo) All(context.Context) ([]models.Listing, error) {
	return nil, errUnavailable
}

func withBrokenRepo(fn func()) {
	var broken brokenRepo
	handler.SetListingRepo(broken)
	handler.SetMetricsRepo(repo.NewInMemoryMetricsRepository(broken))
	handler.SetActiveArchive(search.NewService("active", broken, search.DefaultOptions()))
	defer setupTestRepos()
	fn()
}
