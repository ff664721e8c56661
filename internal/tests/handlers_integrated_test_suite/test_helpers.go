package handlers_integrated_test_suite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/listing-search/internal/db"
	api "github.com/rogerio-castellano/listing-search/internal/http"
	handler "github.com/rogerio-castellano/listing-search/internal/http/handlers"
	"github.com/rogerio-castellano/listing-search/internal/models"
	"github.com/rogerio-castellano/listing-search/internal/repo"
	"github.com/rogerio-castellano/listing-search/internal/search"
)

var database *sql.DB

func setupTestRepos(dbUrl string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	database, err = db.Connect(ctx, dbUrl)
	if err != nil {
		log.Fatal("could not connect to database: ", err)
	}
	if err := db.EnsureSchema(ctx, database); err != nil {
		log.Fatal(err)
	}

	listingRepo := repo.NewPostgresListingRepository(database)
	handler.SetListingRepo(listingRepo)
	handler.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))

	sold := search.DefaultOptions()
	sold.DefaultStatuses = []models.Status{models.StatusSold}
	handler.SetActiveArchive(search.NewService("active", listingRepo, search.DefaultOptions()))
	handler.SetSoldArchive(search.NewService("sold", listingRepo, sold))
}

func newRouter() http.Handler {
	return api.NewRouter(api.RouterConfig{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
}

func clearAllListings() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := database.ExecContext(ctx, "TRUNCATE TABLE listings RESTART IDENTITY")
	if err != nil {
		fmt.Println(fmt.Errorf("failed to truncate listings table: %w", err))
	}
}

func addListing(l models.Listing) {
	const query = `INSERT INTO listings (title, address, description, price, bedrooms, bathrooms, sqft, property_type, status, listed_at, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := database.ExecContext(ctx, query, l.Title, l.Address, l.Description, l.Price, l.Bedrooms, l.Bathrooms, l.Sqft,
		string(l.PropertyType), string(l.Status), l.ListedAt, l.Latitude, l.Longitude)
	if err != nil {
		log.Printf("error adding listing %q: %v", l.Title, err)
	}
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func seedListings() {
	day := func(d int) time.Time { return time.Date(2025, 2, d, 8, 0, 0, 0, time.UTC) }
	rows := []models.Listing{
		{Title: "Cozy home on Main Street", Address: "1 Oak Road", Price: fptr(250000), Bedrooms: iptr(3), PropertyType: models.PropertyTypeHouse, Status: models.StatusActive},
		{Title: "Family colonial", Address: "2 Birch Lane", Price: fptr(450000), Bedrooms: iptr(4), PropertyType: models.PropertyTypeHouse, Status: models.StatusActive},
		{Title: "Starter ranch", Address: "3 Cedar Court", Price: fptr(199999), Bedrooms: iptr(3), PropertyType: models.PropertyTypeHouse, Status: models.StatusActive},
		{Title: "Lake view estate", Address: "4 Shore Drive", Price: fptr(500000), Bedrooms: iptr(5), PropertyType: models.PropertyTypeHouse, Status: models.StatusActive},
		{Title: "Harbor condo", Address: "5 Pine Street", Price: fptr(200000), Bedrooms: iptr(3), PropertyType: models.PropertyTypeCondo, Status: models.StatusActive},
		{Title: "Brick duplex", Address: "6 MAIN STREET", Price: fptr(300000), Bedrooms: iptr(2), PropertyType: models.PropertyTypeMultiFamily, Status: models.StatusActive},
		{Title: "Main Street craftsman", Address: "7 Walnut Way", Price: fptr(350000), Bedrooms: iptr(3), PropertyType: models.PropertyTypeHouse, Status: models.StatusSold},
		{Title: "Price on request", Address: "8 Hidden Path", Bedrooms: iptr(3), PropertyType: models.PropertyTypeHouse, Status: models.StatusActive},
	}
	for n, l := range rows {
		l.ListedAt = day(n + 1)
		l.Bathrooms = fptr(1.5)
		addListing(l)
	}
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
