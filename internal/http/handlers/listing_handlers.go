package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/listing-search/internal/logger"
	repo "github.com/rogerio-castellano/listing-search/internal/repo"
	"github.com/rogerio-castellano/listing-search/internal/search"
)

// SearchListingsHandler godoc
// @Summary Search the listing archive
// @Description Filters, sorts and paginates listings. Malformed parameters are ignored; omitting status returns active listings only.
// @Tags listings
// @Produce json
// @Param s query string false "Free text matched against title, address and description"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param bedrooms query int false "Minimum bedrooms"
// @Param bathrooms query number false "Minimum bathrooms"
// @Param property_type query string false "house, condo, townhouse, land, multi-family, other (comma separated)"
// @Param status query string false "active, pending, sold, withdrawn or all (comma separated)"
// @Param sort query string false "price_asc, price_desc, date_desc, bedrooms_desc, sqft_desc, name_asc, name_desc"
// @Param paged query int false "Page number"
// @Param per_page query int false "Page size"
// @Param view query string false "grid, list or map"
// @Success 200 {object} ListingsSearchResult
// @Failure 503 {object} ErrorResponse
// @Router /listings [get]
func SearchListingsHandler(w http.ResponseWriter, r *http.Request) {
	serveArchive(w, r, activeArchive)
}

// SearchSoldListingsHandler godoc
// @Summary Search recently sold listings
// @Description Same parameters as /listings; status defaults to sold.
// @Tags listings
// @Produce json
// @Success 200 {object} ListingsSearchResult
// @Failure 503 {object} ErrorResponse
// @Router /listings/sold [get]
func SearchSoldListingsHandler(w http.ResponseWriter, r *http.Request) {
	serveArchive(w, r, soldArchive)
}

func serveArchive(w http.ResponseWriter, r *http.Request, svc *search.Service) {
	log := logger.FromContext(r.Context())

	page, err := svc.Search(r.Context(), r.URL.Query())
	if err != nil {
		log.Error("listing search failed", "error", err, "archive", svc.Archive())
		writeJSONError(w, http.StatusServiceUnavailable, "listings are temporarily unavailable")
		return
	}

	if err := writeJSON(w, http.StatusOK, toSearchResult(page)); err != nil {
		log.Error("failed to write response", "error", err)
	}
}

// GetListingByIDHandler godoc
// @Summary Get listing by ID
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} ListingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /listings/{id} [get]
func GetListingByIDHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		writeJSONError(w, http.StatusBadRequest, "invalid listing ID")
		return
	}

	listing, err := listingRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrListingNotFound) {
			writeJSONError(w, http.StatusNotFound, "listing not found")
			return
		}
		log.Error("could not fetch listing", "error", err, "listing_id", id)
		writeJSONError(w, http.StatusServiceUnavailable, "listings are temporarily unavailable")
		return
	}

	view := search.ViewGrid
	if r.URL.Query().Get("view") == string(search.ViewMap) {
		view = search.ViewMap
	}
	if err := writeJSON(w, http.StatusOK, toListingResponse(listing, view)); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
