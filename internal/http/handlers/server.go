package handlers

import (
	repo "github.com/rogerio-castellano/listing-search/internal/repo"
	"github.com/rogerio-castellano/listing-search/internal/search"
)

var (
	listingRepo repo.ListingRepository
	metricsRepo repo.MetricsRepository

	activeArchive *search.Service
	soldArchive   *search.Service
)

func SetListingRepo(r repo.ListingRepository) {
	listingRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

// SetActiveArchive sets the pipeline behind GET /listings.
func SetActiveArchive(s *search.Service) {
	activeArchive = s
}

// SetSoldArchive sets the pipeline behind GET /listings/sold.
func SetSoldArchive(s *search.Service) {
	soldArchive = s
}
