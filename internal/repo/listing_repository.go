package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/listing-search/internal/models"
	"github.com/rogerio-castellano/listing-search/internal/search"
)

// ListingRepository is the read-only view of the listing store.
type ListingRepository interface {
	search.Source
	GetByID(ctx context.Context, id int) (models.Listing, error)
	All(ctx context.Context) ([]models.Listing, error)
}

// ErrListingNotFound is returned when a listing is not found in the repository.
var ErrListingNotFound = errors.New("listing not found")
