package repo

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/listing-search/internal/models"
	"github.com/rogerio-castellano/listing-search/internal/search"
)

// InMemoryListingRepository is an in-memory implementation of ListingRepository.
type InMemoryListingRepository struct {
	mu       sync.RWMutex
	listings []models.Listing
	nextID   int
}

// NewInMemoryListingRepository creates a repository holding the given listings.
func NewInMemoryListingRepository(listings ...models.Listing) *InMemoryListingRepository {
	r := &InMemoryListingRepository{nextID: 1}
	r.Load(listings)
	return r
}

// Load replaces the repository contents.
func (r *InMemoryListingRepository) Load(listings []models.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listings = make([]models.Listing, len(listings))
	copy(r.listings, listings)
	r.nextID = 1
	for _, l := range r.listings {
		if l.ID >= r.nextID {
			r.nextID = l.ID + 1
		}
	}
}

// Add stores a listing, assigning the next id when it has none.
func (r *InMemoryListingRepository) Add(l models.Listing) models.Listing {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == 0 {
		l.ID = r.nextID
	}
	if l.ID >= r.nextID {
		r.nextID = l.ID + 1
	}
	r.listings = append(r.listings, l)
	return l
}

func (r *InMemoryListingRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings = []models.Listing{}
	r.nextID = 1
}

func (r *InMemoryListingRepository) Find(ctx context.Context, req search.Request) ([]models.Listing, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	matched := make([]models.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if req.Filter.Match(l) {
			matched = append(matched, l)
		}
	}
	r.mu.RUnlock()

	search.SortListings(matched, req.Order)
	return search.Slice(matched, req.Offset, req.Limit), len(matched), nil
}

// GetByID retrieves a listing by its ID.
func (r *InMemoryListingRepository) GetByID(ctx context.Context, id int) (models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Listing{}, ErrListingNotFound
}

// All returns a copy of every stored listing.
func (r *InMemoryListingRepository) All(ctx context.Context) ([]models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Listing, len(r.listings))
	copy(out, r.listings)
	return out, nil
}
