package repo

import (
	"context"

	"github.com/rogerio-castellano/listing-search/internal/models"
)

type InMemoryMetricsRepository struct {
	listings ListingRepository
}

func NewInMemoryMetricsRepository(listings ListingRepository) *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{listings: listings}
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	m := newMetrics()

	listings, err := i.listings.All(ctx)
	if err != nil {
		return m, err
	}
	m.TotalListings = len(listings)

	var priced int
	var sum float64
	for _, l := range listings {
		m.ByStatus[l.Status]++
		m.ByPropertyType[l.PropertyType]++
		if l.Status == models.StatusActive && l.Price != nil {
			priced++
			sum += *l.Price
		}
	}
	if priced > 0 {
		avg := sum / float64(priced)
		m.AverageActivePrice = &avg
	}

	return m, nil
}
