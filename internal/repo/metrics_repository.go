package repo

import (
	"context"

	"github.com/rogerio-castellano/listing-search/internal/models"
)

type Metrics struct {
	TotalListings      int                         `json:"total_listings"`
	ByStatus           map[models.Status]int       `json:"by_status"`
	ByPropertyType     map[models.PropertyType]int `json:"by_property_type"`
	AverageActivePrice *float64                    `json:"average_active_price"`
}

type MetricsRepository interface {
	GetDashboardMetrics(ctx context.Context) (Metrics, error)
}

func newMetrics() Metrics {
	return Metrics{
		ByStatus:       make(map[models.Status]int),
		ByPropertyType: make(map[models.PropertyType]int),
	}
}
