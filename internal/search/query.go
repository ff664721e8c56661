package search

import (
	"github.com/rogerio-castellano/listing-search/internal/models"
)

const (
	DefaultPageSize    = 12
	DefaultMaxPageSize = 48
	maxTermRunes       = 100
)

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
	ViewMap  ViewMode = "map"
)

// Options parameterize one archive. Several archives (active listings, sold
// listings) share the same pipeline with different defaults.
type Options struct {
	PageSize        int
	MaxPageSize     int
	DefaultSort     SortKey
	DefaultStatuses []models.Status
}

// DefaultOptions returns the settings of the main listing archive.
func DefaultOptions() Options {
	return Options{
		PageSize:        DefaultPageSize,
		MaxPageSize:     DefaultMaxPageSize,
		DefaultSort:     SortDateDesc,
		DefaultStatuses: []models.Status{models.StatusActive},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PageSize <= 0 {
		o.PageSize = d.PageSize
	}
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = d.MaxPageSize
	}
	if o.PageSize > o.MaxPageSize {
		o.MaxPageSize = o.PageSize
	}
	if _, ok := ParseSortKey(string(o.DefaultSort)); !ok {
		o.DefaultSort = d.DefaultSort
	}
	if o.DefaultStatuses == nil {
		o.DefaultStatuses = d.DefaultStatuses
	}
	return o
}

// Query holds the normalized criteria of one search request.
// Nil pointers and empty slices mean "no constraint", except Statuses:
// an empty Statuses matches every status.
type Query struct {
	Term          string
	MinPrice      *float64
	MaxPrice      *float64
	MinBedrooms   *int
	MinBathrooms  *float64
	PropertyTypes []models.PropertyType
	Statuses      []models.Status
	Sort          SortKey
	Page          int
	PageSize      int
	View          ViewMode
}
