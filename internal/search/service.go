package search

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/rogerio-castellano/listing-search/internal/logger"
	"github.com/rogerio-castellano/listing-search/internal/models"
)

// Request is what a Source receives: the filter, the ordering and the window
// of the current page.
type Request struct {
	Filter Filter
	Order  Order
	Offset int
	Limit  int
}

// Source is the read-only listing store. Find returns the listings inside the
// requested window and the total number of matches.
type Source interface {
	Find(ctx context.Context, req Request) ([]models.Listing, int, error)
}

// PageCache stores result pages by normalized query.
type PageCache interface {
	Get(ctx context.Context, key string) (ResultPage, bool, error)
	Set(ctx context.Context, key string, page ResultPage) error
}

// Service runs the archive pipeline: normalize, build, find, paginate.
type Service struct {
	archive string
	source  Source
	cache   PageCache
	opts    Options
}

type ServiceOption func(*Service)

func WithCache(c PageCache) ServiceOption {
	return func(s *Service) { s.cache = c }
}

// NewService creates the pipeline for one archive. The archive name
// namespaces cache entries.
func NewService(archive string, source Source, opts Options, options ...ServiceOption) *Service {
	s := &Service{archive: archive, source: source, opts: opts.withDefaults()}
	for _, o := range options {
		o(s)
	}
	return s
}

func (s *Service) Archive() string { return s.archive }

func (s *Service) Options() Options { return s.opts }

func (s *Service) Search(ctx context.Context, params url.Values) (ResultPage, error) {
	return s.Run(ctx, Normalize(params, s.opts))
}

// Run executes an already normalized query. Only data source failures are
// returned as errors.
func (s *Service) Run(ctx context.Context, q Query) (ResultPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = s.opts.PageSize
	}
	if q.Sort == "" {
		q.Sort = s.opts.DefaultSort
	}

	log := logger.FromContext(ctx).With("component", "search", "archive", s.archive)
	key := CacheKey(s.archive, q)

	if s.cache != nil {
		page, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warn("page cache read failed", "error", err)
		} else if ok {
			log.Debug("page cache hit", "key", key)
			return page, nil
		}
	}

	offset, limit := Window(q.Page, q.PageSize)
	order := OrderFor(q.Sort)
	listings, total, err := s.source.Find(ctx, Request{
		Filter: Build(q),
		Order:  order,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return ResultPage{}, fmt.Errorf("search %s: %w", s.archive, err)
	}
	if listings == nil {
		listings = []models.Listing{}
	}

	page := ResultPage{
		Listings:     listings,
		TotalMatches: total,
		TotalPages:   TotalPages(total, q.PageSize),
		Page:         q.Page,
		PageSize:     q.PageSize,
		Sort:         order.Key,
		View:         q.View,
	}
	log.Debug("search executed", "total", total, "page", q.Page, "returned", len(listings))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, page); err != nil {
			log.Warn("page cache write failed", "error", err)
		}
	}
	return page, nil
}

// CacheKey derives a stable key from the normalized query.
func CacheKey(archive string, q Query) string {
	var b strings.Builder
	fmt.Fprintf(&b, "term=%q|", q.Term)
	fmt.Fprintf(&b, "min_price=%s|max_price=%s|", floatKey(q.MinPrice), floatKey(q.MaxPrice))
	if q.MinBedrooms != nil {
		fmt.Fprintf(&b, "bedrooms=%d|", *q.MinBedrooms)
	}
	fmt.Fprintf(&b, "bathrooms=%s|", floatKey(q.MinBathrooms))
	for _, t := range q.PropertyTypes {
		fmt.Fprintf(&b, "type=%s|", t)
	}
	if len(q.Statuses) == 0 {
		b.WriteString("status=*|")
	}
	for _, st := range q.Statuses {
		fmt.Fprintf(&b, "status=%s|", st)
	}
	fmt.Fprintf(&b, "sort=%s|page=%d|size=%d|view=%s", q.Sort, q.Page, q.PageSize, q.View)

	sum := sha1.Sum([]byte(b.String()))
	return archive + ":" + hex.EncodeToString(sum[:])
}

func floatKey(f *float64) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%g", *f)
}
