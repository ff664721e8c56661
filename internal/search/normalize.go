package search

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/listing-search/internal/models"
)

// Normalize turns raw query-string parameters into a Query. It never fails:
// malformed values are dropped and the archive defaults from opts apply.
func Normalize(params url.Values, opts Options) Query {
	opts = opts.withDefaults()

	q := Query{
		Term:          normalizeTerm(firstValue(params, "s", "search")),
		MinPrice:      parseAmount(params.Get("min_price")),
		MaxPrice:      parseAmount(params.Get("max_price")),
		MinBedrooms:   parseCount(params.Get("bedrooms")),
		MinBathrooms:  parseAmount(params.Get("bathrooms")),
		PropertyTypes: parsePropertyTypes(multiValue(params, "property_type")),
		Statuses:      parseStatuses(multiValue(params, "status"), opts.DefaultStatuses),
		Sort:          parseSort(params.Get("sort"), opts.DefaultSort),
		Page:          parsePage(firstValue(params, "paged", "page")),
		PageSize:      parsePageSize(params.Get("per_page"), opts),
		View:          parseView(params.Get("view")),
	}

	// Inverted price range counts as unset.
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		q.MinPrice, q.MaxPrice = nil, nil
	}

	return q
}

func firstValue(params url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(params.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

// multiValue collects repeated keys, PHP-style "key[]" keys and comma lists.
func multiValue(params url.Values, key string) []string {
	var out []string
	for _, k := range []string{key, key + "[]"} {
		for _, raw := range params[k] {
			for _, part := range strings.Split(raw, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
	}
	return out
}

func normalizeTerm(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxTermRunes {
		s = strings.TrimSpace(string(r[:maxTermRunes]))
	}
	return s
}

// parseAmount accepts "250000", "$250,000" and "2.5+". Anything that is not a
// finite non-negative number yields nil.
func parseAmount(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "+")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

// parseCount reads a minimum count; fractional input rounds up
// ("at least 2.5 bedrooms" is at least 3).
func parseCount(s string) *int {
	f := parseAmount(s)
	if f == nil || *f > math.MaxInt32 {
		return nil
	}
	v := int(math.Ceil(*f))
	return &v
}

func parsePropertyTypes(values []string) []models.PropertyType {
	seen := make(map[models.PropertyType]bool)
	for _, v := range values {
		if t, ok := models.ParsePropertyType(v); ok {
			seen[t] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	types := make([]models.PropertyType, 0, len(seen))
	for _, t := range models.PropertyTypes {
		if seen[t] {
			types = append(types, t)
		}
	}
	return types
}

func parseStatuses(values []string, defaults []models.Status) []models.Status {
	seen := make(map[models.Status]bool)
	for _, v := range values {
		switch strings.ToLower(v) {
		case "all", "any":
			return []models.Status{}
		}
		if st, ok := models.ParseStatus(v); ok {
			seen[st] = true
		}
	}
	if len(seen) == 0 {
		return append([]models.Status{}, defaults...)
	}
	statuses := make([]models.Status, 0, len(seen))
	for _, st := range models.Statuses {
		if seen[st] {
			statuses = append(statuses, st)
		}
	}
	return statuses
}

func parseSort(s string, fallback SortKey) SortKey {
	if key, ok := ParseSortKey(s); ok {
		return key
	}
	return fallback
}

func parsePage(s string) int {
	page, err := strconv.Atoi(s)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parsePageSize(s string, opts Options) int {
	size, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || size < 1 {
		return opts.PageSize
	}
	return min(size, opts.MaxPageSize)
}

func parseView(s string) ViewMode {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case ViewList:
		return ViewList
	case ViewMap:
		return ViewMap
	default:
		return ViewGrid
	}
}
