package search

import (
	"strings"

	"github.com/rogerio-castellano/listing-search/internal/models"
	"golang.org/x/text/cases"
)

// Field names a filterable or sortable listing attribute.
type Field string

const (
	FieldTitle        Field = "title"
	FieldAddress      Field = "address"
	FieldDescription  Field = "description"
	FieldPrice        Field = "price"
	FieldBedrooms     Field = "bedrooms"
	FieldBathrooms    Field = "bathrooms"
	FieldSqft         Field = "sqft"
	FieldPropertyType Field = "property_type"
	FieldStatus       Field = "status"
	FieldListedAt     Field = "listed_at"
)

// Predicate is one filter condition. The set of implementations is closed:
// Equals, OneOf, Range, GreaterOrEqual, LessOrEqual, Contains and AnyOf.
type Predicate interface {
	predicate()
}

// Equals matches a text field exactly.
type Equals struct {
	Field Field
	Value string
}

// OneOf matches a text field against a set of values.
type OneOf struct {
	Field  Field
	Values []string
}

// Range matches a numeric field inside [Min, Max].
type Range struct {
	Field    Field
	Min, Max float64
}

type GreaterOrEqual struct {
	Field Field
	Value float64
}

type LessOrEqual struct {
	Field Field
	Value float64
}

// Contains is a case-insensitive substring match on a text field. In memory
// both sides go through Unicode case folding; the Postgres source uses ILIKE,
// which follows the database collation and does not expand foldings such as
// "ß" to "ss".
type Contains struct {
	Field Field
	Value string
}

// AnyOf is satisfied when at least one of its predicates is.
type AnyOf struct {
	Predicates []Predicate
}

func (Equals) predicate()         {}
func (OneOf) predicate()          {}
func (Range) predicate()          {}
func (GreaterOrEqual) predicate() {}
func (LessOrEqual) predicate()    {}
func (Contains) predicate()       {}
func (AnyOf) predicate()          {}

// Filter is the conjunction of its predicates. The zero Filter matches
// every listing.
type Filter struct {
	Predicates []Predicate
}

// TextSearchFields are OR-ed together for free-text search.
var TextSearchFields = []Field{FieldTitle, FieldAddress, FieldDescription}

// Build translates a normalized query into a Filter.
func Build(q Query) Filter {
	var f Filter

	if q.Term != "" {
		group := AnyOf{Predicates: make([]Predicate, 0, len(TextSearchFields))}
		for _, field := range TextSearchFields {
			group.Predicates = append(group.Predicates, Contains{Field: field, Value: q.Term})
		}
		f.Predicates = append(f.Predicates, group)
	}

	switch {
	case q.MinPrice != nil && q.MaxPrice != nil:
		f.Predicates = append(f.Predicates, Range{Field: FieldPrice, Min: *q.MinPrice, Max: *q.MaxPrice})
	case q.MinPrice != nil:
		f.Predicates = append(f.Predicates, GreaterOrEqual{Field: FieldPrice, Value: *q.MinPrice})
	case q.MaxPrice != nil:
		f.Predicates = append(f.Predicates, LessOrEqual{Field: FieldPrice, Value: *q.MaxPrice})
	}

	if q.MinBedrooms != nil {
		f.Predicates = append(f.Predicates, GreaterOrEqual{Field: FieldBedrooms, Value: float64(*q.MinBedrooms)})
	}
	if q.MinBathrooms != nil {
		f.Predicates = append(f.Predicates, GreaterOrEqual{Field: FieldBathrooms, Value: *q.MinBathrooms})
	}

	if p := setPredicate(FieldPropertyType, q.PropertyTypes); p != nil {
		f.Predicates = append(f.Predicates, p)
	}
	if p := setPredicate(FieldStatus, q.Statuses); p != nil {
		f.Predicates = append(f.Predicates, p)
	}

	return f
}

func setPredicate[T ~string](field Field, values []T) Predicate {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return Equals{Field: field, Value: string(values[0])}
	}
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = string(v)
	}
	return OneOf{Field: field, Values: strs}
}

// Match reports whether l satisfies every predicate of f.
func (f Filter) Match(l models.Listing) bool {
	for _, p := range f.Predicates {
		if !matches(p, l) {
			return false
		}
	}
	return true
}

func matches(p Predicate, l models.Listing) bool {
	switch p := p.(type) {
	case Equals:
		v, ok := textValue(l, p.Field)
		return ok && v == p.Value
	case OneOf:
		v, ok := textValue(l, p.Field)
		if !ok {
			return false
		}
		for _, want := range p.Values {
			if v == want {
				return true
			}
		}
		return false
	case Range:
		v, ok := numericValue(l, p.Field)
		return ok && v >= p.Min && v <= p.Max
	case GreaterOrEqual:
		v, ok := numericValue(l, p.Field)
		return ok && v >= p.Value
	case LessOrEqual:
		v, ok := numericValue(l, p.Field)
		return ok && v <= p.Value
	case Contains:
		v, ok := textValue(l, p.Field)
		return ok && strings.Contains(fold(v), fold(p.Value))
	case AnyOf:
		for _, sub := range p.Predicates {
			if matches(sub, l) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func textValue(l models.Listing, f Field) (string, bool) {
	switch f {
	case FieldTitle:
		return l.Title, true
	case FieldAddress:
		return l.Address, true
	case FieldDescription:
		return l.Description, true
	case FieldPropertyType:
		return string(l.PropertyType), true
	case FieldStatus:
		return string(l.Status), true
	}
	return "", false
}

// numericValue returns false when the listing has no value for f.
func numericValue(l models.Listing, f Field) (float64, bool) {
	switch f {
	case FieldPrice:
		if l.Price != nil {
			return *l.Price, true
		}
	case FieldBedrooms:
		if l.Bedrooms != nil {
			return float64(*l.Bedrooms), true
		}
	case FieldBathrooms:
		if l.Bathrooms != nil {
			return *l.Bathrooms, true
		}
	case FieldSqft:
		if l.Sqft != nil {
			return float64(*l.Sqft), true
		}
	case FieldListedAt:
		if !l.ListedAt.IsZero() {
			return float64(l.ListedAt.UnixNano()), true
		}
	}
	return 0, false
}

var folder = cases.Fold()

// fold applies Unicode case folding.
func fold(s string) string {
	return folder.String(s)
}
