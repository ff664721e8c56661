package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rogerio-castellano/listing-search/internal/models"
)

type SortKey string

const (
	SortPriceAsc     SortKey = "price_asc"
	SortPriceDesc    SortKey = "price_desc"
	SortDateDesc     SortKey = "date_desc"
	SortBedroomsDesc SortKey = "bedrooms_desc"
	SortSqftDesc     SortKey = "sqft_desc"
	SortNameAsc      SortKey = "name_asc"
	SortNameDesc     SortKey = "name_desc"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order is the (field, direction) pair a sort key resolves to.
type Order struct {
	Key       SortKey
	Field     Field
	Direction Direction
}

var orders = map[SortKey]Order{
	SortPriceAsc:     {Key: SortPriceAsc, Field: FieldPrice, Direction: Asc},
	SortPriceDesc:    {Key: SortPriceDesc, Field: FieldPrice, Direction: Desc},
	SortDateDesc:     {Key: SortDateDesc, Field: FieldListedAt, Direction: Desc},
	SortBedroomsDesc: {Key: SortBedroomsDesc, Field: FieldBedrooms, Direction: Desc},
	SortSqftDesc:     {Key: SortSqftDesc, Field: FieldSqft, Direction: Desc},
	SortNameAsc:      {Key: SortNameAsc, Field: FieldTitle, Direction: Asc},
	SortNameDesc:     {Key: SortNameDesc, Field: FieldTitle, Direction: Desc},
}

func ParseSortKey(s string) (SortKey, bool) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	_, ok := orders[key]
	return key, ok
}

// OrderFor resolves a sort key. Unknown keys resolve to most recent first.
func OrderFor(key SortKey) Order {
	if o, ok := orders[key]; ok {
		return o
	}
	return orders[SortDateDesc]
}

// Compare returns a negative number when a sorts before b. Equal values fall
// back to id ascending. Listings without a value for the sort field go last
// in either direction.
func (o Order) Compare(a, b models.Listing) int {
	if c := o.compareField(a, b); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func (o Order) compareField(a, b models.Listing) int {
	var c int
	switch o.Field {
	case FieldTitle:
		at, bt := strings.TrimSpace(a.Title), strings.TrimSpace(b.Title)
		if c, absent := nullsLast(at != "", bt != ""); absent {
			return c
		}
		c = cmp.Compare(fold(at), fold(bt))
	case FieldListedAt:
		if c, absent := nullsLast(!a.ListedAt.IsZero(), !b.ListedAt.IsZero()); absent {
			return c
		}
		c = a.ListedAt.Compare(b.ListedAt)
	default:
		av, aok := numericValue(a, o.Field)
		bv, bok := numericValue(b, o.Field)
		if c, absent := nullsLast(aok, bok); absent {
			return c
		}
		c = cmp.Compare(av, bv)
	}
	if o.Direction == Desc {
		c = -c
	}
	return c
}

// nullsLast handles the cases where at least one side has no value.
func nullsLast(aok, bok bool) (int, bool) {
	switch {
	case aok && bok:
		return 0, false
	case !aok && !bok:
		return 0, true
	case !aok:
		return 1, true
	default:
		return -1, true
	}
}

// SortListings sorts ls in place.
func SortListings(ls []models.Listing, o Order) {
	slices.SortFunc(ls, o.Compare)
}
