package repo

import (
	"fmt"
	"strings"

	"github.com/rogerio-castellano/listing-search/internal/search"
)

const listingColumns = `id, title, address, description, price, bedrooms, bathrooms, sqft, property_type, status, listed_at, latitude, longitude`

var fieldColumns = map[search.Field]string{
	search.FieldTitle:        "title",
	search.FieldAddress:      "address",
	search.FieldDescription:  "description",
	search.FieldPrice:        "price",
	search.FieldBedrooms:     "bedrooms",
	search.FieldBathrooms:    "bathrooms",
	search.FieldSqft:         "sqft",
	search.FieldPropertyType: "property_type",
	search.FieldStatus:       "status",
	search.FieldListedAt:     "listed_at",
}

// queryBuilder collects SQL conditions and their positional arguments.
type queryBuilder struct {
	conditions []string
	args       []any
}

func (qb *queryBuilder) arg(v any) string {
	qb.args = append(qb.args, v)
	return fmt.Sprintf("$%d", len(qb.args))
}

func column(f search.Field) (string, error) {
	col, ok := fieldColumns[f]
	if !ok {
		return "", fmt.Errorf("unknown listing field %q", f)
	}
	return col, nil
}

func (qb *queryBuilder) condition(p search.Predicate) (string, error) {
	switch p := p.(type) {
	case search.Equals:
		col, err := column(p.Field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s", col, qb.arg(p.Value)), nil
	case search.OneOf:
		col, err := column(p.Field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = ANY(%s)", col, qb.arg(p.Values)), nil
	case search.Range:
		col, err := column(p.Field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s BETWEEN %s AND %s", col, qb.arg(p.Min), qb.arg(p.Max)), nil
	case search.GreaterOrEqual:
		col, err := column(p.Field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s >= %s", col, qb.arg(p.Value)), nil
	case search.LessOrEqual:
		col, err := column(p.Field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s <= %s", col, qb.arg(p.Value)), nil
	case search.Contains:
		col, err := column(p.Field)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s ILIKE %s", col, qb.arg("%"+escapeLike(p.Value)+"%")), nil
	case search.AnyOf:
		if len(p.Predicates) == 0 {
			return "FALSE", nil
		}
		parts := make([]string, 0, len(p.Predicates))
		for _, sub := range p.Predicates {
			c, err := qb.condition(sub)
			if err != nil {
				return "", err
			}
			parts = append(parts, c)
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	default:
		return "", fmt.Errorf("unsupported predicate %T", p)
	}
}

// whereClause renders the filter as "WHERE ... AND ..." (empty for no
// predicates) plus its arguments.
func whereClause(f search.Filter) (string, []any, error) {
	qb := &queryBuilder{}
	for _, p := range f.Predicates {
		c, err := qb.condition(p)
		if err != nil {
			return "", nil, err
		}
		qb.conditions = append(qb.conditions, c)
	}
	if len(qb.conditions) == 0 {
		return "", qb.args, nil
	}
	return "WHERE " + strings.Join(qb.conditions, " AND "), qb.args, nil
}

func orderClause(o search.Order) (string, error) {
	col, err := column(o.Field)
	if err != nil {
		return "", err
	}
	if o.Field == search.FieldTitle {
		col = "LOWER(NULLIF(BTRIM(title), ''))"
	}
	dir := "ASC"
	if o.Direction == search.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s NULLS LAST, id ASC", col, dir), nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
