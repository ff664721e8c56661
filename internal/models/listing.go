package models

import (
	"strings"
	"time"
)

type PropertyType string

const (
	PropertyTypeHouse       PropertyType = "house"
	PropertyTypeCondo       PropertyType = "condo"
	PropertyTypeTownhouse   PropertyType = "townhouse"
	PropertyTypeLand        PropertyType = "land"
	PropertyTypeMultiFamily PropertyType = "multi-family"
	PropertyTypeOther       PropertyType = "other"
)

// PropertyTypes lists every known property type in display order.
var PropertyTypes = []PropertyType{
	PropertyTypeHouse,
	PropertyTypeCondo,
	PropertyTypeTownhouse,
	PropertyTypeLand,
	PropertyTypeMultiFamily,
	PropertyTypeOther,
}

// ParsePropertyType matches s case-insensitively against the known types.
// "multifamily" and "multi_family" are accepted for multi-family.
func ParsePropertyType(s string) (PropertyType, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "multifamily", "multi_family":
		return PropertyTypeMultiFamily, true
	}
	for _, t := range PropertyTypes {
		if string(t) == v {
			return t, true
		}
	}
	return "", false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
	StatusWithdrawn Status = "withdrawn"
)

var Statuses = []Status{StatusActive, StatusPending, StatusSold, StatusWithdrawn}

func ParseStatus(s string) (Status, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, st := range Statuses {
		if string(st) == v {
			return st, true
		}
	}
	return "", false
}

// Listing represents one property offered by the brokerage.
// Numeric attributes the source left blank are nil, never zero.
type Listing struct {
	ID           int          `json:"id" db:"id"`
	Title        string       `json:"title" db:"title"`
	Address      string       `json:"address" db:"address"`
	Description  string       `json:"description" db:"description"`
	Price        *float64     `json:"price" db:"price"`
	Bedrooms     *int         `json:"bedrooms" db:"bedrooms"`
	Bathrooms    *float64     `json:"bathrooms" db:"bathrooms"`
	Sqft         *int         `json:"sqft" db:"sqft"`
	PropertyType PropertyType `json:"property_type" db:"property_type"`
	Status       Status       `json:"status" db:"status"`
	ListedAt     time.Time    `json:"listed_at" db:"listed_at"`
	Latitude     *float64     `json:"latitude,omitempty" db:"latitude"`
	Longitude    *float64     `json:"longitude,omitempty" db:"longitude"`
}

// HasLocation reports whether both coordinates are set.
func (l Listing) HasLocation() bool {
	return l.Latitude != nil && l.Longitude != nil
}
