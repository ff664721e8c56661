package handlers

import (
	"time"

	"github.com/mmcloughlin/geohash"
	"github.com/rogerio-castellano/listing-search/internal/models"
	"github.com/rogerio-castellano/listing-search/internal/search"
)

const mapGeohashPrecision = 7

type ListingResponse struct {
	Id           int      `json:"id"`
	Title        string   `json:"title"`
	Address      string   `json:"address"`
	Description  string   `json:"description,omitempty"`
	Price        *float64 `json:"price"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *float64 `json:"bathrooms"`
	Sqft         *int     `json:"sqft"`
	PropertyType string   `json:"property_type"`
	Status       string   `json:"status"`
	ListedAt     string   `json:"listed_at,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Geohash      string   `json:"geohash,omitempty"`
}

type Meta struct {
	TotalCount int    `json:"total_count"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Sort       string `json:"sort"`
	View       string `json:"view"`
}

type ListingsSearchResult struct {
	Data []ListingResponse `json:"data"`
	Meta Meta              `json:"meta"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func toListingResponse(l models.Listing, view search.ViewMode) ListingResponse {
	resp := ListingResponse{
		Id:           l.ID,
		Title:        l.Title,
		Address:      l.Address,
		Description:  l.Description,
		Price:        l.Price,
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		Sqft:         l.Sqft,
		PropertyType: string(l.PropertyType),
		Status:       string(l.Status),
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
	}
	if !l.ListedAt.IsZero() {
		resp.ListedAt = l.ListedAt.UTC().Format(time.RFC3339)
	}
	if view == search.ViewMap && l.HasLocation() {
		resp.Geohash = geohash.EncodeWithPrecision(*l.Latitude, *l.Longitude, mapGeohashPrecision)
	}
	return resp
}

func toSearchResult(page search.ResultPage) ListingsSearchResult {
	result := ListingsSearchResult{
		Data: make([]ListingResponse, len(page.Listings)),
		Meta: Meta{
			TotalCount: page.TotalMatches,
			TotalPages: page.TotalPages,
			Page:       page.Page,
			PerPage:    page.PageSize,
			Sort:       string(page.Sort),
			View:       string(page.View),
		},
	}
	for i, l := range page.Listings {
		result.Data[i] = toListingResponse(l, page.View)
	}
	return result
}
