package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/listing-search/internal/http/handlers"
	"github.com/rogerio-castellano/listing-search/internal/models"
	"github.com/rogerio-castellano/listing-search/internal/repo"
)

func TestDashboardMetricsHandler(t *testing.T) {
	t.Cleanup(clearAllListings)
	seedListings()
	r := newRouter()

	w := get(r, "/metrics/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var m repo.Metrics
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode metrics: %v", err)
	}

	if m.TotalListings != 15 {
		t.Errorf("expected 15 listings, got %d", m.TotalListings)
	}
	if m.ByStatus[models.StatusActive] != 12 {
		t.Errorf("expected 12 active listings, got %d", m.ByStatus[models.StatusActive])
	}
	if m.ByStatus[models.StatusSold] != 1 || m.ByStatus[models.StatusPending] != 1 || m.ByStatus[models.StatusWithdrawn] != 1 {
		t.Errorf("unexpected status breakdown %v", m.ByStatus)
	}
	if m.ByPropertyType[models.PropertyTypeCondo] != 2 {
		t.Errorf("expected 2 condos, got %d", m.ByPropertyType[models.PropertyTypeCondo])
	}

	// Eleven active listings carry a price.
	wantAverage := float64(250000+450000+199999+500000+200000+300000+600000+320000+150000+500001+220000) / 11
	if m.AverageActivePrice == nil || *m.AverageActivePrice != wantAverage {
		t.Errorf("expected average active price %v, got %v", wantAverage, m.AverageActivePrice)
	}
}

func TestDashboardMetricsHandler_Empty(t *testing.T) {
	t.Cleanup(clearAllListings)
	r := newRouter()

	w := get(r, "/metrics/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var m repo.Metrics
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode metrics: %v", err)
	}
	if m.TotalListings != 0 || m.AverageActivePrice != nil {
		t.Errorf("expected empty metrics, got %+v", m)
	}
}

func TestDashboardMetricsHandler_Unavailable(t *testing.T) {
	withBrokenRepo(func() {
		w := get(newRouter(), "/metrics/dashboard")
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}

		var resp handler.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Error != "failed to fetch metrics" {
			t.Errorf("unexpected error message %q", resp.Error)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	w := get(newRouter(), "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %q", resp.Status)
	}
}
