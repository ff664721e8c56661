package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/listing-search/internal/logger"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics for the agent dashboard
// @Tags metrics
// @Produce json
// @Success 200 {object} repo.Metrics
// @Failure 503 {object} ErrorResponse
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	m, err := metricsRepo.GetDashboardMetrics(r.Context())
	if err != nil {
		log.Error("failed to fetch metrics", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "failed to fetch metrics")
		return
	}
	if err := writeJSON(w, http.StatusOK, m); err != nil {
		log.Error("failed to write JSON response", "error", err)
	}
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
