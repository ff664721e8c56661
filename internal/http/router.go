package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/rogerio-castellano/listing-search/docs"
	"github.com/rogerio-castellano/listing-search/internal/http/handlers"
	rl "github.com/rogerio-castellano/listing-search/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type RouterConfig struct {
	Logger *slog.Logger
	// Limiter is optional; nil disables rate limiting.
	Limiter     *rl.Limiter
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", traceHeader},
		ExposedHeaders: []string{traceHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", handlers.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(cfg.Limiter.Middleware)
		}
		r.Route("/listings", func(r chi.Router) {
			r.Get("/", handlers.SearchListingsHandler)
			r.Get("/sold", handlers.SearchSoldListingsHandler)
			r.Get("/{id}", handlers.GetListingByIDHandler)
		})
		r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
	})

	return r
}
