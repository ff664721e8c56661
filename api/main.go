package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/listing-search/internal/config"
	"github.com/rogerio-castellano/listing-search/internal/db"
	"github.com/rogerio-castellano/listing-search/internal/events"
	api "github.com/rogerio-castellano/listing-search/internal/http"
	"github.com/rogerio-castellano/listing-search/internal/http/handlers"
	rl "github.com/rogerio-castellano/listing-search/internal/http/rate_limiter"
	"github.com/rogerio-castellano/listing-search/internal/logger"
	"github.com/rogerio-castellano/listing-search/internal/models"
	"github.com/rogerio-castellano/listing-search/internal/redissvc"
	"github.com/rogerio-castellano/listing-search/internal/repo"
	"github.com/rogerio-castellano/listing-search/internal/search"
	"golang.org/x/sync/errgroup"
)

// @title Listing Search API
// @version 1.0
// @description Public search over the brokerage listing archive.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	appLogger, closeLogger, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		AppName:    cfg.AppName,
		FluentHost: cfg.Log.FluentHost,
		FluentPort: cfg.Log.FluentPort,
	})
	if err != nil {
		log.Fatalf("could not initialize logger: %v", err)
	}
	defer closeLogger()
	slog.SetDefault(appLogger)

	if err := run(cfg, appLogger.With("component", "app")); err != nil {
		appLogger.Error("service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, appLogger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listingRepo, metricsRepo, closeSource, err := openDataSource(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer closeSource()

	var cacheOpts []search.ServiceOption
	var pageCache *redissvc.RedisService
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			appLogger.Warn("redis unavailable, page cache disabled", "error", err, "addr", cfg.RedisAddr)
		} else {
			pageCache = redissvc.NewRedisService(rdb, cfg.CacheTTL)
			cacheOpts = append(cacheOpts, search.WithCache(pageCache))
			appLogger.Info("page cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
		}
	}

	activeOpts := search.Options{
		PageSize:        cfg.PageSize,
		MaxPageSize:     cfg.MaxPageSize,
		DefaultSort:     search.SortDateDesc,
		DefaultStatuses: []models.Status{models.StatusActive},
	}
	soldOpts := activeOpts
	soldOpts.DefaultStatuses = []models.Status{models.StatusSold}

	handlers.SetListingRepo(listingRepo)
	handlers.SetMetricsRepo(metricsRepo)
	handlers.SetActiveArchive(search.NewService("active", listingRepo, activeOpts, cacheOpts...))
	handlers.SetSoldArchive(search.NewService("sold", listingRepo, soldOpts, cacheOpts...))

	limiter := rl.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	cleanup, err := limiter.StartCleanup()
	if err != nil {
		return err
	}
	defer cleanup.Stop()

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: api.NewRouter(api.RouterConfig{
			Logger:      slog.Default(),
			Limiter:     limiter,
			CORSOrigins: cfg.CORSOrigins,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("server running", "addr", srv.Addr, "data_source", cfg.DataSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		appLogger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.AMQP.URL != "" && pageCache != nil {
		consumer := events.NewConsumer(events.Config{
			URL:      cfg.AMQP.URL,
			Exchange: cfg.AMQP.Exchange,
			Queue:    cfg.AMQP.Queue,
		}, pageCache, slog.Default())
		g.Go(func() error {
			// Consumer errors do not stop the server; cached pages still expire.
			if err := consumer.Run(gctx); err != nil {
				appLogger.Error("listing event consumer stopped", "error", err)
			}
			return nil
		})
	}

	return g.Wait()
}

func openDataSource(ctx context.Context, cfg config.Config, appLogger *slog.Logger) (repo.ListingRepository, repo.MetricsRepository, func(), error) {
	switch cfg.DataSource {
	case config.DataSourceMemory:
		listingRepo := repo.NewInMemoryListingRepository()
		if cfg.FixturePath != "" {
			listings, err := repo.LoadFixture(cfg.FixturePath)
			if err != nil {
				return nil, nil, nil, err
			}
			listingRepo.Load(listings)
			appLogger.Info("fixture loaded", "path", cfg.FixturePath, "listings", len(listings))
		} else {
			appLogger.Warn("memory data source without FIXTURE_PATH, archive is empty")
		}
		return listingRepo, repo.NewInMemoryMetricsRepository(listingRepo), func() {}, nil
	default:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		appLogger.Info("connected to PostgreSQL")
		if cfg.AutoMigrate {
			if err := db.EnsureSchema(ctx, database); err != nil {
				database.Close()
				return nil, nil, nil, err
			}
		}
		closeFn := func() { database.Close() }
		return repo.NewPostgresListingRepository(database), repo.NewPostgresMetricsRepository(database), closeFn, nil
	}
}
