package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/weekendwish/compass/internal/catalog"
	"github.com/weekendwish/compass/internal/config"
	"github.com/weekendwish/compass/internal/geocoding"
	"github.com/weekendwish/compass/internal/metrics"
	"github.com/weekendwish/compass/internal/places"
	"github.com/weekendwish/compass/internal/server"
	"github.com/weekendwish/compass/internal/service"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Load the offline catalog once at startup. A dataset that cannot be
	// loaded is fatal; a dataset that is simply not configured leaves the
	// service in online-only mode.
	offline, pool, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to load offline catalog: %v", err)
	}
	if pool != nil {
		defer pool.Close()
	}

	// Create geocoding provider using factory pattern based on configuration.
	// A missing API key degrades to the keyless Nominatim provider; every
	// remote provider carries the static locality table as fallback.
	rateLimit := 50
	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.GeocoderType),
		APIKey:    cfg.GeocoderKey,
		RateLimit: rateLimit,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}

	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.GeocoderType)

	// The online places path is available only when a provider key is set.
	var searcher service.Searcher
	if cfg.PlacesKey != "" {
		placesRateLimit := 10
		searcher = places.NewFoursquareClient(cfg.PlacesKey, placesRateLimit, logger)
		logger.InfoContext(ctx, "Online places provider initialized")
	} else {
		logger.WarnContext(ctx, "No places API key configured, running in offline-only mode")
	}

	// Init the recommendation pipeline.
	recommender := service.NewRecommender(
		logger,
		geoProvider,
		searcher,
		querierOrNil(offline),
		appMetrics,
		cfg.DefaultRadius,
		cfg.MaxResults,
		cfg.RequestTimeout,
	)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	go startServer(ctx, logger, reg, recommender, pool, cfg.Port)

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// loadCatalog constructs the offline catalog from the configured source.
// It returns the catalog (nil when no dataset is configured) and, for the
// Postgres source, the connection pool so the caller can close it and use
// it for health checks.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*catalog.Catalog, *pgxpool.Pool, error) {
	switch cfg.CatalogSource {
	case "postgres":
		connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
			cfg.Database.User, cfg.Database.Password,
			cfg.Database.Host, cfg.Database.Port, cfg.Database.Name,
		)
		pool, err := pgxpool.New(ctx, connString)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to dataset database: %w", err)
		}

		offline, err := catalog.NewFromPostgres(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		return offline, pool, nil
	default:
		if cfg.DatasetPath == "" {
			logger.WarnContext(ctx, "No offline dataset configured, running without catalog fallback")
			return nil, nil, nil
		}

		offline, err := catalog.NewFromCSV(cfg.DatasetPath, logger)
		if err != nil {
			return nil, nil, err
		}

		return offline, nil, nil
	}
}

// querierOrNil avoids handing the recommender a typed nil interface.
func querierOrNil(offline *catalog.Catalog) service.CatalogQuerier {
	if offline == nil {
		return nil
	}
	return offline
}

// startServer starts the HTTP server with the recommendation API,
// health check and metrics endpoints. It listens on the specified port
// and logs the server's status and any errors encountered.
func startServer(
	ctx context.Context,
	logger *slog.Logger,
	reg *prometheus.Registry,
	recommender server.Recommender,
	pool *pgxpool.Pool,
	port int,
) {
	mux := http.NewServeMux()

	api := server.New(logger, recommender)
	api.Register(mux)

	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		logger.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				status, body = http.StatusServiceUnavailable, "DB ping failed"
			}
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			logger.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	logger.InfoContext(ctx, "Starting HTTP server", "port", port)
	readTimeout := 5
	writeTimeout := 30
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.ErrorContext(ctx, "HTTP server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		logger.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return logger
}
