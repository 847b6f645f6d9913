package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/maisonnoire/searchd/internal/config"
	dbRedis "github.com/maisonnoire/searchd/internal/db/redis"
	logpkg "github.com/maisonnoire/searchd/internal/logger"
	"github.com/maisonnoire/searchd/internal/metrics"
	"github.com/maisonnoire/searchd/internal/repository/catalog"
	engine "github.com/maisonnoire/searchd/internal/search"
	chiTransport "github.com/maisonnoire/searchd/internal/transport/chi"
	healthuc "github.com/maisonnoire/searchd/internal/usecase/health"
	searchuc "github.com/maisonnoire/searchd/internal/usecase/search"
	"github.com/maisonnoire/searchd/internal/version"
)

func main() {
	// Local overrides from .env, ignored when the file is absent.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting searchd API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	// Catalog source wiring
	var (
		source catalog.Source
		pinger healthuc.DBPinger
	)
	switch cfg.Catalog.Source {
	case "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Catalog.Addrs,
			Password: cfg.Catalog.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create catalog store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		if err := store.WaitForReady(ctx, time.Duration(cfg.Catalog.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Catalog store not ready", zap.Error(err))
		}
		logger.Info("Connected to catalog store", zap.Strings("addrs", cfg.Catalog.Addrs))

		source = catalog.NewRedisSource(store, cfg.Catalog.KeyPrefix, logger)
		pinger = store
	case "file":
		source = catalog.NewFileSource(cfg.Catalog.Path)
		logger.Info("Using file catalog source", zap.String("path", cfg.Catalog.Path))
	default:
		logger.Fatal("Unknown catalog source", zap.String("source", cfg.Catalog.Source))
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	snapshot := catalog.NewSnapshot(source, time.Duration(cfg.Catalog.RefreshSec)*time.Second, logger)

	// Warm the snapshot so the first request does not pay the load; a
	// failure here is not fatal, the next request retries.
	if _, err := snapshot.Products(context.Background()); err != nil {
		logger.Warn("Initial catalog load failed", zap.Error(err))
	} else {
		logger.Info("Catalog loaded", zap.Int("products", snapshot.Len()))
	}

	// Create use case services
	searchSvc := searchuc.New(snapshot, engine.NewEngine(engine.DefaultPolicy())).
		WithLimits(searchuc.Options{
			MinScore:   cfg.Search.MinScore,
			MaxResults: cfg.Search.MaxResults,
		}, cfg.Search.MaxLimit)
	// Three missed refresh cycles flip the health check to degraded.
	healthSvc := healthuc.New(pinger, snapshot).
		WithCatalogMaxAge(3 * time.Duration(cfg.Catalog.RefreshSec) * time.Second)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Prefer the client-supplied id so responses can be paired
			// with in-flight requests; fall back to the chi-minted one.
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = chiMiddleware.GetReqID(r.Context())
			}
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.Query().Get("q")),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
