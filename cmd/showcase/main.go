package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/showcase/internal/config"
	"github.com/kailas-cloud/showcase/internal/db"
	"github.com/kailas-cloud/showcase/internal/db/memory"
	dbRedis "github.com/kailas-cloud/showcase/internal/db/redis"
	logpkg "github.com/kailas-cloud/showcase/internal/logger"
	"github.com/kailas-cloud/showcase/internal/metrics"
	"github.com/kailas-cloud/showcase/internal/repository/catalog"
	"github.com/kailas-cloud/showcase/internal/repository/runlock"
	chiTransport "github.com/kailas-cloud/showcase/internal/transport/chi"
	healthuc "github.com/kailas-cloud/showcase/internal/usecase/health"
	"github.com/kailas-cloud/showcase/internal/usecase/matching"
	"github.com/kailas-cloud/showcase/internal/usecase/retrieval"
	"github.com/kailas-cloud/showcase/internal/usecase/staging"
	"github.com/kailas-cloud/showcase/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting showcase API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("lock_driver", cfg.Lock.Driver),
		zap.Duration("step_delay", cfg.Staging.StepDelay()),
	)

	store, err := newLockStore(cfg.Lock)
	if err != nil {
		logger.Fatal("Failed to create lock store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Lock.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Lock store not ready", zap.Error(err))
	}
	logger.Info("Lock store ready", zap.Strings("addrs", cfg.Lock.Addrs))

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	docs, patients := cat.Counts()
	logger.Info("Catalog loaded",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("documents", docs),
		zap.Int("patients", patients),
	)

	// Register demo metrics explicitly (no init())
	metrics.RegisterDemoMetrics()

	sim := staging.New(staging.SystemClock{}, runlock.New(store), logger).
		WithMetrics(metrics.StagedRunsTotal, metrics.StagedStepDelay).
		WithLockSlack(cfg.Lock.TTL())

	retrievalSvc := retrieval.New(cat, sim, retrieval.Config{
		Steps: cfg.Staging.RetrievalSteps,
		Delay: cfg.Staging.StepDelay(),
		TopK:  cfg.Ranking.TopK,
	}).WithMetrics(metrics.RankingResults.WithLabelValues("word_overlap"), metrics.RetrievalFallbackTotal)

	matchingSvc := matching.New(cat, sim, matching.Config{
		Steps: cfg.Staging.MatchingSteps,
		Delay: cfg.Staging.StepDelay(),
		TopK:  cfg.Ranking.TopK,
	}).WithMetrics(metrics.RankingResults.WithLabelValues("cosine"))

	healthSvc := healthuc.New(store, cat)

	server := chiTransport.NewServer(cat, retrievalSvc, matchingSvc, healthSvc, cfg.Staging.RunTimeout(), logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
			Code:    chiTransport.ErrorCodeNotFound,
			Message: "route not found",
		})
	})
	server.Mount(r)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// newLockStore picks the run-lock backend. Redis and Valkey share the rueidis client.
func newLockStore(cfg config.LockConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.LockMemory:
		return memory.NewStore(), nil
	case config.LockRedis, config.LockValkey:
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
	default:
		return nil, fmt.Errorf("unknown lock driver %q", cfg.Driver)
	}
}

func loadCatalog(cfg config.CatalogConfig) (*catalog.Repository, error) {
	if cfg.Path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.Path)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
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

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("session", r.Header.Get("X-Session-ID")),
				zap.String("accept", r.Header.Get("Accept")),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
