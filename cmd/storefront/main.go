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
	"go.uber.org/zap"

	"github.com/modestbazar/storefront/internal/config"
	"github.com/modestbazar/storefront/internal/db"
	"github.com/modestbazar/storefront/internal/db/memory"
	dbRedis "github.com/modestbazar/storefront/internal/db/redis"
	logpkg "github.com/modestbazar/storefront/internal/logger"
	"github.com/modestbazar/storefront/internal/metrics"
	productrepo "github.com/modestbazar/storefront/internal/repository/product"
	storerepo "github.com/modestbazar/storefront/internal/repository/store"
	"github.com/modestbazar/storefront/internal/seed"
	chiTransport "github.com/modestbazar/storefront/internal/transport/chi"
	wsTransport "github.com/modestbazar/storefront/internal/transport/ws"
	cataloguc "github.com/modestbazar/storefront/internal/usecase/catalog"
	checkoutuc "github.com/modestbazar/storefront/internal/usecase/checkout"
	healthuc "github.com/modestbazar/storefront/internal/usecase/health"
	recommenduc "github.com/modestbazar/storefront/internal/usecase/recommend"
	storeuc "github.com/modestbazar/storefront/internal/usecase/store"
	"github.com/modestbazar/storefront/internal/version"
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

	logger.Info("Starting storefront API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Create database store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case config.DriverRedis:
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
	case config.DriverMemory:
		store = memory.NewStore()
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register catalog metrics explicitly (no init())
	metrics.RegisterCatalogMetrics()

	// Repositories and services
	catalogSvc := cataloguc.New(productrepo.New(store, cfg.Storage.KeyPrefix), logger)
	directory := storeuc.New(storerepo.New(store, cfg.Storage.KeyPrefix), logger)
	if err := bootstrap(ctx, cfg.Catalog, catalogSvc, directory); err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	logger.Info("Catalog ready",
		zap.Bool("seeded", cfg.Catalog.Seed),
		zap.Int("products", catalogSvc.Count()),
	)

	recommendSvc := recommenduc.NewService(catalogSvc, cfg.Filters.SimilarLimit)
	checkoutSvc := checkoutuc.New(catalogSvc, cfg.Checkout.WhatsAppPhone)
	healthSvc := healthuc.New(store, catalogSvc)

	// Create chi server
	server := chiTransport.NewServer(catalogSvc, directory, recommendSvc, checkoutSvc, healthSvc, logger)
	sessions := wsTransport.NewHandler(catalogSvc, directory,
		wsTransport.WithDebounce(time.Duration(cfg.Filters.DebounceMs)*time.Millisecond),
		wsTransport.WithEditRate(cfg.Filters.EditsPerSecond, cfg.Filters.EditBurst),
		wsTransport.WithOriginPatterns(cfg.HTTP.AllowedOrigins...),
		wsTransport.WithLogger(logger),
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r, chiTransport.OwnerAuthMiddleware(cfg.Auth.OwnerTokens))
	r.Method(http.MethodGet, "/ws/catalog", sessions)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "bad_request", "method not allowed")
	})

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

// bootstrap either writes the embedded demo data or loads what storage holds.
func bootstrap(ctx context.Context, cfg config.CatalogConfig, catalog *cataloguc.Service, stores *storeuc.Directory) error {
	if cfg.Seed {
		return seed.New().Apply(ctx, catalog, stores)
	}
	if err := catalog.Load(ctx); err != nil {
		return err
	}
	return stores.Load(ctx)
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
					writeJSONError(w, http.StatusInternalServerError, "internal_error", "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
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
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
