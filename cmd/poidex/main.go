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

	"github.com/triply-cloud/poidex/internal/catalog"
	"github.com/triply-cloud/poidex/internal/config"
	"github.com/triply-cloud/poidex/internal/db"
	dbMemory "github.com/triply-cloud/poidex/internal/db/memory"
	dbRedis "github.com/triply-cloud/poidex/internal/db/redis"
	"github.com/triply-cloud/poidex/internal/domain"
	"github.com/triply-cloud/poidex/internal/ingest"
	logpkg "github.com/triply-cloud/poidex/internal/logger"
	"github.com/triply-cloud/poidex/internal/metrics"
	"github.com/triply-cloud/poidex/internal/repository/embcache"
	"github.com/triply-cloud/poidex/internal/repository/geoindex"
	chiTransport "github.com/triply-cloud/poidex/internal/transport/chi"
	openaiEnc "github.com/triply-cloud/poidex/internal/transport/openai"
	embeddinguc "github.com/triply-cloud/poidex/internal/usecase/embedding"
	healthuc "github.com/triply-cloud/poidex/internal/usecase/health"
	placeuc "github.com/triply-cloud/poidex/internal/usecase/place"
	searchuc "github.com/triply-cloud/poidex/internal/usecase/search"
	"github.com/triply-cloud/poidex/internal/version"
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

	logger.Info("Starting poidex engine",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Create geo index store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
	case "memory":
		store = dbMemory.NewStore()
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create geo index store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Geo index store not ready", zap.Error(err))
	}
	logger.Info("Connected to geo index store")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	// Startup ETL: entity table + vector file -> catalog + geo set
	cat := mustLoadCatalog(ctx, cfg, store, logger)

	// Encoder chain — composition root
	encoder := buildEncoder(cfg, store, logger)

	geoRepo := geoindex.New(store, cfg.Engine.GeoSet)
	retriever := searchuc.NewRetriever(geoRepo, cat, logger)

	searchSvc := searchuc.New(retriever, encoder, cfg.Engine.AlphaValue(), logger)
	placeSvc := placeuc.New(cat)
	healthSvc := healthuc.New(store, newEncoderHealthChecker(encoder))

	server := chiTransport.NewServer(searchSvc, placeSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
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

// mustLoadCatalog runs the startup ETL and exits on failure.
func mustLoadCatalog(
	ctx context.Context, cfg config.Config, store db.Store, logger *zap.Logger,
) *catalog.Catalog {
	pois, err := ingest.ReadEntities(cfg.Data.EntitiesPath)
	if err != nil {
		logger.Fatal("Failed to read entity table", zap.Error(err))
	}
	logger.Info("Entities loaded", zap.Int("count", len(pois)))

	vectors, err := ingest.ReadVectors(cfg.Data.VectorsPath)
	if err != nil {
		logger.Fatal("Failed to read vector file", zap.Error(err))
	}
	logger.Info("Embeddings loaded", zap.Int("count", len(vectors)))

	cat, err := ingest.BuildCatalog(pois, vectors)
	if err != nil {
		logger.Fatal("Failed to build catalog", zap.Error(err))
	}

	loader := ingest.NewLoader(store, cfg.Engine.GeoSet, cfg.Data.BatchSize, cfg.Data.Workers, logger)
	if err := loader.Load(ctx, cat); err != nil {
		logger.Fatal("Failed to load geo set", zap.Error(err))
	}

	return cat
}

// buildEncoder assembles the decorator chain: OpenAI -> Cached -> Serialized.
func buildEncoder(cfg config.Config, store db.Store, logger *zap.Logger) domain.Encoder {
	var encoder domain.Encoder = openaiEnc.NewEncoder(&openaiEnc.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	if cfg.Embedding.CacheTTLSec > 0 {
		encoder = embcache.New(
			encoder, store,
			time.Duration(cfg.Embedding.CacheTTLSec)*time.Second,
			metrics.EmbeddingCacheTotal, logger,
		)
	}

	// Bound concurrent provider access when configured (outermost).
	if cfg.Embedding.MaxConcurrent > 0 {
		encoder = embeddinguc.NewSerializedEncoder(encoder, cfg.Embedding.MaxConcurrent)
	}

	return encoder
}

// encoderHealthChecker wraps domain.Encoder to implement health.EncoderChecker.
type encoderHealthChecker struct {
	encoder domain.Encoder
}

func newEncoderHealthChecker(encoder domain.Encoder) *encoderHealthChecker {
	return &encoderHealthChecker{encoder: encoder}
}

func (h *encoderHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.encoder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("encoder health check: %w", err)
		}
	}
	return nil
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
						"status": "error",
						"error":  "internal error",
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

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
