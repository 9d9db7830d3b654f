package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/helpware/faqdex/internal/config"
	dbRedis "github.com/helpware/faqdex/internal/db/redis"
	"github.com/helpware/faqdex/internal/index"
	logpkg "github.com/helpware/faqdex/internal/logger"
	"github.com/helpware/faqdex/internal/matcher"
	"github.com/helpware/faqdex/internal/metrics"
	"github.com/helpware/faqdex/internal/normalize"
	"github.com/helpware/faqdex/internal/repository/corpus"
	historyrepo "github.com/helpware/faqdex/internal/repository/history"
	chiTransport "github.com/helpware/faqdex/internal/transport/chi"
	chatuc "github.com/helpware/faqdex/internal/usecase/chat"
	healthuc "github.com/helpware/faqdex/internal/usecase/health"
	"github.com/helpware/faqdex/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting faqdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("corpus_path", cfg.Corpus.Path),
		zap.String("history_backend", cfg.History.Backend),
	)

	// Load and fit the FAQ corpus once; queries never mutate the index.
	corp, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err))
	}

	norm := normalize.New(normalize.Strategy(cfg.Normalizer.Strategy), logger)
	vec := index.NewVectorizer().
		WithMaxVocabularySize(cfg.Matcher.MaxVocabularySize).
		WithMinDocFreq(cfg.Matcher.MinDocFreq).
		WithMaxDocFreqRatio(cfg.Matcher.MaxDocFreqRatio)

	m := matcher.New(norm, vec)
	if err := m.Fit(corp.Entries()); err != nil {
		logger.Fatal("Failed to fit corpus", zap.Error(err))
	}

	stats, err := m.Stats()
	if err != nil {
		logger.Fatal("Failed to read corpus stats", zap.Error(err))
	}
	logger.Info("Corpus fitted",
		zap.String("normalizer", string(norm.Strategy())),
		zap.Int("entries", stats.TotalEntries),
		zap.Int("vocabulary", stats.VocabularySize),
	)

	// Register query metrics explicitly (no init())
	metrics.RegisterQueryMetrics()
	metrics.CorpusEntries.Set(float64(stats.TotalEntries))
	metrics.VocabularySize.Set(float64(stats.VocabularySize))

	// Conversation history backend
	ctx := context.Background()
	hist, store, err := buildHistory(ctx, cfg.History, logger)
	if err != nil {
		logger.Fatal("Failed to create history backend", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}
	if n, err := hist.Count(ctx); err == nil {
		metrics.HistoryRecords.Set(float64(n))
	}

	chatSvc := chatuc.New(m, hist, chatConfig(cfg, corp.Meta()), newRand(), logger)

	// Pass nil interface (not typed nil pointer!) when history lives in memory.
	var pinger healthuc.StorePinger
	if store != nil {
		pinger = store
	}
	healthSvc := healthuc.New(m, pinger)

	server := chiTransport.NewServer(chatSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

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

// buildHistory selects the history backend. The returned store is nil for
// the in-memory backend.
func buildHistory(
	ctx context.Context, cfg config.HistoryConfig, logger *zap.Logger,
) (chatuc.History, *dbRedis.Store, error) {
	switch cfg.Backend {
	case "memory":
		return historyrepo.NewMemory(cfg.Cap), nil, nil
	case "valkey", "redis":
	default:
		return nil, nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s store: %w", cfg.Backend, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("%s not ready: %w", cfg.Backend, err)
	}
	logger.Info("Connected to history store", zap.String("backend", cfg.Backend), zap.Strings("addrs", cfg.Addrs))

	repo := historyrepo.New(store, historyrepo.Config{
		Key: cfg.Key,
		Cap: cfg.Cap,
		TTL: time.Duration(cfg.TTLSec) * time.Second,
	})
	return repo, store, nil
}

// chatConfig maps file configuration onto the chat service settings.
func chatConfig(cfg config.Config, meta corpus.Metadata) chatuc.Config {
	weights := make([]chatuc.CategoryWeight, 0, len(cfg.Suggestions.Popular))
	for _, w := range cfg.Suggestions.Popular {
		weights = append(weights, chatuc.CategoryWeight{Category: w.Category, Count: w.Count})
	}

	return chatuc.Config{
		Threshold:   cfg.Matcher.Threshold,
		TopK:        cfg.Matcher.TopK,
		EmptyPrompt: cfg.Suggestions.EmptyPrompt,
		Fallbacks:   cfg.Suggestions.Fallbacks,
		Weights:     weights,
		Domain:      meta.Domain,
		LastUpdated: meta.LastUpdated,
	}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
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

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// One canonical log line per request
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
