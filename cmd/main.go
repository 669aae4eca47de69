package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/okian/squadbook/internal/adapters/http/api"
	"github.com/okian/squadbook/internal/adapters/http/site"
	"github.com/okian/squadbook/internal/adapters/http/swagger"
	"github.com/okian/squadbook/internal/adapters/repository"
	service "github.com/okian/squadbook/internal/app"
	"github.com/okian/squadbook/internal/config"
	"github.com/okian/squadbook/pkg/logger"
	"github.com/okian/squadbook/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (.env -> defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := repository.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase,
		repository.WithPlayersCollection(cfg.PlayersCollection),
		repository.WithMatchesCollection(cfg.MatchesCollection),
		repository.WithConnectTimeout(cfg.ConnectTimeout()),
	)
	if err != nil {
		log.Fatal(ctx, "failed to connect to store", logger.String("database", cfg.MongoDatabase), logger.Error(err))
		return
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error(closeCtx, "failed to close store", logger.Error(err))
		}
	}()
	log.Info(ctx, "connected to store", logger.String("database", cfg.MongoDatabase))

	players := store.Players()
	queries := service.NewQueryService(players, service.WithLogger(log.Named("query")))
	submissions := service.NewSubmissionService(players, store.Matches(), service.WithLogger(log.Named("submission")))

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	handler, err := newRouter(ctx, cfg, queries, submissions, store)
	if err != nil {
		log.Fatal(ctx, "failed to build routes", logger.Error(err))
		return
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	log.Info(shutdownCtx, "server stopped")
}

// newRouter assembles middleware and every route group.
func newRouter(ctx context.Context, cfg *config.Config, queries api.Queries, submitter api.Submitter, pinger api.Pinger) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(api.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(api.CORS(cfg.CORSAllowedOrigins))

	swagger.Register(ctx, r)
	api.NewServer(queries, submitter, pinger).Register(ctx, r)

	served, err := site.Register(ctx, r, cfg.StaticDir)
	if err != nil {
		return nil, err
	}
	if served {
		logger.Get().Info(ctx, "serving static files", logger.String("dir", cfg.StaticDir))
	}
	return r, nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Calculate average GC pause time
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
