package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"hrportal/internal/domain/attendance"
	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/directory"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/domain/reports"
	"hrportal/internal/platform/config"
	"hrportal/internal/platform/db"
	"hrportal/internal/platform/email"
	"hrportal/internal/platform/metrics"
	"hrportal/internal/transport/http/api"
	attendancehandler "hrportal/internal/transport/http/handlers/attendance"
	authhandler "hrportal/internal/transport/http/handlers/auth"
	directoryhandler "hrportal/internal/transport/http/handlers/directory"
	leavehandler "hrportal/internal/transport/http/handlers/leave"
	notificationhandler "hrportal/internal/transport/http/handlers/notifications"
	reporthandler "hrportal/internal/transport/http/handlers/reports"
	"hrportal/internal/transport/http/middleware"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("dotenv load failed", "err", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("database connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	authService := auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.TokenTTL)
	directoryStore := directory.NewStore(pool)
	leaveService := leave.NewService(leave.NewStore(pool))
	attendanceService := attendance.NewService(attendance.NewStore(pool), directoryStore, leaveService)
	notifyService := notifications.New(notifications.NewStore(pool), email.New(cfg), cfg.EmailEnabled, cfg.EmailFrom)
	reportService := reports.NewService(attendanceService)

	collector := metrics.New()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics(collector))
	}
	r.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	r.Use(middleware.Auth(cfg.JWTSecret))
	// Auth must run first so the limiter can key authenticated traffic by
	// user id instead of lumping everyone behind one NAT into one bucket.
	r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, map[string]string{"status": "ok"}, middleware.GetRequestID(r.Context()))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			api.Fail(w, http.StatusServiceUnavailable, "not_ready", "database unreachable", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, map[string]string{"status": "ready"}, middleware.GetRequestID(r.Context()))
	})
	if cfg.MetricsEnabled {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	r.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)
		leavehandler.NewHandler(leaveService, notifyService, directoryStore).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceService, notifyService).RegisterRoutes(r)
		directoryhandler.NewHandler(directoryStore).RegisterRoutes(r)
		notificationhandler.NewHandler(notifyService).RegisterRoutes(r)
		reporthandler.NewHandler(reportService).RegisterRoutes(r)
	})

	if cfg.FrontendDir != "" {
		r.NotFound(spaHandler(cfg.FrontendDir))
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "err", err)
	}
}

// spaHandler serves the built frontend, falling back to index.html for
// client-side routes. API paths never reach here because chi matches them
// first.
func spaHandler(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
			return
		}
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}
}
