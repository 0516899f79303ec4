package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"taqyim/internal/db"
	"taqyim/internal/domain/evaluation"
	"taqyim/internal/domain/notifications"
	"taqyim/internal/domain/reports"
	"taqyim/internal/domain/settings"
	"taqyim/internal/domain/teacher"
	"taqyim/internal/platform/config"
	"taqyim/internal/platform/email"
	"taqyim/internal/platform/metrics"
	"taqyim/internal/transport/http/api"
	authhandler "taqyim/internal/transport/http/handlers/auth"
	evaluationshandler "taqyim/internal/transport/http/handlers/evaluations"
	notificationshandler "taqyim/internal/transport/http/handlers/notifications"
	reportshandler "taqyim/internal/transport/http/handlers/reports"
	settingshandler "taqyim/internal/transport/http/handlers/settings"
	teachershandler "taqyim/internal/transport/http/handlers/teachers"
	"taqyim/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Hub    *notifications.Hub
	Router http.Handler
}

// New builds a fully wired application from config: pool, optional
// migrations/seed, and the HTTP router. Tests boot the same constructor the
// server runs.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	collector := metrics.New()
	mailer := email.New(cfg)
	hub := notifications.NewHub()

	teacherStore := teacher.NewStore(pool)
	evalStore := evaluation.NewStore(pool)
	settingsStore := settings.NewStore(pool)
	notificationStore := notifications.NewStore(pool)
	teacherService := teacher.NewService(teacherStore)
	reportService := reports.NewService(teacherStore, evalStore)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(limitBody(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(pool, teacherStore, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		teachershandler.NewHandler(teacherService, notificationStore, hub, mailer, cfg.EmailFrom).RegisterRoutes(r)
		evaluationshandler.NewHandler(evalStore, teacherStore, settingsStore, notificationStore, hub).RegisterRoutes(r)
		reportshandler.NewHandler(reportService, settingsStore).RegisterRoutes(r)
		settingshandler.NewHandler(settingsStore).RegisterRoutes(r)
		notificationshandler.NewHandler(notificationStore, hub).RegisterRoutes(r)
	})

	return &App{Config: cfg, DB: pool, Hub: hub, Router: router}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func Run() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	log.Printf("evaluation server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func limitBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
