package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dayflow/internal/domain/account"
	"dayflow/internal/domain/attendance"
	"dayflow/internal/domain/audit"
	"dayflow/internal/domain/employee"
	"dayflow/internal/domain/leave"
	"dayflow/internal/domain/notifications"
	"dayflow/internal/domain/payroll"
	"dayflow/internal/platform/config"
	"dayflow/internal/platform/db"
	"dayflow/internal/platform/email"
	"dayflow/internal/platform/metrics"
	"dayflow/internal/transport/http/api"
	attendancehandler "dayflow/internal/transport/http/handlers/attendance"
	audithandler "dayflow/internal/transport/http/handlers/audit"
	authhandler "dayflow/internal/transport/http/handlers/auth"
	employeehandler "dayflow/internal/transport/http/handlers/employee"
	leavehandler "dayflow/internal/transport/http/handlers/leave"
	notificationshandler "dayflow/internal/transport/http/handlers/notifications"
	payrollhandler "dayflow/internal/transport/http/handlers/payroll"
	"dayflow/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New wires configuration, storage, services and the HTTP surface. Callers
// own the returned App and must Close it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	app := &App{Config: cfg, DB: pool, Metrics: metrics.New()}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) buildRouter() http.Handler {
	cfg := a.Config
	pool := a.DB

	mailer := email.New(cfg)

	employeeStore := employee.NewStore(pool)
	accountStore := account.NewStore(pool)
	attendanceStore := attendance.NewStore(pool)
	leaveStore := leave.NewStore(pool)
	payrollStore := payroll.NewStore(pool)

	notifySvc := notifications.New(pool)
	auditSvc := audit.New(pool)
	accountSvc := account.NewService(accountStore, employeeStore, mailer, cfg.EmailFrom)
	employeeSvc := employee.NewService(employeeStore)
	attendanceSvc := attendance.NewService(attendanceStore, cfg.LateAfter)
	leaveSvc := leave.NewService(leaveStore, notifySvc)
	payrollSvc := payroll.NewService(payrollStore, notifySvc)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProd()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

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

	router.With(middleware.RequireAdmin).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(accountSvc, employeeSvc, auditSvc, cfg).RegisterRoutes(r)
		employeehandler.NewHandler(employeeSvc, auditSvc).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceSvc, employeeSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, employeeSvc, auditSvc).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollSvc, employeeSvc, auditSvc).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
	})

	return router
}

// Run serves until the context is cancelled or an interrupt arrives, then
// drains in-flight requests before returning.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("dayflow server listening on %s", a.Config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
