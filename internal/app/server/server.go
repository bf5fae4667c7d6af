package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"jscorphr/internal/domain/attendance"
	"jscorphr/internal/domain/audit"
	"jscorphr/internal/domain/auth"
	"jscorphr/internal/domain/evaluation"
	"jscorphr/internal/domain/leave"
	"jscorphr/internal/domain/org"
	"jscorphr/internal/domain/payroll"
	"jscorphr/internal/platform/config"
	"jscorphr/internal/platform/crypto"
	"jscorphr/internal/platform/db"
	"jscorphr/internal/platform/metrics"
	"jscorphr/internal/transport/http/api"
	attendancehandler "jscorphr/internal/transport/http/handlers/attendance"
	audithandler "jscorphr/internal/transport/http/handlers/audit"
	authhandler "jscorphr/internal/transport/http/handlers/auth"
	evaluationhandler "jscorphr/internal/transport/http/handlers/evaluation"
	leavehandler "jscorphr/internal/transport/http/handlers/leave"
	orghandler "jscorphr/internal/transport/http/handlers/org"
	payrollhandler "jscorphr/internal/transport/http/handlers/payroll"
	"jscorphr/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	cryptoSvc, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		log.Fatalf("encryption setup failed: %v", err)
	}

	orgStore := org.NewStore(pool)
	scopes := &auth.ScopeResolver{Directory: orgStore}

	authStore := auth.NewStore(pool)
	attendanceStore := attendance.NewStore(pool)
	auditSvc := audit.New(pool)
	payrollSvc := payroll.NewService(payroll.NewStore(pool), cryptoSvc)
	evaluationSvc := evaluation.NewService(evaluation.NewStore(pool), scopes)
	leaveSvc := leave.NewService(leave.NewStore(pool), scopes)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
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

	if collector != nil {
		router.With(middleware.RequirePermission(auth.PermMetricsRead)).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret).RegisterRoutes(r)
		orghandler.NewHandler(orgStore, scopes).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceStore, scopes).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollSvc, scopes, auditSvc).RegisterRoutes(r)
		evaluationhandler.NewHandler(evaluationSvc, scopes, auditSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, scopes, auditSvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
	})

	log.Printf("jscorphr server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
