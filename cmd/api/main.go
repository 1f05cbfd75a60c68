// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/petshop-backend/internal/admin"
	"github.com/carterperez-dev/petshop-backend/internal/appointment"
	"github.com/carterperez-dev/petshop-backend/internal/auth"
	"github.com/carterperez-dev/petshop-backend/internal/catalog"
	"github.com/carterperez-dev/petshop-backend/internal/config"
	"github.com/carterperez-dev/petshop-backend/internal/contact"
	"github.com/carterperez-dev/petshop-backend/internal/core"
	"github.com/carterperez-dev/petshop-backend/internal/health"
	"github.com/carterperez-dev/petshop-backend/internal/middleware"
	"github.com/carterperez-dev/petshop-backend/internal/order"
	"github.com/carterperez-dev/petshop-backend/internal/seed"
	"github.com/carterperez-dev/petshop-backend/internal/server"
	"github.com/carterperez-dev/petshop-backend/internal/user"
	"github.com/carterperez-dev/petshop-backend/migrations"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		applied, migErr := core.Migrate(ctx, db.DB, migrations.FS)
		if migErr != nil {
			return migErr
		}
		logger.Info("migrations applied", "count", len(applied))
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	metrics := core.NewMetrics()
	hasher := core.NewPasswordHasher(core.DefaultArgonParams)
	cookies := auth.NewCookieJar(cfg.Session)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, hasher)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(
		authRepo,
		userSvc,
		hasher,
		cookies,
		cfg.Session.TTL,
		metrics,
	)
	authHandler := auth.NewHandler(authSvc, cookies)

	catalogSvc := catalog.NewService(
		catalog.NewProductRepository(db.DB),
		catalog.NewServiceRepository(db.DB),
	)
	catalogHandler := catalog.NewHandler(catalogSvc)

	orderSvc := order.NewService(order.NewRepository(db.DB), catalogSvc, metrics)
	orderHandler := order.NewHandler(orderSvc)

	appointmentSvc := appointment.NewService(
		appointment.NewRepository(db.DB),
		catalogSvc,
		metrics,
	)
	appointmentHandler := appointment.NewHandler(appointmentSvc)

	contactSvc := contact.NewService(contact.NewRepository(db.DB), metrics)
	contactHandler := contact.NewHandler(contactSvc)

	if cfg.Seed.Enabled {
		res, seedErr := seed.New(userSvc, catalogSvc).Run(ctx, cfg.Seed)
		if seedErr != nil {
			return seedErr
		}
		if res.GeneratedPassword != "" {
			fmt.Fprintf(os.Stderr,
				"generated password for %s: %s\nchange it after first login\n",
				cfg.Seed.AdminEmail, res.GeneratedPassword,
			)
		}
	}

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Store: admin.StoreCounters{
			Products:            catalogSvc.CountProducts,
			Orders:              orderSvc.Count,
			PendingAppointments: appointmentSvc.CountPending,
			Users:               userSvc.Count,
			Contacts:            contactSvc.Count,
			Revenue:             orderSvc.Revenue,
		},
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		router.Use(middleware.Metrics(metrics))
	}
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			Scope:    "global",
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	strictLimit := middleware.PerMinute(
		cfg.RateLimit.LoginRequests,
		cfg.RateLimit.LoginBurst,
	)
	loginLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit:    strictLimit,
			Scope:    "login",
			KeyFunc:  middleware.KeyByUserAndEndpoint,
			FailOpen: true,
		},
	).Handler
	contactLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit:    strictLimit,
			Scope:    "contact",
			KeyFunc:  middleware.KeyByUserAndEndpoint,
			FailOpen: true,
		},
	).Handler

	requireAuth := middleware.RequireAuth
	adminOnly := middleware.RequireAdmin

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.LoadIdentity(authSvc))

		authHandler.RegisterRoutes(r, loginLimiter, requireAuth)
		catalogHandler.RegisterRoutes(r, adminOnly)
		orderHandler.RegisterRoutes(r, requireAuth)
		appointmentHandler.RegisterRoutes(r, adminOnly)
		contactHandler.RegisterRoutes(r, contactLimiter, adminOnly)
		userHandler.RegisterAdminRoutes(r, adminOnly)
		adminHandler.RegisterRoutes(r, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
