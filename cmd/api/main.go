// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/carterperez-dev/wedding-backend/internal/admin"
	"github.com/carterperez-dev/wedding-backend/internal/asset"
	"github.com/carterperez-dev/wedding-backend/internal/auth"
	"github.com/carterperez-dev/wedding-backend/internal/catalog"
	"github.com/carterperez-dev/wedding-backend/internal/config"
	"github.com/carterperez-dev/wedding-backend/internal/core"
	"github.com/carterperez-dev/wedding-backend/internal/health"
	"github.com/carterperez-dev/wedding-backend/internal/middleware"
	"github.com/carterperez-dev/wedding-backend/internal/order"
	"github.com/carterperez-dev/wedding-backend/internal/server"
	"github.com/carterperez-dev/wedding-backend/internal/siteprofile"
	"github.com/carterperez-dev/wedding-backend/internal/user"
)

const (
	drainDelay = 5 * time.Second

	// profile forms carry up to ten images plus text fields
	maxImagesPerRequest = 11
	formOverhead        = 1 << 20
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
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	storage, err := asset.NewStorage(ctx, cfg.Uploads)
	if err != nil {
		return err
	}
	assets := asset.NewManager(storage, asset.ManagerConfig{
		URLPrefix:    cfg.Uploads.URLPrefix,
		BaseURL:      cfg.Uploads.BaseURL(cfg.Server),
		MaxSize:      cfg.Uploads.MaxSize,
		AllowedTypes: cfg.Uploads.AllowedTypes,
	}, logger)
	logger.Info("upload storage ready",
		"driver", cfg.Uploads.Driver,
		"max_size", cfg.Uploads.MaxSize,
	)

	userSvc := user.NewService(user.NewRepository(db.DB))
	authSvc := auth.NewService(
		jwtManager,
		userSvc,
		auth.NewRedisBlacklist(redis.Client),
		logger,
	)
	authHandler := auth.NewHandler(authSvc, auth.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.IsProduction(),
	})

	catalogSvc := catalog.NewService(catalog.NewRepository(db.DB), assets, logger)
	orderSvc := order.NewService(
		order.NewRepository(db.DB),
		order.Policy{AllowRollback: cfg.Orders.AllowStatusRollback},
		logger,
	)
	profileSvc := siteprofile.NewService(
		siteprofile.NewRepository(db.DB),
		assets,
		logger,
	)

	reconciler := asset.NewReconciler(
		assets,
		cfg.Uploads.OrphanGrace,
		logger,
		catalogSvc,
		profileSvc,
	)
	if err := reconciler.Start(cfg.Uploads.ReconcileSchedule); err != nil {
		return err
	}

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
		health.Dependency{Name: "uploads", Checker: assets},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Orders:     orderSvc,
		Packages:   catalogSvc,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Logger:     logger,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	globalLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		},
	)
	defer globalLimiter.Close()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(globalLimiter.Handler)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc, cfg.Session.CookieName)
	loginLimiter := middleware.Throttle(
		cfg.RateLimit.LoginRequests,
		cfg.RateLimit.LoginWindow,
	)
	orderLimiter := middleware.Throttle(
		cfg.RateLimit.OrderRequests,
		cfg.RateLimit.OrderWindow,
	)

	router.Route("/api", func(r chi.Router) {
		r.Use(chimw.RequestSize(
			maxImagesPerRequest*cfg.Uploads.MaxSize + formOverhead,
		))

		authHandler.RegisterRoutes(r, authenticator, loginLimiter)
		catalog.NewHandler(catalogSvc).RegisterRoutes(r, authenticator)
		order.NewHandler(orderSvc).RegisterRoutes(r, authenticator, orderLimiter)
		siteprofile.NewHandler(profileSvc).RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator)
	})

	if cfg.Uploads.Driver == config.UploadDriverLocal {
		prefix := cfg.Uploads.URLPrefix
		router.Handle(prefix+"/*", http.StripPrefix(prefix, server.Uploads(cfg.Uploads.Dir)))
	}

	if cfg.Server.StaticDir != "" {
		router.With(middleware.PageGate(middleware.GateConfig{
			Verifier:    authSvc,
			CookieName:  cfg.Session.CookieName,
			LoginPath:   cfg.Session.LoginPath,
			LandingPath: cfg.Session.LandingPath,
		})).Handle("/*", server.StaticSite(cfg.Server.StaticDir))
		logger.Info("serving static site", "dir", cfg.Server.StaticDir)
	}

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

	reconciler.Stop(shutdownCtx)

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
