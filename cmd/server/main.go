package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"f1-bets.backend/internal/config"
	"f1-bets.backend/internal/infrastructure/datasources"
	"f1-bets.backend/internal/infrastructure/jobs"
	"f1-bets.backend/internal/infrastructure/repositories"
	"f1-bets.backend/internal/interfaces/http/handlers"
	"f1-bets.backend/internal/interfaces/http/middleware"
	"f1-bets.backend/internal/usecases"
	"f1-bets.backend/pkg/crypto"
	"f1-bets.backend/pkg/jwt"
	"f1-bets.backend/pkg/logger"
	"f1-bets.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = datasources.NewConnection
	runServer  = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer func() { _ = redis.Close() }()
	if redis.Enabled() {
		logger.Info(context.Background(), "Redis initialized")
	} else {
		logger.Info(context.Background(), "Redis disabled, driver cache and idempotency are off")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	logger.Info(context.Background(), "Database connected", zap.String("driver", cfg.Database.Driver))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := newServices(cfg, db)
	r := newRouter(cfg, db, registry, svc)
	for _, route := range r.Routes() {
		logger.Debug(context.Background(), "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if redis.Enabled() && cfg.Redis.DriverCacheTTL > 0 && cfg.Redis.DriverCacheRefresh > 0 {
		catalogJob := jobs.NewDriverCatalogRefreshJob(svc.drivers, cfg.Redis.DriverCacheRefresh)
		go catalogJob.Start(ctx)
		defer catalogJob.Stop()
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- runServer(srv) }()

	logger.Info(context.Background(), "F1 bets backend starting", zap.String("port", cfg.Server.Port))

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

type services struct {
	jwt     *jwt.JWTService
	auth    *usecases.AuthUsecase
	drivers *usecases.DriverUsecase
	bets    *usecases.BetUsecase
}

// newServices wires the store into the use cases
func newServices(cfg *config.Config, db *gorm.DB) services {
	hasher := crypto.NewHasher(cfg.Security.PasswordHashIterations)
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	userRepo := repositories.NewUserRepository(db)
	driverRepo := repositories.NewDriverRepository(db)
	betRepo := repositories.NewBetRepository(db)
	uow := repositories.NewUnitOfWork(db)

	return services{
		jwt:     jwtService,
		auth:    usecases.NewAuthUsecase(userRepo, uow, hasher, jwtService),
		drivers: usecases.NewDriverUsecase(driverRepo, cfg.Redis.DriverCacheTTL),
		bets:    usecases.NewBetUsecase(betRepo, userRepo, driverRepo, uow),
	}
}

// newRouter mounts middleware and handlers on one gin engine
func newRouter(cfg *config.Config, db *gorm.DB, registry *prometheus.Registry, svc services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(middleware.NewHTTPMetrics(registry)))
	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)

	registerHealthRoute(r, db)
	registerMetricsRoute(r, registry)
	registerRoutes(r, routeDeps{
		authHandler:    handlers.NewAuthHandler(svc.auth),
		driverHandler:  handlers.NewDriverHandler(svc.drivers),
		betHandler:     handlers.NewBetHandler(svc.bets),
		authMiddleware: middleware.OptionalAuthMiddleware(svc.jwt),
		idempotency:    middleware.IdempotencyMiddleware(cfg.Redis.IdempotencyTTL),
	})
	return r
}
