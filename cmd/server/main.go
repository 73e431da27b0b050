package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/simpletask/backend/api/handler"
	"github.com/simpletask/backend/domain"
	"github.com/simpletask/backend/internal/config"
	"github.com/simpletask/backend/internal/infrastructure/monitor"
	pgInfra "github.com/simpletask/backend/internal/infrastructure/postgres"
	redisInfra "github.com/simpletask/backend/internal/infrastructure/redis"
	"github.com/simpletask/backend/internal/middleware"
	"github.com/simpletask/backend/internal/router"
	"github.com/simpletask/backend/internal/services/lifecycle"
	"github.com/simpletask/backend/pkg/httpcontext"
	"github.com/simpletask/backend/pkg/logger"
	"github.com/simpletask/backend/repository"
	boltRepo "github.com/simpletask/backend/repository/bolt"
	pgRepo "github.com/simpletask/backend/repository/postgres"
	authUC "github.com/simpletask/backend/usecase/auth"
	taskUC "github.com/simpletask/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	mon := monitor.New(10*time.Second, zapLogger)

	var taskRepo repository.TaskRepository
	switch cfg.Database.Driver {
	case config.DriverBolt:
		store, err := boltRepo.Open(cfg.Database.BoltPath)
		if err != nil {
			zapLogger.Fatal("failed to open bolt store", zap.Error(err))
		}
		manager.Register("bolt", func(ctx context.Context) error {
			return store.Close()
		})
		mon.Register("bolt", time.Second, func(context.Context) error {
			return store.Ping()
		})
		taskRepo = store

	default:
		if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
			zapLogger.Fatal("migrations failed", zap.Error(err))
		}

		pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
		if err != nil {
			zapLogger.Fatal("postgres connection failed", zap.Error(err))
		}
		manager.Register("postgres", func(ctx context.Context) error {
			pool.Close()
			return nil
		})
		mon.Register("postgresql", 3*time.Second, pool.Ping)
		taskRepo = pgRepo.NewTaskRepository(pool)
	}

	var loginLimit router.Middleware
	if cfg.RateLimit.Enabled {
		redisClient, err := redisInfra.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		mon.Register("redis", 2*time.Second, func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})

		limiter := redisInfra.NewSlidingWindowLimiter(redisClient, "login:", cfg.RateLimit.Limit, cfg.RateLimit.Window)
		loginLimit = middleware.RateLimit(limiter, zapLogger)
	}

	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	identity := domain.User{ID: "1", Email: cfg.Auth.Email}

	var scheme authUC.TokenScheme
	switch cfg.Auth.Scheme {
	case config.SchemeSigned:
		scheme = authUC.NewSignedScheme(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTTTL)
	default:
		scheme = authUC.NewStaticScheme(cfg.Auth.Token, identity)
	}

	authUseCase := authUC.New(authUC.Credentials{
		Email:    cfg.Auth.Email,
		Password: cfg.Auth.Password,
	}, identity, scheme, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	sessionAuth := middleware.SessionAuth(authUseCase, zapLogger)
	r := router.New(handlers, sessionAuth, loginLimit)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
