package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/campusboard/backend/api/handler"
	"github.com/campusboard/backend/internal/config"
	"github.com/campusboard/backend/internal/infrastructure/journal"
	"github.com/campusboard/backend/internal/infrastructure/monitor"
	pgInfra "github.com/campusboard/backend/internal/infrastructure/postgres"
	redisInfra "github.com/campusboard/backend/internal/infrastructure/redis"
	"github.com/campusboard/backend/internal/middleware"
	"github.com/campusboard/backend/internal/prefetch"
	"github.com/campusboard/backend/internal/router"
	"github.com/campusboard/backend/internal/services"
	"github.com/campusboard/backend/internal/services/lifecycle"
	"github.com/campusboard/backend/pkg/httpcontext"
	"github.com/campusboard/backend/pkg/logger"
	"github.com/campusboard/backend/repository"
	"github.com/campusboard/backend/repository/memory"
	"github.com/campusboard/backend/repository/postgres"
	redisRepo "github.com/campusboard/backend/repository/redis"
	authUC "github.com/campusboard/backend/usecase/auth"
	dashboardUC "github.com/campusboard/backend/usecase/dashboard"
	"github.com/campusboard/backend/usecase/fetcher"
	"github.com/campusboard/backend/usecase/membership"
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

	var (
		pool        *pgxpool.Pool
		recordStore repository.RecordStore
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		zapLogger.Info("using in-memory record store")
		recordStore = memory.NewStore()
	default:
		if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
			zapLogger.Fatal("migrations failed", zap.Error(err))
		}
		pool, err = pgInfra.NewPool(appCtx, cfg.Store, zapLogger)
		if err != nil {
			zapLogger.Fatal("postgres connection failed", zap.Error(err))
		}
		manager.Register("postgres", func(ctx context.Context) error {
			pool.Close()
			return nil
		})
		recordStore = postgres.NewRecordStore(pool)
	}

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	journalStore, err := journal.Open(cfg.Journal.Path, "journal")
	if err != nil {
		zapLogger.Fatal("failed to open operation journal", zap.Error(err))
	}
	manager.Register("journal", func(ctx context.Context) error {
		return journalStore.Close()
	})

	mon := monitor.New(pool, redisClient, journalStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	recorder := services.NewJournalRecorder(journalStore, zapLogger)

	sweeper := services.NewJournalSweeper(journalStore, zapLogger, services.SweeperConfig{
		Interval:  cfg.Journal.SweepInterval,
		Retention: time.Duration(cfg.Journal.RetentionHours) * time.Hour,
	})
	sweeper.Start()
	manager.Register("journal_sweeper", func(ctx context.Context) error {
		sweeper.Stop(ctx)
		return nil
	})

	sessionRepo := redisRepo.NewSessionRepository(redisClient, 24*time.Hour)

	fetchService := fetcher.New(recordStore, zapLogger)
	membershipUseCase := membership.New(recordStore, recorder, zapLogger)
	warmer := prefetch.New(cfg.Prefetch.BatchSize, cfg.Prefetch.Interval, zapLogger)
	dashboardUseCase := dashboardUC.New(fetchService, membershipUseCase, warmer, zapLogger)
	authUseCase := authUC.New(recordStore, sessionRepo, cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:       apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, time.Hour),
		Profile:    apiHandler.NewProfileHandler(dashboardUseCase, ctxAdapter, zapLogger),
		Program:    apiHandler.NewProgramHandler(dashboardUseCase, ctxAdapter, zapLogger),
		Membership: apiHandler.NewMembershipHandler(dashboardUseCase, ctxAdapter, zapLogger),
		Health:     apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

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
