package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"betanalytix/configs"
	"betanalytix/internal/database"
	deliveryhttp "betanalytix/internal/delivery/http"
	"betanalytix/internal/infra"
	"betanalytix/internal/repository"
	"betanalytix/internal/service"
	"betanalytix/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := configs.Load()

	logger, err := infra.NewLogger(cfg.Server.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	var cache *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Fatal("invalid redis URL", zap.Error(err))
		}
		cache = redis.NewClient(opts)
		if err := cache.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, stats cache disabled", zap.Error(err))
			cache = nil
		}
	}

	metrics := infra.NewMetrics()

	profileRepo := repository.NewProfileRepository(db)
	bankrollRepo := repository.NewBankrollRepository(db)
	betRepo := repository.NewBetRepository(db)
	followRepo := repository.NewFollowRepository(db)
	sportRepo := repository.NewSportRepository(db)
	bookmakerRepo := repository.NewBookmakerRepository(db)

	cacheTTL := time.Duration(cfg.Analytics.StatsCacheTTLSeconds) * time.Second
	analytics := service.NewAnalyticsService(betRepo, bankrollRepo, cache, cacheTTL, metrics, logger)
	settlement := service.NewSettlementService(betRepo, analytics, metrics, logger)
	social := service.NewSocialService(profileRepo, bankrollRepo, betRepo, followRepo, cfg.Analytics.PublicStatsIncludePrivate, logger)
	betting := usecase.NewBettingService(betRepo, bankrollRepo, sportRepo, bookmakerRepo, analytics, metrics, logger)

	scheduler := infra.NewScheduler(bankrollRepo, analytics, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	opsServer := infra.StartOpsServer(cfg.Server.OpsPort, func(ctx context.Context) error {
		return db.Ping(ctx)
	})
	logger.Info("ops server listening", zap.String("port", cfg.Server.OpsPort))

	e := deliveryhttp.NewRouter(&deliveryhttp.Handlers{
		Auth:     deliveryhttp.NewAuthHandler(profileRepo),
		Profile:  deliveryhttp.NewProfileHandler(profileRepo),
		Bankroll: deliveryhttp.NewBankrollHandler(bankrollRepo, analytics),
		Bet:      deliveryhttp.NewBetHandler(betting, settlement),
		Social:   deliveryhttp.NewSocialHandler(social),
	})

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("ops server shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
