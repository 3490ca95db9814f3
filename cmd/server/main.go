package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/evenup/evenup/internal/adapter/http"
	"github.com/evenup/evenup/internal/adapter/http/handler"
	"github.com/evenup/evenup/internal/adapter/http/middleware"
	postgresRepo "github.com/evenup/evenup/internal/adapter/repository/postgres"
	redisRepo "github.com/evenup/evenup/internal/adapter/repository/redis"
	"github.com/evenup/evenup/internal/infrastructure/auth"
	"github.com/evenup/evenup/internal/infrastructure/config"
	"github.com/evenup/evenup/internal/infrastructure/eventpublisher"
	"github.com/evenup/evenup/internal/infrastructure/logger"
	"github.com/evenup/evenup/internal/infrastructure/metrics"
	"github.com/evenup/evenup/internal/infrastructure/postgres"
	"github.com/evenup/evenup/internal/infrastructure/redis"
	"github.com/evenup/evenup/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	groupRepo := postgresRepo.NewGroupRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	settlementRepo := postgresRepo.NewSettlementRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	retrier := postgresRepo.NewRetrier(log)
	idGen := postgresRepo.NewULIDGenerator()
	codeGen := postgresRepo.NewCodeGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Use cases
	balanceUC := usecase.NewBalanceUseCase(groupRepo, expenseRepo, settlementRepo, cache, m)
	groupUC := usecase.NewGroupUseCase(groupRepo, balanceUC, auditRepo, idGen, codeGen, m)
	expenseUC := usecase.NewExpenseUseCase(txManager, groupRepo, expenseRepo, outboxRepo, auditRepo, balanceUC, idGen, m)
	settlementUC := usecase.NewSettlementUseCase(txManager, groupRepo, expenseRepo, settlementRepo, outboxRepo, auditRepo, balanceUC, idGen, m)
	analyticsUC := usecase.NewAnalyticsUseCase(groupRepo, expenseRepo)

	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		GroupHandler:      handler.NewGroupHandler(groupUC),
		ExpenseHandler:    handler.NewExpenseHandler(expenseUC),
		SettlementHandler: handler.NewSettlementHandler(settlementUC),
		BalanceHandler:    handler.NewBalanceHandler(balanceUC),
		AnalyticsHandler:  handler.NewAnalyticsHandler(analyticsUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  idempotencyStore,
		JWTManager:        jwtManager,
		RequireAuth:       cfg.JWTRequired,
		RateLimiter:       rateLimiter,
		Logger:            log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(log),
		Retrier:    retrier,
		Logger:     log,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})
	go func() {
		if err := publisher.Start(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	if rateLimiter != nil {
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-workerCtx.Done():
					return
				case <-ticker.C:
					rateLimiter.CleanupLimiters()
				}
			}
		}()
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
