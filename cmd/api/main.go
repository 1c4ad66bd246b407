// Package main is the entry point for the reputation-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"reputation-service/internal/app/service"
	"reputation-service/internal/config"
	"reputation-service/internal/domain"
	"reputation-service/internal/infra/moderation"
	"reputation-service/internal/infra/postgres"
	"reputation-service/internal/infra/postgres/migrations"
	rediscache "reputation-service/internal/infra/redis"
	"reputation-service/internal/job"
	"reputation-service/internal/logger"
	"reputation-service/internal/transport/httpserver"
	"reputation-service/internal/validator"
	"reputation-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting reputation-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repository
	repo := postgres.NewRepository(db)

	// Create moderation webhook client
	notifier := moderation.New(
		moderation.ClientConfig{
			BaseURL: cfg.Moderation.BaseURL,
			Timeout: cfg.Moderation.Timeout,
			Retry: moderation.RetryConfig{
				MaxAttempts: cfg.Moderation.Retry.MaxAttempts,
				WaitTime:    cfg.Moderation.Retry.WaitTime,
				MaxWaitTime: cfg.Moderation.Retry.MaxWaitTime,
			},
			CB: moderation.CBConfig{
				MaxRequests:  cfg.Moderation.CB.MaxRequests,
				Interval:     cfg.Moderation.CB.Interval,
				Timeout:      cfg.Moderation.CB.Timeout,
				FailureRatio: cfg.Moderation.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Ping Redis to verify connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Create cache implementation (optional, based on config)
	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("cache enabled", zap.String("key_prefix", cfg.Cache.KeyPrefix))
	} else {
		log.Info("cache disabled")
	}

	// Create services
	scoreSvc := service.NewScoreService(
		repo,
		repo,
		cache,
		notifier,
		log.Logger,
		cfg.Scoring.Workers,
		cfg.Scoring.FlagThreshold,
	)
	rankSvc := service.NewRankingService(log.Logger)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:       cfg.App.Port,
			BodyLimit:  1024 * 1024, // 1MB
			Debug:      cfg.App.Debug,
			BatchLimit: cfg.Scoring.BatchSize,
		},
		scoreSvc,
		rankSvc,
		db,
		v,
		log.Logger,
	)

	// Start score scheduler with distributed locking
	scheduler := job.NewScoreScheduler(
		scoreSvc,
		job.ScheduleConfig{
			Interval:  cfg.Scoring.Interval,
			Timeout:   cfg.Scoring.Timeout,
			BatchSize: cfg.Scoring.BatchSize,
			OnStartup: cfg.Scoring.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	scheduler.Start(cfg.Scoring.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		// Stop scheduler
		scheduler.Stop()

		// Shutdown server with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
