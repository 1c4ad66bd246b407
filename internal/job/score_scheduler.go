// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"reputation-service/internal/app/service"
	"reputation-service/pkg/locker"
)

// ScoreScheduler runs the periodic score recompute batch with distributed
// locking so only one instance scores at a time.
type ScoreScheduler struct {
	scoreService *service.ScoreService
	interval     time.Duration
	timeout      time.Duration
	batchSize    int
	logger       *zap.Logger
	locker       locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// ScheduleConfig holds score scheduler configuration.
type ScheduleConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	BatchSize int
	OnStartup bool
}

// NewScoreScheduler creates a new ScoreScheduler with distributed locking
// support.
func NewScoreScheduler(
	scoreSvc *service.ScoreService,
	cfg ScheduleConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *ScoreScheduler {
	return &ScoreScheduler{
		scoreService: scoreSvc,
		interval:     cfg.Interval,
		timeout:      cfg.Timeout,
		batchSize:    cfg.BatchSize,
		logger:       logger,
		locker:       locker,
	}
}

// Start begins the background scoring job.
func (s *ScoreScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting score scheduler",
		zap.Duration("interval", s.interval),
		zap.Int("batch_size", s.batchSize),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *ScoreScheduler) Stop() {
	s.logger.Info("stopping score scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("score scheduler stopped")
}

// run is the main loop of the scheduler.
func (s *ScoreScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.executeBatch()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeBatch()
		}
	}
}

// executeBatch runs one profile and one post recompute pass under the
// distributed lock.
//
// Locking behavior:
//   - Lock TTL = interval duration (cooldown model, not timeout)
//   - Success: Lock held for full interval to prevent duplicate batches
//   - Failure: Lock released immediately to allow retry by another instance
func (s *ScoreScheduler) executeBatch() {
	const lockKey = "score:scheduler:lock"

	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is running the batch, skipping execution")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	hasError := false

	profiles, err := s.scoreService.RecomputeProfiles(ctx, s.batchSize)
	if err != nil {
		hasError = true
		s.logger.Error("profile batch failed", zap.Error(err))
	} else if profiles.Failed > 0 {
		hasError = true
	}

	posts, err := s.scoreService.RecomputePosts(ctx, s.batchSize)
	if err != nil {
		hasError = true
		s.logger.Error("post batch failed", zap.Error(err))
	} else if posts.Failed > 0 {
		hasError = true
	}

	if hasError {
		// Release lock immediately on error (allow immediate retry)
		if err := s.locker.Release(s.ctx, lockKey); err != nil {
			s.logger.Error("failed to release lock after batch error", zap.Error(err))
		}
		s.logger.Info("batch completed with errors, lock released for retry")

		return
	}

	// Lock expires naturally after interval (cooldown period)
	s.logger.Info("batch completed successfully, lock held for cooldown",
		zap.Int("profiles_processed", profiles.Processed),
		zap.Int("posts_processed", posts.Processed),
		zap.Duration("cooldown", s.interval),
	)
}
