// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"reputation-service/internal/domain"
)

const (
	profileScoreCachePrefix = "score:profile:"
	postScoreCachePrefix    = "score:post:"
	scoreCacheTTL           = 15 * time.Minute
)

// ScoreService orchestrates batch and on-demand score computation.
type ScoreService struct {
	signals       domain.SignalRepository
	scores        domain.ScoreRepository
	cache         domain.Cache
	notifier      domain.ModerationNotifier
	logger        *zap.Logger
	workers       int
	flagThreshold float64
}

// NewScoreService creates a new ScoreService. workers bounds batch
// concurrency; flagThreshold is the spam score at which entities are
// forwarded to moderation.
func NewScoreService(
	signals domain.SignalRepository,
	scores domain.ScoreRepository,
	cache domain.Cache,
	notifier domain.ModerationNotifier,
	logger *zap.Logger,
	workers int,
	flagThreshold float64,
) *ScoreService {
	if workers < 1 {
		workers = 1
	}
	if flagThreshold <= 0 {
		flagThreshold = domain.SpamFlagThreshold
	}
	return &ScoreService{
		signals:       signals,
		scores:        scores,
		cache:         cache,
		notifier:      notifier,
		logger:        logger,
		workers:       workers,
		flagThreshold: flagThreshold,
	}
}

// BatchResult holds the outcome of one batch recompute run.
type BatchResult struct {
	Processed int
	Failed    int
	Flagged   int
	Duration  time.Duration
}

// RecomputeProfiles rescores up to limit stale profiles concurrently.
// Per-profile failures are counted, logged and skipped; the batch never
// aborts halfway.
func (s *ScoreService) RecomputeProfiles(ctx context.Context, limit int) (*BatchResult, error) {
	start := time.Now()

	ids, err := s.signals.ListStaleProfileIDs(ctx, limit)
	if err != nil {
		s.logger.Error("listing stale profiles failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("starting profile recompute batch",
		zap.Int("profile_count", len(ids)),
		zap.Int("workers", s.workers),
	)

	result := s.runBatch(ctx, ids, func(ctx context.Context, id string) (bool, error) {
		rec, err := s.ScoreProfile(ctx, id)
		if err != nil {
			return false, err
		}
		return rec != nil && rec.SpamScore >= s.flagThreshold, nil
	})
	result.Duration = time.Since(start)

	s.logger.Info("profile recompute batch completed",
		zap.Int("processed", result.Processed),
		zap.Int("failed", result.Failed),
		zap.Int("flagged", result.Flagged),
		zap.Duration("duration", result.Duration),
	)

	return result, nil
}

// RecomputePosts rescores up to limit stale posts concurrently.
func (s *ScoreService) RecomputePosts(ctx context.Context, limit int) (*BatchResult, error) {
	start := time.Now()

	ids, err := s.signals.ListStalePostIDs(ctx, limit)
	if err != nil {
		s.logger.Error("listing stale posts failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("starting post recompute batch",
		zap.Int("post_count", len(ids)),
		zap.Int("workers", s.workers),
	)

	result := s.runBatch(ctx, ids, func(ctx context.Context, id string) (bool, error) {
		rec, err := s.ScorePost(ctx, id)
		if err != nil {
			return false, err
		}
		return rec != nil && rec.SpamScore >= s.flagThreshold, nil
	})
	result.Duration = time.Since(start)

	s.logger.Info("post recompute batch completed",
		zap.Int("processed", result.Processed),
		zap.Int("failed", result.Failed),
		zap.Int("flagged", result.Flagged),
		zap.Duration("duration", result.Duration),
	)

	return result, nil
}

// runBatch fans ids out over the worker pool. score returns whether the
// entity was flagged.
func (s *ScoreService) runBatch(ctx context.Context, ids []string, score func(ctx context.Context, id string) (bool, error)) *BatchResult {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result BatchResult
	)

	idCh := make(chan string)

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range idCh {
				flagged, err := score(ctx, id)

				mu.Lock()
				if err != nil {
					result.Failed++
				} else {
					result.Processed++
					if flagged {
						result.Flagged++
					}
				}
				mu.Unlock()
			}
		}()
	}

	for _, id := range ids {
		idCh <- id
	}
	close(idCh)
	wg.Wait()

	return &result
}

// ScoreProfile recomputes and persists the scores for one profile.
// Returns nil when the profile has no signal row.
func (s *ScoreService) ScoreProfile(ctx context.Context, profileID string) (*domain.ProfileScoreRecord, error) {
	inputs, err := s.signals.ProfileInputs(ctx, profileID)
	if err != nil {
		s.logger.Error("loading profile inputs failed",
			zap.String("profile_id", profileID),
			zap.Error(err),
		)
		return nil, err
	}
	if inputs == nil {
		s.logger.Debug("profile has no signals", zap.String("profile_id", profileID))
		return nil, nil
	}

	profileScore := domain.CalculateProfileScore(inputs)
	spamScore := domain.CalculateSpamScore(inputs)

	// Eligibility is grant-only: once a profile qualifies it keeps the
	// flag until an admin revokes it.
	eligible := domain.CheckCopyrightEligibilityAt(
		profileScore, &inputs.Profile, inputs.CopyrightStrikeCount, inputs.At(),
	)
	if !eligible {
		prev, err := s.scores.GetProfileScore(ctx, profileID)
		if err != nil {
			return nil, err
		}
		if prev != nil && prev.CopyrightEligible {
			eligible = true
		}
	}

	rec := &domain.ProfileScoreRecord{
		ProfileID:         profileID,
		ProfileScore:      profileScore,
		SpamScore:         spamScore,
		CopyrightEligible: eligible,
		ComputedAt:        time.Now().UTC(),
	}

	if err := s.scores.SaveProfileScore(ctx, rec); err != nil {
		s.logger.Error("saving profile score failed",
			zap.String("profile_id", profileID),
			zap.Error(err),
		)
		return nil, err
	}

	s.invalidate(ctx, profileScoreCachePrefix+profileID)
	s.maybeFlag(ctx, "profile", profileID, spamScore)

	return rec, nil
}

// ScorePost recomputes and persists the scores for one post.
// Returns nil when the post has no signal row.
func (s *ScoreService) ScorePost(ctx context.Context, postID string) (*domain.PostScoreRecord, error) {
	inputs, err := s.signals.PostInputs(ctx, postID)
	if err != nil {
		s.logger.Error("loading post inputs failed",
			zap.String("post_id", postID),
			zap.Error(err),
		)
		return nil, err
	}
	if inputs == nil {
		s.logger.Debug("post has no signals", zap.String("post_id", postID))
		return nil, nil
	}

	rec := &domain.PostScoreRecord{
		PostID:       postID,
		AuthorID:     inputs.Post.AuthorID,
		QualityScore: domain.CalculatePostQualityScore(inputs),
		SpamScore:    domain.CalculatePostSpamScore(inputs),
		ComputedAt:   time.Now().UTC(),
	}

	if err := s.scores.SavePostScore(ctx, rec); err != nil {
		s.logger.Error("saving post score failed",
			zap.String("post_id", postID),
			zap.Error(err),
		)
		return nil, err
	}

	s.invalidate(ctx, postScoreCachePrefix+postID)
	s.maybeFlag(ctx, "post", postID, rec.SpamScore)

	return rec, nil
}

// GetProfileScore returns the persisted score for a profile, cache first.
// Returns nil when the profile has never been scored.
func (s *ScoreService) GetProfileScore(ctx context.Context, profileID string) (*domain.ProfileScoreRecord, error) {
	key := profileScoreCachePrefix + profileID

	if data, err := s.cacheGet(ctx, key); err == nil && data != nil {
		var rec domain.ProfileScoreRecord
		if err := json.Unmarshal(data, &rec); err == nil {
			return &rec, nil
		}
	}

	rec, err := s.scores.GetProfileScore(ctx, profileID)
	if err != nil {
		s.logger.Error("get profile score failed",
			zap.String("profile_id", profileID),
			zap.Error(err),
		)
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	s.cacheRecord(ctx, key, rec)
	return rec, nil
}

// GetPostScore returns the persisted score for a post, cache first.
// Returns nil when the post has never been scored.
func (s *ScoreService) GetPostScore(ctx context.Context, postID string) (*domain.PostScoreRecord, error) {
	key := postScoreCachePrefix + postID

	if data, err := s.cacheGet(ctx, key); err == nil && data != nil {
		var rec domain.PostScoreRecord
		if err := json.Unmarshal(data, &rec); err == nil {
			return &rec, nil
		}
	}

	rec, err := s.scores.GetPostScore(ctx, postID)
	if err != nil {
		s.logger.Error("get post score failed",
			zap.String("post_id", postID),
			zap.Error(err),
		)
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	s.cacheRecord(ctx, key, rec)
	return rec, nil
}

// Stats aggregates the persisted score tables.
func (s *ScoreService) Stats(ctx context.Context) (*domain.ScoreStats, error) {
	return s.scores.Stats(ctx)
}

// cacheGet reads a cached record. A nil cache behaves as a permanent miss.
func (s *ScoreService) cacheGet(ctx context.Context, key string) ([]byte, error) {
	if s.cache == nil {
		return nil, nil
	}
	return s.cache.Get(ctx, key)
}

func (s *ScoreService) cacheRecord(ctx context.Context, key string, rec any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, scoreCacheTTL); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ScoreService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

// maybeFlag forwards the entity to moderation when its spam score crosses
// the threshold. Notification failures are logged, never propagated: the
// score is already persisted and the next batch will re-flag.
func (s *ScoreService) maybeFlag(ctx context.Context, entityType, entityID string, spamScore float64) {
	if spamScore < s.flagThreshold || s.notifier == nil {
		return
	}

	event := domain.FlagEvent{
		EntityType: entityType,
		EntityID:   entityID,
		SpamScore:  spamScore,
		Reason:     "spam score above threshold",
	}
	if err := s.notifier.Flag(ctx, event); err != nil {
		s.logger.Warn("moderation flag failed",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.Float64("spam_score", spamScore),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("entity flagged for moderation",
		zap.String("entity_type", entityType),
		zap.String("entity_id", entityID),
		zap.Float64("spam_score", spamScore),
	)
}
