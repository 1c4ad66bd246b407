package domain

import (
	"context"
	"time"
)

// ProfileScoreRecord is the persisted scoring result for one profile.
type ProfileScoreRecord struct {
	ProfileID         string    `json:"profile_id"`
	ProfileScore      float64   `json:"profile_score"`
	SpamScore         float64   `json:"spam_score"`
	CopyrightEligible bool      `json:"copyright_eligible"`
	ComputedAt        time.Time `json:"computed_at"`
}

// PostScoreRecord is the persisted scoring result for one post.
type PostScoreRecord struct {
	PostID       string    `json:"post_id"`
	AuthorID     string    `json:"author_id"`
	QualityScore float64   `json:"quality_score"`
	SpamScore    float64   `json:"spam_score"`
	ComputedAt   time.Time `json:"computed_at"`
}

// ScoreStats summarizes the persisted score tables for dashboards.
type ScoreStats struct {
	ProfilesScored   int64   `json:"profiles_scored"`
	PostsScored      int64   `json:"posts_scored"`
	AvgProfileScore  float64 `json:"avg_profile_score"`
	AvgSpamScore     float64 `json:"avg_spam_score"`
	EligibleProfiles int64   `json:"eligible_profiles"`
}

// SignalRepository loads pre-aggregated behavioral signals maintained by the
// upstream aggregation pipeline.
// Implementations: internal/infra/postgres/repository.go
type SignalRepository interface {
	// ListStaleProfileIDs returns up to limit profile IDs ordered by how
	// long ago they were last scored (never-scored first).
	ListStaleProfileIDs(ctx context.Context, limit int) ([]string, error)

	// ProfileInputs assembles the full signal bag for one profile.
	// Returns nil when the profile has no signal row.
	ProfileInputs(ctx context.Context, profileID string) (*ScoreInputs, error)

	// ListStalePostIDs returns up to limit post IDs, stalest first.
	ListStalePostIDs(ctx context.Context, limit int) ([]string, error)

	// PostInputs assembles the signal bag for one post. Returns nil when
	// the post has no signal row.
	PostInputs(ctx context.Context, postID string) (*PostScoreInputs, error)
}

// ScoreRepository persists and serves computed scores.
// Implementations: internal/infra/postgres/repository.go
type ScoreRepository interface {
	// SaveProfileScore upserts the scoring result for a profile.
	SaveProfileScore(ctx context.Context, rec *ProfileScoreRecord) error

	// GetProfileScore returns the persisted result, or nil if the profile
	// has never been scored.
	GetProfileScore(ctx context.Context, profileID string) (*ProfileScoreRecord, error)

	// SavePostScore upserts the scoring result for a post.
	SavePostScore(ctx context.Context, rec *PostScoreRecord) error

	// GetPostScore returns the persisted result, or nil if the post has
	// never been scored.
	GetPostScore(ctx context.Context, postID string) (*PostScoreRecord, error)

	// Stats aggregates the score tables.
	Stats(ctx context.Context) (*ScoreStats, error)
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}

// FlagEvent describes a score crossing the moderation threshold.
type FlagEvent struct {
	EntityType string  `json:"entity_type"` // profile, post
	EntityID   string  `json:"entity_id"`
	SpamScore  float64 `json:"spam_score"`
	Reason     string  `json:"reason"`
}

// ModerationNotifier forwards flag events to the moderation system.
// Implementations: internal/infra/moderation/client.go
type ModerationNotifier interface {
	// Flag reports an entity whose spam score crossed the threshold.
	Flag(ctx context.Context, event FlagEvent) error
}
