// Package domain contains the reputation scoring engine and its value types.
// This package has no external dependencies (only stdlib).
package domain

import (
	"time"
)

// AccountStatus represents the moderation state of an account.
type AccountStatus string

const (
	AccountStatusActive     AccountStatus = "active"
	AccountStatusFrozen     AccountStatus = "frozen"
	AccountStatusBlocked    AccountStatus = "blocked"
	AccountStatusModeration AccountStatus = "moderation"
	AccountStatusDeleted    AccountStatus = "deleted"
)

// ContentType represents the type of a post.
type ContentType string

const (
	ContentTypePost   ContentType = "post"
	ContentTypeVideo  ContentType = "video"
	ContentTypeMoment ContentType = "moment"
)

// ProfileData is a snapshot of one user's profile facts at scoring time.
// All counts are non-negative; optional fields use their zero value (or nil
// for dates) to mean "absent".
type ProfileData struct {
	ID string

	// Completeness signals
	AvatarURL string
	Bio       string
	Website   string
	FullName  string
	Gender    string
	BirthDate *time.Time

	// Verification
	EmailVerified    bool
	PhoneVerified    bool
	IdentityVerified bool

	// Account facts
	AccountType string // personal, creator, business, publisher
	Verified    bool
	Premium     bool
	Status      AccountStatus
	CreatedAt   time.Time

	// Social graph totals
	FollowerCount  int
	FollowingCount int
	PostCount      int

	// Flags and lifetime aggregates
	ShadowBanned       bool
	TotalEarnedCoins   int
	TotalViewsReceived int
}

// AccountAgeDays returns whole days since the account was created.
func (p *ProfileData) AccountAgeDays(now time.Time) int {
	return daysSince(p.CreatedAt, now)
}

// IsNew reports whether the account is younger than 7 days.
func (p *ProfileData) IsNew(now time.Time) bool {
	return p.AccountAgeDays(now) < newAccountAgeDays
}

// PostStat is a per-post engagement snapshot. The profile scorer only ever
// consumes these in aggregate.
type PostStat struct {
	ID              string
	LikeCount       int
	CommentCount    int
	SaveCount       int
	ShareCount      int
	UniqueViewCount int
	TrendingScore   float64
	WordCount       int
	MentionCount    int
	Type            ContentType
	HasMedia        bool
}

// Engagements returns the combined like/comment/save count for the post.
func (s *PostStat) Engagements() int {
	return s.LikeCount + s.CommentCount + s.SaveCount
}

// RateLimitHit records how often a single rate-limited action was tripped.
// The action taxonomy is open-ended: consumers only sum counts and count
// distinct actions.
type RateLimitHit struct {
	Action string
	Count  int
}

// ScoreInputs is the full bag of pre-aggregated behavioral signals for one
// profile. It is built by the caller from store aggregates and handed to the
// scorers; the engine performs no I/O of its own.
type ScoreInputs struct {
	Profile ProfileData

	// AsOf pins the evaluation time. The zero value means time.Now();
	// callers that need reproducible output supply it explicitly.
	AsOf time.Time

	// Post status aggregates
	PublishedPostCount    int
	UnderReviewPostCount  int
	RemovedPostCount      int
	RecentPostCount       int // published in the last 30 days
	RejectedNSFWPostCount int

	// Comment status aggregates
	TotalCommentCount    int
	SpamCommentCount     int
	RemovedCommentCount  int
	CommentLikesReceived int

	// Community signals
	BlocksReceived        int
	ReportsReceived       int
	ModerationActionCount int
	LastPenaltyDate       *time.Time
	LastModerationDate    *time.Time

	// Behavioral signals
	BurstPostingCount      int
	HighFrequencyComments  int // comment bursts above the per-hour limit
	AvgWordCount           float64
	DuplicateCommentGroups int
	MassDeleteCount        int

	// Per-post engagement snapshots plus channel totals
	PostStats            []PostStat
	TotalLikesReceived   int
	TotalCommentsOnPosts int
	TotalSavesReceived   int
	TotalSharesReceived  int
	QualifiedReadCount   int
	AvgReadDuration      float64 // seconds, text posts only
	SocialShareCount     int
	DiscussionPostCount  int // posts with >=5 distinct non-self commenters

	// Economic aggregates (coin units)
	GiftsSentCoins            int
	GiftsReceivedCoins        int
	GiftSenderDiversity       int
	TopGiftSenderRatio        float64
	SuspiciousWithdrawalCount int

	// Rate limiting
	RateLimitHits []RateLimitHit

	// Daily activity
	ActiveDaysLast30  int
	LoginStreak       int // consecutive login days, 1 grace-day gap allowed upstream
	FollowerLossLast7 int

	// Social graph quality
	MutualFollowRatio     float64
	NetworkTrustAvg       float64 // followers' avg profile score on a 0-5 scale
	UniqueProfileVisitors int

	// Comment interaction quality
	CommentReplyRatio      float64
	OrganicCommentRatio    float64
	SelfCommentRatio       float64
	CommentAuthorDiversity int
	AvgMentionsPerPost     float64

	// Consumer / reader behavior
	LikedOtherPostsCount   int
	SavedOtherPostsCount   int
	CommentedOnOthersCount int

	// Content quality penalty signals
	PostAndDeleteCount    int
	LowEffortPostRatio    float64
	DuplicateContentCount int
	OneLinerNoMediaRatio  float64
	WeirdCharacterRatio   float64

	// Copyright
	CopyrightStrikeCount int
}

// At returns the evaluation time for the inputs.
func (in *ScoreInputs) At() time.Time {
	if in.AsOf.IsZero() {
		return time.Now().UTC()
	}

	return in.AsOf
}
