package postgres

import (
	"time"

	"reputation-service/internal/domain"

	"github.com/lib/pq"
)

// ProfileSignalModel is the GORM model for the profile_signals table: one
// wide row per profile, maintained by the upstream aggregation pipeline.
// Rate-limit hits are stored as parallel arrays (action name, hit count).
type ProfileSignalModel struct {
	ProfileID string `gorm:"type:uuid;primaryKey"`

	// Profile snapshot
	AvatarURL        string     `gorm:"type:varchar(500)"`
	Bio              string     `gorm:"type:text"`
	Website          string     `gorm:"type:varchar(500)"`
	FullName         string     `gorm:"type:varchar(200)"`
	Gender           string     `gorm:"type:varchar(20)"`
	BirthDate        *time.Time `gorm:"type:date"`
	EmailVerified    bool       `gorm:"default:false"`
	PhoneVerified    bool       `gorm:"default:false"`
	IdentityVerified bool       `gorm:"default:false"`
	AccountType      string     `gorm:"type:varchar(20);default:'personal'"`
	Verified         bool       `gorm:"default:false"`
	Premium          bool       `gorm:"default:false"`
	Status           string     `gorm:"type:varchar(20);not null;default:'active'"`
	AccountCreatedAt time.Time  `gorm:"not null"`
	FollowerCount    int        `gorm:"default:0"`
	FollowingCount   int        `gorm:"default:0"`
	PostCount        int        `gorm:"default:0"`
	ShadowBanned     bool       `gorm:"default:false"`
	TotalEarnedCoins int        `gorm:"default:0"`
	TotalViews       int        `gorm:"default:0"`

	// Post status aggregates
	PublishedPostCount    int `gorm:"default:0"`
	UnderReviewPostCount  int `gorm:"default:0"`
	RemovedPostCount      int `gorm:"default:0"`
	RecentPostCount       int `gorm:"default:0"`
	RejectedNSFWPostCount int `gorm:"column:rejected_nsfw_post_count;default:0"`

	// Comment aggregates
	TotalCommentCount    int `gorm:"default:0"`
	SpamCommentCount     int `gorm:"default:0"`
	RemovedCommentCount  int `gorm:"default:0"`
	CommentLikesReceived int `gorm:"default:0"`

	// Community signals
	BlocksReceived        int        `gorm:"default:0"`
	ReportsReceived       int        `gorm:"default:0"`
	ModerationActionCount int        `gorm:"default:0"`
	LastPenaltyDate       *time.Time `gorm:"index"`
	LastModerationDate    *time.Time `gorm:"index"`

	// Behavioral signals
	BurstPostingCount      int     `gorm:"default:0"`
	HighFrequencyComments  int     `gorm:"default:0"`
	AvgWordCount           float64 `gorm:"type:decimal(10,2);default:0"`
	DuplicateCommentGroups int     `gorm:"default:0"`
	MassDeleteCount        int     `gorm:"default:0"`

	// Engagement channel totals
	TotalLikesReceived   int     `gorm:"default:0"`
	TotalCommentsOnPosts int     `gorm:"default:0"`
	TotalSavesReceived   int     `gorm:"default:0"`
	TotalSharesReceived  int     `gorm:"default:0"`
	QualifiedReadCount   int     `gorm:"default:0"`
	AvgReadDuration      float64 `gorm:"type:decimal(10,2);default:0"`
	SocialShareCount     int     `gorm:"default:0"`
	DiscussionPostCount  int     `gorm:"default:0"`

	// Economic aggregates
	GiftsSentCoins            int     `gorm:"default:0"`
	GiftsReceivedCoins        int     `gorm:"default:0"`
	GiftSenderDiversity       int     `gorm:"default:0"`
	TopGiftSenderRatio        float64 `gorm:"type:decimal(5,4);default:0"`
	SuspiciousWithdrawalCount int     `gorm:"default:0"`

	// Rate limiting, parallel arrays
	RateLimitActions pq.StringArray `gorm:"type:text[]"`
	RateLimitCounts  pq.Int64Array  `gorm:"type:bigint[]"`

	// Daily activity
	ActiveDaysLast30  int `gorm:"default:0"`
	LoginStreak       int `gorm:"default:0"`
	FollowerLossLast7 int `gorm:"column:follower_loss_last7;default:0"`

	// Social graph quality
	MutualFollowRatio     float64 `gorm:"type:decimal(5,4);default:0"`
	NetworkTrustAvg       float64 `gorm:"type:decimal(5,2);default:0"`
	UniqueProfileVisitors int     `gorm:"default:0"`

	// Comment interaction quality
	CommentReplyRatio      float64 `gorm:"type:decimal(5,4);default:0"`
	OrganicCommentRatio    float64 `gorm:"type:decimal(5,4);default:0"`
	SelfCommentRatio       float64 `gorm:"type:decimal(5,4);default:0"`
	CommentAuthorDiversity int     `gorm:"default:0"`
	AvgMentionsPerPost     float64 `gorm:"type:decimal(10,2);default:0"`

	// Consumer behavior
	LikedOtherPostsCount   int `gorm:"default:0"`
	SavedOtherPostsCount   int `gorm:"default:0"`
	CommentedOnOthersCount int `gorm:"default:0"`

	// Content quality penalty signals
	PostAndDeleteCount    int     `gorm:"default:0"`
	LowEffortPostRatio    float64 `gorm:"type:decimal(5,4);default:0"`
	DuplicateContentCount int     `gorm:"default:0"`
	OneLinerNoMediaRatio  float64 `gorm:"type:decimal(5,4);default:0"`
	WeirdCharacterRatio   float64 `gorm:"type:decimal(5,4);default:0"`

	CopyrightStrikeCount int `gorm:"default:0"`

	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for ProfileSignalModel.
func (ProfileSignalModel) TableName() string {
	return "profile_signals"
}

// ToInputs converts the signal row plus its per-post stats into the domain
// input bag.
func (m *ProfileSignalModel) ToInputs(stats []ProfilePostStatModel) *domain.ScoreInputs {
	in := &domain.ScoreInputs{
		Profile: domain.ProfileData{
			ID:                 m.ProfileID,
			AvatarURL:          m.AvatarURL,
			Bio:                m.Bio,
			Website:            m.Website,
			FullName:           m.FullName,
			Gender:             m.Gender,
			BirthDate:          m.BirthDate,
			EmailVerified:      m.EmailVerified,
			PhoneVerified:      m.PhoneVerified,
			IdentityVerified:   m.IdentityVerified,
			AccountType:        m.AccountType,
			Verified:           m.Verified,
			Premium:            m.Premium,
			Status:             domain.AccountStatus(m.Status),
			CreatedAt:          m.AccountCreatedAt,
			FollowerCount:      m.FollowerCount,
			FollowingCount:     m.FollowingCount,
			PostCount:          m.PostCount,
			ShadowBanned:       m.ShadowBanned,
			TotalEarnedCoins:   m.TotalEarnedCoins,
			TotalViewsReceived: m.TotalViews,
		},

		PublishedPostCount:    m.PublishedPostCount,
		UnderReviewPostCount:  m.UnderReviewPostCount,
		RemovedPostCount:      m.RemovedPostCount,
		RecentPostCount:       m.RecentPostCount,
		RejectedNSFWPostCount: m.RejectedNSFWPostCount,

		TotalCommentCount:    m.TotalCommentCount,
		SpamCommentCount:     m.SpamCommentCount,
		RemovedCommentCount:  m.RemovedCommentCount,
		CommentLikesReceived: m.CommentLikesReceived,

		BlocksReceived:        m.BlocksReceived,
		ReportsReceived:       m.ReportsReceived,
		ModerationActionCount: m.ModerationActionCount,
		LastPenaltyDate:       m.LastPenaltyDate,
		LastModerationDate:    m.LastModerationDate,

		BurstPostingCount:      m.BurstPostingCount,
		HighFrequencyComments:  m.HighFrequencyComments,
		AvgWordCount:           m.AvgWordCount,
		DuplicateCommentGroups: m.DuplicateCommentGroups,
		MassDeleteCount:        m.MassDeleteCount,

		TotalLikesReceived:   m.TotalLikesReceived,
		TotalCommentsOnPosts: m.TotalCommentsOnPosts,
		TotalSavesReceived:   m.TotalSavesReceived,
		TotalSharesReceived:  m.TotalSharesReceived,
		QualifiedReadCount:   m.QualifiedReadCount,
		AvgReadDuration:      m.AvgReadDuration,
		SocialShareCount:     m.SocialShareCount,
		DiscussionPostCount:  m.DiscussionPostCount,

		GiftsSentCoins:            m.GiftsSentCoins,
		GiftsReceivedCoins:        m.GiftsReceivedCoins,
		GiftSenderDiversity:       m.GiftSenderDiversity,
		TopGiftSenderRatio:        m.TopGiftSenderRatio,
		SuspiciousWithdrawalCount: m.SuspiciousWithdrawalCount,

		ActiveDaysLast30:  m.ActiveDaysLast30,
		LoginStreak:       m.LoginStreak,
		FollowerLossLast7: m.FollowerLossLast7,

		MutualFollowRatio:     m.MutualFollowRatio,
		NetworkTrustAvg:       m.NetworkTrustAvg,
		UniqueProfileVisitors: m.UniqueProfileVisitors,

		CommentReplyRatio:      m.CommentReplyRatio,
		OrganicCommentRatio:    m.OrganicCommentRatio,
		SelfCommentRatio:       m.SelfCommentRatio,
		CommentAuthorDiversity: m.CommentAuthorDiversity,
		AvgMentionsPerPost:     m.AvgMentionsPerPost,

		LikedOtherPostsCount:   m.LikedOtherPostsCount,
		SavedOtherPostsCount:   m.SavedOtherPostsCount,
		CommentedOnOthersCount: m.CommentedOnOthersCount,

		PostAndDeleteCount:    m.PostAndDeleteCount,
		LowEffortPostRatio:    m.LowEffortPostRatio,
		DuplicateContentCount: m.DuplicateContentCount,
		OneLinerNoMediaRatio:  m.OneLinerNoMediaRatio,
		WeirdCharacterRatio:   m.WeirdCharacterRatio,

		CopyrightStrikeCount: m.CopyrightStrikeCount,
	}

	for i := range m.RateLimitActions {
		count := 0
		if i < len(m.RateLimitCounts) {
			count = int(m.RateLimitCounts[i])
		}
		in.RateLimitHits = append(in.RateLimitHits, domain.RateLimitHit{
			Action: m.RateLimitActions[i],
			Count:  count,
		})
	}

	for i := range stats {
		in.PostStats = append(in.PostStats, stats[i].ToDomain())
	}

	return in
}

// ProfilePostStatModel is the GORM model for the profile_post_stats table:
// per-post engagement snapshots feeding the profile content-quality
// dimension.
type ProfilePostStatModel struct {
	PostID          string  `gorm:"type:uuid;primaryKey"`
	ProfileID       string  `gorm:"type:uuid;not null;index"`
	Type            string  `gorm:"type:varchar(20);not null"`
	LikeCount       int     `gorm:"default:0"`
	CommentCount    int     `gorm:"default:0"`
	SaveCount       int     `gorm:"default:0"`
	ShareCount      int     `gorm:"default:0"`
	UniqueViewCount int     `gorm:"default:0"`
	TrendingScore   float64 `gorm:"type:decimal(10,2);default:0"`
	WordCount       int     `gorm:"default:0"`
	MentionCount    int     `gorm:"default:0"`
	HasMedia        bool    `gorm:"default:false"`

	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for ProfilePostStatModel.
func (ProfilePostStatModel) TableName() string {
	return "profile_post_stats"
}

// ToDomain converts ProfilePostStatModel to domain.PostStat.
func (m *ProfilePostStatModel) ToDomain() domain.PostStat {
	return domain.PostStat{
		ID:              m.PostID,
		LikeCount:       m.LikeCount,
		CommentCount:    m.CommentCount,
		SaveCount:       m.SaveCount,
		ShareCount:      m.ShareCount,
		UniqueViewCount: m.UniqueViewCount,
		TrendingScore:   m.TrendingScore,
		WordCount:       m.WordCount,
		MentionCount:    m.MentionCount,
		Type:            domain.ContentType(m.Type),
		HasMedia:        m.HasMedia,
	}
}

// PostSignalModel is the GORM model for the post_signals table: one wide row
// per post.
type PostSignalModel struct {
	PostID   string `gorm:"type:uuid;primaryKey"`
	AuthorID string `gorm:"type:uuid;not null;index"`

	Type            string    `gorm:"type:varchar(20);not null"`
	Status          string    `gorm:"type:varchar(20);not null;default:'published'"`
	WordCount       int       `gorm:"default:0"`
	HasMedia        bool      `gorm:"default:false"`
	NSFW            bool      `gorm:"column:nsfw;default:false"`
	ForKids         bool      `gorm:"default:false"`
	LikeCount       int       `gorm:"default:0"`
	CommentCount    int       `gorm:"default:0"`
	SaveCount       int       `gorm:"default:0"`
	ShareCount      int       `gorm:"default:0"`
	UniqueViewCount int       `gorm:"default:0"`
	MentionCount    int       `gorm:"default:0"`
	VideoDuration   float64   `gorm:"type:decimal(10,2);default:0"`
	ReadingTime     float64   `gorm:"type:decimal(10,2);default:0"`
	PublishedAt     time.Time `gorm:"not null;index"`

	ImageCount   int `gorm:"default:0"`
	HeadingCount int `gorm:"default:0"`
	ListCount    int `gorm:"default:0"`
	TableCount   int `gorm:"default:0"`
	TagCount     int `gorm:"default:0"`

	AvgReadDuration    float64 `gorm:"type:decimal(10,2);default:0"`
	AvgReadPercent     float64 `gorm:"type:decimal(5,4);default:0"`
	QualifiedReadCount int     `gorm:"default:0"`

	AvgWatchDuration float64 `gorm:"type:decimal(10,2);default:0"`
	AvgWatchPercent  float64 `gorm:"type:decimal(5,4);default:0"`
	ReplayCount      int     `gorm:"default:0"`

	DistinctCommenters int     `gorm:"default:0"`
	SelfCommentCount   int     `gorm:"default:0"`
	AvgCommentLength   float64 `gorm:"type:decimal(10,2);default:0"`
	ThreadedReplyCount int     `gorm:"default:0"`

	AvgVisitorProfileScore float64 `gorm:"type:decimal(5,2);default:0"`
	AvgLikerProfileScore   float64 `gorm:"type:decimal(5,2);default:0"`

	AuthorAvgQualityScore float64 `gorm:"type:decimal(5,2);default:0"`
	AuthorPostCount30d    int     `gorm:"column:author_post_count_30d;default:0"`
	AuthorAccountAgeDays  int     `gorm:"default:0"`

	QuickLikeRatio       float64 `gorm:"type:decimal(5,4);default:0"`
	QuickSaveRatio       float64 `gorm:"type:decimal(5,4);default:0"`
	IPClusterRatio       float64 `gorm:"column:ip_cluster_ratio;type:decimal(5,4);default:0"`
	BounceRate           float64 `gorm:"type:decimal(5,4);default:0"`
	ReciprocalEngagement float64 `gorm:"type:decimal(5,4);default:0"`

	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for PostSignalModel.
func (PostSignalModel) TableName() string {
	return "post_signals"
}

// ToInputs converts PostSignalModel to the domain input bag.
func (m *PostSignalModel) ToInputs() *domain.PostScoreInputs {
	return &domain.PostScoreInputs{
		Post: domain.PostData{
			ID:               m.PostID,
			AuthorID:         m.AuthorID,
			Type:             domain.ContentType(m.Type),
			Status:           domain.PostStatus(m.Status),
			WordCount:        m.WordCount,
			HasMedia:         m.HasMedia,
			NSFW:             m.NSFW,
			ForKids:          m.ForKids,
			LikeCount:        m.LikeCount,
			CommentCount:     m.CommentCount,
			SaveCount:        m.SaveCount,
			ShareCount:       m.ShareCount,
			UniqueViewCount:  m.UniqueViewCount,
			MentionCount:     m.MentionCount,
			VideoDurationSec: m.VideoDuration,
			ReadingTimeSec:   m.ReadingTime,
			PublishedAt:      m.PublishedAt,
		},

		ImageCount:   m.ImageCount,
		HeadingCount: m.HeadingCount,
		ListCount:    m.ListCount,
		TableCount:   m.TableCount,
		TagCount:     m.TagCount,

		AvgReadDurationSec: m.AvgReadDuration,
		AvgReadPercent:     m.AvgReadPercent,
		QualifiedReadCount: m.QualifiedReadCount,

		AvgWatchDurationSec: m.AvgWatchDuration,
		AvgWatchPercent:     m.AvgWatchPercent,
		ReplayCount:         m.ReplayCount,

		DistinctCommenters: m.DistinctCommenters,
		SelfCommentCount:   m.SelfCommentCount,
		AvgCommentLength:   m.AvgCommentLength,
		ThreadedReplyCount: m.ThreadedReplyCount,

		AvgVisitorProfileScore: m.AvgVisitorProfileScore,
		AvgLikerProfileScore:   m.AvgLikerProfileScore,

		AuthorAvgQualityScore: m.AuthorAvgQualityScore,
		AuthorPostCount30d:    m.AuthorPostCount30d,
		AuthorAccountAgeDays:  m.AuthorAccountAgeDays,

		QuickLikeRatio:            m.QuickLikeRatio,
		QuickSaveRatio:            m.QuickSaveRatio,
		IPClusterRatio:            m.IPClusterRatio,
		BounceRate:                m.BounceRate,
		ReciprocalEngagementRatio: m.ReciprocalEngagement,
	}
}

// ProfileScoreModel is the GORM model for the profile_scores table.
type ProfileScoreModel struct {
	ProfileID         string    `gorm:"type:uuid;primaryKey"`
	ProfileScore      float64   `gorm:"type:decimal(5,2);not null;index"`
	SpamScore         float64   `gorm:"type:decimal(5,2);not null;index"`
	CopyrightEligible bool      `gorm:"not null;default:false"`
	ComputedAt        time.Time `gorm:"not null;index"`
}

// TableName returns the table name for ProfileScoreModel.
func (ProfileScoreModel) TableName() string {
	return "profile_scores"
}

// ToDomain converts ProfileScoreModel to domain.ProfileScoreRecord.
func (m *ProfileScoreModel) ToDomain() *domain.ProfileScoreRecord {
	return &domain.ProfileScoreRecord{
		ProfileID:         m.ProfileID,
		ProfileScore:      m.ProfileScore,
		SpamScore:         m.SpamScore,
		CopyrightEligible: m.CopyrightEligible,
		ComputedAt:        m.ComputedAt,
	}
}

// ProfileScoreFromDomain creates a ProfileScoreModel from the domain record.
func ProfileScoreFromDomain(rec *domain.ProfileScoreRecord) *ProfileScoreModel {
	return &ProfileScoreModel{
		ProfileID:         rec.ProfileID,
		ProfileScore:      rec.ProfileScore,
		SpamScore:         rec.SpamScore,
		CopyrightEligible: rec.CopyrightEligible,
		ComputedAt:        rec.ComputedAt,
	}
}

// PostScoreModel is the GORM model for the post_scores table.
type PostScoreModel struct {
	PostID       string    `gorm:"type:uuid;primaryKey"`
	AuthorID     string    `gorm:"type:uuid;not null;index"`
	QualityScore float64   `gorm:"type:decimal(5,2);not null;index"`
	SpamScore    float64   `gorm:"type:decimal(5,2);not null;index"`
	ComputedAt   time.Time `gorm:"not null;index"`
}

// TableName returns the table name for PostScoreModel.
func (PostScoreModel) TableName() string {
	return "post_scores"
}

// ToDomain converts PostScoreModel to domain.PostScoreRecord.
func (m *PostScoreModel) ToDomain() *domain.PostScoreRecord {
	return &domain.PostScoreRecord{
		PostID:       m.PostID,
		AuthorID:     m.AuthorID,
		QualityScore: m.QualityScore,
		SpamScore:    m.SpamScore,
		ComputedAt:   m.ComputedAt,
	}
}

// PostScoreFromDomain creates a PostScoreModel from the domain record.
func PostScoreFromDomain(rec *domain.PostScoreRecord) *PostScoreModel {
	return &PostScoreModel{
		PostID:       rec.PostID,
		AuthorID:     rec.AuthorID,
		QualityScore: rec.QualityScore,
		SpamScore:    rec.SpamScore,
		ComputedAt:   rec.ComputedAt,
	}
}
