package domain

import "time"

// PostStatus represents the lifecycle state of a post.
type PostStatus string

const (
	PostStatusPublished   PostStatus = "published"
	PostStatusUnderReview PostStatus = "under_review"
	PostStatusRemoved     PostStatus = "removed"
)

// PostData is a snapshot of a single post's own facts at scoring time.
type PostData struct {
	ID       string
	AuthorID string

	Type      ContentType
	Status    PostStatus
	WordCount int
	HasMedia  bool
	NSFW      bool
	ForKids   bool

	LikeCount       int
	CommentCount    int
	SaveCount       int
	ShareCount      int
	UniqueViewCount int
	MentionCount    int

	VideoDurationSec float64
	ReadingTimeSec   float64
	PublishedAt      time.Time
}

// PostScoreInputs bundles a post snapshot with the derived signals the
// quality and spam scorers consume. Like ScoreInputs, it is assembled by the
// caller; the scorers do no I/O.
type PostScoreInputs struct {
	Post PostData

	// Body structure, extracted upstream from the rendered content.
	ImageCount   int
	HeadingCount int
	ListCount    int
	TableCount   int
	TagCount     int

	// Reading behavior
	AvgReadDurationSec float64
	AvgReadPercent     float64 // 0..1
	QualifiedReadCount int

	// Video watch behavior
	AvgWatchDurationSec float64
	AvgWatchPercent     float64 // 0..1
	ReplayCount         int

	// Discussion
	DistinctCommenters int // excludes the author
	SelfCommentCount   int
	AvgCommentLength   float64
	ThreadedReplyCount int

	// Audience quality (average profile score of interacting users, 0..100)
	AvgVisitorProfileScore float64
	AvgLikerProfileScore   float64

	// Author consistency
	AuthorAvgQualityScore float64
	AuthorPostCount30d    int
	AuthorAccountAgeDays  int

	// Anti-gaming signals
	QuickLikeRatio            float64 // likes within seconds of the view
	QuickSaveRatio            float64
	IPClusterRatio            float64 // views sharing an IP cluster
	BounceRate                float64
	ReciprocalEngagementRatio float64
}

// qualifiedReadThresholdSec returns the minimum read duration for a read to
// count as qualified, by content type. Notes/moments are short-form and need
// far less time than long-form posts.
func (in *PostScoreInputs) qualifiedReadThresholdSec() float64 {
	if in.Post.Type == ContentTypeMoment {
		return 15
	}

	return 60
}
