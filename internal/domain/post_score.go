package domain

// Dimension caps for the post quality score.
const (
	structureCap         = 20
	readingCap           = 25
	videoWatchCap        = 15
	discussionCap        = 20
	audienceQualityCap   = 10
	authorConsistencyCap = 10
)

// Dimension caps for the post spam score.
const (
	quickEngagementCap = 30
	ipClusterCap       = 25
	bounceCap          = 15
	reciprocalCap      = 15
	redFlagCap         = 15
)

// CalculatePostQualityScore computes the quality score for a single post.
//
// Six independent dimensions are summed and clamped to [0, 100]: body
// structure, reading engagement, video watch behavior, organic discussion,
// audience quality and author consistency. All ladders are checked
// highest-threshold-first with a single band per metric.
func CalculatePostQualityScore(in *PostScoreInputs) float64 {
	if in == nil {
		return 0
	}

	score := structureScore(in) +
		readingScore(in) +
		videoWatchScore(in) +
		discussionScore(in) +
		audienceQualityScore(in) +
		authorConsistencyScore(in)

	return roundTo2Decimals(clamp(score, 0, 100))
}

// CalculatePostSpamScore computes the spam/gaming likelihood for a post.
//
// Five dimensions summed and clamped to [0, 100]: quick engagement, IP
// clustering, bounce rate, reciprocal engagement rings and content red
// flags.
func CalculatePostSpamScore(in *PostScoreInputs) float64 {
	if in == nil {
		return 0
	}

	score := quickEngagementSpam(in) +
		ipClusterSpam(in) +
		bounceSpam(in) +
		reciprocalSpam(in) +
		redFlagSpam(in)

	return roundTo2Decimals(clamp(score, 0, 100))
}

// structureScore rewards well-formed bodies (cap 20).
//
// Images: >=3:+4, >=1:+2. Headings: >=2:+3, >=1:+2. Lists: +2. Tables: +2.
// Tags: >=3:+3, >=1:+1. Media present: +2. Word depth by type: post
// >=800:+4, >=300:+3, >=100:+1; moment >=100:+3, >=30:+1; videos are not
// measured on words.
func structureScore(in *PostScoreInputs) float64 {
	score := 0.0

	switch {
	case in.ImageCount >= 3:
		score += 4
	case in.ImageCount >= 1:
		score += 2
	}

	switch {
	case in.HeadingCount >= 2:
		score += 3
	case in.HeadingCount >= 1:
		score += 2
	}

	if in.ListCount >= 1 {
		score += 2
	}
	if in.TableCount >= 1 {
		score += 2
	}

	switch {
	case in.TagCount >= 3:
		score += 3
	case in.TagCount >= 1:
		score++
	}

	if in.Post.HasMedia {
		score += 2
	}

	switch in.Post.Type {
	case ContentTypePost:
		switch {
		case in.Post.WordCount >= 800:
			score += 4
		case in.Post.WordCount >= 300:
			score += 3
		case in.Post.WordCount >= 100:
			score++
		}
	case ContentTypeMoment:
		switch {
		case in.Post.WordCount >= 100:
			score += 3
		case in.Post.WordCount >= 30:
			score++
		}
	}

	return clamp(score, 0, structureCap)
}

// readingScore rewards posts that hold attention (cap 25). Thresholds are
// content-type aware: a qualified read is 60s for posts and 15s for moments.
//
// Qualified-read ratio: >=0.30:+10, >=0.15:+6, >=0.05:+2. Average read
// percent: >=0.70:+8, >=0.45:+5, >=0.25:+2. Average duration at 2x the
// qualified threshold: +7, at 1x: +4.
func readingScore(in *PostScoreInputs) float64 {
	if in.Post.Type == ContentTypeVideo {
		return 0
	}
	score := 0.0

	readRatio := safeRatio(float64(in.QualifiedReadCount), float64(in.Post.UniqueViewCount))
	switch {
	case readRatio >= 0.30:
		score += 10
	case readRatio >= 0.15:
		score += 6
	case readRatio >= 0.05:
		score += 2
	}

	switch {
	case in.AvgReadPercent >= 0.70:
		score += 8
	case in.AvgReadPercent >= 0.45:
		score += 5
	case in.AvgReadPercent >= 0.25:
		score += 2
	}

	threshold := in.qualifiedReadThresholdSec()
	switch {
	case in.AvgReadDurationSec >= 2*threshold:
		score += 7
	case in.AvgReadDurationSec >= threshold:
		score += 4
	}

	return clamp(score, 0, readingCap)
}

// videoWatchScore rewards watched-through videos (cap 15, videos only).
//
// Average watch percent: >=0.80:+8, >=0.50:+5, >=0.25:+2. Replays: >=10:+4,
// >=3:+2. Average watch duration past the 30s floor: +3.
func videoWatchScore(in *PostScoreInputs) float64 {
	if in.Post.Type != ContentTypeVideo {
		return 0
	}
	score := 0.0

	switch {
	case in.AvgWatchPercent >= 0.80:
		score += 8
	case in.AvgWatchPercent >= 0.50:
		score += 5
	case in.AvgWatchPercent >= 0.25:
		score += 2
	}

	switch {
	case in.ReplayCount >= 10:
		score += 4
	case in.ReplayCount >= 3:
		score += 2
	}

	if in.AvgWatchDurationSec >= 30 {
		score += 3
	}

	return clamp(score, 0, videoWatchCap)
}

// discussionScore rewards organic conversation (cap 20).
//
// Distinct non-author commenters: >=10:+8, >=5:+5, >=2:+2. Average comment
// length: >=40:+4, >=15:+2. Threaded replies: >=5:+4, >=1:+2. Shares:
// >=10:+4, >=3:+2.
func discussionScore(in *PostScoreInputs) float64 {
	score := 0.0

	switch {
	case in.DistinctCommenters >= 10:
		score += 8
	case in.DistinctCommenters >= 5:
		score += 5
	case in.DistinctCommenters >= 2:
		score += 2
	}

	switch {
	case in.AvgCommentLength >= 40:
		score += 4
	case in.AvgCommentLength >= 15:
		score += 2
	}

	switch {
	case in.ThreadedReplyCount >= 5:
		score += 4
	case in.ThreadedReplyCount >= 1:
		score += 2
	}

	switch {
	case in.Post.ShareCount >= 10:
		score += 4
	case in.Post.ShareCount >= 3:
		score += 2
	}

	return clamp(score, 0, discussionCap)
}

// audienceQualityScore rewards engagement from trusted accounts (cap 10).
// Profile scores are on the 0-100 scale. Visitors: >=60:+5, >=40:+3,
// >=20:+1. Likers: >=60:+5, >=40:+2.
func audienceQualityScore(in *PostScoreInputs) float64 {
	score := 0.0

	switch {
	case in.AvgVisitorProfileScore >= 60:
		score += 5
	case in.AvgVisitorProfileScore >= 40:
		score += 3
	case in.AvgVisitorProfileScore >= 20:
		score++
	}

	switch {
	case in.AvgLikerProfileScore >= 60:
		score += 5
	case in.AvgLikerProfileScore >= 40:
		score += 2
	}

	return clamp(score, 0, audienceQualityCap)
}

// authorConsistencyScore rewards a steady, established author (cap 10).
//
// Author average quality: >=60:+6, >=40:+3. A sane posting cadence (1-10
// posts in the last 30 days): +2. Account age >= 90 days: +2.
func authorConsistencyScore(in *PostScoreInputs) float64 {
	score := 0.0

	switch {
	case in.AuthorAvgQualityScore >= 60:
		score += 6
	case in.AuthorAvgQualityScore >= 40:
		score += 3
	}

	if in.AuthorPostCount30d >= 1 && in.AuthorPostCount30d <= 10 {
		score += 2
	}

	if in.AuthorAccountAgeDays >= 90 {
		score += 2
	}

	return clamp(score, 0, authorConsistencyCap)
}

// quickEngagementSpam scores likes/saves that arrive faster than a human
// could consume the content (cap 30). Quick-like ratio: >=0.50:20,
// >=0.30:12, >=0.10:5. Quick-save ratio: >=0.50:10, >=0.30:6.
func quickEngagementSpam(in *PostScoreInputs) float64 {
	score := 0.0

	switch {
	case in.QuickLikeRatio >= 0.50:
		score += 20
	case in.QuickLikeRatio >= 0.30:
		score += 12
	case in.QuickLikeRatio >= 0.10:
		score += 5
	}

	switch {
	case in.QuickSaveRatio >= 0.50:
		score += 10
	case in.QuickSaveRatio >= 0.30:
		score += 6
	}

	return clamp(score, 0, quickEngagementCap)
}

// ipClusterSpam scores view farms (cap 25). Requires at least 20 views so a
// handful of office colleagues doesn't trip it. Cluster ratio: >=0.60:25,
// >=0.40:15, >=0.20:8.
func ipClusterSpam(in *PostScoreInputs) float64 {
	if in.Post.UniqueViewCount < 20 {
		return 0
	}

	switch {
	case in.IPClusterRatio >= 0.60:
		return 25
	case in.IPClusterRatio >= 0.40:
		return 15
	case in.IPClusterRatio >= 0.20:
		return 8
	default:
		return 0
	}
}

// bounceSpam scores clickbait-shaped traffic (cap 15). Requires at least 50
// views. Bounce rate: >=0.90:15, >=0.80:8, >=0.70:4.
func bounceSpam(in *PostScoreInputs) float64 {
	if in.Post.UniqueViewCount < 50 {
		return 0
	}

	switch {
	case in.BounceRate >= 0.90:
		return 15
	case in.BounceRate >= 0.80:
		return 8
	case in.BounceRate >= 0.70:
		return 4
	default:
		return 0
	}
}

// reciprocalSpam scores like-for-like rings (cap 15). Reciprocal engagement
// ratio: >=0.50:15, >=0.30:8, >=0.10:3.
func reciprocalSpam(in *PostScoreInputs) float64 {
	switch {
	case in.ReciprocalEngagementRatio >= 0.50:
		return 15
	case in.ReciprocalEngagementRatio >= 0.30:
		return 8
	case in.ReciprocalEngagementRatio >= 0.10:
		return 3
	default:
		return 0
	}
}

// redFlagSpam scores outright content violations (cap 15). Removed status:
// 10. NSFW marked for kids: 15. Under 5 words with no media: 5. Mentions:
// >=10:8, >=5:4.
func redFlagSpam(in *PostScoreInputs) float64 {
	score := 0.0

	if in.Post.Status == PostStatusRemoved {
		score += 10
	}
	if in.Post.NSFW && in.Post.ForKids {
		score += 15
	}
	if in.Post.WordCount < 5 && !in.Post.HasMedia {
		score += 5
	}

	switch {
	case in.Post.MentionCount >= 10:
		score += 8
	case in.Post.MentionCount >= 5:
		score += 4
	}

	return clamp(score, 0, redFlagCap)
}
