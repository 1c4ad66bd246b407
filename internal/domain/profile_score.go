package domain

import (
	"math"
)

// Dimension caps for the profile quality score. The seven positive
// dimensions sum to at most 100; penalties pull the total back down.
const (
	completenessCap      = 12
	activityCap          = 20
	socialTrustCap       = 16
	contentQualityCap    = 20
	engagementQualityCap = 16
	economicActivityCap  = 8
	consumerCap          = 8
)

const (
	newAccountAgeDays  = 7
	newAccountFloor    = 10
	shadowBanPenalty   = 50
	minBioLength       = 10
	minFullNameLength  = 2
)

// CalculateProfileScore computes the trust score for a profile.
//
// Pipeline:
//
//	score = completeness + activity + socialTrust + contentQuality
//	      + engagementQuality + economicActivity + consumer
//	      + round(penalties × decayFactor)
//
// Decay factor by days since the last penalty event:
//
//	< 14 days (or never): 1.0
//	>= 14 days: 0.7
//	>= 30 days: 0.5
//	>= 60 days: 0.3
//
// The sum is clamped to [floor, 100], where floor is 10 for accounts younger
// than 7 days and 0 otherwise. Shadow-banned accounts lose 50 more points and
// are re-floored at 0. The result carries 2 decimal places.
func CalculateProfileScore(in *ScoreInputs) float64 {
	if in == nil {
		return 0
	}
	now := in.At()

	positive := completenessScore(in) +
		activityScore(in) +
		socialTrustScore(in) +
		contentQualityScore(in) +
		engagementQualityScore(in) +
		economicActivityScore(in) +
		consumerScore(in)

	penalty := penaltyScore(in)
	decayed := math.Round(penalty * penaltyDecayFactor(daysSinceNullable(in.LastPenaltyDate, now)))

	floor := 0.0
	if in.Profile.IsNew(now) {
		floor = newAccountFloor
	}

	score := clamp(positive+decayed, floor, 100)

	if in.Profile.ShadowBanned {
		score = clamp(score-shadowBanPenalty, 0, 100)
	}

	return roundTo2Decimals(score)
}

// penaltyDecayFactor maps days since the last penalty event to a
// rehabilitation multiplier. days < 0 means "never observed".
func penaltyDecayFactor(days int) float64 {
	switch {
	case days < 0:
		return 1.0
	case days >= 60:
		return 0.3
	case days >= 30:
		return 0.5
	case days >= 14:
		return 0.7
	default:
		return 1.0
	}
}

// completenessScore rewards a filled-out profile (cap 12).
//
//	+4 avatar, +2 bio (>10 chars), +2 email verified, +1 phone verified,
//	+1 website, +1 birth date, +1 gender, +1 full name (>2 chars),
//	+2 non-personal account type
func completenessScore(in *ScoreInputs) float64 {
	p := &in.Profile
	score := 0.0

	if p.AvatarURL != "" {
		score += 4
	}
	if len(p.Bio) > minBioLength {
		score += 2
	}
	if p.EmailVerified {
		score += 2
	}
	if p.PhoneVerified {
		score++
	}
	if p.Website != "" {
		score++
	}
	if p.BirthDate != nil {
		score++
	}
	if p.Gender != "" {
		score++
	}
	if len(p.FullName) > minFullNameLength {
		score++
	}
	if p.AccountType != "" && p.AccountType != "personal" {
		score += 2
	}

	return clamp(score, 0, completenessCap)
}

// activityScore rewards sustained posting and login activity (cap 20).
//
// Post count ladder: >=50:6, >=25:5, >=10:4, >=3:2, >=1:1. Recent post in
// the last 30 days: +2. Active-day ladder over the last 30 days: >=25:+3,
// >=15:+2, >=7:+1. Inactivity: -2 when under 3 active days and the account
// is at least 7 days old (new accounts get grace). Login streak: >=30:+3,
// >=14:+2, >=7:+1. Account age ladder: >=3650:+6, >=2555:+5, >=1825:+4,
// >=1095:+3, >=365:+2, >=90:+1.
//
// Accounts younger than 7 days are clamped into [4, 20] regardless of the
// computed value (new-user floor protection).
func activityScore(in *ScoreInputs) float64 {
	p := &in.Profile
	ageDays := p.AccountAgeDays(in.At())
	score := 0.0

	switch {
	case p.PostCount >= 50:
		score += 6
	case p.PostCount >= 25:
		score += 5
	case p.PostCount >= 10:
		score += 4
	case p.PostCount >= 3:
		score += 2
	case p.PostCount >= 1:
		score++
	}

	if in.RecentPostCount >= 1 {
		score += 2
	}

	switch {
	case in.ActiveDaysLast30 >= 25:
		score += 3
	case in.ActiveDaysLast30 >= 15:
		score += 2
	case in.ActiveDaysLast30 >= 7:
		score++
	}

	if in.ActiveDaysLast30 < 3 && ageDays >= newAccountAgeDays {
		score -= 2
	}

	switch {
	case in.LoginStreak >= 30:
		score += 3
	case in.LoginStreak >= 14:
		score += 2
	case in.LoginStreak >= 7:
		score++
	}

	switch {
	case ageDays >= 3650:
		score += 6
	case ageDays >= 2555:
		score += 5
	case ageDays >= 1825:
		score += 4
	case ageDays >= 1095:
		score += 3
	case ageDays >= 365:
		score += 2
	case ageDays >= 90:
		score++
	}

	if ageDays < newAccountAgeDays {
		return clamp(score, 4, activityCap)
	}

	return clamp(score, 0, activityCap)
}

// socialTrustScore rewards a credible follower graph (cap 16).
//
// Followers contribute 2·log2(followers+1), capped at 8. Following/follower
// ratio bonus: <3:+2, <10:+1; an account following others with zero followers
// counts as an infinite ratio and earns nothing. Verified +3, premium +2.
// Mutual-follow ratio: >=0.40:+3, >=0.20:+2, >=0.10:+1. Network trust
// average (0-5): >=3.5:+2, >=2.5:+1. Unique profile visitors: >=50:+3,
// >=20:+2, >=5:+1.
func socialTrustScore(in *ScoreInputs) float64 {
	p := &in.Profile
	score := 0.0

	followerPoints := 2 * math.Log2(float64(p.FollowerCount)+1)
	score += math.Min(followerPoints, 8)

	if p.FollowerCount > 0 {
		ratio := float64(p.FollowingCount) / float64(p.FollowerCount)
		switch {
		case ratio < 3:
			score += 2
		case ratio < 10:
			score++
		}
	} else if p.FollowingCount == 0 {
		// No graph at all: ratio is 0, lowest band applies.
		score += 2
	}

	if p.Verified {
		score += 3
	}
	if p.Premium {
		score += 2
	}

	switch {
	case in.MutualFollowRatio >= 0.40:
		score += 3
	case in.MutualFollowRatio >= 0.20:
		score += 2
	case in.MutualFollowRatio >= 0.10:
		score++
	}

	switch {
	case in.NetworkTrustAvg >= 3.5:
		score += 2
	case in.NetworkTrustAvg >= 2.5:
		score++
	}

	switch {
	case in.UniqueProfileVisitors >= 50:
		score += 3
	case in.UniqueProfileVisitors >= 20:
		score += 2
	case in.UniqueProfileVisitors >= 5:
		score++
	}

	return clamp(score, 0, socialTrustCap)
}

// contentQualityScore rewards posts that people actually read and engage
// with (cap 20).
//
// Engagement rate is averaged over posts with at least 10 unique views:
// >=0.15:+6, >=0.08:+4, >=0.03:+3, >0:+1. Qualified-read ratio
// (qualifiedReads/totalViews): >=0.30:+4, >=0.15:+2, >=0.05:+1. Trending
// posts (trending score > 10): >=3:+3, >=1:+2. Content depth is split by
// type: text posts by average word count (>=300:+2, >=100:+1), video/moment
// posts by average engagements (>=20:+2, >=5:+1). Average read duration
// applies to text posts only: >=120s:+2, >=60s:+1, and -2 when under 15s
// with at least 50 total views. Discussion posts: >=3:+2, >=1:+1.
func contentQualityScore(in *ScoreInputs) float64 {
	score := 0.0

	rate := avgEngagementRate(in.PostStats)
	switch {
	case rate >= 0.15:
		score += 6
	case rate >= 0.08:
		score += 4
	case rate >= 0.03:
		score += 3
	case rate > 0:
		score++
	}

	readRatio := safeRatio(float64(in.QualifiedReadCount), float64(in.Profile.TotalViewsReceived))
	switch {
	case readRatio >= 0.30:
		score += 4
	case readRatio >= 0.15:
		score += 2
	case readRatio >= 0.05:
		score++
	}

	trending := 0
	for i := range in.PostStats {
		if in.PostStats[i].TrendingScore > 10 {
			trending++
		}
	}
	switch {
	case trending >= 3:
		score += 3
	case trending >= 1:
		score += 2
	}

	score += contentDepthScore(in.PostStats)

	hasText := false
	for i := range in.PostStats {
		if in.PostStats[i].Type == ContentTypePost {
			hasText = true
			break
		}
	}
	if hasText {
		switch {
		case in.AvgReadDuration >= 120:
			score += 2
		case in.AvgReadDuration >= 60:
			score++
		case in.AvgReadDuration < 15 && in.Profile.TotalViewsReceived >= 50:
			// Likely bounce or bot traffic; video content is exempt since
			// short reads are normal there.
			score -= 2
		}
	}

	switch {
	case in.DiscussionPostCount >= 3:
		score += 2
	case in.DiscussionPostCount >= 1:
		score++
	}

	return clamp(score, 0, contentQualityCap)
}

// avgEngagementRate averages (likes+comments+saves)/views over posts with at
// least 10 unique views. Posts below the view threshold are excluded so a
// handful of views cannot fake a high rate.
func avgEngagementRate(stats []PostStat) float64 {
	sum := 0.0
	qualified := 0
	for i := range stats {
		s := &stats[i]
		if s.UniqueViewCount < 10 {
			continue
		}
		sum += float64(s.Engagements()) / float64(s.UniqueViewCount)
		qualified++
	}

	return safeRatio(sum, float64(qualified))
}

// contentDepthScore awards depth per content-type group. Text posts are
// measured by average word count, video/moment posts by average engagements;
// each group contributes at most 2 points.
func contentDepthScore(stats []PostStat) float64 {
	var textWords, textCount, mediaEng, mediaCount int
	for i := range stats {
		s := &stats[i]
		if s.Type == ContentTypePost {
			textWords += s.WordCount
			textCount++
		} else {
			mediaEng += s.Engagements()
			mediaCount++
		}
	}

	score := 0.0
	if textCount > 0 {
		avgWords := float64(textWords) / float64(textCount)
		switch {
		case avgWords >= 300:
			score += 2
		case avgWords >= 100:
			score++
		}
	}
	if mediaCount > 0 {
		avgEng := float64(mediaEng) / float64(mediaCount)
		switch {
		case avgEng >= 20:
			score += 2
		case avgEng >= 5:
			score++
		}
	}

	return score
}

// engagementQualityScore rewards engagement that looks organic (cap 16).
//
// Comment likes received: >=100:+5, >=30:+4, >=10:+3, >=3:+1. Gifts received
// (coins): >=500:+5, >=100:+4, >=20:+2, >=1:+1. Engagement channel diversity
// (how many of likes/comments/saves/shares are non-zero): 4:+5, 3:+3, 2:+2.
// Comment reply ratio: >=0.50:+3, >=0.25:+2, >=0.10:+1. Organic comment
// ratio: >=0.80:+2, >=0.50:+1. Social shares: >=20:+2, >=5:+1.
func engagementQualityScore(in *ScoreInputs) float64 {
	score := 0.0

	switch {
	case in.CommentLikesReceived >= 100:
		score += 5
	case in.CommentLikesReceived >= 30:
		score += 4
	case in.CommentLikesReceived >= 10:
		score += 3
	case in.CommentLikesReceived >= 3:
		score++
	}

	switch {
	case in.GiftsReceivedCoins >= 500:
		score += 5
	case in.GiftsReceivedCoins >= 100:
		score += 4
	case in.GiftsReceivedCoins >= 20:
		score += 2
	case in.GiftsReceivedCoins >= 1:
		score++
	}

	channels := 0
	for _, total := range []int{
		in.TotalLikesReceived,
		in.TotalCommentsOnPosts,
		in.TotalSavesReceived,
		in.TotalSharesReceived,
	} {
		if total > 0 {
			channels++
		}
	}
	switch {
	case channels >= 4:
		score += 5
	case channels >= 3:
		score += 3
	case channels >= 2:
		score += 2
	}

	switch {
	case in.CommentReplyRatio >= 0.50:
		score += 3
	case in.CommentReplyRatio >= 0.25:
		score += 2
	case in.CommentReplyRatio >= 0.10:
		score++
	}

	switch {
	case in.OrganicCommentRatio >= 0.80:
		score += 2
	case in.OrganicCommentRatio >= 0.50:
		score++
	}

	switch {
	case in.SocialShareCount >= 20:
		score += 2
	case in.SocialShareCount >= 5:
		score++
	}

	return clamp(score, 0, engagementQualityCap)
}

// economicActivityScore rewards participation in the coin economy (cap 8).
//
// Earned coins: >=1000:+4, >=200:+3, >=50:+2, >=5:+1. Gifts sent: >=100:+3,
// >=20:+2, >=1:+1. Save rate (saves/views): >=0.05:+3, >=0.02:+2,
// >=0.005:+1. Gift sender diversity: >=10:+3, >=5:+2, >=3:+1.
func economicActivityScore(in *ScoreInputs) float64 {
	score := 0.0

	switch {
	case in.Profile.TotalEarnedCoins >= 1000:
		score += 4
	case in.Profile.TotalEarnedCoins >= 200:
		score += 3
	case in.Profile.TotalEarnedCoins >= 50:
		score += 2
	case in.Profile.TotalEarnedCoins >= 5:
		score++
	}

	switch {
	case in.GiftsSentCoins >= 100:
		score += 3
	case in.GiftsSentCoins >= 20:
		score += 2
	case in.GiftsSentCoins >= 1:
		score++
	}

	saveRate := safeRatio(float64(in.TotalSavesReceived), float64(in.Profile.TotalViewsReceived))
	switch {
	case saveRate >= 0.05:
		score += 3
	case saveRate >= 0.02:
		score += 2
	case saveRate >= 0.005:
		score++
	}

	switch {
	case in.GiftSenderDiversity >= 10:
		score += 3
	case in.GiftSenderDiversity >= 5:
		score += 2
	case in.GiftSenderDiversity >= 3:
		score++
	}

	return clamp(score, 0, economicActivityCap)
}

// consumerScore rewards reading and engaging with other people's content
// (cap 8). Liked posts: >=50:+3, >=20:+2, >=5:+1. Saved posts: >=20:+3,
// >=10:+2, >=3:+1. Comments on others: >=30:+2, >=10:+1.
func consumerScore(in *ScoreInputs) float64 {
	score := 0.0

	switch {
	case in.LikedOtherPostsCount >= 50:
		score += 3
	case in.LikedOtherPostsCount >= 20:
		score += 2
	case in.LikedOtherPostsCount >= 5:
		score++
	}

	switch {
	case in.SavedOtherPostsCount >= 20:
		score += 3
	case in.SavedOtherPostsCount >= 10:
		score += 2
	case in.SavedOtherPostsCount >= 3:
		score++
	}

	switch {
	case in.CommentedOnOthersCount >= 30:
		score += 2
	case in.CommentedOnOthersCount >= 10:
		score++
	}

	return clamp(score, 0, consumerCap)
}

// penaltyScore sums all negative signals. The result is non-positive and
// unbounded; rehabilitation decay is applied by the aggregator. Every ladder
// is checked highest-threshold-first and applies a single band per metric.
func penaltyScore(in *ScoreInputs) float64 {
	p := &in.Profile
	penalty := 0.0

	switch {
	case in.BlocksReceived > 10:
		penalty -= 20
	case in.BlocksReceived >= 6:
		penalty -= 10
	case in.BlocksReceived >= 3:
		penalty -= 5
	case in.BlocksReceived >= 1:
		penalty -= 2
	}

	switch {
	case in.ReportsReceived > 5:
		penalty -= 15
	case in.ReportsReceived >= 3:
		penalty -= 8
	case in.ReportsReceived >= 1:
		penalty -= 3
	}

	switch {
	case in.ModerationActionCount >= 4:
		penalty -= 20
	case in.ModerationActionCount >= 2:
		penalty -= 10
	case in.ModerationActionCount >= 1:
		penalty -= 5
	}

	switch p.Status {
	case AccountStatusBlocked:
		penalty -= 30
	case AccountStatusModeration:
		penalty -= 15
	case AccountStatusFrozen:
		penalty -= 10
	}

	if in.TotalCommentCount > 5 {
		badRatio := float64(in.SpamCommentCount+in.RemovedCommentCount) / float64(in.TotalCommentCount)
		switch {
		case badRatio >= 0.30:
			penalty -= 8
		case badRatio >= 0.15:
			penalty -= 4
		}
	}

	if in.PublishedPostCount >= 3 && in.RejectedNSFWPostCount >= 1 {
		nsfwRatio := safeRatio(
			float64(in.RejectedNSFWPostCount),
			float64(in.PublishedPostCount+in.RemovedPostCount),
		)
		switch {
		case nsfwRatio > 0.50:
			penalty -= 10
		case nsfwRatio > 0.30:
			penalty -= 6
		case nsfwRatio > 0.10:
			penalty -= 3
		}
	}

	switch {
	case in.PostAndDeleteCount >= 10:
		penalty -= 15
	case in.PostAndDeleteCount >= 5:
		penalty -= 10
	case in.PostAndDeleteCount >= 3:
		penalty -= 5
	case in.PostAndDeleteCount >= 1:
		penalty -= 2
	}

	if in.PublishedPostCount >= 3 {
		switch {
		case in.LowEffortPostRatio >= 0.60:
			penalty -= 12
		case in.LowEffortPostRatio >= 0.40:
			penalty -= 8
		case in.LowEffortPostRatio >= 0.20:
			penalty -= 4
		}
	}

	switch {
	case in.DuplicateContentCount >= 5:
		penalty -= 20
	case in.DuplicateContentCount >= 3:
		penalty -= 12
	case in.DuplicateContentCount >= 2:
		penalty -= 8
	case in.DuplicateContentCount >= 1:
		penalty -= 4
	}

	if in.PublishedPostCount >= 5 {
		switch {
		case in.OneLinerNoMediaRatio >= 0.70:
			penalty -= 10
		case in.OneLinerNoMediaRatio >= 0.50:
			penalty -= 6
		case in.OneLinerNoMediaRatio >= 0.30:
			penalty -= 3
		}
	}

	if in.PublishedPostCount >= 3 {
		switch {
		case in.WeirdCharacterRatio >= 0.50:
			penalty -= 10
		case in.WeirdCharacterRatio >= 0.30:
			penalty -= 6
		case in.WeirdCharacterRatio >= 0.15:
			penalty -= 3
		}
	}

	switch {
	case in.CopyrightStrikeCount >= 10:
		penalty -= 40
	case in.CopyrightStrikeCount >= 7:
		penalty -= 30
	case in.CopyrightStrikeCount >= 5:
		penalty -= 22
	case in.CopyrightStrikeCount >= 3:
		penalty -= 15
	}

	return penalty
}
