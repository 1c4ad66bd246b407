package domain

// Dimension caps for the profile spam score.
const (
	moderationHistoryCap = 30
	behavioralCap        = 30
	communitySignalCap   = 20
	rateLimitCap         = 20
	followerLossCap      = 15
	manipulationCap      = 20
)

// SpamFlagThreshold is the score at which callers typically forward the
// profile to moderation. The engine itself attaches no meaning to it.
const SpamFlagThreshold = 70

// CalculateSpamScore computes the spam/abuse likelihood for a profile.
//
// Six independent dimensions are summed and clamped to [0, 100]:
// moderation history, behavioral patterns, community signals, rate-limit
// violations, follower loss and manipulation signals. Blocks and reports are
// deliberately not counted here: they already penalize the profile score.
//
// Rehabilitation decay by days since the last moderation event:
//
//	< 3 days (or never): 1.0
//	>= 3 days: 0.8
//	>= 7 days: 0.6
//	>= 14 days: 0.4
//
// Shadow-banned accounts get +50 after decay, capped at 100. The result
// carries 2 decimal places.
func CalculateSpamScore(in *ScoreInputs) float64 {
	if in == nil {
		return 0
	}
	now := in.At()

	raw := moderationHistorySpam(in) +
		behavioralSpam(in) +
		communitySignalSpam(in) +
		rateLimitSpam(in) +
		followerLossSpam(in) +
		manipulationSpam(in)

	raw = clamp(raw, 0, 100)

	decayed := raw * rehabilitationFactor(daysSinceNullable(in.LastModerationDate, now))

	if in.Profile.ShadowBanned {
		return roundTo2Decimals(clamp(decayed+shadowBanPenalty, 0, 100))
	}

	return roundTo2Decimals(clamp(decayed, 0, 100))
}

// rehabilitationFactor maps days since the last moderation event to a decay
// multiplier. days < 0 means "never observed" and keeps the full score.
func rehabilitationFactor(days int) float64 {
	switch {
	case days < 0:
		return 1.0
	case days >= 14:
		return 0.4
	case days >= 7:
		return 0.6
	case days >= 3:
		return 0.8
	default:
		return 1.0
	}
}

// moderationHistorySpam scores removed content history (cap 30).
//
// Removed posts: >=10:20, >=5:12, >=3:8, >=1:4. Removed or spam-flagged
// comments: >=20:10, >=10:6, >=5:3.
func moderationHistorySpam(in *ScoreInputs) float64 {
	score := 0.0

	switch {
	case in.RemovedPostCount >= 10:
		score += 20
	case in.RemovedPostCount >= 5:
		score += 12
	case in.RemovedPostCount >= 3:
		score += 8
	case in.RemovedPostCount >= 1:
		score += 4
	}

	badComments := in.RemovedCommentCount + in.SpamCommentCount
	switch {
	case badComments >= 20:
		score += 10
	case badComments >= 10:
		score += 6
	case badComments >= 5:
		score += 3
	}

	return clamp(score, 0, moderationHistoryCap)
}

// behavioralSpam scores machine-like posting patterns (cap 30).
//
// Burst posting: >=5:12, >=3:8, >=1:4. High-frequency comment bursts:
// >=5:8, >=2:4. Low average word count with at least 3 published posts:
// <5:8, <15:4. Duplicate comment groups: >=5:10, >=3:6, >=1:3. Mass
// deletes: >=3:8, >=1:4.
func behavioralSpam(in *ScoreInputs) float64 {
	score := 0.0

	switch {
	case in.BurstPostingCount >= 5:
		score += 12
	case in.BurstPostingCount >= 3:
		score += 8
	case in.BurstPostingCount >= 1:
		score += 4
	}

	switch {
	case in.HighFrequencyComments >= 5:
		score += 8
	case in.HighFrequencyComments >= 2:
		score += 4
	}

	if in.PublishedPostCount >= 3 {
		switch {
		case in.AvgWordCount < 5:
			score += 8
		case in.AvgWordCount < 15:
			score += 4
		}
	}

	switch {
	case in.DuplicateCommentGroups >= 5:
		score += 10
	case in.DuplicateCommentGroups >= 3:
		score += 6
	case in.DuplicateCommentGroups >= 1:
		score += 3
	}

	switch {
	case in.MassDeleteCount >= 3:
		score += 8
	case in.MassDeleteCount >= 1:
		score += 4
	}

	return clamp(score, 0, behavioralCap)
}

// communitySignalSpam scores follow-graph abuse patterns (cap 20).
//
// The classic follow-spam shape is zero followers with aggressive following:
// followers == 0 and following >=200:20, >=100:12, >=50:6. Accounts with
// followers are scored on the following/follower ratio when following is
// non-trivial: ratio >=20 with following >=100: 8.
func communitySignalSpam(in *ScoreInputs) float64 {
	p := &in.Profile
	score := 0.0

	if p.FollowerCount == 0 {
		switch {
		case p.FollowingCount >= 200:
			score += 20
		case p.FollowingCount >= 100:
			score += 12
		case p.FollowingCount >= 50:
			score += 6
		}
	} else if p.FollowingCount >= 100 {
		ratio := float64(p.FollowingCount) / float64(p.FollowerCount)
		if ratio >= 20 {
			score += 8
		}
	}

	return clamp(score, 0, communitySignalCap)
}

// rateLimitSpam scores rate-limit violations (cap 20).
//
// Total hits across all actions: >=50:12, >=20:8, >=10:5, >=3:2. Distinct
// actions with at least one hit: >=4:8, >=2:4, >=1:1.
func rateLimitSpam(in *ScoreInputs) float64 {
	total := 0
	distinct := 0
	for _, hit := range in.RateLimitHits {
		if hit.Count > 0 {
			total += hit.Count
			distinct++
		}
	}

	score := 0.0
	switch {
	case total >= 50:
		score += 12
	case total >= 20:
		score += 8
	case total >= 10:
		score += 5
	case total >= 3:
		score += 2
	}

	switch {
	case distinct >= 4:
		score += 8
	case distinct >= 2:
		score += 4
	case distinct >= 1:
		score++
	}

	return clamp(score, 0, rateLimitCap)
}

// followerLossSpam scores rapid follower loss, a strong signal that recent
// behavior drove the audience away (cap 15). Loss in the last 7 days:
// >=100:15, >=50:10, >=20:6, >=5:3.
func followerLossSpam(in *ScoreInputs) float64 {
	switch {
	case in.FollowerLossLast7 >= 100:
		return 15
	case in.FollowerLossLast7 >= 50:
		return 10
	case in.FollowerLossLast7 >= 20:
		return 6
	case in.FollowerLossLast7 >= 5:
		return 3
	default:
		return 0
	}
}

// manipulationSpam scores engagement-gaming signals (cap 20).
//
// Gift concentration: a single sender supplying >=80% of >=100 received
// coins: 8; >=60%: 5. Suspicious withdrawals: >=3:6, >=1:3. Self-comment
// ratio >=0.30 with fewer than 5 distinct comment authors: 6. Average
// mentions per post: >=5:4, >=3:2.
func manipulationSpam(in *ScoreInputs) float64 {
	score := 0.0

	if in.GiftsReceivedCoins >= 100 {
		switch {
		case in.TopGiftSenderRatio >= 0.80:
			score += 8
		case in.TopGiftSenderRatio >= 0.60:
			score += 5
		}
	}

	switch {
	case in.SuspiciousWithdrawalCount >= 3:
		score += 6
	case in.SuspiciousWithdrawalCount >= 1:
		score += 3
	}

	if in.SelfCommentRatio >= 0.30 && in.CommentAuthorDiversity < 5 {
		score += 6
	}

	switch {
	case in.AvgMentionsPerPost >= 5:
		score += 4
	case in.AvgMentionsPerPost >= 3:
		score += 2
	}

	return clamp(score, 0, manipulationCap)
}
