package domain

import (
	"math"
	"testing"
	"time"
)

const floatTolerance = 1e-9

// fixedNow keeps every test deterministic: inputs pin AsOf so repeated runs
// (and repeated calls) see the same day boundaries.
var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func emptyInputs(createdAt time.Time) *ScoreInputs {
	return &ScoreInputs{
		Profile: ProfileData{
			ID:        "user-1",
			Status:    AccountStatusActive,
			CreatedAt: createdAt,
		},
		AsOf: fixedNow,
	}
}

func healthyCreatorInputs() *ScoreInputs {
	birth := time.Date(1992, 3, 1, 0, 0, 0, 0, time.UTC)
	in := emptyInputs(fixedNow.AddDate(0, 0, -400))
	in.Profile.AvatarURL = "https://cdn.example.com/a.png"
	in.Profile.Bio = "writes about distributed systems"
	in.Profile.Website = "https://example.com"
	in.Profile.FullName = "Jordan Blake"
	in.Profile.Gender = "nonbinary"
	in.Profile.BirthDate = &birth
	in.Profile.EmailVerified = true
	in.Profile.PhoneVerified = true
	in.Profile.AccountType = "creator"
	in.Profile.Verified = true
	in.Profile.Premium = true
	in.Profile.FollowerCount = 500
	in.Profile.FollowingCount = 100
	in.Profile.PostCount = 40
	in.Profile.TotalEarnedCoins = 500
	in.Profile.TotalViewsReceived = 10000

	in.PublishedPostCount = 40
	in.RecentPostCount = 4
	in.ActiveDaysLast30 = 28
	in.LoginStreak = 20
	in.PostStats = []PostStat{
		{UniqueViewCount: 100, LikeCount: 8, CommentCount: 1, SaveCount: 1, Type: ContentTypePost, WordCount: 350, TrendingScore: 15},
		{UniqueViewCount: 100, LikeCount: 7, CommentCount: 2, SaveCount: 1, Type: ContentTypePost, WordCount: 380},
		{UniqueViewCount: 100, LikeCount: 9, CommentCount: 0, SaveCount: 1, Type: ContentTypePost, WordCount: 320},
	}
	in.QualifiedReadCount = 2000
	in.AvgWordCount = 350
	in.AvgReadDuration = 90
	in.DiscussionPostCount = 4
	in.CommentLikesReceived = 50
	in.GiftsReceivedCoins = 150
	in.GiftsSentCoins = 30
	in.GiftSenderDiversity = 8
	in.TotalLikesReceived = 800
	in.TotalCommentsOnPosts = 120
	in.TotalSavesReceived = 300
	in.TotalSharesReceived = 40
	in.CommentReplyRatio = 0.30
	in.OrganicCommentRatio = 0.85
	in.SocialShareCount = 25
	in.MutualFollowRatio = 0.25
	in.NetworkTrustAvg = 3.0
	in.UniqueProfileVisitors = 60
	in.LikedOtherPostsCount = 30
	in.SavedOtherPostsCount = 12
	in.CommentedOnOthersCount = 15

	return in
}

func abusiveInputs() *ScoreInputs {
	in := emptyInputs(fixedNow.AddDate(0, 0, -400))
	in.Profile.Status = AccountStatusModeration
	in.Profile.PostCount = 12
	in.Profile.FollowingCount = 250

	in.PublishedPostCount = 12
	in.RemovedPostCount = 12
	in.TotalCommentCount = 30
	in.SpamCommentCount = 20
	in.RemovedCommentCount = 5
	in.BlocksReceived = 12
	in.ReportsReceived = 6
	in.ModerationActionCount = 4
	in.CopyrightStrikeCount = 10
	in.BurstPostingCount = 6
	in.HighFrequencyComments = 6
	in.AvgWordCount = 3
	in.DuplicateCommentGroups = 6
	in.MassDeleteCount = 4
	in.RateLimitHits = []RateLimitHit{
		{Action: "post_create", Count: 20},
		{Action: "comment_create", Count: 20},
		{Action: "follow", Count: 10},
		{Action: "like", Count: 5},
		{Action: "gift_send", Count: 5},
	}
	in.FollowerLossLast7 = 120
	in.GiftsReceivedCoins = 200
	in.TopGiftSenderRatio = 0.9
	in.SuspiciousWithdrawalCount = 4
	in.SelfCommentRatio = 0.5
	in.CommentAuthorDiversity = 2
	in.AvgMentionsPerPost = 6
	lastMod := fixedNow.AddDate(0, 0, -1)
	in.LastModerationDate = &lastMod

	return in
}

// Scenario A: brand-new account with zero activity lands exactly on the
// new-account floor.
func TestCalculateProfileScore_NewUserFloor(t *testing.T) {
	in := emptyInputs(fixedNow.AddDate(0, 0, -1))

	// completeness 0, activity clamps to 4 (new-account band), social
	// trust 2 (empty graph ratio bonus), everything else 0.
	// 4 + 2 = 6, floored to 10.
	score := CalculateProfileScore(in)
	if score != 10 {
		t.Errorf("CalculateProfileScore() = %v, want 10", score)
	}

	if spam := CalculateSpamScore(in); spam != 0 {
		t.Errorf("CalculateSpamScore() = %v, want 0", spam)
	}
}

// Scenario B: healthy established creator scores in the upper range.
func TestCalculateProfileScore_HealthyCreator(t *testing.T) {
	in := healthyCreatorInputs()

	// completeness 12 (capped from 15)
	// activity: posts 40 -> 5, recent +2, active days 28 -> +3,
	//           streak 20 -> +2, age 400d -> +2 = 14
	// social trust 16 (capped: 8 follower log + 2 ratio + 3 verified
	//                  + 2 premium + 2 mutual + 1 network + 3 visitors)
	// content quality: rate 0.1 -> +4, read ratio 0.2 -> +2,
	//                  1 trending -> +2, depth +2, read duration 90s -> +1,
	//                  discussion 4 -> +2 = 13
	// engagement 16 (capped from 4+4+5+2+2+2 = 19)
	// economic 8 (capped from 3+2+2+2 = 9)
	// consumer: 2 + 2 + 1 = 5
	// total = 12 + 14 + 16 + 13 + 16 + 8 + 5 = 84
	score := CalculateProfileScore(in)
	if score != 84 {
		t.Errorf("CalculateProfileScore() = %v, want 84", score)
	}

	if spam := CalculateSpamScore(in); spam != 0 {
		t.Errorf("CalculateSpamScore() = %v, want 0", spam)
	}
}

// Scenario C: heavy penalty stacking drives the score to the floor, not
// below it, and the spam score to the ceiling.
func TestCalculateProfileScore_AbusiveAccount(t *testing.T) {
	in := abusiveInputs()

	if score := CalculateProfileScore(in); score != 0 {
		t.Errorf("CalculateProfileScore() = %v, want 0", score)
	}

	if spam := CalculateSpamScore(in); spam != 100 {
		t.Errorf("CalculateSpamScore() = %v, want 100", spam)
	}
}

// Scenario D: fractional follower contribution must round to exactly 2
// decimal places.
func TestCalculateProfileScore_Rounding(t *testing.T) {
	in := emptyInputs(fixedNow.AddDate(0, 0, -400))
	in.Profile.FollowerCount = 2

	// social trust: 2*log2(3) = 3.16992... plus ratio bonus +2
	// activity: age +2, inactivity -2 = 0
	// total 5.16992... -> 5.17
	score := CalculateProfileScore(in)
	if score != 5.17 {
		t.Errorf("CalculateProfileScore() = %v, want 5.17", score)
	}
}

func TestCalculateProfileScore_Determinism(t *testing.T) {
	in := healthyCreatorInputs()

	first := CalculateProfileScore(in)
	second := CalculateProfileScore(in)
	if first != second {
		t.Errorf("scores differ across calls: %v vs %v", first, second)
	}
}

func TestCalculateProfileScore_NilInputs(t *testing.T) {
	if score := CalculateProfileScore(nil); score != 0 {
		t.Errorf("CalculateProfileScore(nil) = %v, want 0", score)
	}
	if spam := CalculateSpamScore(nil); spam != 0 {
		t.Errorf("CalculateSpamScore(nil) = %v, want 0", spam)
	}
}

func TestCalculateProfileScore_ShadowBanEffect(t *testing.T) {
	in := healthyCreatorInputs()
	base := CalculateProfileScore(in)

	in.Profile.ShadowBanned = true
	banned := CalculateProfileScore(in)

	want := math.Max(0, base-50)
	if banned != want {
		t.Errorf("shadow-banned score = %v, want %v (base %v - 50)", banned, want, base)
	}
}

func TestCalculateSpamScore_ShadowBanEffect(t *testing.T) {
	in := emptyInputs(fixedNow.AddDate(0, 0, -400))
	in.BurstPostingCount = 3 // behavioral +8

	base := CalculateSpamScore(in)
	if base != 8 {
		t.Fatalf("base spam = %v, want 8", base)
	}

	in.Profile.ShadowBanned = true
	if banned := CalculateSpamScore(in); banned != 58 {
		t.Errorf("shadow-banned spam = %v, want 58", banned)
	}
}

func TestCalculateSpamScore_ShadowBanCapsAt100(t *testing.T) {
	in := abusiveInputs()
	in.Profile.ShadowBanned = true

	if spam := CalculateSpamScore(in); spam != 100 {
		t.Errorf("spam = %v, want 100", spam)
	}
}

// New-account floor holds even under maximal penalties.
func TestCalculateProfileScore_NewAccountFloorUnderPenalties(t *testing.T) {
	in := abusiveInputs()
	in.Profile.CreatedAt = fixedNow.AddDate(0, 0, -2)

	if score := CalculateProfileScore(in); score != 10 {
		t.Errorf("CalculateProfileScore() = %v, want floor 10", score)
	}
}

func TestCalculateProfileScore_Boundedness(t *testing.T) {
	inputs := []*ScoreInputs{
		emptyInputs(fixedNow),
		emptyInputs(fixedNow.AddDate(-20, 0, 0)),
		healthyCreatorInputs(),
		abusiveInputs(),
	}

	// Max out every positive signal on an elderly account.
	maxed := healthyCreatorInputs()
	maxed.Profile.CreatedAt = fixedNow.AddDate(-15, 0, 0)
	maxed.Profile.FollowerCount = 10_000_000
	maxed.Profile.TotalEarnedCoins = 1_000_000
	maxed.GiftsReceivedCoins = 1_000_000
	maxed.CommentLikesReceived = 1_000_000
	maxed.UniqueProfileVisitors = 1_000_000
	inputs = append(inputs, maxed)

	for _, in := range inputs {
		score := CalculateProfileScore(in)
		if score < 0 || score > 100 {
			t.Errorf("profile score %v out of [0,100]", score)
		}
		spam := CalculateSpamScore(in)
		if spam < 0 || spam > 100 {
			t.Errorf("spam score %v out of [0,100]", spam)
		}
	}
}

// Social trust must never decrease as followers grow.
func TestSocialTrustScore_FollowerMonotonicity(t *testing.T) {
	prev := -1.0
	for _, followers := range []int{0, 1, 5, 10, 100, 1000, 100000} {
		in := emptyInputs(fixedNow.AddDate(0, 0, -400))
		in.Profile.FollowerCount = followers

		score := socialTrustScore(in)
		if score < prev {
			t.Errorf("social trust dropped from %v to %v at %d followers", prev, score, followers)
		}
		prev = score
	}
}

// Penalties must only grow (more negative) as blocks accumulate.
func TestPenaltyScore_BlocksMonotonicity(t *testing.T) {
	prev := 1.0
	for _, blocks := range []int{0, 1, 3, 6, 11} {
		in := emptyInputs(fixedNow.AddDate(0, 0, -400))
		in.BlocksReceived = blocks

		p := penaltyScore(in)
		if p > prev {
			t.Errorf("penalty weakened from %v to %v at %d blocks", prev, p, blocks)
		}
		prev = p
	}
}

func TestCalculateProfileScore_StrikeMonotonicity(t *testing.T) {
	prev := 101.0
	for _, strikes := range []int{0, 3, 5, 7, 10} {
		in := healthyCreatorInputs()
		in.CopyrightStrikeCount = strikes

		score := CalculateProfileScore(in)
		if score > prev {
			t.Errorf("score rose from %v to %v at %d strikes", prev, score, strikes)
		}
		prev = score
	}
}

func TestPenaltyDecayFactor(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		expected float64
	}{
		{"never observed", -1, 1.0},
		{"same day", 0, 1.0},
		{"13 days", 13, 1.0},
		{"14 days", 14, 0.7},
		{"29 days", 29, 0.7},
		{"30 days", 30, 0.5},
		{"59 days", 59, 0.5},
		{"60 days", 60, 0.3},
		{"one year", 365, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := penaltyDecayFactor(tt.days); got != tt.expected {
				t.Errorf("penaltyDecayFactor(%d) = %v, want %v", tt.days, got, tt.expected)
			}
		})
	}
}

// Older penalty events must hurt less than recent ones.
func TestCalculateProfileScore_PenaltyDecay(t *testing.T) {
	build := func(daysAgo int) *ScoreInputs {
		in := healthyCreatorInputs()
		in.BlocksReceived = 12 // -20 raw
		d := fixedNow.AddDate(0, 0, -daysAgo)
		in.LastPenaltyDate = &d
		return in
	}

	recent := CalculateProfileScore(build(10)) // factor 1.0 -> -20
	old := CalculateProfileScore(build(70))    // factor 0.3 -> -6

	if old <= recent {
		t.Errorf("decayed penalty should score higher: 70d=%v, 10d=%v", old, recent)
	}
	if recent != 64 {
		t.Errorf("recent penalty score = %v, want 64", recent)
	}
	if old != 78 {
		t.Errorf("old penalty score = %v, want 78", old)
	}
}

func TestActivityScore_NewAccountBand(t *testing.T) {
	// Even a completely inactive 2-day-old account holds the 4-point band.
	in := emptyInputs(fixedNow.AddDate(0, 0, -2))
	if got := activityScore(in); got != 4 {
		t.Errorf("activityScore() = %v, want 4", got)
	}

	// A hyperactive new account still cannot exceed the cap.
	in.Profile.PostCount = 100
	in.RecentPostCount = 30
	in.ActiveDaysLast30 = 30
	in.LoginStreak = 40
	if got := activityScore(in); got > activityCap {
		t.Errorf("activityScore() = %v, want <= %v", got, activityCap)
	}
}

func TestActivityScore_InactivityPenaltySparesNewAccounts(t *testing.T) {
	aged := emptyInputs(fixedNow.AddDate(0, 0, -100))
	aged.Profile.PostCount = 3 // +2
	// 100-day age band +1, inactivity -2 = 1
	if got := activityScore(aged); got != 1 {
		t.Errorf("aged activityScore() = %v, want 1", got)
	}
}

func TestSocialTrustScore_FollowRatioBands(t *testing.T) {
	tests := []struct {
		name      string
		followers int
		following int
		expected  float64
	}{
		// 100 followers saturate the log contribution at 8; the ratio
		// band is the only moving part.
		{"balanced graph", 100, 50, 10},
		{"heavy following", 100, 500, 9},
		{"follow spam shape", 100, 2000, 8},
		{"zero followers following many", 0, 500, 0},
		{"empty graph", 0, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := emptyInputs(fixedNow.AddDate(0, 0, -400))
			in.Profile.FollowerCount = tt.followers
			in.Profile.FollowingCount = tt.following

			if got := socialTrustScore(in); math.Abs(got-tt.expected) > floatTolerance {
				t.Errorf("socialTrustScore() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestContentQualityScore_ReadDurationPenalty(t *testing.T) {
	in := emptyInputs(fixedNow.AddDate(0, 0, -400))
	in.Profile.TotalViewsReceived = 100
	in.PostStats = []PostStat{{Type: ContentTypePost, UniqueViewCount: 5}}
	in.AvgReadDuration = 5

	// Only signal is the bounce penalty, clamped at the 0 floor.
	if got := contentQualityScore(in); got != 0 {
		t.Errorf("contentQualityScore() = %v, want 0", got)
	}

	// The same read duration on a video-only profile is not penalized.
	in.PostStats = []PostStat{{Type: ContentTypeVideo, UniqueViewCount: 5}}
	if got := contentQualityScore(in); got != 0 {
		t.Errorf("video profile contentQualityScore() = %v, want 0", got)
	}
}

func TestAvgEngagementRate_ExcludesLowViewPosts(t *testing.T) {
	stats := []PostStat{
		{UniqueViewCount: 5, LikeCount: 5},    // below threshold, excluded
		{UniqueViewCount: 100, LikeCount: 10}, // 0.1
		{UniqueViewCount: 200, LikeCount: 10}, // 0.05
	}

	got := avgEngagementRate(stats)
	if math.Abs(got-0.075) > floatTolerance {
		t.Errorf("avgEngagementRate() = %v, want 0.075", got)
	}

	if got := avgEngagementRate(nil); got != 0 {
		t.Errorf("avgEngagementRate(nil) = %v, want 0", got)
	}
}

func TestRehabilitationFactor(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		expected float64
	}{
		{"never moderated", -1, 1.0},
		{"yesterday", 1, 1.0},
		{"3 days", 3, 0.8},
		{"6 days", 6, 0.8},
		{"7 days", 7, 0.6},
		{"13 days", 13, 0.6},
		{"14 days", 14, 0.4},
		{"90 days", 90, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rehabilitationFactor(tt.days); got != tt.expected {
				t.Errorf("rehabilitationFactor(%d) = %v, want %v", tt.days, got, tt.expected)
			}
		})
	}
}

func TestCalculateSpamScore_RehabilitationDecay(t *testing.T) {
	build := func(daysAgo *int) *ScoreInputs {
		in := emptyInputs(fixedNow.AddDate(0, 0, -400))
		in.BurstPostingCount = 6      // +12
		in.DuplicateCommentGroups = 6 // +10
		if daysAgo != nil {
			d := fixedNow.AddDate(0, 0, -*daysAgo)
			in.LastModerationDate = &d
		}
		return in
	}

	// nil date keeps the raw score
	if got := CalculateSpamScore(build(nil)); got != 22 {
		t.Errorf("undecayed spam = %v, want 22", got)
	}

	ten := 10
	if got := CalculateSpamScore(build(&ten)); got != 13.2 {
		t.Errorf("10-day decayed spam = %v, want 13.2", got)
	}

	thirty := 30
	if got := CalculateSpamScore(build(&thirty)); got != 8.8 {
		t.Errorf("30-day decayed spam = %v, want 8.8", got)
	}
}

func TestRateLimitSpam(t *testing.T) {
	tests := []struct {
		name     string
		hits     []RateLimitHit
		expected float64
	}{
		{"no hits", nil, 0},
		{"single action few hits", []RateLimitHit{{Action: "post_create", Count: 4}}, 3},   // 2 + 1
		{"zero counts ignored", []RateLimitHit{{Action: "like", Count: 0}}, 0},
		{"many actions many hits", []RateLimitHit{
			{Action: "post_create", Count: 30},
			{Action: "comment_create", Count: 15},
			{Action: "follow", Count: 4},
			{Action: "gift_send", Count: 2},
		}, 20}, // total 51 -> 12, distinct 4 -> 8
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := emptyInputs(fixedNow.AddDate(0, 0, -400))
			in.RateLimitHits = tt.hits
			if got := rateLimitSpam(in); got != tt.expected {
				t.Errorf("rateLimitSpam() = %v, want %v", got, tt.expected)
			}
		})
	}
}
