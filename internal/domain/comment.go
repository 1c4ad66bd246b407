package domain

import "math"

// CommentSignals carries everything the comment ranking scorers need about a
// single comment and its author. Scores produced from it are sort keys, not
// normalized values: only their relative order matters.
type CommentSignals struct {
	ID            string
	LikeCount     int
	ReplyCount    int
	ProfileScore  float64 // author trust, 0..100
	SpamScore     float64 // author spam, 0..100
	IsVerified    bool
	IsPremium     bool
	ContentLength int
	IsGif         bool
	AgeHours      float64
	HasSelfLike   bool
}

// ScorePopular ranks a comment for the "popular" ordering: engagement first,
// weighted by author credibility so a like farm with a trashed profile can't
// buy the top slot.
//
//	engagement: likes × credibility × 2 + min(replies, 10) × 1.5
//	            where credibility = 0.5 + profileScore/100 (range 0.5..1.5)
//	author:     +3 verified, +1.5 premium, + profileScore/20
//	substance:  length >=200:+2, >=50:+3, >=10:+1.5; GIF-only:+0.5
//	freshness:  <1h:+4, <6h:+2.5, <24h:+1.5, <72h:+0.5
//	penalties:  -spamScore/10; self-like:-2; zero engagement:-1
func ScorePopular(c *CommentSignals) float64 {
	if c == nil {
		return 0
	}

	credibility := 0.5 + c.ProfileScore/100
	score := float64(c.LikeCount)*credibility*2 +
		math.Min(float64(c.ReplyCount), 10)*1.5

	if c.IsVerified {
		score += 3
	}
	if c.IsPremium {
		score += 1.5
	}
	score += c.ProfileScore / 20

	switch {
	case c.ContentLength >= 200:
		score += 2
	case c.ContentLength >= 50:
		score += 3
	case c.ContentLength >= 10:
		score += 1.5
	}
	if c.IsGif {
		score += 0.5
	}

	switch {
	case c.AgeHours < 1:
		score += 4
	case c.AgeHours < 6:
		score += 2.5
	case c.AgeHours < 24:
		score += 1.5
	case c.AgeHours < 72:
		score += 0.5
	}

	score -= c.SpamScore / 10
	if c.HasSelfLike {
		score -= 2
	}
	if c.LikeCount == 0 && c.ReplyCount == 0 {
		score--
	}

	return score
}

// ScoreSmart ranks a comment for the "smart" ordering: recency dominates so
// conversations stay alive, with engagement and author quality as
// tie-breakers and replies valued as conversation starters.
//
//	recency:    <1h:+10, <3h:+8, <6h:+6, <12h:+4, <24h:+2.5, <72h:+1
//	engagement: likes × 1.2 + replies × 2.5
//	author:     profileScore/10, +2 verified, +1 premium
//	substance:  length >=100:+3, >=30:+2, >=10:+1; GIF-only:+0.5
//	starter:    min(replies, 5) × 0.8
//	penalty:    -spamScore/8
func ScoreSmart(c *CommentSignals) float64 {
	if c == nil {
		return 0
	}

	score := 0.0
	switch {
	case c.AgeHours < 1:
		score += 10
	case c.AgeHours < 3:
		score += 8
	case c.AgeHours < 6:
		score += 6
	case c.AgeHours < 12:
		score += 4
	case c.AgeHours < 24:
		score += 2.5
	case c.AgeHours < 72:
		score++
	}

	score += float64(c.LikeCount)*1.2 + float64(c.ReplyCount)*2.5

	score += c.ProfileScore / 10
	if c.IsVerified {
		score += 2
	}
	if c.IsPremium {
		score++
	}

	switch {
	case c.ContentLength >= 100:
		score += 3
	case c.ContentLength >= 30:
		score += 2
	case c.ContentLength >= 10:
		score++
	}
	if c.IsGif {
		score += 0.5
	}

	score += math.Min(float64(c.ReplyCount), 5) * 0.8

	score -= c.SpamScore / 8

	return score
}
