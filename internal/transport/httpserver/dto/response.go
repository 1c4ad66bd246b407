package dto

import (
	"time"

	"reputation-service/internal/app/service"
	"reputation-service/internal/domain"
)

// ProfileScoreResponse represents the persisted scores for one profile.
type ProfileScoreResponse struct {
	ProfileID         string  `json:"profile_id"`
	ProfileScore      float64 `json:"profile_score"`
	SpamScore         float64 `json:"spam_score"`
	CopyrightEligible bool    `json:"copyright_eligible"`
	ComputedAt        string  `json:"computed_at"`
}

// FromProfileScoreRecord converts domain.ProfileScoreRecord to ProfileScoreResponse.
func FromProfileScoreRecord(rec *domain.ProfileScoreRecord) ProfileScoreResponse {
	return ProfileScoreResponse{
		ProfileID:         rec.ProfileID,
		ProfileScore:      rec.ProfileScore,
		SpamScore:         rec.SpamScore,
		CopyrightEligible: rec.CopyrightEligible,
		ComputedAt:        rec.ComputedAt.Format(time.RFC3339),
	}
}

// PostScoreResponse represents the persisted scores for one post.
type PostScoreResponse struct {
	PostID       string  `json:"post_id"`
	AuthorID     string  `json:"author_id"`
	QualityScore float64 `json:"quality_score"`
	SpamScore    float64 `json:"spam_score"`
	ComputedAt   string  `json:"computed_at"`
}

// FromPostScoreRecord converts domain.PostScoreRecord to PostScoreResponse.
func FromPostScoreRecord(rec *domain.PostScoreRecord) PostScoreResponse {
	return PostScoreResponse{
		PostID:       rec.PostID,
		AuthorID:     rec.AuthorID,
		QualityScore: rec.QualityScore,
		SpamScore:    rec.SpamScore,
		ComputedAt:   rec.ComputedAt.Format(time.RFC3339),
	}
}

// RankedCommentResponse represents one ranked comment.
type RankedCommentResponse struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// RankResponse represents the ordered ranking result.
type RankResponse struct {
	Mode     string                  `json:"mode"`
	Comments []RankedCommentResponse `json:"comments"`
}

// FromRankedComments converts service ranking output to RankResponse.
func FromRankedComments(mode service.RankMode, ranked []service.RankedComment) RankResponse {
	comments := make([]RankedCommentResponse, len(ranked))
	for i, r := range ranked {
		comments[i] = RankedCommentResponse{ID: r.ID, Score: r.Score}
	}

	return RankResponse{
		Mode:     string(mode),
		Comments: comments,
	}
}

// BatchResponse represents the outcome of one recompute batch.
type BatchResponse struct {
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
	Flagged   int    `json:"flagged"`
	Duration  string `json:"duration"`
}

// FromBatchResult converts service.BatchResult to BatchResponse.
func FromBatchResult(result *service.BatchResult) BatchResponse {
	return BatchResponse{
		Processed: result.Processed,
		Failed:    result.Failed,
		Flagged:   result.Flagged,
		Duration:  result.Duration.String(),
	}
}

// StatsResponse represents aggregated score statistics for dashboards.
type StatsResponse struct {
	ProfilesScored   int64   `json:"profiles_scored"`
	PostsScored      int64   `json:"posts_scored"`
	AvgProfileScore  float64 `json:"avg_profile_score"`
	AvgSpamScore     float64 `json:"avg_spam_score"`
	EligibleProfiles int64   `json:"eligible_profiles"`
}

// FromStats converts domain.ScoreStats to StatsResponse.
func FromStats(stats *domain.ScoreStats) StatsResponse {
	return StatsResponse{
		ProfilesScored:   stats.ProfilesScored,
		PostsScored:      stats.PostsScored,
		AvgProfileScore:  stats.AvgProfileScore,
		AvgSpamScore:     stats.AvgSpamScore,
		EligibleProfiles: stats.EligibleProfiles,
	}
}

// HealthResponse represents health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
