// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"reputation-service/internal/app/service"
	"reputation-service/internal/domain"
)

// RankRequest represents the request body for ranking a set of comments.
type RankRequest struct {
	Mode     string           `json:"mode" validate:"omitempty,oneof=popular smart"`
	Comments []CommentPayload `json:"comments" validate:"required,min=1,max=500,dive"`
}

// CommentPayload carries the ranking signals for a single comment.
type CommentPayload struct {
	ID            string  `json:"id" validate:"required,max=64"`
	LikeCount     int     `json:"like_count" validate:"min=0"`
	ReplyCount    int     `json:"reply_count" validate:"min=0"`
	ProfileScore  float64 `json:"profile_score" validate:"min=0,max=100"`
	SpamScore     float64 `json:"spam_score" validate:"min=0,max=100"`
	IsVerified    bool    `json:"is_verified"`
	IsPremium     bool    `json:"is_premium"`
	ContentLength int     `json:"content_length" validate:"min=0"`
	IsGif         bool    `json:"is_gif"`
	AgeHours      float64 `json:"age_hours" validate:"min=0"`
	HasSelfLike   bool    `json:"has_self_like"`
}

// RankMode returns the requested ranking mode, defaulting to popular when
// the client did not specify one.
func (r *RankRequest) RankMode() service.RankMode {
	if r.Mode == "" {
		return service.RankModePopular
	}

	return service.RankMode(r.Mode)
}

// ToSignals converts the request payload to domain.CommentSignals.
func (r *RankRequest) ToSignals() []domain.CommentSignals {
	signals := make([]domain.CommentSignals, len(r.Comments))
	for i, c := range r.Comments {
		signals[i] = domain.CommentSignals{
			ID:            c.ID,
			LikeCount:     c.LikeCount,
			ReplyCount:    c.ReplyCount,
			ProfileScore:  c.ProfileScore,
			SpamScore:     c.SpamScore,
			IsVerified:    c.IsVerified,
			IsPremium:     c.IsPremium,
			ContentLength: c.ContentLength,
			IsGif:         c.IsGif,
			AgeHours:      c.AgeHours,
			HasSelfLike:   c.HasSelfLike,
		}
	}

	return signals
}

// RecomputeRequest represents the query parameters for manual recompute.
type RecomputeRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=10000"`
}
