package service

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"reputation-service/internal/domain"
)

// RankMode selects the comment ordering strategy.
type RankMode string

const (
	RankModePopular RankMode = "popular"
	RankModeSmart   RankMode = "smart"
)

// RankedComment pairs a comment ID with its computed sort key.
type RankedComment struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// RankingService orders comment sets using the domain sort keys.
type RankingService struct {
	logger *zap.Logger
}

// NewRankingService creates a new RankingService.
func NewRankingService(logger *zap.Logger) *RankingService {
	return &RankingService{logger: logger}
}

// Rank scores every comment with the selected strategy and returns them
// ordered best-first. Ties break on comment ID so the ordering is stable
// across calls.
func (s *RankingService) Rank(comments []domain.CommentSignals, mode RankMode) ([]RankedComment, error) {
	var score func(*domain.CommentSignals) float64
	switch mode {
	case RankModePopular:
		score = domain.ScorePopular
	case RankModeSmart:
		score = domain.ScoreSmart
	default:
		return nil, fmt.Errorf("unknown rank mode: %q", mode)
	}

	ranked := make([]RankedComment, len(comments))
	for i := range comments {
		ranked[i] = RankedComment{
			ID:    comments[i].ID,
			Score: score(&comments[i]),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})

	s.logger.Debug("comments ranked",
		zap.String("mode", string(mode)),
		zap.Int("count", len(ranked)),
	)

	return ranked, nil
}
