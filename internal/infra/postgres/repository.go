package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reputation-service/internal/domain"
)

// Repository implements domain.SignalRepository and domain.ScoreRepository
// using PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListStaleProfileIDs returns up to limit profile IDs whose signals changed
// after their last scoring run. Never-scored profiles come first, then the
// longest-unscored.
func (r *Repository) ListStaleProfileIDs(ctx context.Context, limit int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("profile_signals AS ps").
		Select("ps.profile_id").
		Joins("LEFT JOIN profile_scores sc ON sc.profile_id = ps.profile_id").
		Where("sc.computed_at IS NULL OR sc.computed_at < ps.updated_at").
		Order("sc.computed_at ASC NULLS FIRST").
		Limit(limit).
		Scan(&ids).Error
	if err != nil {
		return nil, fmt.Errorf("listing stale profiles: %w", err)
	}

	return ids, nil
}

// ProfileInputs assembles the full signal bag for one profile.
func (r *Repository) ProfileInputs(ctx context.Context, profileID string) (*domain.ScoreInputs, error) {
	var model ProfileSignalModel
	err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}

		return nil, fmt.Errorf("getting profile signals: %w", err)
	}

	var stats []ProfilePostStatModel
	err = r.db.WithContext(ctx).Where("profile_id = ?", profileID).Find(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("getting profile post stats: %w", err)
	}

	return model.ToInputs(stats), nil
}

// ListStalePostIDs returns up to limit post IDs, never-scored first.
func (r *Repository) ListStalePostIDs(ctx context.Context, limit int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("post_signals AS ps").
		Select("ps.post_id").
		Joins("LEFT JOIN post_scores sc ON sc.post_id = ps.post_id").
		Where("sc.computed_at IS NULL OR sc.computed_at < ps.updated_at").
		Order("sc.computed_at ASC NULLS FIRST").
		Limit(limit).
		Scan(&ids).Error
	if err != nil {
		return nil, fmt.Errorf("listing stale posts: %w", err)
	}

	return ids, nil
}

// PostInputs assembles the signal bag for one post.
func (r *Repository) PostInputs(ctx context.Context, postID string) (*domain.PostScoreInputs, error) {
	var model PostSignalModel
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}

		return nil, fmt.Errorf("getting post signals: %w", err)
	}

	return model.ToInputs(), nil
}

// SaveProfileScore upserts the scoring result for a profile.
func (r *Repository) SaveProfileScore(ctx context.Context, rec *domain.ProfileScoreRecord) error {
	model := ProfileScoreFromDomain(rec)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "profile_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"profile_score", "spam_score", "copyright_eligible", "computed_at",
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("upserting profile score: %w", err)
	}

	return nil
}

// GetProfileScore retrieves the persisted score for a profile.
func (r *Repository) GetProfileScore(ctx context.Context, profileID string) (*domain.ProfileScoreRecord, error) {
	var model ProfileScoreModel
	err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Never scored
		}

		return nil, fmt.Errorf("getting profile score: %w", err)
	}

	return model.ToDomain(), nil
}

// SavePostScore upserts the scoring result for a post.
func (r *Repository) SavePostScore(ctx context.Context, rec *domain.PostScoreRecord) error {
	model := PostScoreFromDomain(rec)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"author_id", "quality_score", "spam_score", "computed_at",
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("upserting post score: %w", err)
	}

	return nil
}

// GetPostScore retrieves the persisted score for a post.
func (r *Repository) GetPostScore(ctx context.Context, postID string) (*domain.PostScoreRecord, error) {
	var model PostScoreModel
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Never scored
		}

		return nil, fmt.Errorf("getting post score: %w", err)
	}

	return model.ToDomain(), nil
}

// Stats aggregates the score tables for the dashboard.
func (r *Repository) Stats(ctx context.Context) (*domain.ScoreStats, error) {
	var stats domain.ScoreStats

	row := struct {
		Count    int64
		AvgScore float64
		AvgSpam  float64
		Eligible int64
	}{}

	err := r.db.WithContext(ctx).
		Model(&ProfileScoreModel{}).
		Select(
			"COUNT(*) AS count",
			"COALESCE(AVG(profile_score), 0) AS avg_score",
			"COALESCE(AVG(spam_score), 0) AS avg_spam",
			"COUNT(*) FILTER (WHERE copyright_eligible) AS eligible",
		).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("aggregating profile scores: %w", err)
	}

	stats.ProfilesScored = row.Count
	stats.AvgProfileScore = row.AvgScore
	stats.AvgSpamScore = row.AvgSpam
	stats.EligibleProfiles = row.Eligible

	if err := r.db.WithContext(ctx).Model(&PostScoreModel{}).Count(&stats.PostsScored).Error; err != nil {
		return nil, fmt.Errorf("counting post scores: %w", err)
	}

	return &stats, nil
}
