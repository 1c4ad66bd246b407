package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createScoreTables creates the computed-score tables, one row per scored
// entity, upserted by the batch.
func createScoreTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_create_scores",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS profile_scores (
					profile_id UUID PRIMARY KEY,
					profile_score DECIMAL(5,2) NOT NULL,
					spam_score DECIMAL(5,2) NOT NULL,
					copyright_eligible BOOLEAN NOT NULL DEFAULT FALSE,
					computed_at TIMESTAMP NOT NULL
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS post_scores (
					post_id UUID PRIMARY KEY,
					author_id UUID NOT NULL,
					quality_score DECIMAL(5,2) NOT NULL,
					spam_score DECIMAL(5,2) NOT NULL,
					computed_at TIMESTAMP NOT NULL
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_profile_scores_profile_score ON profile_scores(profile_score DESC);",
				"CREATE INDEX IF NOT EXISTS idx_profile_scores_spam_score ON profile_scores(spam_score DESC);",
				"CREATE INDEX IF NOT EXISTS idx_profile_scores_computed_at ON profile_scores(computed_at);",
				"CREATE INDEX IF NOT EXISTS idx_post_scores_author_id ON post_scores(author_id);",
				"CREATE INDEX IF NOT EXISTS idx_post_scores_quality_score ON post_scores(quality_score DESC);",
				"CREATE INDEX IF NOT EXISTS idx_post_scores_spam_score ON post_scores(spam_score DESC);",
				"CREATE INDEX IF NOT EXISTS idx_post_scores_computed_at ON post_scores(computed_at);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`
				DROP TABLE IF EXISTS post_scores;
				DROP TABLE IF EXISTS profile_scores;
			`).Error
		},
	}
}
