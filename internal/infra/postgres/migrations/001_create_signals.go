package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createSignalTables creates the signal tables written by the upstream
// aggregation pipeline and read by the scoring batch.
func createSignalTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_signals",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS profile_signals (
					profile_id UUID PRIMARY KEY,

					-- Profile snapshot
					avatar_url VARCHAR(500),
					bio TEXT,
					website VARCHAR(500),
					full_name VARCHAR(200),
					gender VARCHAR(20),
					birth_date DATE,
					email_verified BOOLEAN DEFAULT FALSE,
					phone_verified BOOLEAN DEFAULT FALSE,
					identity_verified BOOLEAN DEFAULT FALSE,
					account_type VARCHAR(20) DEFAULT 'personal',
					verified BOOLEAN DEFAULT FALSE,
					premium BOOLEAN DEFAULT FALSE,
					status VARCHAR(20) NOT NULL DEFAULT 'active',
					account_created_at TIMESTAMP NOT NULL,
					follower_count INTEGER DEFAULT 0,
					following_count INTEGER DEFAULT 0,
					post_count INTEGER DEFAULT 0,
					shadow_banned BOOLEAN DEFAULT FALSE,
					total_earned_coins INTEGER DEFAULT 0,
					total_views INTEGER DEFAULT 0,

					-- Post status aggregates
					published_post_count INTEGER DEFAULT 0,
					under_review_post_count INTEGER DEFAULT 0,
					removed_post_count INTEGER DEFAULT 0,
					recent_post_count INTEGER DEFAULT 0,
					rejected_nsfw_post_count INTEGER DEFAULT 0,

					-- Comment aggregates
					total_comment_count INTEGER DEFAULT 0,
					spam_comment_count INTEGER DEFAULT 0,
					removed_comment_count INTEGER DEFAULT 0,
					comment_likes_received INTEGER DEFAULT 0,

					-- Community signals
					blocks_received INTEGER DEFAULT 0,
					reports_received INTEGER DEFAULT 0,
					moderation_action_count INTEGER DEFAULT 0,
					last_penalty_date TIMESTAMP,
					last_moderation_date TIMESTAMP,

					-- Behavioral signals
					burst_posting_count INTEGER DEFAULT 0,
					high_frequency_comments INTEGER DEFAULT 0,
					avg_word_count DECIMAL(10,2) DEFAULT 0,
					duplicate_comment_groups INTEGER DEFAULT 0,
					mass_delete_count INTEGER DEFAULT 0,

					-- Engagement channel totals
					total_likes_received INTEGER DEFAULT 0,
					total_comments_on_posts INTEGER DEFAULT 0,
					total_saves_received INTEGER DEFAULT 0,
					total_shares_received INTEGER DEFAULT 0,
					qualified_read_count INTEGER DEFAULT 0,
					avg_read_duration DECIMAL(10,2) DEFAULT 0,
					social_share_count INTEGER DEFAULT 0,
					discussion_post_count INTEGER DEFAULT 0,

					-- Economic aggregates
					gifts_sent_coins INTEGER DEFAULT 0,
					gifts_received_coins INTEGER DEFAULT 0,
					gift_sender_diversity INTEGER DEFAULT 0,
					top_gift_sender_ratio DECIMAL(5,4) DEFAULT 0,
					suspicious_withdrawal_count INTEGER DEFAULT 0,

					-- Rate limiting (parallel arrays)
					rate_limit_actions TEXT[],
					rate_limit_counts BIGINT[],

					-- Daily activity
					active_days_last30 INTEGER DEFAULT 0,
					login_streak INTEGER DEFAULT 0,
					follower_loss_last7 INTEGER DEFAULT 0,

					-- Social graph quality
					mutual_follow_ratio DECIMAL(5,4) DEFAULT 0,
					network_trust_avg DECIMAL(5,2) DEFAULT 0,
					unique_profile_visitors INTEGER DEFAULT 0,

					-- Comment interaction quality
					comment_reply_ratio DECIMAL(5,4) DEFAULT 0,
					organic_comment_ratio DECIMAL(5,4) DEFAULT 0,
					self_comment_ratio DECIMAL(5,4) DEFAULT 0,
					comment_author_diversity INTEGER DEFAULT 0,
					avg_mentions_per_post DECIMAL(10,2) DEFAULT 0,

					-- Consumer behavior
					liked_other_posts_count INTEGER DEFAULT 0,
					saved_other_posts_count INTEGER DEFAULT 0,
					commented_on_others_count INTEGER DEFAULT 0,

					-- Content quality penalty signals
					post_and_delete_count INTEGER DEFAULT 0,
					low_effort_post_ratio DECIMAL(5,4) DEFAULT 0,
					duplicate_content_count INTEGER DEFAULT 0,
					one_liner_no_media_ratio DECIMAL(5,4) DEFAULT 0,
					weird_character_ratio DECIMAL(5,4) DEFAULT 0,

					copyright_strike_count INTEGER DEFAULT 0,

					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS profile_post_stats (
					post_id UUID PRIMARY KEY,
					profile_id UUID NOT NULL,
					type VARCHAR(20) NOT NULL,
					like_count INTEGER DEFAULT 0,
					comment_count INTEGER DEFAULT 0,
					save_count INTEGER DEFAULT 0,
					share_count INTEGER DEFAULT 0,
					unique_view_count INTEGER DEFAULT 0,
					trending_score DECIMAL(10,2) DEFAULT 0,
					word_count INTEGER DEFAULT 0,
					mention_count INTEGER DEFAULT 0,
					has_media BOOLEAN DEFAULT FALSE,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS post_signals (
					post_id UUID PRIMARY KEY,
					author_id UUID NOT NULL,

					type VARCHAR(20) NOT NULL,
					status VARCHAR(20) NOT NULL DEFAULT 'published',
					word_count INTEGER DEFAULT 0,
					has_media BOOLEAN DEFAULT FALSE,
					nsfw BOOLEAN DEFAULT FALSE,
					for_kids BOOLEAN DEFAULT FALSE,
					like_count INTEGER DEFAULT 0,
					comment_count INTEGER DEFAULT 0,
					save_count INTEGER DEFAULT 0,
					share_count INTEGER DEFAULT 0,
					unique_view_count INTEGER DEFAULT 0,
					mention_count INTEGER DEFAULT 0,
					video_duration DECIMAL(10,2) DEFAULT 0,
					reading_time DECIMAL(10,2) DEFAULT 0,
					published_at TIMESTAMP NOT NULL,

					-- Body structure
					image_count INTEGER DEFAULT 0,
					heading_count INTEGER DEFAULT 0,
					list_count INTEGER DEFAULT 0,
					table_count INTEGER DEFAULT 0,
					tag_count INTEGER DEFAULT 0,

					-- Reading behavior
					avg_read_duration DECIMAL(10,2) DEFAULT 0,
					avg_read_percent DECIMAL(5,4) DEFAULT 0,
					qualified_read_count INTEGER DEFAULT 0,

					-- Video watch behavior
					avg_watch_duration DECIMAL(10,2) DEFAULT 0,
					avg_watch_percent DECIMAL(5,4) DEFAULT 0,
					replay_count INTEGER DEFAULT 0,

					-- Discussion
					distinct_commenters INTEGER DEFAULT 0,
					self_comment_count INTEGER DEFAULT 0,
					avg_comment_length DECIMAL(10,2) DEFAULT 0,
					threaded_reply_count INTEGER DEFAULT 0,

					-- Audience quality
					avg_visitor_profile_score DECIMAL(5,2) DEFAULT 0,
					avg_liker_profile_score DECIMAL(5,2) DEFAULT 0,

					-- Author consistency
					author_avg_quality_score DECIMAL(5,2) DEFAULT 0,
					author_post_count_30d INTEGER DEFAULT 0,
					author_account_age_days INTEGER DEFAULT 0,

					-- Anti-gaming signals
					quick_like_ratio DECIMAL(5,4) DEFAULT 0,
					quick_save_ratio DECIMAL(5,4) DEFAULT 0,
					ip_cluster_ratio DECIMAL(5,4) DEFAULT 0,
					bounce_rate DECIMAL(5,4) DEFAULT 0,
					reciprocal_engagement DECIMAL(5,4) DEFAULT 0,

					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_profile_signals_updated_at ON profile_signals(updated_at);",
				"CREATE INDEX IF NOT EXISTS idx_profile_post_stats_profile_id ON profile_post_stats(profile_id);",
				"CREATE INDEX IF NOT EXISTS idx_post_signals_author_id ON post_signals(author_id);",
				"CREATE INDEX IF NOT EXISTS idx_post_signals_updated_at ON post_signals(updated_at);",
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
				DROP TABLE IF EXISTS post_signals;
				DROP TABLE IF EXISTS profile_post_stats;
				DROP TABLE IF EXISTS profile_signals;
			`).Error
		},
	}
}
