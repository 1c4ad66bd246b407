package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgresContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"reputation-service/internal/domain"
)

const (
	profileID1 = "11111111-1111-1111-1111-111111111111"
	profileID2 = "22222222-2222-2222-2222-222222222222"
	postID1    = "33333333-3333-3333-3333-333333333333"
	postID2    = "44444444-4444-4444-4444-444444444444"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connected GORM DB
//
// Prerequisites:
//   - Docker must be running
//   - OR skip tests with: go test -short
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgresContainer.Run(ctx,
		"postgres:16-alpine",
		postgresContainer.WithDatabase("testdb"),
		postgresContainer.WithUsername("testuser"),
		postgresContainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf(`Failed to start PostgreSQL container: %v

Docker Prerequisites:
1. Ensure Docker is running
2. OR skip integration tests: go test -short

`, err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, err := gorm.Open(postgresDriver.Open(connStr), &gorm.Config{
		Logger: nil, // Silent logger for tests
	})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.AutoMigrate(
		&ProfileSignalModel{},
		&ProfilePostStatModel{},
		&PostSignalModel{},
		&ProfileScoreModel{},
		&PostScoreModel{},
	)
	require.NoError(t, err, "Failed to run migrations")

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return db, cleanup
}

func seedProfileSignals(t *testing.T, db *gorm.DB, profileID string) {
	t.Helper()

	signal := &ProfileSignalModel{
		ProfileID:        profileID,
		AvatarURL:        "https://cdn.example.com/a.png",
		Bio:              "writes about distributed systems",
		EmailVerified:    true,
		AccountType:      "creator",
		Status:           "active",
		AccountCreatedAt: time.Now().UTC().AddDate(0, 0, -100),
		FollowerCount:    250,
		FollowingCount:   100,
		PostCount:        12,

		PublishedPostCount:   12,
		TotalCommentCount:    40,
		CommentLikesReceived: 35,
		ActiveDaysLast30:     20,
		LoginStreak:          8,
		QualifiedReadCount:   500,
		CopyrightStrikeCount: 1,

		RateLimitActions: []string{"post_create", "follow"},
		RateLimitCounts:  []int64{4, 2},
	}
	require.NoError(t, db.Create(signal).Error)

	stats := []ProfilePostStatModel{
		{PostID: postID1, ProfileID: profileID, Type: "post", UniqueViewCount: 100, LikeCount: 9, WordCount: 400},
		{PostID: postID2, ProfileID: profileID, Type: "video", UniqueViewCount: 300, LikeCount: 25, TrendingScore: 12},
	}
	require.NoError(t, db.Create(&stats).Error)
}

func TestProfileInputs_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	seedProfileSignals(t, db, profileID1)

	inputs, err := repo.ProfileInputs(ctx, profileID1)
	require.NoError(t, err)
	require.NotNil(t, inputs)

	assert.Equal(t, profileID1, inputs.Profile.ID)
	assert.Equal(t, 250, inputs.Profile.FollowerCount)
	assert.Equal(t, "creator", inputs.Profile.AccountType)
	assert.Equal(t, domain.AccountStatusActive, inputs.Profile.Status)
	assert.True(t, inputs.Profile.EmailVerified)
	assert.Equal(t, 12, inputs.PublishedPostCount)
	assert.Equal(t, 1, inputs.CopyrightStrikeCount)

	require.Len(t, inputs.RateLimitHits, 2)
	assert.Equal(t, domain.RateLimitHit{Action: "post_create", Count: 4}, inputs.RateLimitHits[0])
	assert.Equal(t, domain.RateLimitHit{Action: "follow", Count: 2}, inputs.RateLimitHits[1])

	require.Len(t, inputs.PostStats, 2)

	// The loaded inputs must feed the scorers without further shaping.
	score := domain.CalculateProfileScore(inputs)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}

func TestProfileInputs_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)

	inputs, err := repo.ProfileInputs(context.Background(), profileID2)
	require.NoError(t, err)
	assert.Nil(t, inputs)
}

func TestSaveProfileScore_Upsert(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	rec := &domain.ProfileScoreRecord{
		ProfileID:         profileID1,
		ProfileScore:      62.5,
		SpamScore:         12.0,
		CopyrightEligible: true,
		ComputedAt:        time.Now().UTC(),
	}
	require.NoError(t, repo.SaveProfileScore(ctx, rec))

	loaded, err := repo.GetProfileScore(ctx, profileID1)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 62.5, loaded.ProfileScore)
	assert.True(t, loaded.CopyrightEligible)

	// Second save for the same profile must update, not duplicate.
	rec.ProfileScore = 70.25
	rec.ComputedAt = time.Now().UTC()
	require.NoError(t, repo.SaveProfileScore(ctx, rec))

	var count int64
	require.NoError(t, db.Model(&ProfileScoreModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	loaded, err = repo.GetProfileScore(ctx, profileID1)
	require.NoError(t, err)
	assert.Equal(t, 70.25, loaded.ProfileScore)
}

func TestGetProfileScore_NeverScored(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)

	rec, err := repo.GetProfileScore(context.Background(), profileID1)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestListStaleProfileIDs(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()

	// profileID1: has signals, never scored -> stale
	seedProfileSignals(t, db, profileID1)

	// profileID2: scored after its last signal update -> fresh
	signal2 := &ProfileSignalModel{
		ProfileID:        profileID2,
		Status:           "active",
		AccountCreatedAt: now.AddDate(0, 0, -50),
	}
	require.NoError(t, db.Create(signal2).Error)
	require.NoError(t, repo.SaveProfileScore(ctx, &domain.ProfileScoreRecord{
		ProfileID:    profileID2,
		ProfileScore: 40,
		ComputedAt:   now.Add(time.Hour),
	}))

	ids, err := repo.ListStaleProfileIDs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{profileID1}, ids)

	// Scoring profileID1 drains the stale set.
	require.NoError(t, repo.SaveProfileScore(ctx, &domain.ProfileScoreRecord{
		ProfileID:    profileID1,
		ProfileScore: 50,
		ComputedAt:   now.Add(time.Hour),
	}))

	ids, err = repo.ListStaleProfileIDs(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestPostInputs_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	signal := &PostSignalModel{
		PostID:             postID1,
		AuthorID:           profileID1,
		Type:               "post",
		Status:             "published",
		WordCount:          500,
		HasMedia:           true,
		UniqueViewCount:    100,
		PublishedAt:        time.Now().UTC().AddDate(0, 0, -2),
		ImageCount:         2,
		QualifiedReadCount: 30,
		AvgReadPercent:     0.5,
		DistinctCommenters: 6,
		QuickLikeRatio:     0.05,
	}
	require.NoError(t, db.Create(signal).Error)

	inputs, err := repo.PostInputs(ctx, postID1)
	require.NoError(t, err)
	require.NotNil(t, inputs)

	assert.Equal(t, postID1, inputs.Post.ID)
	assert.Equal(t, profileID1, inputs.Post.AuthorID)
	assert.Equal(t, domain.ContentTypePost, inputs.Post.Type)
	assert.Equal(t, domain.PostStatusPublished, inputs.Post.Status)
	assert.Equal(t, 30, inputs.QualifiedReadCount)
	assert.Equal(t, 0.5, inputs.AvgReadPercent)

	quality := domain.CalculatePostQualityScore(inputs)
	assert.Greater(t, quality, 0.0)
	assert.LessOrEqual(t, quality, 100.0)
}

func TestListStalePostIDs(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	signal := &PostSignalModel{
		PostID:      postID1,
		AuthorID:    profileID1,
		Type:        "post",
		Status:      "published",
		PublishedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(signal).Error)

	ids, err := repo.ListStalePostIDs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{postID1}, ids)
}

func TestSavePostScore_Upsert(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	rec := &domain.PostScoreRecord{
		PostID:       postID1,
		AuthorID:     profileID1,
		QualityScore: 45,
		SpamScore:    5,
		ComputedAt:   time.Now().UTC(),
	}
	require.NoError(t, repo.SavePostScore(ctx, rec))

	rec.QualityScore = 52
	require.NoError(t, repo.SavePostScore(ctx, rec))

	var count int64
	require.NoError(t, db.Model(&PostScoreModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	loaded, err := repo.GetPostScore(ctx, postID1)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 52.0, loaded.QualityScore)
}

func TestSaveProfileScore_ConcurrentUpserts(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	const goroutines = 10
	var wg sync.WaitGroup
	errChan := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(iteration int) {
			defer wg.Done()

			rec := &domain.ProfileScoreRecord{
				ProfileID:    profileID1,
				ProfileScore: float64(iteration * 10),
				ComputedAt:   time.Now().UTC(),
			}
			if err := repo.SaveProfileScore(ctx, rec); err != nil {
				errChan <- err
			}
		}(i)
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	assert.Empty(t, errs, "No errors should occur during concurrent upserts")

	var count int64
	require.NoError(t, db.Model(&ProfileScoreModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "Should have exactly 1 record after concurrent upserts")
}

func TestStats(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveProfileScore(ctx, &domain.ProfileScoreRecord{
		ProfileID: profileID1, ProfileScore: 80, SpamScore: 10, CopyrightEligible: true, ComputedAt: time.Now().UTC(),
	}))
	require.NoError(t, repo.SaveProfileScore(ctx, &domain.ProfileScoreRecord{
		ProfileID: profileID2, ProfileScore: 40, SpamScore: 30, ComputedAt: time.Now().UTC(),
	}))
	require.NoError(t, repo.SavePostScore(ctx, &domain.PostScoreRecord{
		PostID: postID1, AuthorID: profileID1, QualityScore: 60, SpamScore: 5, ComputedAt: time.Now().UTC(),
	}))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ProfilesScored)
	assert.Equal(t, int64(1), stats.PostsScored)
	assert.Equal(t, int64(1), stats.EligibleProfiles)
	assert.InDelta(t, 60.0, stats.AvgProfileScore, 0.01)
	assert.InDelta(t, 20.0, stats.AvgSpamScore, 0.01)
}
