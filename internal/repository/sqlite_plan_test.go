package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/woodgenie/internal/domain"
	"github.com/alexanderramin/woodgenie/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	opts := domain.PlanOptions{Units: domain.UnitsMetric, Difficulty: domain.DifficultyAdvanced, WoodType: domain.WoodOak}
	rec := testutil.NewTestPlanRecord("Hall Bench", testutil.WithOptions(opts))
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.ShortID, got.ShortID)
	assert.Equal(t, opts, got.Options)
	assert.Equal(t, domain.SourceAI, got.Source)
	assert.Equal(t, rec.Plan, got.Plan)
	assert.Equal(t, "image/jpeg", got.MimeType)
	assert.WithinDuration(t, rec.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestPlanRepo_GetByShortID_CaseInsensitive(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	rec := testutil.NewTestPlanRecord("Stool")
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.GetByShortID(ctx, "wg"+rec.ShortID[2:])
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
}

func TestPlanRepo_NotFound(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByShortID(ctx, "WG9999")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Latest(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
}

func TestPlanRepo_ListNewestFirst(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	titles := []string{"First", "Second", "Third"}
	for i, title := range titles {
		rec := testutil.NewTestPlanRecord(title, testutil.WithCreatedAt(base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, repo.Create(ctx, rec))
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Third", all[0].Plan.Title)
	assert.Equal(t, "First", all[2].Plan.Title)

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Third", latest.Plan.Title)
}

func TestPlanRepo_SubSecondOrdering(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 5, 100_000_000, time.UTC)
	require.NoError(t, repo.Create(ctx, testutil.NewTestPlanRecord("Earlier", testutil.WithCreatedAt(base))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestPlanRecord("Later", testutil.WithCreatedAt(base.Add(20*time.Millisecond)))))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Later", latest.Plan.Title)
}

func TestPlanRepo_FindByImage(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	sum := "abc123"
	require.NoError(t, repo.Create(ctx, testutil.NewTestPlanRecord("A", testutil.WithImageSHA(sum))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestPlanRecord("B", testutil.WithImageSHA(sum))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestPlanRecord("C")))

	found, err := repo.FindByImage(ctx, sum)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestPlanRepo_FallbackRecord(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	rec := testutil.NewTestPlanRecord("Fallback", testutil.WithSource(domain.SourceFallback, "TIMEOUT"))
	rec.FailureReason = "ai request timed out"
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFallback())
	assert.Equal(t, "TIMEOUT", got.FailureCode)
	assert.Equal(t, "ai request timed out", got.FailureReason)
}

func TestPlanRepo_DeleteAndDeleteAll(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestPlanRecord("A")
	b := testutil.NewTestPlanRecord("B")
	c := testutil.NewTestPlanRecord("C")
	for _, r := range []*domain.PlanRecord{a, b, c} {
		require.NoError(t, repo.Create(ctx, r))
	}

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err := repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}
