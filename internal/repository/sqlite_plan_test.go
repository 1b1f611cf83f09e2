package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/testutil"
)

func setupPlanRepo(t *testing.T) *SQLitePlanRepo {
	t.Helper()
	return NewSQLitePlanRepo(testutil.NewTestDB(t))
}

func TestPlanRepo_RoundTripOptionalFields(t *testing.T) {
	repo := setupPlanRepo(t)
	ctx := context.Background()

	start := testutil.Day(2026, time.March, 9)
	end := testutil.Day(2026, time.March, 12)
	plan := testutil.NewTestPlan("Conference",
		testutil.WithPlanPlacement(domain.OnDay(start)),
		testutil.WithEndDay(end),
		testutil.WithPlanTimes(9*60, 17*60+30),
		testutil.WithLocation("Berlin"),
	)
	require.NoError(t, repo.Create(ctx, plan))

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Conference", got.Title)
	assert.Equal(t, "Berlin", got.Location)
	require.NotNil(t, got.EndDay)
	assert.True(t, domain.SameDay(end, *got.EndDay))
	require.NotNil(t, got.StartMin)
	assert.Equal(t, 9*60, *got.StartMin)
	require.NotNil(t, got.EndMin)
	assert.Equal(t, 17*60+30, *got.EndMin)
	assert.True(t, got.IsMultiDay())
}

func TestPlanRepo_NullOptionalFields(t *testing.T) {
	repo := setupPlanRepo(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Sometime")
	require.NoError(t, repo.Create(ctx, plan))

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EndDay)
	assert.Nil(t, got.StartMin)
	assert.Nil(t, got.EndMin)
	assert.False(t, got.IsMultiDay())
}

func TestPlanRepo_ListSpanningRange(t *testing.T) {
	repo := setupPlanRepo(t)
	ctx := context.Background()

	// Week under test: Mon Mar 9 .. Sun Mar 15.
	weekStart := testutil.Day(2026, time.March, 9)
	weekEnd := testutil.Day(2026, time.March, 15)

	inside := testutil.NewTestPlan("inside",
		testutil.WithPlanPlacement(domain.OnDay(testutil.Day(2026, time.March, 10))),
		testutil.WithEndDay(testutil.Day(2026, time.March, 12)))
	overlapsLeft := testutil.NewTestPlan("overlaps left",
		testutil.WithPlanPlacement(domain.OnDay(testutil.Day(2026, time.March, 6))),
		testutil.WithEndDay(testutil.Day(2026, time.March, 9)))
	overlapsRight := testutil.NewTestPlan("overlaps right",
		testutil.WithPlanPlacement(domain.OnDay(testutil.Day(2026, time.March, 15))),
		testutil.WithEndDay(testutil.Day(2026, time.March, 18)))
	before := testutil.NewTestPlan("before",
		testutil.WithPlanPlacement(domain.OnDay(testutil.Day(2026, time.March, 2))),
		testutil.WithEndDay(testutil.Day(2026, time.March, 8)))
	singleDay := testutil.NewTestPlan("single",
		testutil.WithPlanPlacement(domain.OnDay(testutil.Day(2026, time.March, 11))))
	parked := testutil.NewTestPlan("parked",
		testutil.WithPlanPlacement(domain.InWindow(domain.WindowWorkweek, weekStart)))

	for _, p := range []*domain.Plan{inside, overlapsLeft, overlapsRight, before, singleDay, parked} {
		require.NoError(t, repo.Create(ctx, p))
	}

	got, err := repo.ListSpanningRange(ctx, weekStart, weekEnd)
	require.NoError(t, err)

	titles := make([]string, len(got))
	for i, p := range got {
		titles[i] = p.Title
	}
	assert.ElementsMatch(t, []string{"inside", "overlaps left", "overlaps right", "single"}, titles)
}

func TestPlanRepo_UpdateClearsOptionalFields(t *testing.T) {
	repo := setupPlanRepo(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Trip",
		testutil.WithEndDay(testutil.Day(2026, time.April, 2)),
		testutil.WithPlanTimes(10*60, 11*60))
	require.NoError(t, repo.Create(ctx, plan))

	plan.EndDay = nil
	plan.StartMin = nil
	plan.EndMin = nil
	plan.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, plan))

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EndDay)
	assert.Nil(t, got.StartMin)
	assert.Nil(t, got.EndMin)
}
