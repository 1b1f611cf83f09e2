package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/testutil"
)

func setupTaskRepo(t *testing.T) *SQLiteTaskRepo {
	t.Helper()
	return NewSQLiteTaskRepo(testutil.NewTestDB(t))
}

func TestTaskRepo_CreateAndGet(t *testing.T) {
	repo := setupTaskRepo(t)
	ctx := context.Background()

	day := testutil.Day(2026, time.March, 9)
	task := testutil.NewTestTask("Buy milk",
		testutil.WithTaskPlacement(domain.OnDay(day)),
		testutil.WithTaskNote("2%"),
		testutil.WithTaskOrder(3),
	)
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2%", got.Note)
	assert.Equal(t, 3, got.Order)
	assert.False(t, got.Done)
	assert.Equal(t, domain.PlacementDay, got.Placement.Kind)
	assert.True(t, domain.SameDay(day, got.Placement.Day))
}

func TestTaskRepo_GetByID_NotFound(t *testing.T) {
	repo := setupTaskRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTaskRepo_ListOrdersByKey(t *testing.T) {
	repo := setupTaskRepo(t)
	ctx := context.Background()
	p := domain.InWindow(domain.WindowWorkweek, testutil.Day(2026, time.March, 9))

	for i, title := range []string{"c", "a", "b"} {
		task := testutil.NewTestTask(title,
			testutil.WithTaskPlacement(p),
			testutil.WithTaskOrder([]int{2, 0, 1}[i]),
		)
		require.NoError(t, repo.Create(ctx, task))
	}

	tasks, err := repo.List(ctx, p)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "a", tasks[0].Title)
	assert.Equal(t, "b", tasks[1].Title)
	assert.Equal(t, "c", tasks[2].Title)
}

func TestTaskRepo_ListIsPartitionScoped(t *testing.T) {
	repo := setupTaskRepo(t)
	ctx := context.Background()

	monday := testutil.Day(2026, time.March, 9)
	tuesday := testutil.Day(2026, time.March, 10)
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("mon", testutil.WithTaskPlacement(domain.OnDay(monday)))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("tue", testutil.WithTaskPlacement(domain.OnDay(tuesday)))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("backlog")))

	mon, err := repo.List(ctx, domain.OnDay(monday))
	require.NoError(t, err)
	require.Len(t, mon, 1)
	assert.Equal(t, "mon", mon[0].Title)

	unplaced, err := repo.List(ctx, domain.Unplaced())
	require.NoError(t, err)
	require.Len(t, unplaced, 1)
	assert.Equal(t, "backlog", unplaced[0].Title)
}

func TestTaskRepo_MaxOrderKey(t *testing.T) {
	repo := setupTaskRepo(t)
	ctx := context.Background()
	p := domain.OnDay(testutil.Day(2026, time.March, 9))

	max, err := repo.MaxOrderKey(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, -1, max)

	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("a", testutil.WithTaskPlacement(p), testutil.WithTaskOrder(4))))

	max, err = repo.MaxOrderKey(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 4, max)
}

func TestTaskRepo_UpdatePlacementMovesPartition(t *testing.T) {
	repo := setupTaskRepo(t)
	ctx := context.Background()

	task := testutil.NewTestTask("move me")
	require.NoError(t, repo.Create(ctx, task))

	day := testutil.Day(2026, time.March, 11)
	require.NoError(t, repo.UpdatePlacement(ctx, task.ID, domain.OnDay(day), 0))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlacementDay, got.Placement.Kind)
	assert.Equal(t, 0, got.Order)

	unplaced, err := repo.List(ctx, domain.Unplaced())
	require.NoError(t, err)
	assert.Empty(t, unplaced)
}

func TestTaskRepo_SetDone(t *testing.T) {
	repo := setupTaskRepo(t)
	ctx := context.Background()

	task := testutil.NewTestTask("done me")
	require.NoError(t, repo.Create(ctx, task))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.SetDone(ctx, task.ID, true, &now))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Done)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(now))

	require.NoError(t, repo.SetDone(ctx, task.ID, false, nil))
	got, err = repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, got.Done)
	assert.Nil(t, got.CompletedAt)
}

func TestTaskRepo_Delete(t *testing.T) {
	repo := setupTaskRepo(t)
	ctx := context.Background()

	task := testutil.NewTestTask("gone")
	require.NoError(t, repo.Create(ctx, task))
	require.NoError(t, repo.Delete(ctx, task.ID))

	_, err := repo.GetByID(ctx, task.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = repo.Delete(ctx, task.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
