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

func TestIntentionRepo_RoundTrip(t *testing.T) {
	repo := NewSQLiteIntentionRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	p := domain.InWindow(domain.WindowWeekend, testutil.Day(2026, time.March, 14))

	i := testutil.NewTestIntention("slow morning", testutil.WithIntentionPlacement(p))
	require.NoError(t, repo.Create(ctx, i))

	got, err := repo.GetByID(ctx, i.ID)
	require.NoError(t, err)
	assert.Equal(t, "slow morning", got.Title)
	assert.False(t, got.Done)
	assert.Equal(t, domain.WindowWeekend, got.Placement.WindowKind)

	listed, err := repo.List(ctx, p)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestIntentionRepo_SetDone(t *testing.T) {
	repo := NewSQLiteIntentionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	i := testutil.NewTestIntention("stretch")
	require.NoError(t, repo.Create(ctx, i))

	require.NoError(t, repo.SetDone(ctx, i.ID, true))
	got, err := repo.GetByID(ctx, i.ID)
	require.NoError(t, err)
	assert.True(t, got.Done)

	require.NoError(t, repo.SetDone(ctx, i.ID, false))
	got, err = repo.GetByID(ctx, i.ID)
	require.NoError(t, err)
	assert.False(t, got.Done)
}

func TestIntentionRepo_DeleteMissing(t *testing.T) {
	repo := NewSQLiteIntentionRepo(testutil.NewTestDB(t))

	err := repo.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
