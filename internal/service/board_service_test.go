package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/testutil"
)

func setupBoardService(t *testing.T) (BoardService, Stores) {
	t.Helper()
	database := testutil.NewTestDB(t)
	stores := NewStores(database)
	return NewBoardService(stores), stores
}

func TestBoardBuild_SevenDaysAndFourWindows(t *testing.T) {
	svc, _ := setupBoardService(t)

	board, err := svc.Build(context.Background(), testutil.Day(2026, time.March, 11)) // a Wednesday
	require.NoError(t, err)

	require.Len(t, board.Days, 7)
	assert.True(t, domain.SameDay(testutil.Day(2026, time.March, 11), board.Days[0].Date))
	assert.True(t, domain.SameDay(testutil.Day(2026, time.March, 17), board.Days[6].Date))

	require.Len(t, board.Parking, 4)
	assert.Equal(t, domain.WindowWorkweek, board.Parking[0].Kind)
	assert.True(t, domain.SameDay(testutil.Day(2026, time.March, 9), board.Parking[0].Start))
	assert.True(t, board.Parking[1].Next)
	assert.True(t, domain.SameDay(testutil.Day(2026, time.March, 16), board.Parking[1].Start))
	assert.Equal(t, domain.WindowWeekend, board.Parking[2].Kind)
	assert.True(t, domain.SameDay(testutil.Day(2026, time.March, 14), board.Parking[2].Start))
}

func TestBoardBuild_PartitionsLandInTheirCells(t *testing.T) {
	svc, stores := setupBoardService(t)
	ctx := context.Background()
	today := testutil.Day(2026, time.March, 11)

	windows := domain.ComputePlanningWindows(today)
	require.NoError(t, stores.Tasks.Create(ctx, testutil.NewTestTask("today task",
		testutil.WithTaskPlacement(domain.OnDay(today)))))
	require.NoError(t, stores.Tasks.Create(ctx, testutil.NewTestTask("parked task",
		testutil.WithTaskPlacement(domain.InWindow(domain.WindowWorkweek, windows.ThisWeekStart)))))
	require.NoError(t, stores.Tasks.Create(ctx, testutil.NewTestTask("someday task")))
	require.NoError(t, stores.Intentions.Create(ctx, testutil.NewTestIntention("reflect",
		testutil.WithIntentionPlacement(domain.OnDay(today)))))

	board, err := svc.Build(ctx, today)
	require.NoError(t, err)

	require.Len(t, board.Days[0].Tasks, 1)
	assert.Equal(t, "today task", board.Days[0].Tasks[0].Title)
	require.Len(t, board.Days[0].Intentions, 1)

	require.Len(t, board.Parking[0].Tasks, 1)
	assert.Equal(t, "parked task", board.Parking[0].Tasks[0].Title)

	require.Len(t, board.UnplacedTasks, 1)
	assert.Equal(t, "someday task", board.UnplacedTasks[0].Title)
}

func TestBoardBuild_MixedDayContentList(t *testing.T) {
	svc, stores := setupBoardService(t)
	ctx := context.Background()
	today := testutil.Day(2026, time.March, 11)

	book := testutil.NewTestContentItem("book")
	require.NoError(t, stores.ContentItems.Create(ctx, book))

	first := testutil.NewTestContentItem("read list",
		testutil.WithContentPlacement(domain.OnDay(today)),
		testutil.WithDaySort(0))
	require.NoError(t, stores.ContentItems.Create(ctx, first))

	second := testutil.NewTestContentSession(book.ID, "chapter 2",
		testutil.WithSessionPlacement(domain.OnDay(today)),
		testutil.WithSessionDaySort(1))
	require.NoError(t, stores.ContentSessions.Create(ctx, second))

	third := testutil.NewTestContentItem("short article",
		testutil.WithContentPlacement(domain.OnDay(today)),
		testutil.WithDaySort(2))
	require.NoError(t, stores.ContentItems.Create(ctx, third))

	board, err := svc.Build(ctx, today)
	require.NoError(t, err)

	content := board.Days[0].Content
	require.Len(t, content, 3)
	assert.Equal(t, "read list", content[0].ItemTitle())
	assert.Equal(t, "chapter 2", content[1].ItemTitle())
	assert.Equal(t, "short article", content[2].ItemTitle())
}

func TestWeekSpans_PacksMultiDayPlans(t *testing.T) {
	svc, stores := setupBoardService(t)
	ctx := context.Background()
	weekStart := testutil.Day(2026, time.March, 9) // Monday

	// Mon-Wed and Tue-Thu overlap; Fri-Fri is single-day and stays off the row.
	require.NoError(t, stores.Plans.Create(ctx, testutil.NewTestPlan("retreat",
		testutil.WithPlanPlacement(domain.OnDay(weekStart)),
		testutil.WithEndDay(testutil.Day(2026, time.March, 11)))))
	require.NoError(t, stores.Plans.Create(ctx, testutil.NewTestPlan("visit",
		testutil.WithPlanPlacement(domain.OnDay(testutil.Day(2026, time.March, 10))),
		testutil.WithEndDay(testutil.Day(2026, time.March, 12)))))
	require.NoError(t, stores.Plans.Create(ctx, testutil.NewTestPlan("dinner",
		testutil.WithPlanPlacement(domain.OnDay(testutil.Day(2026, time.March, 13))))))

	segs, err := svc.WeekSpans(ctx, weekStart)
	require.NoError(t, err)

	require.Len(t, segs, 2)
	assert.Equal(t, "retreat", segs[0].Span.Title)
	assert.Equal(t, 0, segs[0].Lane)
	assert.Equal(t, "visit", segs[1].Span.Title)
	assert.Equal(t, 1, segs[1].Lane)
}
