package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/teatest"
)

func newBoardDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newAppModel(app), teatest.WithSize(100, 40))
	d.DrainInit()
	return d
}

// boardUnderTest digs the board view out of the driver's model.
func boardUnderTest(t *testing.T, d *teatest.Driver) *boardView {
	t.Helper()
	m, ok := d.Model.(appModel)
	require.True(t, ok)
	v, ok := m.viewStack[0].(*boardView)
	require.True(t, ok)
	return v
}

func seedTodayTasks(t *testing.T, app *App, titles ...string) {
	t.Helper()
	for _, title := range titles {
		_, err := app.Items.QuickAdd(context.Background(), title+" #today", time.Now())
		require.NoError(t, err)
	}
}

// assertViewOrder checks the names appear in the rendered view in order.
func assertViewOrder(t *testing.T, view string, names ...string) {
	t.Helper()
	last := -1
	for _, name := range names {
		i := strings.Index(view, name)
		require.GreaterOrEqual(t, i, 0, "missing %q in view", name)
		require.Greater(t, i, last, "%q out of order", name)
		last = i
	}
}

// Rows for a board with no multi-day spans: y=2 is the "Today" header, items
// follow at y=3, 4, 5, ...
const firstItemY = headerLines + 1

func TestBoardView_ShowsSeededItems(t *testing.T) {
	app := newTestApp(t)
	seedTodayTasks(t, app, "alpha", "beta")

	d := newBoardDriver(t, app)
	view := d.View()
	assertViewOrder(t, view, "Today", "alpha", "beta", "Tomorrow")
}

func TestBoardView_DragReordersWithinPartition(t *testing.T) {
	app := newTestApp(t)
	seedTodayTasks(t, app, "alpha", "beta", "gamma")

	d := newBoardDriver(t, app)
	assertViewOrder(t, d.View(), "alpha", "beta", "gamma")

	// Press alpha, hold past the threshold, drag below gamma, release.
	d.PressMouse(2, firstItemY)
	seq := boardUnderTest(t, d).ctrl.Seq()
	d.Send(holdTickMsg{seq: seq})
	d.MoveMouse(2, firstItemY+2)
	d.ReleaseMouse(2, firstItemY+2)

	assertViewOrder(t, d.View(), "beta", "gamma", "alpha")

	// The rewrite persisted dense keys.
	items, err := app.Items.List(context.Background(), domain.KindTask, domain.OnDay(time.Now()))
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "beta", items[0].ItemTitle())
	assert.Equal(t, "alpha", items[2].ItemTitle())
	assert.Equal(t, []int{0, 1, 2}, []int{items[0].OrderKey(), items[1].OrderKey(), items[2].OrderKey()})
}

func TestBoardView_TapTogglesDone(t *testing.T) {
	app := newTestApp(t)
	seedTodayTasks(t, app, "alpha")

	d := newBoardDriver(t, app)
	assert.Contains(t, d.View(), "[ ] alpha")

	// Press and release without holding: a tap.
	d.PressMouse(2, firstItemY)
	d.ReleaseMouse(2, firstItemY)
	assert.Contains(t, d.View(), "[x]")

	d.PressMouse(2, firstItemY)
	d.ReleaseMouse(2, firstItemY)
	assert.Contains(t, d.View(), "[ ] alpha")
}

func TestBoardView_EarlyMotionCancelsGesture(t *testing.T) {
	app := newTestApp(t)
	seedTodayTasks(t, app, "alpha", "beta")

	d := newBoardDriver(t, app)

	// Motion before the hold threshold is a scroll: no drag, no tap.
	d.PressMouse(2, firstItemY)
	d.MoveMouse(2, firstItemY+3)
	d.ReleaseMouse(2, firstItemY+3)

	assertViewOrder(t, d.View(), "alpha", "beta")
	assert.Contains(t, d.View(), "[ ] alpha")
}

func TestBoardView_LongHoldOpensEditForm(t *testing.T) {
	app := newTestApp(t)
	seedTodayTasks(t, app, "alpha")

	d := newBoardDriver(t, app)
	d.PressMouse(2, firstItemY)
	seq := boardUnderTest(t, d).ctrl.Seq()
	d.Send(holdTickMsg{seq: seq})
	d.Send(editTickMsg{seq: seq})

	m := d.Model.(appModel)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, ViewForm, m.viewStack[1].ID())
}

func TestBoardView_StaleTimerIgnored(t *testing.T) {
	app := newTestApp(t)
	seedTodayTasks(t, app, "alpha")

	d := newBoardDriver(t, app)
	d.PressMouse(2, firstItemY)
	seq := boardUnderTest(t, d).ctrl.Seq()
	d.ReleaseMouse(2, firstItemY) // tap; gesture over

	// The timers from the finished gesture fire late: nothing happens.
	d.Send(holdTickMsg{seq: seq})
	d.Send(editTickMsg{seq: seq})

	m := d.Model.(appModel)
	assert.Len(t, m.viewStack, 1)
}

func TestBoardView_KeyboardReorder(t *testing.T) {
	app := newTestApp(t)
	seedTodayTasks(t, app, "alpha", "beta")

	d := newBoardDriver(t, app)
	d.PressKey('j') // cursor onto alpha
	d.PressKey('J') // swap below beta

	assertViewOrder(t, d.View(), "beta", "alpha")
}

func TestBoardView_DeleteKey(t *testing.T) {
	app := newTestApp(t)
	seedTodayTasks(t, app, "alpha")

	d := newBoardDriver(t, app)
	d.PressKey('j')
	d.PressKey('x')

	assert.NotContains(t, d.View(), "alpha")
	items, err := app.Items.List(context.Background(), domain.KindTask, domain.OnDay(time.Now()))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBoardView_DragAcrossPartitionMoves(t *testing.T) {
	app := newTestApp(t)
	seedTodayTasks(t, app, "alpha")
	_, err := app.Items.QuickAdd(context.Background(), "parked #this-week", time.Now())
	require.NoError(t, err)

	d := newBoardDriver(t, app)
	view := d.View()
	require.Contains(t, view, "parked")

	// Find the parked row's y: rows are one line each starting at y=2.
	bv := boardUnderTest(t, d)
	targetY := -1
	alphaY := -1
	for _, row := range bv.rows {
		if !row.header && row.item.ItemTitle() == "parked" {
			targetY = row.y
		}
		if !row.header && row.item.ItemTitle() == "alpha" {
			alphaY = row.y
		}
	}
	require.NotEqual(t, -1, targetY)
	require.NotEqual(t, -1, alphaY)

	d.PressMouse(2, alphaY)
	seq := bv.ctrl.Seq()
	d.Send(holdTickMsg{seq: seq})
	d.MoveMouse(2, targetY)
	d.ReleaseMouse(2, targetY)

	// Alpha crossed into the window partition: a move, appended at the end.
	w := domain.ComputePlanningWindows(time.Now())
	moved, err := app.Items.List(context.Background(), domain.KindTask,
		domain.InWindow(domain.WindowWorkweek, w.ThisWeekStart))
	require.NoError(t, err)
	require.Len(t, moved, 2)
	assert.Equal(t, "alpha", moved[1].ItemTitle())

	today, err := app.Items.List(context.Background(), domain.KindTask, domain.OnDay(time.Now()))
	require.NoError(t, err)
	assert.Empty(t, today)
}
