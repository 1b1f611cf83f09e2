package cli

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/teatest"
)

// newDayDriver opens the TUI and tabs over to the day schedule.
func newDayDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newAppModel(app), teatest.WithSize(100, 40))
	d.DrainInit()
	d.SendKey(tea.KeyMsg{Type: tea.KeyTab})
	return d
}

// yForMinute maps a column-0 minute of day to the absolute terminal row.
func yForMinute(min int) int {
	return dayGridTop + (min-7*60)/15
}

// dayUnderTest digs the day view out of the driver's view stack.
func dayUnderTest(t *testing.T, d *teatest.Driver) *dayView {
	t.Helper()
	m := d.Model.(appModel)
	v, ok := m.viewStack[0].(*dayView)
	require.True(t, ok)
	return v
}

// pressAndHold presses at (x, y) and fires the hold timer, the way a real
// motionless press-and-hold plays out.
func pressAndHold(t *testing.T, d *teatest.Driver, x, y int) {
	t.Helper()
	d.PressMouse(x, y)
	d.Send(dayHoldTickMsg{seq: dayUnderTest(t, d).pressSeq})
}

func todayBlocks(t *testing.T, app *App) []blockTimes {
	t.Helper()
	blocks, err := app.Schedule.Blocks(context.Background(), domain.DateOnly(time.Now()))
	require.NoError(t, err)
	out := make([]blockTimes, len(blocks))
	for i, b := range blocks {
		out[i] = blockTimes{Title: b.Title, Start: b.StartMin, End: b.EndMin}
	}
	return out
}

type blockTimes struct {
	Title      string
	Start, End int
}

func TestDayView_MouseDragCreatesBlock(t *testing.T) {
	app := newTestApp(t)
	d := newDayDriver(t, app)

	// Press and hold at 09:00, drag down to the 09:45 row: the provisional
	// block ends at 10:00. Release asks for a title.
	pressAndHold(t, d, 2, yForMinute(9*60))
	d.MoveMouse(2, yForMinute(9*60+45))
	d.ReleaseMouse(2, yForMinute(9*60+45))

	m := d.Model.(appModel)
	require.Len(t, m.viewStack, 2)
	require.Equal(t, ViewForm, m.viewStack[1].ID())

	d.Type("Gym")
	d.PressEnter()

	blocks := todayBlocks(t, app)
	require.Len(t, blocks, 1)
	assert.Equal(t, blockTimes{Title: "Gym", Start: 9 * 60, End: 10 * 60}, blocks[0])
	assert.Contains(t, d.View(), "Gym")
}

func TestDayView_EmptyTitleDiscardsBlock(t *testing.T) {
	app := newTestApp(t)
	d := newDayDriver(t, app)

	pressAndHold(t, d, 2, yForMinute(9*60))
	d.ReleaseMouse(2, yForMinute(9*60))
	d.PressEnter() // submit the form with no title

	assert.Empty(t, todayBlocks(t, app))
}

func TestDayView_MouseDragResizesBlock(t *testing.T) {
	app := newTestApp(t)
	_, err := app.Schedule.CreateBlock(context.Background(), time.Now(), "Focus", 9*60, 10*60)
	require.NoError(t, err)

	d := newDayDriver(t, app)

	// Grab the block's last row (09:45) and drag down to the 10:45 row: the
	// end lands on 11:00.
	d.PressMouse(2, yForMinute(9*60+45))
	d.MoveMouse(2, yForMinute(10*60+45))
	d.ReleaseMouse(2, yForMinute(10*60+45))

	blocks := todayBlocks(t, app)
	require.Len(t, blocks, 1)
	assert.Equal(t, 11*60, blocks[0].End)
}

func TestDayView_ResizeClampedByNeighbor(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	_, err := app.Schedule.CreateBlock(ctx, time.Now(), "First", 9*60, 10*60)
	require.NoError(t, err)
	_, err = app.Schedule.CreateBlock(ctx, time.Now(), "Second", 11*60, 12*60)
	require.NoError(t, err)

	d := newDayDriver(t, app)

	// Dragging First's bottom edge past Second stops at Second's start.
	d.PressMouse(2, yForMinute(9*60+45))
	d.MoveMouse(2, yForMinute(12*60+30))
	d.ReleaseMouse(2, yForMinute(12*60+30))

	blocks := todayBlocks(t, app)
	require.Len(t, blocks, 2)
	assert.Equal(t, 11*60, blocks[0].End)
}

func TestDayView_CreateOnCoveredTimeRejected(t *testing.T) {
	app := newTestApp(t)
	_, err := app.Schedule.CreateBlock(context.Background(), time.Now(), "Busy", 9*60, 10*60)
	require.NoError(t, err)

	d := newDayDriver(t, app)

	// Pressing mid-block is neither a create nor an edge grab: nothing starts.
	d.PressMouse(2, yForMinute(9*60+15))
	d.ReleaseMouse(2, yForMinute(9*60+15))

	m := d.Model.(appModel)
	assert.Len(t, m.viewStack, 1)
	assert.Len(t, todayBlocks(t, app), 1)
}

func TestDayView_BarePressDoesNotCreate(t *testing.T) {
	app := newTestApp(t)
	d := newDayDriver(t, app)

	// Press and release without waiting out the hold: a tap on open time
	// does nothing.
	d.PressMouse(2, yForMinute(9*60))
	d.ReleaseMouse(2, yForMinute(9*60))

	m := d.Model.(appModel)
	assert.Len(t, m.viewStack, 1)
	assert.Empty(t, todayBlocks(t, app))
}

func TestDayView_EarlyMotionAbandonsCreate(t *testing.T) {
	app := newTestApp(t)
	d := newDayDriver(t, app)

	d.PressMouse(2, yForMinute(9*60))
	staleSeq := dayUnderTest(t, d).pressSeq

	// Moving several rows before the hold fires is a scroll; the timer
	// that eventually fires is stale and ignored.
	d.MoveMouse(2, yForMinute(10*60))
	d.Send(dayHoldTickMsg{seq: staleSeq})
	d.ReleaseMouse(2, yForMinute(10*60))

	m := d.Model.(appModel)
	assert.Len(t, m.viewStack, 1)
	assert.False(t, dayUnderTest(t, d).gesture.active)
	assert.Empty(t, todayBlocks(t, app))
}

func TestDayView_PressIgnoredWhileCreateUnresolved(t *testing.T) {
	app := newTestApp(t)
	d := newDayDriver(t, app)

	pressAndHold(t, d, 2, yForMinute(9*60))
	require.True(t, dayUnderTest(t, d).gesture.active)

	// A second press while the provisional block is unresolved is ignored;
	// the original gesture keeps its anchor.
	d.PressMouse(2, yForMinute(12*60))
	assert.Equal(t, 9*60, dayUnderTest(t, d).gesture.block.StartMin)

	d.MoveMouse(2, yForMinute(9*60+45))
	d.ReleaseMouse(2, yForMinute(9*60+45))

	m := d.Model.(appModel)
	require.Len(t, m.viewStack, 2)
	d.Type("Focus")
	d.PressEnter()

	blocks := todayBlocks(t, app)
	require.Len(t, blocks, 1)
	assert.Equal(t, blockTimes{Title: "Focus", Start: 9 * 60, End: 10 * 60}, blocks[0])
}

func TestDayView_KeyboardCreate(t *testing.T) {
	app := newTestApp(t)
	d := newDayDriver(t, app)

	// Cursor starts at 07:00. Create, extend twice, confirm, title it.
	d.PressKey('c')
	d.PressKey('+')
	d.PressKey('+')
	d.PressEnter()

	m := d.Model.(appModel)
	require.Len(t, m.viewStack, 2)
	d.Type("Morning pages")
	d.PressEnter()

	blocks := todayBlocks(t, app)
	require.Len(t, blocks, 1)
	assert.Equal(t, blockTimes{Title: "Morning pages", Start: 7 * 60, End: 7*60 + 45}, blocks[0])
}

func TestDayView_KeyboardDelete(t *testing.T) {
	app := newTestApp(t)
	_, err := app.Schedule.CreateBlock(context.Background(), time.Now(), "Old", 7*60, 8*60)
	require.NoError(t, err)

	d := newDayDriver(t, app)
	d.PressKey('x') // cursor is on 07:00, inside the block

	assert.Empty(t, todayBlocks(t, app))
	assert.NotContains(t, d.View(), "Old")
}

func TestDayView_SecondColumnGeometry(t *testing.T) {
	app := newTestApp(t)
	d := newDayDriver(t, app)

	// The right column starts at x = dayColWidth + dayColGap and covers
	// 15:00-23:00. Create a block at 16:00 there.
	x := dayColWidth + dayColGap + 2
	y := dayGridTop + (16*60-15*60)/15
	pressAndHold(t, d, x, y)
	d.ReleaseMouse(x, y)

	m := d.Model.(appModel)
	require.Len(t, m.viewStack, 2)
	d.Type("Dinner prep")
	d.PressEnter()

	blocks := todayBlocks(t, app)
	require.Len(t, blocks, 1)
	assert.Equal(t, blockTimes{Title: "Dinner prep", Start: 16 * 60, End: 16*60 + 15}, blocks[0])
}
