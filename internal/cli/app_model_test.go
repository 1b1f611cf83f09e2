package cli

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calewis/slate/internal/domain"
)

func TestAppModel_StartsOnBoard(t *testing.T) {
	app := newTestApp(t)
	d := newBoardDriver(t, app)

	view := d.View()
	assert.Contains(t, view, "slate")
	assert.Contains(t, view, "Board")
	assert.Contains(t, view, "Today")
}

func TestAppModel_QuickAddBarCreatesItem(t *testing.T) {
	app := newTestApp(t)
	d := newBoardDriver(t, app)

	d.PressKey('a')
	d.Type("Water the plants #today")
	d.PressEnter()

	assert.Contains(t, d.View(), "added Water the plants")
	assert.Contains(t, d.View(), "Water the plants")

	items, err := app.Items.List(context.Background(), domain.KindTask, domain.OnDay(time.Now()))
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestAppModel_QuickAddBarEscAbandons(t *testing.T) {
	app := newTestApp(t)
	d := newBoardDriver(t, app)

	d.PressKey('a')
	d.Type("half-typed thought")
	d.PressEsc()

	items, err := app.Items.List(context.Background(), domain.KindTask, domain.Unplaced())
	require.NoError(t, err)
	assert.Empty(t, items)

	// Keys go back to the board once the bar is blurred.
	m := d.Model.(appModel)
	assert.False(t, m.addBar.Focused())
}

func TestAppModel_QuickAddBarShowsParseError(t *testing.T) {
	app := newTestApp(t)
	d := newBoardDriver(t, app)

	d.PressKey('a')
	d.Type("#today")
	d.PressEnter()

	m := d.Model.(appModel)
	assert.True(t, m.noticeErr)
	assert.NotEmpty(t, m.notice)
}

func TestAppModel_TabTogglesBoardAndDay(t *testing.T) {
	app := newTestApp(t)
	d := newBoardDriver(t, app)

	d.SendKey(tea.KeyMsg{Type: tea.KeyTab})
	m := d.Model.(appModel)
	assert.Equal(t, ViewDay, m.viewStack[0].ID())

	d.SendKey(tea.KeyMsg{Type: tea.KeyTab})
	m = d.Model.(appModel)
	assert.Equal(t, ViewBoard, m.viewStack[0].ID())
}

func TestAppModel_EscPopsForm(t *testing.T) {
	app := newTestApp(t)
	seedTodayTasks(t, app, "alpha")
	d := newBoardDriver(t, app)

	d.PressKey('j')
	d.PressKey('m') // move form
	m := d.Model.(appModel)
	require.Len(t, m.viewStack, 2)

	d.PressEsc()
	m = d.Model.(appModel)
	assert.Len(t, m.viewStack, 1)
}

func TestAppModel_QuitKeys(t *testing.T) {
	app := newTestApp(t)

	d := newBoardDriver(t, app)
	d.PressKey('q')
	assert.True(t, d.Quitting)

	d = newBoardDriver(t, app)
	d.PressCtrlC()
	assert.True(t, d.Quitting)
}
