package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/calewis/slate/internal/cli/formatter"
	"github.com/calewis/slate/internal/gesture"
	"github.com/calewis/slate/internal/layout"
	"github.com/calewis/slate/internal/repository"
)

const (
	// One terminal row per grid unit: 15 minutes. 8-hour columns come out
	// at 32 rows, PixelsPerHour = 4.
	dayColumnRows = 32

	dayColWidth = 28
	dayColGap   = 3

	// Content starts under the app header plus the column heading line.
	dayGridTop = headerLines + 1
)

// blocksLoadedMsg signals that the day's schedule blocks have been loaded.
type blocksLoadedMsg struct {
	blocks []*repository.DayBlock
	err    error
}

// dayHoldTickMsg promotes a motionless press on open time into a provisional
// block. It carries the press sequence observed at press time so stale timers
// are ignored.
type dayHoldTickMsg struct{ seq int }

// dayPress is a press on open time waiting out the hold threshold. Movement
// before the timer fires means a scroll and abandons it.
type dayPress struct {
	active bool
	col    int
	minute int
	x, y   int
}

// dayGesture tracks an in-flight create or resize manipulation.
type dayGesture struct {
	active  bool
	resize  bool
	blockID string // set when resizing an existing block
	col     int
	block   layout.Block // the provisional or resized shape
}

// dayView is the day schedule: two half-day columns, blocks created by a
// motionless press-and-hold on open time then dragged to size, resized by
// dragging a block's bottom edge.
type dayView struct {
	state   *SharedState
	date    time.Time
	columns [2]layout.Column
	blocks  []*repository.DayBlock
	loading bool
	err     error

	press    dayPress
	pressSeq int
	gesture  dayGesture

	holdThreshold time.Duration

	// Keyboard cursor: a grid row within one column.
	curCol int
	curRow int
}

func newDayView(state *SharedState, date time.Time) *dayView {
	return &dayView{
		state:         state,
		date:          date,
		columns:       layout.DefaultColumns(dayColumnRows),
		loading:       true,
		holdThreshold: gesture.DefaultConfig().HoldThreshold,
	}
}

func (v *dayView) ID() ViewID    { return ViewDay }
func (v *dayView) Title() string { return "Day " + v.date.Format("Jan 2") }

func (v *dayView) ShortHelp() []key.Binding {
	if v.gesture.active {
		return []key.Binding{
			key.NewBinding(key.WithKeys("+"), key.WithHelp("+/-", "extend/shrink")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new block")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "rename")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("h"), key.WithHelp("h/l", "column")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *dayView) Init() tea.Cmd {
	return v.loadBlocks()
}

func (v *dayView) loadBlocks() tea.Cmd {
	app := v.state.App
	date := v.date
	return func() tea.Msg {
		blocks, err := app.Schedule.Blocks(context.Background(), date)
		return blocksLoadedMsg{blocks: blocks, err: err}
	}
}

func (v *dayView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case blocksLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.blocks = msg.blocks
		return v, nil

	case refreshViewMsg:
		return v, v.loadBlocks()

	case dayHoldTickMsg:
		if !v.press.active || msg.seq != v.pressSeq {
			return v, nil
		}
		p := v.press
		v.press = dayPress{}
		block, err := v.columns[p.col].BeginCreate(v.columnBlocks(p.col), p.minute)
		if err != nil {
			return v, statusErr(err)
		}
		v.gesture = dayGesture{active: true, col: p.col, block: block}
		return v, nil

	case tea.MouseMsg:
		return v.handleMouse(msg)

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

// ── geometry ─────────────────────────────────────────────────────────────────

// cellAt maps absolute terminal coordinates to a column index and the grid
// minute at that row.
func (v *dayView) cellAt(x, y int) (col int, minute int, ok bool) {
	row := y - dayGridTop
	if row < 0 || row >= dayColumnRows {
		return 0, 0, false
	}
	switch {
	case x >= 0 && x < dayColWidth:
		col = 0
	case x >= dayColWidth+dayColGap && x < 2*dayColWidth+dayColGap:
		col = 1
	default:
		return 0, 0, false
	}
	minute = v.columns[col].MinuteAt(float64(row))
	return col, minute, true
}

// columnBlocks returns the persisted blocks that live in the given column.
func (v *dayView) columnBlocks(col int) []layout.Block {
	var out []layout.Block
	for _, b := range v.blocks {
		if v.columns[col].Contains(b.StartMin) {
			out = append(out, layout.Block{ID: b.ID, Title: b.Title, StartMin: b.StartMin, EndMin: b.EndMin})
		}
	}
	return out
}

func (v *dayView) blockAt(col, minute int) (*repository.DayBlock, bool) {
	for _, b := range v.blocks {
		if v.columns[col].Contains(b.StartMin) && minute >= b.StartMin && minute < b.EndMin {
			return b, true
		}
	}
	return nil, false
}

// ── mouse handling ───────────────────────────────────────────────────────────

func (v *dayView) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return v, nil
		}
		// One manipulation at a time: a press while a create or resize is
		// unresolved is ignored.
		if v.gesture.active || v.press.active {
			return v, nil
		}
		col, minute, ok := v.cellAt(msg.X, msg.Y)
		if !ok {
			return v, nil
		}
		// Pressing a block's last grid row grabs its bottom edge.
		if b, hit := v.blockAt(col, minute); hit {
			if minute >= b.EndMin-layout.GridMinutes {
				v.gesture = dayGesture{
					active:  true,
					resize:  true,
					blockID: b.ID,
					col:     col,
					block:   layout.Block{ID: b.ID, Title: b.Title, StartMin: b.StartMin, EndMin: b.EndMin},
				}
			}
			return v, nil
		}
		// Open time: creation starts only after a motionless hold.
		v.pressSeq++
		v.press = dayPress{active: true, col: col, minute: minute, x: msg.X, y: msg.Y}
		seq := v.pressSeq
		return v, tea.Tick(v.holdThreshold, func(time.Time) tea.Msg { return dayHoldTickMsg{seq: seq} })

	case tea.MouseActionMotion:
		if v.press.active {
			// Movement before the hold threshold is a scroll, not a create.
			if cellDist(msg.X, v.press.x) > 1 || cellDist(msg.Y, v.press.y) > 1 {
				v.press = dayPress{}
				v.pressSeq++
			}
			return v, nil
		}
		if !v.gesture.active {
			return v, nil
		}
		col, minute, ok := v.cellAt(msg.X, msg.Y)
		if !ok || col != v.gesture.col {
			return v, nil
		}
		c := v.columns[v.gesture.col]
		v.gesture.block.EndMin = c.ClampEnd(v.columnBlocks(v.gesture.col), v.gesture.block, minute+layout.GridMinutes)
		return v, nil

	case tea.MouseActionRelease:
		if v.press.active {
			// Released before the hold threshold: a tap on open time does
			// nothing.
			v.press = dayPress{}
			v.pressSeq++
			return v, nil
		}
		if !v.gesture.active {
			return v, nil
		}
		return v, v.commitGesture()
	}
	return v, nil
}

func cellDist(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}

// commitGesture persists the in-flight manipulation: a resize updates the end
// time directly, a create asks for a title first.
func (v *dayView) commitGesture() tea.Cmd {
	g := v.gesture
	v.gesture = dayGesture{}

	if g.resize {
		app := v.state.App
		return func() tea.Msg {
			if err := app.Schedule.ResizeBlock(context.Background(), g.blockID, g.block.EndMin); err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			return refreshViewMsg{}
		}
	}

	app := v.state.App
	date := v.date
	return pushView(newBlockTitleForm(v.state, func(title string) tea.Cmd {
		return func() tea.Msg {
			if _, err := app.Schedule.CreateBlock(context.Background(), date, title, g.block.StartMin, g.block.EndMin); err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			return refreshViewMsg{}
		}
	}))
}

// ── keyboard handling ────────────────────────────────────────────────────────

func (v *dayView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := v.columns[v.curCol]
	cursorMin := c.StartMin + v.curRow*layout.GridMinutes

	if v.gesture.active {
		switch msg.String() {
		case "+", "=", "down", "j":
			v.gesture.block.EndMin = c.ClampEnd(v.columnBlocks(v.gesture.col), v.gesture.block,
				v.gesture.block.EndMin+layout.GridMinutes)
		case "-", "up", "k":
			if v.gesture.block.EndMin-layout.GridMinutes >= v.gesture.block.StartMin+layout.GridMinutes {
				v.gesture.block.EndMin -= layout.GridMinutes
			}
		case "enter":
			return v, v.commitGesture()
		case "esc":
			v.gesture = dayGesture{}
		}
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		if v.curRow > 0 {
			v.curRow--
		}
	case "down", "j":
		if v.curRow < dayColumnRows-1 {
			v.curRow++
		}
	case "h", "left":
		v.curCol = 0
	case "l", "right":
		v.curCol = 1
	case "c":
		block, err := c.BeginCreate(v.columnBlocks(v.curCol), cursorMin)
		if err != nil {
			return v, statusErr(err)
		}
		v.gesture = dayGesture{active: true, col: v.curCol, block: block}
	case "enter":
		if b, ok := v.blockAt(v.curCol, cursorMin); ok {
			return v, v.renameBlock(b)
		}
	case "x":
		if b, ok := v.blockAt(v.curCol, cursorMin); ok {
			return v, v.deleteBlock(b.ID)
		}
	case "r":
		v.loading = true
		return v, v.loadBlocks()
	}
	return v, nil
}

func (v *dayView) renameBlock(b *repository.DayBlock) tea.Cmd {
	app := v.state.App
	id := b.ID
	return pushView(newBlockTitleForm(v.state, func(title string) tea.Cmd {
		return func() tea.Msg {
			if err := app.Schedule.RenameBlock(context.Background(), id, title); err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			return refreshViewMsg{}
		}
	}))
}

func (v *dayView) deleteBlock(id string) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		if err := app.Schedule.DeleteBlock(context.Background(), id); err != nil {
			return statusMsg{text: err.Error(), isErr: true}
		}
		return refreshViewMsg{}
	}
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *dayView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading schedule...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	heading := pad(formatter.ClockRange(v.columns[0].StartMin, v.columns[0].EndMin), dayColWidth) +
		strings.Repeat(" ", dayColGap) +
		formatter.ClockRange(v.columns[1].StartMin, v.columns[1].EndMin)
	b.WriteString(formatter.StyleHeader.Render(heading))
	b.WriteByte('\n')

	for row := 0; row < dayColumnRows; row++ {
		left := v.renderCell(0, row)
		right := v.renderCell(1, row)
		b.WriteString(pad(left, dayColWidth))
		b.WriteString(strings.Repeat(" ", dayColGap))
		b.WriteString(right)
		b.WriteByte('\n')
	}
	return b.String()
}

// renderCell draws one grid row of one column.
func (v *dayView) renderCell(col, row int) string {
	c := v.columns[col]
	minute := c.StartMin + row*layout.GridMinutes

	isCursor := col == v.curCol && row == v.curRow && !v.gesture.active
	prefix := "  "
	if isCursor {
		prefix = formatter.StyleGreen.Render("▸ ")
	}

	// In-flight provisional or resized block wins over persisted state.
	if g := v.gesture; g.active && g.col == col && minute >= g.block.StartMin && minute < g.block.EndMin {
		label := "new block"
		if g.resize {
			label = g.block.Title
		}
		return prefix + formatter.StyleYellow.Render(v.blockRowText(g.block, minute, label))
	}

	if b, ok := v.blockAt(col, minute); ok {
		if v.gesture.active && v.gesture.resize && v.gesture.blockID == b.ID {
			// Drawn above as the in-flight shape.
			if minute >= v.gesture.block.EndMin {
				return prefix + v.emptyRowText(minute)
			}
		}
		lb := layout.Block{ID: b.ID, Title: b.Title, StartMin: b.StartMin, EndMin: b.EndMin}
		return prefix + formatter.StyleBlue.Render(v.blockRowText(lb, minute, b.Title))
	}

	return prefix + v.emptyRowText(minute)
}

func (v *dayView) blockRowText(b layout.Block, minute int, label string) string {
	switch {
	case minute == b.StartMin:
		return fmt.Sprintf("┌ %s %s", label, formatter.Clock(b.StartMin))
	case minute >= b.EndMin-layout.GridMinutes:
		return fmt.Sprintf("└ %s", formatter.Clock(b.EndMin))
	default:
		return "│"
	}
}

func (v *dayView) emptyRowText(minute int) string {
	if minute%60 == 0 {
		return formatter.Dim(formatter.Clock(minute) + " ····")
	}
	return formatter.Dim("·")
}

func pad(s string, width int) string {
	// lipgloss styling adds escape codes, so measure the visible width the
	// cheap way: these strings are plain ASCII plus box-drawing runes.
	visible := len([]rune(stripANSI(s)))
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
