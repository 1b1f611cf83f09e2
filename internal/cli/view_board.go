package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/calewis/slate/internal/cli/formatter"
	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/gesture"
	"github.com/calewis/slate/internal/layout"
	"github.com/calewis/slate/internal/ordering"
	"github.com/calewis/slate/internal/service"
)

// headerLines is the number of terminal rows above the board content (app
// title plus separator). Mouse coordinates arrive in absolute terminal space,
// so row geometry is offset by this.
const headerLines = 2

// boardRow is one rendered line of the board. Header rows label a day or
// window section; item rows are draggable.
type boardRow struct {
	header    bool
	label     string
	item      domain.Item
	placement domain.Placement
	y         int // absolute terminal row
}

// boardLoadedMsg signals that board data has been loaded.
type boardLoadedMsg struct {
	board *service.Board
	err   error
}

// holdTickMsg promotes a press to a pending drag; editTickMsg resolves a long
// motionless hold as edit-open. Both carry the gesture sequence observed at
// press time so stale timers are ignored.
type holdTickMsg struct{ seq int }
type editTickMsg struct{ seq int }

// boardView shows the planning board: the week's span lanes, seven day cells,
// the four parking windows, and the unplaced backlog. Items are draggable
// with the mouse; every gesture has a keyboard fallback.
type boardView struct {
	state   *SharedState
	board   *service.Board
	rows    []boardRow
	cursor  int
	loading bool
	err     error

	spanLines int // lines consumed by the week-span lanes above the rows
	ctrl      *gesture.Controller
}

func newBoardView(state *SharedState) *boardView {
	v := &boardView{state: state, loading: true}
	cfg := gesture.DefaultConfig()
	cfg.HitTest = v.hitTest
	cfg.InBounds = v.inBounds
	v.ctrl = gesture.NewController(cfg)
	return v
}

func (v *boardView) ID() ViewID    { return ViewBoard }
func (v *boardView) Title() string { return "Board" }

func (v *boardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "toggle done")),
		key.NewBinding(key.WithKeys("J"), key.WithHelp("J/K", "reorder")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *boardView) Init() tea.Cmd {
	return v.loadBoard()
}

func (v *boardView) loadBoard() tea.Cmd {
	app := v.state.App
	today := v.state.Today
	return func() tea.Msg {
		board, err := app.Board.Build(context.Background(), today)
		return boardLoadedMsg{board: board, err: err}
	}
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.board = msg.board
		v.buildRows()
		if v.cursor >= len(v.rows) {
			v.cursor = 0
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadBoard()

	case holdTickMsg:
		v.ctrl.HoldTimerFired(msg.seq)
		return v, nil

	case editTickMsg:
		if row, ok := v.ctrl.EditTimerFired(msg.seq); ok {
			if item := v.itemByID(row.ID); item != nil {
				return v, pushView(newEditItemForm(v.state, item))
			}
		}
		return v, nil

	case tea.MouseMsg:
		return v.handleMouse(msg)

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

// handleMouse drives the drag state machine from raw pointer events.
func (v *boardView) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return v, nil
		}
		if !v.ctrl.Press(msg.X, msg.Y) {
			return v, nil
		}
		seq := v.ctrl.Seq()
		cfg := v.ctrl.Config()
		return v, tea.Batch(
			tea.Tick(cfg.HoldThreshold, func(time.Time) tea.Msg { return holdTickMsg{seq: seq} }),
			tea.Tick(cfg.EditThreshold, func(time.Time) tea.Msg { return editTickMsg{seq: seq} }),
		)

	case tea.MouseActionMotion:
		v.ctrl.Move(msg.X, msg.Y)
		return v, nil

	case tea.MouseActionRelease:
		action := v.ctrl.Release(msg.X, msg.Y)
		switch action.Type {
		case gesture.ActionTap:
			return v, v.toggleDoneByID(action.Dragged.ID, action.Dragged.Kind)
		case gesture.ActionDrop:
			return v, v.commitDrop(action)
		}
		return v, nil
	}
	return v, nil
}

// commitDrop turns a completed drag into a store mutation: a reorder when the
// drop stayed inside the partition, a placement move when it crossed into
// another one.
func (v *boardView) commitDrop(action gesture.Action) tea.Cmd {
	app := v.state.App
	dragged := action.Dragged
	target := action.Target

	if dragged.PartitionKey == target.Row.PartitionKey && dragged.Kind == target.Row.Kind {
		placement := v.placementByID(dragged.ID)
		return func() tea.Msg {
			_, err := app.Items.Reorder(context.Background(), dragged.Kind, placement,
				dragged.ID, target.Row.ID, target.Pos)
			if err != nil {
				return boardLoadedMsg{err: err}
			}
			return refreshViewMsg{}
		}
	}

	dest := v.placementByID(target.Row.ID)
	return func() tea.Msg {
		if err := app.Items.Move(context.Background(), dragged.Kind, dragged.ID, dest); err != nil {
			return boardLoadedMsg{err: err}
		}
		return refreshViewMsg{}
	}
}

func (v *boardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.moveCursor(-1)
	case "down", "j":
		v.moveCursor(1)
	case "K":
		return v, v.reorderCursor(ordering.Above)
	case "J":
		return v, v.reorderCursor(ordering.Below)
	case "enter", "e":
		if row, ok := v.cursorRow(); ok {
			return v, pushView(newEditItemForm(v.state, row.item))
		}
	case " ":
		if row, ok := v.cursorRow(); ok {
			return v, v.toggleDoneByID(row.item.ItemID(), row.item.Kind())
		}
	case "m":
		if row, ok := v.cursorRow(); ok {
			return v, pushView(newMoveItemForm(v.state, row.item))
		}
	case "x":
		if row, ok := v.cursorRow(); ok {
			return v, v.deleteItem(row.item)
		}
	case "r":
		v.loading = true
		return v, v.loadBoard()
	}
	return v, nil
}

// moveCursor steps the cursor to the next item row in the given direction,
// skipping headers.
func (v *boardView) moveCursor(dir int) {
	for i := v.cursor + dir; i >= 0 && i < len(v.rows); i += dir {
		if !v.rows[i].header {
			v.cursor = i
			return
		}
	}
}

func (v *boardView) cursorRow() (boardRow, bool) {
	if v.cursor < len(v.rows) && !v.rows[v.cursor].header {
		return v.rows[v.cursor], true
	}
	return boardRow{}, false
}

// reorderCursor is the keyboard fallback for dragging: swap with the adjacent
// item in the same partition.
func (v *boardView) reorderCursor(pos ordering.Position) tea.Cmd {
	row, ok := v.cursorRow()
	if !ok {
		return nil
	}
	dir := 1
	if pos == ordering.Above {
		dir = -1
	}
	i := v.cursor + dir
	if i < 0 || i >= len(v.rows) {
		return nil
	}
	neighbor := v.rows[i]
	if neighbor.header || neighbor.item.Kind() != row.item.Kind() || !neighbor.placement.Equal(row.placement) {
		return nil
	}

	app := v.state.App
	v.cursor = i
	return func() tea.Msg {
		_, err := app.Items.Reorder(context.Background(), row.item.Kind(), row.placement,
			row.item.ItemID(), neighbor.item.ItemID(), pos)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		return refreshViewMsg{}
	}
}

func (v *boardView) toggleDoneByID(id string, kind domain.ItemKind) tea.Cmd {
	if kind == domain.KindPlan {
		return nil
	}
	app := v.state.App
	done := !v.itemDone(id, kind)
	return func() tea.Msg {
		if err := app.Items.Complete(context.Background(), kind, id, done); err != nil {
			return boardLoadedMsg{err: err}
		}
		return refreshViewMsg{}
	}
}

func (v *boardView) deleteItem(item domain.Item) tea.Cmd {
	app := v.state.App
	kind, id := item.Kind(), item.ItemID()
	return func() tea.Msg {
		if err := app.Items.Delete(context.Background(), kind, id); err != nil {
			return boardLoadedMsg{err: err}
		}
		return refreshViewMsg{}
	}
}

// ── row geometry ─────────────────────────────────────────────────────────────

// buildRows flattens the board into render rows with absolute y coordinates.
// The same rows drive rendering and mouse hit-testing, so the two can never
// disagree about where an item sits.
func (v *boardView) buildRows() {
	v.rows = v.rows[:0]
	v.spanLines = layout.LaneCount(v.board.Spans)
	y := headerLines + v.spanLines

	addHeader := func(label string) {
		v.rows = append(v.rows, boardRow{header: true, label: label, y: y})
		y++
	}
	addItem := func(item domain.Item, p domain.Placement) {
		v.rows = append(v.rows, boardRow{item: item, placement: p, y: y})
		y++
	}

	for _, day := range v.board.Days {
		addHeader(formatter.DayLabel(day.Date, v.state.Today))
		p := domain.OnDay(day.Date)
		for _, t := range day.Tasks {
			addItem(t, p)
		}
		for _, pl := range day.Plans {
			addItem(pl, p)
		}
		for _, in := range day.Intentions {
			addItem(in, p)
		}
		for _, c := range day.Content {
			addItem(c, p)
		}
	}

	for _, w := range v.board.Parking {
		addHeader(formatter.WindowLabel(w.Kind, w.Next))
		p := domain.InWindow(w.Kind, w.Start)
		for _, t := range w.Tasks {
			addItem(t, p)
		}
		for _, pl := range w.Plans {
			addItem(pl, p)
		}
		for _, in := range w.Intentions {
			addItem(in, p)
		}
	}

	addHeader("No date")
	unplaced := domain.Unplaced()
	for _, t := range v.board.UnplacedTasks {
		addItem(t, unplaced)
	}
	for _, pl := range v.board.UnplacedPlans {
		addItem(pl, unplaced)
	}
	for _, in := range v.board.UnplacedIntentions {
		addItem(in, unplaced)
	}
	for _, c := range v.board.Backlog {
		addItem(c, unplaced)
	}
}

// hitTest resolves the item row at an absolute terminal coordinate. The mixed
// content list is ordered by day-sort key rather than order key, so content
// rows are not drag sources; they still respond to taps via the keyboard.
func (v *boardView) hitTest(x, y int) (gesture.Row, bool) {
	for _, row := range v.rows {
		if row.header || row.y != y {
			continue
		}
		kind := row.item.Kind()
		if kind == domain.KindContentItem || kind == domain.KindContentSession {
			return gesture.Row{}, false
		}
		return gesture.Row{
			ID:           row.item.ItemID(),
			Kind:         kind,
			PartitionKey: row.placement.Key() + "/" + string(kind),
			Top:          row.y,
			Height:       1,
		}, true
	}
	return gesture.Row{}, false
}

func (v *boardView) inBounds(x, y int) bool {
	if len(v.rows) == 0 {
		return false
	}
	return y >= v.rows[0].y && y <= v.rows[len(v.rows)-1].y
}

func (v *boardView) itemByID(id string) domain.Item {
	for _, row := range v.rows {
		if !row.header && row.item.ItemID() == id {
			return row.item
		}
	}
	return nil
}

func (v *boardView) placementByID(id string) domain.Placement {
	for _, row := range v.rows {
		if !row.header && row.item.ItemID() == id {
			return row.placement
		}
	}
	return domain.Unplaced()
}

func (v *boardView) itemDone(id string, kind domain.ItemKind) bool {
	item := v.itemByID(id)
	switch it := item.(type) {
	case *domain.Task:
		return it.Done
	case *domain.Intention:
		return it.Done
	case *domain.ContentItem:
		return it.Done
	case *domain.ContentSession:
		return it.CompletedAt != nil
	}
	return false
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *boardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading board...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString(v.renderSpanLanes())

	dragging := v.ctrl.State() == gesture.Dragging
	draggedID := v.ctrl.Dragged().ID
	target, hasTarget := v.ctrl.DropTarget()

	for i, row := range v.rows {
		if row.header {
			// One line per header keeps the y geometry in buildRows exact.
			b.WriteString(formatter.StyleHeader.Render(row.label))
			b.WriteByte('\n')
			continue
		}

		line := v.renderItem(row, i == v.cursor)
		if dragging && row.item.ItemID() == draggedID {
			line = formatter.StyleYellow.Render("↕ ") + line
		} else if dragging && hasTarget && row.item.ItemID() == target.Row.ID {
			marker := "▲"
			if target.Pos == ordering.Below {
				marker = "▼"
			}
			line = formatter.StyleBlue.Render(marker+" ") + line
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// renderSpanLanes draws the packed multi-day plan lanes for this week, one
// terminal line per lane, day columns of fixed width.
func (v *boardView) renderSpanLanes() string {
	if v.spanLines == 0 {
		return ""
	}
	const colWidth = 10
	lines := make([][]rune, v.spanLines)
	for i := range lines {
		lines[i] = []rune(strings.Repeat(" ", 7*colWidth))
	}

	for _, seg := range v.board.Spans {
		cells := seg.EndCol - seg.StartCol + 1
		width := cells*colWidth - 1
		label := seg.Span.Title
		if seg.ContinuesLeft {
			label = "◀" + label
		}
		if seg.ContinuesRight {
			label = label + "▶"
		}
		if len([]rune(label)) > width {
			label = string([]rune(label)[:width])
		}
		bar := []rune(label + strings.Repeat("─", width-len([]rune(label))))
		copy(lines[seg.Lane][seg.StartCol*colWidth:], bar)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(formatter.StyleBlue.Render(string(line)))
		b.WriteByte('\n')
	}
	return b.String()
}

func (v *boardView) renderItem(row boardRow, isCursor bool) string {
	cursor := "  "
	if isCursor {
		cursor = formatter.StyleGreen.Render("▸ ")
	}

	switch it := row.item.(type) {
	case *domain.Task:
		box := "[ ]"
		title := it.Title
		if it.Done {
			box = formatter.StyleGreen.Render("[x]")
			title = formatter.Dim(it.Title)
		}
		return fmt.Sprintf("%s%s %s", cursor, box, title)
	case *domain.Plan:
		times := ""
		if it.StartMin != nil && it.EndMin != nil {
			times = " " + formatter.Dim(formatter.ClockRange(*it.StartMin, *it.EndMin))
		}
		loc := ""
		if it.Location != "" {
			loc = " " + formatter.Dim("@"+it.Location)
		}
		return fmt.Sprintf("%s%s %s%s%s", cursor, formatter.StyleBlue.Render("•"), it.Title, times, loc)
	case *domain.Intention:
		mark := "◦"
		title := it.Title
		if it.Done {
			mark = formatter.StyleGreen.Render("●")
			title = formatter.Dim(it.Title)
		}
		return fmt.Sprintf("%s%s %s", cursor, mark, title)
	case *domain.ContentItem:
		title := it.Title
		if it.Done {
			title = formatter.Dim(it.Title)
		}
		return fmt.Sprintf("%s%s %s %s", cursor, formatter.StylePurple.Render("▸"), title, formatter.Dim(string(it.Medium)))
	case *domain.ContentSession:
		mark := "▹"
		title := it.Title
		if it.CompletedAt != nil {
			mark = formatter.StyleGreen.Render("▸")
			title = formatter.Dim(it.Title)
		}
		return fmt.Sprintf("%s%s %s", cursor, mark, title)
	}
	return cursor + row.item.ItemTitle()
}
