package cli

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calewis/slate/internal/cli/formatter"
	"github.com/calewis/slate/internal/domain"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack and a persistent quick-add bar.
type appModel struct {
	state     *SharedState
	viewStack []View
	addBar    quickAddBar
	quitting  bool

	// Transient status line content.
	notice    string
	noticeErr bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{
		App:   app,
		Today: domain.DateOnly(time.Now()),
	}
	m := appModel{
		state:  state,
		addBar: newQuickAddBar(state),
	}
	m.viewStack = []View{newBoardView(state)}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.addBar.SetWidth(msg.Width)
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		// Mouse gestures belong to the active view's surface.
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case pushViewMsg:
		m.addBar.Blur()
		m.notice = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, refreshViews()

	case refreshViewMsg:
		// Broadcast so underlying views reload after mutations made in
		// views above them. Today is re-derived so a session crossing
		// midnight picks up the new windows on its next refresh.
		m.state.Today = domain.DateOnly(time.Now())
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case itemAddedMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
			m.noticeErr = true
			return m, nil
		}
		m.notice = "added " + msg.title
		m.noticeErr = false
		return m, refreshViews()

	case statusMsg:
		m.notice = msg.text
		m.noticeErr = msg.isErr
		return m, nil
	}

	// Forward other messages to the quick-add bar (cursor blink).
	if m.addBar.Focused() {
		cmd := m.addBar.UpdateNonKey(msg)
		return m, cmd
	}

	// Forward to active view (timer ticks and load results).
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.addBar.Focused() {
		cmd := m.addBar.Update(msg)
		return m, cmd
	}

	// Forms own the keyboard while on top of the stack.
	if v := m.activeView(); v != nil && v.ID() == ViewForm {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "a":
		m.notice = ""
		return m, m.addBar.Focus()

	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.String() == "tab":
		// Toggle between the board and the day schedule.
		if v := m.activeView(); v != nil && len(m.viewStack) == 1 {
			var next View
			if v.ID() == ViewBoard {
				next = newDayView(m.state, m.state.Today)
			} else {
				next = newBoardView(m.state)
			}
			m.viewStack[0] = next
			return m, next.Init()
		}

	case msg.Type == tea.KeyEsc:
		m.notice = ""
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
			return m, refreshViews()
		}
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())
	sections = append(sections, m.addBar.View())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("slate")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	header := title + breadcrumb
	header += "  " + formatter.Dim(m.state.Today.Format("Mon Jan 2"))

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	if m.notice != "" {
		if m.noticeErr {
			hints = append(hints, formatter.StyleRed.Render(m.notice))
		} else {
			hints = append(hints, formatter.StyleGreen.Render(m.notice))
		}
	} else if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}

	if !m.addBar.Focused() {
		hints = append(hints, formatter.Dim("tab: board/day"), formatter.Dim("q: quit"))
	}

	bar := strings.Join(hints, "  ")
	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}
