package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/calewis/slate/internal/cli/formatter"
)

// itemAddedMsg reports the outcome of a quick-add submission.
type itemAddedMsg struct {
	title string
	err   error
}

// quickAddBar is the persistent capture line at the bottom of the TUI.
// Free text plus inline #tags: "#task/#plan/#intention" pick the kind,
// "#today/#friday/#next-week/..." pick the placement.
type quickAddBar struct {
	state *SharedState
	input textinput.Model
}

func newQuickAddBar(state *SharedState) quickAddBar {
	ti := textinput.New()
	ti.Placeholder = `add item... (#task #plan #intention, #today #friday #next-week #no-date)`
	ti.Prompt = "+ "
	ti.CharLimit = 200
	return quickAddBar{state: state, input: ti}
}

func (b *quickAddBar) Focus() tea.Cmd {
	return b.input.Focus()
}

func (b *quickAddBar) Blur() {
	b.input.Blur()
	b.input.SetValue("")
}

func (b *quickAddBar) Focused() bool {
	return b.input.Focused()
}

func (b *quickAddBar) SetWidth(w int) {
	b.input.Width = max(w-4, 10)
}

// Update handles key events while the bar is focused. Enter submits, Esc
// abandons the draft.
func (b *quickAddBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		line := b.input.Value()
		b.Blur()
		if line == "" {
			return nil
		}
		return b.submit(line)
	case tea.KeyEsc:
		b.Blur()
		return nil
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return cmd
}

// UpdateNonKey forwards non-key messages (cursor blink) to the text input.
func (b *quickAddBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return cmd
}

func (b *quickAddBar) submit(line string) tea.Cmd {
	app := b.state.App
	today := b.state.Today
	return func() tea.Msg {
		item, err := app.Items.QuickAdd(context.Background(), line, today)
		if err != nil {
			return itemAddedMsg{err: err}
		}
		return itemAddedMsg{title: item.ItemTitle()}
	}
}

func (b *quickAddBar) View() string {
	if b.input.Focused() {
		return b.input.View()
	}
	return formatter.Dim("a: add item")
}
