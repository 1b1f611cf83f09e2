package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/quickadd"
)

// formView wraps a huh form as a stack view. When the form completes the
// submit closure builds the follow-up command; cancelling just pops.
type formView struct {
	state  *SharedState
	form   *huh.Form
	title  string
	submit func() tea.Cmd
}

func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return v.title }

func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *formView) Init() tea.Cmd {
	if v.state.Height > 0 {
		v.form = v.form.WithHeight(v.state.ContentHeight())
	}
	return v.form.Init()
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := v.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		return v, tea.Batch(popView(), v.submit())
	case huh.StateAborted:
		return v, popView()
	}
	return v, cmd
}

func (v *formView) View() string {
	return "\n" + v.form.View()
}

// newEditItemForm edits an item's title in place.
func newEditItemForm(state *SharedState, item domain.Item) *formView {
	title := item.ItemTitle()
	kind, id := item.Kind(), item.ItemID()

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(&title),
	))

	return &formView{
		state: state,
		form:  form,
		title: "Edit",
		submit: func() tea.Cmd {
			app := state.App
			return func() tea.Msg {
				if title == "" {
					return refreshViewMsg{}
				}
				if err := app.Items.Rename(context.Background(), kind, id, title); err != nil {
					return statusMsg{text: err.Error(), isErr: true}
				}
				return refreshViewMsg{}
			}
		},
	}
}

// newMoveItemForm re-places an item via the day/window selector.
func newMoveItemForm(state *SharedState, item domain.Item) *formView {
	kind, id := item.Kind(), item.ItemID()
	value := item.ItemPlacement().Encode()

	var options []huh.Option[string]
	for _, group := range quickadd.SelectorGroups(state.Today) {
		for _, opt := range group.Options {
			options = append(options, huh.NewOption(opt.Label, opt.Value))
		}
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Move to").
			Options(options...).
			Value(&value),
	))

	return &formView{
		state: state,
		form:  form,
		title: "Move",
		submit: func() tea.Cmd {
			app := state.App
			return func() tea.Msg {
				dest, err := domain.DecodePlacement(value)
				if err != nil {
					return statusMsg{text: err.Error(), isErr: true}
				}
				if err := app.Items.Move(context.Background(), kind, id, dest); err != nil {
					return statusMsg{text: err.Error(), isErr: true}
				}
				return refreshViewMsg{}
			}
		},
	}
}

// newBlockTitleForm names a provisional schedule block. An empty title
// discards the block instead of persisting it.
func newBlockTitleForm(state *SharedState, onSubmit func(title string) tea.Cmd) *formView {
	var title string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Block title").
			Description("leave empty to discard").
			Value(&title),
	))

	return &formView{
		state: state,
		form:  form,
		title: "New block",
		submit: func() tea.Cmd {
			if title == "" {
				return refreshViews()
			}
			return onSubmit(title)
		},
	}
}
