package cli

import (
	"github.com/spf13/cobra"

	"github.com/calewis/slate/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Items    service.ItemService
	Board    service.BoardService
	Schedule service.ScheduleService

	// IsInteractive reports whether stdin is a terminal; the bare root
	// command only launches the TUI when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "slate" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "slate",
		Short: "Personal planning board with rolling windows and a day schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newAddCmd(app),
		newBoardCmd(app),
		newItemCmd(app),
		newBlockCmd(app),
		newWindowsCmd(app),
		newTUICmd(app),
	)

	return root
}
