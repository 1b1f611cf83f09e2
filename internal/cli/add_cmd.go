package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/calewis/slate/internal/cli/formatter"
)

// newAddCmd captures an item from the command line using the same #tag
// grammar as the TUI quick-add bar.
func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text with optional #tags>",
		Short: "Capture an item (#task #plan #intention, #today #friday #next-week ...)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(args, " ")
			item, err := app.Items.QuickAdd(cmd.Context(), line, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q (%s)\n",
				item.Kind(), item.ItemTitle(), formatter.PlacementLabel(item.ItemPlacement()))
			return nil
		},
	}
}
