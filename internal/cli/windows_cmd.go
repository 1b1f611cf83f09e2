package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/calewis/slate/internal/domain"
)

// newWindowsCmd prints the four rolling parking window anchors for today.
func newWindowsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "Show the current planning window anchors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := domain.ComputePlanningWindows(time.Now())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "This week    %s\n", w.ThisWeekStart.Format("Mon Jan 2"))
			fmt.Fprintf(out, "Next week    %s\n", w.NextWeekStart.Format("Mon Jan 2"))
			fmt.Fprintf(out, "This weekend %s\n", w.ThisWeekendStart.Format("Mon Jan 2"))
			fmt.Fprintf(out, "Next weekend %s\n", w.NextWeekendStart.Format("Mon Jan 2"))
			return nil
		},
	}
}
