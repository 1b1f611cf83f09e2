package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/calewis/slate/internal/cli/formatter"
	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/service"
)

// newBoardCmd prints the planning board as plain text: the week's days, the
// four parking windows, and the unplaced backlog.
func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Print the planning board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := time.Now()
			board, err := app.Board.Build(cmd.Context(), today)
			if err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), board)
			return nil
		},
	}
}

func printBoard(w io.Writer, board *service.Board) {
	for _, day := range board.Days {
		header := formatter.DayLabel(day.Date, board.Today)
		if empty := len(day.Tasks)+len(day.Plans)+len(day.Intentions)+len(day.Content) == 0; empty {
			fmt.Fprintf(w, "%s  %s\n", header, formatter.Dim("-"))
			continue
		}
		fmt.Fprintln(w, header)
		for _, p := range day.Plans {
			fmt.Fprintf(w, "  %s\n", planLine(p))
		}
		for _, t := range day.Tasks {
			fmt.Fprintf(w, "  %s %s\n", taskBox(t), t.Title)
		}
		for _, i := range day.Intentions {
			fmt.Fprintf(w, "  ~ %s\n", i.Title)
		}
		for _, c := range day.Content {
			fmt.Fprintf(w, "  > %s\n", c.ItemTitle())
		}
	}

	for _, win := range board.Parking {
		fmt.Fprintf(w, "\n%s (%s)\n",
			formatter.WindowLabel(win.Kind, win.Next), win.Start.Format("Jan 2"))
		if len(win.Tasks)+len(win.Plans)+len(win.Intentions) == 0 {
			fmt.Fprintf(w, "  %s\n", formatter.Dim("-"))
			continue
		}
		for _, p := range win.Plans {
			fmt.Fprintf(w, "  %s\n", planLine(p))
		}
		for _, t := range win.Tasks {
			fmt.Fprintf(w, "  %s %s\n", taskBox(t), t.Title)
		}
		for _, i := range win.Intentions {
			fmt.Fprintf(w, "  ~ %s\n", i.Title)
		}
	}

	if n := len(board.UnplacedTasks) + len(board.UnplacedPlans) + len(board.UnplacedIntentions); n > 0 {
		fmt.Fprintf(w, "\nNo date\n")
		for _, p := range board.UnplacedPlans {
			fmt.Fprintf(w, "  %s\n", planLine(p))
		}
		for _, t := range board.UnplacedTasks {
			fmt.Fprintf(w, "  %s %s\n", taskBox(t), t.Title)
		}
		for _, i := range board.UnplacedIntentions {
			fmt.Fprintf(w, "  ~ %s\n", i.Title)
		}
	}
}

func taskBox(t *domain.Task) string {
	if t.Done {
		return "[x]"
	}
	return "[ ]"
}

func planLine(p *domain.Plan) string {
	line := "* " + p.Title
	if p.StartMin != nil && p.EndMin != nil {
		line += " " + formatter.ClockRange(*p.StartMin, *p.EndMin)
	}
	if p.IsMultiDay() {
		line += fmt.Sprintf(" (through %s)", p.LastDay().Format("Jan 2"))
	}
	return line
}
