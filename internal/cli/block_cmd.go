package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/calewis/slate/internal/cli/formatter"
	"github.com/calewis/slate/internal/domain"
)

// newBlockCmd groups the day-schedule block operations.
func newBlockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Manage day schedule blocks",
	}
	cmd.AddCommand(
		newBlockListCmd(app),
		newBlockAddCmd(app),
		newBlockRmCmd(app),
	)
	return cmd
}

func newBlockListCmd(app *App) *cobra.Command {
	var dateStr string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the day's schedule blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateFlag(dateStr)
			if err != nil {
				return err
			}
			blocks, err := app.Schedule.Blocks(cmd.Context(), date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(blocks) == 0 {
				fmt.Fprintf(out, "No blocks on %s\n", date.Format("Mon Jan 2"))
				return nil
			}
			for _, b := range blocks {
				fmt.Fprintf(out, "%s  %s  %s\n",
					formatter.ClockRange(b.StartMin, b.EndMin), b.Title, b.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "date (2006-01-02), defaults to today")
	return cmd
}

func newBlockAddCmd(app *App) *cobra.Command {
	var dateStr string
	cmd := &cobra.Command{
		Use:   "add <start> <end> <title...>",
		Short: "Create a schedule block (times like 9:15, 14:30)",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateFlag(dateStr)
			if err != nil {
				return err
			}
			start, err := domain.ParseClockInput(args[0])
			if err != nil {
				return err
			}
			end, err := domain.ParseClockInput(args[1])
			if err != nil {
				return err
			}
			title := strings.Join(args[2:], " ")
			block, err := app.Schedule.CreateBlock(cmd.Context(), date, title, start, end)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q on %s\n",
				formatter.ClockRange(block.StartMin, block.EndMin), block.Title, date.Format("Mon Jan 2"))
			return nil
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "date (2006-01-02), defaults to today")
	return cmd
}

func newBlockRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a schedule block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Schedule.DeleteBlock(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted block %s\n", args[0])
			return nil
		},
	}
}

func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return domain.DateOnly(time.Now()), nil
	}
	date, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", domain.ErrValidation, s)
	}
	return date, nil
}
