package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/calewis/slate/internal/domain"
	"github.com/calewis/slate/internal/ordering"
	"github.com/calewis/slate/internal/quickadd"
)

// newItemCmd groups the non-interactive item mutations.
func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage items (move, reorder, done, rename, rm)",
	}
	cmd.AddCommand(
		newItemMoveCmd(app),
		newItemReorderCmd(app),
		newItemDoneCmd(app),
		newItemRenameCmd(app),
		newItemRmCmd(app),
	)
	return cmd
}

func newItemReorderCmd(app *App) *cobra.Command {
	var in string
	var above bool
	cmd := &cobra.Command{
		Use:   "reorder <kind> <id> <target-id>",
		Short: "Drop an item next to another in the same list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseItemKind(args[0])
			if err != nil {
				return err
			}
			p, err := parseDestination(in, time.Now())
			if err != nil {
				return err
			}
			pos := ordering.Below
			if above {
				pos = ordering.Above
			}
			items, err := app.Items.Reorder(cmd.Context(), kind, p, args[1], args[2], pos)
			if err != nil {
				return err
			}
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %s\n", it.OrderKey(), it.ItemTitle())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "none", "list holding both items (a #tag like today/next-week, a date, or 'none')")
	cmd.Flags().BoolVar(&above, "above", false, "drop above the target instead of below")
	return cmd
}

func newItemMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <kind> <id> <destination>",
		Short: "Re-place an item (destination: a #tag like today/friday/next-week, a date, or 'none')",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseItemKind(args[0])
			if err != nil {
				return err
			}
			dest, err := parseDestination(args[2], time.Now())
			if err != nil {
				return err
			}
			if err := app.Items.Move(cmd.Context(), kind, args[1], dest); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s %s\n", kind, args[1])
			return nil
		},
	}
}

func newItemDoneCmd(app *App) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "done <kind> <id>",
		Short: "Mark an item completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseItemKind(args[0])
			if err != nil {
				return err
			}
			if err := app.Items.Complete(cmd.Context(), kind, args[1], !undo); err != nil {
				return err
			}
			state := "done"
			if undo {
				state = "not done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s %s %s\n", kind, args[1], state)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "mark as not completed")
	return cmd
}

func newItemRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <kind> <id> <title...>",
		Short: "Change an item's title",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseItemKind(args[0])
			if err != nil {
				return err
			}
			title := strings.Join(args[2:], " ")
			if err := app.Items.Rename(cmd.Context(), kind, args[1], title); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s %s\n", kind, args[1])
			return nil
		},
	}
}

func newItemRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <kind> <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseItemKind(args[0])
			if err != nil {
				return err
			}
			if err := app.Items.Delete(cmd.Context(), kind, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", kind, args[1])
			return nil
		},
	}
}

func parseItemKind(s string) (domain.ItemKind, error) {
	s = strings.ToLower(s)
	if !domain.ValidItemKinds[s] {
		return "", fmt.Errorf("%w: unknown item kind %q", domain.ErrValidation, s)
	}
	return domain.ItemKind(s), nil
}

// parseDestination accepts the quick-add placement tags ("today", "friday",
// "next-week", "no-date"), a literal date, or an encoded placement.
func parseDestination(s string, today time.Time) (domain.Placement, error) {
	tag := strings.TrimPrefix(strings.ToLower(s), "#")
	if p, ok := quickadd.PlacementFor(tag, today); ok {
		return p, nil
	}
	if day, err := time.Parse(domain.DateLayout, s); err == nil {
		return domain.OnDay(day), nil
	}
	return domain.DecodePlacement(s)
}
