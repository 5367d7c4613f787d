package cli

import (
	"fmt"

	"github.com/alexanderramin/neonboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newColumnCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage the columns of a board",
	}

	cmd.AddCommand(
		newColumnAddCmd(app),
		newColumnRenameCmd(app),
		newColumnReorderCmd(app),
		newColumnRemoveCmd(app),
	)

	return cmd
}

func newColumnAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add BOARD NAME",
		Short: "Append a column to a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			id, err := app.Boards.AddColumn(ctx, boardID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added column %s [%s]\n", args[1], formatter.TruncID(id))
			return nil
		},
	}
}

func newColumnRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename BOARD COLUMN NAME",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := loadBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			columnID, err := resolveColumnID(d, args[1])
			if err != nil {
				return err
			}
			if err := app.Boards.RenameColumn(ctx, d.ID, columnID, args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed column %s to %s\n", formatter.TruncID(columnID), args[2])
			return nil
		},
	}
}

func newColumnReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder BOARD COLUMN...",
		Short: "Set the order of all columns",
		Long:  "Every column of the board must be listed exactly once, in the new order.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := loadBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(args)-1)
			for _, in := range args[1:] {
				id, err := resolveColumnID(d, in)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			if err := app.Boards.ReorderColumns(ctx, d.ID, ids); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reordered %s\n", formatter.Plural(len(ids), "column"))
			return nil
		},
	}
}

func newColumnRemoveCmd(app *App) *cobra.Command {
	var moveTo string

	cmd := &cobra.Command{
		Use:     "rm BOARD COLUMN",
		Aliases: []string{"remove"},
		Short:   "Delete a column, moving its cards to another column",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := loadBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			columnID, err := resolveColumnID(d, args[1])
			if err != nil {
				return err
			}

			var count int
			for _, c := range d.Columns {
				if c.ID == columnID {
					count = len(c.Cards)
				}
			}

			target := ""
			switch {
			case moveTo != "":
				if target, err = resolveColumnID(d, moveTo); err != nil {
					return err
				}
			case count > 0:
				if target, err = pickMoveTarget(app, d, columnID, count); err != nil {
					return err
				}
			}

			if err := app.Boards.DeleteColumn(ctx, d.ID, columnID, target); err != nil {
				return err
			}
			if count > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed column %s, moved %s\n", formatter.TruncID(columnID), formatter.Plural(count, "card"))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed column %s\n", formatter.TruncID(columnID))
			return nil
		},
	}

	cmd.Flags().StringVar(&moveTo, "move-to", "", "Column that receives the deleted column's cards")

	return cmd
}
