package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/neonboard/internal/cli/formatter"
	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/spf13/cobra"
)

func newLabelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Manage the label catalog of a board",
	}

	cmd.AddCommand(
		newLabelAddCmd(app),
		newLabelListCmd(app),
		newLabelEditCmd(app),
		newLabelRemoveCmd(app),
	)

	return cmd
}

func paletteHelp() string {
	colors := domain.LabelColors()
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func newLabelAddCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add BOARD NAME",
		Short: "Add a label to a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			id, err := app.Boards.AddLabel(ctx, boardID, args[1], color)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added label %s [%s]\n", formatter.LabelChip(args[1], color), formatter.TruncID(id))
			return nil
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", string(domain.ColorBlue), "Label color: "+paletteHelp())

	return cmd
}

func newLabelListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list BOARD",
		Short: "List the labels of a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadBoard(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLabels(d.Labels))
			return nil
		},
	}
}

func newLabelEditCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "edit BOARD LABEL",
		Short: "Rename or recolor a label",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := loadBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			labelID, err := resolveLabelID(d, args[1])
			if err != nil {
				return err
			}

			newName, newColor := "", ""
			for _, l := range d.Labels {
				if l.ID == labelID {
					newName, newColor = l.Name, l.Color
				}
			}
			if cmd.Flags().Changed("name") {
				newName = name
			}
			if cmd.Flags().Changed("color") {
				newColor = color
			}
			if err := app.Boards.UpdateLabel(ctx, d.ID, labelID, newName, newColor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated label %s\n", formatter.LabelChip(newName, newColor))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&color, "color", "c", "", "New color: "+paletteHelp())

	return cmd
}

func newLabelRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm BOARD LABEL",
		Aliases: []string{"remove"},
		Short:   "Delete a label and detach it from every card",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := loadBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			labelID, err := resolveLabelID(d, args[1])
			if err != nil {
				return err
			}
			if err := app.Boards.RemoveLabel(ctx, d.ID, labelID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed label %s\n", formatter.TruncID(labelID))
			return nil
		},
	}
}
