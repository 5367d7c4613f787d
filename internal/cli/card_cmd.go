package cli

import (
	"fmt"

	"github.com/alexanderramin/neonboard/internal/cli/formatter"
	"github.com/alexanderramin/neonboard/internal/service"
	"github.com/spf13/cobra"
)

func newCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage the cards of a board",
	}

	cmd.AddCommand(
		newCardAddCmd(app),
		newCardShowCmd(app),
		newCardEditCmd(app),
		newCardMoveCmd(app),
		newCardRemoveCmd(app),
		newCardLabelCmd(app),
		newCardUnlabelCmd(app),
	)

	return cmd
}

func newCardAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add BOARD COLUMN [TITLE]",
		Short: "Add a card at the bottom of a column",
		Long:  "Without TITLE on an interactive terminal, a form asks for the title and description.",
		Args:  cobra.RangeArgs(2, 3),
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

			title := ""
			if len(args) == 3 {
				title = args[2]
			} else if app.interactive() {
				if err := cardForm(&title, &description).Run(); err != nil {
					return err
				}
			}

			id, err := app.Boards.AddCard(ctx, d.ID, columnID, title, description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added card %s [%s]\n", title, formatter.TruncID(id))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Card description")

	return cmd
}

func newCardShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show BOARD CARD",
		Short: "Show a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadBoard(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			cardID, err := resolveCardID(d, args[1])
			if err != nil {
				return err
			}
			card, column, _ := findCard(d, cardID)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCard(card, column, app.now()))
			return nil
		},
	}
}

func newCardEditCmd(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit BOARD CARD",
		Short: "Change the title or description of a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := loadBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			cardID, err := resolveCardID(d, args[1])
			if err != nil {
				return err
			}
			card, _, _ := findCard(d, cardID)

			newTitle, newDesc := card.Title, card.Description
			if cmd.Flags().Changed("title") {
				newTitle = title
			}
			if cmd.Flags().Changed("description") {
				newDesc = description
			}
			if err := app.Boards.UpdateCard(ctx, d.ID, cardID, newTitle, newDesc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated card %s [%s]\n", newTitle, formatter.TruncID(cardID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")

	return cmd
}

func newCardMoveCmd(app *App) *cobra.Command {
	var position int

	cmd := &cobra.Command{
		Use:   "move BOARD CARD COLUMN",
		Short: "Move a card to a column and position",
		Long:  "Positions count from 0. Without --position the card goes to the bottom of the column.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := loadBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			cardID, err := resolveCardID(d, args[1])
			if err != nil {
				return err
			}
			columnID, err := resolveColumnID(d, args[2])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("position") {
				position = bottomPosition(d, columnID)
			}

			if err := app.Boards.MoveCard(ctx, d.ID, cardID, columnID, position); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved card %s to %s\n", formatter.TruncID(cardID), args[2])
			return nil
		},
	}

	cmd.Flags().IntVar(&position, "position", 0, "Target position within the column")

	return cmd
}

// bottomPosition is the position that places a card after every card of
// the column. Out-of-range positions clamp, so the column length works for
// both cross-column and same-column moves.
func bottomPosition(d service.BoardDetails, columnID string) int {
	for _, c := range d.Columns {
		if c.ID == columnID {
			return len(c.Cards)
		}
	}
	return 0
}

func newCardRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm BOARD CARD",
		Aliases: []string{"remove"},
		Short:   "Delete a card",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := loadBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			cardID, err := resolveCardID(d, args[1])
			if err != nil {
				return err
			}
			if err := app.Boards.DeleteCard(ctx, d.ID, cardID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed card %s\n", formatter.TruncID(cardID))
			return nil
		},
	}
}

func newCardLabelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "label BOARD CARD LABEL",
		Short: "Attach a label to a card",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCardLabel(cmd, app, args, true)
		},
	}
}

func newCardUnlabelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unlabel BOARD CARD LABEL",
		Short: "Detach a label from a card",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCardLabel(cmd, app, args, false)
		},
	}
}

func runCardLabel(cmd *cobra.Command, app *App, args []string, attach bool) error {
	ctx := cmd.Context()
	d, err := loadBoard(ctx, app, args[0])
	if err != nil {
		return err
	}
	cardID, err := resolveCardID(d, args[1])
	if err != nil {
		return err
	}
	labelID, err := resolveLabelID(d, args[2])
	if err != nil {
		return err
	}

	if attach {
		if err := app.Boards.AddLabelToCard(ctx, d.ID, cardID, labelID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Labeled card %s with %s\n", formatter.TruncID(cardID), args[2])
		return nil
	}
	if err := app.Boards.RemoveLabelFromCard(ctx, d.ID, cardID, labelID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed label %s from card %s\n", args[2], formatter.TruncID(cardID))
	return nil
}
