package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/neonboard/internal/cli/formatter"
	"github.com/alexanderramin/neonboard/internal/importer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}

	cmd.AddCommand(
		newBoardAddCmd(app),
		newBoardListCmd(app),
		newBoardShowCmd(app),
		newBoardRenameCmd(app),
		newBoardRemoveCmd(app),
		newBoardViewCmd(app),
		newBoardExportCmd(app),
		newBoardImportCmd(app),
		newBoardActivityCmd(app),
	)

	return cmd
}

func newBoardAddCmd(app *App) *cobra.Command {
	var project, name string
	var columns []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a board in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			b, err := app.Boards.CreateBoard(ctx, projectID, name)
			if err != nil {
				return err
			}
			for _, col := range columns {
				if _, err := app.Boards.AddColumn(ctx, b.ID(), col); err != nil {
					return fmt.Errorf("adding column %q: %w", col, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created board %s [%s]\n", b.Name(), formatter.TruncID(b.ID()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project ID or name")
	cmd.Flags().StringVar(&name, "name", "", "Board name")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Initial columns, in order (e.g. Todo,Doing,Done)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newBoardListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List the boards of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			boards, err := app.Queries.ListBoards(ctx, projectID)
			if err != nil {
				return err
			}
			if len(boards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No boards found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBoardList(boards, app.now()))
			return nil
		},
	}
}

func newBoardShowCmd(app *App) *cobra.Command {
	var labels bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Render a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadBoard(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatBoard(d, formatter.NoFocus))
			if labels {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.Header("Labels"))
				fmt.Fprintln(out, formatter.FormatLabels(d.Labels))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&labels, "labels", false, "Also list the label catalog")

	return cmd
}

func newBoardRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Boards.RenameBoard(ctx, boardID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed board %s to %s\n", formatter.TruncID(boardID), args[1])
			return nil
		},
	}
}

func newBoardRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a board with its columns, cards and labels",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := loadBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			if n := d.CardCount(); n > 0 && !force {
				ok, err := confirm(app, fmt.Sprintf("Delete board %q and its %s?", d.Name, formatter.Plural(n, "card")))
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("board has %s; pass --force to delete it anyway", formatter.Plural(n, "card"))
				}
			}
			if err := app.Boards.DeleteBoard(ctx, d.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed board %s\n", formatter.TruncID(d.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even if the board still has cards")

	return cmd
}

func newBoardViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view ID",
		Short: "Browse and move cards interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("board view needs an interactive terminal; use `board show` instead")
			}
			ctx := cmd.Context()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newBoardModel(ctx, app, boardID), tea.WithAltScreen()).Run()
			return err
		},
	}
}

func newBoardExportCmd(app *App) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export a board as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadBoard(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return writeExport(cmd.OutOrStdout(), d, format)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			if err := writeExport(f, d, format); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported board %s to %s\n", formatter.TruncID(d.ID), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func newBoardImportCmd(app *App) *cobra.Command {
	var project, name string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create a board from a JSON or YAML document",
		Long:  "Reads the format written by `board export`. Ids in the file are ignored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			doc, err := importer.LoadBoardImport(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				doc.Name = name
			}
			b, err := app.Boards.ImportBoard(ctx, projectID, doc)
			if err != nil {
				return err
			}
			s := b.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Imported board %s [%s] with %s and %s\n",
				b.Name(), formatter.TruncID(b.ID()),
				formatter.Plural(len(s.Columns), "column"), formatter.Plural(len(s.Cards), "card"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project ID or name")
	cmd.Flags().StringVar(&name, "name", "", "Board name, overrides the file's")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newBoardActivityCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity ID",
		Short: "Show the recent history of a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			entries, err := app.Queries.Activity(ctx, boardID, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivity(entries, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show (0 for all)")

	return cmd
}
