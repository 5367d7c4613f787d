package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alexanderramin/neonboard/internal/cli/formatter"
	"github.com/alexanderramin/neonboard/internal/events"
	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the published event stream",
	}
	cmd.AddCommand(newEventsTailCmd(app))
	return cmd
}

func newEventsTailCmd(app *App) *cobra.Command {
	var board string

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print events as other neonboard processes publish them",
		Long:  "Requires redis.addr to be configured. Stops on Ctrl+C.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Follow == nil {
				return fmt.Errorf("no event broker configured; set redis.addr or NEONBOARD_REDIS_ADDR")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			boardID := ""
			if board != "" {
				var err error
				if boardID, err = resolveBoardID(ctx, app, board); err != nil {
					return err
				}
			}
			return tailEvents(ctx, app, cmd.OutOrStdout(), boardID)
		},
	}

	cmd.Flags().StringVarP(&board, "board", "b", "", "Only show events of this board")

	return cmd
}

func tailEvents(ctx context.Context, app *App, w io.Writer, boardID string) error {
	return app.Follow(ctx, func(env events.Envelope) {
		if boardID != "" && env.AggregateID != boardID {
			return
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			formatter.Dim(env.OccurredAt.Local().Format("15:04:05")),
			formatter.StyleBlue.Render(string(env.Type)),
			formatter.TruncID(env.AggregateID),
			string(env.Payload),
		)
	})
}
