package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/neonboard/internal/config"
	"github.com/alexanderramin/neonboard/internal/events"
	"github.com/alexanderramin/neonboard/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Boards   service.BoardService
	Queries  service.BoardQueries

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool

	// Follow streams published events until ctx ends. Nil when no event
	// broker is configured.
	Follow func(ctx context.Context, onEnvelope func(events.Envelope)) error

	// Now is the clock used for relative timestamps. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "neonboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "neonboard",
		Short:         "Kanban boards in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Read by config.FromArgs before the command tree runs.
	root.PersistentFlags().AddFlagSet(config.Flags())

	root.AddCommand(
		newProjectCmd(app),
		newBoardCmd(app),
		newColumnCmd(app),
		newCardCmd(app),
		newLabelCmd(app),
		newEventsCmd(app),
	)

	return root
}
