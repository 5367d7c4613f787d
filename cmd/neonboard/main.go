package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexanderramin/neonboard/internal/cli"
	"github.com/alexanderramin/neonboard/internal/config"
	"github.com/alexanderramin/neonboard/internal/db"
	"github.com/alexanderramin/neonboard/internal/events"
	"github.com/alexanderramin/neonboard/internal/events/redispub"
	"github.com/alexanderramin/neonboard/internal/observability"
	"github.com/alexanderramin/neonboard/internal/repository"
	"github.com/alexanderramin/neonboard/internal/service"
	"github.com/mattn/go-isatty"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.FromArgs(os.Args[1:])
	if err != nil {
		return err
	}
	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	if cfg.Tracing.Enabled {
		shutdown, err := initTracing(ctx, cfg.Tracing)
		if err != nil {
			return fmt.Errorf("starting tracing: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("flushing traces", "error", err)
			}
		}()
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	cache := service.NewBoardCache(cfg.Cache.TTL)

	// Subscribers run in registration order after each commit.
	dispatcher := events.NewDispatcher(logger)
	dispatcher.Subscribe("cache", service.NewCacheInvalidator(cache))
	dispatcher.Subscribe("activity", service.NewActivityRecorder(repository.NewSQLiteActivityRepo(database)))
	dispatcher.Subscribe("log", events.NewLogHandler(logger, slog.LevelDebug))

	opts := []service.Option{service.WithSaveAttempts(cfg.SaveRetries)}
	if cfg.Log.UseCases {
		opts = append(opts, service.WithObserver(service.NewLogUseCaseObserver(logger)))
	}

	app := &cli.App{
		Projects: service.NewProjectService(uow, dispatcher, opts...),
		Boards:   service.NewBoardService(uow, dispatcher, opts...),
		Queries:  service.NewBoardQueries(database, cache, opts...),
	}

	// Detect interactive terminal for prompts and the board view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redispub.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()

		dispatcher.Subscribe("redis", redispub.NewHandler(rdb, cfg.Redis.Channel, logger))
		app.Follow = func(ctx context.Context, onEnvelope func(events.Envelope)) error {
			return redispub.Follow(ctx, rdb, cfg.Redis.Channel, logger, onEnvelope)
		}
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.Version = version
	return rootCmd.ExecuteContext(ctx)
}

// initTracing writes spans to tracing.output, or stderr when unset.
func initTracing(ctx context.Context, cfg config.TracingConfig) (func(context.Context) error, error) {
	var w io.Writer = os.Stderr
	var f *os.File
	if cfg.Output != "" {
		var err error
		f, err = os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening trace output: %w", err)
		}
		w = f
	}
	shutdown, err := observability.InitTracing(ctx, w, version)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return nil, err
	}
	return func(ctx context.Context) error {
		err := shutdown(ctx)
		if f != nil {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}, nil
}
