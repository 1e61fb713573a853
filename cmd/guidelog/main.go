package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/geopark-ops/guidelog/internal/cli"
	"github.com/geopark-ops/guidelog/internal/config"
	"github.com/geopark-ops/guidelog/internal/db"
	"github.com/geopark-ops/guidelog/internal/service"
	"github.com/geopark-ops/guidelog/internal/sheet"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(cli.ConfigPath(os.Args[1:]))
	if err != nil {
		return err
	}

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	// Use-case and request logs go to stderr so command output stays clean.
	logger := slog.New(service.NewLogHandler(os.Stderr, service.ParseLevel(cfg.Log.Level), cfg.Log.Format))

	app, err := cli.NewApp(cfg, sheet.NewStore(backend), logger)
	if err != nil {
		return err
	}

	// Detect interactive terminal for --interactive forms.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// openBackend opens the table store named by cfg. The returned func
// releases it.
func openBackend(cfg *config.Config) (sheet.Backend, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return sheet.NewMemoryBackend(), noop, nil
	case config.BackendSQLite:
		database, err := db.OpenDB(cfg.StorePath())
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return sheet.NewSQLiteBackend(database, db.NewSQLiteUnitOfWork(database)), database.Close, nil
	default:
		return sheet.NewWorkbookBackend(cfg.StorePath()), noop, nil
	}
}
