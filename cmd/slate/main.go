package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/calewis/slate/internal/cli"
	"github.com/calewis/slate/internal/db"
	"github.com/calewis/slate/internal/layout"
	"github.com/calewis/slate/internal/service"
)

const dayColumnPixels = 32

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.slate/slate.db
	dbPath := os.Getenv("SLATE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".slate", "slate.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	stores := service.NewStores(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if os.Getenv("SLATE_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Items:    service.NewItemService(stores, uow, observers...),
		Board:    service.NewBoardService(stores, observers...),
		Schedule: service.NewScheduleService(stores, layout.DefaultColumns(dayColumnPixels), observers...),
	}

	// Detect interactive terminal for the bare-root TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
