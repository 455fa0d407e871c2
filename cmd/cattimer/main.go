package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexanderramin/cattimer/internal/cli"
	"github.com/alexanderramin/cattimer/internal/config"
	"github.com/alexanderramin/cattimer/internal/db"
	"github.com/alexanderramin/cattimer/internal/repository"
	"github.com/alexanderramin/cattimer/internal/service"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Flags are applied later by the root command; the store location and
	// event log only come from the file and environment.
	cfg, err := config.Load("", nil)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var logger *slog.Logger
	if cfg.LogEvents {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening event log: %w", err)
		}
		defer logFile.Close()
		logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	// Wire repository, unit of work and service
	logRepo := repository.NewKVTaskLogRepo(repository.NewSQLiteKVStore(database))
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Logs:   service.NewTaskLogService(logRepo, uow, service.NewSlogUseCaseObserver(logger)),
		Logger: logger,
		RunID:  uuid.NewString(),
	}

	// The full-screen UI needs a terminal on both ends.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
