package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/habits/internal/cli"
	"github.com/alexanderramin/habits/internal/cli/formatter"
	"github.com/alexanderramin/habits/internal/config"
	"github.com/alexanderramin/habits/internal/db"
	"github.com/alexanderramin/habits/internal/delivery"
	"github.com/alexanderramin/habits/internal/repository"
	"github.com/alexanderramin/habits/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/robfig/cron/v3"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	routineRepo := repository.NewSQLiteRoutineRepo(database)
	checkInRepo := repository.NewSQLiteCheckInRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewSlogUseCaseObserver(logger)
	}

	// Reminders fire on the same engine the daemon drives.
	engine := cron.New(cron.WithLocation(cfg.Location))
	notifier := delivery.NewCronNotifier(engine,
		delivery.WriterAlerter{W: os.Stdout, Render: formatter.FormatAlert},
		delivery.WithPermission(cfg.Notify),
		delivery.WithLogger(logger),
		delivery.WithClock(cfg.Now),
	)

	app := &cli.App{
		Routines:   service.NewRoutineService(routineRepo, checkInRepo),
		CheckIns:   service.NewCheckInService(uow, observer),
		Reminders:  service.NewReminderService(routineRepo, settingsRepo, notifier, observer),
		Settings:   service.NewSettingsService(settingsRepo),
		Engine:     engine,
		ResyncSpec: cfg.ResyncSpec,
		Logger:     logger,
		Location:   cfg.Location,
		Now:        cfg.Now,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
