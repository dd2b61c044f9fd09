package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/habits/internal/config"
	"github.com/alexanderramin/habits/internal/domain"
	"github.com/alexanderramin/habits/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

const jobTimeout = time.Minute

// reminderDaemon keeps the notifier in step with stored state: it re-syncs
// on a schedule and runs catch-up once the date changes.
type reminderDaemon struct {
	engine     *cron.Cron
	checkIns   service.CheckInService
	reminders  service.ReminderService
	logger     *slog.Logger
	resyncSpec string
	now        func() time.Time
}

// Start registers the periodic jobs and starts the engine.
func (d *reminderDaemon) Start() error {
	if _, err := d.engine.AddFunc(d.resyncSpec, d.job(d.sync)); err != nil {
		return fmt.Errorf("adding re-sync job %q: %w", d.resyncSpec, err)
	}
	if _, err := d.engine.AddFunc(config.CatchUpSpec, d.job(d.rollover)); err != nil {
		return fmt.Errorf("adding catch-up job: %w", err)
	}

	d.engine.Start()
	d.logger.Info("reminder daemon started", "resync", d.resyncSpec, "jobs", len(d.engine.Entries()))
	return nil
}

// Stop waits for running jobs to finish.
func (d *reminderDaemon) Stop() {
	<-d.engine.Stop().Done()
	d.logger.Info("reminder daemon stopped")
}

func (d *reminderDaemon) job(fn func(context.Context)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		fn(ctx)
	}
}

func (d *reminderDaemon) sync(ctx context.Context) {
	res, err := d.reminders.Sync(ctx, d.now())
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		d.logger.WarnContext(ctx, "notifications not permitted", "planned", len(res.Plan))
	case err != nil:
		d.logger.ErrorContext(ctx, "reminder sync failed", "error", err)
	default:
		d.logger.DebugContext(ctx, "reminders synced", "planned", len(res.Plan), "scheduled", len(res.Scheduled))
	}
}

func (d *reminderDaemon) rollover(ctx context.Context) {
	today := domain.DateOf(d.now())
	if _, err := d.checkIns.RunCatchUp(ctx, today); err != nil {
		d.logger.ErrorContext(ctx, "catch-up failed", "date", today.String(), "error", err)
	}
	d.sync(ctx)
}

func newRemindDaemonCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Stay in the foreground and deliver reminders as they come due",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Engine == nil {
				return fmt.Errorf("no reminder engine configured")
			}
			spec := app.ResyncSpec
			if spec == "" {
				spec = config.DefaultResyncSpec
			}
			d := &reminderDaemon{
				engine:     app.Engine,
				checkIns:   app.CheckIns,
				reminders:  app.Reminders,
				logger:     app.logger(),
				resyncSpec: spec,
				now:        app.now,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d.job(d.rollover)()
			if err := d.Start(); err != nil {
				return err
			}
			<-ctx.Done()
			d.Stop()
			return nil
		},
	}
}
