package delivery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/robfig/cron/v3"
)

// CronNotifier schedules each notification as a job on a cron engine. Jobs
// only alert on the date named in their payload, so a job left over from a
// previous day stays silent until the next re-sync cancels it.
type CronNotifier struct {
	engine  *cron.Cron
	alerter Alerter
	logger  *slog.Logger
	granted bool
	now     func() time.Time

	mu      sync.Mutex
	entries []cron.EntryID
}

type CronOption func(*CronNotifier)

// WithPermission sets the answer RequestPermission gives.
func WithPermission(granted bool) CronOption {
	return func(n *CronNotifier) { n.granted = granted }
}

func WithLogger(l *slog.Logger) CronOption {
	return func(n *CronNotifier) { n.logger = l }
}

// WithClock overrides time.Now for the date check in fired jobs.
func WithClock(now func() time.Time) CronOption {
	return func(n *CronNotifier) { n.now = now }
}

// NewCronNotifier registers jobs on engine. The caller owns the engine's
// Start and Stop.
func NewCronNotifier(engine *cron.Cron, alerter Alerter, opts ...CronOption) *CronNotifier {
	n := &CronNotifier{
		engine:  engine,
		alerter: alerter,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		granted: true,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (c *CronNotifier) RequestPermission(context.Context) (bool, error) {
	return c.granted, nil
}

func (c *CronNotifier) Schedule(_ context.Context, n domain.ScheduledNotification) (Handle, error) {
	spec := fmt.Sprintf("%d %d * * *", n.Time.Minute(), n.Time.Hour())
	id, err := c.engine.AddFunc(spec, func() { c.fire(n) })
	if err != nil {
		return "", fmt.Errorf("scheduling %s: %w", n.Time, err)
	}

	c.mu.Lock()
	c.entries = append(c.entries, id)
	c.mu.Unlock()

	return Handle(strconv.Itoa(int(id))), nil
}

func (c *CronNotifier) CancelAll(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range c.entries {
		c.engine.Remove(id)
	}
	c.entries = nil
	return nil
}

func (c *CronNotifier) fire(n domain.ScheduledNotification) {
	today := domain.DateOf(c.now().In(c.engine.Location()))
	if !n.Payload.Date.IsZero() && !today.Equal(n.Payload.Date) {
		c.logger.Debug("stale reminder skipped", "planned_for", n.Payload.Date.String(), "time", n.Time.String())
		return
	}
	if err := c.alerter.Alert(context.Background(), n); err != nil {
		c.logger.Error("reminder alert failed", "time", n.Time.String(), "error", err)
		return
	}
	c.logger.Info("reminder delivered", "time", n.Time.String(), "kind", string(n.Payload.Kind))
}
