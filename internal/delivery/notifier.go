// Package delivery hands planned reminders to the local notification
// mechanism. The planner never calls it directly; the service layer passes
// a finished plan through the Notifier interface.
package delivery

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/habits/internal/domain"
)

// Handle identifies a scheduled notification inside a Notifier.
type Handle string

// Notifier is the delivery boundary.
type Notifier interface {
	CancelAll(ctx context.Context) error
	Schedule(ctx context.Context, n domain.ScheduledNotification) (Handle, error)
	RequestPermission(ctx context.Context) (bool, error)
}

// Alerter presents a notification to the user when its time arrives.
type Alerter interface {
	Alert(ctx context.Context, n domain.ScheduledNotification) error
}

// WriterAlerter prints each alert as one line to W.
type WriterAlerter struct {
	W      io.Writer
	Render func(domain.ScheduledNotification) string
}

func (a WriterAlerter) Alert(_ context.Context, n domain.ScheduledNotification) error {
	render := a.Render
	if render == nil {
		render = PlainText
	}
	_, err := fmt.Fprintln(a.W, render(n))
	return err
}

// PlainText renders a notification without styling.
func PlainText(n domain.ScheduledNotification) string {
	return fmt.Sprintf("[%s] %s: %s", n.Time, n.Title, n.Body)
}
