package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/habits/internal/delivery"
	"github.com/alexanderramin/habits/internal/domain"
)

// RecordingNotifier is an in-memory delivery.Notifier that records what it
// was asked to do.
type RecordingNotifier struct {
	Denied      bool
	ScheduleErr error

	mu        sync.Mutex
	scheduled []domain.ScheduledNotification
	cancels   int
}

var _ delivery.Notifier = (*RecordingNotifier)(nil)

func (n *RecordingNotifier) CancelAll(context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancels++
	n.scheduled = nil
	return nil
}

func (n *RecordingNotifier) Schedule(_ context.Context, sn domain.ScheduledNotification) (delivery.Handle, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.ScheduleErr != nil {
		return "", n.ScheduleErr
	}
	n.scheduled = append(n.scheduled, sn)
	return delivery.Handle(fmt.Sprintf("h%d", len(n.scheduled))), nil
}

func (n *RecordingNotifier) RequestPermission(context.Context) (bool, error) {
	return !n.Denied, nil
}

func (n *RecordingNotifier) Scheduled() []domain.ScheduledNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.ScheduledNotification(nil), n.scheduled...)
}

func (n *RecordingNotifier) Cancels() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cancels
}
