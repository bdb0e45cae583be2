package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/index"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/logger"
)

// ReminderSource provides the current reminder list. Implemented by the
// Redis store on the server and by the API client elsewhere.
type ReminderSource interface {
	ListReminders(ctx context.Context, workspace domain.Workspace) ([]*domain.Reminder, error)
}

// OnDueFunc is invoked at most once per reminder per day when the
// reminder enters its notify window.
type OnDueFunc func(*domain.Reminder)

// Notifier drives periodic re-evaluation of all active reminders.
// It refreshes the memory index from the source, evaluates each reminder
// against the notify window, and fires onDue for newly due ones. A manual
// trigger channel forces an immediate pass after mutations, so edits take
// effect without waiting for the next tick.
type Notifier struct {
	source        ReminderSource
	index         *index.MemoryIndex
	dedup         *Deduplicator
	logger        logger.Logger
	interval      time.Duration
	window        time.Duration
	onDue         OnDueFunc
	manualTrigger chan struct{}
	stopCh        chan struct{}
	stopOnce      sync.Once

	// TimeNow is the clock used for evaluation and day-rollover
	// detection. Overridable in tests; defaults to time.Now.
	TimeNow func() time.Time

	mu      sync.Mutex
	lastDay time.Time // midnight of the day observed on the previous pass
}

// NewNotifier creates a new notifier
func NewNotifier(
	source ReminderSource,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	window time.Duration,
	manualTrigger chan struct{},
	onDue OnDueFunc,
) *Notifier {
	return &Notifier{
		source:        source,
		index:         idx,
		dedup:         NewDeduplicator(),
		logger:        log,
		interval:      interval,
		window:        window,
		onDue:         onDue,
		manualTrigger: manualTrigger,
		stopCh:        make(chan struct{}),
		TimeNow:       time.Now,
	}
}

// Dedup exposes the deduplicator (for the infra endpoint).
func (n *Notifier) Dedup() *Deduplicator {
	return n.dedup
}

// Start runs one evaluation pass immediately, then re-evaluates on every
// tick, manual trigger, until Stop or context cancellation.
func (n *Notifier) Start(ctx context.Context) error {
	if err := n.Check(ctx); err != nil {
		return fmt.Errorf("initial reminder check failed: %w", err)
	}

	ticker := time.NewTicker(n.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := n.Check(ctx); err != nil {
					n.logger.Error("failed to check reminders",
						logger.Error(err))
				}
			case <-n.manualTrigger:
				n.logger.Debug("manual reminder check triggered")
				if err := n.Check(ctx); err != nil {
					n.logger.Error("failed to check reminders",
						logger.Error(err))
				}
			case <-n.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the notifier. Safe to call more than once.
func (n *Notifier) Stop() {
	n.stopOnce.Do(func() {
		close(n.stopCh)
	})
}

// Check refreshes the reminder index from the source and fires onDue for
// every active reminder that entered its notify window and has not been
// surfaced today.
func (n *Notifier) Check(ctx context.Context) error {
	now := n.TimeNow()
	n.resetOnRollover(now)

	reminders, err := n.source.ListReminders(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}
	n.index.UpdateReminders(reminders)

	due := 0
	for _, r := range reminders {
		if !r.IsActive {
			continue
		}
		if n.dedup.HasNotified(r.ID) {
			continue
		}
		if !r.ShouldNotify(now, n.window) {
			continue
		}

		n.dedup.MarkNotified(r.ID)
		due++

		n.logger.Info("reminder due",
			logger.String("reminder_id", r.ID),
			logger.String("task", r.Task),
			logger.String("time_of_day", r.TimeOfDay),
			logger.String("workspace", r.Workspace.String()))

		if n.onDue != nil {
			n.onDue(r)
		}
	}

	if due > 0 {
		n.logger.Debug("reminder check completed",
			logger.Int("total", len(reminders)),
			logger.Int("due", due))
	}

	return nil
}

// resetOnRollover clears the notified set when the local calendar day
// changes between passes, so yesterday's marks don't suppress today's
// notifications.
func (n *Notifier) resetOnRollover(now time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	n.mu.Lock()
	rolled := !n.lastDay.IsZero() && !day.Equal(n.lastDay)
	n.lastDay = day
	n.mu.Unlock()

	if rolled {
		n.logger.Info("day rollover, resetting notified set")
		n.dedup.Reset()
	}
}
