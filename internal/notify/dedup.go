package notify

import "sync"

// Deduplicator tracks which reminders have already been surfaced since
// the last reset, so a reminder fires at most once per day. It holds no
// time logic; the notifier decides when to Reset (on day rollover).
type Deduplicator struct {
	mu       sync.Mutex
	notified map[string]bool
}

// NewDeduplicator creates an empty deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		notified: make(map[string]bool),
	}
}

// HasNotified reports whether id was marked since the last reset
func (d *Deduplicator) HasNotified(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.notified[id]
}

// MarkNotified records that id has been surfaced
func (d *Deduplicator) MarkNotified(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.notified[id] = true
}

// Reset clears all marks
func (d *Deduplicator) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.notified = make(map[string]bool)
}
