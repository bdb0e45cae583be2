package index

import (
	"sync"
	"time"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
)

// MemoryIndex is an in-memory snapshot of all reminders, refreshed from
// the store by the notifier. It lets the notify loop evaluate reminders
// without a round trip to Redis on every tick, and serves as the infra
// endpoint's view of notifier health.
type MemoryIndex struct {
	mu          sync.RWMutex
	reminders   map[string]*domain.Reminder // ID -> Reminder
	lastRefresh time.Time
}

// NewMemoryIndex creates a new memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		reminders: make(map[string]*domain.Reminder),
	}
}

// UpdateReminders replaces all reminders in the index
func (idx *MemoryIndex) UpdateReminders(reminders []*domain.Reminder) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.reminders = make(map[string]*domain.Reminder, len(reminders))
	for _, r := range reminders {
		idx.reminders[r.ID] = r
	}
	idx.lastRefresh = time.Now()
}

// GetReminder retrieves a reminder by id
func (idx *MemoryIndex) GetReminder(id string) (*domain.Reminder, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	r, ok := idx.reminders[id]
	return r, ok
}

// GetAllReminders returns all reminders
func (idx *MemoryIndex) GetAllReminders() []*domain.Reminder {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	reminders := make([]*domain.Reminder, 0, len(idx.reminders))
	for _, r := range idx.reminders {
		reminders = append(reminders, r)
	}
	return reminders
}

// Count returns the number of reminders in the index
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.reminders)
}

// GetLastRefresh returns the timestamp of the last refresh from the store
func (idx *MemoryIndex) GetLastRefresh() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastRefresh
}
