// Package undo implements the optimistic delete-with-undo lifecycle:
// hide immediately, commit after a grace period, allow undo in between.
package undo

import (
	"context"
	"sync"
	"time"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/logger"
)

// DefaultGracePeriod is the delay between a delete request and its
// irreversible commit.
const DefaultGracePeriod = 3 * time.Second

// CommitFunc performs the irreversible delete against the repository.
type CommitFunc func(ctx context.Context, id string) error

// Hooks observe lifecycle transitions. Nil hooks are skipped. Hooks run
// on the coordinator's goroutines and must not call back into it.
type Hooks[T any] struct {
	// OnHidden fires as soon as a delete is requested; the entity
	// should disappear from presentation.
	OnHidden func(entity T)
	// OnCommitted fires after the repository delete succeeded.
	OnCommitted func(entity T)
	// OnRestored fires when a pending delete is undone or cancelled.
	OnRestored func(entity T)
	// OnCommitFailed fires when the repository delete failed; the
	// entity must become visible again.
	OnCommitFailed func(entity T, err error)
}

type pendingDeletion[T any] struct {
	entity   T
	timer    *time.Timer
	deadline time.Time
}

// Coordinator manages one pending deletion per entity id. Undo is
// per-entity: requesting a second delete never orphans the first one's
// timer (the single-tracked-timer behavior of earlier versions lost the
// ability to undo the older pending delete).
type Coordinator[T any] struct {
	grace  time.Duration
	commit CommitFunc
	hooks  Hooks[T]
	logger logger.Logger

	mu      sync.Mutex
	pending map[string]*pendingDeletion[T]
}

// NewCoordinator creates a coordinator committing deletes via commit
// after the grace period.
func NewCoordinator[T any](grace time.Duration, commit CommitFunc, hooks Hooks[T], log logger.Logger) *Coordinator[T] {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	return &Coordinator[T]{
		grace:   grace,
		commit:  commit,
		hooks:   hooks,
		logger:  log,
		pending: make(map[string]*pendingDeletion[T]),
	}
}

// RequestDelete hides the entity and starts its grace timer. A repeated
// request for the same id restarts that entity's timer; other pending
// deletions are unaffected.
func (c *Coordinator[T]) RequestDelete(id string, entity T) {
	c.mu.Lock()
	if prev, ok := c.pending[id]; ok {
		prev.timer.Stop()
	}
	p := &pendingDeletion[T]{
		entity:   entity,
		deadline: time.Now().Add(c.grace),
	}
	p.timer = time.AfterFunc(c.grace, func() {
		c.commitPending(id)
	})
	c.pending[id] = p
	c.mu.Unlock()

	if c.hooks.OnHidden != nil {
		c.hooks.OnHidden(entity)
	}
}

// Undo cancels the pending deletion for id and restores the entity.
// Returns false (no-op) when nothing is pending for id.
func (c *Coordinator[T]) Undo(id string) bool {
	c.mu.Lock()
	p, ok := c.pending[id]
	if ok {
		p.timer.Stop()
		delete(c.pending, id)
	}
	c.mu.Unlock()

	if !ok {
		return false
	}
	if c.hooks.OnRestored != nil {
		c.hooks.OnRestored(p.entity)
	}
	return true
}

// Pending reports whether id has an uncommitted deletion, and its
// commit deadline.
func (c *Coordinator[T]) Pending(id string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pending[id]
	if !ok {
		return time.Time{}, false
	}
	return p.deadline, true
}

// PendingCount returns the number of uncommitted deletions.
func (c *Coordinator[T]) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending)
}

// CancelAll stops every grace timer and restores all pending entities.
// Used on shutdown so nothing is left hidden without a commit.
func (c *Coordinator[T]) CancelAll() {
	c.mu.Lock()
	cancelled := make([]*pendingDeletion[T], 0, len(c.pending))
	for id, p := range c.pending {
		p.timer.Stop()
		delete(c.pending, id)
		cancelled = append(cancelled, p)
	}
	c.mu.Unlock()

	if c.hooks.OnRestored != nil {
		for _, p := range cancelled {
			c.hooks.OnRestored(p.entity)
		}
	}
}

// commitPending runs on timer expiry. The pending entry is claimed under
// the lock, so an Undo racing the timer either wins fully or not at all;
// a commit never happens twice for one request.
func (c *Coordinator[T]) commitPending(id string) {
	c.mu.Lock()
	p, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	c.mu.Unlock()

	if !ok {
		// Undo won the race
		return
	}

	if err := c.commit(context.Background(), id); err != nil {
		c.logger.Warn("delete commit failed, restoring entity",
			logger.String("entity_id", id),
			logger.Error(err))
		if c.hooks.OnCommitFailed != nil {
			c.hooks.OnCommitFailed(p.entity, err)
		}
		return
	}

	if c.hooks.OnCommitted != nil {
		c.hooks.OnCommitted(p.entity)
	}
}
