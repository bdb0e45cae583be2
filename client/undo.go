package client

import (
	"context"
	"time"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/logger"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/undo"
)

// NewLinkDeleter binds a delete-with-undo coordinator to the client's
// link delete. RequestDelete hides the link immediately; the REST delete
// only runs once the grace period expires without an Undo. A commit that
// fails (server down, timeout) triggers OnCommitFailed so the link can
// reappear instead of being lost in limbo.
func NewLinkDeleter(c *Client, grace time.Duration, hooks undo.Hooks[*domain.Link], log logger.Logger) *undo.Coordinator[*domain.Link] {
	commit := func(ctx context.Context, id string) error {
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		return c.DeleteLink(ctx, id)
	}
	return undo.NewCoordinator(grace, commit, hooks, log)
}

// NewReminderDeleter is the reminder counterpart of NewLinkDeleter.
func NewReminderDeleter(c *Client, grace time.Duration, hooks undo.Hooks[*domain.Reminder], log logger.Logger) *undo.Coordinator[*domain.Reminder] {
	commit := func(ctx context.Context, id string) error {
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		return c.DeleteReminder(ctx, id)
	}
	return undo.NewCoordinator(grace, commit, hooks, log)
}
