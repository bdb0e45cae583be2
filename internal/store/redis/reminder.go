package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
)

// SaveReminder stores a reminder document (create or full update)
func (s *Store) SaveReminder(ctx context.Context, reminder *domain.Reminder) error {
	data, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder: %w", err)
	}

	key := ReminderKey(reminder.ID)

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save reminder: %w", err)
	}

	if err := s.client.SAdd(ctx, KeyAllReminders, reminder.ID).Err(); err != nil {
		return fmt.Errorf("failed to add reminder to set: %w", err)
	}

	return nil
}

// GetReminder retrieves a reminder by id. Returns ErrNotFound if absent.
func (s *Store) GetReminder(ctx context.Context, id string) (*domain.Reminder, error) {
	data, err := s.client.Get(ctx, ReminderKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}

	var reminder domain.Reminder
	if err := json.Unmarshal(data, &reminder); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reminder: %w", err)
	}

	return &reminder, nil
}

// ListReminders retrieves all reminders, optionally filtered by
// workspace, sorted by creation time (oldest first).
func (s *Store) ListReminders(ctx context.Context, workspace domain.Workspace) ([]*domain.Reminder, error) {
	ids, err := s.client.SMembers(ctx, KeyAllReminders).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder ids: %w", err)
	}

	reminders := make([]*domain.Reminder, 0, len(ids))
	for _, id := range ids {
		reminder, err := s.GetReminder(ctx, id)
		if err != nil {
			continue
		}
		if workspace != "" && reminder.Workspace != workspace {
			continue
		}
		reminders = append(reminders, reminder)
	}

	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].CreatedAt.Before(reminders[j].CreatedAt)
	})

	return reminders, nil
}

// DeleteReminder removes a reminder document. Returns ErrNotFound if absent.
func (s *Store) DeleteReminder(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, ReminderKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := s.client.SRem(ctx, KeyAllReminders, id).Err(); err != nil {
		return fmt.Errorf("failed to remove reminder from set: %w", err)
	}

	return nil
}
