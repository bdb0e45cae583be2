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

// SaveLink stores a link document (create or full update)
func (s *Store) SaveLink(ctx context.Context, link *domain.Link) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to marshal link: %w", err)
	}

	key := LinkKey(link.ID)

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}

	if err := s.client.SAdd(ctx, KeyAllLinks, link.ID).Err(); err != nil {
		return fmt.Errorf("failed to add link to set: %w", err)
	}

	return nil
}

// GetLink retrieves a link by id. Returns ErrNotFound if absent.
func (s *Store) GetLink(ctx context.Context, id string) (*domain.Link, error) {
	data, err := s.client.Get(ctx, LinkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	var link domain.Link
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal link: %w", err)
	}

	return &link, nil
}

// ListLinks retrieves all links, optionally filtered by workspace,
// sorted by creation time (newest first).
func (s *Store) ListLinks(ctx context.Context, workspace domain.Workspace) ([]*domain.Link, error) {
	ids, err := s.client.SMembers(ctx, KeyAllLinks).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get link ids: %w", err)
	}

	links := make([]*domain.Link, 0, len(ids))
	for _, id := range ids {
		link, err := s.GetLink(ctx, id)
		if err != nil {
			// Skip documents that couldn't be retrieved
			continue
		}
		if workspace != "" && link.Workspace != workspace {
			continue
		}
		links = append(links, link)
	}

	sort.Slice(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})

	return links, nil
}

// DeleteLink removes a link document. Returns ErrNotFound if absent.
func (s *Store) DeleteLink(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, LinkKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := s.client.SRem(ctx, KeyAllLinks, id).Err(); err != nil {
		return fmt.Errorf("failed to remove link from set: %w", err)
	}

	return nil
}
