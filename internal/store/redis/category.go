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

// GetCategory retrieves a category by id. Returns ErrNotFound if absent.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	data, err := s.client.Get(ctx, CategoryKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	var cat domain.Category
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category: %w", err)
	}

	return &cat, nil
}

// ListCategories retrieves all categories sorted by name.
func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	ids, err := s.client.SMembers(ctx, KeyAllCategories).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ids: %w", err)
	}

	cats := make([]*domain.Category, 0, len(ids))
	for _, id := range ids {
		cat, err := s.GetCategory(ctx, id)
		if err != nil {
			continue
		}
		cats = append(cats, cat)
	}

	sort.Slice(cats, func(i, j int) bool {
		return cats[i].Name < cats[j].Name
	})

	return cats, nil
}

// EnsureCategory stores cat unless a category with the same trimmed name
// already exists. Returns the canonical record and whether it was created.
// HSETNX on the name index makes the create race-free.
func (s *Store) EnsureCategory(ctx context.Context, cat *domain.Category) (*domain.Category, bool, error) {
	created, err := s.client.HSetNX(ctx, KeyCategoryNames, cat.Name, cat.ID).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to reserve category name: %w", err)
	}

	if !created {
		id, err := s.client.HGet(ctx, KeyCategoryNames, cat.Name).Result()
		if err != nil {
			return nil, false, fmt.Errorf("failed to resolve category name: %w", err)
		}
		existing, err := s.GetCategory(ctx, id)
		if err != nil {
			return nil, false, fmt.Errorf("category name index points to missing document %s: %w", id, err)
		}
		return existing, false, nil
	}

	data, err := json.Marshal(cat)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal category: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, CategoryKey(cat.ID), data, 0)
	pipe.SAdd(ctx, KeyAllCategories, cat.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to save category: %w", err)
	}

	return cat, true, nil
}
