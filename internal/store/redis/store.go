package redis

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a document does not exist in a collection.
var ErrNotFound = errors.New("not found")

// Store persists links, reminders and categories as JSON documents in
// Redis. Each collection is a set of ids plus one document per id; there
// is no TTL, the data is the source of truth.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
