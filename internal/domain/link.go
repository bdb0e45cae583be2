package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Link represents a saved important link.
type Link struct {
	// ID is the canonical unique identifier (UUID).
	ID string `json:"id"`

	// Name is the card title. Required, stored trimmed.
	Name string `json:"name"`

	// URL is the absolute link target. Required, must parse as a URL.
	URL string `json:"link"`

	// Category is a free-form category name. Optional.
	Category string `json:"category"`

	// Tags are normalized, deduplicated labels.
	Tags []string `json:"tags"`

	// Description is optional free text.
	Description string `json:"description"`

	// Workspace the link belongs to. Immutable after creation in spirit:
	// updates must carry the same value they were created with.
	Workspace Workspace `json:"type"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidateURL checks that raw parses as an absolute URL with a host.
// The check mirrors what a browser's URL constructor accepts.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("link is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("link must be a valid URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("link must be a valid absolute URL")
	}
	return nil
}
