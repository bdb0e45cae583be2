package domain

import (
	"encoding/json"
	"strings"
)

// TagsInput accepts either a JSON array of strings or a single
// comma-separated string. Both shapes appear in the wild; normalization
// happens once here so everything downstream sees a canonical list.
type TagsInput []string

// UnmarshalJSON decodes a JSON array, a comma-separated string, or null.
func (t *TagsInput) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = strings.Split(s, ",")
		return nil
	}

	// Unknown shape (number, object...) is treated as no tags,
	// mirroring the lenient duck typing of the original API.
	*t = nil
	return nil
}

// Normalize trims every entry, drops empties and duplicates, and returns
// the canonical tag list. The result is never nil.
func (t TagsInput) Normalize() []string {
	out := make([]string, 0, len(t))
	seen := make(map[string]bool, len(t))
	for _, raw := range t {
		tag := strings.TrimSpace(raw)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
