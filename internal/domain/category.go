package domain

import "time"

// Category is a user-defined link grouping. Names are unique after
// trimming; creation is idempotent (creating an existing name returns
// the existing record).
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
