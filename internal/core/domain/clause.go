package domain

import "time"

// Clause is a reusable reference text snippet tagged by legal domain. It has
// no relationship to document workflow state.
type Clause struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Domain       string    `json:"domain"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
}
