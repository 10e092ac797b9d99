package models

import "errors"

// ErrIssueExists is returned when an issue ID is already taken. Issue IDs
// are unique across all projects of a backend.
var ErrIssueExists = errors.New("issue already exists")

// Card is the board's display copy of an issue
type Card struct {
	ID       string   // Stable issue identity
	Title    string   // Issue title
	Status   string   // Key of the column the issue belongs to
	ParentID string   // Parent issue ID ("" = none), used for child counts only
	Priority int      // 0 = unset
	Labels   []string // Free-form labels
}

// HasParent returns true if the card is a sub-issue
func (c Card) HasParent() bool {
	return c.ParentID != ""
}

// Clone returns a deep copy of the card
func (c Card) Clone() Card {
	if c.Labels != nil {
		c.Labels = append([]string(nil), c.Labels...)
	}
	return c
}

// Equal reports whether two cards carry the same field values
func (c Card) Equal(o Card) bool {
	if c.ID != o.ID || c.Title != o.Title || c.Status != o.Status ||
		c.ParentID != o.ParentID || c.Priority != o.Priority {
		return false
	}
	if len(c.Labels) != len(o.Labels) {
		return false
	}
	for i := range c.Labels {
		if c.Labels[i] != o.Labels[i] {
			return false
		}
	}
	return true
}
