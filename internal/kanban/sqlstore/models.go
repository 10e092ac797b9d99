package sqlstore

import (
	"strings"
	"time"

	"issueboard/internal/kanban/models"
)

// Project is a board owner. Statuses and issues hang off it.
type Project struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:128;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status is one workflow state of a project, rendered as a column.
type Status struct {
	ID        string  `gorm:"primaryKey;size:64"`
	ProjectID string  `gorm:"size:64;not null;uniqueIndex:idx_status_project_key"`
	Key       string  `gorm:"column:status_key;size:64;not null;uniqueIndex:idx_status_project_key"`
	Name      string  `gorm:"size:128"`
	Color     string  `gorm:"size:16"`
	Category  string  `gorm:"size:16"`
	Position  float64 `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// Issue is a work item. Status holds the Key of one of the project's statuses.
type Issue struct {
	ID        string  `gorm:"primaryKey;size:64"`
	ProjectID string  `gorm:"size:64;not null;index"`
	Title     string  `gorm:"not null"`
	Status    string  `gorm:"size:64;index"`
	ParentID  *string `gorm:"size:64"`
	Priority  int     `gorm:"default:0"`
	Labels    string  `gorm:"size:512"` // comma separated
	Sequence  int     `gorm:"index"`    // Creation order, the canonical fetch order
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllModels returns every table the store migrates.
func AllModels() []interface{} {
	return []interface{}{
		&Project{},
		&Status{},
		&Issue{},
	}
}

func (s Status) column() models.Column {
	return models.Column{
		ID:       s.ID,
		Key:      s.Key,
		Name:     s.Name,
		Color:    s.Color,
		Category: models.Category(s.Category),
		Position: s.Position,
	}
}

func statusFromColumn(projectID string, col models.Column) Status {
	return Status{
		ID:        col.ID,
		ProjectID: projectID,
		Key:       col.Key,
		Name:      col.Name,
		Color:     col.Color,
		Category:  string(col.Category),
		Position:  col.Position,
	}
}

func (i Issue) card() models.Card {
	card := models.Card{
		ID:       i.ID,
		Title:    i.Title,
		Status:   i.Status,
		Priority: i.Priority,
		Labels:   splitLabels(i.Labels),
	}
	if i.ParentID != nil {
		card.ParentID = *i.ParentID
	}
	return card
}

func issueFromCard(projectID string, seq int, card models.Card) Issue {
	issue := Issue{
		ID:        card.ID,
		ProjectID: projectID,
		Title:     card.Title,
		Status:    card.Status,
		Priority:  card.Priority,
		Labels:    strings.Join(card.Labels, ","),
		Sequence:  seq,
	}
	if card.ParentID != "" {
		parent := card.ParentID
		issue.ParentID = &parent
	}
	return issue
}

func splitLabels(s string) []string {
	labels := []string{}
	for _, l := range strings.Split(s, ",") {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}
