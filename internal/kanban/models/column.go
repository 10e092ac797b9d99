package models

// Category groups statuses by workflow stage. It is informational only.
type Category string

const (
	CategoryBacklog   Category = "backlog"
	CategoryUnstarted Category = "unstarted"
	CategoryStarted   Category = "started"
	CategoryCompleted Category = "completed"
	CategoryCancelled Category = "cancelled"
)

// Categories lists the known categories in workflow order
var Categories = []Category{
	CategoryBacklog,
	CategoryUnstarted,
	CategoryStarted,
	CategoryCompleted,
	CategoryCancelled,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Column is a status column. Key is the value stored on Card.Status,
// ID is the identity used when reordering columns.
type Column struct {
	ID       string
	Key      string
	Name     string
	Color    string
	Category Category
	Position float64 // Persisted display order hint
}

// BoardData is what the fetch contract returns for a project
type BoardData struct {
	Issues   []Card
	Statuses []Column
}

// DefaultColumns returns the statuses a new project starts with
func DefaultColumns() []Column {
	return []Column{
		{ID: "col-backlog", Key: "backlog", Name: "Backlog", Color: "8", Category: CategoryBacklog, Position: 0},
		{ID: "col-todo", Key: "todo", Name: "To Do", Color: "4", Category: CategoryUnstarted, Position: 1},
		{ID: "col-in-progress", Key: "in_progress", Name: "In Progress", Color: "3", Category: CategoryStarted, Position: 2},
		{ID: "col-done", Key: "done", Name: "Done", Color: "2", Category: CategoryCompleted, Position: 3},
		{ID: "col-cancelled", Key: "cancelled", Name: "Cancelled", Color: "1", Category: CategoryCancelled, Position: 4},
	}
}
