package messages

import (
	"time"

	"issueboard/internal/kanban/commit"
	"issueboard/internal/kanban/models"

	tea "github.com/charmbracelet/bubbletea"
)

// BoardDataMsg carries the result of a canonical fetch
type BoardDataMsg struct {
	ProjectID string
	Data      models.BoardData
	Err       error
}

// CommitResultMsg reports how a persistence request ended
type CommitResultMsg struct {
	Request *commit.Request
	Err     error
}

// RefreshTickMsg fires on the periodic refetch cadence
type RefreshTickMsg struct{}

// NotificationExpiredMsg clears a transient notification if it is still
// the one identified by Seq
type NotificationExpiredMsg struct {
	Seq int
}

// RefreshTick schedules the next periodic refetch
func RefreshTick(every time.Duration) tea.Cmd {
	if every <= 0 {
		return nil
	}
	return tea.Tick(every, func(time.Time) tea.Msg {
		return RefreshTickMsg{}
	})
}

// ExpireNotification clears notification seq after d
func ExpireNotification(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return NotificationExpiredMsg{Seq: seq}
	})
}
