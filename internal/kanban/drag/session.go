package drag

import (
	"errors"
	"fmt"

	"issueboard/internal/kanban/collision"
	"issueboard/internal/kanban/models"
)

var (
	ErrUnknownItem   = errors.New("drag: unknown item")
	ErrSessionActive = errors.New("drag: session already active")
	ErrNoSession     = errors.New("drag: no active session")
)

// Kind is what is being dragged
type Kind int

const (
	KindNone Kind = iota
	KindCard
	KindColumn
)

func (k Kind) String() string {
	switch k {
	case KindCard:
		return "card"
	case KindColumn:
		return "column"
	}
	return "none"
}

// CollisionKind maps the session kind to a collision strategy
func (k Kind) CollisionKind() collision.DragKind {
	if k == KindColumn {
		return collision.DragColumn
	}
	return collision.DragCard
}

// Session describes the drag in progress. SourceColumnKey is captured at
// start, before any preview mutation, and never changes afterwards.
type Session struct {
	Kind            Kind
	ActiveCardID    string
	SourceColumnKey string
	ActiveColumnID  string
	Over            *collision.Target
}

// ActiveID returns the ID of the dragged item
func (s Session) ActiveID() string {
	if s.Kind == KindColumn {
		return s.ActiveColumnID
	}
	return s.ActiveCardID
}

// Machine tracks the drag session lifecycle:
// Idle -> DraggingCard -> Idle, or Idle -> DraggingColumn -> Idle
type Machine struct {
	session Session
}

// Active reports whether a session exists
func (m *Machine) Active() bool {
	return m.session.Kind != KindNone
}

// Session returns a copy of the current session
func (m *Machine) Session() Session {
	s := m.session
	if s.Over != nil {
		over := *s.Over
		s.Over = &over
	}
	return s
}

// Start classifies itemID against the board and opens a session. Column
// IDs are checked before card IDs.
func (m *Machine) Start(board *models.Board, itemID string) (Session, error) {
	if m.Active() {
		return Session{}, ErrSessionActive
	}
	if _, ok := board.ColumnByID(itemID); ok {
		m.session = Session{Kind: KindColumn, ActiveColumnID: itemID}
		return m.Session(), nil
	}
	if card, ok := board.Card(itemID); ok {
		li, _ := board.FindCard(itemID)
		source := board.Lanes[li].Key
		if source == "" {
			source = card.Status
		}
		m.session = Session{Kind: KindCard, ActiveCardID: itemID, SourceColumnKey: source}
		return m.Session(), nil
	}
	return Session{}, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
}

// Over records the current target. A nil target clears it.
func (m *Machine) Over(target *collision.Target) error {
	if !m.Active() {
		return ErrNoSession
	}
	if target == nil {
		m.session.Over = nil
		return nil
	}
	t := *target
	m.session.Over = &t
	return nil
}

// Finish closes the session and returns it. Used for both end and cancel.
func (m *Machine) Finish() (Session, error) {
	if !m.Active() {
		return Session{}, ErrNoSession
	}
	s := m.Session()
	m.session = Session{}
	return s, nil
}
