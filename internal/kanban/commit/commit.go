package commit

import (
	"context"
	"errors"
	"fmt"

	"issueboard/internal/kanban/collision"
	"issueboard/internal/kanban/drag"
	"issueboard/internal/kanban/models"
	"issueboard/internal/kanban/operations"
)

var (
	// ErrTargetVanished means the dragged item or its drop target no
	// longer exists on the board
	ErrTargetVanished = errors.New("commit: drop target vanished")

	// ErrPersistence wraps failures of the persistence contracts
	ErrPersistence = errors.New("commit: persistence failed")
)

// Persister is the write side of the issue service
type Persister interface {
	UpdateIssueStatus(ctx context.Context, issueID, status string) error
	PersistColumnOrder(ctx context.Context, projectID string, orderedColumnIDs []string) error
}

// MoveKind classifies a finished drag
type MoveKind int

const (
	MoveNone MoveKind = iota
	MoveReorderInColumn
	MoveCrossColumn
	MoveReorderColumns
)

func (k MoveKind) String() string {
	switch k {
	case MoveReorderInColumn:
		return "reorder"
	case MoveCrossColumn:
		return "cross-column"
	case MoveReorderColumns:
		return "reorder-columns"
	}
	return "none"
}

// Move is the final placement computed from a drag session and its target
type Move struct {
	Kind        MoveKind
	CardID      string
	FromKey     string
	ToKey       string
	Index       int
	ColumnID    string
	ColumnOrder []string // Resulting absolute order for column moves
}

// Plan computes the move a released drag produces. It re-validates that
// the dragged item and the target still exist on the board.
func Plan(board *models.Board, session drag.Session, target collision.Target) (Move, error) {
	switch session.Kind {
	case drag.KindCard:
		return planCard(board, session, target)
	case drag.KindColumn:
		return planColumn(board, session, target)
	}
	return Move{}, drag.ErrNoSession
}

func planCard(board *models.Board, session drag.Session, target collision.Target) (Move, error) {
	li, ci := board.FindCard(session.ActiveCardID)
	if li < 0 {
		return Move{}, fmt.Errorf("%w: card %q", ErrTargetVanished, session.ActiveCardID)
	}

	destKey := target.ColumnKey
	index := -1

	if target.OnCard() {
		if target.CardID == session.ActiveCardID {
			// Dropped on itself: keep the current slot
			destKey = board.Lanes[li].Key
			index = ci
		} else {
			tli, _ := board.FindCard(target.CardID)
			if tli < 0 {
				return Move{}, fmt.Errorf("%w: card %q", ErrTargetVanished, target.CardID)
			}
			destKey = board.Lanes[tli].Key
			index = operations.InsertIndex(board.Lanes[tli].Cards, target.CardID, session.ActiveCardID, target.Bias == collision.BiasAfter)
		}
	}

	lane := board.Lane(destKey)
	if lane == nil {
		return Move{}, fmt.Errorf("%w: column %q", ErrTargetVanished, destKey)
	}
	if index < 0 {
		index = operations.InsertIndex(lane.Cards, "", session.ActiveCardID, false)
	}

	kind := MoveCrossColumn
	if destKey == session.SourceColumnKey {
		kind = MoveReorderInColumn
	}
	return Move{
		Kind:    kind,
		CardID:  session.ActiveCardID,
		FromKey: session.SourceColumnKey,
		ToKey:   destKey,
		Index:   index,
	}, nil
}

func planColumn(board *models.Board, session drag.Session, target collision.Target) (Move, error) {
	if _, ok := board.ColumnByID(session.ActiveColumnID); !ok {
		return Move{}, fmt.Errorf("%w: column %q", ErrTargetVanished, session.ActiveColumnID)
	}
	overID := target.ColumnID
	if overID == "" {
		if col, ok := board.ColumnByKey(target.ColumnKey); ok {
			overID = col.ID
		}
	}
	if _, ok := board.ColumnByID(overID); !ok {
		return Move{}, fmt.Errorf("%w: column %q", ErrTargetVanished, overID)
	}
	if overID == session.ActiveColumnID {
		return Move{Kind: MoveNone, ColumnID: overID}, nil
	}

	scratch := models.Board{ColumnOrder: append([]string(nil), board.ColumnOrder...)}
	if err := operations.ReorderColumn(&scratch, session.ActiveColumnID, overID); err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrTargetVanished, err)
	}
	return Move{
		Kind:        MoveReorderColumns,
		ColumnID:    session.ActiveColumnID,
		ColumnOrder: scratch.ColumnOrder,
	}, nil
}

// Apply performs the move on board
func Apply(board *models.Board, move Move) error {
	switch move.Kind {
	case MoveReorderInColumn, MoveCrossColumn:
		return operations.MoveCard(board, move.CardID, move.ToKey, move.Index)
	case MoveReorderColumns:
		if err := operations.ValidateColumnOrder(board, move.ColumnOrder); err != nil {
			return err
		}
		board.ColumnOrder = append([]string(nil), move.ColumnOrder...)
	}
	return nil
}

// Request is a persistence call owed by an applied move. Intra-column
// order is local to the session and never produces a request.
type Request struct {
	Seq       uint64
	ProjectID string
	Move      Move
}

// NewRequest returns the request a move needs, or nil
func NewRequest(seq uint64, projectID string, move Move) *Request {
	switch move.Kind {
	case MoveCrossColumn, MoveReorderColumns:
		return &Request{Seq: seq, ProjectID: projectID, Move: move}
	}
	return nil
}

// Run invokes the persistence contract for the request
func (r *Request) Run(ctx context.Context, p Persister) error {
	var err error
	switch r.Move.Kind {
	case MoveCrossColumn:
		err = p.UpdateIssueStatus(ctx, r.Move.CardID, r.Move.ToKey)
	case MoveReorderColumns:
		err = p.PersistColumnOrder(ctx, r.ProjectID, append([]string(nil), r.Move.ColumnOrder...))
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersistence, r.Move.Kind, err)
	}
	return nil
}
