package commit

import (
	"context"
	"errors"
	"testing"

	"issueboard/internal/kanban/collision"
	"issueboard/internal/kanban/drag"
	"issueboard/internal/kanban/models"
	"issueboard/internal/kanban/operations"
)

type recordingPersister struct {
	statusCalls [][2]string
	orderCalls  [][]string
	err         error
}

func (p *recordingPersister) UpdateIssueStatus(ctx context.Context, issueID, status string) error {
	p.statusCalls = append(p.statusCalls, [2]string{issueID, status})
	return p.err
}

func (p *recordingPersister) PersistColumnOrder(ctx context.Context, projectID string, ids []string) error {
	p.orderCalls = append(p.orderCalls, ids)
	return p.err
}

func testBoard() models.Board {
	return operations.BuildFromCanonical("p1", []models.Card{
		{ID: "I1", Status: "backlog"},
		{ID: "I2", Status: "backlog"},
		{ID: "I3", Status: "done"},
	}, []models.Column{
		{ID: "col-backlog", Key: "backlog", Position: 0},
		{ID: "col-progress", Key: "in_progress", Position: 1},
		{ID: "col-done", Key: "done", Position: 2},
	})
}

func cardSession(id, source string) drag.Session {
	return drag.Session{Kind: drag.KindCard, ActiveCardID: id, SourceColumnKey: source}
}

func TestPlan_SameColumnReorder(t *testing.T) {
	board := testBoard()
	target := collision.Target{Kind: collision.RegionCard, ColumnKey: "backlog", CardID: "I2", Bias: collision.BiasAfter}

	move, err := Plan(&board, cardSession("I1", "backlog"), target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if move.Kind != MoveReorderInColumn {
		t.Errorf("expected reorder, got %s", move.Kind)
	}
	if move.Index != 1 {
		t.Errorf("expected index 1, got %d", move.Index)
	}
	if req := NewRequest(1, "p1", move); req != nil {
		t.Error("expected no persistence for intra-column reorder")
	}
}

func TestPlan_CrossColumnBeforeCard(t *testing.T) {
	board := testBoard()
	target := collision.Target{Kind: collision.RegionCard, ColumnKey: "done", CardID: "I3", Bias: collision.BiasBefore}

	move, err := Plan(&board, cardSession("I1", "backlog"), target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if move.Kind != MoveCrossColumn || move.ToKey != "done" || move.Index != 0 {
		t.Errorf("expected cross-column to done@0, got %+v", move)
	}

	if err := Apply(&board, move); err != nil {
		t.Fatalf("apply: %v", err)
	}
	card, _ := board.Card("I1")
	if card.Status != "done" {
		t.Errorf("expected status done, got %q", card.Status)
	}
	if err := board.Validate(); err != nil {
		t.Errorf("invalid board: %v", err)
	}
}

func TestPlan_DroppedOnItself(t *testing.T) {
	board := testBoard()
	target := collision.Target{Kind: collision.RegionCard, ColumnKey: "backlog", CardID: "I2", Bias: collision.BiasBefore}

	move, err := Plan(&board, cardSession("I2", "backlog"), target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if move.Kind != MoveReorderInColumn || move.Index != 1 {
		t.Errorf("expected card to keep index 1, got %+v", move)
	}
}

func TestPlan_TargetVanished(t *testing.T) {
	board := testBoard()

	_, err := Plan(&board, cardSession("gone", "backlog"), collision.Target{ColumnKey: "done"})
	if !errors.Is(err, ErrTargetVanished) {
		t.Errorf("expected ErrTargetVanished for missing card, got %v", err)
	}

	target := collision.Target{Kind: collision.RegionCard, ColumnKey: "done", CardID: "deleted"}
	_, err = Plan(&board, cardSession("I1", "backlog"), target)
	if !errors.Is(err, ErrTargetVanished) {
		t.Errorf("expected ErrTargetVanished for missing target card, got %v", err)
	}

	_, err = Plan(&board, cardSession("I1", "backlog"), collision.Target{ColumnKey: "removed"})
	if !errors.Is(err, ErrTargetVanished) {
		t.Errorf("expected ErrTargetVanished for missing column, got %v", err)
	}

	colSession := drag.Session{Kind: drag.KindColumn, ActiveColumnID: "col-done"}
	_, err = Plan(&board, colSession, collision.Target{ColumnID: "col-removed"})
	if !errors.Is(err, ErrTargetVanished) {
		t.Errorf("expected ErrTargetVanished for missing target column, got %v", err)
	}
}

func TestPlan_ColumnReorder(t *testing.T) {
	board := testBoard()
	session := drag.Session{Kind: drag.KindColumn, ActiveColumnID: "col-done"}

	move, err := Plan(&board, session, collision.Target{Kind: collision.RegionColumn, ColumnID: "col-backlog"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"col-done", "col-backlog", "col-progress"}
	if len(move.ColumnOrder) != 3 || move.ColumnOrder[0] != want[0] || move.ColumnOrder[2] != want[2] {
		t.Errorf("expected %v, got %v", want, move.ColumnOrder)
	}
	if board.ColumnOrder[0] != "col-backlog" {
		t.Error("expected Plan to leave the board untouched")
	}

	same, _ := Plan(&board, session, collision.Target{Kind: collision.RegionColumn, ColumnID: "col-done"})
	if same.Kind != MoveNone {
		t.Errorf("expected no move over itself, got %s", same.Kind)
	}
}

func TestRequestRun(t *testing.T) {
	p := &recordingPersister{}

	cross := NewRequest(1, "p1", Move{Kind: MoveCrossColumn, CardID: "I1", ToKey: "done"})
	if err := cross.Run(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.statusCalls) != 1 || p.statusCalls[0] != [2]string{"I1", "done"} {
		t.Errorf("expected one status call (I1, done), got %v", p.statusCalls)
	}

	order := NewRequest(2, "p1", Move{Kind: MoveReorderColumns, ColumnOrder: []string{"b", "a"}})
	order.Run(context.Background(), p)
	if len(p.orderCalls) != 1 || p.orderCalls[0][0] != "b" {
		t.Errorf("expected one order call starting with b, got %v", p.orderCalls)
	}

	p.err = errors.New("boom")
	if err := cross.Run(context.Background(), p); !errors.Is(err, ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
}
