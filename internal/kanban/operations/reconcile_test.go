package operations

import (
	"testing"

	"issueboard/internal/kanban/models"
)

func testColumns() []models.Column {
	return []models.Column{
		{ID: "col-backlog", Key: "backlog", Name: "Backlog", Position: 0},
		{ID: "col-progress", Key: "in_progress", Name: "In Progress", Position: 1},
		{ID: "col-done", Key: "done", Name: "Done", Position: 2},
	}
}

func laneIDs(board models.Board, key string) []string {
	lane := board.Lane(key)
	if lane == nil {
		return nil
	}
	ids := make([]string, len(lane.Cards))
	for i, card := range lane.Cards {
		ids[i] = card.ID
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildFromCanonical_FiltersByStatus(t *testing.T) {
	cards := []models.Card{
		{ID: "I1", Status: "backlog"},
		{ID: "I2", Status: "done"},
		{ID: "I3", Status: "backlog"},
	}
	board := BuildFromCanonical("p1", cards, testColumns())

	if err := board.Validate(); err != nil {
		t.Fatalf("invalid board: %v", err)
	}
	if got := laneIDs(board, "backlog"); !equalIDs(got, []string{"I1", "I3"}) {
		t.Errorf("expected backlog [I1 I3], got %v", got)
	}
	if got := laneIDs(board, "done"); !equalIDs(got, []string{"I2"}) {
		t.Errorf("expected done [I2], got %v", got)
	}
	if got := laneIDs(board, "in_progress"); len(got) != 0 {
		t.Errorf("expected empty in_progress, got %v", got)
	}
}

func TestBuildFromCanonical_OrphanGoesToFirstDisplayedColumn(t *testing.T) {
	cols := testColumns()
	cols[2].Position = -1 // Done is displayed first
	board := BuildFromCanonical("p1", []models.Card{{ID: "I9", Status: "archived"}}, cols)

	if board.ColumnOrder[0] != "col-done" {
		t.Fatalf("expected col-done first, got %v", board.ColumnOrder)
	}
	if got := laneIDs(board, "done"); !equalIDs(got, []string{"I9"}) {
		t.Errorf("expected orphan in done, got %v", got)
	}
	if board.CardCount() != 1 {
		t.Errorf("expected 1 card, got %d", board.CardCount())
	}
}

func TestBuildFromCanonical_DropsDuplicateIDs(t *testing.T) {
	cards := []models.Card{
		{ID: "I1", Status: "backlog"},
		{ID: "I1", Status: "done"},
	}
	board := BuildFromCanonical("p1", cards, testColumns())
	if err := board.Validate(); err != nil {
		t.Fatalf("invalid board: %v", err)
	}
	if board.CardCount() != 1 {
		t.Errorf("expected 1 card, got %d", board.CardCount())
	}
}

func TestReconcile_RetainsLocalOrder(t *testing.T) {
	canonical := []models.Card{
		{ID: "I1", Status: "backlog"},
		{ID: "I2", Status: "backlog"},
	}
	board := BuildFromCanonical("p1", canonical, testColumns())
	if err := MoveCard(&board, "I2", "backlog", 0); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	got := Reconcile(board, canonical, testColumns())
	if ids := laneIDs(got, "backlog"); !equalIDs(ids, []string{"I2", "I1"}) {
		t.Errorf("expected local order [I2 I1] kept, got %v", ids)
	}
}

func TestReconcile_NewAndMovedCardsAppend(t *testing.T) {
	board := BuildFromCanonical("p1", []models.Card{
		{ID: "I1", Status: "backlog"},
		{ID: "I2", Status: "backlog"},
		{ID: "I3", Status: "done"},
	}, testColumns())

	fresh := []models.Card{
		{ID: "I4", Status: "done"},
		{ID: "I1", Status: "done"},
		{ID: "I2", Status: "backlog", Title: "renamed"},
		{ID: "I3", Status: "done"},
	}
	got := Reconcile(board, fresh, testColumns())

	if err := got.Validate(); err != nil {
		t.Fatalf("invalid board: %v", err)
	}
	if ids := laneIDs(got, "backlog"); !equalIDs(ids, []string{"I2"}) {
		t.Errorf("expected backlog [I2], got %v", ids)
	}
	if ids := laneIDs(got, "done"); !equalIDs(ids, []string{"I3", "I4", "I1"}) {
		t.Errorf("expected done [I3 I4 I1], got %v", ids)
	}
	card, _ := got.Card("I2")
	if card.Title != "renamed" {
		t.Errorf("expected refreshed title, got %q", card.Title)
	}
}

func TestReconcile_RemovedCardsVanish(t *testing.T) {
	board := BuildFromCanonical("p1", []models.Card{
		{ID: "I1", Status: "backlog"},
		{ID: "I2", Status: "backlog"},
	}, testColumns())

	got := Reconcile(board, []models.Card{{ID: "I2", Status: "backlog"}}, testColumns())
	if got.CardCount() != 1 {
		t.Fatalf("expected 1 card, got %d", got.CardCount())
	}
	if _, ok := got.Card("I1"); ok {
		t.Error("expected I1 removed")
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	board := BuildFromCanonical("p1", []models.Card{
		{ID: "I1", Status: "backlog"},
		{ID: "I2", Status: "in_progress"},
		{ID: "I3", Status: "backlog"},
	}, testColumns())
	MoveCard(&board, "I1", "backlog", 1)

	fresh := []models.Card{
		{ID: "I3", Status: "backlog"},
		{ID: "I5", Status: "nowhere"},
		{ID: "I2", Status: "done"},
		{ID: "I1", Status: "backlog"},
	}
	once := Reconcile(board, fresh, testColumns())
	twice := Reconcile(once, fresh, testColumns())

	if !once.Equal(twice) {
		t.Errorf("expected reconcile to be idempotent\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestReconcile_ColumnChanges(t *testing.T) {
	board := BuildFromCanonical("p1", []models.Card{
		{ID: "I1", Status: "in_progress"},
	}, testColumns())
	if err := ReorderColumn(&board, "col-done", "col-backlog"); err != nil {
		t.Fatalf("reorder column: %v", err)
	}

	// in_progress is deleted, review is added
	cols := []models.Column{
		{ID: "col-backlog", Key: "backlog", Position: 0},
		{ID: "col-done", Key: "done", Position: 2},
		{ID: "col-review", Key: "review", Position: 1},
	}
	got := Reconcile(board, []models.Card{{ID: "I1", Status: "in_progress"}}, cols)

	if err := got.Validate(); err != nil {
		t.Fatalf("invalid board: %v", err)
	}
	want := []string{"col-done", "col-backlog", "col-review"}
	if !equalIDs(got.ColumnOrder, want) {
		t.Errorf("expected order %v, got %v", want, got.ColumnOrder)
	}
	// Orphaned by the deleted column: first displayed column is Done
	if ids := laneIDs(got, "done"); !equalIDs(ids, []string{"I1"}) {
		t.Errorf("expected I1 in done, got %v", ids)
	}
}

func TestReconcile_PreservesRelativeOrder(t *testing.T) {
	board := BuildFromCanonical("p1", []models.Card{
		{ID: "A", Status: "backlog"},
		{ID: "B", Status: "backlog"},
		{ID: "C", Status: "backlog"},
		{ID: "D", Status: "backlog"},
	}, testColumns())
	MoveCard(&board, "D", "backlog", 0) // D A B C

	fresh := []models.Card{
		{ID: "A", Status: "backlog"},
		{ID: "B", Status: "done"},
		{ID: "C", Status: "backlog"},
		{ID: "D", Status: "backlog"},
	}
	got := Reconcile(board, fresh, testColumns())
	if ids := laneIDs(got, "backlog"); !equalIDs(ids, []string{"D", "A", "C"}) {
		t.Errorf("expected [D A C], got %v", ids)
	}
}
