package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"issueboard/internal/kanban/models"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(t.TempDir())
	if err := s.InitProject(context.Background(), "eng", "Engineering"); err != nil {
		t.Fatalf("init: %v", err)
	}
	ctx := context.Background()
	for _, c := range []models.Card{
		{ID: "ENG-1", Title: "Epic", Status: "todo"},
		{ID: "ENG-2", Title: "Child", Status: "in_progress", ParentID: "ENG-1"},
		{ID: "ENG-3", Title: "Stray", Status: "archived"},
	} {
		if err := s.CreateIssue(ctx, "eng", c); err != nil {
			t.Fatalf("create %s: %v", c.ID, err)
		}
	}
	return s
}

func TestStore_InitProjectTwice(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.InitProject(context.Background(), "eng", "Engineering"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := s.InitProject(context.Background(), "eng", "Engineering"); err == nil {
		t.Error("expected error initialising an existing project")
	}
}

func TestStore_FetchBoardData(t *testing.T) {
	s := seededStore(t)

	data, err := s.FetchBoardData(context.Background(), "eng")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(data.Statuses) != len(models.DefaultColumns()) {
		t.Errorf("expected default statuses, got %d", len(data.Statuses))
	}
	if len(data.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(data.Issues))
	}
	for i, id := range []string{"ENG-1", "ENG-2", "ENG-3"} {
		if data.Issues[i].ID != id {
			t.Errorf("issue %d: expected %s, got %s", i, id, data.Issues[i].ID)
		}
	}
	if data.Issues[1].ParentID != "ENG-1" {
		t.Errorf("expected parent to survive, got %q", data.Issues[1].ParentID)
	}
}

func TestStore_FetchOrdersNumericSuffix(t *testing.T) {
	s := NewStore(t.TempDir())
	ctx := context.Background()
	if err := s.InitProject(ctx, "web", "Web"); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, id := range []string{"WEB-10", "WEB-2", "WEB-1"} {
		if err := s.CreateIssue(ctx, "web", models.Card{ID: id, Title: id, Status: "todo"}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	data, err := s.FetchBoardData(ctx, "web")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	var got []string
	for _, issue := range data.Issues {
		got = append(got, issue.ID)
	}
	want := []string{"WEB-1", "WEB-2", "WEB-10"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestIssueIDLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"WEB-2", "WEB-10", true},
		{"WEB-10", "WEB-2", false},
		{"API-9", "WEB-1", true},
		{"notes", "WEB-1", false},
		{"WEB-1", "WEB-1", false},
	}
	for _, tt := range tests {
		if got := issueIDLess(tt.a, tt.b); got != tt.want {
			t.Errorf("issueIDLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStore_FetchUnknownProject(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.FetchBoardData(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown project")
	}
}

func TestStore_UpdateIssueStatus(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	if err := s.UpdateIssueStatus(ctx, "ENG-1", "done"); err != nil {
		t.Fatalf("update: %v", err)
	}
	data, err := s.FetchBoardData(ctx, "eng")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if data.Issues[0].Status != "done" {
		t.Errorf("expected status 'done', got %q", data.Issues[0].Status)
	}
	if data.Issues[0].Title != "Epic" {
		t.Errorf("title should survive the rewrite, got %q", data.Issues[0].Title)
	}

	if err := s.UpdateIssueStatus(ctx, "ENG-1", "nope"); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := s.UpdateIssueStatus(ctx, "ENG-404", "done"); err == nil {
		t.Error("expected error for unknown issue")
	}
}

func TestStore_IssueIDsUniqueAcrossProjects(t *testing.T) {
	s := NewStore(t.TempDir())
	ctx := context.Background()
	for _, id := range []string{"web-app", "webapp"} {
		if err := s.InitProject(ctx, id, id); err != nil {
			t.Fatalf("init %s: %v", id, err)
		}
	}

	if err := s.CreateIssue(ctx, "web-app", models.Card{ID: "WEBAPP-1", Title: "First", Status: "todo"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := s.CreateIssue(ctx, "webapp", models.Card{ID: "WEBAPP-1", Title: "Second", Status: "todo"})
	if !errors.Is(err, models.ErrIssueExists) {
		t.Fatalf("err = %v, want ErrIssueExists", err)
	}
	if err := s.CreateIssue(ctx, "ghost", models.Card{ID: "GHOST-1", Title: "Nope"}); err == nil {
		t.Error("expected error for unknown project")
	}

	// A duplicate written by hand is refused instead of guessed
	dup := filepath.Join(s.Root, "webapp", "issues", "WEBAPP-1.md")
	if err := WriteIssue(models.Card{ID: "WEBAPP-1", Title: "Copy", Status: "todo"}, "", dup); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.UpdateIssueStatus(ctx, "WEBAPP-1", "done"); err == nil {
		t.Error("expected error for an id present in two projects")
	}
	for _, project := range []string{"web-app", "webapp"} {
		data, err := s.FetchBoardData(ctx, project)
		if err != nil {
			t.Fatalf("fetch %s: %v", project, err)
		}
		if len(data.Issues) != 1 || data.Issues[0].Status != "todo" {
			t.Errorf("%s issues = %+v, want WEBAPP-1 untouched", project, data.Issues)
		}
	}
	if _, err := os.Stat(filepath.Join(s.Root, "ghost")); !os.IsNotExist(err) {
		t.Error("unknown project directory should not be created")
	}
}

func TestStore_PersistColumnOrder(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	order := []string{"col-done", "col-backlog", "col-todo", "col-in-progress", "col-cancelled"}
	if err := s.PersistColumnOrder(ctx, "eng", order); err != nil {
		t.Fatalf("persist: %v", err)
	}

	data, err := s.FetchBoardData(ctx, "eng")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	board := models.Board{Columns: data.Statuses}
	for i, id := range order {
		col, ok := board.ColumnByID(id)
		if !ok {
			t.Fatalf("column %s missing", id)
		}
		if col.Position != float64(i) {
			t.Errorf("%s: expected position %d, got %v", id, i, col.Position)
		}
	}

	if err := s.PersistColumnOrder(ctx, "eng", order[:2]); err == nil {
		t.Error("expected error for a partial order")
	}
	if err := s.PersistColumnOrder(ctx, "eng", []string{"col-done", "col-done", "col-todo", "col-in-progress", "col-cancelled"}); err == nil {
		t.Error("expected error for a duplicate id")
	}
}
