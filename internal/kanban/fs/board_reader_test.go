package fs

import (
	"os"
	"path/filepath"
	"testing"

	"issueboard/internal/kanban/models"
)

const boardFixture = `---
statuses:
  - id: col-todo
    key: todo
    name: To Do
    category: unstarted
    position: 0
  - id: col-done
    key: done
    name: Done
    category: completed
    position: 1
  - id: col-wip
    name: WIP
    position: 0.5
---

# Dev Work

Notes about the board.
`

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestReadProject_Statuses(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dev-work")
	writeFixture(t, filepath.Join(dir, "board.md"), boardFixture)

	project, err := ReadProject(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if project.ID != "dev-work" {
		t.Errorf("expected id 'dev-work', got %q", project.ID)
	}
	if project.Name != "Dev Work" {
		t.Errorf("expected name 'Dev Work', got %q", project.Name)
	}

	if len(project.Statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(project.Statuses))
	}
	if project.Statuses[0].Key != "todo" || project.Statuses[0].Category != models.CategoryUnstarted {
		t.Errorf("unexpected first status: %+v", project.Statuses[0])
	}
	if project.Statuses[2].Key != "col-wip" {
		t.Errorf("expected key to default to id, got %q", project.Statuses[2].Key)
	}
	if project.Statuses[2].Position != 0.5 {
		t.Errorf("expected position 0.5, got %v", project.Statuses[2].Position)
	}
}

func TestReadProject_NoHeadingFallsBackToID(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ops")
	writeFixture(t, filepath.Join(dir, "board.md"), "---\nstatuses: []\n---\n\nplain text\n")

	project, err := ReadProject(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.Name != "ops" {
		t.Errorf("expected name 'ops', got %q", project.Name)
	}
	if len(project.Statuses) != 0 {
		t.Errorf("expected no statuses, got %d", len(project.Statuses))
	}
}

func TestReadProject_Missing(t *testing.T) {
	if _, err := ReadProject(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing board.md")
	}
}

func TestWriteProject_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "web")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	original := Project{
		ID:       "web",
		Name:     "Website",
		Path:     dir,
		Statuses: models.DefaultColumns(),
	}
	if err := WriteProject(original); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadProject(dir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Name != "Website" {
		t.Errorf("expected name 'Website', got %q", got.Name)
	}
	if len(got.Statuses) != len(original.Statuses) {
		t.Fatalf("expected %d statuses, got %d", len(original.Statuses), len(got.Statuses))
	}
	for i := range got.Statuses {
		if got.Statuses[i] != original.Statuses[i] {
			t.Errorf("status %d: expected %+v, got %+v", i, original.Statuses[i], got.Statuses[i])
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "board.md.tmp")); !os.IsNotExist(err) {
		t.Error("temp file should not survive the write")
	}
}

func TestSplitFrontmatter(t *testing.T) {
	fm, body := splitFrontmatter([]byte("no frontmatter here"))
	if fm != nil {
		t.Errorf("expected nil frontmatter, got %q", fm)
	}
	if string(body) != "no frontmatter here" {
		t.Errorf("unexpected body %q", body)
	}

	fm, body = splitFrontmatter([]byte("---\nstatus: todo\n---\n\n# Title\n"))
	if string(fm) != "status: todo" {
		t.Errorf("unexpected frontmatter %q", fm)
	}
	if string(body) != "# Title\n" {
		t.Errorf("unexpected body %q", body)
	}

	fm, _ = splitFrontmatter([]byte("---\nunterminated: true\n"))
	if fm != nil {
		t.Error("unterminated frontmatter should be treated as body")
	}
}
