package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"issueboard/internal/kanban/models"
	"issueboard/internal/kanban/operations"
	"issueboard/internal/logs"
)

// Store keeps projects as directories under Root:
//
//	<root>/<project>/board.md          statuses in frontmatter, H1 = name
//	<root>/<project>/issues/<id>.md    one file per issue
type Store struct {
	Root string
	mu   sync.Mutex
}

// NewStore returns a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{Root: dir}
}

func (s *Store) projectPath(projectID string) string {
	return filepath.Join(s.Root, projectID)
}

// InitProject creates a project with the default statuses. It fails if
// the project already exists.
func (s *Store) InitProject(ctx context.Context, projectID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.projectPath(projectID)
	if fileExists(filepath.Join(path, "board.md")) {
		return fmt.Errorf("project %q already exists", projectID)
	}
	if err := os.MkdirAll(filepath.Join(path, "issues"), 0755); err != nil {
		return err
	}

	project := Project{
		ID:       projectID,
		Name:     name,
		Path:     path,
		Statuses: models.DefaultColumns(),
	}
	return WriteProject(project)
}

// CreateIssue writes a new issue file into a project
func (s *Store) CreateIssue(ctx context.Context, projectID string, card models.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if card.ID == "" {
		return fmt.Errorf("issue id is required")
	}
	if !fileExists(filepath.Join(s.projectPath(projectID), "board.md")) {
		return fmt.Errorf("project %q not found", projectID)
	}
	paths, err := s.issuePaths(card.ID)
	if err != nil {
		return err
	}
	if len(paths) > 0 {
		return fmt.Errorf("%w: %s", models.ErrIssueExists, card.ID)
	}
	path := filepath.Join(s.projectPath(projectID), "issues", card.ID+".md")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return WriteIssue(card, "", path)
}

// FetchBoardData loads the statuses and issues of a project. Issues come
// back in ID order, numeric suffixes compared as numbers (WEB-2 before
// WEB-10), which is creation order for generated IDs.
func (s *Store) FetchBoardData(ctx context.Context, projectID string) (models.BoardData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, err := ReadProject(s.projectPath(projectID))
	if err != nil {
		return models.BoardData{}, err
	}

	entries, err := os.ReadDir(filepath.Join(project.Path, "issues"))
	if err != nil && !os.IsNotExist(err) {
		return models.BoardData{}, err
	}

	issues := []models.Card{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return models.BoardData{}, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		card, _, err := ReadIssue(filepath.Join(project.Path, "issues", entry.Name()))
		if err != nil {
			logs.Logger.Printf("Warning: skipping issue %s: %v", entry.Name(), err)
			continue
		}
		issues = append(issues, card)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issueIDLess(issues[i].ID, issues[j].ID)
	})
	return models.BoardData{Issues: issues, Statuses: project.Statuses}, nil
}

// issueIDLess orders IDs by prefix, then by trailing number
func issueIDLess(a, b string) bool {
	pa, na, oka := splitIssueID(a)
	pb, nb, okb := splitIssueID(b)
	if pa != pb || !oka || !okb {
		return a < b
	}
	if na != nb {
		return na < nb
	}
	return a < b
}

// splitIssueID splits "WEB-12" into "WEB-" and 12
func splitIssueID(id string) (string, int, bool) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return id, 0, false
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return id, 0, false
	}
	return id[:i], n, true
}

// UpdateIssueStatus rewrites the status of one issue. The issue is looked
// up across all projects under Root.
func (s *Store) UpdateIssueStatus(ctx context.Context, issueID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, project, err := s.findIssue(issueID)
	if err != nil {
		return err
	}

	known := false
	for _, col := range project.Statuses {
		if col.Key == status {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown status %q in project %q", status, project.ID)
	}

	card, body, err := ReadIssue(path)
	if err != nil {
		return err
	}
	card.Status = status
	return WriteIssue(card, body, path)
}

// PersistColumnOrder stores an absolute column order by renumbering the
// status positions
func (s *Store) PersistColumnOrder(ctx context.Context, projectID string, orderedColumnIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, err := ReadProject(s.projectPath(projectID))
	if err != nil {
		return err
	}

	board := models.Board{Columns: project.Statuses}
	if err := operations.ValidateColumnOrder(&board, orderedColumnIDs); err != nil {
		return err
	}

	position := make(map[string]int, len(orderedColumnIDs))
	for i, id := range orderedColumnIDs {
		position[id] = i
	}
	for i := range project.Statuses {
		project.Statuses[i].Position = float64(position[project.Statuses[i].ID])
	}
	return WriteProject(project)
}

// Close is a no-op; files are written synchronously
func (s *Store) Close() error {
	return nil
}

// issuePaths returns the file of issueID in every project that has one
func (s *Store) issuePaths(issueID string) ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(s.Root, entry.Name(), "issues", issueID+".md")
		if fileExists(path) {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// findIssue locates an issue and its project. An ID present in more than
// one project is refused rather than guessed.
func (s *Store) findIssue(issueID string) (string, Project, error) {
	paths, err := s.issuePaths(issueID)
	if err != nil {
		return "", Project{}, err
	}
	switch len(paths) {
	case 0:
		return "", Project{}, fmt.Errorf("issue not found: %s", issueID)
	case 1:
	default:
		return "", Project{}, fmt.Errorf("issue %s exists in %d projects", issueID, len(paths))
	}
	project, err := ReadProject(filepath.Dir(filepath.Dir(paths[0])))
	if err != nil {
		return "", Project{}, err
	}
	return paths[0], project, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
