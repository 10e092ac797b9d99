package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"issueboard/internal/kanban/models"
	"issueboard/internal/logs"
)

// ListProjects returns every project directory under Root, in name order.
// A project directory is one holding a board.md.
func (s *Store) ListProjects(ctx context.Context) ([]models.ProjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var projects []models.ProjectInfo
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() || shouldSkipDir(entry.Name()) {
			continue
		}
		path := filepath.Join(s.Root, entry.Name())
		if !fileExists(filepath.Join(path, "board.md")) {
			continue
		}
		project, err := ReadProject(path)
		if err != nil {
			logs.Logger.Printf("Warning: skipping project %s: %v", entry.Name(), err)
			continue
		}
		projects = append(projects, models.ProjectInfo{
			ID:     project.ID,
			Name:   project.Name,
			Issues: countIssueFiles(filepath.Join(path, "issues")),
		})
	}
	return projects, nil
}

func countIssueFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".md") {
			n++
		}
	}
	return n
}

// shouldSkipDir returns true for directories that are never projects
func shouldSkipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "vendor", "__pycache__", "target", "build", "dist":
		return true
	}
	return false
}
