package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"issueboard/internal/kanban/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Project is the on-disk description of a project board
type Project struct {
	ID       string
	Name     string
	Path     string
	Statuses []models.Column
	Body     string
}

type statusFrontmatter struct {
	ID       string  `yaml:"id"`
	Key      string  `yaml:"key"`
	Name     string  `yaml:"name"`
	Color    string  `yaml:"color,omitempty"`
	Category string  `yaml:"category,omitempty"`
	Position float64 `yaml:"position"`
}

type boardFrontmatter struct {
	Statuses []statusFrontmatter `yaml:"statuses"`
}

// ReadProject reads board.md from a project directory
func ReadProject(projectPath string) (Project, error) {
	content, err := os.ReadFile(filepath.Join(projectPath, "board.md"))
	if err != nil {
		return Project{}, err
	}

	fmBytes, body := splitFrontmatter(content)

	project := Project{
		ID:       filepath.Base(projectPath),
		Path:     projectPath,
		Statuses: []models.Column{},
		Body:     string(body),
	}

	if fmBytes != nil {
		var fm boardFrontmatter
		if err := yaml.Unmarshal(fmBytes, &fm); err != nil {
			return Project{}, fmt.Errorf("parse %s frontmatter: %w", filepath.Join(projectPath, "board.md"), err)
		}
		for _, s := range fm.Statuses {
			key := s.Key
			if key == "" {
				key = s.ID
			}
			project.Statuses = append(project.Statuses, models.Column{
				ID:       s.ID,
				Key:      key,
				Name:     s.Name,
				Color:    s.Color,
				Category: models.Category(s.Category),
				Position: s.Position,
			})
		}
	}

	project.Name = extractHeading(body)
	if project.Name == "" {
		project.Name = project.ID
	}

	return project, nil
}

// splitFrontmatter separates a leading --- delimited YAML block from the
// markdown body. fm is nil when there is no frontmatter.
func splitFrontmatter(content []byte) (fm []byte, body []byte) {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return nil, content
	}

	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == 0 {
		return nil, content
	}

	fm = bytes.Join(lines[1:frontmatterEnd], []byte("\n"))
	body = bytes.TrimLeft(bytes.Join(lines[frontmatterEnd+1:], []byte("\n")), "\n")
	return fm, body
}

// extractHeading returns the text of the first H1 in a markdown body
func extractHeading(body []byte) string {
	reader := text.NewReader(body)
	doc := goldmark.DefaultParser().Parse(reader)

	var heading string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindHeading {
			if n.(*ast.Heading).Level == 1 {
				heading = string(n.Text(body))
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})
	return heading
}
