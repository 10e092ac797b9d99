package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"issueboard/internal/kanban/models"

	"gopkg.in/yaml.v3"
)

type issueFrontmatter struct {
	ID       string   `yaml:"id,omitempty"`
	Status   string   `yaml:"status"`
	Parent   string   `yaml:"parent,omitempty"`
	Priority int      `yaml:"priority,omitempty"`
	Labels   []string `yaml:"labels,omitempty"`
}

// ReadIssue reads an issue file and returns the card and the markdown body
func ReadIssue(issuePath string) (models.Card, string, error) {
	content, err := os.ReadFile(issuePath)
	if err != nil {
		return models.Card{}, "", err
	}

	fmBytes, body := splitFrontmatter(content)

	var fm issueFrontmatter
	if fmBytes != nil {
		if err := yaml.Unmarshal(fmBytes, &fm); err != nil {
			return models.Card{}, "", fmt.Errorf("parse %s frontmatter: %w", issuePath, err)
		}
	}

	id := fm.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(issuePath), ".md")
	}

	title := extractHeading(body)
	if title == "" {
		title = "Untitled"
	}

	labels := fm.Labels
	if labels == nil {
		labels = []string{}
	}

	return models.Card{
		ID:       id,
		Title:    title,
		Status:   fm.Status,
		ParentID: fm.Parent,
		Priority: fm.Priority,
		Labels:   labels,
	}, string(body), nil
}
