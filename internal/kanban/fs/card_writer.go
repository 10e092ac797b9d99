package fs

import (
	"bytes"

	"issueboard/internal/kanban/models"

	"gopkg.in/yaml.v3"
)

// WriteIssue writes a card to a markdown file with frontmatter. An empty
// body is replaced by a heading carrying the card title.
func WriteIssue(card models.Card, body string, path string) error {
	var buf bytes.Buffer

	fm := issueFrontmatter{
		ID:       card.ID,
		Status:   card.Status,
		Parent:   card.ParentID,
		Priority: card.Priority,
		Labels:   card.Labels,
	}

	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return err
	}

	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")

	if body == "" {
		body = "# " + card.Title + "\n"
	}
	buf.WriteString(body)

	return writeFileAtomic(path, buf.Bytes())
}
