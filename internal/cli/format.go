package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"issueboard/internal/kanban/models"

	"gopkg.in/yaml.v3"
)

// printBoard writes one block per column in display order
func printBoard(w io.Writer, board *models.Board) {
	childCounts := board.ChildCounts()

	for i, col := range board.OrderedColumns() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		lane := board.Lane(col.Key)
		fmt.Fprintf(w, "%s [%s] (%d)\n", col.Name, col.Key, len(lane.Cards))

		if len(lane.Cards) == 0 {
			fmt.Fprintln(w, "  (empty)")
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, card := range lane.Cards {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", card.ID, card.Title, cardMeta(card, childCounts[card.ID]))
		}
		tw.Flush()
	}
}

func cardMeta(card models.Card, children int) string {
	var parts []string
	if card.Priority > 0 {
		parts = append(parts, fmt.Sprintf("P%d", card.Priority))
	}
	if card.HasParent() {
		parts = append(parts, "parent:"+card.ParentID)
	}
	if children > 0 {
		parts = append(parts, fmt.Sprintf("children:%d", children))
	}
	for _, label := range card.Labels {
		parts = append(parts, "#"+label)
	}
	return strings.Join(parts, " ")
}

type yamlIssue struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Parent   string   `yaml:"parent,omitempty"`
	Priority int      `yaml:"priority,omitempty"`
	Labels   []string `yaml:"labels,omitempty"`
}

type yamlColumn struct {
	ID     string      `yaml:"id"`
	Key    string      `yaml:"key"`
	Name   string      `yaml:"name"`
	Issues []yamlIssue `yaml:"issues"`
}

type yamlBoard struct {
	Project string       `yaml:"project"`
	Columns []yamlColumn `yaml:"columns"`
}

// printBoardYAML writes the board as a YAML document for scripting
func printBoardYAML(w io.Writer, board *models.Board) error {
	doc := yamlBoard{Project: board.ProjectID}
	for _, col := range board.OrderedColumns() {
		yc := yamlColumn{ID: col.ID, Key: col.Key, Name: col.Name, Issues: []yamlIssue{}}
		for _, card := range board.Lane(col.Key).Cards {
			yc.Issues = append(yc.Issues, yamlIssue{
				ID:       card.ID,
				Title:    card.Title,
				Parent:   card.ParentID,
				Priority: card.Priority,
				Labels:   card.Labels,
			})
		}
		doc.Columns = append(doc.Columns, yc)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
