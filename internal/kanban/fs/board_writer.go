package fs

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WriteProject writes a Project to board.md
func WriteProject(project Project) error {
	var buf bytes.Buffer

	fm := boardFrontmatter{Statuses: make([]statusFrontmatter, len(project.Statuses))}
	for i, col := range project.Statuses {
		fm.Statuses[i] = statusFrontmatter{
			ID:       col.ID,
			Key:      col.Key,
			Name:     col.Name,
			Color:    col.Color,
			Category: string(col.Category),
			Position: col.Position,
		}
	}

	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return err
	}

	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")

	if project.Body != "" {
		buf.WriteString(project.Body)
	} else {
		buf.WriteString("# ")
		buf.WriteString(project.Name)
		buf.WriteString("\n")
	}

	return writeFileAtomic(filepath.Join(project.Path, "board.md"), buf.Bytes())
}

// writeFileAtomic writes to a temp file and renames it over path so a
// concurrent reader never sees a half-written file
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
