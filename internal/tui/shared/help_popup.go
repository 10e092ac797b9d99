package shared

import (
	"strings"

	"issueboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// HelpBind is one key and what it does
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection is a titled group of binds. A section without binds renders
// as a heading only.
type HelpSection struct {
	Title string
	Binds []HelpBind
}

const helpKeyWidth = 14

// RenderHelpPopup renders the sections in a box centred in width x height
func RenderHelpPopup(sections []HelpSection, width, height int) string {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.HelpSection.Render(section.Title))
		b.WriteString("\n")
		for _, bind := range section.Binds {
			b.WriteString("  ")
			b.WriteString(theme.HelpKey.Width(helpKeyWidth).Render(bind.Key))
			b.WriteString(theme.HelpDesc.Render(bind.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(theme.HelpHint.Render("Press any key to close"))

	box := theme.ModalBox.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
