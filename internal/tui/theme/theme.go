// Package theme holds the board palette. Colors stay within ANSI 0-15 so
// the board follows the terminal's own scheme, plus two 256-color
// backgrounds for highlighted cards.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Text       = lipgloss.Color("7")
	TextMuted  = lipgloss.Color("8")
	TextBright = lipgloss.Color("15")

	Primary   = lipgloss.Color("4") // blue
	Secondary = lipgloss.Color("6") // cyan
	Accent    = lipgloss.Color("5") // magenta
	Success   = lipgloss.Color("2") // green
	Warning   = lipgloss.Color("3") // yellow
	Danger    = lipgloss.Color("1") // red

	Surface       = lipgloss.Color("236") // selected card background
	DragSurface   = lipgloss.Color("54")  // card being dragged
	Border        = lipgloss.Color("8")
	BorderFocused = lipgloss.Color("4")
)

// Text styles
var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	Ok    = lipgloss.NewStyle().Bold(true).Foreground(Success)

	HelpHint    = lipgloss.NewStyle().Foreground(TextMuted)
	HelpSection = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	HelpKey     = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	HelpDesc    = lipgloss.NewStyle().Foreground(Text)
)

// Frames
var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Warning)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)
)
