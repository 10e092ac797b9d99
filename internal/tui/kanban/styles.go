package kanban

import (
	"github.com/charmbracelet/lipgloss"
	"issueboard/internal/tui/theme"
)

var (
	// Title styles
	titleStyle = theme.Title.Padding(0, 1)

	// Column styles
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, columnPadding).
			MarginRight(1).
			Width(columnWidth)

	selectedColumnStyle = columnStyle.
				BorderForeground(theme.BorderFocused)

	dragColumnStyle = columnStyle.
			BorderForeground(theme.Warning)

	dropColumnStyle = columnStyle.
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(theme.Success)

	columnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.Primary)

	selectedColumnTitleStyle = lipgloss.NewStyle().
					Bold(true).
					Foreground(theme.Warning).
					Underline(true)

	columnCountStyle = lipgloss.NewStyle().
				Foreground(theme.TextMuted)

	// Card styles
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(theme.Border).
			Padding(0, cardPaddingHorizontal).
			Width(cardWidth).
			Height(cardContentRows).
			MaxHeight(cardContentRows)

	selectedCardStyle = cardStyle.
				BorderForeground(theme.BorderFocused).
				Background(theme.Surface).
				Bold(true)

	dragCardStyle = cardStyle.
			BorderForeground(theme.Warning).
			Background(theme.DragSurface).
			Bold(true)

	dropCardStyle = cardStyle.
			BorderForeground(theme.Success)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true)

	cardIDStyle = lipgloss.NewStyle().
			Foreground(theme.TextMuted)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(theme.Accent).
			Italic(true)

	cardChildStyle = lipgloss.NewStyle().
			Foreground(theme.Secondary)

	cardPreviewStyle = lipgloss.NewStyle().
				Foreground(theme.TextMuted)

	// Help styles
	helpStyle = theme.Muted.Padding(1, 2)

	// Message styles
	errorStyle   = theme.Error
	warningStyle = theme.Warn
	successStyle = theme.Ok

	notificationStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.TextBright).
				Background(theme.Danger).
				Padding(0, 1)

	// Scroll indicator style
	scrollIndicatorStyle = lipgloss.NewStyle().
				Foreground(theme.Primary).
				Italic(true)

	// Filter indicator style
	filterIndicatorStyle = lipgloss.NewStyle().
				Foreground(theme.Warning).
				Bold(true)

	// Detail popup
	detailBoxStyle   = theme.ModalBox.Width(60)
	detailTitleStyle = theme.ModalTitle
	detailKeyStyle   = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary).Width(10)
)

// priorityColor maps a priority level to a colour, 1 being most urgent
func priorityColor(p int) lipgloss.Color {
	switch p {
	case 1:
		return theme.Danger
	case 2:
		return theme.Warning
	case 3:
		return theme.Primary
	default:
		return theme.TextMuted
	}
}

// columnAccent returns the configured colour of a status, or the default
// title colour
func columnAccent(color string) lipgloss.Color {
	if color == "" {
		return theme.Primary
	}
	return lipgloss.Color(color)
}
