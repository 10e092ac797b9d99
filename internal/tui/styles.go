package tui

import "issueboard/internal/tui/theme"

var (
	// Status bar
	StatusBarStyle = theme.StatusBar

	// Help text
	HelpStyle = theme.HelpHint
)
