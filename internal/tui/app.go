package tui

import (
	"issueboard/internal/config"
	"issueboard/internal/kanban/models"
	"issueboard/internal/kanban/store"
	kanbanview "issueboard/internal/tui/kanban"
	"issueboard/internal/tui/shared"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// statusBarRows is the status bar height: top border and one line of text
const statusBarRows = 2

// AppModel is the root model hosting the board view
type AppModel struct {
	cfg       *config.Config
	boardView kanbanview.BoardModel
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model from a first fetch of
// the configured project
func NewAppModel(cfg *config.Config, svc store.Service, data models.BoardData) AppModel {
	return AppModel{
		cfg:       cfg,
		boardView: kanbanview.NewBoardModel(svc, cfg, data),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.boardView.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.boardView.SetSize(msg.Width, msg.Height-statusBarRows)
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// A modal board (drag, filter, detail) handles every key itself
		if !m.boardView.IsModal() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.boardView, cmd = m.boardView.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup(helpSections(), m.width, m.height)
	}

	statusText := "Project " + m.cfg.Project + " | " + m.cfg.Backend + " | ?:help | q:quit"
	if m.boardView.IsModal() {
		statusText = "Project " + m.cfg.Project + " | ctrl+c: force quit"
	}

	statusBar := StatusBarStyle.Width(m.width).Render(
		HelpStyle.Render(statusText),
	)

	return lipgloss.JoinVertical(lipgloss.Left, m.boardView.View(), statusBar)
}

func helpSections() []shared.HelpSection {
	return []shared.HelpSection{
		{
			Title: "Issue Board - Keyboard Shortcuts",
		},
		{
			Title: "Navigation",
			Binds: []shared.HelpBind{
				{Key: "h / l", Desc: "Previous / next column"},
				{Key: "j / k", Desc: "Previous / next card"},
				{Key: "enter", Desc: "Open card details"},
				{Key: "/", Desc: "Filter cards"},
				{Key: "r", Desc: "Refresh from the backend"},
			},
		},
		{
			Title: "Moving",
			Binds: []shared.HelpBind{
				{Key: "m / space", Desc: "Pick up card"},
				{Key: "C", Desc: "Pick up column"},
				{Key: "h j k l", Desc: "Move the picked up item"},
				{Key: "enter", Desc: "Drop"},
				{Key: "esc", Desc: "Cancel and restore"},
				{Key: "mouse", Desc: "Drag cards and column titles"},
			},
		},
		{
			Title: "Global",
			Binds: []shared.HelpBind{
				{Key: "?", Desc: "Show this help"},
				{Key: "q", Desc: "Quit"},
				{Key: "ctrl+c", Desc: "Force quit"},
			},
		},
	}
}
