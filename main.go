package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"issueboard/internal/cli"
	"issueboard/internal/config"
	"issueboard/internal/kanban/models"
	"issueboard/internal/kanban/store"
	"issueboard/internal/logs"
	"issueboard/internal/tui"
)

func launchTUI(cfg *config.Config, svc store.Service, data models.BoardData) error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	appModel := tui.NewAppModel(cfg, svc, data)
	p := tea.NewProgram(appModel, opts...)
	_, err := p.Run()
	return err
}

func main() {
	code := cli.Execute(cli.NewRootCmd(launchTUI))
	logs.Close()
	os.Exit(code)
}
