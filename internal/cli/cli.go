// Package cli is the issueboard command line. Without a subcommand it
// launches the interactive board; subcommands script the same backends.
package cli

import (
	"context"
	"fmt"
	"time"

	"issueboard/internal/config"
	"issueboard/internal/kanban/models"
	"issueboard/internal/kanban/store"
	"issueboard/internal/logs"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

const commandTimeout = 30 * time.Second

// LaunchFunc starts the interactive board for an opened backend
type LaunchFunc func(cfg *config.Config, svc store.Service, data models.BoardData) error

// NewRootCmd builds the command tree. launch runs the TUI; it is only
// called when no subcommand is given.
func NewRootCmd(launch LaunchFunc) *cobra.Command {
	var flags config.CLIFlags

	cmd := &cobra.Command{
		Use:   "issueboard",
		Short: "Issue board - drag and drop issues between status columns",
		Long: "issueboard shows a project's issues as a kanban board. Issues are moved\n" +
			"between status columns and columns are reordered with the keyboard or mouse;\n" +
			"every move is saved to the configured backend (markdown files, SQLite or MySQL).",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, flags, launch)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.Backend, "backend", "", "storage backend (fs, sqlite, mysql)")
	pf.StringVar(&flags.DataDir, "data-dir", "", "data directory for the fs and sqlite backends")
	pf.StringVar(&flags.DSN, "dsn", "", "database DSN for the sqlite and mysql backends")
	pf.StringVarP(&flags.Project, "project", "p", "", "project ID")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd(&flags))
	cmd.AddCommand(newProjectsCmd(&flags))
	cmd.AddCommand(newIssueCmd(&flags))
	cmd.AddCommand(newShowCmd(&flags))
	cmd.AddCommand(newMoveCmd(&flags))
	cmd.AddCommand(newColumnsCmd(&flags))
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "issueboard %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs cmd and returns the process exit code
func Execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// connect loads configuration and opens the selected backend
func connect(flags config.CLIFlags) (*config.Config, store.Service, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}
	if err := logs.Initialize(cfg.DataDir); err != nil {
		return nil, nil, fmt.Errorf("logs: %w", err)
	}
	svc, err := store.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	logs.Logger.Printf("Opened %s backend for project %s", cfg.Backend, cfg.Project)
	return cfg, svc, nil
}

func runBoard(cmd *cobra.Command, flags config.CLIFlags, launch LaunchFunc) error {
	if err := config.EnsureConfigFile(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create config file: %v\n", err)
	}

	cfg, svc, err := connect(flags)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()
	data, err := svc.FetchBoardData(ctx, cfg.Project)
	if err != nil {
		return fmt.Errorf("load project %q: %w (create it with \"issueboard init\")", cfg.Project, err)
	}

	logs.Logger.Println("Starting app in TUI mode")
	return launch(cfg, svc, data)
}

// commandContext bounds a scripted command
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, commandTimeout)
}
