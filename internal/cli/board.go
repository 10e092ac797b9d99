package cli

import (
	"fmt"

	"issueboard/internal/config"
	"issueboard/internal/kanban/operations"

	"github.com/spf13/cobra"
)

func newShowCmd(flags *config.CLIFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the board",
		Long:  "Prints every column in display order with the issues it holds.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, *flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, yaml)")
	return cmd
}

func runShow(cmd *cobra.Command, flags config.CLIFlags, output string) error {
	cfg, svc, err := connect(flags)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()
	data, err := svc.FetchBoardData(ctx, cfg.Project)
	if err != nil {
		return err
	}

	board := operations.BuildFromCanonical(cfg.Project, data.Issues, data.Statuses)
	switch output {
	case "text":
		printBoard(cmd.OutOrStdout(), &board)
		return nil
	case "yaml":
		return printBoardYAML(cmd.OutOrStdout(), &board)
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func newMoveCmd(flags *config.CLIFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "move <issue-id> <status>",
		Short: "Move an issue to another status column",
		Long:  "Sets the status of an issue. The status is a column key as shown by \"issueboard show\".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(cmd, *flags, args[0], args[1])
		},
	}
}

func runMove(cmd *cobra.Command, flags config.CLIFlags, issueID, status string) error {
	_, svc, err := connect(flags)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()
	if err := svc.UpdateIssueStatus(ctx, issueID, status); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", issueID, status)
	return nil
}

func newColumnsCmd(flags *config.CLIFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Column management commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <column-id>...",
		Short: "Set the display order of the columns",
		Long:  "Persists a new column order. Every column ID of the project must be given exactly once.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumnsReorder(cmd, *flags, args)
		},
	})
	return cmd
}

func runColumnsReorder(cmd *cobra.Command, flags config.CLIFlags, ids []string) error {
	cfg, svc, err := connect(flags)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()
	if err := svc.PersistColumnOrder(ctx, cfg.Project, ids); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Reordered %d columns\n", len(ids))
	return nil
}
