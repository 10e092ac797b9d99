package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"issueboard/internal/config"
	"issueboard/internal/kanban/models"
	"issueboard/internal/kanban/store"

	"github.com/spf13/cobra"
)

func newInitCmd(flags *config.CLIFlags) *cobra.Command {
	var sample bool

	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Create a project with the default status columns",
		Long: "Creates the configured project with the Backlog, To Do, In Progress, Done and\n" +
			"Cancelled columns. The display name defaults to the project ID.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runInit(cmd, *flags, name, sample)
		},
	}

	cmd.Flags().BoolVar(&sample, "sample", false, "add a few sample issues")
	return cmd
}

func runInit(cmd *cobra.Command, flags config.CLIFlags, name string, sample bool) error {
	cfg, svc, err := connect(flags)
	if err != nil {
		return err
	}
	defer svc.Close()

	if name == "" {
		name = cfg.Project
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	if err := svc.InitProject(ctx, cfg.Project, name); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created project %s (%s)\n", cfg.Project, cfg.Backend)

	if sample {
		created, err := addSampleIssues(ctx, svc, cfg.Project)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Added %d sample issues\n", created)
	}
	return nil
}

type sampleIssue struct {
	card   models.Card
	parent int // index of the parent sample, -1 for none
}

var sampleIssues = []sampleIssue{
	{models.Card{Title: "Set up the project", Status: "done", Priority: 2}, -1},
	{models.Card{Title: "Write the first feature", Status: "in_progress", Priority: 1, Labels: []string{"feature"}}, -1},
	{models.Card{Title: "Cover the feature with tests", Status: "todo", Labels: []string{"testing"}}, 1},
	{models.Card{Title: "Document the release process", Status: "backlog", Priority: 3}, -1},
}

func addSampleIssues(ctx context.Context, svc store.Service, projectID string) (int, error) {
	var ids []string
	var taken []models.Card
	for _, sample := range sampleIssues {
		card := sample.card
		if sample.parent >= 0 {
			card.ParentID = ids[sample.parent]
		}
		id, err := addIssue(ctx, svc, projectID, card, taken)
		if err != nil {
			return len(ids), err
		}
		ids = append(ids, id)
		taken = append(taken, models.Card{ID: id})
	}
	return len(ids), nil
}

func newProjectsCmd(flags *config.CLIFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the projects of the configured backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjects(cmd, *flags)
		},
	}
}

func runProjects(cmd *cobra.Command, flags config.CLIFlags) error {
	cfg, svc, err := connect(flags)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()
	projects, err := svc.ListProjects(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects found.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tNAME\tISSUES")
	for _, p := range projects {
		marker := " "
		if p.ID == cfg.Project {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%d\n", marker, p.ID, p.Name, p.Issues)
	}
	return tw.Flush()
}

func newIssueCmd(flags *config.CLIFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue management commands",
	}
	cmd.AddCommand(newIssueAddCmd(flags))
	return cmd
}

func newIssueAddCmd(flags *config.CLIFlags) *cobra.Command {
	var (
		status   string
		priority int
		parentID string
		labels   []string
	)

	cmd := &cobra.Command{
		Use:   "add <title>...",
		Short: "Add an issue",
		Long:  "Adds an issue to the project with an auto-generated ID.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card := models.Card{
				Title:    strings.Join(args, " "),
				Status:   status,
				Priority: priority,
				ParentID: parentID,
				Labels:   labels,
			}
			return runIssueAdd(cmd, *flags, card)
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "todo", "status column key")
	cmd.Flags().IntVar(&priority, "priority", 0, "priority (1=urgent, 0=unset)")
	cmd.Flags().StringVar(&parentID, "parent", "", "parent issue ID")
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "labels (repeatable or comma-separated)")
	return cmd
}

func runIssueAdd(cmd *cobra.Command, flags config.CLIFlags, card models.Card) error {
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

	id, err := addIssue(ctx, svc, cfg.Project, card, data.Issues)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created issue %s\n", id)
	return nil
}

// maxIDAttempts bounds the search for an ID no other project has taken
const maxIDAttempts = 1000

// addIssue creates card under the next free PREFIX-N ID. IDs are unique
// across projects, so a project sharing the prefix pushes N further.
func addIssue(ctx context.Context, svc store.Service, projectID string, card models.Card, taken []models.Card) (string, error) {
	taken = append([]models.Card(nil), taken...)
	for i := 0; i < maxIDAttempts; i++ {
		card.ID = nextIssueID(projectID, taken)
		err := svc.CreateIssue(ctx, projectID, card)
		if err == nil {
			return card.ID, nil
		}
		if !errors.Is(err, models.ErrIssueExists) {
			return "", err
		}
		taken = append(taken, models.Card{ID: card.ID})
	}
	return "", fmt.Errorf("no free issue id for project %q", projectID)
}

// issuePrefix derives the issue ID prefix from a project ID: "web-app"
// gives "WEBAPP"
func issuePrefix(projectID string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(projectID) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "ISSUE"
	}
	return b.String()
}

// nextIssueID returns PREFIX-N, N being one past the highest number in use
func nextIssueID(projectID string, issues []models.Card) string {
	prefix := issuePrefix(projectID) + "-"
	highest := 0
	for _, issue := range issues {
		n, err := strconv.Atoi(strings.TrimPrefix(issue.ID, prefix))
		if err == nil && strings.HasPrefix(issue.ID, prefix) && n > highest {
			highest = n
		}
	}
	return prefix + strconv.Itoa(highest+1)
}
