package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mr-Slippery/jirascope/internal/blockers"
	"github.com/Mr-Slippery/jirascope/internal/config"
	"github.com/Mr-Slippery/jirascope/internal/dot"
	"github.com/Mr-Slippery/jirascope/internal/jira"
	"github.com/Mr-Slippery/jirascope/internal/model"
	"github.com/Mr-Slippery/jirascope/internal/snapshot"
)

var (
	snapshotPath string
	offlinePath  string
)

var graphCmd = &cobra.Command{
	Use:   "graph <project> [component]",
	Short: "Render the component's blocking issues as a DOT digraph",
	Long: `Fetch a project's issues, find the issues of the given component that
block High/Highest priority or Major severity issues of other components,
and print the blocking relationships as a Graphviz digraph on stdout.
Root blockers (issues nothing blocks in turn) are drawn as triangles.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "record fetched issues into this bbolt file")
	graphCmd.Flags().StringVar(&offlinePath, "offline", "", "serve issues from a recorded snapshot instead of the tracker")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	project := args[0]
	component := ""
	if len(args) == 2 {
		component = args[1]
	}

	searcher, cleanup, err := buildSearcher()
	if err != nil {
		return err
	}
	defer cleanup()

	fetcher := jira.NewFetcher(searcher, cfg.Jira.PageSize, cfg.Jira.MaxIssues, logger)
	out := cmd.OutOrStdout()

	// Lookup set: the whole project plus any configured extra projects,
	// so cross-project blocks links can be resolved.
	lookup := model.NewIssueSet(nil)
	projects := append([]string{project}, cfg.Jira.ExtraProjects...)
	for _, p := range projects {
		jql := jira.ProjectQuery(p, "")
		dot.Comment(out, "JQL: %s", jql)
		issues, err := fetcher.SearchAll(ctx, jql)
		if err != nil {
			return fmt.Errorf("fetch %s issues: %w", p, err)
		}
		dot.Comment(out, "Found %d matching issues.", len(issues))
		for _, issue := range issues {
			lookup.Add(issue)
		}
	}

	// Check set: the issues whose outgoing blocks links we examine.
	checkJQL := jira.ProjectQuery(project, component)
	dot.Comment(out, "JQL: %s", checkJQL)
	checkIssues, err := fetcher.SearchAll(ctx, checkJQL)
	if err != nil {
		return fmt.Errorf("fetch %s issues: %w", project, err)
	}
	dot.Comment(out, "Found %d matching issues.", len(checkIssues))
	if component != "" {
		dot.Comment(out, "%d in %s", len(checkIssues), component)
	}
	check := model.NewIssueSet(checkIssues)

	rules := blockers.Rules{
		ResolvedStatuses:   cfg.Filter.ResolvedStatuses,
		RelevantPriorities: cfg.Filter.RelevantPriorities,
		RelevantSeverities: cfg.Filter.RelevantSeverities,
	}
	records, err := blockers.GetBlocked(check, lookup, component, rules)
	if err != nil {
		return err
	}

	renderer := dot.NewRenderer(cfg.Graph.Layout, cfg.Graph.Overlap, cfg.Graph.Sep)
	return renderer.Render(out, records)
}

// buildSearcher wires the query source for this run: a recorded snapshot
// in offline mode, otherwise the live client, optionally recording.
func buildSearcher() (jira.Searcher, func(), error) {
	noop := func() {}

	if offlinePath != "" {
		store, err := snapshot.Open(offlinePath)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { store.Close() }, nil
	}

	if err := requireConnection(); err != nil {
		return nil, noop, err
	}

	password, source, err := config.NewCredentialManager().Resolve(cfg.Jira.Username)
	if err != nil {
		return nil, noop, err
	}
	logger.WithField("source", source).Debug("credential resolved")

	client, err := jira.NewClient(cfg.Jira.Server, cfg.Jira.Username, password, cfg.Jira.RateLimit, cfg.Jira.SeverityField)
	if err != nil {
		return nil, noop, err
	}

	if snapshotPath == "" {
		return client, noop, nil
	}

	store, err := snapshot.Open(snapshotPath)
	if err != nil {
		return nil, noop, err
	}
	return &snapshot.Recorder{Searcher: client, Store: store}, func() { store.Close() }, nil
}
