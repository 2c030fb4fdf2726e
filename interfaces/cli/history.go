package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	domainconfig "github.com/felixgeelhaar/explore-go/domain/config"
	"github.com/felixgeelhaar/explore-go/domain/run"
)

// historyOptions holds options for the history command.
type historyOptions struct {
	dsn        string
	status     string
	scenario   string
	limit      int
	jsonOutput bool
}

// newHistoryCmd creates the history command.
func (a *App) newHistoryCmd() *cobra.Command {
	opts := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List persisted runs",
		Long: `List exploration runs persisted in a SQLite run store.

Examples:
  # List the most recent runs
  explore history --dsn file:explore.db

  # Only completed runs of a scenario
  explore history --dsn file:explore.db --status completed --scenario corridor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "SQLite data source name (required)")
	cmd.Flags().StringVar(&opts.status, "status", "", "Filter by status (running, completed, stalled, aborted)")
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", "Filter by scenario name substring")
	cmd.Flags().IntVar(&opts.limit, "limit", 20, "Maximum runs to list")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output runs as JSON")

	_ = cmd.MarkFlagRequired("dsn")

	return cmd
}

// listHistory lists runs matching the filter.
func (a *App) listHistory(cmd *cobra.Command, opts *historyOptions) error {
	stores, err := openStores(domainconfig.StorageConfig{Backend: "sqlite", DSN: opts.dsn})
	if err != nil {
		return err
	}
	defer stores.Close()

	filter := run.ListFilter{
		ScenarioPattern: opts.scenario,
		Limit:           opts.limit,
	}
	if opts.status != "" {
		filter.Status = []run.Status{run.Status(opts.status)}
	}

	runs, err := stores.Runs.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.stdout, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tSTATUS\tCOVERAGE\tTICKS\tSTARTED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f%%\t%d\t%s\n",
			r.ID, r.Scenario, r.Status, r.Coverage*100, r.Ticks,
			r.StartTime.Format(time.RFC3339))
	}
	return w.Flush()
}
