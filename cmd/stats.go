package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Aggregates profile statistics and outputs them as JSON",
		Long: `Aggregates totals over the user's public repositories (stars, forks,
median stars, language breakdown) together with best-effort activity counts
(commits, pull requests, issues, contribution streaks). Counts that cannot be
retrieved are null.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			svc, err := newServices(cmd, logger)
			if err != nil {
				return err
			}

			repos, err := svc.gateway.FetchRepositories(ctx, svc.conf.User)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			stats := svc.aggregator.Aggregate(ctx, svc.conf.User, repos)
			prog.done(fmt.Sprintf("Aggregated statistics over %d repositories", len(repos)))

			return writeJSON(cmd, stats)
		},
	}
}
