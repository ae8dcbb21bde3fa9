// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Browse and publish a GitHub user's public repositories.",
		Long: `portfolio fetches the public repositories of a GitHub user and presents
them as a filterable, sortable set of cards: interactively in the terminal
(browse), as a static HTML page (build), or as JSON (repos, stats).

GITHUB_TOKEN is optional. Without it the API rate limit is lower and the
contribution streaks are not available.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), levelFor(verbose)))
			cmd.SetContext(ctx)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")
	root.PersistentFlags().StringP("user", "u", "", "GitHub user whose repositories are shown (overrides PORTFOLIO_USER)")

	root.AddCommand(newBrowseCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newReposCmd())
	root.AddCommand(newStatsCmd())

	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
