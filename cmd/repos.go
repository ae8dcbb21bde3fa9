package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-portfolio/internal/domain"
	"github.com/naka-gawa/github-portfolio/internal/usecase"
)

func newReposCmd() *cobra.Command {
	var (
		query   string
		sortKey string
	)

	cmd := &cobra.Command{
		Use:   "repos",
		Short: "Prints the filtered and ordered repository list as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			svc, err := newServices(cmd, logger)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			repos, err := svc.gateway.FetchRepositories(ctx, svc.conf.User)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %d repositories", len(repos)))

			ordered := usecase.SelectAndOrder(repos, query, domain.ParseSortKey(sortKey))
			return writeJSON(cmd, ordered)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive filter on name, description and language")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", string(domain.SortUpdated), "Ordering: updated, stars or name")

	return cmd
}

// writeJSON prints v as indented JSON on the command's output.
func writeJSON(cmd *cobra.Command, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result to JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}
