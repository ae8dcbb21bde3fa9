package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-portfolio/internal/domain"
	"github.com/naka-gawa/github-portfolio/internal/site"
	"github.com/naka-gawa/github-portfolio/internal/view"
)

func newBuildCmd() *cobra.Command {
	var (
		out     string
		query   string
		sortKey string
		noStats bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Writes the portfolio as a static HTML page",
		Long: `Writes a self-contained HTML page with one card per repository and a
detail overlay for each card. A failed fetch still produces a page, showing
the failure placeholder instead of the cards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			svc, err := newServices(cmd, logger)
			if err != nil {
				return err
			}

			state := view.NewState()
			prog := newProgress(logger)
			repos, fetchErr := svc.gateway.FetchRepositories(ctx, svc.conf.User)
			state.CompleteFetch(repos, fetchErr)
			if fetchErr != nil {
				logger.Error("Failed to load repositories", "err", fetchErr)
			} else {
				prog.done(fmt.Sprintf("Fetched %d repositories", len(repos)))
			}
			state.SetQuery(query)
			state.SetSortKey(domain.ParseSortKey(sortKey))

			var stats *domain.ProfileStats
			if fetchErr == nil && !noStats {
				stats = svc.aggregator.Aggregate(ctx, svc.conf.User, state.All())
			}

			page := site.Build(svc.conf.User, state, stats, time.Now())
			if err := writePage(cmd, out, page); err != nil {
				return err
			}
			logger.Info("Wrote portfolio", "path", out, "cards", len(page.Cards))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "index.html", `Output file, or "-" for standard output`)
	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive filter on name, description and language")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", string(domain.SortUpdated), "Ordering: updated, stars or name")
	cmd.Flags().BoolVar(&noStats, "no-stats", false, "Skip the profile statistics requests")

	return cmd
}

func writePage(cmd *cobra.Command, path string, page site.Page) error {
	if path == "-" {
		return site.Render(cmd.OutOrStdout(), page)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := site.Render(w, page); err != nil {
		f.Close()
		return err
	}
	if err := flushAndClose(w, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func flushAndClose(w *bufio.Writer, c io.Closer) error {
	if err := w.Flush(); err != nil {
		c.Close()
		return err
	}
	return c.Close()
}
