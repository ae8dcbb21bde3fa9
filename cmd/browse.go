package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-portfolio/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	var (
		logFile  string
		debounce time.Duration
		noStats  bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browses the repositories in an interactive terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// The terminal belongs to the UI; logs go to a file or nowhere.
			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				w = f
			}
			logger := newLogger(w, loggerFromContext(ctx).GetLevel())
			ctx = withLogger(ctx, logger)

			svc, err := newServices(cmd, logger)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debounce") {
				svc.conf.FilterDebounce = max(debounce, 0)
			}

			opts := tui.Options{
				User:     svc.conf.User,
				Debounce: svc.conf.FilterDebounce,
				Logger:   logger,
			}
			if !noStats {
				opts.Stats = svc.aggregator
			}

			p := tea.NewProgram(tui.New(ctx, svc.gateway, opts),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running terminal UI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Append logs to this file while the UI is running")
	cmd.Flags().DurationVar(&debounce, "debounce", 180*time.Millisecond, "Quiet interval before a typed filter is applied (overrides PORTFOLIO_FILTER_DEBOUNCE)")
	cmd.Flags().BoolVar(&noStats, "no-stats", false, "Skip the profile statistics requests")

	return cmd
}
