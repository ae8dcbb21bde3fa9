package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-portfolio/internal/config"
	"github.com/naka-gawa/github-portfolio/internal/gateway"
	"github.com/naka-gawa/github-portfolio/internal/usecase"
)

// services is the dependency graph shared by all commands.
type services struct {
	conf       *config.Config
	gateway    *gateway.GitHubGateway
	aggregator *usecase.Aggregator
}

// loadConfig reads the environment and applies the flags that override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	conf, err := config.Load()
	if err != nil {
		return nil, err
	}
	if user, _ := cmd.Flags().GetString("user"); user != "" {
		conf.User = user
	}
	return conf, nil
}

func newServices(cmd *cobra.Command, logger *log.Logger) (*services, error) {
	conf, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if conf.User == "" {
		logger.Warn("No user given; pass --user or set PORTFOLIO_USER")
	}
	if conf.GithubToken == "" {
		logger.Debug("GITHUB_TOKEN is not set; using unauthenticated requests")
	}

	githubGateway, err := gateway.NewGitHubGateway(conf, logger)
	if err != nil {
		return nil, fmt.Errorf("creating GitHub gateway: %w", err)
	}
	// Per-repository language calls are only affordable with a token.
	aggregator := usecase.NewAggregator(githubGateway, logger, conf.StatsConcurrency, conf.GithubToken != "")

	return &services{conf: conf, gateway: githubGateway, aggregator: aggregator}, nil
}
