// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// MaxPerPage is the largest page the GitHub API returns in one response.
const MaxPerPage = 100

// Config is the container for app configuration.
type Config struct {
	// GithubToken - static access token (optional, rate limit is lower without it)
	GithubToken string `envconfig:"GITHUB_TOKEN" default:""`

	// User - GitHub login whose repositories are shown
	User string `envconfig:"PORTFOLIO_USER" default:""`

	// GithubAPIURL - base address of the rest api, with trailing slash
	GithubAPIURL string `envconfig:"PORTFOLIO_GITHUB_API_URL" default:"https://api.github.com/"`

	// PerPage - size of the single repository page, at most 100
	PerPage int `envconfig:"PORTFOLIO_PER_PAGE" default:"100"`

	// FilterDebounce - quiet interval before a typed query is applied
	FilterDebounce time.Duration `envconfig:"PORTFOLIO_FILTER_DEBOUNCE" default:"180ms"`

	// StatsConcurrency - maximum number of parallel statistics requests
	StatsConcurrency int `envconfig:"PORTFOLIO_STATS_CONCURRENCY" default:"4"`

	// StatsRateLimit - maximum frequency of statistics requests per second
	StatsRateLimit float64 `envconfig:"PORTFOLIO_STATS_RATE_LIMIT" default:"5"`
}

// Load reads the configuration from environment variables and normalizes it.
func Load() (*Config, error) {
	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	conf.normalize()
	return &conf, nil
}

func (c *Config) normalize() {
	if c.PerPage < 1 || c.PerPage > MaxPerPage {
		c.PerPage = MaxPerPage
	}
	if c.StatsConcurrency < 1 {
		c.StatsConcurrency = 1
	}
	if c.FilterDebounce < 0 {
		c.FilterDebounce = 0
	}
	if c.GithubAPIURL != "" && c.GithubAPIURL[len(c.GithubAPIURL)-1] != '/' {
		c.GithubAPIURL += "/"
	}
}
