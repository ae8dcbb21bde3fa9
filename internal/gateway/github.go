// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-portfolio/internal/config"
	"github.com/naka-gawa/github-portfolio/internal/domain"
)

const dateLayout = "2006-01-02"

// ErrGraphQLUnavailable is returned by calls that need the GraphQL API when no token is configured.
var ErrGraphQLUnavailable = errors.New("graphql api requires a token")

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchRepositories(ctx context.Context, user string) ([]domain.Repository, error)
	FetchLanguages(ctx context.Context, owner, repo string) (map[string]int, error)
	FetchCommitCount(ctx context.Context, user string) (int, error)
	FetchPullRequestCount(ctx context.Context, user string) (int, error)
	FetchIssueCount(ctx context.Context, user string) (int, error)
	FetchContributionDays(ctx context.Context, user string) ([]domain.ContributionDay, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
//
// The repository list goes through repoClient, which never waits or re-issues
// requests. Statistics calls go through restClient, which is throttled and
// sleeps on secondary rate limits.
type GitHubGateway struct {
	repoClient    *github.Client
	restClient    *github.Client
	graphqlClient *githubv4.Client
	perPage       int
	logger        *log.Logger
}

var _ Fetcher = (*GitHubGateway)(nil)

// contributionsQuery fetches the contribution calendar of the last year.
type contributionsQuery struct {
	User struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				Weeks []struct {
					ContributionDays []struct {
						ContributionCount int
						Date              string
					}
				}
			}
		}
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// The token is optional; without it the GraphQL client is disabled.
func NewGitHubGateway(conf *config.Config, logger *log.Logger) (*GitHubGateway, error) {
	baseURL, err := url.Parse(conf.GithubAPIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid github api url: %w", err)
	}

	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(
		newLimitedTransport(http.DefaultTransport, conf.StatsRateLimit),
		github_ratelimit.WithSingleSleepLimit(time.Minute, nil),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	repoHTTPClient := newHTTPClient(conf.GithubToken, http.DefaultTransport)
	statsHTTPClient := newHTTPClient(conf.GithubToken, rateLimitWaiter)

	repoClient := github.NewClient(repoHTTPClient)
	repoClient.BaseURL = baseURL
	restClient := github.NewClient(statsHTTPClient)
	restClient.BaseURL = baseURL

	var graphqlClient *githubv4.Client
	if conf.GithubToken != "" {
		graphqlClient = githubv4.NewEnterpriseClient(graphqlEndpoint(conf.GithubAPIURL), statsHTTPClient)
	}

	return &GitHubGateway{
		repoClient:    repoClient,
		restClient:    restClient,
		graphqlClient: graphqlClient,
		perPage:       conf.PerPage,
		logger:        logger,
	}, nil
}

func newHTTPClient(token string, base http.RoundTripper) *http.Client {
	if token == "" {
		return &http.Client{Transport: base}
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   base,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		},
	}
}

// graphqlEndpoint derives the GraphQL address from the REST base address.
// GitHub Enterprise serves REST under /api/v3/ and GraphQL under /api/graphql.
func graphqlEndpoint(restURL string) string {
	base := strings.TrimSuffix(restURL, "/")
	base = strings.TrimSuffix(base, "/v3")
	return base + "/graphql"
}

// FetchRepositories returns one page of the user's public repositories,
// most recently updated first, in the order the API returned them.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, user string) ([]domain.Repository, error) {
	if strings.TrimSpace(user) == "" {
		return nil, &domain.FetchError{User: user, Reason: "user must not be empty"}
	}

	g.logger.Debug("Fetching repositories", "user", user, "per_page", g.perPage)
	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: g.perPage},
	}
	repos, resp, err := g.repoClient.Repositories.ListByUser(ctx, user, opts)
	if err != nil {
		return nil, newFetchError(user, resp, err)
	}

	result := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		if r == nil {
			continue
		}
		result = append(result, toRepository(r))
	}
	g.logger.Debug("Fetched repositories", "user", user, "count", len(result))
	return result, nil
}

func newFetchError(user string, resp *github.Response, err error) *domain.FetchError {
	fe := &domain.FetchError{User: user, Reason: err.Error(), Err: err}
	if resp == nil || resp.Response == nil {
		return fe
	}
	fe.StatusCode = resp.StatusCode
	fe.Reason = http.StatusText(resp.StatusCode)
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Message != "" {
		fe.Reason = errResp.Message
	}
	return fe
}

// toRepository validates one API record into the domain shape.
// Missing optional fields stay absent.
func toRepository(r *github.Repository) domain.Repository {
	return domain.Repository{
		Name:           r.GetName(),
		Description:    optionalString(r.Description),
		Language:       optionalString(r.Language),
		StarCount:      r.GetStargazersCount(),
		ForkCount:      r.GetForksCount(),
		OpenIssueCount: r.GetOpenIssuesCount(),
		CreatedAt:      r.GetCreatedAt().Time,
		UpdatedAt:      r.GetUpdatedAt().Time,
		URL:            r.GetHTMLURL(),
		Fork:           r.GetFork(),
	}
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// FetchLanguages returns the number of bytes per language of one repository.
func (g *GitHubGateway) FetchLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	languages, _, err := g.restClient.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages of %s/%s: %w", owner, repo, err)
	}
	return languages, nil
}

// FetchCommitCount returns the number of commits authored by the user.
func (g *GitHubGateway) FetchCommitCount(ctx context.Context, user string) (int, error) {
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}
	result, _, err := g.restClient.Search.Commits(ctx, "author:"+user, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to search commits with REST API: %w", err)
	}
	return result.GetTotal(), nil
}

// FetchPullRequestCount returns the number of pull requests opened by the user.
func (g *GitHubGateway) FetchPullRequestCount(ctx context.Context, user string) (int, error) {
	return g.searchIssueTotal(ctx, fmt.Sprintf("author:%s type:pr", user))
}

// FetchIssueCount returns the number of issues opened by the user.
func (g *GitHubGateway) FetchIssueCount(ctx context.Context, user string) (int, error) {
	return g.searchIssueTotal(ctx, fmt.Sprintf("author:%s type:issue", user))
}

func (g *GitHubGateway) searchIssueTotal(ctx context.Context, query string) (int, error) {
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}
	result, _, err := g.restClient.Search.Issues(ctx, query, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to search issues for %q: %w", query, err)
	}
	return result.GetTotal(), nil
}

// FetchContributionDays returns the user's contribution calendar in chronological order.
func (g *GitHubGateway) FetchContributionDays(ctx context.Context, user string) ([]domain.ContributionDay, error) {
	if g.graphqlClient == nil {
		return nil, ErrGraphQLUnavailable
	}

	var q contributionsQuery
	variables := map[string]interface{}{"login": githubv4.String(user)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for contributions: %w", err)
	}

	var days []domain.ContributionDay
	for _, week := range q.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			date, err := time.Parse(dateLayout, day.Date)
			if err != nil {
				g.logger.Debug("Skipping contribution day with invalid date", "date", day.Date, "err", err)
				continue
			}
			days = append(days, domain.ContributionDay{Date: date, Count: day.ContributionCount})
		}
	}
	return days, nil
}
