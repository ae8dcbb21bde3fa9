// Package usecase contains the business logic of the application.
package usecase

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-portfolio/internal/domain"
	"github.com/naka-gawa/github-portfolio/internal/gateway"
)

const (
	// maxLanguages is the number of named segments in the language breakdown.
	maxLanguages  = 8
	otherLanguage = "Other"
)

// Aggregator is the use case for aggregating profile statistics.
// Every remote statistic is best-effort: a failed call leaves its field unset.
type Aggregator struct {
	fetcher     gateway.Fetcher
	logger      *log.Logger
	concurrency int

	// languageBytes switches the breakdown from primary languages to per-repository byte counts.
	languageBytes bool
	now           func() time.Time
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, concurrency int, languageBytes bool) *Aggregator {
	return &Aggregator{
		fetcher:       fetcher,
		logger:        logger,
		concurrency:   max(concurrency, 1),
		languageBytes: languageBytes,
		now:           time.Now,
	}
}

// Aggregate computes the statistics of user from the already fetched repositories
// and a set of concurrent, independent requests. It never fails.
func (a *Aggregator) Aggregate(ctx context.Context, user string, repos []domain.Repository) *domain.ProfileStats {
	a.logger.Debug("Usecase: Starting statistics aggregation...", "user", user, "repos", len(repos))
	result := summarize(user, repos)

	var days []domain.ContributionDay
	var daysErr error
	languageWeights := make([]map[string]int, len(repos))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.concurrency)

	count := func(name string, dst **int, fetch func(context.Context, string) (int, error)) {
		eg.Go(func() error {
			n, err := fetch(egCtx, user)
			if err != nil {
				a.logger.Warn("Statistic unavailable", "stat", name, "err", err)
				return nil
			}
			*dst = &n
			return nil
		})
	}
	count("commits", &result.Commits, a.fetcher.FetchCommitCount)
	count("pull_requests", &result.PullRequests, a.fetcher.FetchPullRequestCount)
	count("issues", &result.Issues, a.fetcher.FetchIssueCount)

	eg.Go(func() error {
		days, daysErr = a.fetcher.FetchContributionDays(egCtx, user)
		if daysErr != nil {
			a.logger.Warn("Statistic unavailable", "stat", "streaks", "err", daysErr)
		}
		return nil
	})

	if a.languageBytes {
		for i, r := range repos {
			if r.Fork {
				continue
			}
			eg.Go(func() error {
				weights, err := a.fetcher.FetchLanguages(egCtx, user, r.Name)
				if err != nil {
					a.logger.Warn("Languages unavailable", "repo", r.Name, "err", err)
					return nil
				}
				languageWeights[i] = weights
				return nil
			})
		}
	}

	_ = eg.Wait()

	if daysErr == nil && len(days) > 0 {
		current, longest := contributionStreaks(days, a.now())
		result.CurrentStreak = &current
		result.LongestStreak = &longest
	}

	merged := make(map[string]int)
	for _, weights := range languageWeights {
		for name, n := range weights {
			merged[name] += n
		}
	}
	if len(merged) == 0 {
		merged = primaryLanguageCounts(repos)
	}
	result.Languages = languageShares(merged)

	a.logger.Debug("Usecase: Aggregation complete.", "user", user)
	return result
}

// summarize computes the totals that need no extra request.
func summarize(user string, repos []domain.Repository) *domain.ProfileStats {
	result := &domain.ProfileStats{User: user, PublicRepos: len(repos)}
	starCounts := make(stats.Float64Data, 0, len(repos))
	for _, r := range repos {
		result.TotalStars += r.StarCount
		result.TotalForks += r.ForkCount
		starCounts = append(starCounts, float64(r.StarCount))
	}
	if median, err := starCounts.Median(); err == nil {
		result.MedianStars = median
	}
	return result
}

func primaryLanguageCounts(repos []domain.Repository) map[string]int {
	counts := make(map[string]int)
	for _, r := range repos {
		if r.Fork || r.Language == nil || *r.Language == "" {
			continue
		}
		counts[*r.Language]++
	}
	return counts
}

// languageShares orders languages by weight and folds the tail into "Other".
// Percentages are rounded to one decimal.
func languageShares(weights map[string]int) []domain.LanguageShare {
	shares := make([]domain.LanguageShare, 0, len(weights))
	values := make(stats.Float64Data, 0, len(weights))
	for name, w := range weights {
		if w <= 0 {
			continue
		}
		shares = append(shares, domain.LanguageShare{Name: name, Weight: w})
		values = append(values, float64(w))
	}
	total, err := values.Sum()
	if err != nil || total == 0 {
		return []domain.LanguageShare{}
	}

	slices.SortFunc(shares, func(a, b domain.LanguageShare) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(shares) > maxLanguages {
		other := domain.LanguageShare{Name: otherLanguage}
		for _, s := range shares[maxLanguages-1:] {
			other.Weight += s.Weight
		}
		shares = append(shares[:maxLanguages-1], other)
	}

	for i := range shares {
		pct, _ := stats.Round(float64(shares[i].Weight)/total*100, 1)
		shares[i].Percent = pct
	}
	return shares
}

// contributionStreaks returns the current and the longest run of consecutive days
// with at least one contribution. The current run may end yesterday when nothing
// was contributed today yet.
func contributionStreaks(days []domain.ContributionDay, now time.Time) (current, longest int) {
	sorted := slices.Clone(days)
	slices.SortFunc(sorted, func(a, b domain.ContributionDay) int {
		return a.Date.Compare(b.Date)
	})

	var run int
	var prev time.Time
	for i, d := range sorted {
		if i > 0 && !dateOf(d.Date).Equal(dateOf(prev).AddDate(0, 0, 1)) {
			run = 0
		}
		if d.Count > 0 {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
		prev = d.Date
	}

	today := dateOf(now)
	expected := today
	for i := len(sorted) - 1; i >= 0; i-- {
		date := dateOf(sorted[i].Date)
		if date.After(today) {
			continue
		}
		if current == 0 && expected.Equal(today) && (date.Before(today) || sorted[i].Count == 0) {
			expected = today.AddDate(0, 0, -1)
			if date.Equal(today) {
				continue
			}
		}
		if !date.Equal(expected) || sorted[i].Count == 0 {
			break
		}
		current++
		expected = expected.AddDate(0, 0, -1)
	}
	return current, longest
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
