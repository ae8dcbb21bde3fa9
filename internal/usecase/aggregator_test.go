package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/naka-gawa/github-portfolio/internal/domain"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchRepositories(ctx context.Context, user string) ([]domain.Repository, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *mockFetcher) FetchLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *mockFetcher) FetchCommitCount(ctx context.Context, user string) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

func (m *mockFetcher) FetchPullRequestCount(ctx context.Context, user string) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

func (m *mockFetcher) FetchIssueCount(ctx context.Context, user string) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

func (m *mockFetcher) FetchContributionDays(ctx context.Context, user string) ([]domain.ContributionDay, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContributionDay), args.Error(1)
}

func intPtr(n int) *int {
	return &n
}

func TestAggregator_Aggregate(t *testing.T) {
	repos := []domain.Repository{
		{Name: "api", Language: str("Go"), StarCount: 10, ForkCount: 2},
		{Name: "web", Language: str("TypeScript"), StarCount: 3, ForkCount: 1},
		{Name: "cli", Language: str("Go"), StarCount: 1},
		{Name: "upstream", Language: str("C"), StarCount: 100, Fork: true},
	}
	now := time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)
	calendar := []domain.ContributionDay{
		{Date: day("2024-05-30"), Count: 2},
		{Date: day("2024-05-31"), Count: 0},
		{Date: day("2024-06-01"), Count: 1},
		{Date: day("2024-06-02"), Count: 5},
		{Date: day("2024-06-03"), Count: 0},
	}

	testCases := []struct {
		name          string
		languageBytes bool
		setupMock     func(m *mockFetcher)
		expected      *domain.ProfileStats
	}{
		{
			name:          "happy path - all statistics available",
			languageBytes: true,
			setupMock: func(m *mockFetcher) {
				m.On("FetchCommitCount", mock.Anything, "octo").Return(120, nil)
				m.On("FetchPullRequestCount", mock.Anything, "octo").Return(14, nil)
				m.On("FetchIssueCount", mock.Anything, "octo").Return(6, nil)
				m.On("FetchContributionDays", mock.Anything, "octo").Return(calendar, nil)
				m.On("FetchLanguages", mock.Anything, "octo", "api").Return(map[string]int{"Go": 600, "Shell": 100}, nil)
				m.On("FetchLanguages", mock.Anything, "octo", "web").Return(map[string]int{"TypeScript": 200}, nil)
				m.On("FetchLanguages", mock.Anything, "octo", "cli").Return(map[string]int{"Go": 100}, nil)
			},
			expected: &domain.ProfileStats{
				User:          "octo",
				PublicRepos:   4,
				TotalStars:    114,
				TotalForks:    3,
				MedianStars:   6.5,
				Commits:       intPtr(120),
				PullRequests:  intPtr(14),
				Issues:        intPtr(6),
				CurrentStreak: intPtr(2),
				LongestStreak: intPtr(2),
				Languages: []domain.LanguageShare{
					{Name: "Go", Weight: 700, Percent: 70},
					{Name: "TypeScript", Weight: 200, Percent: 20},
					{Name: "Shell", Weight: 100, Percent: 10},
				},
			},
		},
		{
			name:          "partial failure - remote statistics are N/A, totals remain",
			languageBytes: true,
			setupMock: func(m *mockFetcher) {
				m.On("FetchCommitCount", mock.Anything, "octo").Return(0, errors.New("rate limited"))
				m.On("FetchPullRequestCount", mock.Anything, "octo").Return(0, errors.New("rate limited"))
				m.On("FetchIssueCount", mock.Anything, "octo").Return(6, nil)
				m.On("FetchContributionDays", mock.Anything, "octo").Return(nil, errors.New("no token"))
				m.On("FetchLanguages", mock.Anything, "octo", mock.Anything).Return(nil, errors.New("rate limited"))
			},
			expected: &domain.ProfileStats{
				User:        "octo",
				PublicRepos: 4,
				TotalStars:  114,
				TotalForks:  3,
				MedianStars: 6.5,
				Issues:      intPtr(6),
				Languages: []domain.LanguageShare{
					{Name: "Go", Weight: 2, Percent: 66.7},
					{Name: "TypeScript", Weight: 1, Percent: 33.3},
				},
			},
		},
		{
			name:          "primary languages without byte counts",
			languageBytes: false,
			setupMock: func(m *mockFetcher) {
				m.On("FetchCommitCount", mock.Anything, "octo").Return(1, nil)
				m.On("FetchPullRequestCount", mock.Anything, "octo").Return(2, nil)
				m.On("FetchIssueCount", mock.Anything, "octo").Return(3, nil)
				m.On("FetchContributionDays", mock.Anything, "octo").Return([]domain.ContributionDay{}, nil)
			},
			expected: &domain.ProfileStats{
				User:         "octo",
				PublicRepos:  4,
				TotalStars:   114,
				TotalForks:   3,
				MedianStars:  6.5,
				Commits:      intPtr(1),
				PullRequests: intPtr(2),
				Issues:       intPtr(3),
				Languages: []domain.LanguageShare{
					{Name: "Go", Weight: 2, Percent: 66.7},
					{Name: "TypeScript", Weight: 1, Percent: 33.3},
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			tc.setupMock(fetcher)

			aggregator := NewAggregator(fetcher, log.New(io.Discard), 2, tc.languageBytes)
			aggregator.now = func() time.Time { return now }

			result := aggregator.Aggregate(context.Background(), "octo", repos)

			assert.Equal(t, tc.expected, result)
			fetcher.AssertExpectations(t)
			fetcher.AssertNotCalled(t, "FetchLanguages", mock.Anything, "octo", "upstream")
		})
	}
}

func TestAggregator_Aggregate_EmptyList(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchCommitCount", mock.Anything, "octo").Return(0, nil)
	fetcher.On("FetchPullRequestCount", mock.Anything, "octo").Return(0, nil)
	fetcher.On("FetchIssueCount", mock.Anything, "octo").Return(0, nil)
	fetcher.On("FetchContributionDays", mock.Anything, "octo").Return(nil, errors.New("no token"))

	result := NewAggregator(fetcher, log.New(io.Discard), 4, true).Aggregate(context.Background(), "octo", nil)

	assert.Equal(t, 0, result.PublicRepos)
	assert.Zero(t, result.MedianStars)
	assert.Empty(t, result.Languages)
	assert.Nil(t, result.CurrentStreak)
}

func TestPrimaryLanguageCounts(t *testing.T) {
	repos := []domain.Repository{
		{Name: "api", Language: str("Go")},
		{Name: "cli", Language: str("Go")},
		{Name: "blank", Language: str("")},
		{Name: "none"},
		{Name: "upstream", Language: str("C"), Fork: true},
	}

	assert.Equal(t, map[string]int{"Go": 2}, primaryLanguageCounts(repos))
}

func TestLanguageShares_FoldsTail(t *testing.T) {
	weights := map[string]int{
		"A": 100, "B": 90, "C": 80, "D": 70, "E": 60,
		"F": 50, "G": 40, "H": 30, "I": 20, "J": 10,
	}

	shares := languageShares(weights)

	assert.Len(t, shares, maxLanguages)
	last := shares[len(shares)-1]
	assert.Equal(t, otherLanguage, last.Name)
	assert.Equal(t, 60, last.Weight)
	assert.Equal(t, "A", shares[0].Name)
	assert.InDelta(t, 18.2, shares[0].Percent, 0.001)
}

func TestContributionStreaks(t *testing.T) {
	testCases := []struct {
		name            string
		days            []domain.ContributionDay
		now             time.Time
		expectedCurrent int
		expectedLongest int
	}{
		{
			name:            "empty calendar",
			now:             day("2024-06-03"),
			expectedCurrent: 0,
			expectedLongest: 0,
		},
		{
			name: "run ending today",
			days: []domain.ContributionDay{
				{Date: day("2024-06-01"), Count: 1},
				{Date: day("2024-06-02"), Count: 1},
				{Date: day("2024-06-03"), Count: 4},
			},
			now:             day("2024-06-03").Add(20 * time.Hour),
			expectedCurrent: 3,
			expectedLongest: 3,
		},
		{
			name: "today without contributions keeps yesterday's run",
			days: []domain.ContributionDay{
				{Date: day("2024-06-01"), Count: 1},
				{Date: day("2024-06-02"), Count: 1},
				{Date: day("2024-06-03"), Count: 0},
			},
			now:             day("2024-06-03"),
			expectedCurrent: 2,
			expectedLongest: 2,
		},
		{
			name: "calendar ending yesterday",
			days: []domain.ContributionDay{
				{Date: day("2024-06-02"), Count: 3},
			},
			now:             day("2024-06-03"),
			expectedCurrent: 1,
			expectedLongest: 1,
		},
		{
			name: "broken run",
			days: []domain.ContributionDay{
				{Date: day("2024-05-28"), Count: 1},
				{Date: day("2024-05-29"), Count: 1},
				{Date: day("2024-05-30"), Count: 1},
				{Date: day("2024-05-31"), Count: 0},
				{Date: day("2024-06-01"), Count: 0},
				{Date: day("2024-06-02"), Count: 0},
				{Date: day("2024-06-03"), Count: 2},
			},
			now:             day("2024-06-03"),
			expectedCurrent: 1,
			expectedLongest: 3,
		},
		{
			name: "gap in calendar resets run",
			days: []domain.ContributionDay{
				{Date: day("2024-05-01"), Count: 1},
				{Date: day("2024-05-03"), Count: 1},
			},
			now:             day("2024-06-03"),
			expectedCurrent: 0,
			expectedLongest: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			current, longest := contributionStreaks(tc.days, tc.now)
			assert.Equal(t, tc.expectedCurrent, current)
			assert.Equal(t, tc.expectedLongest, longest)
		})
	}
}
