package domain

import "time"

// ProfileStats holds the aggregate numbers shown above the repository grid.
// Counters that could not be fetched are nil and rendered as "N/A".
type ProfileStats struct {
	User          string          `json:"user"`
	PublicRepos   int             `json:"public_repos"`
	TotalStars    int             `json:"total_stars"`
	TotalForks    int             `json:"total_forks"`
	MedianStars   float64         `json:"median_stars"`
	Commits       *int            `json:"commits"`
	PullRequests  *int            `json:"pull_requests"`
	Issues        *int            `json:"issues"`
	CurrentStreak *int            `json:"current_streak"`
	LongestStreak *int            `json:"longest_streak"`
	Languages     []LanguageShare `json:"languages"`
}

// LanguageShare is one segment of the language breakdown bar.
// Weight is a byte count when per-repository languages were fetched,
// otherwise the number of repositories with that primary language.
type LanguageShare struct {
	Name    string  `json:"name"`
	Weight  int     `json:"weight"`
	Percent float64 `json:"percent"`
}

// ContributionDay is one day of a user's contribution calendar.
type ContributionDay struct {
	Date  time.Time
	Count int
}
