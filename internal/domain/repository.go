// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"strings"
	"time"
)

// Repository is one public repository of a GitHub user.
// It is created by decoding a single API response and never modified afterwards.
// Optional fields are nil when the API did not provide them.
type Repository struct {
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	Language       *string   `json:"language,omitempty"`
	StarCount      int       `json:"stars"`
	ForkCount      int       `json:"forks"`
	OpenIssueCount int       `json:"open_issues"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	URL            string    `json:"url"`
	Fork           bool      `json:"fork"`
}

// IssuesURL returns the issue tracker link of the repository.
func (r Repository) IssuesURL() string {
	return r.URL + "/issues"
}

// SortKey selects the ordering applied to the repository list.
type SortKey string

const (
	SortUpdated SortKey = "updated"
	SortStars   SortKey = "stars"
	SortName    SortKey = "name"
)

// SortKeys lists the selectable orderings, default first.
var SortKeys = []SortKey{SortUpdated, SortStars, SortName}

// ParseSortKey maps s to a SortKey. Unset or unknown values fall back to SortUpdated.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortStars:
		return SortStars
	case SortName:
		return SortName
	default:
		return SortUpdated
	}
}

// Label is the human readable name of the ordering.
func (k SortKey) Label() string {
	switch k {
	case SortStars:
		return "Most stars"
	case SortName:
		return "Name"
	default:
		return "Recently updated"
	}
}
