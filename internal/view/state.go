// Package view holds the presentation state of the portfolio and turns it into
// view models. It knows nothing about terminals or HTML; the tui and site
// packages render what it computes.
package view

import (
	"slices"

	"github.com/naka-gawa/github-portfolio/internal/domain"
	"github.com/naka-gawa/github-portfolio/internal/usecase"
)

// Status is the lifecycle of the repository list.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

// Placeholder replaces the whole card collection when there is nothing to show.
type Placeholder string

const (
	PlaceholderNone      Placeholder = ""
	PlaceholderLoading   Placeholder = "Loading repositories…"
	PlaceholderFailed    Placeholder = "Could not load repositories. Please try again later."
	PlaceholderNoMatches Placeholder = "No matching repositories."
)

// State is the single presentation state of the portfolio.
// Each mutation source has exactly one entry point: CompleteFetch, SetQuery
// and SetSortKey, plus Select and Dismiss for the detail overlay.
type State struct {
	all      []domain.Repository
	query    string
	sortKey  domain.SortKey
	selected *domain.Repository
	status   Status
	err      error
}

// NewState returns a state that waits for the first fetch, ordered by update time.
func NewState() *State {
	return &State{
		all:     []domain.Repository{},
		sortKey: domain.SortUpdated,
		status:  StatusLoading,
	}
}

// BeginLoad marks a fetch as in flight.
func (s *State) BeginLoad() {
	s.status = StatusLoading
	s.err = nil
}

// CompleteFetch stores the result of a fetch. The list is replaced as a whole;
// on error it becomes empty. A selection that no longer exists is cleared.
func (s *State) CompleteFetch(repos []domain.Repository, err error) {
	if err != nil {
		s.all = []domain.Repository{}
		s.status = StatusFailed
		s.err = err
		s.selected = nil
		return
	}

	all := slices.Clone(repos)
	if all == nil {
		all = []domain.Repository{}
	}
	s.all = all
	s.status = StatusReady
	s.err = nil
	if s.selected != nil && !s.Select(s.selected.Name) {
		s.selected = nil
	}
}

// SetQuery replaces the active filter text.
func (s *State) SetQuery(q string) {
	s.query = q
}

// SetSortKey replaces the active ordering. Unknown keys order by update time.
func (s *State) SetSortKey(k domain.SortKey) {
	s.sortKey = domain.ParseSortKey(string(k))
}

// Select opens the detail of the repository called name.
// It reports false, leaving the selection untouched, when there is no such repository.
func (s *State) Select(name string) bool {
	for _, r := range s.all {
		if r.Name == name {
			selected := r
			s.selected = &selected
			return true
		}
	}
	return false
}

// Dismiss closes the detail. Dismissing a closed detail does nothing.
func (s *State) Dismiss() {
	s.selected = nil
}

func (s *State) Query() string { return s.query }
func (s *State) SortKey() domain.SortKey { return s.sortKey }
func (s *State) Status() Status { return s.status }
func (s *State) Err() error { return s.err }
func (s *State) Selected() *domain.Repository { return s.selected }

// All returns the full fetched list. Callers must not modify it.
func (s *State) All() []domain.Repository {
	return s.all
}

// Visible returns the filtered and ordered repositories.
func (s *State) Visible() []domain.Repository {
	return usecase.SelectAndOrder(s.all, s.query, s.sortKey)
}

// Placeholder returns what replaces the card collection, if anything.
func (s *State) Placeholder() Placeholder {
	switch s.status {
	case StatusLoading:
		return PlaceholderLoading
	case StatusFailed:
		return PlaceholderFailed
	}
	if len(s.Visible()) == 0 {
		return PlaceholderNoMatches
	}
	return PlaceholderNone
}
