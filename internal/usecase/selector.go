package usecase

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/naka-gawa/github-portfolio/internal/domain"
)

// SelectAndOrder returns the repositories matching query, ordered by key.
//
// A repository matches when the trimmed query is a case-insensitive substring
// of its name, description or language. An empty query matches everything.
// Sorting is stable; unknown keys order by update time. all is not modified.
func SelectAndOrder(all []domain.Repository, query string, key domain.SortKey) []domain.Repository {
	q := strings.ToLower(strings.TrimSpace(query))

	selected := make([]domain.Repository, 0, len(all))
	for _, r := range all {
		if matches(r, q) {
			selected = append(selected, r)
		}
	}

	switch key {
	case domain.SortStars:
		slices.SortStableFunc(selected, func(a, b domain.Repository) int {
			return cmp.Compare(b.StarCount, a.StarCount)
		})
	case domain.SortName:
		// Collator keeps internal buffers, so one per call.
		c := collate.New(language.Und)
		slices.SortStableFunc(selected, func(a, b domain.Repository) int {
			return c.CompareString(a.Name, b.Name)
		})
	default:
		slices.SortStableFunc(selected, func(a, b domain.Repository) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	}
	return selected
}

func matches(r domain.Repository, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Name), q) {
		return true
	}
	if r.Description != nil && strings.Contains(strings.ToLower(*r.Description), q) {
		return true
	}
	return r.Language != nil && strings.Contains(strings.ToLower(*r.Language), q)
}
