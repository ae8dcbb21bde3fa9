package view

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/naka-gawa/github-portfolio/internal/domain"
)

const (
	dateLayout     = "Jan 2, 2006"
	// relativeWindow is how far back dates are shown relative to now.
	relativeWindow = 30 * 24 * time.Hour
	noLanguage     = "—"
	unknownDate    = "unknown"
)

// Card is one entry of the repository grid.
// Language is empty when the repository has none; renderers omit the tag then.
type Card struct {
	Name        string
	Stars       int
	Description string
	Language    string
	Updated     string
}

// Detail is the content of the detail overlay.
type Detail struct {
	Name        string
	Stars       int
	Description string
	Language    string
	Created     string
	Updated     string
	Forks       int
	OpenIssues  int
	HomeURL     string
	IssuesURL   string
}

// NewCard builds the card of r.
func NewCard(r domain.Repository, now time.Time) Card {
	c := Card{
		Name:    r.Name,
		Stars:   r.StarCount,
		Updated: FormatDate(r.UpdatedAt, now),
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.Language != nil {
		c.Language = *r.Language
	}
	return c
}

// NewDetail builds the detail overlay of r.
// The links are the record's URL and that URL with "/issues" appended.
func NewDetail(r domain.Repository, now time.Time) Detail {
	d := Detail{
		Name:       r.Name,
		Stars:      r.StarCount,
		Language:   noLanguage,
		Created:    FormatDate(r.CreatedAt, now),
		Updated:    FormatDate(r.UpdatedAt, now),
		Forks:      r.ForkCount,
		OpenIssues: r.OpenIssueCount,
		HomeURL:    r.URL,
		IssuesURL:  r.IssuesURL(),
	}
	if r.Description != nil {
		d.Description = *r.Description
	}
	if r.Language != nil && *r.Language != "" {
		d.Language = *r.Language
	}
	return d
}

// Cards returns the cards of the visible repositories, in order.
func (s *State) Cards(now time.Time) []Card {
	visible := s.Visible()
	cards := make([]Card, len(visible))
	for i, r := range visible {
		cards[i] = NewCard(r, now)
	}
	return cards
}

// Detail returns the overlay content of the selected repository.
func (s *State) Detail(now time.Time) (Detail, bool) {
	if s.selected == nil {
		return Detail{}, false
	}
	return NewDetail(*s.selected, now), true
}

// FormatDate renders t relative to now ("3 days ago") when it is recent,
// and as an absolute date otherwise.
func FormatDate(t, now time.Time) string {
	if t.IsZero() {
		return unknownDate
	}
	if d := now.Sub(t); d >= 0 && d < relativeWindow {
		return humanize.RelTime(t, now, "ago", "from now")
	}
	return t.Format(dateLayout)
}
