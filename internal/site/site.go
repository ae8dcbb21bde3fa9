// Package site renders the portfolio as a single static HTML page.
package site

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/naka-gawa/github-portfolio/internal/domain"
	"github.com/naka-gawa/github-portfolio/internal/view"
)

const (
	notAvailable  = "N/A"
	paletteSize   = 9
	generatedDate = "Jan 2, 2006 15:04 MST"
)

var page = template.Must(template.New("page").Parse(pageTemplate))

// Page is everything the template needs. Optional statistics are pre-formatted.
type Page struct {
	User        string
	Generated   string
	Query       string
	SortLabel   string
	Stats       *Stats
	Placeholder string
	Cards       []Card
}

// Stats is the formatted profile header.
type Stats struct {
	PublicRepos   string
	TotalStars    string
	TotalForks    string
	MedianStars   string
	Commits       string
	PullRequests  string
	Issues        string
	CurrentStreak string
	LongestStreak string
	Languages     []Language
}

// Language is one segment of the language bar. Slot selects its color class.
type Language struct {
	Name    string
	Percent float64
	Slot    int
}

// Card pairs a grid card with its detail overlay; Anchor is the overlay's fragment id.
type Card struct {
	view.Card
	Anchor string
	Detail view.Detail
}

// Build turns the presentation state into a page. stats may be nil.
func Build(user string, state *view.State, stats *domain.ProfileStats, now time.Time) Page {
	p := Page{
		User:        user,
		Generated:   now.Format(generatedDate),
		Query:       state.Query(),
		SortLabel:   state.SortKey().Label(),
		Placeholder: string(state.Placeholder()),
	}
	if stats != nil {
		p.Stats = newStats(stats)
	}
	if p.Placeholder != "" {
		return p
	}

	for i, r := range state.Visible() {
		p.Cards = append(p.Cards, Card{
			Card:   view.NewCard(r, now),
			Anchor: fmt.Sprintf("repo-%d", i+1),
			Detail: view.NewDetail(r, now),
		})
	}
	return p
}

func newStats(s *domain.ProfileStats) *Stats {
	out := &Stats{
		PublicRepos:   humanize.Comma(int64(s.PublicRepos)),
		TotalStars:    humanize.Comma(int64(s.TotalStars)),
		TotalForks:    humanize.Comma(int64(s.TotalForks)),
		MedianStars:   humanize.FormatFloat("#,###.#", s.MedianStars),
		Commits:       optionalCount(s.Commits),
		PullRequests:  optionalCount(s.PullRequests),
		Issues:        optionalCount(s.Issues),
		CurrentStreak: optionalCount(s.CurrentStreak),
		LongestStreak: optionalCount(s.LongestStreak),
	}
	for i, l := range s.Languages {
		out.Languages = append(out.Languages, Language{Name: l.Name, Percent: l.Percent, Slot: i % paletteSize})
	}
	return out
}

func optionalCount(n *int) string {
	if n == nil {
		return notAvailable
	}
	return humanize.Comma(int64(*n))
}

// Render writes p as a complete HTML document.
func Render(w io.Writer, p Page) error {
	if err := page.Execute(w, p); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}
