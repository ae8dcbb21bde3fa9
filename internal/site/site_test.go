package site

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-portfolio/internal/domain"
	"github.com/naka-gawa/github-portfolio/internal/view"
)

var now = time.Date(2024, 6, 4, 12, 0, 0, 0, time.UTC)

func str(s string) *string {
	return &s
}

func readyState(repos ...domain.Repository) *view.State {
	s := view.NewState()
	s.CompleteFetch(repos, nil)
	return s
}

func render(t *testing.T, p Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, p))
	return buf.String()
}

func TestBuild_Placeholders(t *testing.T) {
	failed := view.NewState()
	failed.CompleteFetch(nil, errors.New("boom"))

	noMatches := readyState(domain.Repository{Name: "alpha"})
	noMatches.SetQuery("zzz")

	testCases := []struct {
		name     string
		state    *view.State
		expected view.Placeholder
	}{
		{name: "loading", state: view.NewState(), expected: view.PlaceholderLoading},
		{name: "failed", state: failed, expected: view.PlaceholderFailed},
		{name: "no matches", state: noMatches, expected: view.PlaceholderNoMatches},
		{name: "empty list", state: readyState(), expected: view.PlaceholderNoMatches},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := Build("octo", tc.state, nil, now)
			assert.Equal(t, string(tc.expected), p.Placeholder)
			assert.Empty(t, p.Cards)

			out := render(t, p)
			assert.Equal(t, 1, strings.Count(out, `class="placeholder"`))
			assert.NotContains(t, out, `class="grid"`)
			assert.NotContains(t, out, `class="overlay"`)
		})
	}
}

func TestBuild_CardsFollowVisibleOrder(t *testing.T) {
	s := readyState(
		domain.Repository{Name: "alpha", StarCount: 5, UpdatedAt: now.AddDate(-1, 0, 0)},
		domain.Repository{Name: "beta", StarCount: 9, UpdatedAt: now.AddDate(0, 0, -3)},
	)
	s.SetSortKey(domain.SortStars)

	p := Build("octo", s, nil, now)
	require.Len(t, p.Cards, 2)
	assert.Equal(t, "beta", p.Cards[0].Name)
	assert.Equal(t, "repo-1", p.Cards[0].Anchor)
	assert.Equal(t, "alpha", p.Cards[1].Name)
	assert.Equal(t, "Most stars", p.SortLabel)
	assert.Empty(t, p.Placeholder)
	assert.Nil(t, p.Stats)
}

func TestRender_Cards(t *testing.T) {
	s := readyState(
		domain.Repository{
			Name:        "beta",
			StarCount:   9,
			Description: str("Routes <fast>"),
			Language:    str("Go"),
			UpdatedAt:   now.AddDate(0, 0, -3),
			URL:         "https://github.com/octo/beta",
		},
		domain.Repository{Name: "alpha", UpdatedAt: now.AddDate(0, 0, -10), URL: "https://github.com/octo/alpha"},
	)

	out := render(t, Build("octo", s, nil, now))

	assert.Equal(t, 1, strings.Count(out, `<span class="lang">`), "the language tag is omitted when absent")
	assert.Contains(t, out, `<span class="lang">Go</span>`)
	assert.Contains(t, out, "Routes &lt;fast&gt;")
	assert.Contains(t, out, `href="https://github.com/octo/beta/issues"`)
	assert.Contains(t, out, `href="https://github.com/octo/alpha/issues"`)
	assert.Contains(t, out, `<div class="overlay" id="repo-1">`)
	assert.Contains(t, out, `href="#repo-2"`)
	assert.Contains(t, out, "<dd>—</dd>")
	assert.Contains(t, out, "Updated 3 days ago")
	assert.NotContains(t, out, `class="placeholder"`)
}

func TestRender_UnsafeLinkIsNeutralized(t *testing.T) {
	s := readyState(domain.Repository{Name: "evil", URL: "javascript:alert(1)"})

	out := render(t, Build("octo", s, nil, now))

	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, `<a href="#ZgotmplZ">Repository</a>`)
}

func TestRender_Stats(t *testing.T) {
	commits := 1234
	stats := &domain.ProfileStats{
		User:        "octo",
		PublicRepos: 2,
		TotalStars:  14,
		MedianStars: 7,
		Commits:     &commits,
		Languages: []domain.LanguageShare{
			{Name: "Go", Weight: 3, Percent: 75},
			{Name: "Shell", Weight: 1, Percent: 25},
		},
	}

	p := Build("octo", readyState(domain.Repository{Name: "alpha"}), stats, now)
	require.NotNil(t, p.Stats)
	assert.Equal(t, "1,234", p.Stats.Commits)
	assert.Equal(t, notAvailable, p.Stats.PullRequests)
	assert.Equal(t, notAvailable, p.Stats.CurrentStreak)
	assert.Equal(t, 1, p.Stats.Languages[1].Slot)

	out := render(t, p)
	assert.Contains(t, out, "<strong>1,234</strong> commits")
	assert.Contains(t, out, "<strong>N/A</strong> issues")
	assert.Contains(t, out, `style="width: 75%"`)
	assert.Contains(t, out, "Shell 25.0%")
}
