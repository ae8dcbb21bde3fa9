package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/naka-gawa/github-portfolio/internal/domain"
	"github.com/naka-gawa/github-portfolio/internal/view"
)

const (
	defaultWidth  = 100
	defaultHeight = 30

	// cardWidth and cardHeight are the outer size of a card, border included.
	cardWidth  = 34
	cardHeight = 6
	// descriptionLines is how many wrapped description lines a card shows.
	descriptionLines = 2
	footerHeight     = 2
	maxBarWidth      = 50

	notAvailable = "N/A"
)

func (m Model) View() string {
	if m.state.Selected() != nil {
		return m.renderOverlay()
	}

	body := m.renderPlaceholder()
	if body == "" {
		body = m.renderGrid()
	}
	bodyHeight := max(m.height-lipgloss.Height(m.renderHeader())-footerHeight, 0)
	body = lipgloss.NewStyle().Height(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderHelp())
}

// — layout helpers ——————————————————————————————————————————————————————————

func (m Model) columns() int {
	return max(m.width/cardWidth, 1)
}

func (m Model) visibleRows() int {
	avail := m.height - lipgloss.Height(m.renderHeader()) - footerHeight
	return max(avail/cardHeight, 1)
}

// cardAt maps a screen position to the index of the visible card drawn there.
func (m Model) cardAt(x, y int) (int, bool) {
	if m.state.Placeholder() != view.PlaceholderNone {
		return 0, false
	}
	top := lipgloss.Height(m.renderHeader())
	if x < 0 || y < top {
		return 0, false
	}
	row, col := (y-top)/cardHeight, x/cardWidth
	if row >= m.visibleRows() || col >= m.columns() {
		return 0, false
	}
	index := (m.rowOffset+row)*m.columns() + col
	if index >= len(m.state.Visible()) {
		return 0, false
	}
	return index, true
}

type rect struct {
	x, y, width, height int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.width && y >= r.y && y < r.y+r.height
}

// overlayBounds is where lipgloss.Place centers the detail box on screen.
func (m Model) overlayBounds() rect {
	w, h := lipgloss.Size(m.renderDetailBox())
	return rect{
		x:      max(m.width-w, 0) / 2,
		y:      max(m.height-h, 0) / 2,
		width:  w,
		height: h,
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Inline(true).MaxWidth(width).Render(s)
}

// — header ——————————————————————————————————————————————————————————————————

func (m Model) renderHeader() string {
	title := titleStyle.Render(m.user + " · repositories")
	if m.state.Status() == view.StatusReady {
		title += dimStyle.Render(fmt.Sprintf("  %d of %d", len(m.state.Visible()), len(m.state.All())))
	}

	parts := []string{title}
	if m.profile != nil {
		parts = append(parts, m.renderStats(m.profile))
		if bar := m.renderLanguageBar(m.profile.Languages); bar != "" {
			parts = append(parts, bar)
		}
	}
	parts = append(parts, m.filter.View(), m.renderSortSelector(), "")
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderSortSelector() string {
	tabs := []string{dimStyle.Render("Sort")}
	for i, key := range domain.SortKeys {
		label := fmt.Sprintf("%d %s", i+1, key.Label())
		if key == m.state.SortKey() {
			tabs = append(tabs, activeSortStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveSortStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderStats(s *domain.ProfileStats) string {
	line := strings.Join([]string{
		starStyle.Render("★ " + humanize.Comma(int64(s.TotalStars))),
		fmt.Sprintf("%d repos", s.PublicRepos),
		fmt.Sprintf("%s forks", humanize.Comma(int64(s.TotalForks))),
		fmt.Sprintf("median %.1f★", s.MedianStars),
		optionalCount(s.Commits) + " commits",
		optionalCount(s.PullRequests) + " PRs",
		optionalCount(s.Issues) + " issues",
		fmt.Sprintf("streak %s (longest %s)", optionalCount(s.CurrentStreak), optionalCount(s.LongestStreak)),
	}, dimStyle.Render(" · "))
	return lipgloss.NewStyle().Width(m.width).Render(line)
}

func optionalCount(n *int) string {
	if n == nil {
		return notAvailable
	}
	return humanize.Comma(int64(*n))
}

// renderLanguageBar draws one colored segment per language share, with a legend below.
func (m Model) renderLanguageBar(shares []domain.LanguageShare) string {
	if len(shares) == 0 {
		return ""
	}
	width := min(m.width, maxBarWidth)

	var bar strings.Builder
	legend := make([]string, 0, len(shares))
	for i, share := range shares {
		color := lipgloss.NewStyle().Foreground(languagePalette[i%len(languagePalette)])
		cells := int(math.Round(share.Percent / 100 * float64(width)))
		bar.WriteString(color.Render(strings.Repeat("█", cells)))
		legend = append(legend, color.Render("■")+fmt.Sprintf(" %s %.1f%%", share.Name, share.Percent))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		bar.String(),
		lipgloss.NewStyle().Width(m.width).Render(strings.Join(legend, "  ")),
	)
}

// — body ————————————————————————————————————————————————————————————————————

func (m Model) renderPlaceholder() string {
	switch p := m.state.Placeholder(); p {
	case view.PlaceholderNone:
		return ""
	case view.PlaceholderLoading:
		return placeholderStyle.Render(m.spinner.View() + " " + string(p))
	case view.PlaceholderFailed:
		return placeholderStyle.Render(errStyle.Render(string(p)) + "\n\n" + dimStyle.Render("Press r to retry, q to quit."))
	default:
		return placeholderStyle.Render(dimStyle.Render(string(p)))
	}
}

func (m Model) renderGrid() string {
	cards := m.state.Cards(m.now())
	cols := m.columns()
	start := min(m.rowOffset*cols, len(cards))
	end := min(start+m.visibleRows()*cols, len(cards))

	var rows []string
	for i := start; i < end; i += cols {
		row := make([]string, 0, cols)
		for j := i; j < min(i+cols, end); j++ {
			row = append(row, renderCard(cards[j], j == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(c view.Card, focused bool) string {
	inner := cardWidth - 4

	star := fmt.Sprintf("★ %d", c.Stars)
	name := truncate(c.Name, inner-lipgloss.Width(star)-1)
	gap := max(inner-lipgloss.Width(name)-lipgloss.Width(star), 1)
	lines := []string{boldStyle.Render(name) + strings.Repeat(" ", gap) + starStyle.Render(star)}

	var desc []string
	if c.Description != "" {
		desc = strings.Split(lipgloss.NewStyle().Width(inner).Render(c.Description), "\n")
	}
	for i := range descriptionLines {
		if i < len(desc) {
			lines = append(lines, truncate(desc[i], inner))
		} else {
			lines = append(lines, "")
		}
	}

	footer := "Updated " + c.Updated
	if c.Language != "" {
		footer = langStyle.Render(c.Language) + dimStyle.Render(" · "+footer)
	} else {
		footer = dimStyle.Render(footer)
	}
	lines = append(lines, truncate(footer, inner))

	style := cardStyle
	if focused {
		style = focusedCardStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// — overlay —————————————————————————————————————————————————————————————————

func (m Model) renderDetailBox() string {
	d, ok := m.state.Detail(m.now())
	if !ok {
		return ""
	}

	row := func(lbl, val string) string {
		return labelStyle.Render(fmt.Sprintf("%-9s", lbl)) + val + "\n"
	}

	var b strings.Builder
	b.WriteString(detailHeadStyle.Render(d.Name) + "  " + starStyle.Render(fmt.Sprintf("★ %d", d.Stars)) + "\n\n")
	if d.Description != "" {
		b.WriteString(d.Description + "\n\n")
	} else {
		b.WriteString(dimStyle.Render("No description") + "\n\n")
	}
	b.WriteString(row("Language", d.Language))
	b.WriteString(row("Created", d.Created))
	b.WriteString(row("Updated", d.Updated))
	b.WriteString(row("Forks", humanize.Comma(int64(d.Forks))))
	b.WriteString(row("Issues", humanize.Comma(int64(d.OpenIssues))+" open"))
	b.WriteString("\n")
	b.WriteString(row("Home", d.HomeURL))
	b.WriteString(row("Tracker", d.IssuesURL))
	b.WriteString("\n" + dimStyle.Render("o open repository · i open issues · esc close"))

	return modalStyle.Render(b.String())
}

func (m Model) renderOverlay() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderDetailBox(),
		lipgloss.WithWhitespaceBackground(lipgloss.Color("0")),
	)
}

// — help ————————————————————————————————————————————————————————————————————

func (m Model) renderHelp() string {
	var text string
	switch {
	case m.filter.Focused():
		text = "type to filter   Enter apply   Esc done"
	default:
		text = "←/→/↑/↓ move   Enter details   / filter   Tab sort   r reload   q quit"
	}
	sep := dimStyle.Render(strings.Repeat("─", m.width))
	return sep + "\n" + helpStyle.Render(text)
}
