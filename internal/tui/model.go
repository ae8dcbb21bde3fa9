// Package tui is the interactive terminal portfolio: a filterable, sortable
// grid of repository cards with a detail overlay.
package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/naka-gawa/github-portfolio/internal/domain"
	"github.com/naka-gawa/github-portfolio/internal/view"
)

// Source fetches the repository list.
type Source interface {
	FetchRepositories(ctx context.Context, user string) ([]domain.Repository, error)
}

// StatsAggregator computes the best-effort profile statistics.
type StatsAggregator interface {
	Aggregate(ctx context.Context, user string, repos []domain.Repository) *domain.ProfileStats
}

// Options configures a Model.
type Options struct {
	User     string
	Debounce time.Duration
	Logger   *log.Logger
	// Stats is optional; without it no statistics are shown.
	Stats StatsAggregator
}

// — messages ————————————————————————————————————————————————————————————————

// reposFetchedMsg and statsLoadedMsg carry the fetch they belong to;
// results of a superseded fetch are dropped.
type reposFetchedMsg struct {
	seq   int
	repos []domain.Repository
	err   error
}

type statsLoadedMsg struct {
	seq   int
	stats *domain.ProfileStats
}

type urlOpenedMsg struct {
	url string
	err error
}

// querySettledMsg fires when the filter input has been quiet for the debounce interval.
type querySettledMsg struct {
	seq int
}

// — model ———————————————————————————————————————————————————————————————————

type Model struct {
	ctx      context.Context
	source   Source
	stats    StatsAggregator
	user     string
	debounce time.Duration
	logger   *log.Logger
	now      func() time.Time
	openURL  func(url string) tea.Cmd

	state   *view.State
	profile *domain.ProfileStats
	filter  textinput.Model
	spinner spinner.Model

	cursor    int
	rowOffset int
	querySeq  int
	fetchSeq  int
	width     int
	height    int
}

// New creates the model. Data is fetched once Init runs.
func New(ctx context.Context, source Source, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter by name, description or language"
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		ctx:      ctx,
		source:   source,
		stats:    opts.Stats,
		user:     opts.User,
		debounce: opts.Debounce,
		logger:   logger,
		now:      time.Now,
		openURL:  openURLCmd,
		state:    view.NewState(),
		filter:   ti,
		spinner:  sp,
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// State exposes the presentation state.
func (m Model) State() *view.State {
	return m.state
}

// — commands ————————————————————————————————————————————————————————————————

func (m Model) fetchCmd() tea.Cmd {
	source, ctx, user, seq := m.source, m.ctx, m.user, m.fetchSeq
	return func() tea.Msg {
		repos, err := source.FetchRepositories(ctx, user)
		return reposFetchedMsg{seq: seq, repos: repos, err: err}
	}
}

func (m Model) statsCmd(repos []domain.Repository) tea.Cmd {
	if m.stats == nil {
		return nil
	}
	aggregator, ctx, user, seq := m.stats, m.ctx, m.user, m.fetchSeq
	return func() tea.Msg {
		return statsLoadedMsg{seq: seq, stats: aggregator.Aggregate(ctx, user, repos)}
	}
}

func (m Model) settleCmd(seq int) tea.Cmd {
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return querySettledMsg{seq: seq}
	})
}

// — tea.Model ———————————————————————————————————————————————————————————————

func (m Model) Init() tea.Cmd {
	m.state.BeginLoad()
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.keepCursorVisible()
		return m, nil

	case spinner.TickMsg:
		if m.state.Status() != view.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reposFetchedMsg:
		return m.handleFetchCompleted(msg)

	case statsLoadedMsg:
		return m.handleStatsLoaded(msg)

	case querySettledMsg:
		return m.handleQuerySettled(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case urlOpenedMsg:
		if msg.err != nil {
			m.logger.Warn("Failed to open browser", "url", msg.url, "err", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.state.Selected() != nil:
			return m.updateOverlay(msg)
		case m.filter.Focused():
			return m.updateFilter(msg)
		default:
			return m.updateGrid(msg)
		}
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		cmd := m.filter.Focus()
		return m, cmd
	case "tab":
		return m.handleSortSelected(nextSortKey(m.state.SortKey()))
	case "1", "2", "3":
		return m.handleSortSelected(domain.SortKeys[msg.String()[0]-'1'])
	case "r":
		return m.handleReloadRequested()
	case "enter":
		return m.handleCardActivated(m.cursor)
	case "esc":
		return m.handleOverlayDismissed()
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-m.columns())
	case "down", "j":
		m.moveCursor(m.columns())
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filter.Blur()
		return m, nil
	case "enter":
		m.filter.Blur()
		m.querySeq++
		m.applyQuery()
		return m, nil
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() == before {
		return m, cmd
	}
	next, settle := m.handleQueryInput()
	return next, tea.Batch(cmd, settle)
}

func (m Model) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "x", "q":
		return m.handleOverlayDismissed()
	case "o":
		return m, m.openURL(m.state.Selected().URL)
	case "i":
		return m, m.openURL(m.state.Selected().IssuesURL())
	}
	return m, nil
}

// — handlers: one input event, one state transition ——————————————————————————

func (m Model) handleReloadRequested() (tea.Model, tea.Cmd) {
	m.fetchSeq++
	m.state.BeginLoad()
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m Model) handleFetchCompleted(msg reposFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.fetchSeq {
		m.logger.Debug("Dropping superseded fetch result", "seq", msg.seq, "current", m.fetchSeq)
		return m, nil
	}
	m.state.CompleteFetch(msg.repos, msg.err)
	m.cursor = 0
	m.rowOffset = 0
	if msg.err != nil {
		m.logger.Error("Failed to load repositories", "user", m.user, "err", msg.err)
		return m, nil
	}
	m.logger.Debug("Repositories loaded", "user", m.user, "count", len(msg.repos))
	return m, m.statsCmd(m.state.All())
}

func (m Model) handleStatsLoaded(msg statsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.fetchSeq {
		return m, nil
	}
	m.profile = msg.stats
	return m, nil
}

// handleQueryInput restarts the debounce timer; only the newest timer applies the query.
func (m Model) handleQueryInput() (Model, tea.Cmd) {
	m.querySeq++
	if m.debounce <= 0 {
		m.applyQuery()
		return m, nil
	}
	return m, m.settleCmd(m.querySeq)
}

func (m Model) handleQuerySettled(msg querySettledMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.querySeq {
		return m, nil
	}
	m.applyQuery()
	return m, nil
}

func (m *Model) applyQuery() {
	m.state.SetQuery(m.filter.Value())
	m.cursor = 0
	m.rowOffset = 0
}

func (m Model) handleSortSelected(key domain.SortKey) (tea.Model, tea.Cmd) {
	m.state.SetSortKey(key)
	m.cursor = 0
	m.rowOffset = 0
	return m, nil
}

// handleCardActivated opens the detail of a visible card. While a placeholder
// is shown no card is visible, so nothing opens.
func (m Model) handleCardActivated(index int) (tea.Model, tea.Cmd) {
	if m.state.Placeholder() != view.PlaceholderNone {
		return m, nil
	}
	visible := m.state.Visible()
	if index < 0 || index >= len(visible) {
		return m, nil
	}
	m.cursor = index
	m.state.Select(visible[index].Name)
	return m, nil
}

func (m Model) handleOverlayDismissed() (tea.Model, tea.Cmd) {
	m.state.Dismiss()
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.state.Selected() != nil {
		if !m.overlayBounds().contains(msg.X, msg.Y) {
			return m.handleOverlayDismissed()
		}
		return m, nil
	}
	if index, ok := m.cardAt(msg.X, msg.Y); ok {
		return m.handleCardActivated(index)
	}
	return m, nil
}

// — cursor ——————————————————————————————————————————————————————————————————

func (m *Model) moveCursor(delta int) {
	n := len(m.state.Visible())
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.keepCursorVisible()
}

func (m *Model) keepCursorVisible() {
	row := m.cursor / m.columns()
	rows := m.visibleRows()
	if row < m.rowOffset {
		m.rowOffset = row
	}
	if row >= m.rowOffset+rows {
		m.rowOffset = row - rows + 1
	}
}

func nextSortKey(k domain.SortKey) domain.SortKey {
	for i, key := range domain.SortKeys {
		if key == k {
			return domain.SortKeys[(i+1)%len(domain.SortKeys)]
		}
	}
	return domain.SortUpdated
}
