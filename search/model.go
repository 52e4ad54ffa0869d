// Package search implements the ticker autocomplete widget.
//
// Every change to the query advances a sequence number. Debounce ticks and
// search results carry the sequence they were issued for, and anything that
// does not match the current sequence is dropped on arrival. That is the
// whole of the "last intent wins" rule: a slow response for an older query
// can never overwrite a newer one, whatever order they come back in.
package search

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"finaily/client"
	"finaily/outcome"
	"finaily/types"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDebounce is the quiet period before a query is sent
const DefaultDebounce = 300 * time.Millisecond

// Searcher is the backend call the widget depends on
type Searcher interface {
	SearchTickers(ctx context.Context, query string) outcome.Outcome[types.SearchResponse]
}

// Option configures a Model
type Option func(*Model)

// WithDebounce overrides the debounce window
func WithDebounce(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.debounce = d
		}
	}
}

// WithLogger sets the logger used for dropped and failed searches
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPlaceholder sets the input placeholder
func WithPlaceholder(p string) Option {
	return func(m *Model) { m.input.Placeholder = p }
}

// WithTransitionHook observes every state change, including the transient
// Cancelled state a superseded fetch passes through.
func WithTransitionHook(f func(from, to State)) Option {
	return func(m *Model) { m.onTransition = f }
}

// Model is one autocomplete widget. It is a value; Update returns the new one.
type Model struct {
	id       int
	searcher Searcher
	debounce time.Duration
	logger   *slog.Logger

	input   textinput.Model
	spinner spinner.Model

	state    State
	seq      int
	inflight int
	cancel   context.CancelFunc

	results []types.TickerResult
	open    bool
	cursor  int

	onTransition func(from, to State)
}

// New creates a search widget backed by s
func New(s Searcher, opts ...Option) Model {
	in := textinput.New()
	in.Placeholder = "Search ticker (e.g. AAPL, TSLA)"
	in.CharLimit = 64
	in.Prompt = "🔍 "

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		id:       nextID(),
		searcher: s,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		input:    in,
		spinner:  sp,
		state:    Idle,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// ID identifies the widget's messages
func (m Model) ID() int { return m.id }

// State returns the current lifecycle state
func (m Model) State() State { return m.state }

// Query returns the text currently in the box
func (m Model) Query() string { return m.input.Value() }

// Results returns the committed suggestions
func (m Model) Results() []types.TickerResult { return m.results }

// Open reports whether the suggestion list is shown
func (m Model) Open() bool { return m.open }

// Cursor is the highlighted suggestion
func (m Model) Cursor() int { return m.cursor }

// Focused reports whether the box takes key input
func (m Model) Focused() bool { return m.input.Focused() }

// Loading reports whether a fetch for the current query is in flight
func (m Model) Loading() bool { return m.state == Fetching }

// Focus gives the box keyboard focus
func (m Model) Focus() (Model, tea.Cmd) {
	cmd := m.input.Focus()
	return m, cmd
}

// Blur handles focus or a pointer event leaving the widget: the list closes,
// the query stays.
func (m Model) Blur() Model {
	m.input.Blur()
	m.open = false
	return m
}

// Close tears the widget down. Any pending timer or fetch becomes stale.
func (m Model) Close() Model {
	m = m.supersede()
	m.open = false
	return m
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.input.Focused() {
			return m, nil
		}
		return m.handleKey(msg)

	case debounceMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m.handleDebounce(msg)

	case resultsMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m.handleResults(msg), nil

	case spinner.TickMsg:
		if m.state != Fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.open && m.state == Resolved && len(m.results) > 0 {
			return m.Select(m.cursor)
		}
		return m.Submit()
	case tea.KeyUp:
		if m.open && m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.open && m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyEsc:
		m.open = false
		return m, nil
	}

	before := m.input.Value()
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, inputCmd
	}
	var changeCmd tea.Cmd
	m, changeCmd = m.changed(m.input.Value())
	return m, tea.Batch(inputCmd, changeCmd)
}

// SetQuery replaces the query text as if the user had typed it
func (m Model) SetQuery(text string) (Model, tea.Cmd) {
	m.input.SetValue(text)
	return m.changed(text)
}

// changed applies an input-change event.
func (m Model) changed(text string) (Model, tea.Cmd) {
	m = m.supersede()

	if strings.TrimSpace(text) == "" {
		m.results = nil
		m.open = false
		m.cursor = 0
		m = m.transition(Idle)
		return m, nil
	}

	// Suggestions belong to the previous query; they stay hidden until this one resolves.
	m.open = false
	m.cursor = 0
	m = m.transition(Debouncing)
	id, seq := m.id, m.seq
	return m, tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id, seq: seq}
	})
}

// supersede makes every armed timer and in-flight fetch stale.
func (m Model) supersede() Model {
	m.seq++
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.state == Fetching {
		m = m.transition(Cancelled)
	}
	m.inflight = 0
	return m
}

func (m Model) handleDebounce(msg debounceMsg) (Model, tea.Cmd) {
	if msg.seq != m.seq || m.state != Debouncing {
		// A newer keystroke restarted the window.
		return m, nil
	}

	query := strings.TrimSpace(m.input.Value())
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.inflight = m.seq
	m = m.transition(Fetching)

	id, seq, s := m.id, m.seq, m.searcher
	fetch := func() tea.Msg {
		return resultsMsg{id: id, seq: seq, query: query, outcome: s.SearchTickers(ctx, query)}
	}
	return m, tea.Batch(fetch, m.spinner.Tick)
}

func (m Model) handleResults(msg resultsMsg) Model {
	if msg.seq != m.seq || msg.seq != m.inflight {
		m.logger.Debug("discarding stale search results", "query", msg.query, "seq", msg.seq, "current", m.seq)
		return m
	}

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.inflight = 0

	res, err := msg.outcome.Get()
	if err != nil {
		// Search-as-you-type never shows an error.
		m.logger.Warn("ticker search failed", "query", msg.query, "code", err.Code, "status", err.Status, "error", err.Message)
		m.results = nil
	} else {
		m.results = res.Results
	}
	m.open = len(m.results) > 0
	m.cursor = 0
	return m.transition(Resolved)
}

// Select picks suggestion i and hands its symbol to navigation
func (m Model) Select(i int) (Model, tea.Cmd) {
	if i < 0 || i >= len(m.results) {
		return m, nil
	}
	return m.choose(m.results[i].Symbol)
}

// Submit uses the raw typed text as the symbol
func (m Model) Submit() (Model, tea.Cmd) {
	if strings.TrimSpace(m.input.Value()) == "" {
		return m, nil
	}
	return m.choose(m.input.Value())
}

func (m Model) choose(symbol string) (Model, tea.Cmd) {
	symbol = client.NormalizeSymbol(symbol)
	m.input.SetValue("")
	m, _ = m.changed("")
	return m, func() tea.Msg { return SelectedMsg{Symbol: symbol} }
}

func (m Model) transition(to State) Model {
	from := m.state
	m.state = to
	if from != to && m.onTransition != nil {
		m.onTransition(from, to)
	}
	return m
}
