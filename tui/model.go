// Package tui is the terminal front end: a router over the home tabs, the
// stock page and the profile page, each driven by the search widget and
// load coordinators.
package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"finaily/auth"
	"finaily/client"
	"finaily/loader"
	"finaily/search"
	"finaily/types"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Page is a top-level screen
type Page int

const (
	PageHome Page = iota
	PageStock
	PageProfile
)

// Tab is a home page tab
type Tab int

const (
	TabBrief Tab = iota
	TabPulse
)

const (
	profileKey = "me"

	// DefaultWatchInterval is how often the session is polled for sign-in changes
	DefaultWatchInterval = 2 * time.Second
)

// Config wires the model to its collaborators
type Config struct {
	API      client.API
	Session  *auth.Session
	Logger   *slog.Logger
	Lang     types.Language
	Limit    int
	Debounce time.Duration

	// WatchInterval of 0 uses the default; negative disables session watching
	WatchInterval time.Duration
	Context       context.Context
	Now           func() time.Time
}

// Model is the root bubbletea model
type Model struct {
	api     client.API
	session *auth.Session
	logger  *slog.Logger
	ctx     context.Context
	now     func() time.Time
	watch   time.Duration

	lang  types.Language
	limit int

	page Page
	tab  Tab

	search  search.Model
	stock   loader.Coordinator[types.NewsResponse]
	market  loader.Coordinator[types.NewsResponse]
	profile loader.Coordinator[types.UserProfile]

	signedIn  bool
	updating  bool
	updateSeq int
	notice    string

	viewport      viewport.Model
	ready         bool
	width, height int
}

// NewModel creates the root model
func NewModel(cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	lang := cfg.Lang
	if !lang.Valid() {
		lang = types.DefaultLanguage
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = client.DefaultLimit
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	watch := cfg.WatchInterval
	if watch == 0 {
		watch = DefaultWatchInterval
	}

	m := Model{
		api:     cfg.API,
		session: cfg.Session,
		logger:  logger,
		ctx:     ctx,
		now:     now,
		watch:   watch,
		lang:    lang,
		limit:   limit,
		search: search.New(cfg.API,
			search.WithDebounce(cfg.Debounce),
			search.WithLogger(logger.With("component", "search")),
			search.WithPlaceholder(TextSearchPlaceholder),
		),
		stock: loader.New(newsFetcher(cfg.API, lang, limit),
			loader.WithName("stock"), loader.WithLogger(logger), loader.WithLanguage(lang)),
		market: loader.New(marketFetcher(cfg.API, lang),
			loader.WithName("market"), loader.WithLogger(logger), loader.WithLanguage(lang)),
		profile: loader.New(profileFetcher(cfg.API, cfg.Session),
			loader.WithName("profile"), loader.WithLogger(logger), loader.WithLanguage(lang)),
		signedIn: cfg.Session.SignedIn(),
		viewport: viewport.New(80, 20),
	}
	m.search, _ = m.search.Focus()
	return m
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.search.Init(), m.watchSession())
}

// Page returns the current page
func (m Model) Page() Page { return m.page }

// Tab returns the active home tab
func (m Model) Tab() Tab { return m.tab }

// Language is the digest language used by news loads
func (m Model) Language() types.Language { return m.lang }

// Symbol is the symbol of the stock page
func (m Model) Symbol() string { return m.stock.Key() }

// Stock exposes the stock page coordinator
func (m Model) Stock() loader.Coordinator[types.NewsResponse] { return m.stock }

// Market exposes the market pulse coordinator
func (m Model) Market() loader.Coordinator[types.NewsResponse] { return m.market }

// Profile exposes the profile coordinator
func (m Model) Profile() loader.Coordinator[types.UserProfile] { return m.profile }

// Search exposes the search widget
func (m Model) Search() search.Model { return m.search }

// SignedIn reports the last known session state
func (m Model) SignedIn() bool { return m.signedIn }

// Notice is the last one-line status message
func (m Model) Notice() string { return m.notice }

// setLanguage points every later load at lang
func (m Model) setLanguage(lang types.Language) Model {
	if lang == m.lang || !lang.Valid() {
		return m
	}
	m.logger.Info("language changed", "from", m.lang, "to", lang)
	m.lang = lang
	m.stock = m.stock.SetFetcher(newsFetcher(m.api, lang, m.limit)).SetLanguage(lang)
	m.market = m.market.SetFetcher(marketFetcher(m.api, lang)).SetLanguage(lang)
	m.profile = m.profile.SetLanguage(lang)
	return m
}
