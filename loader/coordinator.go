// Package loader drives the "load resource by key" lifecycle of a page.
//
// Each Load starts a new epoch. The fetch command carries the epoch it was
// issued under, and a result whose epoch is no longer current is discarded
// without touching state, whether it is a success or a failure. Teardown
// advances the epoch the same way, so nothing is written after a page goes away.
package loader

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"finaily/outcome"
	"finaily/types"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// State of a coordinator. There is no idle state once a key was requested.
type State int

const (
	Unrequested State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Unrequested:
		return "unrequested"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher loads the resource for key
type Fetcher[T any] func(ctx context.Context, key string) outcome.Outcome[T]

type loadedMsg[T any] struct {
	id      int
	epoch   int
	key     string
	outcome outcome.Outcome[T]
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

var fallbackMessages = map[types.Language]string{
	types.LanguageKorean:  "알 수 없는 오류가 발생했습니다.",
	types.LanguageEnglish: "An unknown error occurred.",
}

// FallbackMessage is shown when a failed load carries no message
func FallbackMessage(lang types.Language) string {
	if msg, ok := fallbackMessages[lang]; ok {
		return msg
	}
	return fallbackMessages[types.DefaultLanguage]
}

type settings struct {
	logger *slog.Logger
	lang   types.Language
	name   string
}

// Option configures a Coordinator
type Option func(*settings)

// WithLogger sets the logger used for discarded and failed loads
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLanguage picks the language of the fallback error message
func WithLanguage(lang types.Language) Option {
	return func(s *settings) { s.lang = lang }
}

// WithName labels log lines, e.g. "stock" or "market"
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// Coordinator owns the visible state of one page. It is a value; methods
// return the updated copy.
type Coordinator[T any] struct {
	id    int
	fetch Fetcher[T]
	settings

	state  State
	key    string
	epoch  int
	cancel context.CancelFunc

	data T
	err  string

	spinner spinner.Model
}

// New creates a coordinator that loads with fetch
func New[T any](fetch Fetcher[T], opts ...Option) Coordinator[T] {
	s := settings{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		lang:   types.DefaultLanguage,
		name:   "page",
	}
	for _, opt := range opts {
		opt(&s)
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Coordinator[T]{id: nextID(), fetch: fetch, settings: s, spinner: sp}
}

// State returns the lifecycle state
func (c Coordinator[T]) State() State { return c.state }

// Key returns the most recently requested key
func (c Coordinator[T]) Key() string { return c.key }

// Loading reports whether the current key is still loading
func (c Coordinator[T]) Loading() bool { return c.state == Loading }

// Data returns the committed snapshot; ok is false unless Loaded
func (c Coordinator[T]) Data() (T, bool) {
	return c.data, c.state == Loaded
}

// Err returns the message of a failed load
func (c Coordinator[T]) Err() string {
	if c.state != Failed {
		return ""
	}
	return c.err
}

// SetLanguage changes the fallback message language for future failures
func (c Coordinator[T]) SetLanguage(lang types.Language) Coordinator[T] {
	c.lang = lang
	return c
}

// SetFetcher swaps the fetch function used by later loads. A load already in
// flight keeps the function it started with.
func (c Coordinator[T]) SetFetcher(fetch Fetcher[T]) Coordinator[T] {
	c.fetch = fetch
	return c
}

// Load requests key. Whatever was in flight for an earlier key is now stale.
func (c Coordinator[T]) Load(key string) (Coordinator[T], tea.Cmd) {
	c = c.invalidate()

	var zero T
	c.key = key
	c.state = Loading
	c.err = ""
	c.data = zero

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	id, epoch, fetch := c.id, c.epoch, c.fetch
	load := func() tea.Msg {
		return loadedMsg[T]{id: id, epoch: epoch, key: key, outcome: fetch(ctx, key)}
	}
	c.logger.Debug("loading", "page", c.name, "key", key, "epoch", epoch)
	return c, tea.Batch(load, c.spinner.Tick)
}

// Retry reloads the current key. It is the explicit user action; nothing
// retries on its own.
func (c Coordinator[T]) Retry() (Coordinator[T], tea.Cmd) {
	if c.state == Unrequested {
		return c, nil
	}
	return c.Load(c.key)
}

// Teardown discards any in-flight load. Call it when the page goes away.
func (c Coordinator[T]) Teardown() Coordinator[T] {
	return c.invalidate()
}

// Reset forgets the key and any committed data, as if nothing was ever requested
func (c Coordinator[T]) Reset() Coordinator[T] {
	c = c.invalidate()
	var zero T
	c.state = Unrequested
	c.key = ""
	c.data = zero
	c.err = ""
	return c
}

func (c Coordinator[T]) invalidate() Coordinator[T] {
	c.epoch++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return c
}

// Update implements the tea.Model update step for this coordinator's messages
func (c Coordinator[T]) Update(msg tea.Msg) (Coordinator[T], tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg[T]:
		if msg.id != c.id {
			return c, nil
		}
		return c.handleLoaded(msg), nil

	case spinner.TickMsg:
		if c.state != Loading {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c Coordinator[T]) handleLoaded(msg loadedMsg[T]) Coordinator[T] {
	if msg.epoch != c.epoch || c.state != Loading {
		c.logger.Debug("discarding stale load", "page", c.name, "key", msg.key, "epoch", msg.epoch, "current", c.epoch)
		return c
	}

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	v, err := msg.outcome.Get()
	if err != nil {
		c.state = Failed
		c.err = err.Message
		if c.err == "" {
			c.err = FallbackMessage(c.lang)
		}
		c.logger.Warn("load failed", "page", c.name, "key", msg.key, "code", err.Code, "status", err.Status, "error", err.Message)
		return c
	}

	c.state = Loaded
	c.data = v
	c.logger.Debug("loaded", "page", c.name, "key", msg.key)
	return c
}

// SpinnerView renders the loading indicator
func (c Coordinator[T]) SpinnerView() string {
	return c.spinner.View()
}
