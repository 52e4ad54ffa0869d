// Package auth supplies the bearer credential for per-user calls and
// reports when the user signs in or out.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/oauth2"
)

// ErrSignedOut is returned by token sources that have no token to offer
var ErrSignedOut = errors.New("signed out")

// SessionChangedMsg is sent when the sign-in state flips
type SessionChangedMsg struct {
	SignedIn bool
}

// fileTokenSource re-reads the token file on every call so that an external
// sign-in tool can rotate or remove it while the client runs.
type fileTokenSource struct {
	path string
}

// FileTokenSource returns a token source backed by a file holding a bare access token
func FileTokenSource(path string) oauth2.TokenSource {
	return fileTokenSource{path: path}
}

func (f fileTokenSource) Token() (*oauth2.Token, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSignedOut
	}
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return nil, ErrSignedOut
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// Session wraps the token source the identity collaborator provides
type Session struct {
	src    oauth2.TokenSource
	logger *slog.Logger

	mu   sync.Mutex
	last bool
}

// NewSession creates a session. A nil source means permanently signed out.
func NewSession(src oauth2.TokenSource, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{src: src, logger: logger}
	s.last = s.SignedIn()
	return s
}

// FromConfig prefers the token file over a static token
func FromConfig(token, tokenFile string, logger *slog.Logger) *Session {
	switch {
	case tokenFile != "":
		return NewSession(FileTokenSource(tokenFile), logger)
	case token != "":
		return NewSession(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}), logger)
	default:
		return NewSession(nil, logger)
	}
}

// Credential returns the current bearer token, or "" when signed out
func (s *Session) Credential() string {
	if s == nil || s.src == nil {
		return ""
	}
	tok, err := s.src.Token()
	if err != nil {
		if !errors.Is(err, ErrSignedOut) {
			s.logger.Warn("token source failed", "error", err)
		}
		return ""
	}
	if !tok.Valid() {
		return ""
	}
	return tok.AccessToken
}

// SignedIn reports whether a credential is currently available
func (s *Session) SignedIn() bool {
	return s.Credential() != ""
}

// Watch polls the token source every interval and returns once the sign-in
// state differs from the last one observed. Re-issue it after each message.
func (s *Session) Watch(ctx context.Context, interval time.Duration) tea.Cmd {
	return func() tea.Msg {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				now := s.SignedIn()
				s.mu.Lock()
				changed := now != s.last
				s.last = now
				s.mu.Unlock()
				if changed {
					s.logger.Info("session changed", "signed_in", now)
					return SessionChangedMsg{SignedIn: now}
				}
			}
		}
	}
}
