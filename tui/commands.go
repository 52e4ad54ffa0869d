package tui

import (
	"context"

	"finaily/auth"
	"finaily/client"
	"finaily/loader"
	"finaily/outcome"
	"finaily/types"

	tea "github.com/charmbracelet/bubbletea"
)

// newsFetcher loads the stock page for a symbol in lang
func newsFetcher(api client.API, lang types.Language, limit int) loader.Fetcher[types.NewsResponse] {
	return func(ctx context.Context, symbol string) outcome.Outcome[types.NewsResponse] {
		return api.News(ctx, symbol, client.NewsOptions{Lang: lang, Limit: limit})
	}
}

// marketFetcher loads the market pulse; the key is always types.MarketKey
func marketFetcher(api client.API, lang types.Language) loader.Fetcher[types.NewsResponse] {
	return func(ctx context.Context, _ string) outcome.Outcome[types.NewsResponse] {
		return api.MarketPulse(ctx, lang)
	}
}

// profileFetcher reads the credential when the load runs, not when it is built
func profileFetcher(api client.API, session *auth.Session) loader.Fetcher[types.UserProfile] {
	return func(ctx context.Context, _ string) outcome.Outcome[types.UserProfile] {
		return api.Me(ctx, session.Credential())
	}
}

// updateLanguage patches the preferred language
func updateLanguage(api client.API, session *auth.Session, seq int, lang types.Language) tea.Cmd {
	return func() tea.Msg {
		update := types.ProfileUpdate{PreferredLanguage: &lang}
		return profileUpdatedMsg{
			seq:     seq,
			outcome: api.UpdateMe(context.Background(), session.Credential(), update),
		}
	}
}

// watchSession waits for the next sign-in change
func (m Model) watchSession() tea.Cmd {
	if m.session == nil || m.watch < 0 {
		return nil
	}
	return m.session.Watch(m.ctx, m.watch)
}
