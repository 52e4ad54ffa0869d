package tui

import (
	"fmt"
	"strings"

	"finaily/format"
	"finaily/loader"
	"finaily/types"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	// Body
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	// Footer
	if m.notice != "" {
		b.WriteString(InfoStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(m.footer()))
	return b.String()
}

func (m Model) headerView() string {
	return TitleStyle.Render(TextTitle) + "  " + m.tabsView()
}

// searchRows returns the screen rows [top, bottom) the search widget occupies
func (m Model) searchRows() (int, int) {
	top := lipgloss.Height(m.headerView())
	return top, top + lipgloss.Height(m.search.View())
}

func (m Model) tabsView() string {
	tabs := []struct {
		tab   Tab
		label string
	}{
		{TabBrief, TextTabBrief},
		{TabPulse, TextTabPulse},
	}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if m.page == PageHome && m.tab == t.tab {
			parts = append(parts, ActiveTabStyle.Render(t.label))
		} else {
			parts = append(parts, TabStyle.Render(t.label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) footer() string {
	if m.search.Focused() {
		return TextFooterSearch
	}
	switch m.page {
	case PageStock:
		return TextFooterStock
	case PageProfile:
		return TextFooterProfile
	default:
		return TextFooterHome
	}
}

// body is the scrollable part of the current page
func (m Model) body() string {
	switch m.page {
	case PageStock:
		return m.stockView()
	case PageProfile:
		return m.profileView()
	}
	if m.tab == TabPulse {
		return m.pulseView()
	}
	return InfoStyle.Render(TextBriefIntro)
}

func (m Model) stockView() string {
	var b strings.Builder
	b.WriteString(HeadingStyle.Render(m.stock.Key()))

	data, ok := m.stock.Data()
	if ok {
		b.WriteString("  ")
		b.WriteString(InfoStyle.Render(data.CompanyName))
		if ago := format.TimeAgo(data.LastUpdated, m.now()); ago != "" {
			b.WriteString("\n")
			b.WriteString(InfoStyle.Render(TextLastUpdated + ago))
		}
	}
	b.WriteString("\n\n")

	if status, done := m.statusView(m.stock); done {
		b.WriteString(status)
		return b.String()
	}
	b.WriteString(m.digestView(data.Digest))
	b.WriteString("\n\n")
	b.WriteString(m.articlesView(data.Articles))
	return b.String()
}

func (m Model) pulseView() string {
	var b strings.Builder
	b.WriteString(HeadingStyle.Render(TextPulseTitle))

	data, ok := m.market.Data()
	if ok {
		if ago := format.TimeAgo(data.LastUpdated, m.now()); ago != "" {
			b.WriteString("  ")
			b.WriteString(InfoStyle.Render(TextLastUpdated + ago))
		}
	}
	b.WriteString("\n\n")

	if status, done := m.statusView(m.market); done {
		b.WriteString(status)
		return b.String()
	}
	b.WriteString(m.digestView(data.Digest))
	b.WriteString("\n\n")
	b.WriteString(m.articlesView(data.Articles))
	return b.String()
}

// statusView renders anything but a loaded page; done is false once data is in
func (m Model) statusView(c loader.Coordinator[types.NewsResponse]) (string, bool) {
	switch c.State() {
	case loader.Loading, loader.Unrequested:
		return c.SpinnerView() + " " + InfoStyle.Render(TextLoading), true
	case loader.Failed:
		return ErrorStyle.Render(c.Err()), true
	}
	return "", false
}

func (m Model) digestView(d types.Digest) string {
	var b strings.Builder
	label := d.Sentiment.Label
	score := d.Sentiment.Score
	badge := lipgloss.NewStyle().Bold(true).Foreground(format.SentimentColor(label)).
		Render(fmt.Sprintf("%s %s", format.SentimentEmoji(label), format.FormatScore(&score)))

	b.WriteString(HeadingStyle.Render(TextDigestTitle))
	b.WriteString("  ")
	b.WriteString(InfoStyle.Render(format.BasedOn(d.BasedOnArticles)))
	b.WriteString("  ")
	b.WriteString(badge)
	b.WriteString(" ")
	b.WriteString(InfoStyle.Render("(" + string(label) + ")"))
	b.WriteString("\n")

	for _, p := range d.Summary {
		b.WriteString("\n• ")
		b.WriteString(p.Point)
		if p.Quote != "" {
			b.WriteString("\n  ")
			b.WriteString(QuoteStyle.Render(p.Quote))
		}
	}
	return CardStyle.Render(b.String())
}

func (m Model) articlesView(articles []types.Article) string {
	var b strings.Builder
	b.WriteString(HeadingStyle.Render(TextArticlesTitle))
	b.WriteString(" ")
	b.WriteString(InfoStyle.Render(format.ArticleCount(len(articles))))
	b.WriteString("\n")

	if len(articles) == 0 {
		b.WriteString(InfoStyle.Render(TextNoArticles))
		return b.String()
	}

	now := m.now()
	for _, a := range articles {
		b.WriteString("\n")
		b.WriteString(a.Title)
		b.WriteString("\n")
		meta := a.Source
		if ago := format.TimeAgo(a.PublishedAt, now); ago != "" {
			meta += " · " + ago
		}
		b.WriteString(InfoStyle.Render(meta))
		if a.Linkable() {
			b.WriteString("\n")
			b.WriteString(LinkStyle.Render(a.URL))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) profileView() string {
	var b strings.Builder
	b.WriteString(HeadingStyle.Render(TextProfileTitle))
	b.WriteString("\n\n")

	if !m.signedIn {
		b.WriteString(InfoStyle.Render(TextSignedOut))
		return b.String()
	}

	switch m.profile.State() {
	case loader.Loading, loader.Unrequested:
		b.WriteString(m.profile.SpinnerView() + " " + InfoStyle.Render(TextLoading))
		return b.String()
	case loader.Failed:
		b.WriteString(ErrorStyle.Render(m.profile.Err()))
		return b.String()
	}

	p, _ := m.profile.Data()
	rows := [][2]string{
		{"이름", p.Name()},
		{"이메일", p.Email},
		{"요약 언어", languageName(p.PreferredLanguage)},
		{"가입일", format.FormatDate(p.CreatedAt, m.now().Location())},
	}
	for _, r := range rows {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("%-6s", r[0])))
		b.WriteString("  ")
		b.WriteString(r[1])
		b.WriteString("\n")
	}
	if m.updating {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(TextUpdating))
	}
	return b.String()
}
