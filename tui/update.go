package tui

import (
	"finaily/auth"
	"finaily/loader"
	"finaily/search"
	"finaily/types"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const chromeHeight = 6

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd = m.handleKeyPress(msg)
		return m.sync(), cmd
	case tea.WindowSizeMsg:
		return m.handleResize(msg).sync(), nil
	case search.SelectedMsg:
		m, cmd = m.openStock(msg.Symbol)
		return m.sync(), cmd
	case auth.SessionChangedMsg:
		m, cmd = m.handleSessionChanged(msg)
		return m.sync(), cmd
	case profileUpdatedMsg:
		m, cmd = m.handleProfileUpdated(msg)
		return m.sync(), cmd
	case tea.MouseMsg:
		m = m.handleMouse(msg)
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Everything else belongs to a component; each one ignores what is not its own.
	cmds := make([]tea.Cmd, 0, 4)
	m.search, cmd = m.search.Update(msg)
	cmds = append(cmds, cmd)
	m.stock, cmd = m.stock.Update(msg)
	cmds = append(cmds, cmd)
	m.market, cmd = m.market.Update(msg)
	cmds = append(cmds, cmd)
	m.profile, cmd = m.profile.Update(msg)
	cmds = append(cmds, cmd)
	return m.sync(), tea.Batch(cmds...)
}

// handleMouse closes the suggestion list when a click lands outside the search box
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Action != tea.MouseActionPress || tea.MouseEvent(msg).IsWheel() {
		return m
	}
	top, bottom := m.searchRows()
	if msg.Y < top || msg.Y >= bottom {
		m.search = m.search.Blur()
	}
	return m
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.search.Focused() {
		switch msg.Type {
		case tea.KeyTab:
			m.search = m.search.Blur()
			return m.switchTab()
		case tea.KeyEsc:
			if !m.search.Open() {
				m.search = m.search.Blur()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		return m.focusSearch()
	case "tab":
		return m.switchTab()
	case "1":
		return m.goHome(TabBrief)
	case "2":
		return m.goHome(TabPulse)
	case "esc", "backspace":
		return m.goHome(m.tab)
	case "p":
		return m.openProfile()
	case "r":
		return m.retry()
	case "l":
		return m.toggleLanguage()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	vpHeight := m.height - chromeHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.viewport.MouseWheelEnabled = true
		m.ready = true
		return m
	}
	m.viewport.Width = m.width
	m.viewport.Height = vpHeight
	return m
}

func (m Model) focusSearch() (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.search, cmd = m.search.Focus()
	return m, cmd
}

// switchTab toggles the home tabs. Market pulse loads on first activation only.
func (m Model) switchTab() (Model, tea.Cmd) {
	if m.page != PageHome {
		return m, nil
	}
	if m.tab == TabBrief {
		return m.goHome(TabPulse)
	}
	return m.goHome(TabBrief)
}

// goHome leaves the current page; whatever it had in flight is dropped
func (m Model) goHome(tab Tab) (Model, tea.Cmd) {
	m = m.leave()
	m.page = PageHome
	m.tab = tab
	m.viewport.GotoTop()
	if tab == TabPulse && m.market.State() == loader.Unrequested {
		var cmd tea.Cmd
		m.market, cmd = m.market.Load(types.MarketKey)
		return m, cmd
	}
	return m, nil
}

// openStock routes a search selection to the stock page keyed by symbol
func (m Model) openStock(symbol string) (Model, tea.Cmd) {
	if m.page != PageStock {
		m = m.leave()
	}
	m.page = PageStock
	m.notice = ""
	m.search = m.search.Blur()
	m.viewport.GotoTop()
	var cmd tea.Cmd
	m.stock, cmd = m.stock.Load(symbol)
	return m, cmd
}

func (m Model) openProfile() (Model, tea.Cmd) {
	if m.page == PageProfile {
		return m, nil
	}
	m = m.leave()
	m.page = PageProfile
	m.notice = ""
	m.viewport.GotoTop()
	if !m.signedIn {
		return m, nil
	}
	var cmd tea.Cmd
	m.profile, cmd = m.profile.Load(profileKey)
	return m, cmd
}

// leave tears down the page being navigated away from
func (m Model) leave() Model {
	switch m.page {
	case PageStock:
		m.stock = m.stock.Teardown()
	case PageProfile:
		m.profile = m.profile.Teardown()
		m.updating = false
		m.updateSeq++
	}
	return m
}

func (m Model) retry() (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.page == PageStock:
		m.stock, cmd = m.stock.Retry()
	case m.page == PageHome && m.tab == TabPulse:
		m.market, cmd = m.market.Retry()
	case m.page == PageProfile && m.signedIn:
		m.profile, cmd = m.profile.Retry()
	}
	return m, cmd
}

func (m Model) toggleLanguage() (Model, tea.Cmd) {
	if m.page != PageProfile || m.updating {
		return m, nil
	}
	p, ok := m.profile.Data()
	if !ok {
		return m, nil
	}
	next := p.PreferredLanguage.Toggle()
	m.updating = true
	m.updateSeq++
	m.notice = ""
	return m, updateLanguage(m.api, m.session, m.updateSeq, next)
}

func (m Model) handleProfileUpdated(msg profileUpdatedMsg) (Model, tea.Cmd) {
	if msg.seq != m.updateSeq || !m.updating {
		return m, nil
	}
	m.updating = false

	p, err := msg.outcome.Get()
	if err != nil {
		m.notice = err.Message
		if m.notice == "" {
			m.notice = loader.FallbackMessage(m.lang)
		}
		m.logger.Warn("profile update failed", "code", err.Code, "status", err.Status)
		return m, nil
	}

	m = m.setLanguage(p.PreferredLanguage)
	m.notice = languageNotice(p.PreferredLanguage)
	var cmd tea.Cmd
	m.profile, cmd = m.profile.Load(profileKey)
	return m, cmd
}

func (m Model) handleSessionChanged(msg auth.SessionChangedMsg) (Model, tea.Cmd) {
	m.signedIn = msg.SignedIn
	cmds := []tea.Cmd{m.watchSession()}

	if !msg.SignedIn {
		m.profile = m.profile.Reset()
		m.updating = false
		m.updateSeq++
		return m, tea.Batch(cmds...)
	}
	if m.page == PageProfile {
		var cmd tea.Cmd
		m.profile, cmd = m.profile.Load(profileKey)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// sync adopts the profile's language and refreshes the scrollable body
func (m Model) sync() Model {
	if p, ok := m.profile.Data(); ok && m.signedIn {
		m = m.setLanguage(p.PreferredLanguage)
	}
	m.viewport.SetContent(m.body())
	return m
}
