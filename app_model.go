package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"stet.codes/shellnav/router"
	"stet.codes/shellnav/shell"
)

// AppOptions configures the AppModel.
type AppOptions struct {
	Ordering router.Ordering
	Logger   *log.Logger
	Saver    historySaver
}

// AppModel is the root Bubble Tea model. It renders the bound shell
// document and turns key presses into navigations.
type AppModel struct {
	ctx      context.Context
	s        *session
	focus    int
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	status   string
	width    int
	height   int
}

// NewAppModel creates the application model around a bound document.
func NewAppModel(ctx context.Context, doc *shell.Document, history *router.History, fetcher router.Fetcher, opts AppOptions) AppModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return AppModel{
		ctx:      ctx,
		s:        newSession(doc, history, fetcher, opts),
		viewport: viewport.New(0, 0),
		spinner:  sp,
		help:     help.New(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start())
}

// start runs the initial navigation for the current history entry.
func (m AppModel) start() tea.Cmd {
	m.s.nav.Start(m.s.history.Current())
	return m.s.flush(m.ctx)
}

func (m AppModel) loading() bool {
	return m.s.router.Phase() == router.Loading
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case fragmentLoadedMsg:
		if m.s.router.Complete(msg.res) {
			m.refreshBody()
		}

	case historySaveFailedMsg:
		m.s.logger.Printf("failed to save history: %v", msg.err)
		m.status = fmt.Sprintf("history not saved: %v", msg.err)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		m.status = ""
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
		case key.Matches(msg, keys.Prev):
			m.moveFocus(-1)
		case key.Matches(msg, keys.Next):
			m.moveFocus(1)
		case key.Matches(msg, keys.Open):
			if _, err := m.s.nav.Click(m.focus); err != nil {
				m.status = err.Error()
				break
			}
			cmds = append(cmds, m.s.save(m.ctx))
		case key.Matches(msg, keys.Back):
			if m.s.history.Back() {
				cmds = append(cmds, m.s.save(m.ctx))
			}
		case key.Matches(msg, keys.Forward):
			if m.s.history.Forward() {
				cmds = append(cmds, m.s.save(m.ctx))
			}
		case key.Matches(msg, keys.Reload):
			m.s.nav.Pop(m.s.history.Current())
		case key.Matches(msg, keys.Up, keys.Down):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.s.flush(m.ctx))
	return m, tea.Batch(cmds...)
}

func (m *AppModel) moveFocus(delta int) {
	n := len(m.s.NavLinks())
	if n == 0 {
		return
	}
	m.focus = (m.focus + delta + n) % n
}

// refreshBody re-renders the body text after the document changed and
// moves the focus to the active link.
func (m *AppModel) refreshBody() {
	text := m.s.doc.Text(shell.Body)
	if m.s.router.Route() == "" {
		text = errorStyle.Render(text)
	}
	m.viewport.SetContent(text)
	m.viewport.GotoTop()

	for i := range m.s.NavLinks() {
		if m.s.doc.LinkActive(i) {
			m.focus = i
			break
		}
	}
}

// layout sizes the viewport to what is left after the chrome.
func (m *AppModel) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	contentWidth := max(m.width-docStyle.GetHorizontalFrameSize(), 0)
	// The status line and four blank separators sit around the viewport.
	used := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderTabs()) +
		lipgloss.Height(m.renderFooter()) + lipgloss.Height(m.help.View(keys)) + 5
	m.viewport.Width = contentWidth
	m.viewport.Height = max(m.height-docStyle.GetVerticalFrameSize()-used, 3)
	m.help.Width = contentWidth
}

func (m AppModel) renderHeader() string {
	return headerStyle.Render(m.s.doc.Text(shell.Header))
}

func (m AppModel) renderFooter() string {
	return footerStyle.Render(m.s.doc.Text(shell.Footer))
}

// renderTabs renders the nav links as a row of tabs.
func (m AppModel) renderTabs() string {
	links := m.s.NavLinks()
	tabs := make([]string, 0, len(links))
	for i, l := range links {
		label := l.Label
		if label == "" {
			label = router.PathFor(l.Route)
		}
		label = ansi.Truncate(label, maxTabWidth, ellipsis)

		style := tabStyle
		if m.s.doc.LinkActive(i) {
			style = activeTabStyle
		}
		if i == m.focus {
			style = style.Inherit(focusedTabStyle)
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

const ellipsis = "…"

func (m AppModel) renderStatus() string {
	h := m.s.history
	pos := fmt.Sprintf("%d/%d %s", h.Index()+1, h.Len(), h.Current())
	switch {
	case m.loading():
		return m.spinner.View() + " loading " + h.Current()
	case m.status != "":
		return statusStyle.Render(pos + " · " + m.status)
	default:
		return statusStyle.Render(pos)
	}
}

func (m AppModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(keys))

	// Size the outer container to exactly match the terminal window.
	s := docStyle
	if m.width > 0 {
		s = s.Width(m.width)
	}
	if m.height > 0 {
		s = s.Height(m.height)
	}
	return s.Render(b.String())
}
