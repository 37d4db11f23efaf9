package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/usecase"
)

type screen int

const (
	screenHome screen = iota
	screenCompare
)

type orderItem struct {
	ref domain.OrderRef
	rel string
}

func (o orderItem) Title() string       { return o.ref.Name }
func (o orderItem) Description() string { return o.rel }
func (o orderItem) FilterValue() string { return o.ref.Name }

type model struct {
	theme Theme
	deps  Deps

	scr    screen
	orders list.Model

	workspaceFound bool
	workspaceRoot  string
	cwd            string

	current domain.OrderRef
	spec    domain.OrderSpec
	quotes  []usecase.ShippingQuote
	cursor  int

	busy  bool
	toast string
	saved *domain.OrderRecord
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Orders"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme:  DefaultTheme(),
		deps:   deps,
		scr:    screenHome,
		orders: l,
	}
}

func (m model) Init() tea.Cmd { return cmdRefreshWorkspace(m.deps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.orders.SetSize(msg.Width-4, msg.Height-12)
		return m, nil

	case workspaceRefreshedMsg:
		m.cwd = msg.cwd
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		if !msg.found {
			return m, nil
		}
		m.busy = true
		return m, cmdLoadOrders(msg.root, m.deps.Logger)

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace created"
		return m, cmdRefreshWorkspace(m.deps)

	case ordersLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.refs))
		for _, r := range msg.refs {
			items = append(items, orderItem{ref: r, rel: relTo(msg.root, r.Path)})
		}
		return m, m.orders.SetItems(items)

	case comparisonMsg:
		m.busy = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.scr = screenCompare
		m.current = msg.ref
		m.spec = msg.spec
		m.quotes = msg.quotes
		m.cursor = 0
		m.saved = nil
		m.toast = ""
		return m, nil

	case orderSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		rec := msg.record
		m.saved = &rec
		m.toast = ""
		return m, nil

	case tea.KeyMsg:
		if m.scr == screenHome && m.orders.FilterState() == list.Filtering {
			break
		}
		return m.handleKey(msg)
	}

	if m.scr == screenHome {
		var cmd tea.Cmd
		m.orders, cmd = m.orders.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		if m.scr == screenHome {
			return m, tea.Quit
		}
		m.scr = screenHome
		return m, nil

	case "esc", "b":
		if m.scr != screenHome {
			m.scr = screenHome
			m.saved = nil
			m.toast = ""
			return m, nil
		}

	case "i":
		if m.scr == screenHome && !m.workspaceFound && m.cwd != "" {
			return m, cmdInitWorkspaceHere(m.deps, m.cwd)
		}

	case "r":
		if m.scr == screenHome {
			return m, cmdRefreshWorkspace(m.deps)
		}

	case "up", "k":
		if m.scr == screenCompare {
			m.cursor = moveCursor(m.cursor, -1, len(m.quotes))
			return m, nil
		}

	case "down", "j":
		if m.scr == screenCompare {
			m.cursor = moveCursor(m.cursor, 1, len(m.quotes))
			return m, nil
		}

	case "enter":
		if m.busy {
			return m, nil
		}
		switch m.scr {
		case screenHome:
			it, ok := m.orders.SelectedItem().(orderItem)
			if !ok {
				return m, nil
			}
			m.busy = true
			return m, cmdCompare(m.workspaceRoot, it.ref, m.deps.Logger)

		case screenCompare:
			if m.cursor < 0 || m.cursor >= len(m.quotes) {
				return m, nil
			}
			m.busy = true
			return m, cmdPlaceOrder(m.workspaceRoot, m.spec, m.quotes[m.cursor].Kind, m.deps.Logger)
		}
	}

	if m.scr == screenHome {
		var cmd tea.Cmd
		m.orders, cmd = m.orders.Update(msg)
		return m, cmd
	}
	return m, nil
}

func moveCursor(cur, delta, n int) int {
	if n == 0 {
		return 0
	}
	cur += delta
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("shipquote") + "\n" +
		m.theme.Subtitle.Render("Price orders across shipping methods") + "\n"

	var banner string
	if m.workspaceFound {
		banner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		banner = m.theme.Card.Render(
			"No workspace found.\n\nPress i to create one in the current directory.",
		)
	}

	status := ""
	if m.busy {
		status = m.theme.Help.Render("working...") + "\n"
	}
	if m.toast != "" {
		status += m.theme.Bad.Render(m.toast) + "\n"
	}

	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter compare • / search • r reload • q quit")
		body := ""
		if m.workspaceFound {
			body = m.theme.Card.Render(m.orders.View()) + "\n"
		}
		return wrap.Render(header + "\n" + banner + "\n\n" + body + status + help)

	case screenCompare:
		var saved string
		if m.saved != nil {
			saved = "\n" + m.theme.Good.Render(renderRecord(*m.saved)) + "\n"
		}
		card := m.theme.Card.Render(
			renderSpec(m.spec) + "\n" + renderQuotes(m.quotes, m.cursor) + saved,
		)
		help := m.theme.Help.Render("↑/↓ pick method • enter save order • esc/b back")
		return wrap.Render(header + "\n" + banner + "\n\n" + card + "\n" + status + help)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}

func relTo(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil || root == "" {
		return p
	}
	return rel
}
