package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyflap/internal/storage"
)

// Rewards view layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the account sidebar
	sidebarWidth       = 24  // Width of the account sidebar
	maxAccounts        = 50  // Max accounts to list
	maxGrants          = 200 // Max grants to load per account
)

// LedgerStore is the read side of the reward ledger.
type LedgerStore interface {
	TopAccounts(limit int) ([]storage.AccountTotal, error)
	RecentRewards(account string, limit int) ([]storage.RewardEntry, error)
}

// RewardsKeyMap defines the key bindings for the rewards view.
type RewardsKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextAccount key.Binding
	PrevAccount key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RewardsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextAccount, k.PrevAccount, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RewardsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextAccount, k.PrevAccount},
		{k.Back, k.Quit},
	}
}

// DefaultRewardsKeyMap returns default key bindings.
func DefaultRewardsKeyMap() RewardsKeyMap {
	return RewardsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextAccount: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next account"),
		),
		PrevAccount: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev account"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RewardsModel lists accounts by tokens earned and the grants of the selected one.
type RewardsModel struct {
	store       LedgerStore
	accounts    []storage.AccountTotal
	cursor      int
	grants      []storage.RewardEntry
	err         error
	table       table.Model
	help        help.Model
	keys        RewardsKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewRewardsModel creates the rewards view. When account is non-empty it is
// preselected if present in the ledger.
func NewRewardsModel(store LedgerStore, account string, width, height int) RewardsModel {
	h := help.New()
	h.ShowAll = false

	m := RewardsModel{
		store:       store,
		keys:        DefaultRewardsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadAccounts()

	for i, a := range m.accounts {
		if a.Account == account {
			m.cursor = i
		}
	}
	m.loadGrants()
	return m
}

// createTable creates a new table sized to the window.
func (m *RewardsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Tokens", Width: 8},
		{Title: "Session", Width: 18},
		{Title: "Date", Width: 14},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if tableWidth > 50 {
		columns[2].Width = min(tableWidth-31, 24)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *RewardsModel) loadAccounts() {
	if m.store == nil {
		return
	}
	accounts, err := m.store.TopAccounts(maxAccounts)
	if err != nil {
		m.err = err
		return
	}
	m.accounts = accounts
}

func (m *RewardsModel) loadGrants() {
	m.grants = nil
	if m.store != nil && len(m.accounts) > 0 {
		grants, err := m.store.RecentRewards(m.accounts[m.cursor].Account, maxGrants)
		if err != nil {
			m.err = err
		} else {
			m.grants = grants
		}
	}
	m.updateTableRows()
}

func (m *RewardsModel) updateTableRows() {
	rows := make([]table.Row, len(m.grants))
	for i, g := range m.grants {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("+%d", g.Amount),
			g.SessionID,
			g.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the rewards model.
func (m RewardsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the rewards view.
func (m RewardsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextAccount):
			if len(m.accounts) > 0 {
				m.cursor = (m.cursor + 1) % len(m.accounts)
				m.loadGrants()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevAccount):
			if len(m.accounts) > 0 {
				m.cursor = (m.cursor - 1 + len(m.accounts)) % len(m.accounts)
				m.loadGrants()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the highlighted account, or "" when the ledger is empty.
func (m RewardsModel) Selected() string {
	if len(m.accounts) == 0 {
		return ""
	}
	return m.accounts[m.cursor].Account
}

// View renders the rewards view.
func (m RewardsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "TOKENS EARNED"
	if len(m.accounts) > 0 {
		a := m.accounts[m.cursor]
		title = fmt.Sprintf("TOKENS EARNED - %s (%d)", a.Account, a.Total)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", m.renderTable()))
	} else {
		b.WriteString(centerText(m.renderTable(), m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RewardsModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Accounts\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, a := range m.accounts {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := a.Account
		maxLen := sidebarWidth - 12
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sb.WriteString(style.Render(fmt.Sprintf("%s%-*s %5d", cursor, maxLen, name, a.Total)))
		sb.WriteString("\n")
	}

	return sidebarStyle.Render(sb.String())
}

func (m RewardsModel) renderTable() string {
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return tableStyle.Render(emptyStyle.Render("Ledger unavailable:\n" + m.err.Error()))
	case len(m.grants) == 0:
		return tableStyle.Render(emptyStyle.Render("No tokens earned yet.\nPlay with --account to start earning!"))
	}
	return tableStyle.Render(m.table.View())
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// RunRewards runs the rewards view.
func RunRewards(store LedgerStore, account string, width, height int) error {
	p := tea.NewProgram(
		NewRewardsModel(store, account, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
