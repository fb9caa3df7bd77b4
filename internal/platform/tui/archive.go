package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-arena/internal/games/snake"
	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

// Archive layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show game list sidebar
	sidebarWidth       = 20  // Width of game list sidebar
	maxMatches         = 200 // Max matches to load
)

// ArchiveKeyMap defines the key bindings for the archive.
type ArchiveKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Replay   key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Clear    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ArchiveKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Replay, k.NextGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ArchiveKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Replay},
		{k.NextGame, k.PrevGame, k.Clear},
		{k.Back, k.Quit},
	}
}

// DefaultArchiveKeyMap returns default key bindings.
func DefaultArchiveKeyMap() ArchiveKeyMap {
	return ArchiveKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "replay"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear mode"),
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

// ArchiveModel lists archived matches per mode and picks one to replay.
type ArchiveModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	matches     []storage.MatchRecord
	table       table.Model
	help        help.Model
	keys        ArchiveKeyMap
	width       int
	height      int
	err         error
	quitting    bool
	goingBack   bool
	selected    *storage.MatchRecord // Set when user asks for a replay
	showSidebar bool
}

// NewArchiveModel creates an archive browser over store.
func NewArchiveModel(store *storage.Store, width, height int) ArchiveModel {
	h := help.New()
	h.ShowAll = false

	m := ArchiveModel{
		games:       registry.List(),
		store:       store,
		keys:        DefaultArchiveKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadMatches()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ArchiveModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 13},
		{Title: "Result", Width: 16},
		{Title: "Turns", Width: 6},
		{Title: "Apples", Width: 6},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if extra := tableWidth - 49; extra > 0 {
		columns[1].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

// loadMatches fetches the matches of the selected mode, newest first.
func (m *ArchiveModel) loadMatches() {
	m.matches = nil
	m.err = nil
	if m.store != nil && len(m.games) > 0 {
		all, err := m.store.RecentMatches(maxMatches)
		if err != nil {
			m.err = err
		}
		id := m.games[m.gameCursor].ID
		for _, rec := range all {
			if rec.GameID == id {
				m.matches = append(m.matches, rec)
			}
		}
	}

	rows := make([]table.Row, len(m.matches))
	for i, rec := range m.matches {
		rows[i] = table.Row{
			rec.CreatedAt.Format("Jan 02 15:04"),
			resultLabel(rec),
			fmt.Sprintf("%d", rec.Turns),
			fmt.Sprintf("%d", rec.Apples),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// resultLabel summarizes how a match ended.
func resultLabel(rec storage.MatchRecord) string {
	switch {
	case rec.EndReason == string(snake.ReasonAborted):
		return "aborted"
	case rec.EndReason == string(snake.ReasonBoardFull):
		return "board full"
	case rec.Players < 2:
		return "game over"
	case rec.Winner == 0:
		return "draw"
	default:
		return fmt.Sprintf("P%d wins", rec.Winner)
	}
}

// Init initializes the archive model.
func (m ArchiveModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the archive.
func (m ArchiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Replay):
			if i := m.table.Cursor(); i >= 0 && i < len(m.matches) {
				rec := m.matches[i]
				m.selected = &rec
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if m.store != nil && len(m.games) > 0 {
				if err := m.store.ClearMatches(m.games[m.gameCursor].ID); err != nil {
					m.err = err
					return m, nil
				}
				m.loadMatches()
			}
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.loadMatches()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.loadMatches()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.loadMatches()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the archive.
func (m ArchiveModel) View() string {
	if m.quitting || m.goingBack || m.selected != nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "MATCH ARCHIVE"
	if len(m.games) > 0 {
		title = fmt.Sprintf("MATCH ARCHIVE - %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.currentTitle()), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.renderTable(), m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ArchiveModel) currentTitle() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].Title
}

// renderWideLayout renders the archive with a sidebar for mode selection.
func (m ArchiveModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + g.Title))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(sidebar.String()), "  ", m.renderTable())
}

// renderTable renders the table or an empty message.
func (m ArchiveModel) renderTable() string {
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if m.err != nil {
		return tableStyle.Render("Archive unavailable: " + m.err.Error())
	}
	if len(m.matches) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return tableStyle.Render(emptyStyle.Render("No matches archived yet.\nFinish a round to see it here!"))
	}
	return tableStyle.Render(m.table.View())
}

// Selected returns the match chosen for replay, or nil.
func (m ArchiveModel) Selected() *storage.MatchRecord {
	return m.selected
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ArchiveModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ArchiveModel) IsQuitting() bool {
	return m.quitting
}

// NewArchivedViewer decodes an archived recording into a playable viewer.
func NewArchivedViewer(rec storage.MatchRecord) (*snake.Viewer, error) {
	var recording snake.Recording
	if err := json.Unmarshal(rec.Recording, &recording); err != nil {
		return nil, fmt.Errorf("decode recording of %s: %w", rec.MatchID, err)
	}
	title := rec.GameID
	if info, ok := registry.Info(rec.GameID); ok {
		title = info.Title
	}
	return snake.NewViewer(title, recording)
}
