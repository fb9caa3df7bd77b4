package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake"
	"github.com/vovakirdan/snake-arena/internal/multiplayer"
	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewArchive
)

// SessionModel manages the full flow of one terminal: menu -> game -> menu,
// with the archive and its replays on the side.
type SessionModel struct {
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	sessionID multiplayer.SessionID
	view      sessionView
	menu      MenuModel
	archive   ArchiveModel
	gameModel *GameModel
	fromArch  bool // The running game is an archived replay
	notice    string
	quitting  bool
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, session multiplayer.SessionID, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	return SessionModel{
		store:     store,
		logger:    logger.With("session", session),
		config:    cfg,
		sessionID: session,
		menu:      NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewArchive:
		return m.updateArchive(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		m.notice = ""
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsArchive() {
		return m.openArchive()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// Shouldn't happen since menu only shows registered games
			m.logger.Error("cannot create game", "game", selected.GameID, "err", err)
			m.menu = NewMenuModel(m.config)
			return m, nil
		}
		m.logger.Info("game selected", "game", selected.GameID, "mode", selected.Mode)
		return m.startGame(game, m.store, false)
	}

	return m, cmd
}

// updateArchive handles updates while browsing archived matches.
func (m SessionModel) updateArchive(msg tea.Msg) (tea.Model, tea.Cmd) {
	newArchive, cmd := m.archive.Update(msg)
	if archiveModel, ok := newArchive.(ArchiveModel); ok {
		m.archive = archiveModel
	}

	if m.archive.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.archive.IsGoingBack() {
		return m.openMenu()
	}

	if sel := m.archive.Selected(); sel != nil {
		viewer, err := m.archivedViewer(*sel)
		if err != nil {
			m.logger.Warn("cannot replay archived match", "match", sel.MatchID, "err", err)
			m.notice = "Replay unavailable: " + err.Error()
			return m.openMenu()
		}
		m.logger.Info("archived replay", "match", sel.MatchID)
		// Replays are never archived again
		return m.startGame(viewer, nil, true)
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		if m.fromArch {
			return m.openArchive()
		}
		return m.openMenu()
	}

	return m, cmd
}

// archivedViewer reloads the recording from the store so a cleared archive is noticed.
func (m SessionModel) archivedViewer(rec storage.MatchRecord) (*snake.Viewer, error) {
	blob, err := m.store.LoadRecording(rec.MatchID)
	if err != nil {
		return nil, err
	}
	rec.Recording = blob
	return NewArchivedViewer(rec)
}

func (m SessionModel) startGame(game registry.Game, store *storage.Store, fromArchive bool) (tea.Model, tea.Cmd) {
	var saver multiplayer.MatchResultSaver
	if store != nil {
		saver = store
	}
	gm := NewGameModel(game, saver, m.config, m.sessionID, m.logger)
	m.gameModel = &gm
	m.fromArch = fromArchive
	m.view = viewGame
	return m, m.gameModel.Init()
}

func (m SessionModel) openMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.config)
	m.view = viewMenu
	return m, m.menu.Init()
}

func (m SessionModel) openArchive() (tea.Model, tea.Cmd) {
	m.archive = NewArchiveModel(m.store, m.config.ScreenW, m.config.ScreenH)
	m.view = viewArchive
	return m, m.archive.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.gameModel.View()
	case viewArchive:
		return m.archive.View()
	}

	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + centerText(menuHintStyle.Render(m.notice), m.config.ScreenW)
	}
	return view
}

// RunSession runs the menu flow in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewSessionModel(store, cfg, multiplayer.LocalSession, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
