package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake"
	"github.com/vovakirdan/snake-arena/internal/multiplayer"
	"github.com/vovakirdan/snake-arena/internal/registry"
)

// GameModel is the Bubble Tea model running one game on a shared keyboard.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	saver      multiplayer.MatchResultSaver
	logger     *log.Logger
	config     core.RuntimeConfig
	session    multiplayer.SessionID
	keyMapper  *KeyMapper
	inputFrame core.MultiInputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	quitOnBack bool // Standalone runs have no menu to return to
	gen        uint64

	archived     bool  // Whether the finished round was handed to the saver
	archivedSeed int64 // Seed of the last archived round
}

// NewGameModel creates a model for game. A nil saver disables the archive.
func NewGameModel(game registry.Game, saver multiplayer.MatchResultSaver, cfg core.RuntimeConfig, session multiplayer.SessionID, logger *log.Logger) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.Default()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		saver:      saver,
		logger:     logger,
		config:     cfg,
		session:    session,
		keyMapper:  NewKeyMapper(game.Players()),
		inputFrame: core.NewMultiInputFrame(),
		gen:        nextTickGen(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board has a fixed size, so a resize only changes the viewport.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToMultiFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// B or Esc leaves a finished or paused game
	if m.inputFrame.Any(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.quitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleTick advances the simulation by one frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver {
		m.archive()
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// archive hands a finished live match to the saver once per round.
func (m *GameModel) archive() {
	g, ok := m.game.(*snake.Game)
	if !ok || g.Match() == nil {
		return
	}
	seed := g.Match().Seed()
	if m.archived && m.archivedSeed == seed {
		return
	}
	m.archived = true
	m.archivedSeed = seed

	if m.saver == nil {
		return
	}
	data, err := matchResult(g, m.session)
	if err != nil {
		m.logger.Warn("match not archived", "game", g.ID(), "err", err)
		return
	}
	if err := m.saver.SaveMatchResult(data); err != nil {
		m.logger.Error("cannot archive match", "match", data.MatchID, "err", err)
		return
	}
	m.logger.Debug("match archived", "match", data.MatchID, "reason", data.EndReason, "turns", data.Turns)
}

// matchResult describes the finished match of g for the archive.
func matchResult(g *snake.Game, session multiplayer.SessionID) (multiplayer.MatchResultData, error) {
	match := g.Match()
	rec, ok := match.Recording()
	if !ok {
		return multiplayer.MatchResultData{}, errors.New("match has no recording")
	}
	blob, err := json.Marshal(rec)
	if err != nil {
		return multiplayer.MatchResultData{}, fmt.Errorf("encode recording: %w", err)
	}

	handle := multiplayer.NewMatch(g.Players(), session)
	out := match.Outcome()
	return multiplayer.MatchResultData{
		MatchID:   handle.ID(),
		GameID:    g.ID(),
		Session:   handle.Session(),
		Mode:      handle.Mode(),
		Players:   handle.Players(),
		Seed:      match.Seed(),
		Winner:    out.Winner,
		EndReason: string(out.Reason),
		Turns:     out.Turns,
		Apples:    out.Apples,
		Recording: blob,
	}, nil
}

// saveScreenshot saves the current screen to ~/.snake-arena/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".snake-arena", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the local terminal until the user quits.
func Run(game registry.Game, saver multiplayer.MatchResultSaver, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, saver, cfg, multiplayer.LocalSession, logger)
	model.quitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
