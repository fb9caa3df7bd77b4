package snake

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/registry"
)

// Settings are shared by every game instance the registry creates.
type Settings struct {
	Config  config.SnakeConfig
	Logger  *log.Logger
	Metrics MetricsRecorder
}

var (
	settingsMu sync.RWMutex
	settings   = Settings{Config: config.DefaultSnakeConfig()}
)

// Configure replaces the settings used by games created afterwards.
func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = s
}

func currentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// mode is one registered roster size.
type mode struct {
	id      string
	title   string
	players int
}

var modes = []mode{
	{id: "snake", title: "Snake", players: 1},
	{id: "snake_duel", title: "Snake Duel", players: 2},
	{id: "snake_trio", title: "Snake Trio", players: 3},
	{id: "snake_party", title: "Snake Party", players: 4},
}

func init() {
	for _, md := range modes {
		registry.Register(md.id, func() registry.Game {
			return New(md.id, md.title, md.players)
		})
	}
}

// ModeForPlayers returns the registered game ID for a roster size.
func ModeForPlayers(players int) (string, bool) {
	for _, md := range modes {
		if md.players == players {
			return md.id, true
		}
	}
	return "", false
}

// Game adapts a Match to the platform's frame loop.
type Game struct {
	id      string
	title   string
	players int

	match    *Match
	input    *bufferedInput
	tickRate int
	tick     uint64
	err      error // Last error reported by the match

	screenW int
	screenH int
}

// New creates a game for a fixed roster size.
func New(id, title string, players int) *Game {
	return &Game{id: id, title: title, players: players}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Players returns the roster size.
func (g *Game) Players() int {
	return g.players
}

// Reset builds a fresh match from the shared settings.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	s := currentSettings()
	mc := s.Config
	mc.Players = g.players

	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.tick = 0
	g.err = nil
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.input = newBufferedInput()

	g.match, g.err = NewMatch(mc,
		WithSeed(cfg.Seed),
		WithLogger(s.Logger),
		WithMetrics(s.Metrics),
		WithInput(g.input),
	)
}

// now converts the tick counter to elapsed clock time.
func (g *Game) now() time.Duration {
	return time.Duration(g.tick) * time.Second / time.Duration(g.tickRate)
}

// Step advances the game by one frame.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.match == nil {
		return core.StepResult{State: g.State()}
	}
	g.tick++
	now := g.now()

	for id := core.Player1; id <= core.PlayerID(g.players); id++ {
		if d, ok := DirectionFromAction(in.Player(id).Steering()); ok {
			g.input.push(id, d)
		}
	}

	state := g.match.State()
	switch {
	case in.Any(core.ActionPause):
		if state == StatePaused {
			_ = g.match.Resume(now)
		} else {
			_ = g.match.Pause(now)
		}
	case in.Any(core.ActionRestart) && state.Finished():
		g.match.Restart()
		g.input.reset()
		g.err = nil
	case in.Any(core.ActionReplay) && state == StateGameOver:
		if err := g.match.RequestReplay(); err != nil {
			g.err = err
		}
	}

	if _, err := g.match.Tick(now); err != nil {
		g.err = err
	}
	return core.StepResult{State: g.State()}
}

// State returns the platform view of the match.
func (g *Game) State() core.GameState {
	if g.match == nil {
		return core.GameState{GameOver: true}
	}
	snap := g.match.Snapshot()
	return core.GameState{
		Score:     g.match.ApplesEaten(),
		GameOver:  snap.State == StateGameOver,
		Paused:    snap.State == StatePaused,
		Replaying: snap.Replaying && !snap.State.Finished(),
	}
}

// Match returns the underlying match, nil when the config was rejected.
func (g *Game) Match() *Match {
	return g.match
}

// Err returns the last error reported by the match.
func (g *Game) Err() error {
	return g.err
}

// bufferedInput keeps the latest direction per player until a turn reads it.
type bufferedInput struct {
	pending map[core.PlayerID]Direction
}

func newBufferedInput() *bufferedInput {
	return &bufferedInput{pending: make(map[core.PlayerID]Direction)}
}

func (b *bufferedInput) push(id core.PlayerID, d Direction) {
	b.pending[id] = d
}

func (b *bufferedInput) reset() {
	clear(b.pending)
}

// Direction implements InputSource. Reading consumes the buffered press.
func (b *bufferedInput) Direction(id core.PlayerID) (Direction, bool) {
	d, ok := b.pending[id]
	if ok {
		delete(b.pending, id)
	}
	return d, ok
}
