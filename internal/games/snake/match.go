package snake

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
)

// Match owns one game: the grid, the roster, the apple and the lifecycle.
// It is not safe for concurrent use; a single goroutine drives Tick.
type Match struct {
	cfg       config.SnakeConfig
	seed      int64
	rng       *rand.Rand
	logger    *log.Logger
	presenter Presenter
	input     InputSource
	metrics   MetricsRecorder

	state    State
	resumeTo State // State to return to after a pause
	ready    bool  // Board and roster exist

	grid   *Grid
	snakes []*Snake
	apples *AppleSpawner
	alive  int
	turn   int
	eaten  int

	lastDied []core.PlayerID

	countdownStart time.Duration
	lastCountdown  int
	lastTurn       time.Duration
	pausedAt       time.Duration

	outcome   Outcome
	recording *Recording

	replay     *Replay
	showReplay bool
}

// Option configures a Match.
type Option func(*Match)

// WithSeed fixes the RNG seed used for spawns and apples.
func WithSeed(seed int64) Option {
	return func(m *Match) {
		m.seed = seed
	}
}

// WithLogger sets the match logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(m *Match) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPresenter sets the notification sink.
func WithPresenter(p Presenter) Option {
	return func(m *Match) {
		if p != nil {
			m.presenter = p
		}
	}
}

// WithMetrics sets the counters sink.
func WithMetrics(r MetricsRecorder) Option {
	return func(m *Match) {
		if r != nil {
			m.metrics = r
		}
	}
}

// WithInput sets the per-turn direction source. Without one every snake keeps its heading.
func WithInput(in InputSource) Option {
	return func(m *Match) {
		m.input = in
	}
}

// NewMatch creates a match in the Initializing state.
func NewMatch(cfg config.SnakeConfig, opts ...Option) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Match{
		cfg:       cfg,
		seed:      time.Now().UnixNano(),
		logger:    log.New(io.Discard),
		presenter: NopPresenter{},
		metrics:   nopMetrics{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.reset(m.seed)
	return m, nil
}

// reset discards all match state and returns to Initializing.
func (m *Match) reset(seed int64) {
	m.seed = seed
	m.rng = rand.New(rand.NewSource(seed))
	m.state = StateInitializing
	m.resumeTo = StateInitializing
	m.ready = false
	m.grid = nil
	m.snakes = nil
	m.apples = nil
	m.alive = 0
	m.turn = 0
	m.eaten = 0
	m.lastDied = nil
	m.countdownStart = 0
	m.lastCountdown = -1
	m.lastTurn = 0
	m.pausedAt = 0
	m.outcome = Outcome{}
	m.recording = nil
	m.replay = nil
	m.showReplay = false
}

// Tick advances the state machine. now is the elapsed clock time and must not
// go backwards. At most one turn is played per call.
func (m *Match) Tick(now time.Duration) (State, error) {
	switch m.state {
	case StateInitializing:
		if err := m.setup(); err != nil {
			return m.abort(err)
		}
		m.countdownStart = now
		m.state = StateCountingDown
		m.logger.Info("match started", "players", m.cfg.Players,
			"board", fmt.Sprintf("%dx%d", m.cfg.Board.Width, m.cfg.Board.Height), "seed", m.seed)
		m.announceCountdown(now)

	case StateCountingDown:
		if now-m.countdownStart < m.cfg.Countdown {
			m.announceCountdown(now)
			break
		}
		if _, err := m.apples.SpawnInitial(); err != nil {
			return m.abort(err)
		}
		m.lastTurn = now
		m.state = StatePlaying

	case StatePlaying:
		if now-m.lastTurn < m.cfg.TurnDuration {
			break
		}
		m.lastTurn = now
		if err := m.playTurn(); err != nil {
			return m.abort(err)
		}

	case StateShowGameOver:
		m.presenter.GameOver(m.outcome)
		m.state = StateGameOver

	case StatePrepareReplay:
		rp, err := NewReplay(*m.recording)
		if err != nil {
			return m.abortReplay(err)
		}
		m.replay = rp
		m.showReplay = true
		rp.Grid().SetObserver(m.presenter.TileChanged)
		redraw(rp.Grid(), m.presenter)
		m.lastTurn = now
		m.state = StateReplaying
		m.logger.Info("replay started", "turns", m.recording.TotalTurns)

	case StateReplaying:
		if now-m.lastTurn < m.cfg.TurnDuration && !m.replay.Done() {
			break
		}
		m.lastTurn = now
		done, err := m.replay.Step()
		if err != nil {
			return m.abortReplay(err)
		}
		m.presenter.TurnPlayed(m.replay.Turn(), m.replay.Snakes())
		if done {
			if got := m.replay.Outcome(); got.Reason != m.outcome.Reason || got.Winner != m.outcome.Winner {
				m.logger.Warn("replay diverged", "live", m.outcome.Reason, "replay", got.Reason)
			}
			m.logger.Info("replay finished", "turns", m.replay.Turn())
			m.state = StateShowGameOver
		}
	}

	return m.state, nil
}

// setup creates the board and spawns every player in roster order.
func (m *Match) setup() error {
	grid, err := NewGrid(m.cfg.Board.Width, m.cfg.Board.Height)
	if err != nil {
		return err
	}
	m.grid = grid
	m.apples = NewAppleSpawner(grid, m.rng, m.cfg.Apple.MaxAttempts)

	for i := 1; i <= m.cfg.Players; i++ {
		s := NewSnake(core.PlayerID(i), grid)
		pos, err := m.findSpawn()
		if err != nil {
			return fmt.Errorf("spawn player %d: %w", i, err)
		}
		if err := s.Respawn(pos, m.cfg.InitialLength); err != nil {
			return err
		}
		m.snakes = append(m.snakes, s)
		m.logger.Debug("player spawned", "player", i, "pos", pos, "facing", s.Direction())
	}
	m.alive = len(m.snakes)
	m.ready = true

	grid.SetObserver(m.presenter.TileChanged)
	redraw(grid, m.presenter)
	return nil
}

// findSpawn picks a head position whose whole initial body fits on Empty cells.
// Columns are drawn from [initialLength, width-initialLength-1).
func (m *Match) findSpawn() (Coord, error) {
	l := m.cfg.InitialLength
	w, h := m.grid.Width(), m.grid.Height()
	cols := w - 2*l - 1
	if cols <= 0 {
		return Coord{}, ErrNoEmptyTile
	}

	for range m.cfg.MaxAppleAttempts() {
		pos := Coord{X: l + m.rng.Intn(cols), Y: 1 + m.rng.Intn(h-2)}
		if m.spawnFits(pos) {
			return pos, nil
		}
	}

	var fits []Coord
	for y := 1; y < h-1; y++ {
		for x := l; x < w-l-1; x++ {
			if pos := (Coord{X: x, Y: y}); m.spawnFits(pos) {
				fits = append(fits, pos)
			}
		}
	}
	if len(fits) == 0 {
		return Coord{}, ErrNoEmptyTile
	}
	return fits[m.rng.Intn(len(fits))], nil
}

func (m *Match) spawnFits(pos Coord) bool {
	dx := deltaX(spawnFacing(m.grid.Width(), pos))
	for i := range m.cfg.InitialLength {
		content, err := m.grid.TileAt(Coord{X: pos.X - i*dx, Y: pos.Y})
		if err != nil || content != Empty {
			return false
		}
	}
	return true
}

// playTurn moves every living snake once.
func (m *Match) playTurn() error {
	m.turn++
	rep, err := playRound(m.grid, m.snakes, m.liveMove, func() error {
		_, err := m.apples.Relocate()
		return err
	})
	m.eaten += rep.eaten
	m.metrics.TurnPlayed()
	for range rep.eaten {
		m.metrics.AppleEaten()
	}
	if err != nil {
		return fmt.Errorf("turn %d: %w", m.turn, err)
	}

	for _, id := range rep.died {
		m.alive--
		m.metrics.PlayerEliminated()
		m.logger.Info("player eliminated", "player", id, "turn", m.turn)
	}
	if len(rep.died) > 0 {
		m.lastDied = rep.died
	}
	m.logger.Debug("turn played", "turn", m.turn, "alive", m.alive, "apples", m.eaten)
	m.presenter.TurnPlayed(m.turn, views(m.snakes))

	switch {
	case rep.boardFull:
		m.finish(ReasonBoardFull, core.PlayerNone)
	case m.alive == 0:
		m.finish(ReasonEliminated, decideWinner(len(m.snakes), m.lastDied))
	}
	return nil
}

func (m *Match) liveMove(s *Snake) (MoveOutcome, error) {
	if m.input != nil {
		if d, ok := m.input.Direction(s.ID()); ok {
			s.ChangeDirection(d)
		}
	}
	return s.Tick()
}

// finish records the outcome and the replay script, then shows the end screen.
func (m *Match) finish(reason Reason, winner core.PlayerID) {
	m.outcome = Outcome{
		Reason:  reason,
		Winner:  winner,
		Players: m.cfg.Players,
		Turns:   m.turn,
		Apples:  m.eaten,
		Lengths: lengths(m.snakes),
	}
	if m.ready {
		rec := Recording{
			Width:         m.grid.Width(),
			Height:        m.grid.Height(),
			InitialLength: m.cfg.InitialLength,
			TurnDuration:  m.cfg.TurnDuration,
			Apples:        m.apples.History(),
			TotalTurns:    m.turn,
		}
		for _, s := range m.snakes {
			rec.Players = append(rec.Players, PlayerRecord{ID: s.ID(), Spawn: s.Spawn(), Moves: s.Moves()})
		}
		m.recording = &rec
	}
	m.state = StateShowGameOver
	m.metrics.MatchFinished(string(reason), m.turn)
	m.logger.Info("game over", "reason", reason, "winner", winner, "turns", m.turn, "apples", m.eaten)
}

func (m *Match) abort(err error) (State, error) {
	m.logger.Error("match aborted", "turn", m.turn, "err", err)
	m.finish(ReasonAborted, core.PlayerNone)
	m.outcome.Err = err.Error()
	return m.state, err
}

// abortReplay ends a broken replay without touching the live result.
func (m *Match) abortReplay(err error) (State, error) {
	m.logger.Error("replay aborted", "err", err)
	m.state = StateShowGameOver
	return m.state, err
}

func (m *Match) announceCountdown(now time.Duration) {
	secs := countdownSeconds(m.cfg.Countdown, now-m.countdownStart)
	if secs != m.lastCountdown {
		m.lastCountdown = secs
		m.presenter.Countdown(secs)
	}
}

// Pause freezes the countdown, live play or a replay.
func (m *Match) Pause(now time.Duration) error {
	switch m.state {
	case StateCountingDown, StatePlaying, StateReplaying:
	default:
		return fmt.Errorf("pause in %s: %w", m.state, ErrInvalidState)
	}
	m.resumeTo = m.state
	m.pausedAt = now
	m.state = StatePaused
	return nil
}

// Resume continues a paused match. Time spent paused does not count towards
// the countdown or the turn clock.
func (m *Match) Resume(now time.Duration) error {
	if m.state != StatePaused {
		return fmt.Errorf("resume in %s: %w", m.state, ErrInvalidState)
	}
	d := now - m.pausedAt
	m.countdownStart += d
	m.lastTurn += d
	m.state = m.resumeTo
	return nil
}

// RequestReplay starts replaying the finished match.
func (m *Match) RequestReplay() error {
	if m.state != StateGameOver || m.recording == nil {
		return fmt.Errorf("replay in %s: %w", m.state, ErrInvalidState)
	}
	m.state = StatePrepareReplay
	return nil
}

// Restart discards the match and starts over with a seed drawn from the current RNG.
func (m *Match) Restart() {
	m.reset(m.rng.Int63())
}

// State returns the current lifecycle state.
func (m *Match) State() State {
	return m.state
}

// Seed returns the seed of the current run.
func (m *Match) Seed() int64 {
	return m.seed
}

// Config returns the match configuration.
func (m *Match) Config() config.SnakeConfig {
	return m.cfg
}

// Turn returns the number of live turns played.
func (m *Match) Turn() int {
	return m.turn
}

// ApplesEaten returns the number of apples consumed in live play.
func (m *Match) ApplesEaten() int {
	return m.eaten
}

// Outcome returns the live result. It is only meaningful once the match finished.
func (m *Match) Outcome() Outcome {
	return m.outcome
}

// Recording returns the replay script of a finished match.
func (m *Match) Recording() (Recording, bool) {
	if m.recording == nil {
		return Recording{}, false
	}
	return *m.recording, true
}

// redraw reports every cell of g to p.
func redraw(g *Grid, p Presenter) {
	g.Each(p.TileChanged)
}
