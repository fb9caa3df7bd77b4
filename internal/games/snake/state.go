package snake

import (
	"time"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// State is the match lifecycle state.
type State int

const (
	StateInitializing State = iota
	StateCountingDown
	StatePlaying
	StatePaused
	StateShowGameOver
	StateGameOver
	StatePrepareReplay
	StateReplaying
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateCountingDown:
		return "counting_down"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateShowGameOver:
		return "show_game_over"
	case StateGameOver:
		return "game_over"
	case StatePrepareReplay:
		return "prepare_replay"
	case StateReplaying:
		return "replaying"
	default:
		return "unknown"
	}
}

// Finished reports whether the match has reached its end screen.
func (s State) Finished() bool {
	return s == StateShowGameOver || s == StateGameOver
}

// Reason explains how a match ended.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonEliminated Reason = "eliminated" // Every snake died
	ReasonBoardFull  Reason = "board_full" // No free interior cell left
	ReasonAborted    Reason = "aborted"    // A fatal simulation error
)

// Outcome is the terminal result of a match or a replay.
type Outcome struct {
	Reason  Reason
	Winner  core.PlayerID // PlayerNone when there is no winner
	Players int
	Turns   int
	Apples  int
	Lengths map[core.PlayerID]int
	Err     string `json:",omitempty"` // Set for aborted matches
}

// Draw reports whether a multi-player match ended without a winner.
func (o Outcome) Draw() bool {
	return o.Players > 1 && o.Reason != ReasonNone && o.Winner == core.PlayerNone
}

// decideWinner picks the last survivor. died holds the players eliminated in
// the final turn; more than one means they went out together.
func decideWinner(players int, died []core.PlayerID) core.PlayerID {
	if players < 2 || len(died) != 1 {
		return core.PlayerNone
	}
	return died[0]
}

// Presenter receives simulation notifications. Implementations must not
// mutate the match from inside a callback.
type Presenter interface {
	TileChanged(c Coord, content Content)
	Countdown(seconds int)
	TurnPlayed(turn int, snakes []SnakeView)
	GameOver(outcome Outcome)
}

// NopPresenter ignores every notification.
type NopPresenter struct{}

func (NopPresenter) TileChanged(Coord, Content)  {}
func (NopPresenter) Countdown(int)               {}
func (NopPresenter) TurnPlayed(int, []SnakeView) {}
func (NopPresenter) GameOver(Outcome)            {}

// InputSource yields the direction a player picked for the coming turn.
// ok is false when the player keeps the previous heading.
type InputSource interface {
	Direction(id core.PlayerID) (d Direction, ok bool)
}

// InputFunc adapts a function to InputSource.
type InputFunc func(id core.PlayerID) (Direction, bool)

func (f InputFunc) Direction(id core.PlayerID) (Direction, bool) {
	return f(id)
}

// MetricsRecorder receives simulation counters.
type MetricsRecorder interface {
	TurnPlayed()
	AppleEaten()
	PlayerEliminated()
	MatchFinished(reason string, turns int)
}

type nopMetrics struct{}

func (nopMetrics) TurnPlayed()               {}
func (nopMetrics) AppleEaten()               {}
func (nopMetrics) PlayerEliminated()         {}
func (nopMetrics) MatchFinished(string, int) {}

// countdownSeconds returns the whole seconds left, rounded up.
func countdownSeconds(total, elapsed time.Duration) int {
	left := total - elapsed
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}
