package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake"
	"github.com/vovakirdan/snake-arena/internal/multiplayer"
)

var (
	flagSimPlayers  int
	flagSimMaxTurns int
	flagSimJSON     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless match with bot steering",
	Long: `Play a match without a terminal UI. Every player is driven by a bot
that turns at random but avoids walking into an occupied cell when it can.
After the match the recording is replayed and checked against the live
result.

Examples:
  snake sim --players 4 --seed 42
  snake sim --players 2 --json > match.json`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimPlayers, "players", 2, "Roster size (1-4)")
	simCmd.Flags().IntVar(&flagSimMaxTurns, "max-turns", 10000, "Abort the match after this many turns")
	simCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print the outcome and recording as JSON")
}

// simReport is the JSON output of sim.
type simReport struct {
	MatchID   multiplayer.MatchID `json:"match_id"`
	Seed      int64               `json:"seed"`
	Outcome   snake.Outcome       `json:"outcome"`
	Verified  bool                `json:"replay_verified"`
	Recording snake.Recording     `json:"recording"`
}

func runSim(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := loadMatchConfig(flagSimPlayers)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var match *snake.Match
	bot := newBot(seed)
	match, err = snake.NewMatch(cfg,
		snake.WithSeed(seed),
		snake.WithLogger(logger.WithPrefix("match")),
		snake.WithInput(snake.InputFunc(func(id core.PlayerID) (snake.Direction, bool) {
			return bot.steer(match.Snapshot(), id)
		})),
	)
	if err != nil {
		return err
	}

	var now time.Duration
	for match.State() != snake.StateGameOver {
		if match.Turn() >= flagSimMaxTurns {
			return fmt.Errorf("match still running after %d turns", match.Turn())
		}
		if _, err := match.Tick(now); err != nil {
			return fmt.Errorf("match aborted: %w", err)
		}
		now += cfg.TurnDuration
	}

	rec, ok := match.Recording()
	if !ok {
		return fmt.Errorf("match finished without a recording")
	}
	verified, err := verifyReplay(rec, match.Outcome(), logger)
	if err != nil {
		return err
	}

	report := simReport{
		MatchID:   multiplayer.NewMatchID(),
		Seed:      seed,
		Outcome:   match.Outcome(),
		Verified:  verified,
		Recording: rec,
	}
	if flagSimJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	o := report.Outcome
	fmt.Printf("Match %s (seed %d)\n", report.MatchID, seed)
	fmt.Printf("  Result:  %s\n", describeOutcome(o))
	fmt.Printf("  Turns:   %d\n", o.Turns)
	fmt.Printf("  Apples:  %d\n", o.Apples)
	for id := core.Player1; int(id) <= o.Players; id++ {
		fmt.Printf("  P%d length %d\n", id, o.Lengths[id])
	}
	verdict := "matches"
	if !verified {
		verdict = "DIVERGED"
	}
	fmt.Printf("  Replay:  %s\n", verdict)
	return nil
}

// verifyReplay re-runs rec and compares the result with the live outcome.
func verifyReplay(rec snake.Recording, live snake.Outcome, logger *log.Logger) (bool, error) {
	r, err := snake.NewReplay(rec)
	if err != nil {
		return false, err
	}
	for {
		done, err := r.Step()
		if err != nil {
			return false, err
		}
		if done {
			break
		}
	}
	got := r.Outcome()
	ok := got.Reason == live.Reason && got.Winner == live.Winner && got.Turns == live.Turns && got.Apples == live.Apples
	if !ok {
		logger.Warn("replay diverged", "live", live, "replay", got)
	}
	return ok, nil
}

func describeOutcome(o snake.Outcome) string {
	switch {
	case o.Reason == snake.ReasonBoardFull:
		return "board full"
	case o.Reason == snake.ReasonAborted:
		return "aborted: " + o.Err
	case o.Players < 2:
		return "game over"
	case o.Draw():
		return "draw"
	default:
		return fmt.Sprintf("player %d wins", o.Winner)
	}
}

// bot steers at random, preferring moves into free cells.
type bot struct {
	rng *rand.Rand
}

func newBot(seed int64) *bot {
	// Offset so the bot does not mirror the match RNG.
	return &bot{rng: rand.New(rand.NewSource(seed ^ 0x5eed))}
}

var allDirections = []snake.Direction{snake.DirUp, snake.DirDown, snake.DirLeft, snake.DirRight}

func (b *bot) steer(snap snake.Snapshot, id core.PlayerID) (snake.Direction, bool) {
	var me *snake.SnakeView
	for i := range snap.Snakes {
		if snap.Snakes[i].ID == id {
			me = &snap.Snakes[i]
		}
	}
	if me == nil || !me.Alive || len(me.Segments) == 0 {
		return snake.DirNone, false
	}
	head := me.Segments[0]

	// Keep going straight most of the time when that is safe.
	if free(snap, head.Step(me.Direction)) && b.rng.Intn(4) != 0 {
		return snake.DirNone, false
	}
	for _, i := range b.rng.Perm(len(allDirections)) {
		d := allDirections[i]
		if d == me.Direction.Opposite() {
			continue
		}
		if free(snap, head.Step(d)) {
			return d, true
		}
	}
	return snake.DirNone, false
}

func free(snap snake.Snapshot, c snake.Coord) bool {
	switch snap.TileAt(c.X, c.Y) {
	case snake.Empty, snake.Apple:
		return c.X > 0 && c.Y > 0 && c.X < snap.Width-1 && c.Y < snap.Height-1
	}
	return false
}
