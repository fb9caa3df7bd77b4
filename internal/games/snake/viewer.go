package snake

import (
	"fmt"
	"time"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// ViewerID is the game ID reported by archive viewers.
const ViewerID = "snake_replay"

// Viewer plays an archived recording back at its recorded pace.
// It satisfies registry.Game so the platform can run it like a live match.
type Viewer struct {
	title    string
	rec      Recording
	replay   *Replay
	tickRate int
	tick     int
	lastTurn time.Duration
	paused   bool
	err      error
}

// NewViewer validates rec and prepares its starting position.
func NewViewer(title string, rec Recording) (*Viewer, error) {
	r, err := NewReplay(rec)
	if err != nil {
		return nil, err
	}
	return &Viewer{title: title, rec: rec, replay: r, tickRate: 60}, nil
}

// ID returns ViewerID.
func (v *Viewer) ID() string {
	return ViewerID
}

// Title returns the display name.
func (v *Viewer) Title() string {
	return v.title
}

// Players returns the recorded roster size.
func (v *Viewer) Players() int {
	return len(v.rec.Players)
}

// Reset rewinds the playback to turn zero.
func (v *Viewer) Reset(cfg core.RuntimeConfig) {
	v.tickRate = cfg.TickRate
	if v.tickRate <= 0 {
		v.tickRate = 60
	}
	v.rewind()
}

func (v *Viewer) rewind() {
	v.tick = 0
	v.lastTurn = 0
	v.paused = false
	v.err = nil
	// The recording was validated by NewViewer.
	v.replay, _ = NewReplay(v.rec)
}

// Step advances playback by one frame. Pause toggles, Restart rewinds.
func (v *Viewer) Step(in core.MultiInputFrame) core.StepResult {
	switch {
	case in.Any(core.ActionRestart):
		v.rewind()
		return core.StepResult{State: v.State()}
	case in.Any(core.ActionPause):
		v.paused = !v.paused
	}
	if v.paused || v.replay.Done() {
		return core.StepResult{State: v.State()}
	}

	v.tick++
	now := time.Duration(v.tick) * time.Second / time.Duration(v.tickRate)
	if now-v.lastTurn >= v.rec.TurnDuration {
		v.lastTurn = now
		if _, err := v.replay.Step(); err != nil {
			v.err = err
		}
	}
	return core.StepResult{State: v.State()}
}

// State reports GameOver once the recording is exhausted.
func (v *Viewer) State() core.GameState {
	done := v.replay.Done()
	return core.GameState{
		Score:     v.replay.Outcome().Apples,
		GameOver:  done,
		Paused:    v.paused,
		Replaying: !done,
	}
}

// Replay returns the running playback.
func (v *Viewer) Replay() *Replay {
	return v.replay
}

// Err returns the error that stopped playback, if any.
func (v *Viewer) Err() error {
	return v.err
}

// Render draws the replay board with the same layout as a live match.
func (v *Viewer) Render(dst *core.Screen) {
	dst.Clear()

	snap := Snapshot{
		State:     StateReplaying,
		Turn:      v.replay.Turn(),
		Width:     v.rec.Width,
		Height:    v.rec.Height,
		Cells:     v.replay.Grid().Cells(),
		Snakes:    v.replay.Snakes(),
		Apples:    v.replay.Outcome().Apples,
		Replaying: true,
	}
	snap.Apple, snap.HasApple = v.replay.Apple()

	renderHUD(dst, v.title, snap)
	if dst.Width() < snap.Width || dst.Height() < snap.Height+hudHeight {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", snap.Width, snap.Height+hudHeight))
		return
	}
	renderBoard(dst, snap, (dst.Width()-snap.Width)/2, hudHeight)

	switch {
	case v.err != nil:
		renderOverlay(dst, "Replay diverged", v.err.Error())
	case v.replay.Done():
		renderOverlay(dst, outcomeTitle(v.replay.Outcome()), "R rewind  B back")
	case v.paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}
