package snake

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/snake-arena/internal/core"
)

func TestViewerPlaysRecordingAtItsPace(t *testing.T) {
	rec := earlyEliminationRecording()
	rec.TurnDuration = 200 * time.Millisecond

	v, err := NewViewer("Snake Duel", rec)
	if err != nil {
		t.Fatalf("NewViewer failed: %v", err)
	}
	v.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 10})

	in := core.NewMultiInputFrame()
	for range 10 {
		v.Step(in)
	}
	if got := v.Replay().Turn(); got != 5 {
		t.Errorf("turn after 1s = %d, expected 5", got)
	}
	if v.State().GameOver {
		t.Error("viewer finished early")
	}

	for range 40 {
		v.Step(in)
	}
	st := v.State()
	if !st.GameOver || st.Replaying {
		t.Errorf("state after playback = %+v", st)
	}
	if w := v.Replay().Outcome().Winner; w != 2 {
		t.Errorf("winner = %v, expected player 2", w)
	}
	if v.Err() != nil {
		t.Errorf("unexpected error: %v", v.Err())
	}
}

func TestViewerPauseAndRewind(t *testing.T) {
	rec := earlyEliminationRecording()
	rec.TurnDuration = 100 * time.Millisecond
	v, err := NewViewer("Snake Duel", rec)
	if err != nil {
		t.Fatalf("NewViewer failed: %v", err)
	}
	v.Reset(core.RuntimeConfig{TickRate: 10})

	idle := core.NewMultiInputFrame()
	v.Step(idle)
	v.Step(idle)

	pause := core.NewMultiInputFrame()
	pause.Press(core.Player1, core.ActionPause)
	v.Step(pause)
	if !v.State().Paused {
		t.Fatal("viewer not paused")
	}
	turn := v.Replay().Turn()
	v.Step(idle)
	if v.Replay().Turn() != turn {
		t.Error("paused viewer advanced")
	}

	rewind := core.NewMultiInputFrame()
	rewind.Press(core.Player2, core.ActionRestart)
	v.Step(rewind)
	if v.Replay().Turn() != 0 || v.State().Paused {
		t.Errorf("rewind left turn=%d paused=%v", v.Replay().Turn(), v.State().Paused)
	}
}

func TestNewViewerRejectsEmptyRecording(t *testing.T) {
	if _, err := NewViewer("x", Recording{Width: 10, Height: 10}); err == nil {
		t.Error("expected error for a recording without players")
	}
}

func TestViewerRender(t *testing.T) {
	v, err := NewViewer("Snake Duel", earlyEliminationRecording())
	if err != nil {
		t.Fatalf("NewViewer failed: %v", err)
	}
	screen := core.NewScreen(40, 16)
	v.Render(screen)

	if !strings.Contains(screen.Row(0), "[REPLAY]") {
		t.Errorf("HUD missing replay marker: %q", screen.Row(0))
	}
	out := screen.String()
	if !strings.Contains(out, "*") || !strings.Contains(out, "O") {
		t.Error("board missing apple or snake heads")
	}
}
