package snake

import (
	"strings"
	"testing"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/registry"
)

// withSettings swaps the shared settings for the duration of a test.
func withSettings(t *testing.T, cfg config.SnakeConfig) {
	t.Helper()
	prev := currentSettings()
	Configure(Settings{Config: cfg})
	t.Cleanup(func() { Configure(prev) })
}

func TestModesAreRegistered(t *testing.T) {
	for _, md := range modes {
		info, ok := registry.Info(md.id)
		if !ok {
			t.Fatalf("game %q not registered", md.id)
		}
		if info.Players != md.players || info.Title != md.title {
			t.Errorf("info(%q) = %+v", md.id, info)
		}
		id, ok := ModeForPlayers(md.players)
		if !ok || id != md.id {
			t.Errorf("ModeForPlayers(%d) = %q, %v", md.players, id, ok)
		}
	}
	if _, ok := ModeForPlayers(5); ok {
		t.Error("no mode is registered for five players")
	}
}

func TestGameDeterminism(t *testing.T) {
	withSettings(t, testConfig(2))
	cfg := core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 24, TickRate: 60}

	g1 := New("snake_duel", "Snake Duel", 2)
	g2 := New("snake_duel", "Snake Duel", 2)
	g1.Reset(cfg)
	g2.Reset(cfg)

	in := core.NewMultiInputFrame()
	for i := range 600 {
		in.Clear()
		switch i {
		case 20:
			in.Press(core.Player1, core.ActionDown)
		case 40:
			in.Press(core.Player2, core.ActionUp)
		case 70:
			in.Press(core.Player1, core.ActionLeft)
		}
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Match().Snapshot(), g2.Match().Snapshot()
	if s1.Turn != s2.Turn || s1.State != s2.State || s1.Apple != s2.Apple {
		t.Errorf("snapshots differ: turn %d/%d state %v/%v apple %v/%v",
			s1.Turn, s2.Turn, s1.State, s2.State, s1.Apple, s2.Apple)
	}
	for i := range s1.Cells {
		if s1.Cells[i] != s2.Cells[i] {
			t.Fatalf("boards differ at cell %d", i)
		}
	}
}

func TestGameClockPlaysOneTurnPerDuration(t *testing.T) {
	withSettings(t, testConfig(1)) // 100ms turns, no countdown
	g := New("snake", "Snake", 1)
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24, TickRate: 60})

	in := core.NewMultiInputFrame()
	// Frame 1 sets up, frame 2 starts play at 2/60s, a turn every 6 frames afterwards
	for range 2 + 6*3 {
		g.Step(in)
	}
	if turn := g.Match().Turn(); turn != 3 {
		t.Errorf("turn = %d after 20 frames, expected 3", turn)
	}
}

func TestGamePauseAndRestart(t *testing.T) {
	withSettings(t, testConfig(1))
	g := New("snake", "Snake", 1)
	g.Reset(core.RuntimeConfig{Seed: 3, ScreenW: 80, ScreenH: 24, TickRate: 60})

	in := core.NewMultiInputFrame()
	g.Step(in)
	g.Step(in)

	in.Press(core.Player1, core.ActionPause)
	if !g.Step(in).State.Paused {
		t.Fatal("pause action should pause the match")
	}
	in.Clear()
	g.Step(in)
	in.Press(core.Player1, core.ActionPause)
	if g.Step(in).State.Paused {
		t.Fatal("second pause action should resume")
	}

	in.Clear()
	for range 10000 {
		if g.State().GameOver {
			break
		}
		g.Step(in)
	}
	if !g.State().GameOver {
		t.Fatal("game never ended")
	}

	in.Press(core.Player1, core.ActionReplay)
	g.Step(in)
	in.Clear()
	g.Step(in)
	if !g.State().Replaying {
		t.Error("replay action should start the replay")
	}

	for range 10000 {
		if g.State().GameOver {
			break
		}
		g.Step(in)
	}
	in.Press(core.Player1, core.ActionRestart)
	g.Step(in)
	if g.State().GameOver || g.Match().Turn() != 0 {
		t.Error("restart should start a new match")
	}
}

func TestBufferedInputConsumesPresses(t *testing.T) {
	b := newBufferedInput()
	b.push(core.Player1, DirUp)
	b.push(core.Player1, DirLeft)

	if d, ok := b.Direction(core.Player1); !ok || d != DirLeft {
		t.Errorf("Direction = %v, %v; expected latest press left", d, ok)
	}
	if _, ok := b.Direction(core.Player1); ok {
		t.Error("a press should be consumed by the turn that reads it")
	}
	if _, ok := b.Direction(core.Player2); ok {
		t.Error("player 2 pressed nothing")
	}
}

func TestRenderDrawsBoard(t *testing.T) {
	withSettings(t, testConfig(2))
	g := New("snake_duel", "Snake Duel", 2)
	g.Reset(core.RuntimeConfig{Seed: 8, ScreenW: 80, ScreenH: 24, TickRate: 60})

	in := core.NewMultiInputFrame()
	g.Step(in)
	g.Step(in)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// 15x10 board centered below the HUD
	offX := (80 - 15) / 2
	if screen.Get(offX, 2) != '#' || screen.Get(offX+14, 11) != '#' {
		t.Errorf("border corners not drawn:\n%s", screen.String())
	}
	if heads := strings.Count(screen.String(), "O"); heads != 2 {
		t.Errorf("expected 2 heads on screen, found %d:\n%s", heads, screen.String())
	}
	if !strings.Contains(screen.Row(0), "P1:3") || !strings.Contains(screen.Row(0), "P2:3") {
		t.Errorf("HUD missing player lengths: %q", screen.Row(0))
	}
	if !strings.Contains(screen.String(), "*") {
		t.Error("apple not drawn")
	}
}
