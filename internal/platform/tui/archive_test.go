package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// playAndArchive finishes one solo match into store.
func playAndArchive(t *testing.T, store *storage.Store) {
	t.Helper()
	m := newTestGameModel(t, "snake", store)
	tickUntilGameOver(t, m)
}

func TestResultLabel(t *testing.T) {
	tests := []struct {
		rec  storage.MatchRecord
		want string
	}{
		{storage.MatchRecord{Players: 1, EndReason: "eliminated"}, "game over"},
		{storage.MatchRecord{Players: 2, EndReason: "eliminated", Winner: 2}, "P2 wins"},
		{storage.MatchRecord{Players: 4, EndReason: "eliminated"}, "draw"},
		{storage.MatchRecord{Players: 2, EndReason: "board_full"}, "board full"},
		{storage.MatchRecord{Players: 2, EndReason: "aborted", Winner: 1}, "aborted"},
	}
	for _, tt := range tests {
		if got := resultLabel(tt.rec); got != tt.want {
			t.Errorf("resultLabel(%+v) = %q, expected %q", tt.rec, got, tt.want)
		}
	}
}

func TestArchiveListsMatchesOfSelectedMode(t *testing.T) {
	fastSnake(t)
	store := openStore(t)
	playAndArchive(t, store)
	playAndArchive(t, store)

	a := NewArchiveModel(store, 100, 30)
	// Modes are sorted by ID, so solo comes first.
	if a.games[a.gameCursor].ID != "snake" {
		t.Fatalf("first mode = %q", a.games[a.gameCursor].ID)
	}
	if len(a.matches) != 2 {
		t.Fatalf("listed %d matches, expected 2", len(a.matches))
	}
	if !strings.Contains(a.View(), "MATCH ARCHIVE - Snake") {
		t.Error("title missing from view")
	}

	next, _ := a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = next.(ArchiveModel)
	if len(a.matches) != 0 {
		t.Errorf("duel archive lists %d matches, expected 0", len(a.matches))
	}
	if !strings.Contains(a.View(), "No matches archived yet") {
		t.Error("empty archive message missing")
	}
}

func TestArchiveSelectReplaysMatch(t *testing.T) {
	fastSnake(t)
	store := openStore(t)
	playAndArchive(t, store)

	a := NewArchiveModel(store, 60, 24)
	next, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = next.(ArchiveModel)
	if a.Selected() == nil || cmd == nil {
		t.Fatal("enter did not select the match")
	}

	viewer, err := NewArchivedViewer(*a.Selected())
	if err != nil {
		t.Fatalf("NewArchivedViewer failed: %v", err)
	}
	if viewer.Title() != "Snake" || viewer.Players() != 1 {
		t.Errorf("viewer %q with %d players", viewer.Title(), viewer.Players())
	}

	// The replay must end exactly where the archived match ended.
	viewer.Reset(core.RuntimeConfig{TickRate: 20})
	in := core.NewMultiInputFrame()
	for range 500 {
		if viewer.Step(in).State.GameOver {
			break
		}
	}
	out := viewer.Replay().Outcome()
	if out.Turns != a.Selected().Turns || string(out.Reason) != a.Selected().EndReason {
		t.Errorf("replay ended at turn %d (%s), archive says %d (%s)",
			out.Turns, out.Reason, a.Selected().Turns, a.Selected().EndReason)
	}
}

func TestArchiveClearMode(t *testing.T) {
	fastSnake(t)
	store := openStore(t)
	playAndArchive(t, store)

	a := NewArchiveModel(store, 60, 24)
	next, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	a = next.(ArchiveModel)
	if len(a.matches) != 0 {
		t.Errorf("%d matches left after clearing", len(a.matches))
	}
	if n, _ := store.RecentMatches(0); len(n) != 0 {
		t.Errorf("store still holds %d matches", len(n))
	}
}

func TestNewArchivedViewerRejectsGarbage(t *testing.T) {
	_, err := NewArchivedViewer(storage.MatchRecord{MatchID: "x", Recording: []byte("{nope")})
	if err == nil {
		t.Error("expected decode error")
	}
}

func TestArchiveBackAndQuit(t *testing.T) {
	a := NewArchiveModel(nil, 60, 24)
	next, _ := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ArchiveModel).IsGoingBack() {
		t.Error("esc did not go back")
	}
	next, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !next.(ArchiveModel).IsQuitting() {
		t.Error("q did not quit")
	}
}

func TestSessionFlow(t *testing.T) {
	fastSnake(t)
	store := openStore(t)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 20, Seed: 3}
	s := NewSessionModel(store, cfg, "local", log.New(io.Discard))

	update := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	update(tea.KeyMsg{Type: tea.KeyEnter})
	if s.view != viewGame || s.gameModel == nil {
		t.Fatalf("enter on the menu left view %d", s.view)
	}
	for range 500 {
		update(TickMsg{Gen: s.gameModel.gen})
		if s.gameModel.gameState.GameOver {
			break
		}
	}
	update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.view != viewMenu {
		t.Fatalf("esc after game over left view %d", s.view)
	}

	update(tea.KeyMsg{Type: tea.KeyTab})
	if s.view != viewArchive || len(s.archive.matches) != 1 {
		t.Fatalf("archive view %d with %d matches", s.view, len(s.archive.matches))
	}

	update(tea.KeyMsg{Type: tea.KeyEnter})
	if s.view != viewGame || !s.fromArch {
		t.Fatalf("replay did not start, view %d", s.view)
	}
	update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	update(TickMsg{Gen: s.gameModel.gen})
	update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.view != viewArchive {
		t.Errorf("leaving a replay returned to view %d, expected the archive", s.view)
	}
}
