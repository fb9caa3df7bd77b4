package registry

import (
	"testing"

	"github.com/vovakirdan/snake-arena/internal/core"
)

type stubGame struct {
	id      string
	players int
}

func (g stubGame) ID() string                                { return g.id }
func (g stubGame) Title() string                             { return "Stub " + g.id }
func (g stubGame) Players() int                              { return g.players }
func (g stubGame) Reset(core.RuntimeConfig)                  {}
func (g stubGame) Step(core.MultiInputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                       {}
func (g stubGame) State() core.GameState                     { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_b", func() Game { return stubGame{id: "test_b", players: 2} })
	Register("test_a", func() Game { return stubGame{id: "test_a", players: 1} })

	if !Exists("test_a") || Exists("test_missing") {
		t.Fatal("Exists reports wrong registrations")
	}

	info, ok := Info("test_b")
	if !ok || info.Title != "Stub test_b" || info.Players != 2 {
		t.Errorf("Info(test_b) = %+v, %v", info, ok)
	}

	g, err := Create("test_a")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "test_a" {
		t.Errorf("created %q", g.ID())
	}
	if _, err := Create("test_missing"); err == nil {
		t.Error("expected error for unknown game")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return stubGame{id: "test_dup", players: 1} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("test_dup", func() Game { return stubGame{id: "test_dup", players: 1} })
}
