package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// steeringKeys maps each seat's keys to steering actions.
// Player 1 uses the arrows, the others share the left and middle of the keyboard.
var steeringKeys = map[string]struct {
	player core.PlayerID
	action core.Action
}{
	"up":    {core.Player1, core.ActionUp},
	"down":  {core.Player1, core.ActionDown},
	"left":  {core.Player1, core.ActionLeft},
	"right": {core.Player1, core.ActionRight},

	"w": {core.Player2, core.ActionUp},
	"s": {core.Player2, core.ActionDown},
	"a": {core.Player2, core.ActionLeft},
	"d": {core.Player2, core.ActionRight},

	"i": {core.Player3, core.ActionUp},
	"k": {core.Player3, core.ActionDown},
	"j": {core.Player3, core.ActionLeft},
	"l": {core.Player3, core.ActionRight},

	"t": {core.Player4, core.ActionUp},
	"g": {core.Player4, core.ActionDown},
	"f": {core.Player4, core.ActionLeft},
	"h": {core.Player4, core.ActionRight},
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	players int
}

// NewKeyMapper creates a key mapper for a roster of the given size.
// In a solo game wasd steers player 1 as well.
func NewKeyMapper(players int) *KeyMapper {
	return &KeyMapper{players: core.Clamp(players, 1, core.MaxPlayers)}
}

// MapKey translates a key message to a seat and an action.
// Shared actions (pause, restart, replay) are reported for Player1.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (player core.PlayerID, action core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.Player1, core.ActionQuit, true
	case "enter":
		return core.Player1, core.ActionConfirm, false
	case "b", "esc":
		return core.Player1, core.ActionBack, false
	case "p", " ":
		return core.Player1, core.ActionPause, false
	case "r":
		return core.Player1, core.ActionRestart, false
	case "v":
		return core.Player1, core.ActionReplay, false
	}

	if sk, ok := steeringKeys[key]; ok {
		if km.players == 1 && sk.player == core.Player2 {
			return core.Player1, sk.action, false
		}
		if int(sk.player) <= km.players {
			return sk.player, sk.action, false
		}
	}

	return core.PlayerNone, core.ActionNone, false
}

// MapKeyToMultiFrame records a key press in the per-player input frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	player, action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Press(player, action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionArchive
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab", "a":
		return MenuActionArchive
	}

	return MenuActionNone
}
