package snake

import (
	"fmt"

	"github.com/vovakirdan/snake-arena/internal/core"
)

const hudHeight = 2

// Render draws the board, the HUD and the current overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.screenW, g.screenH = dst.Width(), dst.Height()

	if g.match == nil {
		msg := "Invalid config"
		if g.err != nil {
			msg = g.err.Error()
		}
		renderOverlay(dst, "Cannot start match", msg)
		return
	}

	snap := g.match.Snapshot()
	renderHUD(dst, g.title, snap)

	if dst.Width() < snap.Width || dst.Height() < snap.Height+hudHeight {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", snap.Width, snap.Height+hudHeight))
		return
	}

	offX := (dst.Width() - snap.Width) / 2
	offY := hudHeight
	renderBoard(dst, snap, offX, offY)

	switch snap.State {
	case StateCountingDown:
		renderOverlay(dst, "Get ready", fmt.Sprintf("%d", snap.Countdown))
	case StatePaused:
		renderOverlay(dst, "Paused", "Press P to continue")
	case StateShowGameOver, StateGameOver:
		renderOverlay(dst, outcomeTitle(snap.Outcome), "R restart  V replay  B menu")
	}
}

// renderHUD draws the status line with one length counter per player.
func renderHUD(dst *core.Screen, name string, snap Snapshot) {
	x := 1
	title := " " + name
	if snap.Replaying {
		title += " [REPLAY]"
	}
	dst.DrawText(0, 0, title)
	x += len([]rune(title))

	for _, v := range snap.Snakes {
		label := fmt.Sprintf("  P%d:%d", v.ID, v.Len())
		if !v.Alive {
			label = fmt.Sprintf("  P%d:x", v.ID)
		}
		for _, r := range label {
			dst.SetColored(x, 0, r, core.PlayerColor(v.ID))
			x++
		}
	}
	dst.DrawText(x, 0, fmt.Sprintf("  Turn %d  Apples %d", snap.Turn, snap.Apples))

	for i := range dst.Width() {
		dst.Set(i, 1, '─')
	}
}

// renderBoard draws every cell, heads and bodies in their player's color.
func renderBoard(dst *core.Screen, snap Snapshot, offX, offY int) {
	type owner struct {
		id   core.PlayerID
		head bool
	}
	owners := make(map[Coord]owner)
	for _, v := range snap.Snakes {
		for i, c := range v.Segments {
			owners[c] = owner{id: v.ID, head: i == 0}
		}
	}

	for y := range snap.Height {
		for x := range snap.Width {
			sx, sy := offX+x, offY+y
			switch snap.TileAt(x, y) {
			case Border:
				dst.SetColored(sx, sy, '#', core.ColorGray)
			case Apple:
				dst.SetColored(sx, sy, '*', core.ColorRed)
			case SnakeBody:
				o := owners[Coord{X: x, Y: y}]
				r := 'o'
				if o.head {
					r = 'O'
				}
				dst.SetColored(sx, sy, r, core.PlayerColor(o.id))
			}
		}
	}
}

func outcomeTitle(o Outcome) string {
	switch o.Reason {
	case ReasonAborted:
		return "Match aborted"
	case ReasonBoardFull:
		return "Board full!"
	}
	if o.Players < 2 {
		return fmt.Sprintf("Game Over - %d apples", o.Apples)
	}
	if o.Winner == core.PlayerNone {
		return "Draw!"
	}
	return fmt.Sprintf("Player %d wins!", o.Winner)
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(w, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
