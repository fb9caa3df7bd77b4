package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorGray
	ColorBrightWhite
)

// playerColors assigns a snake color per roster slot.
var playerColors = [...]Color{ColorGreen, ColorCyan, ColorMagenta, ColorYellow}

// PlayerColor returns the display color for a player.
// Unknown players get the default color.
func PlayerColor(id PlayerID) Color {
	i := int(id) - 1
	if i < 0 || i >= len(playerColors) {
		return ColorDefault
	}
	return playerColors[i]
}
