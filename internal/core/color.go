package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to a terminal style.
type Color uint8

// Piece colors, in palette order.
const (
	ColorDefault Color = iota
	ColorAmber
	ColorSky
	ColorForest
	ColorPink
	ColorLime
	ColorRed
	ColorIndigo
)

// Interface colors.
const (
	ColorGray Color = iota + 16
	ColorWhite
	ColorBrightWhite
	ColorYellow
	ColorBrightRed
)

// pieceColors follows the match3 palette order.
var pieceColors = [...]Color{ColorAmber, ColorSky, ColorForest, ColorPink, ColorLime, ColorRed, ColorIndigo}

// PieceColor returns the screen color of palette entry i, or ColorDefault
// when i is out of range.
func PieceColor(i int) Color {
	if i < 0 || i >= len(pieceColors) {
		return ColorDefault
	}
	return pieceColors[i]
}
