// Package match3 implements the tile-matching board: random coloured pieces,
// run detection, removal, gravity refill, swap validation and deadlock search.
// It has no dependency on the terminal host so every rule is testable in
// isolation.
package match3

// Color is an index into the piece palette.
type Color int

// Palette entries, in the order the renderer maps them to screen colours.
const (
	Amber Color = iota
	Sky
	Forest
	Pink
	Lime
	Red
	Indigo
)

// PaletteSize is the number of distinct piece colours.
const PaletteSize = 7

// NoColor is reported by snapshots for an empty slot.
const NoColor Color = -1

var colorNames = [PaletteSize]string{"amber", "sky", "forest", "pink", "lime", "red", "indigo"}

// String returns the palette name of the colour.
func (c Color) String() string {
	if c < 0 || int(c) >= PaletteSize {
		return "none"
	}
	return colorNames[c]
}

// Rand is the randomness source used to colour new pieces.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Piece is a single tile on the board. Its position is implied by its slot.
type Piece struct {
	Color  Color
	Marked bool // part of a completed run, pending removal
}

// NewPiece returns an unmarked piece with a uniformly random colour
// from the first colors palette entries.
func NewPiece(rng Rand, colors int) *Piece {
	return &Piece{Color: Color(rng.Intn(colors))}
}
