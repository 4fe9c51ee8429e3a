package match3

import (
	"errors"
	"fmt"
	"strings"
)

// Board construction and selection errors.
var (
	ErrOutOfBounds = errors.New("coordinate outside the board")
	ErrUnstable    = errors.New("board did not stabilise")
	ErrBadSize     = errors.New("board must be at least 3x3")
	ErrBadColors   = errors.New("colour count out of range")
)

const (
	// MinSize is the smallest width or height a board may have.
	MinSize = 3
	// MinColors is the smallest palette a board may draw from. Two colours
	// cannot reliably settle a full size board without a run.
	MinColors = 3
	// DefaultMaxSetupPasses bounds the resolve loop run by Setup.
	DefaultMaxSetupPasses = 10000
)

// Point is a grid coordinate; X is the column, Y the row (0 is the top).
type Point struct {
	X, Y int
}

// Adjacent reports whether q is one of the four orthogonal neighbours of p.
func (p Point) Adjacent(q Point) bool {
	return abs(p.X-q.X)+abs(p.Y-q.Y) == 1
}

// Outcome describes what a selection did to the board.
type Outcome int

const (
	OutcomeNone       Outcome = iota // returned alongside an error
	OutcomeLocked                    // a move is still resolving, input ignored
	OutcomeSelected                  // first cell of a swap chosen
	OutcomeDeselected                // second cell not adjacent, selection cleared
	OutcomeSwapped                   // swap made a run and resolution started
	OutcomeReverted                  // swap made no run and was undone
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "None"
	case OutcomeLocked:
		return "Locked"
	case OutcomeSelected:
		return "Selected"
	case OutcomeDeselected:
		return "Deselected"
	case OutcomeSwapped:
		return "Swapped"
	case OutcomeReverted:
		return "Reverted"
	default:
		return "Unknown"
	}
}

// Board is a width x height grid of optional pieces.
//
// Outside of an in-flight resolution no slot is empty and no three
// same-coloured pieces line up in a row or column.
type Board struct {
	width  int
	height int
	colors int
	rng    Rand

	grid [][]*Piece // grid[y][x], nil is an empty slot

	selected     Point
	hasSelection bool

	pending int  // pieces removed by the move being resolved; non-zero locks input
	recheck bool // last compaction changed the grid
	moves   int  // accepted swaps

	maxSetupPasses int
}

// Option configures a Board.
type Option func(*Board)

// WithMaxSetupPasses overrides the bound on the Setup resolve loop.
func WithMaxSetupPasses(n int) Option {
	return func(b *Board) {
		b.maxSetupPasses = n
	}
}

// New creates a board filled with random pieces and resolved until stable.
func New(width, height, colors int, rng Rand, opts ...Option) (*Board, error) {
	b, err := newBoard(width, height, colors, rng, opts)
	if err != nil {
		return nil, err
	}
	if err := b.Setup(); err != nil {
		return nil, err
	}
	return b, nil
}

// FromColors builds a board from a row-major colour layout without resolving it.
// NoColor leaves a slot empty. rng colours the pieces spawned by later refills.
func FromColors(rows [][]Color, colors int, rng Rand, opts ...Option) (*Board, error) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}

	b, err := newBoard(width, len(rows), colors, rng, opts)
	if err != nil {
		return nil, err
	}

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("match3: row %d has %d cells, want %d: %w", y, len(row), width, ErrBadSize)
		}
		for x, c := range row {
			if c == NoColor {
				continue
			}
			if c < 0 || int(c) >= colors {
				return nil, fmt.Errorf("match3: colour %d at (%d,%d): %w", c, x, y, ErrBadColors)
			}
			b.grid[y][x] = &Piece{Color: c}
		}
	}
	return b, nil
}

func newBoard(width, height, colors int, rng Rand, opts []Option) (*Board, error) {
	if width < MinSize || height < MinSize {
		return nil, fmt.Errorf("match3: %dx%d: %w", width, height, ErrBadSize)
	}
	if colors < MinColors || colors > PaletteSize {
		return nil, fmt.Errorf("match3: %d colours: %w", colors, ErrBadColors)
	}

	b := &Board{
		width:          width,
		height:         height,
		colors:         colors,
		rng:            rng,
		maxSetupPasses: DefaultMaxSetupPasses,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.grid = make([][]*Piece, height)
	for y := range b.grid {
		b.grid[y] = make([]*Piece, width)
	}
	return b, nil
}

// Setup fills every empty slot and resolves runs until the board is stable.
// Nothing it removes counts towards a move, so input is never locked afterwards.
func (b *Board) Setup() error {
	for y := range b.grid {
		for x := range b.grid[y] {
			if b.grid[y][x] == nil {
				b.grid[y][x] = NewPiece(b.rng, b.colors)
			}
		}
	}

	for pass := 0; pass < b.maxSetupPasses; pass++ {
		found := b.DetectMatches()
		b.RemoveMarked()
		b.Compact()
		if !found && !b.recheck {
			b.pending = 0
			b.hasSelection = false
			return nil
		}
	}
	return fmt.Errorf("match3: setup after %d passes: %w", b.maxSetupPasses, ErrUnstable)
}

// DetectMatches marks every piece that is part of a run of three or more
// and reports whether any run exists. Marks accumulate across calls; use
// UnmarkAll before a check that must start clean.
func (b *Board) DetectMatches() bool {
	found := false
	for y := 0; y < b.height; y++ {
		for x := 0; x+2 < b.width; x++ {
			if b.markTriple(x, y, 1, 0) {
				found = true
			}
		}
	}
	for x := 0; x < b.width; x++ {
		for y := 0; y+2 < b.height; y++ {
			if b.markTriple(x, y, 0, 1) {
				found = true
			}
		}
	}
	return found
}

// markTriple marks the three pieces starting at (x, y) in direction (dx, dy)
// if they share a colour.
func (b *Board) markTriple(x, y, dx, dy int) bool {
	p := b.grid[y][x]
	q := b.grid[y+dy][x+dx]
	r := b.grid[y+2*dy][x+2*dx]
	if p == nil || q == nil || r == nil {
		return false
	}
	if p.Color != q.Color || p.Color != r.Color {
		return false
	}
	p.Marked, q.Marked, r.Marked = true, true, true
	return true
}

// UnmarkAll clears every mark without removing pieces.
func (b *Board) UnmarkAll() {
	for _, row := range b.grid {
		for _, p := range row {
			if p != nil {
				p.Marked = false
			}
		}
	}
}

// RemoveMarked empties every marked slot and adds the count to the
// pending removals of the current move.
func (b *Board) RemoveMarked() int {
	removed := 0
	for y, row := range b.grid {
		for x, p := range row {
			if p != nil && p.Marked {
				b.grid[y][x] = nil
				removed++
			}
		}
	}
	b.pending += removed
	return removed
}

// Compact performs one top-to-bottom gravity sweep: a piece above an empty
// slot drops one row, then an empty top slot gets a new piece. It returns
// the number of pieces spawned. NeedsRecheck reports whether anything moved.
func (b *Board) Compact() int {
	changed := false
	spawned := 0

	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height-1; y++ {
			if b.grid[y][x] != nil && b.grid[y+1][x] == nil {
				b.grid[y+1][x] = b.grid[y][x]
				b.grid[y][x] = nil
				changed = true
				y++ // the piece has taken its one step for this sweep
			}
		}
		if b.grid[0][x] == nil {
			b.grid[0][x] = NewPiece(b.rng, b.colors)
			spawned++
			changed = true
		}
	}

	b.recheck = changed
	return spawned
}

// ResolveStep runs one detect, remove and compact pass.
func (b *Board) ResolveStep() {
	b.DetectMatches()
	b.RemoveMarked()
	b.Compact()
}

// SelectPiece handles a click on (x, y).
//
// While a move is resolving the click is ignored. With nothing selected the
// cell becomes the selection. With a selection, an orthogonal neighbour is
// swapped with it; any other cell clears the selection without selecting
// itself.
func (b *Board) SelectPiece(x, y int) (Outcome, error) {
	p := Point{X: x, Y: y}
	if !b.InBounds(p) {
		return OutcomeNone, fmt.Errorf("match3: select (%d,%d) on %dx%d board: %w", x, y, b.width, b.height, ErrOutOfBounds)
	}

	if b.pending != 0 {
		return OutcomeLocked, nil
	}

	if !b.hasSelection {
		b.selected = p
		b.hasSelection = true
		return OutcomeSelected, nil
	}

	from := b.selected
	if !from.Adjacent(p) {
		b.hasSelection = false
		return OutcomeDeselected, nil
	}

	if b.SwapAndValidate(from, p) {
		return OutcomeSwapped, nil
	}
	return OutcomeReverted, nil
}

// SwapAndValidate exchanges the colours of two adjacent pieces and keeps the
// swap only if it completes a run, in which case resolution starts at once.
// It clears the selection and reports whether the swap was kept.
func (b *Board) SwapAndValidate(a, c Point) bool {
	b.hasSelection = false

	if !b.InBounds(a) || !b.InBounds(c) || !a.Adjacent(c) {
		return false
	}
	pa, pc := b.grid[a.Y][a.X], b.grid[c.Y][c.X]
	if pa == nil || pc == nil {
		return false
	}

	pa.Color, pc.Color = pc.Color, pa.Color
	if !b.DetectMatches() {
		pa.Color, pc.Color = pc.Color, pa.Color
		return false
	}

	b.moves++
	b.ResolveStep()
	return true
}

// HasLegalMove reports whether any single adjacent swap would complete a run.
// Every trial swap is undone; the board's colours and marks are left as they were.
func (b *Board) HasLegalMove() bool {
	for y := 0; y < b.height; y++ {
		for x := 0; x+1 < b.width; x++ {
			if b.trySwap(Point{X: x, Y: y}, Point{X: x + 1, Y: y}) {
				return true
			}
		}
	}
	for x := 0; x < b.width; x++ {
		for y := 0; y+1 < b.height; y++ {
			if b.trySwap(Point{X: x, Y: y}, Point{X: x, Y: y + 1}) {
				return true
			}
		}
	}
	return false
}

func (b *Board) trySwap(a, c Point) bool {
	pa, pc := b.grid[a.Y][a.X], b.grid[c.Y][c.X]
	if pa == nil || pc == nil {
		return false
	}

	pa.Color, pc.Color = pc.Color, pa.Color
	found := b.DetectMatches()
	pa.Color, pc.Color = pc.Color, pa.Color

	if found {
		b.UnmarkAll()
	}
	return found
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// NumColors returns the palette size pieces are drawn from.
func (b *Board) NumColors() int {
	return b.colors
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Point) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

// pieceAt returns a copy of the piece at (x, y) and false if the slot is empty
// or outside the board.
func (b *Board) pieceAt(x, y int) (Piece, bool) {
	if !b.InBounds(Point{X: x, Y: y}) || b.grid[y][x] == nil {
		return Piece{}, false
	}
	return *b.grid[y][x], true
}

// Selected returns the selected cell, if any.
func (b *Board) Selected() (Point, bool) {
	return b.selected, b.hasSelection
}

// PendingRemovals returns the pieces removed by the move still in flight.
func (b *Board) PendingRemovals() int {
	return b.pending
}

// ClearPending resets the pending removal count, releasing the move lock,
// and returns the count it held.
func (b *Board) ClearPending() int {
	n := b.pending
	b.pending = 0
	return n
}

// NeedsRecheck reports whether the last compaction changed the grid.
func (b *Board) NeedsRecheck() bool {
	return b.recheck
}

// Moves returns the number of swaps accepted on this board.
func (b *Board) Moves() int {
	return b.moves
}

// ColorGrid returns a row-major snapshot of the colours, NoColor for empty slots.
func (b *Board) ColorGrid() [][]Color {
	out := make([][]Color, b.height)
	for y, row := range b.grid {
		out[y] = make([]Color, b.width)
		for x, p := range row {
			if p == nil {
				out[y][x] = NoColor
				continue
			}
			out[y][x] = p.Color
		}
	}
	return out
}

// String renders the board one row per line using palette initials,
// '.' for empty slots and upper case for marked pieces.
func (b *Board) String() string {
	const initials = "asfplri"

	var sb strings.Builder
	for y, row := range b.grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, p := range row {
			switch {
			case p == nil:
				sb.WriteByte('.')
			case p.Marked:
				sb.WriteByte(initials[p.Color] - 'a' + 'A')
			default:
				sb.WriteByte(initials[p.Color])
			}
		}
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
