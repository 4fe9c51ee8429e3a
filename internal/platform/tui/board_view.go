package tui

import (
	"fmt"

	"github.com/vovakirdan/beshoelled/internal/core"
	"github.com/vovakirdan/beshoelled/internal/match3"
	"github.com/vovakirdan/beshoelled/internal/session"
)

// Board geometry in terminal cells.
const (
	cellW    = 4
	cellH    = 2
	frameTop = 2
	labelGap = 4
)

const (
	title         = "BESHOELLED"
	newGameLabel  = "[ New Game ]"
	newTimedLabel = "[ New Timed Game ]"
	overlayHint   = "n: new game   t: new timed game"
)

// layout places the board and the HUD on a screen of a given width.
type layout struct {
	frame    core.Rect // box around the grid
	grid     core.Rect // cells area, cellW x cellH per piece
	newGame  core.Rect
	newTimed core.Rect
}

func computeLayout(screenW, cols, rows int) layout {
	gridW, gridH := cols*cellW, rows*cellH
	frameX := core.Max(0, (screenW-(gridW+2))/2)

	l := layout{
		frame: core.NewRect(frameX, frameTop, gridW+2, gridH+2),
		grid:  core.NewRect(frameX+1, frameTop+1, gridW, gridH),
	}

	labelY := l.frame.Bottom() + 1
	total := len(newGameLabel) + labelGap + len(newTimedLabel)
	labelX := core.Max(0, (screenW-total)/2)
	l.newGame = core.NewRect(labelX, labelY, len(newGameLabel), 1)
	l.newTimed = core.NewRect(l.newGame.Right()+labelGap, labelY, len(newTimedLabel), 1)
	return l
}

type hitTarget int

const (
	hitNone hitTarget = iota
	hitCell
	hitNewGame
	hitNewTimedGame
)

// hit resolves a terminal position to what was clicked there.
func (l layout) hit(x, y int) (hitTarget, match3.Point) {
	if col, row, ok := l.grid.GridCell(x, y, cellW, cellH); ok {
		return hitCell, match3.Point{X: col, Y: row}
	}
	switch {
	case l.newGame.Contains(x, y):
		return hitNewGame, match3.Point{}
	case l.newTimed.Contains(x, y):
		return hitNewTimedGame, match3.Point{}
	}
	return hitNone, match3.Point{}
}

// hudLine is the status row above the board.
func hudLine(v session.View) string {
	mode := "Untimed"
	if v.Timed {
		mode = "Timed"
	}
	line := fmt.Sprintf("%s   Score: %d   (High: %d)", mode, v.Score, v.HighScore())
	if v.Timed {
		line += fmt.Sprintf("   Time left: %d", core.Max(0, v.TimeRemaining))
	}
	return line
}

// drawGame draws one frame of v into scr and returns the layout used.
// The cursor is shown only while a game is running.
func drawGame(scr *core.Screen, v session.View, cursor match3.Point, notes []string) layout {
	scr.Clear()
	l := computeLayout(scr.Width(), v.Width, v.Height)

	scr.DrawTextCentered(0, title, core.ColorYellow)
	scr.DrawTextCentered(1, hudLine(v), core.ColorWhite)
	scr.DrawBox(l.frame, core.ColorGray)

	for y, row := range v.Colors {
		for x, c := range row {
			drawPiece(scr, l.grid.CellRect(x, y, cellW, cellH), c)
		}
	}

	if v.HasSelection {
		scr.Highlight(l.grid.CellRect(v.Selected.X, v.Selected.Y, cellW, cellH))
	}
	if !v.GameOver() && len(v.Colors) > 0 {
		r := l.grid.CellRect(cursor.X, cursor.Y, cellW, cellH)
		for y := r.Y; y < r.Bottom(); y++ {
			scr.SetColored(r.X, y, '[', core.ColorBrightWhite)
			scr.SetColored(r.Right()-1, y, ']', core.ColorBrightWhite)
		}
	}

	scr.DrawTextColored(l.newGame.X, l.newGame.Y, newGameLabel, core.ColorWhite)
	scr.DrawTextColored(l.newTimed.X, l.newTimed.Y, newTimedLabel, core.ColorWhite)

	if len(notes) > 0 {
		drawOverlay(scr, l.grid, notes)
	}
	return l
}

func drawPiece(scr *core.Screen, r core.Rect, c match3.Color) {
	if c == match3.NoColor {
		scr.SetColored(r.X+1, r.Y, '·', core.ColorGray)
		return
	}
	color := core.PieceColor(int(c))
	for y := r.Y; y < r.Bottom(); y++ {
		scr.SetColored(r.X, y, '▐', color)
		scr.DrawHLine(r.X+1, y, r.W-2, '█', color)
		scr.SetColored(r.Right()-1, y, '▌', color)
	}
}

// drawOverlay boxes the latched notifications over the middle of area.
func drawOverlay(scr *core.Screen, area core.Rect, notes []string) {
	lines := append(append([]string{}, notes...), "", overlayHint)
	w := 0
	for _, line := range lines {
		w = core.Max(w, len([]rune(line)))
	}
	w += 4
	h := len(lines) + 2

	box := core.NewRect(
		core.Max(0, area.X+(area.W-w)/2),
		core.Max(0, area.Y+(area.H-h)/2),
		w, h,
	)
	scr.DrawRect(box, ' ', core.ColorDefault)
	scr.DrawBox(box, core.ColorBrightRed)
	for i, line := range lines {
		color := core.ColorBrightWhite
		if line == overlayHint {
			color = core.ColorGray
		}
		scr.DrawTextColored(box.X+2, box.Y+1+i, line, color)
	}
}
