package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/laststep/internal/board"
	"github.com/rocketscienceinc/laststep/internal/entity"
	"github.com/rocketscienceinc/laststep/internal/input"
)

const (
	cellWidth = 3
	gridWidth = board.GridSize * cellWidth

	scoreboardRow = board.GridSize + 1
	buttonsRow    = board.GridSize + 3

	// awareness overlay radius in cells, compared squared
	awarenessRadiusSq = 2.5 * 2.5

	disarmLabel    = "[ Disarm Mine ]"
	searchingLabel = "[ Searching... ]"
	endGameLabel   = "[ End Game ]"

	// frameWidth and frameHeight are the space needed to draw a whole frame.
	frameWidth  = gridWidth
	frameHeight = buttonsRow + 1
)

var (
	styleCell      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAware     = tcell.StyleDefault.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite)
	styleCharacter = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleDisarmed  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleExplosion = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleText      = tcell.StyleDefault
	styleButton    = tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack)
	styleArmed     = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack).Bold(true)
	styleDisabled  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

type rect struct {
	x, y, width int
}

func (that rect) contains(x, y int) bool {
	return y == that.y && x >= that.x && x < that.x+that.width
}

// layout places the grid, scoreboard and buttons relative to an origin.
type layout struct {
	originX, originY int
}

func (that layout) cellOrigin(cell board.Cell) (int, int) {
	return that.originX + cell.X*cellWidth, that.originY + cell.Y
}

func (that layout) disarmButton() rect {
	return rect{x: that.originX, y: that.originY + buttonsRow, width: len(disarmLabel)}
}

func (that layout) endGameButton() rect {
	return rect{x: that.originX + gridWidth - len(endGameLabel), y: that.originY + buttonsRow, width: len(endGameLabel)}
}

// hit - returns the signal of the button under a click.
func (that layout) hit(x, y int) (input.Signal, bool) {
	switch {
	case that.disarmButton().contains(x, y):
		return input.SignalDisarm, true
	case that.endGameButton().contains(x, y):
		return input.SignalEndGame, true
	default:
		return "", false
	}
}

// drawFrame draws the grid, the scoreboard and the two action buttons.
func drawFrame(screen tcell.Screen, at layout, frame entity.Frame) {
	snapshot := frame.Snapshot
	hints := snapshot.Hints()

	for y := 0; y < board.GridSize; y++ {
		for x := 0; x < board.GridSize; x++ {
			cell := board.Cell{X: x, Y: y}
			drawCell(screen, at, cell, snapshot, hints[cell])
		}
	}

	drawScoreboard(screen, at, snapshot)
	drawButtons(screen, at, snapshot)
}

func drawCell(screen tcell.Screen, at layout, cell board.Cell, snapshot entity.Snapshot, hint int) {
	background := styleCell
	if isAware(cell, snapshot.Character) {
		background = styleAware
	}

	glyph, style := '·', background
	switch {
	case snapshot.IsExploded(cell):
		glyph, style = '*', mergeForeground(background, styleExplosion)
	case cell == snapshot.Character:
		glyph, style = '@', mergeForeground(background, styleCharacter)
	case snapshot.IsDisarmed(cell):
		glyph, style = 'x', mergeForeground(background, styleDisarmed)
	case hint > 0:
		glyph, style = rune('0'+hint), mergeForeground(background, styleText)
	}

	x, y := at.cellOrigin(cell)
	screen.SetContent(x, y, ' ', nil, background)
	screen.SetContent(x+1, y, glyph, nil, style)
	screen.SetContent(x+2, y, ' ', nil, background)
}

func drawScoreboard(screen tcell.Screen, at layout, snapshot entity.Snapshot) {
	y := at.originY + scoreboardRow
	clearRow(screen, at.originX, y, gridWidth)

	drawText(screen, at.originX, y, fmt.Sprintf("Score: %d", snapshot.Score), styleText)

	timer := fmt.Sprintf("Time: %ds", snapshot.TimeRemaining)
	drawText(screen, at.originX+gridWidth-len(timer), y, timer, styleText)
}

func drawButtons(screen tcell.Screen, at layout, snapshot entity.Snapshot) {
	clearRow(screen, at.originX, at.originY+buttonsRow, gridWidth)

	disarm := at.disarmButton()
	if snapshot.DisarmEnabled() {
		drawText(screen, disarm.x, disarm.y, disarmLabel, styleArmed)
	} else {
		drawText(screen, disarm.x, disarm.y, searchingLabel, styleDisabled)
	}

	end := at.endGameButton()
	drawText(screen, end.x, end.y, endGameLabel, styleButton)
}

// isAware reports whether the cell centre lies inside the overlay around the character.
func isAware(cell, character board.Cell) bool {
	dx := float64(cell.X - character.X)
	dy := float64(cell.Y - character.Y)

	return dx*dx+dy*dy <= awarenessRadiusSq
}

func mergeForeground(background, foreground tcell.Style) tcell.Style {
	fg, _, attrs := foreground.Decompose()
	_, bg, _ := background.Decompose()

	return tcell.StyleDefault.Foreground(fg).Background(bg).Attributes(attrs)
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func clearRow(screen tcell.Screen, x, y, width int) {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, tcell.StyleDefault)
	}
}
