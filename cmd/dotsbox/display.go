// =============================================================================
// display.go - Terminal Rendering of the Board
// =============================================================================
//
// The session draws on a fixed logical surface (128 wide, 148 tall) plus a
// one-line status bar. This file maps that surface onto whatever terminal
// the player has: every logical rectangle becomes the block of character
// cells it covers, painted with a background colour.
//
// Terminal cells are much coarser than logical pixels, so every non-empty
// rectangle is widened to at least one cell. Small dots therefore stay
// visible on any board size that fits the terminal.
//
// The display remembers what it has drawn since the last Clear so that a
// terminal resize can repaint the board at the new scale.
//
// =============================================================================

package main

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/thomaslorincz/arduino-dots-and-boxes/board"
	"github.com/thomaslorincz/arduino-dots-and-boxes/session"
)

// =============================================================================
// Colours
// =============================================================================

// palette maps session colours to terminal colours.
var palette = map[session.Colour]tcell.Color{
	session.White: tcell.ColorWhite,
	session.Black: tcell.ColorBlack,
	session.Green: tcell.ColorGreen,
	session.Blue:  tcell.ColorBlue,
	session.Red:   tcell.ColorRed,
}

// statusStyle is used for the status bar below the board.
var statusStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

func colourStyle(c session.Colour) tcell.Style {
	bg, ok := palette[c]
	if !ok {
		bg = tcell.ColorWhite
	}
	return tcell.StyleDefault.Background(bg).Foreground(tcell.ColorBlack)
}

// =============================================================================
// Screen Display
// =============================================================================

// fill is one FillRect call, kept for repainting after a resize.
type fill struct {
	rect   board.Rect
	colour session.Colour
}

// GO CONCEPT: Mutexes
// -------------------
// The session goroutine draws while the event goroutine handles resizes.
// Both touch the same fields, so every method takes mu first. A
// sync.Mutex has a usable zero value: no constructor call is needed.

// screenDisplay implements session.Display on a tcell screen.
type screenDisplay struct {
	mu      sync.Mutex
	screen  tcell.Screen
	surface board.Surface

	fills    []fill
	status   string
	gameOver *session.Result
}

func newScreenDisplay(screen tcell.Screen, surface board.Surface) *screenDisplay {
	return &screenDisplay{screen: screen, surface: surface}
}

// Clear paints the whole board area white and forgets earlier drawing.
func (d *screenDisplay) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.fills = d.fills[:0]
	d.status = ""
	d.gameOver = nil
	d.paintBackground()
	d.paintStatus()
}

// FillRect paints the cells covered by r.
func (d *screenDisplay) FillRect(r board.Rect, c session.Colour) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.fills = append(d.fills, fill{rect: r, colour: c})
	d.paintRect(r, c)
}

// SetStatus replaces the text in the status bar.
func (d *screenDisplay) SetStatus(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.status = text
	d.paintStatus()
}

// ShowGameOver replaces the board with the final result.
func (d *screenDisplay) ShowGameOver(r session.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.fills = d.fills[:0]
	d.status = ""
	d.gameOver = &r
	d.paintGameOver()
	d.paintStatus()
}

// Flush makes everything drawn so far visible.
func (d *screenDisplay) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.screen.Show()
}

// Resize repaints the remembered picture at the screen's current size.
func (d *screenDisplay) Resize() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.screen.Clear()
	if d.gameOver != nil {
		d.paintGameOver()
	} else {
		d.paintBackground()
		for _, f := range d.fills {
			d.paintRect(f.rect, f.colour)
		}
	}
	d.paintStatus()
	d.screen.Sync()
}

// =============================================================================
// Painting (callers hold mu)
// =============================================================================

// boardSize is the cell area the logical surface is scaled onto: the whole
// screen except the last row.
func (d *screenDisplay) boardSize() (int, int) {
	w, h := d.screen.Size()
	if h > 0 {
		h--
	}
	return w, h
}

func (d *screenDisplay) paintBackground() {
	w, h := d.boardSize()
	d.paintCells(0, 0, w, h, colourStyle(session.White))
}

func (d *screenDisplay) paintRect(r board.Rect, c session.Colour) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	w, h := d.boardSize()
	x0, x1 := scaleSpan(r.X, r.W, d.surface.Width, w)
	y0, y1 := scaleSpan(r.Y, r.H, d.surface.Height, h)
	d.paintCells(x0, y0, x1, y1, colourStyle(c))
}

func (d *screenDisplay) paintCells(x0, y0, x1, y1 int, style tcell.Style) {
	w, h := d.boardSize()
	x1, y1 = min(x1, w), min(y1, h)
	for y := max(y0, 0); y < y1; y++ {
		for x := max(x0, 0); x < x1; x++ {
			d.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (d *screenDisplay) paintStatus() {
	w, h := d.screen.Size()
	if h == 0 {
		return
	}
	d.paintText(0, h-1, w, d.status, statusStyle)
}

func (d *screenDisplay) paintGameOver() {
	d.paintBackground()

	r := *d.gameOver
	headline := colourStyle(session.White).Foreground(tcell.ColorBlack)
	if seat := r.Winner(); seat != 0 {
		headline = headline.Foreground(palette[session.SeatColour(seat)])
	}
	plain := colourStyle(session.White)

	lines := []struct {
		text  string
		style tcell.Style
	}{
		{r.Headline(), headline.Bold(true)},
		{"", plain},
		{"SCORE", plain},
		{fmt.Sprintf("%s: %d", seatLabel(r, 1), r.Scores.Player1), plain.Foreground(palette[session.Blue])},
		{fmt.Sprintf("%s: %d", seatLabel(r, 2), r.Scores.Player2), plain.Foreground(palette[session.Red])},
		{"", plain},
		{session.StatusPlayAgain, plain},
	}

	w, h := d.boardSize()
	top := max((h-len(lines))/2, 0)
	for i, line := range lines {
		x := max((w-len(line.text))/2, 0)
		d.paintText(x, top+i, w-x, line.text, line.style)
	}
}

// paintText writes text at (x, y) and pads it with spaces to width cells.
func (d *screenDisplay) paintText(x, y, width int, text string, style tcell.Style) {
	i := 0
	for _, r := range text {
		if i >= width {
			return
		}
		d.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
	for ; i < width; i++ {
		d.screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// seatLabel names a seat on the game-over screen.
func seatLabel(r session.Result, seat int) string {
	if seat == r.ComputerSeat {
		return "COMPUTER"
	}
	return fmt.Sprintf("PLAYER %d", seat)
}

// scaleSpan maps the logical span [pos, pos+extent) of a surface that is
// logical units long onto cells, rounding outwards and never returning an
// empty span.
func scaleSpan(pos, extent, logical, cells int) (int, int) {
	if logical <= 0 {
		return 0, 0
	}
	start := pos * cells / logical
	end := ((pos+extent)*cells + logical - 1) / logical
	if end <= start {
		end = start + 1
	}
	return start, end
}
