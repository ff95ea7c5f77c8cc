package board

import (
	"fmt"
)

// Surface is the drawable extent the board is scaled onto, together with
// the largest board it is expected to show. The largest board determines
// the smallest dot.
type Surface struct {
	Width      int
	Height     int
	MaxColumns int
	MaxRows    int
}

// ReferenceSurface is the 128×148 drawable area above the status line.
var ReferenceSurface = Surface{
	Width:      128,
	Height:     148,
	MaxColumns: MaxColumns,
	MaxRows:    MaxRows,
}

// Point is a position on the surface.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned rectangle on the surface.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Layout holds the sizes derived from the board dimensions. A dot occupies
// DotSize×DotSize, and adjacent dots are ColWidth (RowHeight) apart.
type Layout struct {
	DotSize   int
	ColWidth  int
	RowHeight int
	MarginX   int
	MarginY   int
}

// minDotSize is the smallest dot that stays legible.
const minDotSize = 3

// NewLayout scales a board of the given dimensions onto s. The dot size
// shrinks by one for every extra column or row, starting three above the
// surface's largest dimension so it never drops below three.
func NewLayout(d Dimensions, s Surface) (Layout, error) {
	if d.Columns < 1 || d.Columns > s.MaxColumns || d.Rows < 1 || d.Rows > s.MaxRows {
		return Layout{}, fmt.Errorf("board %dx%d does not fit surface limits %dx%d",
			d.Columns, d.Rows, s.MaxColumns, s.MaxRows)
	}

	l := Layout{
		DotSize: max(s.MaxColumns, s.MaxRows) + minDotSize - max(d.Columns, d.Rows),
		// 2.5% margin on each side, floored.
		MarginX: s.Width * 25 / 1000,
		MarginY: s.Height * 25 / 1000,
	}

	widthDelta := s.Width - 2*l.MarginX - l.DotSize*(d.Columns+1)
	heightDelta := s.Height - 2*l.MarginY - l.DotSize*(d.Rows+1)
	if widthDelta < d.Columns || heightDelta < d.Rows {
		return Layout{}, fmt.Errorf("surface %dx%d too small for a %dx%d board",
			s.Width, s.Height, d.Columns, d.Rows)
	}
	l.ColWidth = widthDelta / d.Columns
	l.RowHeight = heightDelta / d.Rows

	return l, nil
}

// ScreenPositionOf returns the top-left corner of the dot drawn for v.
func (l Layout) ScreenPositionOf(v Vertex) Point {
	return Point{
		X: l.ColWidth*v.Col + l.DotSize*v.Col + l.MarginX,
		Y: l.RowHeight*v.Row + l.DotSize*v.Row + l.MarginY,
	}
}

// DotRect is the square drawn for v.
func (l Layout) DotRect(v Vertex) Rect {
	p := l.ScreenPositionOf(v)
	return Rect{X: p.X, Y: p.Y, W: l.DotSize, H: l.DotSize}
}

// CellRect is the fill area of the box whose top-left vertex is
// (col, row). It starts one dot inward from that vertex.
func (l Layout) CellRect(col, row int) Rect {
	p := l.ScreenPositionOf(Vertex{Col: col, Row: row})
	return Rect{
		X: p.X + l.DotSize,
		Y: p.Y + l.DotSize,
		W: l.ColWidth,
		H: l.RowHeight,
	}
}

// EdgeRect is the bar drawn between the two dots of e. Edges whose
// endpoints coincide yield an empty rectangle.
func (l Layout) EdgeRect(e Edge) Rect {
	a := l.ScreenPositionOf(e.A)
	b := l.ScreenPositionOf(e.B)
	switch {
	case a.X != b.X:
		return Rect{X: min(a.X, b.X) + l.DotSize, Y: a.Y, W: l.ColWidth, H: l.DotSize}
	case a.Y != b.Y:
		return Rect{X: a.X, Y: min(a.Y, b.Y) + l.DotSize, W: l.DotSize, H: l.RowHeight}
	default:
		return Rect{}
	}
}
