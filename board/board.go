// Package board models the dots-and-boxes grid: its dimensions, the
// vertices a cursor can rest on, the edges a player can claim, and the
// mapping from grid coordinates to a bounded drawing surface.
//
// Everything in this package is a value type or a pure function.
package board

import (
	"fmt"
)

const (
	// MaxColumns is the widest board the reference surface can show.
	MaxColumns = 7

	// MaxRows is the tallest board the reference surface can show.
	MaxRows = 8
)

// Dimensions is the number of box columns and rows on the board. There are
// Columns+1 by Rows+1 vertices.
type Dimensions struct {
	Columns int
	Rows    int
}

// Validate reports whether both dimensions fit the reference surface.
func (d Dimensions) Validate() error {
	if d.Columns < 1 || d.Columns > MaxColumns {
		return fmt.Errorf("columns %d outside [1, %d]", d.Columns, MaxColumns)
	}
	if d.Rows < 1 || d.Rows > MaxRows {
		return fmt.Errorf("rows %d outside [1, %d]", d.Rows, MaxRows)
	}
	return nil
}

// Contains reports whether v is one of the board's vertices.
func (d Dimensions) Contains(v Vertex) bool {
	return v.Col >= 0 && v.Col <= d.Columns && v.Row >= 0 && v.Row <= d.Rows
}

// ContainsCell reports whether (col, row) names one of the board's boxes.
func (d Dimensions) ContainsCell(col, row int) bool {
	return col >= 0 && col < d.Columns && row >= 0 && row < d.Rows
}

// Step moves v by (dx, dy), wrapping each axis modulo the vertex count so
// that stepping past the last column lands on column 0 and stepping before
// column 0 lands on the last one.
func (d Dimensions) Step(v Vertex, dx, dy int) Vertex {
	return Vertex{
		Col: wrap(v.Col+dx, d.Columns+1),
		Row: wrap(v.Row+dy, d.Rows+1),
	}
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Vertex is a grid intersection.
type Vertex struct {
	Col int
	Row int
}

func (v Vertex) String() string {
	return fmt.Sprintf("(%d,%d)", v.Col, v.Row)
}

// Edge joins two vertices. Only orthogonal, unit-length edges are playable;
// see Valid.
type Edge struct {
	A Vertex
	B Vertex
}

func (e Edge) String() string {
	return e.A.String() + "-" + e.B.String()
}

// Valid reports whether the edge joins two adjacent vertices.
func (e Edge) Valid() bool {
	return IsValidEdge(e.A, e.B)
}

// Horizontal reports whether the edge's endpoints differ in column.
func (e Edge) Horizontal() bool {
	return e.A.Col != e.B.Col
}

// IsValidEdge holds iff exactly one coordinate differs, and by exactly one.
func IsValidEdge(a, b Vertex) bool {
	dc := abs(a.Col - b.Col)
	dr := abs(a.Row - b.Row)
	return (dc == 1 && dr == 0) || (dc == 0 && dr == 1)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
