package occupancy

import (
	"math"
	"strings"

	"github.com/sofiagarciadougherty/InMaps/venue"
)

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// CellSize returns the edge length of one cell in venue pixels.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Policy returns the rasterization policy the grid was built with.
func (g *Grid) Policy() Policy { return g.policy }

// InBounds reports whether c lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Walkable reports whether c is inside the grid and open to visitors.
// Complexity: O(1).
func (g *Grid) Walkable(c Cell) bool {
	return g.InBounds(c) && g.cells[c.Y][c.X]
}

// Neighbors returns the in-bounds 4-neighbors of c in Conn4 order,
// regardless of walkability.
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, len(Conn4))
	for _, d := range Conn4 {
		if n := c.Add(d); g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// CellOf maps a venue point to the cell containing it. The result may lie
// outside the grid; check it with InBounds.
func (g *Grid) CellOf(p venue.Point) Cell {
	return PointToCell(p, g.cellSize)
}

// PointToCell maps a venue point to a cell of the given size using
// floor(coordinate / cellSize) on each axis.
func PointToCell(p venue.Point, cellSize float64) Cell {
	return Cell{
		X: int(math.Floor(p.X / cellSize)),
		Y: int(math.Floor(p.Y / cellSize)),
	}
}

// WalkableCount returns the number of walkable cells.
func (g *Grid) WalkableCount() int {
	n := 0
	for _, row := range g.cells {
		for _, open := range row {
			if open {
				n++
			}
		}
	}
	return n
}

// Rows returns a deep copy of the grid as [row][col] walkability flags.
func (g *Grid) Rows() [][]bool {
	out := make([][]bool, g.height)
	for y := range out {
		out[y] = make([]bool, g.width)
		copy(out[y], g.cells[y])
	}
	return out
}

// Equal reports whether g and o have identical dimensions, cell size and
// cell states.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height || g.cellSize != o.cellSize {
		return false
	}
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x] != o.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// String renders the grid with '.' for walkable and '#' for blocked cells,
// one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, open := range row {
			if open {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
	}
	return b.String()
}

// index maps c to a row-major index: y*Width + x.
func (g *Grid) index(c Cell) int {
	return c.Y*g.width + c.X
}

// Coordinate converts a row-major index back to a cell.
func (g *Grid) Coordinate(idx int) Cell {
	return Cell{X: idx % g.width, Y: idx / g.width}
}
