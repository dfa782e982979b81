package occupancy

import (
	"fmt"
	"math"
)

// FromRows constructs a Grid from a non-empty, rectangular [row][col] slice
// of walkability flags. It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if rows has no rows or no columns,
// ErrNonRectangular if any row length differs, ErrBadCellSize for a
// non-positive cellSize.
// Complexity: O(W×H) time and memory.
func FromRows(rows [][]bool, cellSize float64) (*Grid, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, ErrBadCellSize
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	// Deep copy to prevent external mutation
	cells := make([][]bool, h)
	for y := 0; y < h; y++ {
		cells[y] = make([]bool, w)
		copy(cells[y], rows[y])
	}

	return &Grid{
		width:    w,
		height:   h,
		cellSize: cellSize,
		policy:   PolicyObstacleDenylist,
		cells:    cells,
	}, nil
}

// ParseASCII builds a unit-cell grid from textual rows where '.' is
// walkable and '#' is blocked:
//
//	ParseASCII(
//	    "..#",
//	    "...",
//	)
func ParseASCII(lines ...string) (*Grid, error) {
	rows := make([][]bool, len(lines))
	for y, line := range lines {
		rows[y] = make([]bool, len(line))
		for x, ch := range []byte(line) {
			switch ch {
			case '.':
				rows[y][x] = true
			case '#':
			default:
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrBadASCII, ch, x, y)
			}
		}
	}
	return FromRows(rows, 1)
}
