package astar

import (
	"fmt"

	"github.com/sofiagarciadougherty/InMaps"
	"github.com/sofiagarciadougherty/InMaps/occupancy"
)

// Sentinel errors, all in the inmaps.ErrValidation class.
var (
	// ErrNilGrid indicates a nil *occupancy.Grid.
	ErrNilGrid = fmt.Errorf("astar: grid is nil: %w", inmaps.ErrValidation)

	// ErrOutOfBounds indicates an endpoint outside the grid.
	ErrOutOfBounds = fmt.Errorf("astar: cell out of bounds: %w", inmaps.ErrValidation)

	// ErrStartBlocked indicates a start cell that is not walkable.
	ErrStartBlocked = fmt.Errorf("astar: start cell is blocked: %w", inmaps.ErrValidation)
)

// Path is a sequence of cells from start to goal, both inclusive.
// An empty Path means the goal is unreachable.
type Path []occupancy.Cell

// Empty reports whether p holds no cells.
func (p Path) Empty() bool { return len(p) == 0 }

// Steps returns the number of moves in p, len(p)-1 for non-empty paths.
func (p Path) Steps() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Valid reports whether every cell of p is walkable in g and consecutive
// cells are 4-neighbors. The empty path is valid.
func (p Path) Valid(g *occupancy.Grid) bool {
	for i, c := range p {
		if !g.Walkable(c) {
			return false
		}
		if i > 0 && !p[i-1].Adjacent(c) {
			return false
		}
	}
	return true
}

// Options configures a FindPath call.
type Options struct {
	// OnVisit, if set, is called once for every cell A* expands, in order.
	OnVisit func(c occupancy.Cell)
}

// Option mutates Options.
type Option func(*Options)

// WithOnVisit installs a hook called for each expanded cell.
func WithOnVisit(fn func(c occupancy.Cell)) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// Result carries a path with the search statistics.
type Result struct {
	Path     Path
	Expanded int // cells popped and expanded, stale entries excluded
}
