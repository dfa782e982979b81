// Package goal substitutes blocked route targets with the nearest walkable
// cell.
//
// A point of interest such as a booth is usually rasterized as an obstacle,
// so its center cell cannot be a route target. Resolve runs a breadth-first
// expansion from the requested cell over every in-bounds cell, blocked or
// not, because the substitute must minimize grid-step distance rather than
// walking distance. Neighbors are enqueued in occupancy.Conn4 order, which
// fixes the winner among equidistant candidates.
package goal

import (
	"fmt"

	"github.com/sofiagarciadougherty/InMaps"
	"github.com/sofiagarciadougherty/InMaps/occupancy"
)

var (
	// ErrNotFound indicates that no walkable cell is reachable from the
	// requested cell within the search bounds.
	ErrNotFound = fmt.Errorf("goal: no walkable cell found: %w", inmaps.ErrNotFound)

	// ErrOutOfBounds indicates a requested cell outside the grid.
	ErrOutOfBounds = fmt.Errorf("goal: cell out of bounds: %w", inmaps.ErrValidation)

	// ErrNilGrid indicates a nil *occupancy.Grid.
	ErrNilGrid = fmt.Errorf("goal: grid is nil: %w", inmaps.ErrValidation)
)

// Options configures Resolve.
type Options struct {
	// MaxRadius bounds the search to cells at most this many steps away.
	// Zero means unbounded.
	MaxRadius int
}

// Option mutates Options.
type Option func(*Options)

// WithMaxRadius limits the search radius. It panics on a negative radius.
func WithMaxRadius(r int) Option {
	if r < 0 {
		panic(fmt.Sprintf("goal: WithMaxRadius(%d): radius must be non-negative", r))
	}
	return func(o *Options) { o.MaxRadius = r }
}

// queueItem pairs a cell with its step distance from the requested cell.
type queueItem struct {
	cell  occupancy.Cell
	depth int
}

// Resolve returns requested when it is walkable, otherwise the walkable
// cell with the smallest grid-step distance to it.
func Resolve(g *occupancy.Grid, requested occupancy.Cell, opts ...Option) (occupancy.Cell, error) {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}
	if g == nil {
		return occupancy.Cell{}, ErrNilGrid
	}
	if !g.InBounds(requested) {
		return occupancy.Cell{}, fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, requested, g.Width(), g.Height())
	}
	if g.Walkable(requested) {
		return requested, nil
	}

	visited := make([]bool, g.Width()*g.Height())
	visited[requested.Y*g.Width()+requested.X] = true
	queue := []queueItem{{cell: requested}}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if g.Walkable(cur.cell) {
			return cur.cell, nil
		}
		if cfg.MaxRadius > 0 && cur.depth >= cfg.MaxRadius {
			continue
		}
		for _, nb := range g.Neighbors(cur.cell) {
			i := nb.Y*g.Width() + nb.X
			if visited[i] {
				continue
			}
			visited[i] = true
			queue = append(queue, queueItem{cell: nb, depth: cur.depth + 1})
		}
	}
	return occupancy.Cell{}, fmt.Errorf("%w: from %s", ErrNotFound, requested)
}
