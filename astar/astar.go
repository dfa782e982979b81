package astar

import (
	"container/heap"
	"fmt"

	"github.com/sofiagarciadougherty/InMaps/occupancy"
)

// FindPath returns a shortest 4-connected path from start to goal through
// walkable cells of g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. start and goal must be inside g (ErrOutOfBounds).
//  3. start == goal yields the single-cell path [start].
//  4. start must be walkable (ErrStartBlocked).
//
// A blocked or unreachable goal yields an empty Path and a nil error.
func FindPath(g *occupancy.Grid, start, goal occupancy.Cell, opts ...Option) (Path, error) {
	res, err := Search(g, start, goal, opts...)
	return res.Path, err
}

// Search is FindPath with statistics.
func Search(g *occupancy.Grid, start, goal occupancy.Cell, opts ...Option) (Result, error) {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}

	if g == nil {
		return Result{}, ErrNilGrid
	}
	if !g.InBounds(start) {
		return Result{}, fmt.Errorf("%w: start %s in %dx%d grid", ErrOutOfBounds, start, g.Width(), g.Height())
	}
	if !g.InBounds(goal) {
		return Result{}, fmt.Errorf("%w: goal %s in %dx%d grid", ErrOutOfBounds, goal, g.Width(), g.Height())
	}
	if start == goal {
		return Result{Path: Path{start}}, nil
	}
	if !g.Walkable(start) {
		return Result{}, fmt.Errorf("%w: %s", ErrStartBlocked, start)
	}
	if !g.Walkable(goal) {
		return Result{Path: Path{}}, nil
	}

	r := newRunner(g, goal, cfg)
	r.init(start)
	return r.process(), nil
}

// runner holds the mutable state for a single A* execution. Cells are
// addressed by their row-major index.
type runner struct {
	g       *occupancy.Grid
	goal    occupancy.Cell
	options Options
	gScore  []int  // best known cost from start, -1 when unseen
	parent  []int  // predecessor index on the best known path, -1 for none
	closed  []bool // expanded cells
	pq      nodePQ
}

func newRunner(g *occupancy.Grid, goal occupancy.Cell, cfg Options) *runner {
	n := g.Width() * g.Height()
	r := &runner{
		g:       g,
		goal:    goal,
		options: cfg,
		gScore:  make([]int, n),
		parent:  make([]int, n),
		closed:  make([]bool, n),
		pq:      make(nodePQ, 0, 64),
	}
	for i := range r.gScore {
		r.gScore[i] = -1
		r.parent[i] = -1
	}
	return r
}

func (r *runner) index(c occupancy.Cell) int { return c.Y*r.g.Width() + c.X }

func (r *runner) cell(i int) occupancy.Cell {
	return occupancy.Cell{X: i % r.g.Width(), Y: i / r.g.Width()}
}

// init seeds the heap with the start cell at g=0.
func (r *runner) init(start occupancy.Cell) {
	r.gScore[r.index(start)] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{cell: start, g: 0, f: start.Manhattan(r.goal)})
}

// process pops entries in priority order until the goal is expanded or the
// open set is exhausted.
func (r *runner) process() Result {
	var res Result
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		idx := r.index(item.cell)

		// Lazy deletion: skip entries superseded by a cheaper push.
		if r.closed[idx] || item.g > r.gScore[idx] {
			continue
		}
		r.closed[idx] = true
		res.Expanded++
		if r.options.OnVisit != nil {
			r.options.OnVisit(item.cell)
		}

		if item.cell == r.goal {
			res.Path = r.reconstruct(idx)
			return res
		}

		for _, d := range occupancy.Conn4 {
			nb := item.cell.Add(d)
			if !r.g.Walkable(nb) {
				continue
			}
			ni := r.index(nb)
			if r.closed[ni] {
				continue
			}
			ng := item.g + 1
			if old := r.gScore[ni]; old >= 0 && ng >= old {
				continue
			}
			r.gScore[ni] = ng
			r.parent[ni] = idx
			heap.Push(&r.pq, &nodeItem{cell: nb, g: ng, f: ng + nb.Manhattan(r.goal)})
		}
	}
	res.Path = Path{}
	return res
}

// reconstruct walks parent links back from the goal index.
func (r *runner) reconstruct(goal int) Path {
	n := r.gScore[goal] + 1
	p := make(Path, n)
	for i, at := n-1, goal; i >= 0; i-- {
		p[i] = r.cell(at)
		at = r.parent[at]
	}
	return p
}

// nodeItem is one open-set entry.
type nodeItem struct {
	cell occupancy.Cell
	g    int // cost from start
	f    int // g + Manhattan(cell, goal)
}

// nodePQ implements heap.Interface as a min-heap keyed by (f, g, X, Y).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}
	if a.cell.X != b.cell.X {
		return a.cell.X < b.cell.X
	}
	return a.cell.Y < b.cell.Y
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
