package occupancy

import (
	"fmt"
	"math"

	"github.com/sofiagarciadougherty/InMaps/venue"
)

// MaxCells bounds Width×Height of a built grid.
const MaxCells = 1 << 24

// Deterministic defaults.
const (
	// DefaultCellSize is the edge of one cell in venue pixels.
	DefaultCellSize = 50.0
	// DefaultMargin is added to the computed geometry extent.
	DefaultMargin = 0.0
)

// DefaultObstacleKinds are the kinds blocked under PolicyObstacleDenylist:
// blockers, booths and facilities. Unrecognized elements stay walkable.
func DefaultObstacleKinds() []venue.Kind {
	return []venue.Kind{venue.KindObstacle, venue.KindBooth, venue.KindFacility}
}

// Options configures Build.
//
// CellSize      – edge length of one cell in venue pixels (> 0).
// Policy        – rasterization policy.
// CanvasWidth,
// CanvasHeight  – fixed canvas in pixels; when unset the extent is computed
//
//	from the maximum footprint end plus Margin.
//
// Margin        – extra pixels added to a computed extent (≥ 0).
// ObstacleKinds – kinds treated as obstacles by PolicyObstacleDenylist.
type Options struct {
	CellSize      float64
	Policy        Policy
	CanvasWidth   float64
	CanvasHeight  float64
	Margin        float64
	ObstacleKinds []venue.Kind

	canvas bool
	// err records the first invalid option; Build surfaces it.
	err error
}

// Option represents a functional option for configuring Build.
type Option func(*Options)

// DefaultOptions returns the defaults: CellSize 50, obstacle denylist,
// computed extent with no margin, DefaultObstacleKinds.
func DefaultOptions() Options {
	return Options{
		CellSize:      DefaultCellSize,
		Policy:        PolicyObstacleDenylist,
		Margin:        DefaultMargin,
		ObstacleKinds: DefaultObstacleKinds(),
	}
}

// WithCellSize sets the cell edge length in venue pixels.
func WithCellSize(size float64) Option {
	return func(o *Options) {
		if !(size > 0) || math.IsInf(size, 0) {
			o.fail(fmt.Errorf("%w: %v", ErrBadCellSize, size))
			return
		}
		o.CellSize = size
	}
}

// WithPolicy selects the rasterization policy.
func WithPolicy(p Policy) Option {
	return func(o *Options) {
		if p != PolicyObstacleDenylist && p != PolicyWalkableAllowlist {
			o.fail(fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p)))
			return
		}
		o.Policy = p
	}
}

// WithCanvas fixes the grid extent to width×height venue pixels instead of
// deriving it from the geometry.
func WithCanvas(width, height float64) Option {
	return func(o *Options) {
		o.CanvasWidth, o.CanvasHeight, o.canvas = width, height, true
	}
}

// WithMargin adds margin pixels to a computed extent on both axes.
func WithMargin(margin float64) Option {
	return func(o *Options) {
		if margin < 0 || math.IsNaN(margin) || math.IsInf(margin, 0) {
			o.fail(fmt.Errorf("%w: negative or non-finite margin %v", ErrZeroExtent, margin))
			return
		}
		o.Margin = margin
	}
}

// WithObstacleKinds overrides which kinds block cells under
// PolicyObstacleDenylist.
func WithObstacleKinds(kinds ...venue.Kind) Option {
	return func(o *Options) {
		o.ObstacleKinds = append([]venue.Kind(nil), kinds...)
	}
}

func (o *Options) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

// Build rasterizes elements into a new Grid.
//
// Behavior:
//  1. Apply options; the first invalid option aborts with its error.
//  2. Skip elements with non-finite footprints, recording their ids.
//  3. Size the grid from the canvas, or from the maximum footprint end plus
//     margin (cols = floor((maxX+margin)/cellSize) + 1). A zero extent is
//     ErrZeroExtent.
//  4. Initialize cells per policy and paint each relevant footprint over
//     the inclusive cell range of its integer-pixel corners, clipped to the
//     grid.
//
// Identical input always produces an identical grid; element order does not
// matter because painting is a set union.
func Build(elements []venue.Element, opts ...Option) (*Grid, Report, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	rep := Report{Elements: len(elements)}
	if o.err != nil {
		return nil, rep, o.err
	}

	usable := make(venue.Set, 0, len(elements))
	for _, e := range elements {
		if !e.Finite() {
			rep.Skipped = append(rep.Skipped, e.ID)
			continue
		}
		e.Area = e.Area.Normalize()
		usable = append(usable, e)
	}

	cols, rows, err := extent(usable, o)
	if err != nil {
		return nil, rep, err
	}

	cells := make([][]bool, rows)
	initial := o.Policy == PolicyObstacleDenylist
	for y := range cells {
		cells[y] = make([]bool, cols)
		if initial {
			for x := range cells[y] {
				cells[y][x] = true
			}
		}
	}

	blocks := make(map[venue.Kind]bool, len(o.ObstacleKinds))
	for _, k := range o.ObstacleKinds {
		blocks[k] = true
	}

	for _, e := range usable {
		var paint bool
		switch o.Policy {
		case PolicyObstacleDenylist:
			if !blocks[e.Kind] {
				continue
			}
			paint = false
		case PolicyWalkableAllowlist:
			if e.Kind != venue.KindWalkableZone {
				continue
			}
			paint = true
		}
		if fill(cells, cols, rows, e.Area, o.CellSize, paint) {
			rep.Rasterized++
		}
	}

	g := &Grid{
		width:    cols,
		height:   rows,
		cellSize: o.CellSize,
		policy:   o.Policy,
		cells:    cells,
	}
	rep.Walkable = g.WalkableCount()
	return g, rep, nil
}

// extent resolves the grid dimensions in cells.
func extent(usable venue.Set, o Options) (cols, rows int, err error) {
	var wCells, hCells float64
	if o.canvas {
		wCells = math.Floor(o.CanvasWidth / o.CellSize)
		hCells = math.Floor(o.CanvasHeight / o.CellSize)
	} else {
		end, ok := usable.Extent()
		if !ok {
			return 0, 0, fmt.Errorf("%w: no usable footprints and no canvas", ErrZeroExtent)
		}
		wPx, hPx := end.X+o.Margin, end.Y+o.Margin
		if wPx <= 0 || hPx <= 0 {
			return 0, 0, fmt.Errorf("%w: computed extent %vx%v px", ErrZeroExtent, wPx, hPx)
		}
		wCells = math.Floor(wPx/o.CellSize) + 1
		hCells = math.Floor(hPx/o.CellSize) + 1
	}
	if !(wCells >= 1) || !(hCells >= 1) {
		return 0, 0, fmt.Errorf("%w: %vx%v cells", ErrZeroExtent, wCells, hCells)
	}
	if wCells*hCells > MaxCells {
		return 0, 0, fmt.Errorf("%w: %vx%v cells", ErrExtentTooLarge, wCells, hCells)
	}
	return int(wCells), int(hCells), nil
}

// fill sets every cell covered by r to value and reports whether the
// footprint overlapped the grid at all.
func fill(cells [][]bool, cols, rows int, r venue.Rect, cellSize float64, value bool) bool {
	x0, x1, okX := span(r.Start.X, r.End.X, cellSize, cols)
	y0, y1, okY := span(r.Start.Y, r.End.Y, cellSize, rows)
	if !okX || !okY {
		return false
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cells[y][x] = value
		}
	}
	return true
}

// span maps the pixel interval [lo, hi] to an inclusive, clipped cell range.
// Corners are truncated to integer pixels first.
func span(lo, hi, cellSize float64, n int) (first, last int, ok bool) {
	a := math.Floor(math.Trunc(lo) / cellSize)
	b := math.Floor(math.Trunc(hi) / cellSize)
	if b < 0 || a > float64(n-1) {
		return 0, 0, false
	}
	first, last = int(math.Max(a, 0)), int(math.Min(b, float64(n-1)))
	return first, last, true
}
