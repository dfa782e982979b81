package occupancy

import (
	"fmt"
	"strings"
	"sync"
)

// Cell addresses one grid cell: X is the column, Y the row.
type Cell struct {
	X, Y int
}

// String renders c as "(x,y)".
func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Add returns the cell offset from c by d.
func (c Cell) Add(d Cell) Cell { return Cell{X: c.X + d.X, Y: c.Y + d.Y} }

// Manhattan returns |Δx| + |Δy| between c and o.
func (c Cell) Manhattan(o Cell) int { return abs(c.X-o.X) + abs(c.Y-o.Y) }

// Adjacent reports whether c and o are 4-neighbors.
func (c Cell) Adjacent(o Cell) bool { return c.Manhattan(o) == 1 }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Conn4 lists the 4-connected neighbor offsets in the fixed order N, E, S, W.
// Every traversal in this module uses this order, which keeps results
// deterministic.
var Conn4 = [4]Cell{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Policy selects how venue elements are rasterized.
type Policy int

const (
	// PolicyObstacleDenylist starts with every cell walkable and blocks
	// every cell touched by an obstacle-like footprint.
	PolicyObstacleDenylist Policy = iota
	// PolicyWalkableAllowlist starts with every cell blocked and opens the
	// cells inside walkable zones.
	PolicyWalkableAllowlist
)

// String returns the configuration label of p.
func (p Policy) String() string {
	switch p {
	case PolicyObstacleDenylist:
		return "obstacle-denylist"
	case PolicyWalkableAllowlist:
		return "walkable-allowlist"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy converts a configuration label to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "obstacle-denylist", "denylist", "obstacles":
		return PolicyObstacleDenylist, nil
	case "walkable-allowlist", "allowlist", "walkable":
		return PolicyWalkableAllowlist, nil
	}
	return PolicyObstacleDenylist, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(b []byte) error {
	parsed, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Grid is an immutable occupancy grid. Width and Height are in cells;
// CellSize is the edge length of one cell in venue pixels.
// cells[y][x] is true when the cell is walkable.
type Grid struct {
	width, height int
	cellSize      float64
	policy        Policy

	cells [][]bool

	compOnce sync.Once
	labels   []int
	islands  int
}

// Report summarizes a Build call.
type Report struct {
	// Elements is the number of elements passed to Build.
	Elements int
	// Rasterized counts elements whose footprint changed cell state
	// under the active policy.
	Rasterized int
	// Skipped lists ids of elements with malformed footprints.
	Skipped []string
	// Walkable is the number of walkable cells in the result.
	Walkable int
}
