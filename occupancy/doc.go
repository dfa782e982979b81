// Package occupancy rasterizes venue geometry into an immutable boolean
// occupancy grid and offers the grid queries used by goal substitution and
// path planning.
//
// What:
//
//   - Build maps venue elements onto cells of a configured size under one of
//     two policies, resolved once per build:
//     PolicyObstacleDenylist (everything walkable except obstacle footprints)
//     or PolicyWalkableAllowlist (nothing walkable except walkable zones).
//   - Grid is immutable once built; a rebuild always yields a new *Grid.
//   - Components labels contiguous walkable islands (4-connectivity).
//   - FromRows and ParseASCII construct grids directly for tests and tools.
//
// Coordinates:
//
//	Cell{X, Y} addresses column X of row Y; cells are stored [row][col].
//	A venue point p falls in cell (floor(p.X/CellSize), floor(p.Y/CellSize)).
//
// Complexity:
//
//   - Build:      O(E·A + W·H), E = elements, A = cells per footprint.
//   - Components: O(W·H), computed once per grid and cached.
//
// Errors (all in the inmaps.ErrConfiguration class):
//
//   - ErrBadCellSize:    cell size is not a positive finite number.
//   - ErrZeroExtent:     geometry or canvas yields zero columns or rows.
//   - ErrExtentTooLarge: the grid would exceed MaxCells.
//   - ErrUnknownPolicy:  rasterization policy label not recognized.
//   - ErrEmptyGrid, ErrNonRectangular: invalid FromRows input.
package occupancy
