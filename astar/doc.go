// Package astar finds shortest 4-connected paths on an occupancy grid.
//
// FindPath runs A* with the Manhattan heuristic, which is admissible and
// consistent for unit-cost 4-connected moves, so the first time the goal is
// popped its path is optimal. The open set is a container/heap min-heap
// with lazy deletion: improved entries are pushed again and stale ones are
// skipped when popped.
//
// Ordering of equal-priority entries is fixed (f, then g, then X, then Y)
// and neighbors are expanded in occupancy.Conn4 order, so the same grid and
// endpoints always yield the same path.
//
// Complexity:
//
//   - Time:  O(N log N) for N grid cells.
//   - Space: O(N) for the g-score table, parent links and heap entries.
//
// Errors:
//
//   - ErrNilGrid      if the grid pointer is nil.
//   - ErrOutOfBounds  if start or goal lies outside the grid.
//   - ErrStartBlocked if start is a blocked cell and differs from goal.
//
// Unreachable goals are not errors: FindPath returns an empty Path.
package astar
