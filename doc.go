// Package inmaps is an indoor positioning and routing engine for venues
// such as exhibition halls: it turns venue floor geometry into an occupancy
// grid, finds shortest walkable routes to named points of interest, and
// estimates a visitor's position from beacon signal strengths.
//
// The engine is split into small, dependency-light subpackages:
//
//	venue/          venue elements (booths, obstacles, beacons, walkable zones)
//	occupancy/      grid rasterization, immutable Grid, islands
//	beacon/         beacon registry with a bidirectional alias table
//	goal/           nearest-walkable goal substitution (BFS)
//	astar/          A* shortest path on the 4-connected grid
//	locate/         RSSI → distance → weighted-centroid position fix
//	calibration/    atomically swapped physical-to-grid scale factor
//	navigator/      service layer tying the pieces together
//
// Quick ASCII example (S = start, G = goal, # = blocked):
//
//	S . . . .
//	. . . . .
//	. . # # #
//	. . . . G
//
// Every package reports failures through the three error classes declared
// here (ErrConfiguration, ErrValidation, ErrNotFound), so callers can branch
// with errors.Is regardless of which component failed.
package inmaps
