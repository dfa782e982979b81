// Package locate estimates a visitor's grid position from beacon readings.
//
// Each reading's RSSI is turned into a physical distance with the
// log-distance path-loss model
//
//	d = 10^((referencePower − rssi) / (10 × exponent))
//
// then converted to grid units with the current scale factor and clamped
// to a minimum distance. Two methods combine the ranges:
//
//   - MethodCentroid (default): the centroid of the resolved beacons' cells
//     weighted by 1/d². Scaling every range by the same factor leaves the
//     weights' ratios unchanged, so the scale only matters near the floor.
//   - MethodMultilateration: the mean of the pairwise intersections of the
//     range circles. Circles that do not meet contribute the midpoint of
//     their closest points. With fewer than three beacons the nearest
//     beacon's cell is returned.
//
// The result is rounded to the nearest cell. Estimate is stateless apart
// from the scale argument. There is no smoothing across calls.
package locate
