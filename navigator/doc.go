// Package navigator is the service layer over the InMaps engine.
//
// A Service owns the published venue state (elements, occupancy grid and
// beacon registry) and the calibration scale factor. State is rebuilt
// off to the side on Reload and published with a single atomic pointer
// swap, so concurrent Route and Locate calls always see one consistent
// snapshot and never a partially rasterized grid.
//
//	svc, err := navigator.New(ctx, navigator.Config{InitialScale: 1}, elements,
//	    navigator.WithLogger(log), navigator.WithMetrics(col))
//	route, err := svc.Route(ctx, occupancy.Cell{X: 0, Y: 0}, "Booth A")
package navigator
