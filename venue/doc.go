// Package venue describes the static geometry of a venue: booths, obstacles,
// beacons and walkable zones, each with an axis-aligned rectangular footprint
// in venue pixels.
//
// What:
//
//   - Point and Rect model footprints; Rect is always normalized so that
//     Start ≤ End on both axes.
//   - Kind classifies an element; KindFromName infers it from a display
//     name ("Blocker 3" → Obstacle, "Booth A" → Booth).
//   - Element is immutable once constructed; Set offers name/id lookups and
//     the geometric extent used to size occupancy grids.
//   - ParseFootprint decodes the {"start":{..},"end":{..}} JSON footprint
//     used by venue tables.
//
// Errors:
//
//   - ErrUnknownKind: ParseKind received an unrecognized kind label.
//   - ErrMalformedFootprint: a footprint could not be decoded or is not finite.
package venue
