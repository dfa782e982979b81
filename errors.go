package inmaps

import "errors"

// Error classes shared by every subpackage. Package-level sentinels wrap
// exactly one of these, so errors.Is(err, inmaps.ErrValidation) works for
// any validation failure regardless of origin.
var (
	// ErrConfiguration marks fatal build-time problems, e.g. geometry that
	// yields a zero-extent grid or a non-positive cell size.
	ErrConfiguration = errors.New("inmaps: configuration error")

	// ErrValidation marks rejected caller input: unknown beacon ids,
	// non-positive calibration distances, out-of-bounds cells.
	ErrValidation = errors.New("inmaps: validation error")

	// ErrNotFound marks an expected terminal outcome with no result:
	// no walkable substitute goal, no position fix, unknown point of interest.
	ErrNotFound = errors.New("inmaps: not found")
)
