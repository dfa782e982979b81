package occupancy

import (
	"fmt"

	"github.com/sofiagarciadougherty/InMaps"
)

// Sentinel errors for grid construction. Each wraps inmaps.ErrConfiguration.
var (
	// ErrBadCellSize indicates a cell size that is zero, negative or not finite.
	ErrBadCellSize = fmt.Errorf("occupancy: cell size must be positive and finite: %w", inmaps.ErrConfiguration)
	// ErrZeroExtent indicates geometry or canvas that yields no columns or no rows.
	ErrZeroExtent = fmt.Errorf("occupancy: grid extent is zero: %w", inmaps.ErrConfiguration)
	// ErrExtentTooLarge indicates a grid larger than MaxCells.
	ErrExtentTooLarge = fmt.Errorf("occupancy: grid extent too large: %w", inmaps.ErrConfiguration)
	// ErrUnknownPolicy indicates an unrecognized rasterization policy.
	ErrUnknownPolicy = fmt.Errorf("occupancy: unknown rasterization policy: %w", inmaps.ErrConfiguration)
	// ErrEmptyGrid indicates FromRows input with no rows or no columns.
	ErrEmptyGrid = fmt.Errorf("occupancy: grid must have at least one row and one column: %w", inmaps.ErrConfiguration)
	// ErrNonRectangular indicates FromRows input rows of differing lengths.
	ErrNonRectangular = fmt.Errorf("occupancy: all rows must have the same length: %w", inmaps.ErrConfiguration)
	// ErrBadASCII indicates a ParseASCII character other than '.' or '#'.
	ErrBadASCII = fmt.Errorf("occupancy: ascii grid accepts only '.' and '#': %w", inmaps.ErrConfiguration)
)
