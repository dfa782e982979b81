// Package calibration owns the physical-to-grid scale factor.
//
// State is read by every localization call and written only by
// calibration. The factor is stored as float64 bits in an atomic word, so a
// reader observes either the previous or the newly committed value. Writers
// are serialized by a mutex so the version counter and the factor advance
// together.
package calibration

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/sofiagarciadougherty/InMaps"
	"github.com/sofiagarciadougherty/InMaps/occupancy"
)

// DefaultScale is the factor used before the first calibration.
const DefaultScale = 1.0

// Sentinel errors, all in the inmaps.ErrValidation class.
var (
	ErrUnknownBeacon = fmt.Errorf("calibration: unknown beacon: %w", inmaps.ErrValidation)
	ErrBadDistance   = fmt.Errorf("calibration: physical distance must be positive: %w", inmaps.ErrValidation)
	ErrBadScale      = fmt.Errorf("calibration: scale factor must be positive: %w", inmaps.ErrValidation)
	// ErrDegenerate indicates two beacons sharing one cell, which would
	// yield a zero scale.
	ErrDegenerate = fmt.Errorf("calibration: beacons share a position: %w", inmaps.ErrValidation)
)

// Locator resolves a raw beacon identifier to its canonical id and cell.
// *beacon.Registry implements it.
type Locator interface {
	Lookup(raw string) (id string, at occupancy.Cell, ok bool)
}

// State holds the current scale factor.
type State struct {
	mu      sync.Mutex
	bits    atomic.Uint64
	version atomic.Uint64
}

// NewState returns a State holding initial.
func NewState(initial float64) (*State, error) {
	if !validScale(initial) {
		return nil, fmt.Errorf("%w: %v", ErrBadScale, initial)
	}
	s := &State{}
	s.bits.Store(math.Float64bits(initial))
	return s, nil
}

// Load returns the current scale factor.
func (s *State) Load() float64 { return math.Float64frombits(s.bits.Load()) }

// Version returns the number of committed updates.
func (s *State) Version() uint64 { return s.version.Load() }

// Set commits scale directly.
func (s *State) Set(scale float64) error {
	if !validScale(scale) {
		return fmt.Errorf("%w: %v", ErrBadScale, scale)
	}
	s.commit(scale)
	return nil
}

// Calibrate sets the scale to the Euclidean grid distance between two
// beacons divided by their known physical distance, and returns it. On
// error the current factor is left unchanged.
func (s *State) Calibrate(loc Locator, id1, id2 string, physical float64) (float64, error) {
	if !(physical > 0) || math.IsInf(physical, 0) {
		return 0, fmt.Errorf("%w: %v", ErrBadDistance, physical)
	}
	_, a, ok := loc.Lookup(id1)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownBeacon, id1)
	}
	_, b, ok := loc.Lookup(id2)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownBeacon, id2)
	}

	grid := math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
	scale := grid / physical
	if !validScale(scale) {
		return 0, fmt.Errorf("%w: %q and %q at %s", ErrDegenerate, id1, id2, a)
	}
	s.commit(scale)
	return scale, nil
}

func (s *State) commit(scale float64) {
	s.mu.Lock()
	s.bits.Store(math.Float64bits(scale))
	s.version.Add(1)
	s.mu.Unlock()
}

func validScale(v float64) bool { return v > 0 && !math.IsInf(v, 0) }
