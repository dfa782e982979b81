package locate

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sofiagarciadougherty/InMaps"
	"github.com/sofiagarciadougherty/InMaps/beacon"
	"github.com/sofiagarciadougherty/InMaps/occupancy"
)

// Model defaults.
const (
	DefaultReferencePower = -59.0 // RSSI at one physical unit (dBm)
	DefaultExponent       = 2.0   // free-space path loss
	DefaultMinDistance    = 0.1   // grid units
)

var (
	// ErrUnknown indicates that no reading resolved to a registered beacon
	// with a usable weight.
	ErrUnknown = fmt.Errorf("locate: position unknown: %w", inmaps.ErrNotFound)

	// ErrBadScale indicates a non-positive or non-finite scale factor.
	ErrBadScale = fmt.Errorf("locate: scale factor must be positive: %w", inmaps.ErrValidation)

	// ErrNilRegistry indicates a nil *beacon.Registry.
	ErrNilRegistry = fmt.Errorf("locate: registry is nil: %w", inmaps.ErrValidation)

	// ErrUnknownMethod indicates an unsupported estimation method.
	ErrUnknownMethod = fmt.Errorf("locate: unknown estimation method: %w", inmaps.ErrValidation)
)

// Method selects how resolved readings are combined into a position.
type Method int

const (
	// MethodCentroid weights each beacon's cell by 1/d².
	MethodCentroid Method = iota
	// MethodMultilateration averages the pairwise intersections of the
	// beacons' range circles.
	MethodMultilateration
)

// String returns the configuration name of m.
func (m Method) String() string {
	switch m {
	case MethodCentroid:
		return "centroid"
	case MethodMultilateration:
		return "multilateration"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a configuration name to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "centroid":
		return MethodCentroid, nil
	case "multilateration":
		return MethodMultilateration, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	parsed, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Options holds the path-loss model parameters and the estimation method.
type Options struct {
	ReferencePower float64
	Exponent       float64
	MinDistance    float64
	Method         Method
}

// DefaultOptions returns the model defaults.
func DefaultOptions() Options {
	return Options{
		ReferencePower: DefaultReferencePower,
		Exponent:       DefaultExponent,
		MinDistance:    DefaultMinDistance,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithPathLoss sets the reference power and path-loss exponent.
// It panics if exponent is not positive.
func WithPathLoss(referencePower, exponent float64) Option {
	if !(exponent > 0) {
		panic(fmt.Sprintf("locate: WithPathLoss exponent %v must be positive", exponent))
	}
	return func(o *Options) {
		o.ReferencePower = referencePower
		o.Exponent = exponent
	}
}

// WithMinDistance sets the distance floor in grid units.
// It panics if d is not positive.
func WithMinDistance(d float64) Option {
	if !(d > 0) {
		panic(fmt.Sprintf("locate: WithMinDistance(%v) must be positive", d))
	}
	return func(o *Options) { o.MinDistance = d }
}

// WithMethod selects the estimation method.
// It panics if m is not a known method.
func WithMethod(m Method) Option {
	if m != MethodCentroid && m != MethodMultilateration {
		panic(fmt.Sprintf("locate: WithMethod(%v) is not a known method", m))
	}
	return func(o *Options) { o.Method = m }
}

// WithOptions replaces the whole model, typically from configuration.
func WithOptions(m Options) Option {
	return func(o *Options) { *o = m }
}

// Fix is a position estimate.
type Fix struct {
	Cell      occupancy.Cell // rounded estimate
	X, Y      float64        // exact estimate in grid units
	Used      int            // readings that contributed
	Discarded int            // readings that were unresolvable, unusable or superseded
}

// Distance converts an RSSI value to a physical distance.
func Distance(rssi, referencePower, exponent float64) float64 {
	return math.Pow(10, (referencePower-rssi)/(10*exponent))
}

type sample struct {
	id   string
	rssi float64
	at   occupancy.Cell
}

// Estimate computes the position of readings with the configured method.
func Estimate(readings []beacon.Reading, reg *beacon.Registry, scale float64, opts ...Option) (Fix, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if reg == nil {
		return Fix{}, ErrNilRegistry
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return Fix{}, fmt.Errorf("%w: %v", ErrBadScale, scale)
	}
	if cfg.Method != MethodCentroid && cfg.Method != MethodMultilateration {
		return Fix{}, fmt.Errorf("%w: %v", ErrUnknownMethod, cfg.Method)
	}

	var fix Fix
	samples := make([]sample, 0, len(readings))
	for _, rd := range readings {
		if math.IsNaN(rd.RSSI) || math.IsInf(rd.RSSI, 0) {
			fix.Discarded++
			continue
		}
		id, at, ok := reg.Lookup(rd.ID)
		if !ok {
			fix.Discarded++
			continue
		}
		samples = append(samples, sample{id: id, rssi: rd.RSSI, at: at})
	}

	// Floating-point sums depend on order; a canonical order makes the
	// estimate independent of how readings arrive.
	sort.Slice(samples, func(i, j int) bool {
		if samples[i].id != samples[j].id {
			return samples[i].id < samples[j].id
		}
		return samples[i].rssi < samples[j].rssi
	})

	var ok bool
	if cfg.Method == MethodMultilateration {
		ok = multilaterate(samples, cfg, scale, &fix)
	} else {
		ok = centroid(samples, cfg, scale, &fix)
	}
	if !ok {
		return fix, ErrUnknown
	}
	fix.Cell = occupancy.Cell{X: int(math.Round(fix.X)), Y: int(math.Round(fix.Y))}
	return fix, nil
}

// rangeOf converts an RSSI to a clamped range in grid units. ok is false
// when the range is not finite.
func rangeOf(rssi float64, cfg Options, scale float64) (r float64, ok bool) {
	r = Distance(rssi, cfg.ReferencePower, cfg.Exponent) * scale
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, false
	}
	if r < cfg.MinDistance {
		r = cfg.MinDistance
	}
	return r, true
}

func centroid(samples []sample, cfg Options, scale float64, fix *Fix) bool {
	xs := make([]float64, 0, len(samples))
	ys := make([]float64, 0, len(samples))
	ws := make([]float64, 0, len(samples))
	for _, s := range samples {
		d, ok := rangeOf(s.rssi, cfg, scale)
		w := 1 / (d * d)
		if !ok || w == 0 || math.IsNaN(w) {
			fix.Discarded++
			continue
		}
		xs = append(xs, float64(s.at.X))
		ys = append(ys, float64(s.at.Y))
		ws = append(ws, w)
	}
	fix.Used = len(ws)
	if fix.Used == 0 {
		return false
	}
	fix.X = stat.Mean(xs, ws)
	fix.Y = stat.Mean(ys, ws)
	return true
}
