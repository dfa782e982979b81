package observability

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Route outcomes used as the "outcome" label.
const (
	OutcomeOK          = "ok"
	OutcomeSubstituted = "substituted"
	OutcomeUnreachable = "unreachable"
	OutcomeNotFound    = "not_found"
	OutcomeInvalid     = "invalid"
	OutcomeUnknown     = "unknown"
)

// Collector bundles the Prometheus metrics of the navigation service. All
// methods are safe on a nil *Collector and do nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Routes        *prometheus.CounterVec
	Localizations *prometheus.CounterVec
	GridBuilds    prometheus.Counter
	SkippedElems  prometheus.Counter
	RouteLength   prometheus.Histogram
	AStarExpanded prometheus.Histogram
	ScaleFactor   prometheus.Gauge
	WalkableCells prometheus.Gauge
}

// NewCollector registers the metrics against reg, defaulting to the global
// registry when nil. Registering twice on the same registry reuses the
// existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	if c.Routes, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inmaps_routes_total",
		Help: "Route requests by outcome.",
	}, []string{"outcome"}), "inmaps_routes_total"); err != nil {
		return nil, err
	}
	if c.Localizations, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inmaps_localizations_total",
		Help: "Position estimates by outcome.",
	}, []string{"outcome"}), "inmaps_localizations_total"); err != nil {
		return nil, err
	}
	if c.GridBuilds, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inmaps_grid_builds_total",
		Help: "Occupancy grids built and published.",
	}), "inmaps_grid_builds_total"); err != nil {
		return nil, err
	}
	if c.SkippedElems, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inmaps_grid_skipped_elements_total",
		Help: "Venue elements skipped during rasterization because of malformed footprints.",
	}), "inmaps_grid_skipped_elements_total"); err != nil {
		return nil, err
	}
	if c.RouteLength, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "inmaps_route_length_cells",
		Help:    "Number of cells in computed routes.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}), "inmaps_route_length_cells"); err != nil {
		return nil, err
	}
	if c.AStarExpanded, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "inmaps_astar_expanded_cells",
		Help:    "Cells expanded by A* per search.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}), "inmaps_astar_expanded_cells"); err != nil {
		return nil, err
	}
	if c.ScaleFactor, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inmaps_scale_factor",
		Help: "Current physical-to-grid scale factor.",
	}), "inmaps_scale_factor"); err != nil {
		return nil, err
	}
	if c.WalkableCells, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inmaps_grid_walkable_cells",
		Help: "Walkable cells in the published grid.",
	}), "inmaps_grid_walkable_cells"); err != nil {
		return nil, err
	}
	return c, nil
}

// ObserveRoute records one route request.
func (c *Collector) ObserveRoute(outcome string, cells, expanded int) {
	if c == nil {
		return
	}
	c.Routes.WithLabelValues(outcome).Inc()
	if cells > 0 {
		c.RouteLength.Observe(float64(cells))
	}
	if expanded > 0 {
		c.AStarExpanded.Observe(float64(expanded))
	}
}

// ObserveLocalization records one position estimate.
func (c *Collector) ObserveLocalization(outcome string) {
	if c == nil {
		return
	}
	c.Localizations.WithLabelValues(outcome).Inc()
}

// ObserveGridBuild records a published grid.
func (c *Collector) ObserveGridBuild(walkable, skipped int) {
	if c == nil {
		return
	}
	c.GridBuilds.Inc()
	c.SkippedElems.Add(float64(skipped))
	c.WalkableCells.Set(float64(walkable))
}

// SetScale records the current scale factor.
func (c *Collector) SetScale(v float64) {
	if c == nil {
		return
	}
	c.ScaleFactor.Set(v)
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	if c == nil {
		return nil
	}
	families, err := c.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
