package navigator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/sofiagarciadougherty/InMaps"
	"github.com/sofiagarciadougherty/InMaps/astar"
	"github.com/sofiagarciadougherty/InMaps/beacon"
	"github.com/sofiagarciadougherty/InMaps/calibration"
	"github.com/sofiagarciadougherty/InMaps/goal"
	"github.com/sofiagarciadougherty/InMaps/internal/logging"
	"github.com/sofiagarciadougherty/InMaps/internal/observability"
	"github.com/sofiagarciadougherty/InMaps/locate"
	"github.com/sofiagarciadougherty/InMaps/occupancy"
	"github.com/sofiagarciadougherty/InMaps/venue"
)

// ErrUnknownPOI indicates a route target name that matches no element.
var ErrUnknownPOI = fmt.Errorf("navigator: unknown point of interest: %w", inmaps.ErrNotFound)

// Config configures a Service.
type Config struct {
	GridOptions   []occupancy.Option
	Locate        locate.Options    // zero model fields mean locate.DefaultOptions()
	InitialScale  float64           // zero means calibration.DefaultScale
	Aliases       map[string]string // alias → canonical beacon id
	MaxGoalRadius int               // 0 = unbounded goal substitution
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger; the default drops everything.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *observability.Collector) Option {
	return func(s *Service) { s.metrics = c }
}

// Service answers route, locate and calibrate requests.
type Service struct {
	cfg     Config
	log     logging.Logger
	metrics *observability.Collector
	scale   *calibration.State
	state   atomic.Pointer[state]
}

// state is one immutable published snapshot.
type state struct {
	elements venue.Set
	grid     *occupancy.Grid
	report   occupancy.Report
	registry *beacon.Registry
}

// Route is the answer to a routing request.
type Route struct {
	POI         venue.Element  // zero for RouteToCell
	From        occupancy.Cell
	Requested   occupancy.Cell // target before substitution
	Goal        occupancy.Cell // walkable target actually routed to
	Substituted bool
	Path        astar.Path // empty when the goal is unreachable
	Expanded    int
}

// Found reports whether a path exists.
func (r Route) Found() bool { return !r.Path.Empty() }

// New builds the initial snapshot from elements.
func New(ctx context.Context, cfg Config, elements []venue.Element, opts ...Option) (*Service, error) {
	if cfg.Locate == (locate.Options{Method: cfg.Locate.Method}) {
		method := cfg.Locate.Method
		cfg.Locate = locate.DefaultOptions()
		cfg.Locate.Method = method
	}
	if cfg.InitialScale == 0 {
		cfg.InitialScale = calibration.DefaultScale
	}
	scale, err := calibration.NewState(cfg.InitialScale)
	if err != nil {
		return nil, err
	}
	s := &Service{cfg: cfg, log: logging.Noop(), scale: scale}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logging.String("component", "navigator"))
	s.metrics.SetScale(scale.Load())

	if _, err := s.Reload(ctx, elements); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rebuilds grid and registry from elements and publishes them. On
// error the previous snapshot stays in place.
func (s *Service) Reload(ctx context.Context, elements []venue.Element) (occupancy.Report, error) {
	st, err := s.build(ctx, elements)
	if err != nil {
		s.log.Error(ctx, "venue rebuild failed", logging.Err(err))
		return occupancy.Report{}, err
	}
	s.state.Store(st)
	s.metrics.ObserveGridBuild(st.report.Walkable, len(st.report.Skipped))
	s.log.Info(ctx, "venue published",
		logging.Int("elements", len(st.elements)),
		logging.Int("width", st.grid.Width()),
		logging.Int("height", st.grid.Height()),
		logging.Int("walkable", st.report.Walkable),
		logging.Int("beacons", st.registry.Len()),
	)
	return st.report, nil
}

func (s *Service) build(ctx context.Context, elements []venue.Element) (*state, error) {
	grid, rep, err := occupancy.Build(elements, s.cfg.GridOptions...)
	if err != nil {
		return nil, err
	}
	if len(rep.Skipped) > 0 {
		s.log.Warn(ctx, "skipped malformed venue elements", logging.Any("ids", rep.Skipped))
	}

	// Skipped elements are dropped everywhere, not only from the grid.
	els := make(venue.Set, 0, len(elements))
	for _, e := range elements {
		if e.Finite() {
			els = append(els, e)
		}
	}

	reg, err := beacon.FromElements(els, grid.CellSize())
	if err != nil {
		return nil, err
	}
	for _, alias := range sortedKeys(s.cfg.Aliases) {
		if err := reg.AddAlias(alias, s.cfg.Aliases[alias]); err != nil {
			s.log.Warn(ctx, "ignoring beacon alias", logging.String("alias", alias), logging.Err(err))
		}
	}
	return &state{elements: els, grid: grid, report: rep, registry: reg}, nil
}

// Route plans a path from a cell to the element named poiName. Name
// matching ignores case and surrounding whitespace.
func (s *Service) Route(ctx context.Context, from occupancy.Cell, poiName string) (Route, error) {
	ctx, _ = logging.WithOperation(ctx)
	st := s.state.Load()

	poi, ok := st.elements.ByName(poiName)
	if !ok {
		s.metrics.ObserveRoute(observability.OutcomeNotFound, 0, 0)
		s.log.Info(ctx, "route target not found", logging.String("to", strings.TrimSpace(poiName)))
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownPOI, strings.TrimSpace(poiName))
	}
	r, err := s.route(ctx, st, from, st.grid.CellOf(poi.Center))
	r.POI = poi
	return r, err
}

// RouteToCell plans a path between two cells, substituting a blocked goal.
func (s *Service) RouteToCell(ctx context.Context, from, to occupancy.Cell) (Route, error) {
	ctx, _ = logging.WithOperation(ctx)
	return s.route(ctx, s.state.Load(), from, to)
}

func (s *Service) route(ctx context.Context, st *state, from, to occupancy.Cell) (Route, error) {
	r := Route{From: from, Requested: to}

	var gopts []goal.Option
	if s.cfg.MaxGoalRadius > 0 {
		gopts = append(gopts, goal.WithMaxRadius(s.cfg.MaxGoalRadius))
	}
	target, err := goal.Resolve(st.grid, to, gopts...)
	if err != nil {
		s.metrics.ObserveRoute(outcomeOf(err), 0, 0)
		s.log.Info(ctx, "no walkable goal", logging.String("requested", to.String()), logging.Err(err))
		return r, err
	}
	r.Goal = target
	r.Substituted = target != to
	if r.Substituted {
		s.log.Debug(ctx, "goal substituted", logging.String("requested", to.String()), logging.String("goal", target.String()))
	}

	res, err := astar.Search(st.grid, from, target)
	if err != nil {
		s.metrics.ObserveRoute(outcomeOf(err), 0, 0)
		return r, err
	}
	r.Path, r.Expanded = res.Path, res.Expanded

	switch {
	case r.Path.Empty():
		s.metrics.ObserveRoute(observability.OutcomeUnreachable, 0, r.Expanded)
		s.log.Warn(ctx, "goal unreachable", logging.String("from", from.String()), logging.String("goal", target.String()))
	case r.Substituted:
		s.metrics.ObserveRoute(observability.OutcomeSubstituted, len(r.Path), r.Expanded)
	default:
		s.metrics.ObserveRoute(observability.OutcomeOK, len(r.Path), r.Expanded)
	}
	return r, nil
}

// Locate estimates the visitor's cell from raw readings using the current
// scale factor.
func (s *Service) Locate(ctx context.Context, readings []beacon.Reading) (locate.Fix, error) {
	ctx, _ = logging.WithOperation(ctx)
	st := s.state.Load()

	fix, err := locate.Estimate(readings, st.registry, s.scale.Load(), locate.WithOptions(s.cfg.Locate))
	if fix.Discarded > 0 {
		s.log.Debug(ctx, "discarded readings", logging.Int("discarded", fix.Discarded), logging.Int("used", fix.Used))
	}
	if err != nil {
		s.metrics.ObserveLocalization(outcomeOf(err))
		return fix, err
	}
	s.metrics.ObserveLocalization(observability.OutcomeOK)
	return fix, nil
}

// Calibrate derives a new scale factor from two beacons a known physical
// distance apart and commits it.
func (s *Service) Calibrate(ctx context.Context, id1, id2 string, physical float64) (float64, error) {
	st := s.state.Load()
	scale, err := s.scale.Calibrate(st.registry, id1, id2, physical)
	if err != nil {
		s.log.Warn(ctx, "calibration rejected", logging.String("a", id1), logging.String("b", id2), logging.Err(err))
		return 0, err
	}
	s.metrics.SetScale(scale)
	s.log.Info(ctx, "calibrated",
		logging.String("a", id1), logging.String("b", id2),
		logging.Float("distance", physical), logging.Float("scale", scale))
	return scale, nil
}

// SetScale commits a known scale factor, e.g. one from an earlier
// calibration.
func (s *Service) SetScale(ctx context.Context, v float64) error {
	if err := s.scale.Set(v); err != nil {
		return err
	}
	s.metrics.SetScale(v)
	s.log.Info(ctx, "scale set", logging.Float("scale", v))
	return nil
}

// LocateMethod returns the estimation method used by Locate.
func (s *Service) LocateMethod() locate.Method { return s.cfg.Locate.Method }

// Scale returns the current scale factor.
func (s *Service) Scale() float64 { return s.scale.Load() }

// Elements returns the published venue elements.
func (s *Service) Elements() venue.Set { return s.state.Load().elements }

// Element returns the published element with the given id.
func (s *Service) Element(id string) (venue.Element, bool) { return s.state.Load().elements.ByID(id) }

// Grid returns the published occupancy grid.
func (s *Service) Grid() *occupancy.Grid { return s.state.Load().grid }

// Report returns the build report of the published grid.
func (s *Service) Report() occupancy.Report { return s.state.Load().report }

// Registry returns the published beacon registry. It must not be mutated.
func (s *Service) Registry() *beacon.Registry { return s.state.Load().registry }

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, locate.ErrUnknown):
		return observability.OutcomeUnknown
	case errors.Is(err, inmaps.ErrNotFound):
		return observability.OutcomeNotFound
	default:
		return observability.OutcomeInvalid
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
