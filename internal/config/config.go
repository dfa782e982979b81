// Package config loads the InMaps YAML configuration.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sofiagarciadougherty/InMaps"
	"github.com/sofiagarciadougherty/InMaps/calibration"
	"github.com/sofiagarciadougherty/InMaps/internal/logging"
	"github.com/sofiagarciadougherty/InMaps/locate"
	"github.com/sofiagarciadougherty/InMaps/occupancy"
	"github.com/sofiagarciadougherty/InMaps/venue"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = fmt.Errorf("config: invalid configuration: %w", inmaps.ErrConfiguration)

// Config represents the top-level inmaps.yml configuration
type Config struct {
	Grid        GridConfig        `yaml:"grid"`
	Signal      SignalConfig      `yaml:"signal"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Logging     LoggingConfig     `yaml:"logging"`
	Database    string            `yaml:"database,omitempty"` // SQLite venue store; empty = use venue.elements
	Beacons     BeaconsConfig     `yaml:"beacons,omitempty"`
	Venue       VenueConfig       `yaml:"venue"`
}

// GridConfig controls rasterization
type GridConfig struct {
	CellSize      float64       `yaml:"cell_size"`
	Policy        string        `yaml:"policy"` // obstacle-denylist or walkable-allowlist
	Canvas        *CanvasConfig `yaml:"canvas,omitempty"`
	Margin        float64       `yaml:"margin,omitempty"`
	ObstacleKinds []string      `yaml:"obstacle_kinds,omitempty"`
}

// CanvasConfig fixes the grid extent in venue pixels
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SignalConfig holds the path-loss model
type SignalConfig struct {
	ReferencePower   *float64 `yaml:"reference_power,omitempty"` // dBm at one physical unit, default -59
	PathLossExponent float64  `yaml:"path_loss_exponent"`
	MinDistance      float64  `yaml:"min_distance"`
	Method           string   `yaml:"method"` // centroid or multilateration
}

// CalibrationConfig holds the scale factor used before the first calibration
type CalibrationConfig struct {
	InitialScale float64 `yaml:"initial_scale"`
}

// LoggingConfig selects the slog handler
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// BeaconsConfig maps external identifiers (UUIDs, MACs) to canonical beacon ids
type BeaconsConfig struct {
	Aliases map[string]string `yaml:"aliases,omitempty"`
}

// VenueConfig lists inline venue geometry
type VenueConfig struct {
	Elements []ElementConfig `yaml:"elements,omitempty"`
}

// ElementConfig is one inline venue element
type ElementConfig struct {
	ID          string       `yaml:"id,omitempty"`
	Name        string       `yaml:"name"`
	Kind        string       `yaml:"kind,omitempty"` // inferred from name when empty
	Start       venue.Point  `yaml:"start"`
	End         venue.Point  `yaml:"end"`
	Center      *venue.Point `yaml:"center,omitempty"`
	Description string       `yaml:"description,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills omitted fields.
func (c *Config) ApplyDefaults() {
	if c.Grid.CellSize == 0 {
		c.Grid.CellSize = occupancy.DefaultCellSize
	}
	if c.Grid.Policy == "" {
		c.Grid.Policy = occupancy.PolicyObstacleDenylist.String()
	}
	if c.Signal.ReferencePower == nil {
		ref := locate.DefaultReferencePower
		c.Signal.ReferencePower = &ref
	}
	if c.Signal.PathLossExponent == 0 {
		c.Signal.PathLossExponent = locate.DefaultExponent
	}
	if c.Signal.MinDistance == 0 {
		c.Signal.MinDistance = locate.DefaultMinDistance
	}
	if c.Signal.Method == "" {
		c.Signal.Method = locate.MethodCentroid.String()
	}
	if c.Calibration.InitialScale == 0 {
		c.Calibration.InitialScale = calibration.DefaultScale
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate performs strict validation on the configuration
func (c *Config) Validate() error {
	if !positive(c.Grid.CellSize) {
		return fmt.Errorf("%w: grid.cell_size must be > 0, got %v", ErrInvalid, c.Grid.CellSize)
	}
	if _, err := occupancy.ParsePolicy(c.Grid.Policy); err != nil {
		return fmt.Errorf("%w: grid.policy: %v", ErrInvalid, err)
	}
	if c.Grid.Canvas != nil && (!positive(c.Grid.Canvas.Width) || !positive(c.Grid.Canvas.Height)) {
		return fmt.Errorf("%w: grid.canvas must have positive width and height", ErrInvalid)
	}
	if c.Grid.Margin < 0 || math.IsNaN(c.Grid.Margin) {
		return fmt.Errorf("%w: grid.margin must be >= 0, got %v", ErrInvalid, c.Grid.Margin)
	}
	for _, k := range c.Grid.ObstacleKinds {
		if _, err := venue.ParseKind(k); err != nil {
			return fmt.Errorf("%w: grid.obstacle_kinds: %v", ErrInvalid, err)
		}
	}
	if c.Signal.ReferencePower != nil && !finite(*c.Signal.ReferencePower) {
		return fmt.Errorf("%w: signal.reference_power must be finite", ErrInvalid)
	}
	if !positive(c.Signal.PathLossExponent) {
		return fmt.Errorf("%w: signal.path_loss_exponent must be > 0, got %v", ErrInvalid, c.Signal.PathLossExponent)
	}
	if !positive(c.Signal.MinDistance) {
		return fmt.Errorf("%w: signal.min_distance must be > 0, got %v", ErrInvalid, c.Signal.MinDistance)
	}
	if _, err := locate.ParseMethod(c.Signal.Method); err != nil {
		return fmt.Errorf("%w: signal.method: %v", ErrInvalid, err)
	}
	if !positive(c.Calibration.InitialScale) {
		return fmt.Errorf("%w: calibration.initial_scale must be > 0, got %v", ErrInvalid, c.Calibration.InitialScale)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("%w: logging.format must be 'text' or 'json', got %q", ErrInvalid, c.Logging.Format)
	}
	for alias, id := range c.Beacons.Aliases {
		if alias == "" || id == "" {
			return fmt.Errorf("%w: beacons.aliases entries need both alias and id", ErrInvalid)
		}
	}
	seen := make(map[string]int, len(c.Venue.Elements))
	for i, e := range c.Venue.Elements {
		if e.Kind != "" {
			if _, err := venue.ParseKind(e.Kind); err != nil {
				return fmt.Errorf("%w: venue.elements[%d]: %v", ErrInvalid, i, err)
			}
		}
		if e.ID == "" {
			continue
		}
		if j, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: venue.elements[%d] and [%d] share id %q", ErrInvalid, j, i, e.ID)
		}
		seen[e.ID] = i
	}
	return nil
}

// Load reads, defaults and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", errors.Join(ErrInvalid, err))
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Elements converts the inline venue entries.
func (c *Config) Elements() ([]venue.Element, error) {
	out := make([]venue.Element, 0, len(c.Venue.Elements))
	for i, ec := range c.Venue.Elements {
		kind := venue.KindFromName(ec.Name)
		if ec.Kind != "" {
			k, err := venue.ParseKind(ec.Kind)
			if err != nil {
				return nil, fmt.Errorf("%w: venue.elements[%d]: %v", ErrInvalid, i, err)
			}
			kind = k
		}
		e := venue.NewElement(ec.ID, ec.Name, kind, venue.NewRect(ec.Start, ec.End))
		if ec.Center != nil {
			e.Center = *ec.Center
		}
		e.Description = ec.Description
		out = append(out, e)
	}
	return out, nil
}

// GridOptions converts the grid section into occupancy build options.
func (c *Config) GridOptions() ([]occupancy.Option, error) {
	policy, err := occupancy.ParsePolicy(c.Grid.Policy)
	if err != nil {
		return nil, fmt.Errorf("%w: grid.policy: %v", ErrInvalid, err)
	}
	opts := []occupancy.Option{
		occupancy.WithCellSize(c.Grid.CellSize),
		occupancy.WithPolicy(policy),
		occupancy.WithMargin(c.Grid.Margin),
	}
	if c.Grid.Canvas != nil {
		opts = append(opts, occupancy.WithCanvas(c.Grid.Canvas.Width, c.Grid.Canvas.Height))
	}
	if len(c.Grid.ObstacleKinds) > 0 {
		kinds := make([]venue.Kind, 0, len(c.Grid.ObstacleKinds))
		for _, s := range c.Grid.ObstacleKinds {
			k, err := venue.ParseKind(s)
			if err != nil {
				return nil, fmt.Errorf("%w: grid.obstacle_kinds: %v", ErrInvalid, err)
			}
			kinds = append(kinds, k)
		}
		opts = append(opts, occupancy.WithObstacleKinds(kinds...))
	}
	return opts, nil
}

// LocateOptions returns the path-loss model and estimation method.
func (c *Config) LocateOptions() locate.Options {
	m := locate.DefaultOptions()
	if method, err := locate.ParseMethod(c.Signal.Method); err == nil {
		m.Method = method
	}
	if c.Signal.ReferencePower != nil {
		m.ReferencePower = *c.Signal.ReferencePower
	}
	if c.Signal.PathLossExponent > 0 {
		m.Exponent = c.Signal.PathLossExponent
	}
	if c.Signal.MinDistance > 0 {
		m.MinDistance = c.Signal.MinDistance
	}
	return m
}

// LoggerConfig returns the logging section as a logging.Config.
func (c *Config) LoggerConfig() logging.Config {
	return logging.Config{Level: c.Logging.Level, Format: c.Logging.Format}
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
