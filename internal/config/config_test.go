package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofiagarciadougherty/InMaps"
	"github.com/sofiagarciadougherty/InMaps/locate"
	"github.com/sofiagarciadougherty/InMaps/occupancy"
	"github.com/sofiagarciadougherty/InMaps/venue"
)

const sample = `grid:
  cell_size: 25
  policy: walkable-allowlist
  canvas: {width: 800, height: 600}
signal:
  reference_power: -62
  path_loss_exponent: 2.5
calibration:
  initial_scale: 1.5
logging:
  level: debug
  format: json
database: venue.db
beacons:
  aliases:
    "FDA50693-A4E2-4FB1-AFCF-C6EB07647825": "17091"
venue:
  elements:
    - {id: "1", name: "Booth A", start: {x: 0, y: 0}, end: {x: 99, y: 49}, description: "Coffee"}
    - {id: "2", name: "Main aisle", kind: walkable, start: {x: 0, y: 50}, end: {x: 799, y: 99}}
    - {id: "17091", name: "17091", kind: beacon, start: {x: 40, y: 60}, end: {x: 50, y: 70}, center: {x: 45, y: 62}}
`

func TestLoad_ValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inmaps.yml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25.0, cfg.Grid.CellSize)
	assert.Equal(t, "walkable-allowlist", cfg.Grid.Policy)
	require.NotNil(t, cfg.Grid.Canvas)
	assert.Equal(t, 800.0, cfg.Grid.Canvas.Width)
	assert.Equal(t, "venue.db", cfg.Database)
	assert.Equal(t, "17091", cfg.Beacons.Aliases["FDA50693-A4E2-4FB1-AFCF-C6EB07647825"])
	assert.Equal(t, 0.1, cfg.Signal.MinDistance, "default applied")

	m := cfg.LocateOptions()
	assert.Equal(t, locate.Options{ReferencePower: -62, Exponent: 2.5, MinDistance: 0.1}, m)
	assert.Equal(t, "json", cfg.LoggerConfig().Format)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/inmaps.yml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("grid: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
	assert.True(t, errors.Is(err, inmaps.ErrConfiguration))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, occupancy.DefaultCellSize, cfg.Grid.CellSize)
	assert.Equal(t, "obstacle-denylist", cfg.Grid.Policy)
	assert.Equal(t, locate.DefaultOptions(), cfg.LocateOptions())
	assert.Equal(t, 1.0, cfg.Calibration.InitialScale)
}

func TestLocateOptions_Method(t *testing.T) {
	cfg, err := Parse([]byte("signal: {method: multilateration, min_distance: 0.5}"))
	require.NoError(t, err)
	m := cfg.LocateOptions()
	assert.Equal(t, locate.MethodMultilateration, m.Method)
	assert.Equal(t, 0.5, m.MinDistance)
	assert.Equal(t, "centroid", Default().Signal.Method)
}

func TestParse_EmptyDocumentUsesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate_Errors(t *testing.T) {
	cases := map[string]string{
		"NegativeCellSize": "grid: {cell_size: -5}",
		"UnknownPolicy":    "grid: {policy: diagonal}",
		"EmptyCanvas":      "grid: {canvas: {width: 0, height: 10}}",
		"NegativeMargin":   "grid: {margin: -1}",
		"BadObstacleKind":  "grid: {obstacle_kinds: [lava]}",
		"BadExponent":      "signal: {path_loss_exponent: -2}",
		"BadMinDistance":   "signal: {min_distance: -0.1}",
		"BadMethod":        "signal: {method: kalman}",
		"BadInitialScale":  "calibration: {initial_scale: -1}",
		"BadLevel":         "logging: {level: chatty}",
		"BadFormat":        "logging: {format: xml}",
		"EmptyAliasTarget": `beacons: {aliases: {"abc": ""}}`,
		"BadElementKind":   "venue: {elements: [{name: x, kind: lava}]}",
		"DuplicateIDs":     "venue: {elements: [{id: a, name: x}, {id: a, name: y}]}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.True(t, errors.Is(err, inmaps.ErrConfiguration))
		})
	}
}

func TestElements(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	elements, err := cfg.Elements()
	require.NoError(t, err)
	require.Len(t, elements, 3)

	assert.Equal(t, venue.KindBooth, elements[0].Kind, "inferred from name")
	assert.Equal(t, venue.Point{X: 49.5, Y: 24.5}, elements[0].Center)
	assert.Equal(t, "Coffee", elements[0].Description)
	assert.Equal(t, venue.KindWalkableZone, elements[1].Kind)
	assert.Equal(t, venue.Point{X: 45, Y: 62}, elements[2].Center, "explicit center kept")
}

func TestElements_GeneratesIDs(t *testing.T) {
	cfg, err := Parse([]byte("venue: {elements: [{name: Stage, start: {x: 0, y: 0}, end: {x: 5, y: 5}}]}"))
	require.NoError(t, err)
	elements, err := cfg.Elements()
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.Len(t, elements[0].ID, 36)
	assert.Equal(t, venue.KindOther, elements[0].Kind)
}

func TestGridOptions(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)
	elements, err := cfg.Elements()
	require.NoError(t, err)
	opts, err := cfg.GridOptions()
	require.NoError(t, err)

	g, rep, err := occupancy.Build(elements, opts...)
	require.NoError(t, err)
	assert.Equal(t, 32, g.Width())
	assert.Equal(t, 24, g.Height())
	assert.Equal(t, occupancy.PolicyWalkableAllowlist, g.Policy())
	// The aisle spans rows 2..3 across the full width.
	assert.Equal(t, 64, rep.Walkable)
}
