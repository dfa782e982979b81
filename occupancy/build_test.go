package occupancy_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofiagarciadougherty/InMaps"
	"github.com/sofiagarciadougherty/InMaps/occupancy"
	"github.com/sofiagarciadougherty/InMaps/venue"
)

func rect(x0, y0, x1, y1 float64) venue.Rect {
	return venue.NewRect(venue.Point{X: x0, Y: y0}, venue.Point{X: x1, Y: y1})
}

func elem(id string, kind venue.Kind, r venue.Rect) venue.Element {
	return venue.NewElement(id, id, kind, r)
}

// TestBuild_RowSegmentObstacle blocks row 2, columns 2–4 of a 10×10 grid.
func TestBuild_RowSegmentObstacle(t *testing.T) {
	g, rep, err := occupancy.Build(
		[]venue.Element{elem("wall", venue.KindObstacle, rect(20, 20, 49, 29))},
		occupancy.WithCellSize(10),
		occupancy.WithCanvas(100, 100),
	)
	require.NoError(t, err)
	require.Equal(t, 10, g.Width())
	require.Equal(t, 10, g.Height())
	assert.Equal(t, 1, rep.Rasterized)
	assert.Equal(t, 97, rep.Walkable)
	assert.Empty(t, rep.Skipped)

	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			want := !(y == 2 && x >= 2 && x <= 4)
			assert.Equal(t, want, g.Walkable(occupancy.Cell{X: x, Y: y}), "cell (%d,%d)", x, y)
		}
	}
}

// TestBuild_IntegerPixelCorners checks truncation to integer pixels and
// clipping at the grid border.
func TestBuild_IntegerPixelCorners(t *testing.T) {
	g, _, err := occupancy.Build(
		[]venue.Element{
			elem("a", venue.KindObstacle, rect(49.9, 0, 50.0, 0)),
			elem("b", venue.KindObstacle, rect(-30, 120, 10, 160)),
			elem("c", venue.KindObstacle, rect(500, 500, 900, 900)),
		},
		occupancy.WithCellSize(50),
		occupancy.WithCanvas(200, 200),
	)
	require.NoError(t, err)
	assert.Equal(t, "##..\n....\n#...\n#...", g.String())
}

// TestBuild_ObstacleKinds verifies which kinds block cells by default and
// under an override.
func TestBuild_ObstacleKinds(t *testing.T) {
	elements := []venue.Element{
		elem("booth", venue.KindBooth, rect(0, 0, 9, 9)),
		elem("wc", venue.KindFacility, rect(10, 0, 19, 9)),
		elem("beacon", venue.KindBeacon, rect(20, 0, 29, 9)),
		elem("zone", venue.KindWalkableZone, rect(30, 0, 39, 9)),
		elem("wall", venue.KindObstacle, rect(40, 0, 49, 9)),
		elem("stage", venue.KindOther, rect(50, 0, 59, 9)),
	}

	g, _, err := occupancy.Build(elements, occupancy.WithCellSize(10), occupancy.WithCanvas(60, 10))
	require.NoError(t, err)
	assert.Equal(t, "##..#.", g.String())

	g, rep, err := occupancy.Build(elements,
		occupancy.WithCellSize(10),
		occupancy.WithCanvas(60, 10),
		occupancy.WithObstacleKinds(venue.KindObstacle),
	)
	require.NoError(t, err)
	assert.Equal(t, "....#.", g.String())
	assert.Equal(t, 1, rep.Rasterized)
}

// TestBuild_WalkableAllowlist opens only cells inside walkable zones.
func TestBuild_WalkableAllowlist(t *testing.T) {
	g, rep, err := occupancy.Build(
		[]venue.Element{
			elem("aisle", venue.KindWalkableZone, rect(0, 0, 29, 9)),
			elem("corner", venue.KindWalkableZone, rect(40, 20, 49, 29)),
			elem("wall", venue.KindObstacle, rect(0, 0, 9, 9)),
		},
		occupancy.WithCellSize(10),
		occupancy.WithCanvas(50, 30),
		occupancy.WithPolicy(occupancy.PolicyWalkableAllowlist),
	)
	require.NoError(t, err)
	assert.Equal(t, occupancy.PolicyWalkableAllowlist, g.Policy())
	assert.Equal(t, "...##\n#####\n####.", g.String())
	assert.Equal(t, 4, rep.Walkable)
	assert.Equal(t, 2, rep.Rasterized)
}

// TestBuild_ComputedExtent sizes the grid from the geometry plus margin.
func TestBuild_ComputedExtent(t *testing.T) {
	elements := []venue.Element{elem("booth", venue.KindBooth, rect(0, 0, 99, 49))}

	g, _, err := occupancy.Build(elements, occupancy.WithCellSize(10))
	require.NoError(t, err)
	assert.Equal(t, 10, g.Width())
	assert.Equal(t, 5, g.Height())

	g, _, err = occupancy.Build(elements, occupancy.WithCellSize(10), occupancy.WithMargin(25))
	require.NoError(t, err)
	assert.Equal(t, 13, g.Width())
	assert.Equal(t, 8, g.Height())
	assert.True(t, g.Walkable(occupancy.Cell{X: 12, Y: 7}))
	assert.False(t, g.Walkable(occupancy.Cell{X: 9, Y: 4}))
}

// TestBuild_ConfigurationErrors lists the fatal build failures.
func TestBuild_ConfigurationErrors(t *testing.T) {
	origin := []venue.Element{elem("dot", venue.KindObstacle, rect(0, 0, 0, 0))}
	broken := []venue.Element{{ID: "nan", Kind: venue.KindBooth, Area: rect(0, 0, math.NaN(), 5)}}

	cases := []struct {
		name     string
		elements []venue.Element
		opts     []occupancy.Option
		err      error
	}{
		{"NoElements", nil, nil, occupancy.ErrZeroExtent},
		{"PointAtOrigin", origin, nil, occupancy.ErrZeroExtent},
		{"AllSkipped", broken, nil, occupancy.ErrZeroExtent},
		{"CanvasSmallerThanCell", nil, []occupancy.Option{occupancy.WithCanvas(40, 40)}, occupancy.ErrZeroExtent},
		{"ZeroCellSize", origin, []occupancy.Option{occupancy.WithCellSize(0)}, occupancy.ErrBadCellSize},
		{"NaNCellSize", origin, []occupancy.Option{occupancy.WithCellSize(math.NaN())}, occupancy.ErrBadCellSize},
		{"NegativeMargin", origin, []occupancy.Option{occupancy.WithMargin(-1)}, occupancy.ErrZeroExtent},
		{"UnknownPolicy", origin, []occupancy.Option{occupancy.WithPolicy(occupancy.Policy(7))}, occupancy.ErrUnknownPolicy},
		{"TooLarge", nil, []occupancy.Option{occupancy.WithCellSize(1), occupancy.WithCanvas(1e9, 1e9)}, occupancy.ErrExtentTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, _, err := occupancy.Build(tc.elements, tc.opts...)
			require.Nil(t, g)
			assert.True(t, errors.Is(err, tc.err), "got %v; want %v", err, tc.err)
			assert.True(t, errors.Is(err, inmaps.ErrConfiguration), "error must be in the configuration class")
		})
	}
}

// TestBuild_SkipsMalformedFootprints records bad elements without failing.
func TestBuild_SkipsMalformedFootprints(t *testing.T) {
	g, rep, err := occupancy.Build(
		[]venue.Element{
			{ID: "bad", Kind: venue.KindObstacle, Area: rect(0, 0, math.Inf(1), 10)},
			elem("good", venue.KindObstacle, rect(0, 0, 9, 9)),
		},
		occupancy.WithCellSize(10),
		occupancy.WithCanvas(20, 20),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"bad"}, rep.Skipped)
	assert.Equal(t, 2, rep.Elements)
	assert.Equal(t, "#.\n..", g.String())
}

// TestBuild_Deterministic rebuilds with a permuted element order.
func TestBuild_Deterministic(t *testing.T) {
	elements := []venue.Element{
		elem("a", venue.KindBooth, rect(0, 0, 120, 80)),
		elem("b", venue.KindObstacle, rect(300, 10, 340, 400)),
		elem("c", venue.KindOther, rect(150, 200, 260, 230)),
		elem("z", venue.KindWalkableZone, rect(0, 0, 500, 500)),
	}
	reversed := make([]venue.Element, len(elements))
	for i, e := range elements {
		reversed[len(elements)-1-i] = e
	}

	for _, p := range []occupancy.Policy{occupancy.PolicyObstacleDenylist, occupancy.PolicyWalkableAllowlist} {
		g1, _, err := occupancy.Build(elements, occupancy.WithCellSize(25), occupancy.WithPolicy(p))
		require.NoError(t, err)
		g2, _, err := occupancy.Build(reversed, occupancy.WithCellSize(25), occupancy.WithPolicy(p))
		require.NoError(t, err)
		assert.True(t, g1.Equal(g2), "policy %s: grids differ", p)
		assert.Equal(t, g1.Rows(), g2.Rows())
	}
}

// TestParsePolicy covers labels and the unknown-label error.
func TestParsePolicy(t *testing.T) {
	for _, p := range []occupancy.Policy{occupancy.PolicyObstacleDenylist, occupancy.PolicyWalkableAllowlist} {
		got, err := occupancy.ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := occupancy.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, occupancy.PolicyObstacleDenylist, got)

	_, err = occupancy.ParsePolicy("both")
	assert.ErrorIs(t, err, occupancy.ErrUnknownPolicy)
}
