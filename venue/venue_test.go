package venue_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofiagarciadougherty/InMaps/venue"
)

// TestKindFromName mirrors the naming rules used by venue tables.
func TestKindFromName(t *testing.T) {
	cases := []struct {
		name string
		want venue.Kind
	}{
		{"Blocker 1", venue.KindObstacle},
		{"Booth A", venue.KindBooth},
		{"booth blocker", venue.KindObstacle},
		{"Entrance Beacon", venue.KindBeacon},
		{"Main Aisle", venue.KindWalkableZone},
		{"Bathroom", venue.KindFacility},
		{"Restroom B", venue.KindFacility},
		{"Other 2", venue.KindFacility},
		{"Stage", venue.KindOther},
		{"", venue.KindOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, venue.KindFromName(tc.name))
		})
	}
}

// TestParseKind checks labels, aliases and the unknown-label error.
func TestParseKind(t *testing.T) {
	for _, k := range []venue.Kind{venue.KindOther, venue.KindObstacle, venue.KindBooth, venue.KindBeacon, venue.KindWalkableZone, venue.KindFacility} {
		got, err := venue.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := venue.ParseKind(" Blocker ")
	require.NoError(t, err)
	assert.Equal(t, venue.KindObstacle, got)

	got, err = venue.ParseKind("Restroom")
	require.NoError(t, err)
	assert.Equal(t, venue.KindFacility, got)

	_, err = venue.ParseKind("stage")
	assert.True(t, errors.Is(err, venue.ErrUnknownKind))

	var k venue.Kind
	require.NoError(t, k.UnmarshalText([]byte("walkable-zone")))
	assert.Equal(t, venue.KindWalkableZone, k)
}

// TestRect_Normalize verifies corner swapping and the derived center.
func TestRect_Normalize(t *testing.T) {
	r := venue.NewRect(venue.Point{X: 40, Y: 10}, venue.Point{X: 0, Y: 30})
	assert.Equal(t, venue.Point{X: 0, Y: 10}, r.Start)
	assert.Equal(t, venue.Point{X: 40, Y: 30}, r.End)
	assert.Equal(t, venue.Point{X: 20, Y: 20}, r.Center())
	assert.True(t, r.Contains(venue.Point{X: 40, Y: 30}))
	assert.False(t, r.Contains(venue.Point{X: 41, Y: 30}))
}

// TestParseFootprint covers valid, CSV-escaped and malformed inputs.
func TestParseFootprint(t *testing.T) {
	r, err := venue.ParseFootprint(`{"start":{"x":100,"y":50},"end":{"x":20,"y":80}}`)
	require.NoError(t, err)
	assert.Equal(t, venue.NewRect(venue.Point{X: 20, Y: 50}, venue.Point{X: 100, Y: 80}), r)

	r, err = venue.ParseFootprint(`{""start"":{""x"":1,""y"":2},""end"":{""x"":3,""y"":4}}`)
	require.NoError(t, err)
	assert.Equal(t, venue.Point{X: 3, Y: 4}, r.End)

	for _, bad := range []string{"", "not json", `{"start":{"x":1,"y":1}}`, `[1,2,3]`} {
		_, err := venue.ParseFootprint(bad)
		assert.ErrorIs(t, err, venue.ErrMalformedFootprint, "input %q", bad)
	}
}

// TestFormatFootprint_RoundTrip checks the encoder against the decoder.
func TestFormatFootprint_RoundTrip(t *testing.T) {
	in := venue.NewRect(venue.Point{X: 5, Y: 6}, venue.Point{X: 1.5, Y: 2})
	s, err := venue.FormatFootprint(in)
	require.NoError(t, err)
	out, err := venue.ParseFootprint(s)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = venue.FormatFootprint(venue.Rect{End: venue.Point{X: math.NaN()}})
	assert.ErrorIs(t, err, venue.ErrMalformedFootprint)
}

// TestNewElement checks id generation, trimming and the default center.
func TestNewElement(t *testing.T) {
	e := venue.NewElement("", "  Booth A ", venue.KindBooth, venue.Rect{
		Start: venue.Point{X: 100, Y: 100},
		End:   venue.Point{X: 0, Y: 0},
	})
	_, err := uuid.Parse(e.ID)
	require.NoError(t, err, "generated id should be a UUID")
	assert.Equal(t, "Booth A", e.Name)
	assert.Equal(t, venue.Point{X: 50, Y: 50}, e.Center)
	assert.Equal(t, venue.Point{X: 0, Y: 0}, e.Area.Start)

	kept := venue.NewElement("b-1", "Booth B", venue.KindBooth, venue.Rect{})
	assert.Equal(t, "b-1", kept.ID)
}

func TestElement_Finite(t *testing.T) {
	e := venue.NewElement("1", "Booth A", venue.KindBooth, venue.Rect{End: venue.Point{X: 10, Y: 10}})
	assert.True(t, e.Finite())

	e.Center.X = math.NaN()
	assert.False(t, e.Finite())

	e = venue.NewElement("2", "Booth B", venue.KindBooth, venue.Rect{End: venue.Point{X: math.Inf(1), Y: 10}})
	assert.False(t, e.Finite())
}

// TestSet_Lookups exercises ByName, ByID, OfKind and Extent.
func TestSet_Lookups(t *testing.T) {
	set := venue.Set{
		venue.NewElement("1", "Booth A", venue.KindBooth, venue.NewRect(venue.Point{X: 0, Y: 0}, venue.Point{X: 50, Y: 40})),
		venue.NewElement("2", "Blocker", venue.KindObstacle, venue.NewRect(venue.Point{X: 60, Y: 0}, venue.Point{X: 90, Y: 120})),
		{ID: "3", Name: "Broken", Kind: venue.KindOther, Area: venue.Rect{End: venue.Point{X: math.Inf(1), Y: 0}}},
	}

	e, ok := set.ByName("  booth a")
	require.True(t, ok)
	assert.Equal(t, "1", e.ID)
	_, ok = set.ByName("Booth Z")
	assert.False(t, ok)

	e, ok = set.ByID("2")
	require.True(t, ok)
	assert.Equal(t, "Blocker", e.Name)

	assert.Len(t, set.OfKind(venue.KindBooth), 1)

	end, ok := set.Extent()
	require.True(t, ok)
	assert.Equal(t, venue.Point{X: 90, Y: 120}, end)

	_, ok = venue.Set{}.Extent()
	assert.False(t, ok)
}
