package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofiagarciadougherty/InMaps/venue"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "venue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func rect(x0, y0, x1, y1 float64) venue.Rect {
	return venue.NewRect(venue.Point{X: x0, Y: y0}, venue.Point{X: x1, Y: y1})
}

func TestElementsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	beacon := venue.NewElement("17091", "17091", venue.KindBeacon, rect(40, 60, 50, 70))
	beacon.Center = venue.Point{X: 45, Y: 62}
	booth := venue.NewElement("1", "Booth A", venue.KindBooth, rect(0, 0, 99, 49))
	booth.Description = "Coffee"
	want := []venue.Element{booth, beacon}

	require.NoError(t, s.SaveElements(ctx, want))
	got, rep, err := s.LoadElements(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Loaded)
	assert.Empty(t, rep.Skipped)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("elements mismatch (-want +got):\n%s", diff)
	}

	// Saving again replaces the venue.
	require.NoError(t, s.SaveElements(ctx, want[:1]))
	got, _, err = s.LoadElements(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLoadElements_SkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	require.NoError(t, s.SaveElements(ctx, []venue.Element{
		venue.NewElement("ok", "Booth", venue.KindBooth, rect(0, 0, 10, 10)),
	}))

	_, err := s.ExecContext(ctx, `INSERT INTO elements (id, position, name, kind, footprint)
		VALUES ('bad-json', 1, 'x', 'booth', '{not json'),
		       ('bad-kind', 2, 'y', 'lava', '{"start":{"x":0,"y":0},"end":{"x":1,"y":1}}'),
		       ('csv', 3, 'z', 'obstacle', '{""start"":{""x"":5,""y"":5},""end"":{""x"":1,""y"":1}}')`)
	require.NoError(t, err)

	got, rep, err := s.LoadElements(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bad-json", "bad-kind"}, rep.Skipped)
	require.Len(t, got, 2)
	assert.Equal(t, "csv", got[1].ID)
	assert.Equal(t, rect(1, 1, 5, 5), got[1].Area)
	assert.Equal(t, venue.Point{X: 3, Y: 3}, got[1].Center, "missing center falls back to area midpoint")
}

func TestSaveElements_RejectsNonFinite(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	bad := venue.Element{ID: "nan", Name: "x", Kind: venue.KindBooth}
	bad.Area.End.X = math.Inf(1)

	err := s.SaveElements(ctx, []venue.Element{bad})
	assert.ErrorIs(t, err, venue.ErrMalformedFootprint)
}

func TestAliasesRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	want := map[string]string{
		"FDA50693-A4E2-4FB1-AFCF-C6EB07647825": "17091",
		"c3:00:00:1a:2b:3c":                    "17092",
	}
	require.NoError(t, s.SaveAliases(ctx, want))
	got, err := s.LoadAliases(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, s.SaveAliases(ctx, nil))
	got, err = s.LoadAliases(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
