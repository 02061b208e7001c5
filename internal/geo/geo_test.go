package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
	"svcmap/internal/model"
)

func TestDistanceMiles(t *testing.T) {
	t.Run("identical points", func(t *testing.T) {
		p := model.LatLng{Lat: 38.7190, Lng: -90.4218}
		require.Zero(t, DistanceMiles(p, p))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := model.LatLng{Lat: 38.7190, Lng: -90.4218}
		b := model.LatLng{Lat: 38.6620, Lng: -90.4218}
		require.Equal(t, DistanceMiles(a, b), DistanceMiles(b, a))
	})

	t.Run("known distance", func(t *testing.T) {
		// One degree of latitude is about 69 miles.
		a := model.LatLng{Lat: 38.0, Lng: -90.0}
		b := model.LatLng{Lat: 39.0, Lng: -90.0}
		require.InDelta(t, 69.1, DistanceMiles(a, b), 0.5)
	})
}

func TestBounds(t *testing.T) {
	b := BoundsAround(model.LatLng{Lat: 38.7, Lng: -90.4})
	require.True(t, b.Contains(model.LatLng{Lat: 38.7, Lng: -90.4}), "degenerate bounds contain their point")

	b = b.Extend(model.LatLng{Lat: 38.6, Lng: -90.2})
	require.Equal(t, 38.6, b.South)
	require.Equal(t, 38.7, b.North)
	require.Equal(t, -90.4, b.West)
	require.Equal(t, -90.2, b.East)

	require.True(t, b.Contains(model.LatLng{Lat: 38.65, Lng: -90.3}))
	require.True(t, b.Contains(model.LatLng{Lat: 38.6, Lng: -90.4}), "containment is edge inclusive")
	require.False(t, b.Contains(model.LatLng{Lat: 38.5, Lng: -90.3}))

	center := b.Center()
	require.InDelta(t, 38.65, center.Lat, 1e-9)
	require.InDelta(t, -90.3, center.Lng, 1e-9)
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	for _, p := range []model.LatLng{
		{Lat: 0, Lng: 0},
		{Lat: 38.6270, Lng: -90.1994},
		{Lat: -33.8688, Lng: 151.2093},
	} {
		x, y := Project(p, 12)
		back := Unproject(x, y, 12)
		require.InDelta(t, p.Lat, back.Lat, 1e-6)
		require.InDelta(t, p.Lng, back.Lng, 1e-6)
	}
}

func TestFitZoom(t *testing.T) {
	metro := Bounds{South: 38.55, West: -90.45, North: 38.75, East: -90.15}

	zoom := FitZoom(metro, 1024, 768, 40, 3, 18)
	require.GreaterOrEqual(t, zoom, 3.0)
	require.LessOrEqual(t, zoom, 18.0)

	// A wider area must not fit at a higher zoom than a narrower one.
	region := Bounds{South: 37.0, West: -92.0, North: 40.0, East: -88.0}
	require.LessOrEqual(t, FitZoom(region, 1024, 768, 40, 3, 18), zoom)
}
