package geo

import (
	"math"

	"svcmap/internal/model"
)

// EarthRadiusMiles is the WGS-84 mean radius approximation used for all
// distance math in the directory.
const EarthRadiusMiles = 3959.0

// DistanceMiles returns the great-circle distance between two points using
// the haversine formula.
func DistanceMiles(a, b model.LatLng) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * EarthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Bounds is a geographic rectangle. Containment is inclusive on all edges.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// BoundsAround returns degenerate bounds covering a single point.
func BoundsAround(p model.LatLng) Bounds {
	return Bounds{South: p.Lat, West: p.Lng, North: p.Lat, East: p.Lng}
}

// Contains reports whether the point lies inside the rectangle.
func (b Bounds) Contains(p model.LatLng) bool {
	return p.Lat >= b.South && p.Lat <= b.North && p.Lng >= b.West && p.Lng <= b.East
}

// Extend grows the rectangle to cover the point.
func (b Bounds) Extend(p model.LatLng) Bounds {
	if p.Lat < b.South {
		b.South = p.Lat
	}
	if p.Lat > b.North {
		b.North = p.Lat
	}
	if p.Lng < b.West {
		b.West = p.Lng
	}
	if p.Lng > b.East {
		b.East = p.Lng
	}
	return b
}

// Center returns the midpoint of the rectangle.
func (b Bounds) Center() model.LatLng {
	return model.LatLng{Lat: (b.South + b.North) / 2, Lng: (b.West + b.East) / 2}
}

const tileSize = 256.0

// Project converts a coordinate to world pixel space at the given zoom,
// using the spherical Web Mercator projection.
func Project(p model.LatLng, zoom float64) (x, y float64) {
	scale := tileSize * math.Pow(2, zoom)
	x = (p.Lng + 180) / 360 * scale

	sin := math.Sin(radians(p.Lat))
	sin = math.Max(math.Min(sin, 0.9999), -0.9999)
	y = (0.5 - math.Log((1+sin)/(1-sin))/(4*math.Pi)) * scale
	return x, y
}

// Unproject converts world pixel coordinates back to lat/lng.
func Unproject(x, y, zoom float64) model.LatLng {
	scale := tileSize * math.Pow(2, zoom)
	lng := x/scale*360 - 180
	n := math.Pi - 2*math.Pi*y/scale
	lat := 180 / math.Pi * math.Atan(0.5*(math.Exp(n)-math.Exp(-n)))
	return model.LatLng{Lat: lat, Lng: lng}
}

// FitZoom picks the largest zoom at which bounds (plus padding on every
// side) fit inside a viewport of widthPx by heightPx.
func FitZoom(b Bounds, widthPx, heightPx, paddingPx, minZoom, maxZoom float64) float64 {
	usableW := widthPx - 2*paddingPx
	usableH := heightPx - 2*paddingPx
	if usableW <= 0 || usableH <= 0 {
		return minZoom
	}

	latFraction := (mercatorLat(b.North) - mercatorLat(b.South)) / math.Pi
	lngSpan := b.East - b.West
	if lngSpan < 0 {
		lngSpan += 360
	}
	lngFraction := lngSpan / 360

	zoom := maxZoom
	if latFraction > 0 {
		zoom = math.Min(zoom, zoomForFraction(usableH, latFraction))
	}
	if lngFraction > 0 {
		zoom = math.Min(zoom, zoomForFraction(usableW, lngFraction))
	}
	return math.Max(minZoom, math.Min(maxZoom, zoom))
}

func mercatorLat(lat float64) float64 {
	sin := math.Sin(radians(lat))
	r := math.Log((1+sin)/(1-sin)) / 2
	return math.Max(math.Min(r, math.Pi), -math.Pi)
}

func zoomForFraction(mapPx, fraction float64) float64 {
	return math.Floor(math.Log2(mapPx / tileSize / fraction))
}
