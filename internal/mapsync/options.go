package mapsync

import "svcmap/internal/model"

// DefaultCategoryColor is the fallback fill for categories without a
// configured color.
const DefaultCategoryColor = "#546E7A"

// Options configures the map layer at construction time. Zero fields take
// the documented defaults from DefaultOptions.
type Options struct {
	DefaultCenter        model.LatLng
	DefaultZoom          float64
	MinZoom              float64
	MaxZoom              float64
	CategoryColors       map[string]string
	MarkerRadius         float64
	MarkerStrokeWidth    float64
	MarkerOpacity        float64
	MarkerFillOpacity    float64
	TileLayerURLTemplate string
	TileAttributionText  string
	EnablePopups         bool
	EnableClustering     bool
	ClusterThreshold     int
	FitPaddingPx         float64
}

// DefaultOptions returns the documented defaults: a St. Louis metro view
// with OpenStreetMap tiles.
func DefaultOptions() Options {
	return Options{
		DefaultCenter: model.LatLng{Lat: 38.6270, Lng: -90.1994},
		DefaultZoom:   12,
		MinZoom:       3,
		MaxZoom:       18,
		CategoryColors: map[string]string{
			"Food":       "#2E7D32",
			"Housing":    "#E65100",
			"Legal Aid":  "#1565C0",
			"Healthcare": "#AD1457",
		},
		MarkerRadius:         8,
		MarkerStrokeWidth:    2,
		MarkerOpacity:        1.0,
		MarkerFillOpacity:    0.85,
		TileLayerURLTemplate: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		TileAttributionText:  "© OpenStreetMap contributors",
		EnablePopups:         true,
		EnableClustering:     false,
		ClusterThreshold:     25,
		FitPaddingPx:         40,
	}
}

// withDefaults fills unset fields. Color overrides are merged over the
// default palette rather than replacing it.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.DefaultCenter == (model.LatLng{}) {
		o.DefaultCenter = d.DefaultCenter
	}
	if o.DefaultZoom == 0 {
		o.DefaultZoom = d.DefaultZoom
	}
	if o.MinZoom == 0 {
		o.MinZoom = d.MinZoom
	}
	if o.MaxZoom == 0 {
		o.MaxZoom = d.MaxZoom
	}
	colors := make(map[string]string, len(d.CategoryColors)+len(o.CategoryColors))
	for k, v := range d.CategoryColors {
		colors[k] = v
	}
	for k, v := range o.CategoryColors {
		colors[k] = v
	}
	o.CategoryColors = colors
	if o.MarkerRadius == 0 {
		o.MarkerRadius = d.MarkerRadius
	}
	if o.MarkerStrokeWidth == 0 {
		o.MarkerStrokeWidth = d.MarkerStrokeWidth
	}
	if o.MarkerOpacity == 0 {
		o.MarkerOpacity = d.MarkerOpacity
	}
	if o.MarkerFillOpacity == 0 {
		o.MarkerFillOpacity = d.MarkerFillOpacity
	}
	if o.TileLayerURLTemplate == "" {
		o.TileLayerURLTemplate = d.TileLayerURLTemplate
	}
	if o.TileAttributionText == "" {
		o.TileAttributionText = d.TileAttributionText
	}
	if o.ClusterThreshold == 0 {
		o.ClusterThreshold = d.ClusterThreshold
	}
	if o.FitPaddingPx == 0 {
		o.FitPaddingPx = d.FitPaddingPx
	}
	return o
}
