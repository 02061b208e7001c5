package mapsync

import (
	"go.uber.org/zap"
	"svcmap/internal/config"
	"svcmap/internal/model"
)

// NewServerLayer wires a layer over a headless surface from the application
// config. The server resolves exactly one container: the configured id.
func NewServerLayer(cfg *config.Config, logger *zap.Logger) *Layer {
	opts := Options{
		DefaultCenter: model.LatLng{Lat: cfg.CenterLat, Lng: cfg.CenterLng},
		DefaultZoom:   cfg.DefaultZoom,
		MinZoom:       cfg.MinZoom,
		MaxZoom:       cfg.MaxZoom,
	}
	return NewLayer(opts, NewHeadlessSurface(cfg.MapContainerID), logger)
}
