// Package events provides the synchronous publish/subscribe surface shared
// by the map-synchronization layer and its consumers.
package events

import (
	"svcmap/internal/geo"
	"svcmap/internal/model"
)

// Type is the closed set of event names the map layer can emit.
type Type string

const (
	MapReady        Type = "map-ready"
	MapError        Type = "map-error"
	RecordsUpdated  Type = "records-updated"
	RecordAdded     Type = "record-added"
	RecordRemoved   Type = "record-removed"
	RecordClick     Type = "record-click"
	RecordHover     Type = "record-hover"
	RecordHoverEnd  Type = "record-hover-end"
	ServiceCentered Type = "service-centered"
	ZoomChanged     Type = "zoom-changed"
	BoundsChanged   Type = "bounds-changed"
)

// Event carries the payload for one emission. Fields irrelevant to the event
// type stay zero.
type Event struct {
	Type    Type                 `json:"type"`
	Record  *model.ServiceRecord `json:"record,omitempty"`
	Count   int                  `json:"count,omitempty"`
	Center  *model.LatLng        `json:"center,omitempty"`
	Zoom    float64              `json:"zoom,omitempty"`
	Bounds  *geo.Bounds          `json:"bounds,omitempty"`
	Message string               `json:"message,omitempty"`
}
