// Package mapsync keeps a set of map markers synchronized with a
// caller-supplied service record list and republishes viewport interactions
// as typed events.
package mapsync

import (
	"math"
	"sync"

	"go.uber.org/zap"
	"svcmap/internal/events"
	"svcmap/internal/geo"
	"svcmap/internal/model"
)

// View is the current camera position, returned by Layer.View.
type View struct {
	Center model.LatLng `json:"center"`
	Zoom   float64      `json:"zoom"`
}

// Layer owns the 1:1 mapping between coordinate-bearing records and rendered
// markers. Lifecycle: constructed → Init → Ready → Destroy → inert. A
// destroyed layer cannot be re-initialized.
type Layer struct {
	mu        sync.Mutex
	opts      Options
	surface   Surface
	viewport  Viewport
	records   []model.ServiceRecord
	markers   []Marker
	colors    map[string]string
	ready     bool
	destroyed bool
	lastZoom  float64

	bus *events.Bus
	log *zap.Logger
}

// NewLayer builds a layer over the given surface. Option fields left zero
// take the documented defaults.
func NewLayer(opts Options, surface Surface, logger *zap.Logger) *Layer {
	opts = opts.withDefaults()
	return &Layer{
		opts:    opts,
		surface: surface,
		colors:  opts.CategoryColors,
		bus:     events.NewBus(logger),
		log:     logger,
	}
}

// On subscribes a handler; handlers run synchronously, in subscription
// order, on the goroutine that triggered the emission.
func (l *Layer) On(event events.Type, fn events.Handler) events.Subscription {
	return l.bus.On(event, fn)
}

// Off removes a subscription.
func (l *Layer) Off(sub events.Subscription) {
	l.bus.Off(sub)
}

// Init acquires the rendering surface for the given container, applies the
// configured view, renders any already-buffered records, and emits
// map-ready. A failed acquisition is recoverable: it logs, emits map-error,
// and returns false.
func (l *Layer) Init(containerID string) bool {
	l.mu.Lock()
	if l.ready || l.destroyed {
		l.mu.Unlock()
		return false
	}
	l.mu.Unlock()

	viewport, err := l.surface.Acquire(containerID)
	if err != nil {
		l.log.Error("map surface acquisition failed",
			zap.String("container", containerID),
			zap.Error(err),
		)
		l.bus.Emit(events.Event{Type: events.MapError, Message: err.Error()})
		return false
	}

	viewport.SetView(l.opts.DefaultCenter, l.opts.DefaultZoom)
	viewport.HandlePointer(l.handlePointer)

	l.mu.Lock()
	l.viewport = viewport
	l.ready = true
	l.lastZoom = l.opts.DefaultZoom
	markers := l.rebuildMarkersLocked()
	l.mu.Unlock()

	for _, m := range markers {
		viewport.AddMarker(m)
	}
	// Registered after the initial SetView so configuration does not echo
	// back as a bounds-changed event.
	viewport.HandleViewChange(l.handleViewChange)

	l.bus.Emit(events.Event{
		Type:   events.MapReady,
		Center: &l.opts.DefaultCenter,
		Zoom:   l.opts.DefaultZoom,
	})
	return true
}

// UpdateRecords replaces the buffered snapshot wholesale and rebuilds every
// marker. The full rebuild guarantees no stale marker survives the
// replacement. Records may be buffered before Init; they render when the
// viewport comes up.
func (l *Layer) UpdateRecords(records []model.ServiceRecord) {
	l.mu.Lock()
	l.records = model.CloneRecords(records)
	markers := l.rebuildMarkersLocked()
	viewport := l.viewport
	ready := l.ready
	l.mu.Unlock()

	if ready {
		viewport.ClearMarkers()
		for _, m := range markers {
			viewport.AddMarker(m)
		}
	}
	l.bus.Emit(events.Event{Type: events.RecordsUpdated, Count: len(records)})
}

// AddRecord inserts one record and renders its marker without touching the
// others. Duplicate ids are rejected.
func (l *Layer) AddRecord(record model.ServiceRecord) bool {
	l.mu.Lock()
	if !l.ready {
		l.mu.Unlock()
		return false
	}
	for _, r := range l.records {
		if r.ID == record.ID {
			l.mu.Unlock()
			return false
		}
	}
	record = record.Clone()
	l.records = append(l.records, record)
	var added *Marker
	if record.HasCoordinates() {
		m := l.markerForLocked(record)
		l.markers = append(l.markers, m)
		added = &m
	}
	viewport := l.viewport
	l.mu.Unlock()

	if added != nil {
		viewport.AddMarker(*added)
	}
	emitted := record.Clone()
	l.bus.Emit(events.Event{Type: events.RecordAdded, Record: &emitted})
	return true
}

// RemoveRecord drops the record and its marker. Returns false if the id is
// unknown.
func (l *Layer) RemoveRecord(id int64) bool {
	l.mu.Lock()
	if !l.ready {
		l.mu.Unlock()
		return false
	}
	idx := -1
	for i, r := range l.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return false
	}
	removed := l.records[idx]
	l.records = append(l.records[:idx], l.records[idx+1:]...)
	for i, m := range l.markers {
		if m.RecordID == id {
			l.markers = append(l.markers[:i], l.markers[i+1:]...)
			break
		}
	}
	viewport := l.viewport
	l.mu.Unlock()

	viewport.RemoveMarker(id)
	l.bus.Emit(events.Event{Type: events.RecordRemoved, Record: &removed})
	return true
}

// CenterOn pans to the record's coordinates at the greater of the default
// and current zoom. False if the record is unknown or has no coordinates.
func (l *Layer) CenterOn(id int64) bool {
	l.mu.Lock()
	if !l.ready {
		l.mu.Unlock()
		return false
	}
	var target *model.ServiceRecord
	for i := range l.records {
		if l.records[i].ID == id {
			target = &l.records[i]
			break
		}
	}
	if target == nil || !target.HasCoordinates() {
		l.mu.Unlock()
		return false
	}
	record := target.Clone()
	viewport := l.viewport
	l.mu.Unlock()

	zoom := math.Max(l.opts.DefaultZoom, viewport.Zoom())
	viewport.SetView(*record.Coordinates, zoom)
	l.bus.Emit(events.Event{
		Type:   events.ServiceCentered,
		Record: &record,
		Center: record.Coordinates,
		Zoom:   zoom,
	})
	return true
}

// FitAll adjusts the view to cover the given records' coordinates, or the
// buffered snapshot when records is nil. A single point centers at the
// default zoom; multiple points fit bounds with the configured padding.
// False when no record has coordinates.
func (l *Layer) FitAll(records []model.ServiceRecord) bool {
	l.mu.Lock()
	if !l.ready {
		l.mu.Unlock()
		return false
	}
	if records == nil {
		records = l.records
	}
	var points []model.LatLng
	for _, r := range records {
		if r.HasCoordinates() {
			points = append(points, *r.Coordinates)
		}
	}
	viewport := l.viewport
	l.mu.Unlock()

	if len(points) == 0 {
		return false
	}
	if len(points) == 1 {
		viewport.SetView(points[0], l.opts.DefaultZoom)
		return true
	}
	bounds := geo.BoundsAround(points[0])
	for _, p := range points[1:] {
		bounds = bounds.Extend(p)
	}
	viewport.FitBounds(bounds, l.opts.FitPaddingPx)
	return true
}

// SetZoom applies a zoom level inside the configured range; out-of-range
// requests are rejected without side effects.
func (l *Layer) SetZoom(level float64) bool {
	l.mu.Lock()
	ready := l.ready
	viewport := l.viewport
	l.mu.Unlock()
	if !ready || level < l.opts.MinZoom || level > l.opts.MaxZoom {
		return false
	}
	viewport.SetZoom(level)
	return true
}

// View returns the current camera, or ok=false when the layer is not Ready.
func (l *Layer) View() (View, bool) {
	l.mu.Lock()
	ready := l.ready
	viewport := l.viewport
	l.mu.Unlock()
	if !ready {
		return View{}, false
	}
	return View{Center: viewport.Center(), Zoom: viewport.Zoom()}, true
}

// VisibleRecords returns the buffered records whose coordinates fall inside
// the current viewport bounds.
func (l *Layer) VisibleRecords() []model.ServiceRecord {
	l.mu.Lock()
	ready := l.ready
	viewport := l.viewport
	records := model.CloneRecords(l.records)
	l.mu.Unlock()
	if !ready {
		return nil
	}
	bounds := viewport.Bounds()
	var visible []model.ServiceRecord
	for _, r := range records {
		if r.HasCoordinates() && bounds.Contains(*r.Coordinates) {
			visible = append(visible, r)
		}
	}
	return visible
}

// Records returns a copy of the buffered snapshot.
func (l *Layer) Records() []model.ServiceRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return model.CloneRecords(l.records)
}

// MarkerCount reports the number of rendered markers.
func (l *Layer) MarkerCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.markers)
}

// Markers returns a copy of the current marker set, in render order.
func (l *Layer) Markers() []Marker {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Marker, len(l.markers))
	copy(out, l.markers)
	return out
}

// Options returns the effective configuration, defaults applied. UI bridges
// read the tile layer template, attribution, and popup/cluster settings from
// here when standing up the real widget.
func (l *Layer) Options() Options {
	return l.opts
}

// CategoryColor returns the configured color for a category, falling back to
// the default for unrecognized ones.
func (l *Layer) CategoryColor(category string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.colors[category]; ok {
		return c
	}
	return DefaultCategoryColor
}

// SetCategoryColor overrides a category color and restyles the existing
// markers of that category in place, without a rebuild.
func (l *Layer) SetCategoryColor(category, color string) {
	l.mu.Lock()
	l.colors[category] = color
	var restyled []Marker
	for i := range l.markers {
		if l.markers[i].Category == category {
			l.markers[i].Style.Color = color
			restyled = append(restyled, l.markers[i])
		}
	}
	viewport := l.viewport
	ready := l.ready
	l.mu.Unlock()

	if ready {
		for _, m := range restyled {
			viewport.RestyleMarker(m.RecordID, m.Style)
		}
	}
}

// ClearMarkers removes every marker. Low-level primitive behind
// UpdateRecords, exposed for advanced callers.
func (l *Layer) ClearMarkers() {
	l.mu.Lock()
	l.markers = nil
	viewport := l.viewport
	ready := l.ready
	l.mu.Unlock()
	if ready {
		viewport.ClearMarkers()
	}
}

// RenderAll draws one marker per buffered record with valid coordinates.
func (l *Layer) RenderAll() {
	l.mu.Lock()
	markers := l.rebuildMarkersLocked()
	viewport := l.viewport
	ready := l.ready
	l.mu.Unlock()
	if !ready {
		return
	}
	viewport.ClearMarkers()
	for _, m := range markers {
		viewport.AddMarker(m)
	}
}

// Destroy removes all markers, releases the surface exactly once, and drops
// every subscription. The instance is inert afterwards.
func (l *Layer) Destroy() {
	l.mu.Lock()
	if l.destroyed {
		l.mu.Unlock()
		return
	}
	viewport := l.viewport
	ready := l.ready
	l.viewport = nil
	l.markers = nil
	l.records = nil
	l.ready = false
	l.destroyed = true
	l.mu.Unlock()

	if ready {
		viewport.ClearMarkers()
		viewport.Release()
	}
	l.bus.Reset()
	l.log.Info("map layer destroyed")
}

// rebuildMarkersLocked recomputes the marker set from the buffered records.
// Callers hold the mutex.
func (l *Layer) rebuildMarkersLocked() []Marker {
	l.markers = l.markers[:0]
	for _, r := range l.records {
		if r.HasCoordinates() {
			l.markers = append(l.markers, l.markerForLocked(r))
		}
	}
	out := make([]Marker, len(l.markers))
	copy(out, l.markers)
	return out
}

func (l *Layer) markerForLocked(r model.ServiceRecord) Marker {
	color, ok := l.colors[r.Category]
	if !ok {
		color = DefaultCategoryColor
	}
	return Marker{
		RecordID: r.ID,
		Position: *r.Coordinates,
		Category: r.Category,
		Style: MarkerStyle{
			Color:       color,
			Radius:      l.opts.MarkerRadius,
			StrokeWidth: l.opts.MarkerStrokeWidth,
			Opacity:     l.opts.MarkerOpacity,
			FillOpacity: l.opts.MarkerFillOpacity,
		},
	}
}

// handlePointer resolves a viewport interaction back to a record through the
// marker's id tag and re-emits it as a typed event.
func (l *Layer) handlePointer(e PointerEvent) {
	l.mu.Lock()
	var record *model.ServiceRecord
	for _, r := range l.records {
		if r.ID == e.RecordID {
			c := r.Clone()
			record = &c
			break
		}
	}
	l.mu.Unlock()
	if record == nil {
		return
	}
	switch e.Kind {
	case PointerClick:
		l.bus.Emit(events.Event{Type: events.RecordClick, Record: record})
	case PointerHover:
		l.bus.Emit(events.Event{Type: events.RecordHover, Record: record})
	case PointerHoverEnd:
		l.bus.Emit(events.Event{Type: events.RecordHoverEnd, Record: record})
	}
}

// handleViewChange re-emits viewport camera changes as zoom-changed and
// bounds-changed events.
func (l *Layer) handleViewChange() {
	l.mu.Lock()
	ready := l.ready
	viewport := l.viewport
	l.mu.Unlock()
	if !ready {
		return
	}
	zoom := viewport.Zoom()
	bounds := viewport.Bounds()

	l.mu.Lock()
	zoomChanged := zoom != l.lastZoom
	l.lastZoom = zoom
	l.mu.Unlock()

	if zoomChanged {
		l.bus.Emit(events.Event{Type: events.ZoomChanged, Zoom: zoom})
	}
	l.bus.Emit(events.Event{Type: events.BoundsChanged, Bounds: &bounds, Zoom: zoom})
}
