package mapsync

import (
	"fmt"
	"sync"

	"svcmap/internal/geo"
	"svcmap/internal/model"
)

// MarkerStyle is the visual styling of one marker.
type MarkerStyle struct {
	Color       string
	Radius      float64
	StrokeWidth float64
	Opacity     float64
	FillOpacity float64
}

// Marker is a rendered handle for one coordinate-bearing record. It carries
// only the record id, never a live record reference.
type Marker struct {
	RecordID int64
	Position model.LatLng
	Category string
	Style    MarkerStyle
}

// PointerKind classifies viewport interactions with a marker.
type PointerKind int

const (
	PointerClick PointerKind = iota
	PointerHover
	PointerHoverEnd
)

// PointerEvent is delivered by a viewport when the user interacts with a
// marker.
type PointerEvent struct {
	Kind     PointerKind
	RecordID int64
}

// Viewport is the rendering surface the layer draws on. The real widget
// lives in the UI; the headless implementation below backs servers, the CLI,
// and tests.
type Viewport interface {
	SetView(center model.LatLng, zoom float64)
	SetZoom(zoom float64)
	Center() model.LatLng
	Zoom() float64
	Bounds() geo.Bounds
	FitBounds(b geo.Bounds, paddingPx float64)
	AddMarker(m Marker)
	RemoveMarker(recordID int64)
	ClearMarkers()
	RestyleMarker(recordID int64, style MarkerStyle)
	HandleViewChange(fn func())
	HandlePointer(fn func(PointerEvent))
	Release()
}

// Surface resolves a container identifier to a drawable viewport. A failed
// resolution is a recoverable initialization error, not a panic.
type Surface interface {
	Acquire(containerID string) (Viewport, error)
}

// HeadlessSurface hands out in-memory viewports for a fixed set of container
// ids.
type HeadlessSurface struct {
	containers map[string]struct{}
	width      float64
	height     float64
}

// NewHeadlessSurface registers the container ids the surface can resolve.
func NewHeadlessSurface(containerIDs ...string) *HeadlessSurface {
	s := &HeadlessSurface{
		containers: make(map[string]struct{}, len(containerIDs)),
		width:      1024,
		height:     768,
	}
	for _, id := range containerIDs {
		s.containers[id] = struct{}{}
	}
	return s
}

func (s *HeadlessSurface) Acquire(containerID string) (Viewport, error) {
	if _, ok := s.containers[containerID]; !ok {
		return nil, fmt.Errorf("container %q not found", containerID)
	}
	return newHeadlessViewport(s.width, s.height), nil
}

// headlessViewport tracks center, zoom, and markers, and derives visible
// bounds with Web Mercator math over a fixed pixel size.
type headlessViewport struct {
	mu         sync.Mutex
	width      float64
	height     float64
	center     model.LatLng
	zoom       float64
	markers    map[int64]Marker
	onView     func()
	onPointer  func(PointerEvent)
	released   bool
}

func newHeadlessViewport(width, height float64) *headlessViewport {
	return &headlessViewport{
		width:   width,
		height:  height,
		markers: make(map[int64]Marker),
	}
}

func (v *headlessViewport) SetView(center model.LatLng, zoom float64) {
	v.mu.Lock()
	v.center = center
	v.zoom = zoom
	fn := v.onView
	v.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (v *headlessViewport) SetZoom(zoom float64) {
	v.mu.Lock()
	v.zoom = zoom
	fn := v.onView
	v.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (v *headlessViewport) Center() model.LatLng {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.center
}

func (v *headlessViewport) Zoom() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom
}

func (v *headlessViewport) Bounds() geo.Bounds {
	v.mu.Lock()
	defer v.mu.Unlock()
	cx, cy := geo.Project(v.center, v.zoom)
	nw := geo.Unproject(cx-v.width/2, cy-v.height/2, v.zoom)
	se := geo.Unproject(cx+v.width/2, cy+v.height/2, v.zoom)
	return geo.Bounds{South: se.Lat, West: nw.Lng, North: nw.Lat, East: se.Lng}
}

func (v *headlessViewport) FitBounds(b geo.Bounds, paddingPx float64) {
	zoom := geo.FitZoom(b, v.width, v.height, paddingPx, 0, 22)
	v.SetView(b.Center(), zoom)
}

func (v *headlessViewport) AddMarker(m Marker) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.markers[m.RecordID] = m
}

func (v *headlessViewport) RemoveMarker(recordID int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.markers, recordID)
}

func (v *headlessViewport) ClearMarkers() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.markers = make(map[int64]Marker)
}

func (v *headlessViewport) RestyleMarker(recordID int64, style MarkerStyle) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if m, ok := v.markers[recordID]; ok {
		m.Style = style
		v.markers[recordID] = m
	}
}

func (v *headlessViewport) HandleViewChange(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onView = fn
}

func (v *headlessViewport) HandlePointer(fn func(PointerEvent)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onPointer = fn
}

func (v *headlessViewport) Release() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.released = true
	v.markers = make(map[int64]Marker)
	v.onView = nil
	v.onPointer = nil
}

// Pointer simulates a marker interaction. UI bridges and tests use it to
// drive click/hover flows through the layer.
func (v *headlessViewport) Pointer(e PointerEvent) {
	v.mu.Lock()
	fn := v.onPointer
	v.mu.Unlock()
	if fn != nil {
		fn(e)
	}
}

// MarkerCount reports how many markers are currently drawn.
func (v *headlessViewport) MarkerCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.markers)
}
