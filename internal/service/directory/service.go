// Package directory is the sole integrator of the record store and the map
// layer: the two never call each other, value snapshots flow through here.
package directory

import (
	"context"

	"go.uber.org/zap"
	"svcmap/internal/events"
	"svcmap/internal/mapsync"
	"svcmap/internal/model"
	"svcmap/internal/repository"
	"svcmap/internal/sse"
)

type Service struct {
	store repository.DirectoryStore
	layer *mapsync.Layer
	hub   *sse.Hub
	log   *zap.Logger
}

// NewService builds the integrator and bridges every map-layer event into
// the SSE hub so UI clients observe marker state changes.
func NewService(store repository.DirectoryStore, layer *mapsync.Layer, hub *sse.Hub, logger *zap.Logger) *Service {
	s := &Service{store: store, layer: layer, hub: hub, log: logger}
	for _, t := range []events.Type{
		events.MapReady, events.MapError,
		events.RecordsUpdated, events.RecordAdded, events.RecordRemoved,
		events.RecordClick, events.RecordHover, events.RecordHoverEnd,
		events.ServiceCentered, events.ZoomChanged, events.BoundsChanged,
	} {
		layer.On(t, func(e events.Event) {
			hub.Broadcast(e)
		})
	}
	return s
}

// Start brings the map up and seeds it with the full directory. A map that
// fails to initialize is not fatal; the directory keeps serving.
func (s *Service) Start(ctx context.Context, containerID string) error {
	records, err := s.store.All(ctx)
	if err != nil {
		return err
	}
	s.layer.UpdateRecords(records)
	if !s.layer.Init(containerID) {
		s.log.Warn("map unavailable, continuing without markers",
			zap.String("container", containerID),
		)
	}
	return nil
}

func (s *Service) List(ctx context.Context, q model.Query) ([]model.ServiceRecord, error) {
	return s.store.Filter(ctx, q)
}

func (s *Service) Get(ctx context.Context, id int64) (model.ServiceRecord, bool, error) {
	return s.store.ByID(ctx, id)
}

func (s *Service) Nearby(ctx context.Context, lat, lng, radiusMiles float64) ([]model.ServiceRecord, error) {
	return s.store.WithinRadius(ctx, lat, lng, radiusMiles)
}

func (s *Service) Stats(ctx context.Context) (model.DirectoryStats, error) {
	return s.store.Stats(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.store.Categories(ctx)
}

func (s *Service) SourceOrganizations(ctx context.Context) ([]string, error) {
	return s.store.SourceOrganizations(ctx)
}

// Contribute validates and appends a record, then renders its marker. The
// store assigns the id; the layer receives the stored value.
func (s *Service) Contribute(ctx context.Context, record model.ServiceRecord) (model.ServiceRecord, error) {
	created, err := s.store.Add(ctx, record)
	if err != nil {
		s.log.Error("store add failed",
			zap.String("name", record.Name),
			zap.String("category", record.Category),
			zap.Error(err),
		)
		return model.ServiceRecord{}, err
	}
	s.layer.AddRecord(created)
	return created, nil
}

// Refresh narrows the map to the records matching the query.
func (s *Service) Refresh(ctx context.Context, q model.Query) ([]model.ServiceRecord, error) {
	records, err := s.store.Filter(ctx, q)
	if err != nil {
		return nil, err
	}
	s.layer.UpdateRecords(records)
	return records, nil
}

func (s *Service) CenterOn(id int64) bool {
	return s.layer.CenterOn(id)
}

func (s *Service) FitAll() bool {
	return s.layer.FitAll(nil)
}

func (s *Service) MapView() (mapsync.View, bool) {
	return s.layer.View()
}

func (s *Service) VisibleRecords() []model.ServiceRecord {
	return s.layer.VisibleRecords()
}

// Shutdown tears the map layer down, releasing the rendering surface.
func (s *Service) Shutdown() {
	s.layer.Destroy()
}
