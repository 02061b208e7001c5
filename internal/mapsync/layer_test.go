package mapsync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"svcmap/internal/dataset"
	"svcmap/internal/events"
	"svcmap/internal/model"
	"svcmap/internal/store/memory"
)

func newReadyLayer(t *testing.T) *Layer {
	t.Helper()
	layer := NewLayer(Options{}, NewHeadlessSurface("map"), zap.NewNop())
	require.True(t, layer.Init("map"))
	return layer
}

func coordRecord(id int64, category string, lat, lng float64) model.ServiceRecord {
	return model.ServiceRecord{
		ID:          id,
		Name:        "svc",
		Category:    category,
		Coordinates: &model.LatLng{Lat: lat, Lng: lng},
	}
}

func TestInit(t *testing.T) {
	t.Run("success emits map-ready", func(t *testing.T) {
		layer := NewLayer(Options{}, NewHeadlessSurface("map"), zap.NewNop())

		var got []events.Type
		layer.On(events.MapReady, func(e events.Event) { got = append(got, e.Type) })

		require.True(t, layer.Init("map"))
		require.Equal(t, []events.Type{events.MapReady}, got)

		view, ok := layer.View()
		require.True(t, ok)
		require.Equal(t, DefaultOptions().DefaultZoom, view.Zoom)
		require.Equal(t, DefaultOptions().DefaultCenter, view.Center)
	})

	t.Run("missing container is recoverable", func(t *testing.T) {
		layer := NewLayer(Options{}, NewHeadlessSurface("map"), zap.NewNop())

		var errEvents []events.Event
		layer.On(events.MapError, func(e events.Event) { errEvents = append(errEvents, e) })

		require.False(t, layer.Init("no-such-container"))
		require.Len(t, errEvents, 1)
		require.Contains(t, errEvents[0].Message, "no-such-container")

		_, ok := layer.View()
		require.False(t, ok)
	})

	t.Run("second init is rejected", func(t *testing.T) {
		layer := newReadyLayer(t)
		require.False(t, layer.Init("map"))
	})

	t.Run("records buffered before init are rendered", func(t *testing.T) {
		layer := NewLayer(Options{}, NewHeadlessSurface("map"), zap.NewNop())
		layer.UpdateRecords([]model.ServiceRecord{
			coordRecord(1, "Food", 38.7, -90.4),
			{ID: 2, Name: "no coords", Category: "Food"},
		})
		require.Zero(t, layer.MarkerCount())

		require.True(t, layer.Init("map"))
		require.Equal(t, 1, layer.MarkerCount())
	})
}

func TestUpdateRecordsReconciliation(t *testing.T) {
	layer := newReadyLayer(t)

	t.Run("one marker per coordinate-bearing record", func(t *testing.T) {
		layer.UpdateRecords([]model.ServiceRecord{
			coordRecord(1, "Food", 38.71, -90.42),
			{ID: 2, Name: "no coords"},
			coordRecord(3, "Food", 38.66, -90.42),
		})
		require.Equal(t, 2, layer.MarkerCount())
	})

	t.Run("empty list clears every marker", func(t *testing.T) {
		layer.UpdateRecords(nil)
		require.Zero(t, layer.MarkerCount())
	})

	t.Run("all records without coordinates", func(t *testing.T) {
		layer.UpdateRecords([]model.ServiceRecord{
			{ID: 1, Name: "a"},
			{ID: 2, Name: "b"},
		})
		require.Zero(t, layer.MarkerCount())
	})

	t.Run("malformed coordinates disqualify from rendering", func(t *testing.T) {
		layer.UpdateRecords([]model.ServiceRecord{
			coordRecord(1, "Food", 91.0, -90.42),
			coordRecord(2, "Food", 38.66, -190.0),
			coordRecord(3, "Food", 38.66, -90.42),
		})
		require.Equal(t, 1, layer.MarkerCount())
	})

	t.Run("emits records-updated with the snapshot size", func(t *testing.T) {
		var counts []int
		sub := layer.On(events.RecordsUpdated, func(e events.Event) { counts = append(counts, e.Count) })
		defer layer.Off(sub)

		layer.UpdateRecords([]model.ServiceRecord{coordRecord(7, "Food", 38.7, -90.4)})
		require.Equal(t, []int{1}, counts)
	})
}

func TestAddRecord(t *testing.T) {
	layer := newReadyLayer(t)
	layer.UpdateRecords([]model.ServiceRecord{coordRecord(1, "Food", 38.71, -90.42)})

	t.Run("renders one new marker", func(t *testing.T) {
		var added []events.Event
		sub := layer.On(events.RecordAdded, func(e events.Event) { added = append(added, e) })
		defer layer.Off(sub)

		require.True(t, layer.AddRecord(coordRecord(2, "Housing", 38.65, -90.26)))
		require.Equal(t, 2, layer.MarkerCount())
		require.Len(t, added, 1)
		require.Equal(t, int64(2), added[0].Record.ID)
	})

	t.Run("duplicate id is a no-op", func(t *testing.T) {
		require.False(t, layer.AddRecord(coordRecord(1, "Food", 0, 0)))
		require.Equal(t, 2, layer.MarkerCount())
		require.Len(t, layer.Records(), 2)
	})

	t.Run("record without coordinates joins the list but not the map", func(t *testing.T) {
		require.True(t, layer.AddRecord(model.ServiceRecord{ID: 3, Name: "phone only"}))
		require.Equal(t, 2, layer.MarkerCount())
		require.Len(t, layer.Records(), 3)
	})
}

func TestRemoveRecord(t *testing.T) {
	layer := newReadyLayer(t)
	layer.UpdateRecords([]model.ServiceRecord{
		coordRecord(1, "Food", 38.71, -90.42),
		coordRecord(2, "Housing", 38.65, -90.26),
	})

	t.Run("unknown id leaves state unchanged", func(t *testing.T) {
		require.False(t, layer.RemoveRecord(99))
		require.Equal(t, 2, layer.MarkerCount())
		require.Len(t, layer.Records(), 2)
	})

	t.Run("removes record and marker, emits the removed record", func(t *testing.T) {
		var removed []events.Event
		sub := layer.On(events.RecordRemoved, func(e events.Event) { removed = append(removed, e) })
		defer layer.Off(sub)

		require.True(t, layer.RemoveRecord(1))
		require.Equal(t, 1, layer.MarkerCount())
		require.Len(t, layer.Records(), 1)
		require.Len(t, removed, 1)
		require.Equal(t, int64(1), removed[0].Record.ID)
	})
}

func TestNavigation(t *testing.T) {
	t.Run("center on record", func(t *testing.T) {
		layer := newReadyLayer(t)
		layer.UpdateRecords([]model.ServiceRecord{
			coordRecord(1, "Food", 38.71, -90.42),
			{ID: 2, Name: "no coords"},
		})

		var centered []events.Event
		layer.On(events.ServiceCentered, func(e events.Event) { centered = append(centered, e) })

		require.True(t, layer.CenterOn(1))
		view, ok := layer.View()
		require.True(t, ok)
		require.Equal(t, model.LatLng{Lat: 38.71, Lng: -90.42}, view.Center)
		require.Equal(t, DefaultOptions().DefaultZoom, view.Zoom, "default zoom wins when current is not greater")
		require.Len(t, centered, 1)

		require.False(t, layer.CenterOn(2), "no coordinates")
		require.False(t, layer.CenterOn(99), "unknown id")
	})

	t.Run("center keeps a deeper zoom", func(t *testing.T) {
		layer := newReadyLayer(t)
		layer.UpdateRecords([]model.ServiceRecord{coordRecord(1, "Food", 38.71, -90.42)})
		require.True(t, layer.SetZoom(16))

		require.True(t, layer.CenterOn(1))
		view, _ := layer.View()
		require.Equal(t, 16.0, view.Zoom)
	})

	t.Run("fit all", func(t *testing.T) {
		layer := newReadyLayer(t)

		require.False(t, layer.FitAll(nil), "no records at all")

		layer.UpdateRecords([]model.ServiceRecord{{ID: 5, Name: "no coords"}})
		require.False(t, layer.FitAll(nil), "no coordinates anywhere")

		layer.UpdateRecords([]model.ServiceRecord{coordRecord(1, "Food", 38.71, -90.42)})
		require.True(t, layer.FitAll(nil))
		view, _ := layer.View()
		require.Equal(t, DefaultOptions().DefaultZoom, view.Zoom, "single point centers at default zoom")
		require.Equal(t, model.LatLng{Lat: 38.71, Lng: -90.42}, view.Center)

		layer.UpdateRecords([]model.ServiceRecord{
			coordRecord(1, "Food", 38.71, -90.42),
			coordRecord(2, "Housing", 38.65, -90.26),
		})
		require.True(t, layer.FitAll(nil))
		for _, r := range layer.Records() {
			require.Contains(t, idsOf(layer.VisibleRecords()), r.ID, "fitted view covers every marker")
		}
	})

	t.Run("set zoom is range checked", func(t *testing.T) {
		layer := newReadyLayer(t)
		opts := DefaultOptions()

		require.False(t, layer.SetZoom(opts.MinZoom-1))
		require.False(t, layer.SetZoom(opts.MaxZoom+1))
		view, _ := layer.View()
		require.Equal(t, opts.DefaultZoom, view.Zoom, "rejected zoom has no side effects")

		require.True(t, layer.SetZoom(opts.MaxZoom))
		view, _ = layer.View()
		require.Equal(t, opts.MaxZoom, view.Zoom)
	})

	t.Run("zoom change re-emitted", func(t *testing.T) {
		layer := newReadyLayer(t)

		var zooms []float64
		var bounds int
		layer.On(events.ZoomChanged, func(e events.Event) { zooms = append(zooms, e.Zoom) })
		layer.On(events.BoundsChanged, func(events.Event) { bounds++ })

		require.True(t, layer.SetZoom(14))
		require.Equal(t, []float64{14}, zooms)
		require.Equal(t, 1, bounds)
	})
}

func TestPreInitOperationsAreInert(t *testing.T) {
	layer := NewLayer(Options{}, NewHeadlessSurface("map"), zap.NewNop())

	require.False(t, layer.AddRecord(coordRecord(1, "Food", 38.7, -90.4)))
	require.False(t, layer.RemoveRecord(1))
	require.False(t, layer.CenterOn(1))
	require.False(t, layer.FitAll(nil))
	require.False(t, layer.SetZoom(10))
	require.Nil(t, layer.VisibleRecords())

	_, ok := layer.View()
	require.False(t, ok)
}

func TestCategoryColors(t *testing.T) {
	layer := newReadyLayer(t)
	layer.UpdateRecords([]model.ServiceRecord{
		coordRecord(1, "Food", 38.71, -90.42),
		coordRecord(2, "Food", 38.66, -90.42),
		coordRecord(3, "Housing", 38.65, -90.26),
	})

	require.Equal(t, DefaultCategoryColor, layer.CategoryColor("Unknown Category"))
	require.NotEqual(t, DefaultCategoryColor, layer.CategoryColor("Food"))

	layer.SetCategoryColor("Food", "#123456")
	require.Equal(t, "#123456", layer.CategoryColor("Food"))

	var food, housing int
	for _, m := range layer.Markers() {
		switch m.Category {
		case "Food":
			require.Equal(t, "#123456", m.Style.Color)
			food++
		case "Housing":
			require.NotEqual(t, "#123456", m.Style.Color)
			housing++
		}
	}
	require.Equal(t, 2, food)
	require.Equal(t, 1, housing)
}

func TestPointerEventsResolveThroughIDTag(t *testing.T) {
	layer := NewLayer(Options{}, NewHeadlessSurface("map"), zap.NewNop())
	require.True(t, layer.Init("map"))
	layer.UpdateRecords([]model.ServiceRecord{coordRecord(1, "Food", 38.71, -90.42)})

	var clicked, hovered, ended []int64
	layer.On(events.RecordClick, func(e events.Event) { clicked = append(clicked, e.Record.ID) })
	layer.On(events.RecordHover, func(e events.Event) { hovered = append(hovered, e.Record.ID) })
	layer.On(events.RecordHoverEnd, func(e events.Event) { ended = append(ended, e.Record.ID) })

	viewport := layer.viewportForTest()
	viewport.Pointer(PointerEvent{Kind: PointerClick, RecordID: 1})
	viewport.Pointer(PointerEvent{Kind: PointerHover, RecordID: 1})
	viewport.Pointer(PointerEvent{Kind: PointerHoverEnd, RecordID: 1})
	viewport.Pointer(PointerEvent{Kind: PointerClick, RecordID: 42})

	require.Equal(t, []int64{1}, clicked, "unknown marker ids are dropped")
	require.Equal(t, []int64{1}, hovered)
	require.Equal(t, []int64{1}, ended)
}

func TestReentrantMutationFromHandler(t *testing.T) {
	layer := newReadyLayer(t)
	layer.UpdateRecords([]model.ServiceRecord{coordRecord(1, "Food", 38.71, -90.42)})

	// A record-click handler removing the clicked record must not deadlock
	// or disturb later handlers.
	var after int
	layer.On(events.RecordClick, func(e events.Event) {
		layer.RemoveRecord(e.Record.ID)
	})
	layer.On(events.RecordClick, func(events.Event) { after++ })

	layer.viewportForTest().Pointer(PointerEvent{Kind: PointerClick, RecordID: 1})
	require.Equal(t, 1, after)
	require.Zero(t, layer.MarkerCount())
	require.Empty(t, layer.Records())
}

func TestDestroy(t *testing.T) {
	layer := newReadyLayer(t)
	layer.UpdateRecords([]model.ServiceRecord{coordRecord(1, "Food", 38.71, -90.42)})

	var clicks int
	layer.On(events.RecordClick, func(events.Event) { clicks++ })

	layer.Destroy()

	_, ok := layer.View()
	require.False(t, ok)
	require.Zero(t, layer.MarkerCount())
	require.False(t, layer.AddRecord(coordRecord(2, "Food", 38.7, -90.4)))
	require.False(t, layer.Init("map"), "no re-init after destroy")
	require.Zero(t, clicks, "subscriptions cleared")

	// Idempotent.
	layer.Destroy()
}

func TestEndToEndFoodFilterScenario(t *testing.T) {
	ctx := context.Background()
	store := memory.New(zap.NewNop())
	require.NoError(t, store.Init(ctx))

	filtered, err := store.Filter(ctx, model.Query{Categories: []string{"Food"}})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 3}, idsOf(filtered))

	layer := newReadyLayer(t)
	layer.UpdateRecords(filtered)

	markers := layer.Markers()
	require.Len(t, markers, 2)
	require.Equal(t, int64(1), markers[0].RecordID)
	require.Equal(t, model.LatLng{Lat: 38.7190, Lng: -90.4218}, markers[0].Position)
	require.Equal(t, int64(3), markers[1].RecordID)
	require.Equal(t, model.LatLng{Lat: 38.6620, Lng: -90.4218}, markers[1].Position)
}

func TestDefaultDatasetMatchesSeedContract(t *testing.T) {
	records := dataset.Records()
	require.Len(t, records, 4)
	require.Equal(t, []string{"Food", "Legal Aid", "Food", "Housing"}, categoriesOf(records))
}

func (l *Layer) viewportForTest() *headlessViewport {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewport.(*headlessViewport)
}

func idsOf(records []model.ServiceRecord) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func categoriesOf(records []model.ServiceRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Category)
	}
	return out
}
