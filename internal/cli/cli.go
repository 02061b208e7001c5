// Package cli holds the svcmapctl subcommands. Every command works against
// a locally-initialized directory; there is no server round trip.
package cli

import (
	"context"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"svcmap/internal/model"
	"svcmap/internal/store/memory"
)

var (
	header  = color.New(color.FgCyan, color.Bold)
	nameCol = color.New(color.FgGreen)
	dimCol  = color.New(color.Faint)
)

func openDirectory(ctx context.Context) (*memory.Store, error) {
	s := memory.New(zap.NewNop())
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func printRecord(r model.ServiceRecord) {
	nameCol.Printf("#%d %s", r.ID, r.Name)
	dimCol.Printf("  [%s]\n", r.Category)
	dimCol.Printf("   %s — %s\n", r.Organization, r.Address)
	if r.HasCoordinates() {
		dimCol.Printf("   (%.4f, %.4f)\n", r.Coordinates.Lat, r.Coordinates.Lng)
	}
}
