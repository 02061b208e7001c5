package repository

import (
	"context"

	"svcmap/internal/model"
)

// DirectoryStore is the read/append surface of the service directory. Read
// operations are total: an absent match is an empty result or a false ok,
// never an error.
type DirectoryStore interface {
	All(ctx context.Context) ([]model.ServiceRecord, error)
	ByID(ctx context.Context, id int64) (model.ServiceRecord, bool, error)
	Filter(ctx context.Context, q model.Query) ([]model.ServiceRecord, error)
	WithinRadius(ctx context.Context, lat, lng, radiusMiles float64) ([]model.ServiceRecord, error)
	Categories(ctx context.Context) ([]string, error)
	SourceOrganizations(ctx context.Context) ([]string, error)
	Add(ctx context.Context, record model.ServiceRecord) (model.ServiceRecord, error)
	Stats(ctx context.Context) (model.DirectoryStats, error)
}
