package store

import (
	"context"

	"go.uber.org/zap"
	"svcmap/internal/repository"
	"svcmap/internal/store/memory"
)

// NewStore builds the directory store and loads the seed collection. The
// directory is memory-only; durable backends are out of scope, but anything
// satisfying repository.DirectoryStore can be slotted in here.
func NewStore(logger *zap.Logger) (repository.DirectoryStore, error) {
	s := memory.New(logger)
	if err := s.Init(context.Background()); err != nil {
		logger.Error("directory init failed", zap.Error(err))
		return nil, err
	}
	return s, nil
}
