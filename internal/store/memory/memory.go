package memory

import (
	"sync"

	"go.uber.org/zap"
	"svcmap/internal/model"
)

// Store is the canonical in-memory service directory. It owns its record
// slice exclusively; every read hands out deep copies.
type Store struct {
	mu          sync.Mutex
	initialized bool
	records     []model.ServiceRecord
	categories  map[string]struct{}
	sourceOrgs  map[string]struct{}
	log         *zap.Logger
}

func New(logger *zap.Logger) *Store {
	return &Store{
		categories: make(map[string]struct{}),
		sourceOrgs: make(map[string]struct{}),
		log:        logger,
	}
}
