package memory

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"svcmap/internal/dataset"
	"svcmap/internal/domain"
	"svcmap/internal/geo"
	"svcmap/internal/model"
)

// Init loads the fixed source collection and builds the derived category and
// source-org sets. Calling it again is a no-op.
func (s *Store) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	s.records = dataset.Records()
	for _, r := range s.records {
		s.index(r)
	}
	s.initialized = true
	s.log.Info("directory initialized", zap.Int("services", len(s.records)))
	return nil
}

// index maintains the derived sets incrementally; never rebuilt from scratch.
func (s *Store) index(r model.ServiceRecord) {
	if r.Category != "" {
		s.categories[r.Category] = struct{}{}
	}
	if r.SourceOrg != "" {
		s.sourceOrgs[r.SourceOrg] = struct{}{}
	}
}

func (s *Store) All(_ context.Context) ([]model.ServiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneRecords(s.records), nil
}

// ByCategories returns records whose category is in the given set. An empty
// or nil set means no filter.
func (s *Store) ByCategories(_ context.Context, categories []string) ([]model.ServiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectRecords(func(r model.ServiceRecord) bool {
		return matchesSet(r.Category, categories)
	}), nil
}

// BySourceOrgs is ByCategories for the source-organization field.
func (s *Store) BySourceOrgs(_ context.Context, sourceOrgs []string) ([]model.ServiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectRecords(func(r model.ServiceRecord) bool {
		return matchesSet(r.SourceOrg, sourceOrgs)
	}), nil
}

// Search matches the keyword case-insensitively against name, description,
// organization, and address. A blank keyword returns everything.
func (s *Store) Search(_ context.Context, keyword string) ([]model.ServiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectRecords(func(r model.ServiceRecord) bool {
		return matchesKeyword(r, keyword)
	}), nil
}

// Filter composes category, source-org, and keyword criteria conjunctively.
// Omitted criteria impose no constraint.
func (s *Store) Filter(_ context.Context, q model.Query) ([]model.ServiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectRecords(func(r model.ServiceRecord) bool {
		return matchesSet(r.Category, q.Categories) &&
			matchesSet(r.SourceOrg, q.SourceOrgs) &&
			matchesKeyword(r, q.Keyword)
	}), nil
}

// ByID looks up a record by its canonical int64 id. Absence is reported via
// the bool, never as an error.
func (s *Store) ByID(_ context.Context, id int64) (model.ServiceRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r.Clone(), true, nil
		}
	}
	return model.ServiceRecord{}, false, nil
}

// Categories returns the distinct category values, sorted for deterministic
// display.
func (s *Store) Categories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.categories), nil
}

// SourceOrganizations returns the distinct source-org values, sorted.
func (s *Store) SourceOrganizations(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.sourceOrgs), nil
}

// WithinRadius returns records whose coordinates lie within radiusMiles of
// the given point, boundary inclusive. Records without coordinates never
// match.
func (s *Store) WithinRadius(_ context.Context, lat, lng, radiusMiles float64) ([]model.ServiceRecord, error) {
	center := model.LatLng{Lat: lat, Lng: lng}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectRecords(func(r model.ServiceRecord) bool {
		return r.HasCoordinates() && geo.DistanceMiles(center, *r.Coordinates) <= radiusMiles
	}), nil
}

// Add validates the four required fields, assigns the next id, fills the
// documented defaults, and appends the record. Nothing is applied on
// validation failure.
func (s *Store) Add(_ context.Context, record model.ServiceRecord) (model.ServiceRecord, error) {
	if err := domain.ValidateNewRecord(record); err != nil {
		return model.ServiceRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record = domain.ApplyDefaults(record.Clone())
	record.ID = s.nextID()
	s.records = append(s.records, record)
	s.index(record)

	s.log.Info("service added",
		zap.Int64("id", record.ID),
		zap.String("name", record.Name),
		zap.String("category", record.Category),
	)
	return record.Clone(), nil
}

// Stats is computed fresh on every call so it always reflects the latest
// mutation.
func (s *Store) Stats(_ context.Context) (model.DirectoryStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := model.DirectoryStats{
		TotalServices: len(s.records),
		ByCategory:    make(map[string]int),
		BySourceOrg:   make(map[string]int),
	}
	for _, r := range s.records {
		stats.ByCategory[r.Category]++
		stats.BySourceOrg[r.SourceOrg]++
	}
	stats.CategoryCount = len(stats.ByCategory)
	stats.SourceOrgCount = len(stats.BySourceOrg)
	return stats, nil
}

// nextID is max existing id + 1, or 1 on an empty directory. Callers hold
// the mutex.
func (s *Store) nextID() int64 {
	var max int64
	for _, r := range s.records {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

func (s *Store) selectRecords(keep func(model.ServiceRecord) bool) []model.ServiceRecord {
	result := make([]model.ServiceRecord, 0, len(s.records))
	for _, r := range s.records {
		if keep(r) {
			result = append(result, r.Clone())
		}
	}
	return result
}

func matchesSet(value string, set []string) bool {
	if len(set) == 0 {
		return true
	}
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

func matchesKeyword(r model.ServiceRecord, keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return true
	}
	for _, field := range []string{r.Name, r.Description, r.Organization, r.Address} {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
