package model

// LatLng is a WGS-84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the pair lies inside the usual coordinate ranges.
func (p LatLng) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Contact holds optional ways to reach a service. Absent fields stay empty
// and are never fabricated by any layer.
type Contact struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

// ServiceRecord is one entry in the directory. Records are treated as value
// types: the store and the map layer always hand out copies.
type ServiceRecord struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Organization string            `json:"organization"`
	Address      string            `json:"address"`
	Description  string            `json:"description"`
	Category     string            `json:"category"`
	SourceOrg    string            `json:"source_org"`
	Contact      Contact           `json:"contact"`
	Hours        map[string]string `json:"hours"`
	Eligibility  string            `json:"eligibility"`
	Application  string            `json:"application"`
	Distance     string            `json:"distance"`
	Coordinates  *LatLng           `json:"coordinates,omitempty"`
}

// HasCoordinates reports whether the record qualifies for map rendering.
func (r ServiceRecord) HasCoordinates() bool {
	return r.Coordinates != nil && r.Coordinates.Valid()
}

// Clone returns a deep copy so callers can mutate the result freely.
func (r ServiceRecord) Clone() ServiceRecord {
	out := r
	if r.Coordinates != nil {
		c := *r.Coordinates
		out.Coordinates = &c
	}
	if r.Hours != nil {
		out.Hours = make(map[string]string, len(r.Hours))
		for day, schedule := range r.Hours {
			out.Hours[day] = schedule
		}
	}
	return out
}

// CloneRecords deep-copies a slice of records, preserving order.
func CloneRecords(records []ServiceRecord) []ServiceRecord {
	if records == nil {
		return nil
	}
	out := make([]ServiceRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// Query is the conjunctive filter accepted by the directory. Empty or nil
// criteria impose no constraint.
type Query struct {
	Categories []string
	SourceOrgs []string
	Keyword    string
}

// DirectoryStats summarizes the current directory contents.
type DirectoryStats struct {
	TotalServices  int            `json:"total_services"`
	CategoryCount  int            `json:"category_count"`
	SourceOrgCount int            `json:"source_org_count"`
	ByCategory     map[string]int `json:"by_category"`
	BySourceOrg    map[string]int `json:"by_source_org"`
}
