package dto

import "svcmap/internal/model"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateServiceRequest is the contribution payload. Only name, organization,
// address, and category are required; the store fills documented defaults
// for the rest.
type CreateServiceRequest struct {
	Name         string            `json:"name"`
	Organization string            `json:"organization"`
	Address      string            `json:"address"`
	Description  string            `json:"description"`
	Category     string            `json:"category"`
	Phone        string            `json:"phone"`
	Email        string            `json:"email"`
	Website      string            `json:"website"`
	Hours        map[string]string `json:"hours"`
	Eligibility  string            `json:"eligibility"`
	Application  string            `json:"application"`
	Lat          *float64          `json:"lat"`
	Lng          *float64          `json:"lng"`
}

// ToRecord maps the request onto the domain value. Coordinates are attached
// only when both components are present.
func (r CreateServiceRequest) ToRecord() model.ServiceRecord {
	record := model.ServiceRecord{
		Name:         r.Name,
		Organization: r.Organization,
		Address:      r.Address,
		Description:  r.Description,
		Category:     r.Category,
		Contact: model.Contact{
			Phone:   r.Phone,
			Email:   r.Email,
			Website: r.Website,
		},
		Hours:       r.Hours,
		Eligibility: r.Eligibility,
		Application: r.Application,
	}
	if r.Lat != nil && r.Lng != nil {
		record.Coordinates = &model.LatLng{Lat: *r.Lat, Lng: *r.Lng}
	}
	return record
}

type ListServicesResponse struct {
	Total    int                   `json:"total"`
	Services []model.ServiceRecord `json:"services"`
}
