package domain

import (
	"errors"
	"fmt"

	"svcmap/internal/model"
)

// Documented defaults filled in for optional fields on contributed records.
const (
	DefaultDistance    = "Unknown"
	DefaultSourceOrg   = "User Contributed"
	DefaultEligibility = "Contact provider for eligibility details"
	DefaultApplication = "Contact provider to apply"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrNotFound     = errors.New("service not found")
)

// MissingFieldError names the first required field absent from a
// contribution. It unwraps to ErrMissingField.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// ValidateNewRecord checks the four required fields in a fixed order and
// reports the first one missing. Everything else is optional.
func ValidateNewRecord(record model.ServiceRecord) error {
	required := []struct {
		field string
		value string
	}{
		{"name", record.Name},
		{"organization", record.Organization},
		{"address", record.Address},
		{"category", record.Category},
	}
	for _, r := range required {
		if r.value == "" {
			return &MissingFieldError{Field: r.field}
		}
	}
	return nil
}

// ApplyDefaults fills the documented defaults for optional fields that were
// left empty. The input is returned by value so no caller state is touched.
func ApplyDefaults(record model.ServiceRecord) model.ServiceRecord {
	if record.Distance == "" {
		record.Distance = DefaultDistance
	}
	if record.SourceOrg == "" {
		record.SourceOrg = DefaultSourceOrg
	}
	if record.Eligibility == "" {
		record.Eligibility = DefaultEligibility
	}
	if record.Application == "" {
		record.Application = DefaultApplication
	}
	if record.Hours == nil {
		record.Hours = map[string]string{}
	}
	return record
}
