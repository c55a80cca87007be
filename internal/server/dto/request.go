package dto

import (
	"github.com/maruel/geoloc/internal/errors"
	"github.com/maruel/geoloc/internal/location"
)

// Validatable is implemented by every request type.
type Validatable interface {
	Validate() error
}

// HealthRequest is the request type for health check (empty).
type HealthRequest struct{}

// Validate implements Validatable.
func (r *HealthRequest) Validate() error { return nil }

// CurrentLocationRequest asks for the location of the calling client.
type CurrentLocationRequest struct{}

// Validate implements Validatable.
func (r *CurrentLocationRequest) Validate() error { return nil }

// LocationRequest asks for the location of an explicit address.
type LocationRequest struct {
	IP string `path:"ip"`
}

// Validate implements Validatable.
func (r *LocationRequest) Validate() error {
	if r.IP == "" {
		return errors.MissingField("ip")
	}
	if _, ok := location.ParseAddr(r.IP); !ok {
		return errors.InvalidFormat("ip")
	}
	return nil
}

// ReferenceListRequest lists a reference table.
type ReferenceListRequest struct{}

// Validate implements Validatable.
func (r *ReferenceListRequest) Validate() error { return nil }

// LabelLookupRequest maps a label back to its code. An empty label is valid
// and matches nothing.
type LabelLookupRequest struct {
	Label string `query:"label"`
}

// Validate implements Validatable.
func (r *LabelLookupRequest) Validate() error { return nil }

// SchemaRequest asks for a JSON schema.
type SchemaRequest struct{}

// Validate implements Validatable.
func (r *SchemaRequest) Validate() error { return nil }
