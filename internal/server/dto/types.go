// Package dto defines the wire types of the HTTP API.
package dto

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/maruel/geoloc/internal/location"
)

// OptionalString is a string attribute that encodes as JSON false when
// missing.
type OptionalString struct {
	Value string
	Valid bool
}

// FromText converts a location.Text.
func FromText(t location.Text) OptionalString {
	return OptionalString{Value: t.Value, Valid: t.OK}
}

// MarshalJSON implements json.Marshaler.
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("false"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalString) UnmarshalJSON(b []byte) error {
	if string(b) == "false" {
		*o = OptionalString{}
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// JSONSchema implements jsonschema's custom schema hook.
func (OptionalString) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "boolean", Const: false},
		},
	}
}

// LocationResponse is the location of one address.
type LocationResponse struct {
	IP             string         `json:"ip" jsonschema:"description=Address that was resolved"`
	Found          bool           `json:"found" jsonschema:"description=Whether the geolocation database knew the address"`
	City           OptionalString `json:"city" jsonschema:"description=City name or false"`
	StateName      OptionalString `json:"state_name" jsonschema:"description=Most specific subdivision name or false"`
	StateCode      OptionalString `json:"state_code" jsonschema:"description=Most specific subdivision ISO code or false"`
	PostalCode     OptionalString `json:"postal_code" jsonschema:"description=Postal code or false"`
	CityState      OptionalString `json:"city_state" jsonschema:"description=City and subdivision code or false"`
	CountryName    string         `json:"country_name" jsonschema:"description=Country name or unknown"`
	AddressName    string         `json:"address_name" jsonschema:"description=City with subdivision code and country or unknown"`
	CountryCode    OptionalString `json:"country_code" jsonschema:"description=ISO 3166-1 alpha-2 code or false"`
	Latitude       *float64       `json:"latitude" jsonschema:"description=Latitude or null"`
	Longitude      *float64       `json:"longitude" jsonschema:"description=Longitude or null"`
	Timezone       string         `json:"timezone" jsonschema:"description=IANA timezone or the configured default"`
	TimezoneAbbrev string         `json:"timezone_abbreviation" jsonschema:"description=Current abbreviation of timezone"`
}

// NewLocationResponse converts a location.Profile.
func NewLocationResponse(p *location.Profile) *LocationResponse {
	return &LocationResponse{
		IP:             p.Address,
		Found:          p.Found,
		City:           FromText(p.City),
		StateName:      FromText(p.StateName),
		StateCode:      FromText(p.StateCode),
		PostalCode:     FromText(p.PostalCode),
		CityState:      FromText(p.CityAndState),
		CountryName:    p.CountryName,
		AddressName:    p.AddressName,
		CountryCode:    FromText(p.CountryCode),
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		Timezone:       p.Timezone,
		TimezoneAbbrev: p.TimezoneAbbrev,
	}
}

// LocationSchema returns the JSON schema of LocationResponse.
func LocationSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	return r.Reflect(&LocationResponse{})
}

// ReferenceEntry is one row of a reference table.
type ReferenceEntry struct {
	Value string `json:"value" jsonschema:"description=Stable code"`
	Label string `json:"label" jsonschema:"description=Human readable label"`
}

// ReferenceListResponse is a whole reference table in display order.
type ReferenceListResponse struct {
	Items []ReferenceEntry `json:"items"`
}

// CodeResponse is the result of a label lookup. Code is empty when nothing
// matches.
type CodeResponse struct {
	Code string `json:"code"`
}

// DatabaseInfo describes the loaded geolocation database.
type DatabaseInfo struct {
	Type      string `json:"type"`
	BuildTime string `json:"build_time"`
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status   string        `json:"status"`
	Version  string        `json:"version"`
	Database *DatabaseInfo `json:"database,omitempty"`
}
