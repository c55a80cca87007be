// Package location resolves a client address to geographic and locale
// attributes with a fail-open fallback for every attribute.
package location

import (
	"net/netip"
)

// Record is the location of one address as returned by a Database.
//
// Every field is independently optional: an empty string or a nil pointer
// means the database does not know that attribute.
type Record struct {
	CityName           string
	SubdivisionName    string // most specific subdivision
	SubdivisionISOCode string
	PostalCode         string
	CountryName        string
	CountryISOCode     string
	TimezoneID         string // IANA
	Latitude           *float64
	Longitude          *float64
}

// Database looks up the location of an address.
//
// Implementations must be safe for concurrent use. Any error, including
// "not found", is treated the same by the Resolver.
type Database interface {
	Lookup(ip netip.Addr) (*Record, error)
}

// Parameter is a named configuration value.
type Parameter struct {
	Name  string
	Value string
}

// ParamStore provides named configuration values.
type ParamStore interface {
	GetByName(name string) (Parameter, bool)
}

// ParseAddr strictly validates an IPv4 or IPv6 literal. Zoned IPv6 addresses
// are rejected. IPv4-mapped IPv6 addresses are unmapped.
func ParseAddr(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(s)
	if err != nil || addr.Zone() != "" {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
