package location

import (
	"context"

	"github.com/maruel/geoloc/internal/clientip"
)

// Client exposes the location attributes of one request.
//
// The accessors keep three distinct "no value" signals, which callers rely
// on:
//   - (string, bool) accessors report false when the record or field is missing;
//   - CountryName and AddressName return Unknown;
//   - Latitude and Longitude report no value.
type Client struct {
	ctx context.Context
	r   *Resolver
	req clientip.Request
}

// Address returns the candidate client address from the request metadata.
func (c *Client) Address() string {
	return c.r.extractor.Address(c.req)
}

// Resolve looks up addr, or the request's client address when addr is empty.
// It returns nil when nothing can be resolved.
func (c *Client) Resolve(addr string) *Record {
	if addr == "" {
		addr = c.Address()
	}
	return c.r.Lookup(c.ctx, addr)
}

// City returns the city name.
func (c *Client) City() (string, bool) {
	return city(c.Resolve(""))
}

// StateName returns the name of the most specific subdivision.
func (c *Client) StateName() (string, bool) {
	return stateName(c.Resolve(""))
}

// StateCode returns the ISO code of the most specific subdivision.
func (c *Client) StateCode() (string, bool) {
	return stateCode(c.Resolve(""))
}

// PostalCode returns the postal code.
func (c *Client) PostalCode() (string, bool) {
	return postalCode(c.Resolve(""))
}

// CityAndState returns "City, ST".
func (c *Client) CityAndState() (string, bool) {
	return cityAndState(c.Resolve(""))
}

// CountryName returns the country name or Unknown.
func (c *Client) CountryName() string {
	return countryName(c.Resolve(""))
}

// AddressName returns "City, ST, Country" or Unknown.
func (c *Client) AddressName() string {
	return addressName(c.Resolve(""))
}

// CountryCode returns the ISO 3166-1 alpha-2 country code.
func (c *Client) CountryCode() (string, bool) {
	return countryCode(c.Resolve(""))
}

// Latitude returns the latitude, if known.
func (c *Client) Latitude() (float64, bool) {
	return coord(c.Resolve(""), func(r *Record) *float64 { return r.Latitude })
}

// Longitude returns the longitude, if known.
func (c *Client) Longitude() (float64, bool) {
	return coord(c.Resolve(""), func(r *Record) *float64 { return r.Longitude })
}

// Timezone returns the IANA timezone of the client. It always returns a
// value; see Resolver.Timezone for the fallback order.
func (c *Client) Timezone() string {
	return c.r.Timezone(c.Resolve(""))
}

// TimezoneAbbrev returns the abbreviation of Timezone at the current time.
func (c *Client) TimezoneAbbrev() string {
	return c.r.Abbreviate(c.Timezone())
}

func city(r *Record) (string, bool) {
	if r == nil || r.CityName == "" {
		return "", false
	}
	return r.CityName, true
}

func stateName(r *Record) (string, bool) {
	if r == nil || r.SubdivisionName == "" {
		return "", false
	}
	return r.SubdivisionName, true
}

func stateCode(r *Record) (string, bool) {
	if r == nil || r.SubdivisionISOCode == "" {
		return "", false
	}
	return r.SubdivisionISOCode, true
}

func postalCode(r *Record) (string, bool) {
	if r == nil || r.PostalCode == "" {
		return "", false
	}
	return r.PostalCode, true
}

func cityAndState(r *Record) (string, bool) {
	if r == nil || r.CityName == "" || r.SubdivisionISOCode == "" {
		return "", false
	}
	return r.CityName + ", " + r.SubdivisionISOCode, true
}

func countryName(r *Record) string {
	if r == nil || r.CountryName == "" {
		return Unknown
	}
	return r.CountryName
}

func addressName(r *Record) string {
	if r == nil || r.CityName == "" || r.SubdivisionISOCode == "" || r.CountryName == "" {
		return Unknown
	}
	return r.CityName + ", " + r.SubdivisionISOCode + ", " + r.CountryName
}

func countryCode(r *Record) (string, bool) {
	if r == nil || r.CountryISOCode == "" {
		return "", false
	}
	return r.CountryISOCode, true
}

func coord(r *Record, field func(*Record) *float64) (float64, bool) {
	if r == nil {
		return 0, false
	}
	v := field(r)
	if v == nil {
		return 0, false
	}
	return *v, true
}
