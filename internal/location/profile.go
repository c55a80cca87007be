package location

// Text is a string attribute that may be missing.
type Text struct {
	Value string
	OK    bool
}

func text(v string, ok bool) Text {
	return Text{Value: v, OK: ok}
}

// Profile holds every attribute of one address, derived from a single
// database query.
type Profile struct {
	Address        string
	Found          bool
	City           Text
	StateName      Text
	StateCode      Text
	PostalCode     Text
	CityAndState   Text
	CountryName    string
	AddressName    string
	CountryCode    Text
	Latitude       *float64
	Longitude      *float64
	Timezone       string
	TimezoneAbbrev string
}

// Profile resolves addr, or the request's client address when addr is empty,
// once and returns all attributes with the same fallbacks as the individual
// accessors.
func (c *Client) Profile(addr string) Profile {
	if addr == "" {
		addr = c.Address()
	}
	rec := c.r.Lookup(c.ctx, addr)
	p := Profile{
		Address:      addr,
		Found:        rec != nil,
		City:         text(city(rec)),
		StateName:    text(stateName(rec)),
		StateCode:    text(stateCode(rec)),
		PostalCode:   text(postalCode(rec)),
		CityAndState: text(cityAndState(rec)),
		CountryName:  countryName(rec),
		AddressName:  addressName(rec),
		CountryCode:  text(countryCode(rec)),
		Timezone:     c.r.Timezone(rec),
	}
	if v, ok := coord(rec, func(r *Record) *float64 { return r.Latitude }); ok {
		p.Latitude = &v
	}
	if v, ok := coord(rec, func(r *Record) *float64 { return r.Longitude }); ok {
		p.Longitude = &v
	}
	p.TimezoneAbbrev = c.r.Abbreviate(p.Timezone)
	return p
}
