package location

import (
	"context"
	"errors"
	"net/http"
	"net/netip"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/maruel/geoloc/internal/clientip"
)

type fakeDB struct {
	records map[string]*Record
	err     error
	calls   atomic.Int32
}

func (f *fakeDB) Lookup(ip netip.Addr) (*Record, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.records[ip.String()]; ok {
		return r, nil
	}
	return nil, errors.New("address not found")
}

type fakeParams map[string]string

func (f fakeParams) GetByName(name string) (Parameter, bool) {
	v, ok := f[name]
	if !ok {
		return Parameter{}, false
	}
	return Parameter{Name: name, Value: v}, true
}

func ptr(f float64) *float64 { return &f }

func springfield() *Record {
	return &Record{
		CityName:           "Springfield",
		SubdivisionName:    "Illinois",
		SubdivisionISOCode: "IL",
		PostalCode:         "62701",
		CountryName:        "United States",
		CountryISOCode:     "US",
		TimezoneID:         "America/Chicago",
		Latitude:           ptr(39.7817),
		Longitude:          ptr(-89.6501),
	}
}

func clientFor(r *Resolver, addr string) *Client {
	h := http.Header{}
	h.Set("CF-Connecting-IP", addr)
	return r.For(context.Background(), clientip.Request{Header: h, RemoteAddr: "127.0.0.1:1234"})
}

func TestLookup_InvalidAddressSkipsDatabase(t *testing.T) {
	db := &fakeDB{records: map[string]*Record{}}
	r := NewResolver(db, nil)
	for _, addr := range []string{"", "not-an-ip", "203.0.113.5, 10.0.0.1", "fe80::1%eth0", "01.2.3.4", "203.0.113.5:80"} {
		if rec := r.Lookup(context.Background(), addr); rec != nil {
			t.Errorf("Lookup(%q) = %+v, want nil", addr, rec)
		}
	}
	if n := db.calls.Load(); n != 0 {
		t.Errorf("database called %d times, want 0", n)
	}
}

func TestLookup_ValidAddress(t *testing.T) {
	db := &fakeDB{records: map[string]*Record{"203.0.113.5": springfield(), "2001:db8::1": springfield()}}
	r := NewResolver(db, nil)
	for _, addr := range []string{"203.0.113.5", "2001:db8::1", "::ffff:203.0.113.5"} {
		if rec := r.Lookup(context.Background(), addr); rec == nil || rec.CityName != "Springfield" {
			t.Errorf("Lookup(%q) = %+v", addr, rec)
		}
	}
	if rec := r.Lookup(context.Background(), "198.51.100.1"); rec != nil {
		t.Errorf("Lookup(miss) = %+v, want nil", rec)
	}
}

func TestLookup_NilDatabase(t *testing.T) {
	r := NewResolver(nil, nil)
	if rec := r.Lookup(context.Background(), "203.0.113.5"); rec != nil {
		t.Errorf("Lookup() = %+v, want nil", rec)
	}
}

func TestClient_Accessors(t *testing.T) {
	db := &fakeDB{records: map[string]*Record{"203.0.113.5": springfield()}}
	c := clientFor(NewResolver(db, nil), "203.0.113.5")

	str := []struct {
		name string
		fn   func() (string, bool)
		want string
	}{
		{"City", c.City, "Springfield"},
		{"StateName", c.StateName, "Illinois"},
		{"StateCode", c.StateCode, "IL"},
		{"PostalCode", c.PostalCode, "62701"},
		{"CityAndState", c.CityAndState, "Springfield, IL"},
		{"CountryCode", c.CountryCode, "US"},
	}
	for _, tt := range str {
		if got, ok := tt.fn(); !ok || got != tt.want {
			t.Errorf("%s() = %q, %v, want %q, true", tt.name, got, ok, tt.want)
		}
	}
	if got := c.CountryName(); got != "United States" {
		t.Errorf("CountryName() = %q", got)
	}
	if got := c.AddressName(); got != "Springfield, IL, United States" {
		t.Errorf("AddressName() = %q", got)
	}
	if got, ok := c.Latitude(); !ok || got != 39.7817 {
		t.Errorf("Latitude() = %v, %v", got, ok)
	}
	if got, ok := c.Longitude(); !ok || got != -89.6501 {
		t.Errorf("Longitude() = %v, %v", got, ok)
	}
	if got := c.Timezone(); got != "America/Chicago" {
		t.Errorf("Timezone() = %q", got)
	}
	// One query per accessor call.
	if n := db.calls.Load(); n != 11 {
		t.Errorf("database called %d times, want 11", n)
	}
}

func TestClient_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		db   *fakeDB
		addr string
	}{
		{"database error", &fakeDB{err: errors.New("corrupt database")}, "203.0.113.5"},
		{"not found", &fakeDB{records: map[string]*Record{}}, "203.0.113.5"},
		{"empty record", &fakeDB{records: map[string]*Record{"203.0.113.5": {}}}, "203.0.113.5"},
		{"invalid address", &fakeDB{records: map[string]*Record{}}, "bogus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := clientFor(NewResolver(tt.db, nil), tt.addr)
			for name, fn := range map[string]func() (string, bool){
				"City":         c.City,
				"StateName":    c.StateName,
				"StateCode":    c.StateCode,
				"PostalCode":   c.PostalCode,
				"CityAndState": c.CityAndState,
				"CountryCode":  c.CountryCode,
			} {
				if got, ok := fn(); ok || got != "" {
					t.Errorf("%s() = %q, %v, want false", name, got, ok)
				}
			}
			if got := c.CountryName(); got != Unknown {
				t.Errorf("CountryName() = %q, want %q", got, Unknown)
			}
			if got := c.AddressName(); got != Unknown {
				t.Errorf("AddressName() = %q, want %q", got, Unknown)
			}
			if _, ok := c.Latitude(); ok {
				t.Error("Latitude() should have no value")
			}
			if _, ok := c.Longitude(); ok {
				t.Error("Longitude() should have no value")
			}
			if got := c.Timezone(); got != DefaultTimezone {
				t.Errorf("Timezone() = %q, want %q", got, DefaultTimezone)
			}
		})
	}
}

func TestClient_PartialRecord(t *testing.T) {
	rec := &Record{CityName: "Springfield", CountryName: "United States", Latitude: ptr(0)}
	db := &fakeDB{records: map[string]*Record{"203.0.113.5": rec}}
	c := clientFor(NewResolver(db, nil), "203.0.113.5")
	if got, ok := c.City(); !ok || got != "Springfield" {
		t.Errorf("City() = %q, %v", got, ok)
	}
	if _, ok := c.CityAndState(); ok {
		t.Error("CityAndState() should be false without a subdivision")
	}
	if got := c.AddressName(); got != Unknown {
		t.Errorf("AddressName() = %q, want %q", got, Unknown)
	}
	if got := c.CountryName(); got != "United States" {
		t.Errorf("CountryName() = %q", got)
	}
	if got, ok := c.Latitude(); !ok || got != 0 {
		t.Errorf("Latitude() = %v, %v, want 0, true", got, ok)
	}
	if _, ok := c.Longitude(); ok {
		t.Error("Longitude() should have no value")
	}
}

func TestClient_Timezone(t *testing.T) {
	paris := &Record{TimezoneID: "Europe/Paris"}
	tests := []struct {
		name   string
		rec    *Record
		params ParamStore
		want   string
	}{
		{"from record", paris, fakeParams{DefaultTimezoneParam: "Asia/Tokyo"}, "Europe/Paris"},
		{"from parameter", nil, fakeParams{DefaultTimezoneParam: "Asia/Tokyo"}, "Asia/Tokyo"},
		{"record without zone", &Record{CityName: "X"}, fakeParams{DefaultTimezoneParam: "Asia/Tokyo"}, "Asia/Tokyo"},
		{"parameter miss", nil, fakeParams{}, "America/New_York"},
		{"empty parameter", nil, fakeParams{DefaultTimezoneParam: ""}, "America/New_York"},
		{"no store", nil, nil, "America/New_York"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDB{records: map[string]*Record{}}
			if tt.rec != nil {
				db.records["203.0.113.5"] = tt.rec
			}
			c := clientFor(NewResolver(db, tt.params), "203.0.113.5")
			if got := c.Timezone(); got != tt.want {
				t.Errorf("Timezone() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_TimezoneAbbrev(t *testing.T) {
	winter := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		rec  *Record
		now  time.Time
		want string
	}{
		{"default winter", nil, winter, "EST"},
		{"default summer", nil, summer, "EDT"},
		{"paris winter", &Record{TimezoneID: "Europe/Paris"}, winter, "CET"},
		{"paris summer", &Record{TimezoneID: "Europe/Paris"}, summer, "CEST"},
		{"tokyo", &Record{TimezoneID: "Asia/Tokyo"}, summer, "JST"},
		{"unknown zone", &Record{TimezoneID: "Mars/Olympus_Mons"}, winter, "EST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDB{records: map[string]*Record{}}
			if tt.rec != nil {
				db.records["203.0.113.5"] = tt.rec
			}
			r := NewResolver(db, nil, WithClock(func() time.Time { return tt.now }))
			if got := clientFor(r, "203.0.113.5").TimezoneAbbrev(); got != tt.want {
				t.Errorf("TimezoneAbbrev() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_ResolveOverride(t *testing.T) {
	db := &fakeDB{records: map[string]*Record{"198.51.100.9": springfield()}}
	c := clientFor(NewResolver(db, nil), "203.0.113.5")
	if rec := c.Resolve(""); rec != nil {
		t.Errorf("Resolve(\"\") = %+v, want nil", rec)
	}
	if rec := c.Resolve("198.51.100.9"); rec == nil || rec.CityName != "Springfield" {
		t.Errorf("Resolve(override) = %+v", rec)
	}
}

func TestClient_CustomExtractor(t *testing.T) {
	db := &fakeDB{records: map[string]*Record{"198.51.100.9": springfield()}}
	e, err := clientip.New([]string{"X-Forwarded-For"})
	if err != nil {
		t.Fatal(err)
	}
	h := http.Header{}
	h.Set("CF-Connecting-IP", "203.0.113.5")
	h.Set("X-Forwarded-For", "198.51.100.9")
	c := NewResolver(db, nil, WithExtractor(e)).For(context.Background(), clientip.Request{Header: h})
	if got := c.Address(); got != "198.51.100.9" {
		t.Errorf("Address() = %q", got)
	}
	if got, ok := c.City(); !ok || got != "Springfield" {
		t.Errorf("City() = %q, %v", got, ok)
	}
}

func TestClient_Profile(t *testing.T) {
	db := &fakeDB{records: map[string]*Record{"203.0.113.5": springfield()}}
	now := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	c := clientFor(NewResolver(db, nil, WithClock(func() time.Time { return now })), "203.0.113.5")

	p := c.Profile("")
	if n := db.calls.Load(); n != 1 {
		t.Errorf("database called %d times, want 1", n)
	}
	if !p.Found || p.Address != "203.0.113.5" {
		t.Errorf("Profile() address = %q found = %v", p.Address, p.Found)
	}
	if p.CityAndState != (Text{"Springfield, IL", true}) {
		t.Errorf("CityAndState = %+v", p.CityAndState)
	}
	if p.AddressName != "Springfield, IL, United States" {
		t.Errorf("AddressName = %q", p.AddressName)
	}
	if p.Latitude == nil || *p.Latitude != 39.7817 {
		t.Errorf("Latitude = %v", p.Latitude)
	}
	if p.Timezone != "America/Chicago" || p.TimezoneAbbrev != "CST" {
		t.Errorf("Timezone = %q %q", p.Timezone, p.TimezoneAbbrev)
	}

	miss := c.Profile("198.51.100.1")
	if miss.Found || miss.City.OK || miss.CountryName != Unknown || miss.Latitude != nil {
		t.Errorf("Profile(miss) = %+v", miss)
	}
	if miss.Timezone != DefaultTimezone || miss.TimezoneAbbrev != "EST" {
		t.Errorf("Profile(miss) timezone = %q %q", miss.Timezone, miss.TimezoneAbbrev)
	}
}
