package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/netip"
	"testing"
	"time"

	"github.com/maruel/geoloc/internal/errors"
	"github.com/maruel/geoloc/internal/geodb"
	"github.com/maruel/geoloc/internal/location"
	"github.com/maruel/geoloc/internal/server/dto"
	"github.com/maruel/geoloc/internal/server/reqctx"
)

type fakeMetadata struct {
	m   geodb.Metadata
	err error
}

func (f *fakeMetadata) Metadata() (geodb.Metadata, error) { return f.m, f.err }

type fakeDB map[string]*location.Record

func (f fakeDB) Lookup(ip netip.Addr) (*location.Record, error) {
	if rec, ok := f[ip.String()]; ok {
		return rec, nil
	}
	return nil, geodb.ErrNotFound
}

func TestHealthHandler_Health(t *testing.T) {
	built := time.Date(2026, 10, 6, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		db         MetadataSource
		wantStatus string
		wantDB     *dto.DatabaseInfo
	}{
		{"no database", nil, "ok", nil},
		{
			"loaded",
			&fakeMetadata{m: geodb.Metadata{Type: "GeoLite2-City", BuildTime: built}},
			"ok",
			&dto.DatabaseInfo{Type: "GeoLite2-City", BuildTime: "2026-10-06T00:00:00Z"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler("1.0.0", tt.db)
			resp, err := h.Health(context.Background(), &dto.HealthRequest{})
			if err != nil {
				t.Fatalf("Health() error = %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", resp.Status, tt.wantStatus)
			}
			if resp.Version != "1.0.0" {
				t.Errorf("Version = %q", resp.Version)
			}
			switch {
			case tt.wantDB == nil && resp.Database != nil:
				t.Errorf("Database = %+v, want nil", resp.Database)
			case tt.wantDB != nil && (resp.Database == nil || *resp.Database != *tt.wantDB):
				t.Errorf("Database = %+v, want %+v", resp.Database, tt.wantDB)
			}
		})
	}
}

func TestHealthHandler_Unavailable(t *testing.T) {
	h := NewHealthHandler("1.0.0", &fakeMetadata{err: geodb.ErrClosed})
	resp, err := h.Health(context.Background(), &dto.HealthRequest{})
	if resp != nil {
		t.Errorf("Health() = %+v, want nil", resp)
	}
	var ews errors.ErrorWithStatus
	if !stderrors.As(err, &ews) {
		t.Fatalf("Health() error = %v, want an API error", err)
	}
	if ews.StatusCode() != http.StatusServiceUnavailable || ews.Code() != errors.ErrUnavailable {
		t.Errorf("got %d %s", ews.StatusCode(), ews.Code())
	}
	if !stderrors.Is(err, geodb.ErrClosed) {
		t.Errorf("Health() error = %v, want it to wrap ErrClosed", err)
	}
}

func TestLocationHandler(t *testing.T) {
	db := fakeDB{
		"203.0.113.5": {
			CityName:           "Springfield",
			SubdivisionISOCode: "IL",
			CountryName:        "United States",
			CountryISOCode:     "US",
			TimezoneID:         "America/Chicago",
		},
	}
	h := NewLocationHandler(location.NewResolver(db, nil))

	t.Run("current", func(t *testing.T) {
		ctx := reqctx.WithClientIP(context.Background(), "203.0.113.5")
		resp, err := h.Current(ctx, &dto.CurrentLocationRequest{})
		if err != nil {
			t.Fatal(err)
		}
		if resp.IP != "203.0.113.5" || !resp.Found || resp.AddressName != "Springfield, IL, United States" {
			t.Errorf("resp = %+v", resp)
		}
	})
	t.Run("current without address", func(t *testing.T) {
		resp, err := h.Current(context.Background(), &dto.CurrentLocationRequest{})
		if err != nil {
			t.Fatal(err)
		}
		if resp.Found || resp.CountryName != location.Unknown || resp.Timezone != location.DefaultTimezone {
			t.Errorf("resp = %+v", resp)
		}
	})
	t.Run("explicit", func(t *testing.T) {
		resp, err := h.Lookup(context.Background(), &dto.LocationRequest{IP: "198.51.100.1"})
		if err != nil {
			t.Fatal(err)
		}
		if resp.Found || resp.City.Valid || resp.Latitude != nil {
			t.Errorf("resp = %+v", resp)
		}
	})
}

func TestReferenceHandler(t *testing.T) {
	h := NewReferenceHandler()
	ctx := context.Background()
	lists := []struct {
		name string
		fn   func(context.Context, *dto.ReferenceListRequest) (*dto.ReferenceListResponse, error)
		want int
	}{
		{"timezones", h.Timezones, 82},
		{"countries", h.Countries, 244},
		{"languages", h.Languages, 184},
	}
	for _, tt := range lists {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.fn(ctx, &dto.ReferenceListRequest{})
			if err != nil {
				t.Fatal(err)
			}
			if len(resp.Items) != tt.want {
				t.Errorf("len = %d, want %d", len(resp.Items), tt.want)
			}
			if resp.Items[0].Value == "" || resp.Items[0].Label == "" {
				t.Errorf("first item = %+v", resp.Items[0])
			}
		})
	}

	lookups := []struct {
		name  string
		fn    func(context.Context, *dto.LabelLookupRequest) (*dto.CodeResponse, error)
		label string
		want  string
	}{
		{"country", h.CountryCode, "France", "FR"},
		{"country miss", h.CountryCode, "Atlantis", ""},
		{"country empty", h.CountryCode, "", ""},
		{"language", h.LanguageCode, "French", "fr"},
		{"timezone", h.TimezoneCode, "(GMT-05:00) Eastern Time (US & Canada)", "America/New_York"},
	}
	for _, tt := range lookups {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.fn(ctx, &dto.LabelLookupRequest{Label: tt.label})
			if err != nil {
				t.Fatal(err)
			}
			if resp.Code != tt.want {
				t.Errorf("Code = %q, want %q", resp.Code, tt.want)
			}
		})
	}
}

func TestLocationSchema(t *testing.T) {
	s, err := LocationSchema(context.Background(), &dto.SchemaRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if s.Properties == nil {
		t.Fatal("schema has no properties")
	}
	if _, ok := s.Properties.Get("country_code"); !ok {
		t.Error("country_code missing")
	}
}
