package refdata

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"
)

func TestCountryCodeByLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"France", "FR"},
		{"France, Metropolitan", "FX"},
		{"United States", "US"},
		{"Cote D'Ivoire", "CI"},
		{"Montenegro", "ME"},
		{"", ""},
		{"Atlantis", ""},
		{"france", ""},
		{" France", ""},
	}
	for _, tt := range tests {
		if got := CountryCodeByLabel(tt.label); got != tt.want {
			t.Errorf("CountryCodeByLabel(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestLanguageCodeByLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"English", "en"},
		{"Norwegian Bokmål", "nb"},
		{"Catalan, Valencian", "ca"},
		{"Zulu", "zu"},
		{"", ""},
		{"Klingon", ""},
		{"english", ""},
	}
	for _, tt := range tests {
		if got := LanguageCodeByLabel(tt.label); got != tt.want {
			t.Errorf("LanguageCodeByLabel(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestTimezoneCodeByLabel(t *testing.T) {
	if got := TimezoneCodeByLabel("(GMT+09:00) Osaka, Sapporo, Tokyo"); got != "Asia/Tokyo" {
		t.Errorf("TimezoneCodeByLabel() = %q", got)
	}
	if got := TimezoneCodeByLabel("Tokyo"); got != "" {
		t.Errorf("TimezoneCodeByLabel() = %q, want empty", got)
	}
}

func TestTables(t *testing.T) {
	tables := map[string][]Entry{
		"timezones": Timezones(),
		"countries": Countries(),
		"languages": Languages(),
	}
	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			if len(table) == 0 {
				t.Fatal("empty table")
			}
			seen := make(map[string]bool, len(table))
			for i, e := range table {
				if e.Code == "" {
					t.Errorf("entry %d has empty code", i)
				}
				if e.Label == "" {
					t.Errorf("entry %d (%s) has empty label", i, e.Code)
				}
				if seen[e.Code] {
					t.Errorf("duplicate code %q", e.Code)
				}
				seen[e.Code] = true
			}
		})
	}
}

func TestTimezones_Loadable(t *testing.T) {
	for _, e := range Timezones() {
		if _, err := time.LoadLocation(e.Code); err != nil {
			t.Errorf("LoadLocation(%q): %v", e.Code, err)
		}
		if !strings.HasPrefix(e.Label, "(GMT") {
			t.Errorf("label %q lacks the UTC offset prefix", e.Label)
		}
	}
}

func TestTables_Immutable(t *testing.T) {
	c := Countries()
	c[0].Code = "XX"
	if Countries()[0].Code == "XX" {
		t.Error("Countries() returned the shared table")
	}
	if CountryCodeByLabel(c[0].Label) == "XX" {
		t.Error("lookup sees caller mutation")
	}
}

func TestCountries_Order(t *testing.T) {
	c := Countries()
	if c[0] != (Entry{"AF", "Afghanistan"}) {
		t.Errorf("first country = %+v", c[0])
	}
	if last := c[len(c)-1]; last != (Entry{"ME", "Montenegro"}) {
		t.Errorf("last country = %+v", last)
	}
}
