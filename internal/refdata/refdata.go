// Package refdata holds the static timezone, country and language tables
// offered to users, and label to code lookups over them.
package refdata

import "slices"

// Entry is one row of a reference table.
type Entry struct {
	Code  string `json:"value"`
	Label string `json:"label"`
}

// Timezones returns the timezone table. Codes are IANA ids; labels carry the
// UTC offset prefix.
func Timezones() []Entry {
	return slices.Clone(timezones)
}

// Countries returns the country table keyed by 2-letter code.
func Countries() []Entry {
	return slices.Clone(countries)
}

// Languages returns the language table keyed by ISO 639-1 code.
func Languages() []Entry {
	return slices.Clone(languages)
}

// CountryCodeByLabel returns the code of the first country whose label is
// exactly label, or "".
func CountryCodeByLabel(label string) string {
	return codeByLabel(countries, label)
}

// LanguageCodeByLabel returns the code of the first language whose label is
// exactly label, or "".
func LanguageCodeByLabel(label string) string {
	return codeByLabel(languages, label)
}

// TimezoneCodeByLabel returns the IANA id of the first timezone whose label
// is exactly label, or "".
func TimezoneCodeByLabel(label string) string {
	return codeByLabel(timezones, label)
}

func codeByLabel(table []Entry, label string) string {
	if label == "" {
		return ""
	}
	for _, e := range table {
		if e.Label == label {
			return e.Code
		}
	}
	return ""
}
