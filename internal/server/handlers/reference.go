package handlers

import (
	"context"

	"github.com/maruel/geoloc/internal/refdata"
	"github.com/maruel/geoloc/internal/server/dto"
)

// ReferenceHandler serves the static reference tables.
type ReferenceHandler struct{}

// NewReferenceHandler creates a new reference handler.
func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

// Timezones lists the timezone choices.
func (h *ReferenceHandler) Timezones(ctx context.Context, req *dto.ReferenceListRequest) (*dto.ReferenceListResponse, error) {
	return toList(refdata.Timezones()), nil
}

// Countries lists the countries.
func (h *ReferenceHandler) Countries(ctx context.Context, req *dto.ReferenceListRequest) (*dto.ReferenceListResponse, error) {
	return toList(refdata.Countries()), nil
}

// Languages lists the languages.
func (h *ReferenceHandler) Languages(ctx context.Context, req *dto.ReferenceListRequest) (*dto.ReferenceListResponse, error) {
	return toList(refdata.Languages()), nil
}

// CountryCode maps a country label to its ISO code.
func (h *ReferenceHandler) CountryCode(ctx context.Context, req *dto.LabelLookupRequest) (*dto.CodeResponse, error) {
	return &dto.CodeResponse{Code: refdata.CountryCodeByLabel(req.Label)}, nil
}

// LanguageCode maps a language label to its code.
func (h *ReferenceHandler) LanguageCode(ctx context.Context, req *dto.LabelLookupRequest) (*dto.CodeResponse, error) {
	return &dto.CodeResponse{Code: refdata.LanguageCodeByLabel(req.Label)}, nil
}

// TimezoneCode maps a timezone label to its IANA name.
func (h *ReferenceHandler) TimezoneCode(ctx context.Context, req *dto.LabelLookupRequest) (*dto.CodeResponse, error) {
	return &dto.CodeResponse{Code: refdata.TimezoneCodeByLabel(req.Label)}, nil
}

func toList(entries []refdata.Entry) *dto.ReferenceListResponse {
	items := make([]dto.ReferenceEntry, len(entries))
	for i, e := range entries {
		items[i] = dto.ReferenceEntry{Value: e.Code, Label: e.Label}
	}
	return &dto.ReferenceListResponse{Items: items}
}
