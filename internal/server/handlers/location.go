// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"context"

	"github.com/maruel/geoloc/internal/clientip"
	"github.com/maruel/geoloc/internal/location"
	"github.com/maruel/geoloc/internal/server/dto"
	"github.com/maruel/geoloc/internal/server/reqctx"
)

// LocationHandler resolves addresses.
type LocationHandler struct {
	resolver *location.Resolver
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(resolver *location.Resolver) *LocationHandler {
	return &LocationHandler{resolver: resolver}
}

// Current returns the location of the calling client, as extracted by the
// client metadata middleware.
func (h *LocationHandler) Current(ctx context.Context, req *dto.CurrentLocationRequest) (*dto.LocationResponse, error) {
	return h.profile(ctx, reqctx.ClientIP(ctx)), nil
}

// Lookup returns the location of an explicit address.
func (h *LocationHandler) Lookup(ctx context.Context, req *dto.LocationRequest) (*dto.LocationResponse, error) {
	return h.profile(ctx, req.IP), nil
}

func (h *LocationHandler) profile(ctx context.Context, addr string) *dto.LocationResponse {
	p := h.resolver.For(ctx, clientip.Request{}).Profile(addr)
	return dto.NewLocationResponse(&p)
}
