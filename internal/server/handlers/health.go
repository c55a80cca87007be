package handlers

import (
	"context"
	"time"

	"github.com/maruel/geoloc/internal/errors"
	"github.com/maruel/geoloc/internal/geodb"
	"github.com/maruel/geoloc/internal/server/dto"
)

// MetadataSource describes the loaded geolocation database.
type MetadataSource interface {
	Metadata() (geodb.Metadata, error)
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	version string
	db      MetadataSource
}

// NewHealthHandler creates a new health handler. db may be nil when the
// server runs without a geolocation database.
func NewHealthHandler(version string, db MetadataSource) *HealthHandler {
	return &HealthHandler{version: version, db: db}
}

// Health handles health check requests. It fails with 503 when the
// geolocation database is configured but cannot be read.
func (h *HealthHandler) Health(ctx context.Context, req *dto.HealthRequest) (*dto.HealthResponse, error) {
	resp := &dto.HealthResponse{Status: "ok", Version: h.version}
	if h.db == nil {
		return resp, nil
	}
	m, err := h.db.Metadata()
	if err != nil {
		return nil, errors.Unavailable("geo database").Wrap(err)
	}
	resp.Database = &dto.DatabaseInfo{Type: m.Type, BuildTime: m.BuildTime.Format(time.RFC3339)}
	return resp, nil
}
