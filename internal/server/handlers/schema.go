package handlers

import (
	"context"

	"github.com/invopop/jsonschema"

	"github.com/maruel/geoloc/internal/server/dto"
)

// LocationSchema returns the JSON schema of the location response.
func LocationSchema(ctx context.Context, req *dto.SchemaRequest) (*jsonschema.Schema, error) {
	return dto.LocationSchema(), nil
}
