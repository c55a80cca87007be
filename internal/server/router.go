// Package server implements the HTTP server and routing logic.
package server

import (
	"net/http"

	"github.com/maruel/geoloc/internal/location"
	"github.com/maruel/geoloc/internal/server/handlers"
	"github.com/maruel/geoloc/internal/server/ratelimit"
)

// NewRouter creates and configures the HTTP router.
//
// db may be nil when no geolocation database is loaded. limits may be nil to
// disable rate limiting.
func NewRouter(resolver *location.Resolver, db handlers.MetadataSource, limits *ratelimit.Config, version string) http.Handler {
	mux := &http.ServeMux{}

	hh := handlers.NewHealthHandler(version, db)
	mux.Handle("GET /api/health", Wrap(hh.Health))

	lh := handlers.NewLocationHandler(resolver)
	mux.Handle("GET /api/location", Wrap(lh.Current))
	mux.Handle("GET /api/location/{ip}", Wrap(lh.Lookup))

	rh := handlers.NewReferenceHandler()
	mux.Handle("GET /api/reference/timezones", Wrap(rh.Timezones))
	mux.Handle("GET /api/reference/timezones/lookup", Wrap(rh.TimezoneCode))
	mux.Handle("GET /api/reference/countries", Wrap(rh.Countries))
	mux.Handle("GET /api/reference/countries/lookup", Wrap(rh.CountryCode))
	mux.Handle("GET /api/reference/languages", Wrap(rh.Languages))
	mux.Handle("GET /api/reference/languages/lookup", Wrap(rh.LanguageCode))

	mux.Handle("GET /api/schema/location", Wrap(handlers.LocationSchema))
	mux.HandleFunc("/api/", notFound)

	var h http.Handler = mux
	if limits != nil {
		h = withRateLimit(limits, h)
	}
	h = withLogging(h)
	h = withClientInfo(resolver, h)
	return withRequestID(h)
}
