package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/maruel/geoloc/internal/clientip"
	"github.com/maruel/geoloc/internal/errors"
	"github.com/maruel/geoloc/internal/location"
	"github.com/maruel/geoloc/internal/server/ratelimit"
	"github.com/maruel/geoloc/internal/server/reqctx"
	"github.com/maruel/geoloc/internal/utils"
)

// requestIDHeader is echoed back, or generated when the client sent none.
const requestIDHeader = "X-Request-ID"

// withRequestID tags the request with an ID.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = utils.GenerateID()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(reqctx.WithRequestID(r.Context(), id)))
	})
}

// withClientInfo stores the client address and the User-Agent in the request
// context. It does not query the geolocation database.
func withClientInfo(resolver *location.Resolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = reqctx.WithClientIP(ctx, resolver.For(ctx, clientip.FromHTTP(r)).Address())
		ctx = reqctx.WithUserAgent(ctx, r.Header.Get("User-Agent"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withRateLimit enforces the tier matching the request.
func withRateLimit(limits *ratelimit.Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tier := limits.Match(r.Method, r.URL.Path)
		if tier == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		ip := reqctx.ClientIP(ctx)
		result := tier.Limiter.Allow(ratelimit.BuildKey(ip, tier.Name))
		ratelimit.WriteHeaders(w, result)
		if !result.Allowed {
			slog.WarnContext(ctx, "Rate limited", "tier", tier.Name, "ip", ip)
			utils.RespondError(w, errors.TooManyRequests().WithDetail("retry_after", int(result.RetryAfter.Seconds())))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// notFound answers unknown API routes with a JSON error.
func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(r.Context(), w, errors.NotFound("route "+r.URL.Path))
}

// statusWriter records the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withLogging logs one line per request.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		ctx := r.Context()
		slog.InfoContext(ctx, "http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"dur", time.Since(start).Round(time.Microsecond),
			"ip", reqctx.ClientIP(ctx),
			"ua", reqctx.UserAgent(ctx),
			"id", reqctx.RequestID(ctx),
		)
	})
}
