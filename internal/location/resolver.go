package location

import (
	"context"
	"log/slog"
	"time"

	"github.com/maruel/geoloc/internal/clientip"
)

const (
	// DefaultTimezoneParam is the parameter consulted when an address has no
	// timezone.
	DefaultTimezoneParam = "default_timezone"
	// DefaultTimezone is used when neither the database nor the parameter
	// store provide a timezone.
	DefaultTimezone = "America/New_York"
	// Unknown is returned by the accessors that fall back to a string.
	Unknown = "unknown"
)

// Resolver turns request metadata into location attributes.
//
// A Resolver is safe for concurrent use. It holds no per-request state: each
// accessor of a Client performs its own database query.
type Resolver struct {
	db        Database
	params    ParamStore
	extractor *clientip.Extractor
	now       func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithExtractor sets the client address extractor. The default uses
// clientip.DefaultHeaders.
func WithExtractor(e *clientip.Extractor) Option {
	return func(r *Resolver) { r.extractor = e }
}

// WithClock sets the clock used for timezone abbreviations.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// NewResolver returns a Resolver querying db. params may be nil.
func NewResolver(db Database, params ParamStore, opts ...Option) *Resolver {
	r := &Resolver{
		db:        db,
		params:    params,
		extractor: clientip.Default(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Lookup validates addr and queries the database.
//
// It returns nil when addr is not a valid IP literal, without querying the
// database, and nil when the database fails for any reason.
func (r *Resolver) Lookup(ctx context.Context, addr string) *Record {
	ip, ok := ParseAddr(addr)
	if !ok {
		slog.DebugContext(ctx, "Invalid client address", "addr", addr)
		return nil
	}
	if r.db == nil {
		return nil
	}
	rec, err := r.db.Lookup(ip)
	if err != nil {
		slog.DebugContext(ctx, "Location lookup failed", "ip", ip, "err", err)
		return nil
	}
	return rec
}

// For returns the accessors for one request.
func (r *Resolver) For(ctx context.Context, req clientip.Request) *Client {
	return &Client{ctx: ctx, r: r, req: req}
}

// Timezone returns the timezone of rec, falling back to the configured
// default and then to DefaultTimezone.
func (r *Resolver) Timezone(rec *Record) string {
	if rec != nil && rec.TimezoneID != "" {
		return rec.TimezoneID
	}
	if r.params != nil {
		if p, ok := r.params.GetByName(DefaultTimezoneParam); ok && p.Value != "" {
			return p.Value
		}
	}
	return DefaultTimezone
}

// Abbreviate returns the short zone name, e.g. "EST", of tz at the current
// time of the resolver clock. An unknown zone is replaced by DefaultTimezone.
func (r *Resolver) Abbreviate(tz string) string {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		if loc, err = time.LoadLocation(DefaultTimezone); err != nil {
			return ""
		}
	}
	return r.now().In(loc).Format("MST")
}
