// Defines rate limit tiers and routing rules.

package ratelimit

import (
	"strings"
	"time"
)

// Tier defines a rate limit tier with its limiter. Buckets are keyed by
// client IP.
type Tier struct {
	Name    string
	Limiter *Limiter
}

// Config holds rate limiters for different tiers. A nil Limiter disables its
// tier.
type Config struct {
	Lookup    Tier
	Reference Tier
}

// NewConfig creates a Config from per-minute limits. A limit of 0 disables
// the tier. Bursts are a tenth of the per-minute rate, at least 1.
func NewConfig(lookupPerMin, referencePerMin int) *Config {
	return &Config{
		Lookup:    newTier("lookup", lookupPerMin),
		Reference: newTier("reference", referencePerMin),
	}
}

func newTier(name string, perMin int) Tier {
	t := Tier{Name: name}
	if perMin > 0 {
		t.Limiter = NewLimiter(perMin, time.Minute, max(perMin/10, 1))
	}
	return t
}

// Match returns the tier for a request.
// Returns nil for paths that should not be rate limited.
func (c *Config) Match(method, path string) *Tier {
	if method != "GET" && method != "HEAD" {
		return nil
	}
	var t *Tier
	switch {
	case path == "/api/location" || strings.HasPrefix(path, "/api/location/"):
		t = &c.Lookup
	case strings.HasPrefix(path, "/api/reference/"), strings.HasPrefix(path, "/api/schema/"):
		t = &c.Reference
	default:
		return nil
	}
	if t.Limiter == nil {
		return nil
	}
	return t
}

// Close stops all limiter cleanup goroutines.
func (c *Config) Close() {
	for _, t := range []*Tier{&c.Lookup, &c.Reference} {
		if t.Limiter != nil {
			t.Limiter.Close()
		}
	}
}
