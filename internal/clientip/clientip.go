// Package clientip extracts the candidate client address from request
// metadata using an ordered list of sources.
//
// No header is validated. The first populated source wins, so the order of
// Sources is the trust hierarchy of the deployment.
package clientip

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Source is one place a client address can come from: either a request
// header or the transport-level remote peer address.
type Source struct {
	// Header is the canonical header name. Empty for the remote peer source.
	Header string
}

// RemoteAddr is the transport-level peer address source.
var RemoteAddr = Source{}

// String implements fmt.Stringer.
func (s Source) String() string {
	if s.Header == "" {
		return "RemoteAddr"
	}
	return s.Header
}

// HeaderSource returns the Source reading header name.
func HeaderSource(name string) Source {
	return Source{Header: http.CanonicalHeaderKey(name)}
}

// DefaultHeaders is the header priority used when none is configured. The CDN
// header comes first, generic proxy headers last.
var DefaultHeaders = []string{
	"CF-Connecting-IP",
	"Client-IP",
	"X-Forwarded-For",
	"X-Forwarded",
	"Forwarded-For",
	"Forwarded",
}

// Request is the request metadata an Extractor reads.
type Request struct {
	Header     http.Header
	RemoteAddr string
}

// FromHTTP returns the metadata of r.
func FromHTTP(r *http.Request) Request {
	return Request{Header: r.Header, RemoteAddr: r.RemoteAddr}
}

// Extractor returns the first populated source in priority order.
type Extractor struct {
	sources []Source
}

// New returns an Extractor reading headers in the given order, followed by the
// remote peer address. A nil headers slice uses DefaultHeaders.
func New(headers []string) (*Extractor, error) {
	if headers == nil {
		headers = DefaultHeaders
	}
	seen := make(map[string]bool, len(headers))
	sources := make([]Source, 0, len(headers)+1)
	for _, h := range headers {
		src := HeaderSource(strings.TrimSpace(h))
		if src.Header == "" {
			return nil, errors.New("empty header name in priority list")
		}
		if seen[src.Header] {
			return nil, fmt.Errorf("duplicate header %q in priority list", src.Header)
		}
		seen[src.Header] = true
		sources = append(sources, src)
	}
	sources = append(sources, RemoteAddr)
	return &Extractor{sources: sources}, nil
}

// Default returns an Extractor using DefaultHeaders.
func Default() *Extractor {
	e, err := New(nil)
	if err != nil {
		panic(err)
	}
	return e
}

// Sources returns a copy of the priority list.
func (e *Extractor) Sources() []Source {
	out := make([]Source, len(e.sources))
	copy(out, e.sources)
	return out
}

// Extract returns the first non-empty source value and the source it came
// from. It returns "" and RemoteAddr when nothing is populated.
func (e *Extractor) Extract(req Request) (string, Source) {
	for _, src := range e.sources {
		if src.Header == "" {
			if v := stripPort(req.RemoteAddr); v != "" {
				return v, src
			}
			continue
		}
		// Header.Get only returns the first value, which is what a single
		// server variable would hold.
		if v := req.Header.Get(src.Header); v != "" {
			return v, src
		}
	}
	return "", RemoteAddr
}

// Address returns the extracted client address only.
func (e *Extractor) Address(req Request) string {
	v, _ := e.Extract(req)
	return v
}

// stripPort removes the port from a transport address.
func stripPort(addr string) string {
	// Handle IPv6 addresses like [::1]:8080
	if strings.HasPrefix(addr, "[") {
		if host, _, found := strings.Cut(addr, "]:"); found {
			return host[1:]
		}
		return strings.Trim(addr, "[]")
	}
	// A bare IPv6 literal has several colons and no port.
	if strings.Count(addr, ":") > 1 {
		return addr
	}
	if host, _, found := strings.Cut(addr, ":"); found {
		return host
	}
	return addr
}
