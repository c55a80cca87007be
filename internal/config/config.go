// Package config loads the service configuration and serves its named
// parameters.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/maruel/geoloc/internal/clientip"
	"github.com/maruel/geoloc/internal/location"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the content of the configuration file.
type Config struct {
	// Parameters are named values, e.g. default_timezone.
	Parameters map[string]string `yaml:"parameters"`

	// TrustedHeaders is the ordered list of headers read for the client
	// address. The remote peer address is always consulted last. Nil means
	// clientip.DefaultHeaders; an empty list trusts no header.
	TrustedHeaders []string `yaml:"trusted_headers"`

	// RateLimits defines rate limiting configuration.
	RateLimits RateLimits `yaml:"rate_limits"`
}

// RateLimits defines rate limiting configuration (requests per minute).
type RateLimits struct {
	// LookupPerMin limits location lookups per client IP. 0 means unlimited.
	LookupPerMin int `yaml:"lookup_per_min"`

	// ReferencePerMin limits reference data reads per client IP. 0 means
	// unlimited.
	ReferencePerMin int `yaml:"reference_per_min"`
}

// DefaultRateLimits returns the default rate limits.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		LookupPerMin:    600,
		ReferencePerMin: 6000,
	}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Parameters: map[string]string{},
		RateLimits: DefaultRateLimits(),
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.RateLimits.LookupPerMin < 0 {
		return fmt.Errorf("%w: lookup_per_min must be non-negative", ErrInvalid)
	}
	if c.RateLimits.ReferencePerMin < 0 {
		return fmt.Errorf("%w: reference_per_min must be non-negative", ErrInvalid)
	}
	if _, err := clientip.New(c.TrustedHeaders); err != nil {
		return fmt.Errorf("%w: trusted_headers: %w", ErrInvalid, err)
	}
	return nil
}

// Extractor returns the client address extractor for TrustedHeaders.
func (c *Config) Extractor() (*clientip.Extractor, error) {
	return clientip.New(c.TrustedHeaders)
}

// Parse decodes and validates a YAML document. Unknown keys are rejected.
func Parse(b []byte) (*Config, error) {
	c := Default()
	d := yaml.NewDecoder(bytes.NewReader(b))
	d.KnownFields(true)
	if err := d.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Parameters == nil {
		c.Parameters = map[string]string{}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the file at path. A missing file yields Default.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path) //nolint:gosec // G304: path comes from a flag
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Store serves the parameters of a configuration file and follows changes to
// it. It implements location.ParamStore.
type Store struct {
	path string

	mu     sync.RWMutex
	params map[string]string
}

// NewStore returns a Store initialized from cfg. path may be empty for a
// store that never reloads.
func NewStore(path string, cfg *Config) *Store {
	s := &Store{path: path}
	s.set(cfg.Parameters)
	return s
}

func (s *Store) set(params map[string]string) {
	cp := make(map[string]string, len(params))
	for k, v := range params {
		cp[k] = v
	}
	s.mu.Lock()
	s.params = cp
	s.mu.Unlock()
}

// GetByName returns the parameter called name.
func (s *Store) GetByName(name string) (location.Parameter, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.params[name]
	if !ok {
		return location.Parameter{}, false
	}
	return location.Parameter{Name: name, Value: v}, true
}

// Reload rereads the file. On error, including a missing file, the current
// parameters are kept.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	cfg, err := Parse(b)
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}
	s.set(cfg.Parameters)
	return nil
}

// Watch reloads parameters whenever the file changes, until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Editors replace files with renames; watch the directory.
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		_ = w.Close()
		return err
	}
	name := filepath.Clean(s.path)
	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if !triggersReload(event, name) {
					continue
				}
				if err := s.Reload(); err != nil {
					slog.WarnContext(ctx, "Keeping previous parameters", "path", s.path, "err", err)
					continue
				}
				slog.InfoContext(ctx, "Reloaded parameters", "path", s.path)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.WarnContext(ctx, "Error watching configuration", "err", err)
			}
		}
	}()
	return nil
}

// triggersReload reports whether event means new content for the file name.
// Removes and renames are followed by a Create once the new content is in
// place.
func triggersReload(event fsnotify.Event, name string) bool {
	if filepath.Clean(event.Name) != name {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
