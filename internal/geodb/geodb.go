// Package geodb provides IP-to-location lookups using MaxMind MMDB files in
// the GeoLite2-City layout.
package geodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/oschwald/maxminddb-golang/v2"

	"github.com/maruel/geoloc/internal/location"
)

var (
	// ErrInvalidIP is returned for an invalid or zero address.
	ErrInvalidIP = errors.New("invalid ip")
	// ErrNotFound is returned when the database has no network for the address.
	ErrNotFound = errors.New("address not found")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("database closed")
)

// locale is the names map key used for every name.
const locale = "en"

// Reader resolves addresses against an MMDB file. It is safe for concurrent
// use and can be reloaded in place.
type Reader struct {
	path string

	mu     sync.RWMutex
	reader *maxminddb.Reader
}

// Open opens an MMDB file.
func Open(path string) (*Reader, error) {
	r, err := maxminddb.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{path: path, reader: r}, nil
}

// Close releases the MMDB reader resources.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reader == nil {
		return nil
	}
	err := r.reader.Close()
	r.reader = nil
	return err
}

// cityRecord is the subset of the GeoLite2-City schema used.
type cityRecord struct {
	City struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"city"`
	Subdivisions []subdivision `maxminddb:"subdivisions"`
	Postal struct {
		Code string `maxminddb:"code"`
	} `maxminddb:"postal"`
	Country struct {
		ISOCode string            `maxminddb:"iso_code"`
		Names   map[string]string `maxminddb:"names"`
	} `maxminddb:"country"`
	Location struct {
		Latitude  *float64 `maxminddb:"latitude"`
		Longitude *float64 `maxminddb:"longitude"`
		TimeZone  string   `maxminddb:"time_zone"`
	} `maxminddb:"location"`
}

type subdivision struct {
	ISOCode string            `maxminddb:"iso_code"`
	Names   map[string]string `maxminddb:"names"`
}

// Lookup returns the location of ip. It implements location.Database.
func (r *Reader) Lookup(ip netip.Addr) (*location.Record, error) {
	if !ip.IsValid() {
		return nil, ErrInvalidIP
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.reader == nil {
		return nil, ErrClosed
	}
	res := r.reader.Lookup(ip)
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("lookup %s: %w", ip, err)
	}
	if !res.Found() {
		return nil, ErrNotFound
	}
	var rec cityRecord
	if err := res.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ip, err)
	}
	return rec.toLocation(), nil
}

func (c *cityRecord) toLocation() *location.Record {
	out := &location.Record{
		CityName:       c.City.Names[locale],
		PostalCode:     c.Postal.Code,
		CountryName:    c.Country.Names[locale],
		CountryISOCode: c.Country.ISOCode,
		TimezoneID:     c.Location.TimeZone,
		Latitude:       c.Location.Latitude,
		Longitude:      c.Location.Longitude,
	}
	// The most specific subdivision is listed last.
	if n := len(c.Subdivisions); n > 0 {
		sub := c.Subdivisions[n-1]
		out.SubdivisionName = sub.Names[locale]
		out.SubdivisionISOCode = sub.ISOCode
	}
	return out
}

// Metadata describes the loaded database.
type Metadata struct {
	Type      string
	BuildTime time.Time
	Nodes     uint
}

// Metadata returns the metadata of the loaded database.
func (r *Reader) Metadata() (Metadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.reader == nil {
		return Metadata{}, ErrClosed
	}
	m := r.reader.Metadata
	return Metadata{
		Type:      m.DatabaseType,
		BuildTime: time.Unix(int64(m.BuildEpoch), 0).UTC(), //nolint:gosec // G115: epoch fits in int64
		Nodes:     m.NodeCount,
	}, nil
}

// Reload reopens the database file and swaps it in. Lookups in flight finish
// against the previous reader.
func (r *Reader) Reload() error {
	if r.path == "" {
		return errors.New("reload needs a file-backed database")
	}
	next, err := maxminddb.Open(r.path)
	if err != nil {
		return err
	}
	r.mu.Lock()
	prev := r.reader
	r.reader = next
	r.mu.Unlock()
	if prev != nil {
		return prev.Close()
	}
	return nil
}

// Watch reloads the database whenever its file is written or replaced, until
// ctx is done. The parent directory is watched so that atomic renames by
// database updaters are seen.
func (r *Reader) Watch(ctx context.Context) error {
	if r.path == "" {
		return errors.New("watch needs a file-backed database")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(r.path)); err != nil {
		_ = w.Close()
		return err
	}
	name := filepath.Clean(r.path)
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
				if filepath.Clean(event.Name) != name || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					continue
				}
				if err := r.Reload(); err != nil {
					slog.WarnContext(ctx, "Failed to reload geo database", "db", r.path, "err", err)
					continue
				}
				slog.InfoContext(ctx, "Reloaded geo database", "db", r.path)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.WarnContext(ctx, "Error watching geo database", "err", err)
			}
		}
	}()
	return nil
}
