// Package main is the entry point for the geoloc server.
//
// geoloc resolves client IP addresses to locations using a MaxMind MMDB file
// and serves reference tables of timezones, countries and languages over a
// JSON HTTP API. Configuration is read from CLI flags, a .env file in the data
// directory and a YAML file holding parameters, trusted headers and rate
// limits.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/maruel/geoloc/internal/clientip"
	"github.com/maruel/geoloc/internal/config"
	"github.com/maruel/geoloc/internal/geodb"
	"github.com/maruel/geoloc/internal/location"
	"github.com/maruel/geoloc/internal/server"
	"github.com/maruel/geoloc/internal/server/dto"
	"github.com/maruel/geoloc/internal/server/handlers"
	"github.com/maruel/geoloc/internal/server/ratelimit"

	_ "time/tzdata"
)

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "geoloc: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	version := flag.Bool("version", false, "Print version and exit")
	httpAddr := flag.String("http", "localhost:8080", "Address to listen on (e.g., localhost:8080, :8080, 0.0.0.0:8080)")
	dataDir := flag.String("data-dir", "./data", "Data directory holding .env and the default config.yaml")
	configPath := flag.String("config", "", "Path to the YAML configuration (default: <data-dir>/config.yaml)")
	geoDB := flag.String("geo-db", "", "Path to MaxMind MMDB file in the GeoLite2-City layout")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	lookup := flag.String("lookup", "", "Print the location of this address as JSON and exit")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}

	if *version {
		printVersion(os.Stdout)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()
	ll := &slog.LevelVar{}
	slog.SetDefault(newLogger(os.Stderr, ll))

	env, err := loadDotEnv(*dataDir)
	if err != nil {
		return err
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	applyEnv(env, set, map[string]*string{
		"http":      httpAddr,
		"config":    configPath,
		"geo-db":    geoDB,
		"log-level": logLevel,
	})
	if err := setLevel(ll, *logLevel); err != nil {
		return err
	}
	if *configPath == "" {
		*configPath = filepath.Join(*dataDir, "config.yaml")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	extractor, err := cfg.Extractor()
	if err != nil {
		return err
	}
	params := config.NewStore(*configPath, cfg)

	// db stays a nil interface when no database is configured.
	var db location.Database
	var meta handlers.MetadataSource
	if *geoDB != "" {
		r, err := geodb.Open(*geoDB)
		if err != nil {
			return fmt.Errorf("failed to open geo database: %w", err)
		}
		defer func() { _ = r.Close() }()
		db, meta = r, r
		if m, err := r.Metadata(); err == nil {
			slog.InfoContext(ctx, "IP geolocation enabled", "db", *geoDB, "type", m.Type, "built", m.BuildTime)
		}
	} else if *lookup == "" {
		slog.WarnContext(ctx, "No geo database configured, every address resolves to defaults")
	}
	resolver := location.NewResolver(db, params, location.WithExtractor(extractor))

	if *lookup != "" {
		return printLookup(ctx, os.Stdout, resolver, *lookup)
	}

	if err := params.Watch(ctx); err != nil {
		slog.WarnContext(ctx, "Not watching configuration", "path", *configPath, "err", err)
	}
	if r, ok := db.(*geodb.Reader); ok {
		if err := r.Watch(ctx); err != nil {
			slog.WarnContext(ctx, "Not watching geo database", "db", *geoDB, "err", err)
		}
	}

	limits := ratelimit.NewConfig(cfg.RateLimits.LookupPerMin, cfg.RateLimits.ReferencePerMin)
	defer limits.Close()

	// Normalize addr: ":8080" becomes "localhost:8080"
	addr := *httpAddr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	buildVersion, _, _, _ := getBuildInfo()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.NewRouter(resolver, meta, limits, buildVersion),
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "Starting server", "addr", addr, "version", buildVersion, "sources", extractor.Sources())
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.InfoContext(ctx, "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		slog.InfoContext(ctx, "Server stopped")
	}
	return nil
}

// newLogger returns a tint logger writing to w. Empty and zero attributes are
// dropped, as is the time when running under systemd.
func newLogger(w *os.File, level slog.Leveler) *slog.Logger {
	underSystemd := os.Getenv("JOURNAL_STREAM") != ""
	return slog.New(tint.NewHandler(colorable.NewColorable(w), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(w.Fd()),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if underSystemd && a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			if isZeroAttr(a) {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func isZeroAttr(a slog.Attr) bool {
	switch t := a.Value.Any().(type) {
	case string:
		return t == ""
	case bool:
		return !t
	case int64:
		return t == 0
	case uint64:
		return t == 0
	case float64:
		return t == 0
	case time.Time:
		return t.IsZero()
	case time.Duration:
		return t == 0
	case nil:
		return true
	}
	return false
}

func setLevel(ll *slog.LevelVar, name string) error {
	switch name {
	case "debug":
		ll.Set(slog.LevelDebug)
	case "info":
		ll.Set(slog.LevelInfo)
	case "warn":
		ll.Set(slog.LevelWarn)
	case "error":
		ll.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level: %q", name)
	}
	return nil
}

// printLookup writes the location of addr as indented JSON.
func printLookup(ctx context.Context, w io.Writer, resolver *location.Resolver, addr string) error {
	if _, ok := location.ParseAddr(addr); !ok {
		return fmt.Errorf("invalid address %q", addr)
	}
	p := resolver.For(ctx, clientip.Request{}).Profile(addr)
	b, err := json.MarshalIndent(dto.NewLocationResponse(&p), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func printVersion(w io.Writer) {
	version, goVersion, revision, dirty := getBuildInfo()
	_, _ = fmt.Fprintf(w, "geoloc %s\n", version)
	_, _ = fmt.Fprintf(w, "  Go version: %s\n", goVersion)
	_, _ = fmt.Fprintf(w, "  Revision:   %s\n", revision)
	if dirty {
		_, _ = fmt.Fprintf(w, "  Modified:   true\n")
	}
}

func getBuildInfo() (version, goVersion, revision string, dirty bool) {
	version = "unknown"
	goVersion = "unknown"
	revision = "unknown"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	version = info.Main.Version
	if version == "" || version == "(devel)" {
		version = "dev"
	}
	goVersion = info.GoVersion
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	return
}
