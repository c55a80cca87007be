package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// envKeys maps flag names to the .env keys that can set them.
var envKeys = map[string]string{
	"http":      "HTTP",
	"config":    "CONFIG",
	"geo-db":    "GEO_DB",
	"log-level": "LOG_LEVEL",
}

// loadDotEnv reads <dataDir>/.env. A missing file yields an empty map.
func loadDotEnv(dataDir string) (map[string]string, error) {
	env := make(map[string]string)
	path := filepath.Join(dataDir, ".env")
	content, err := os.ReadFile(path) //nolint:gosec // G304: path is constructed from dataDir flag
	if err != nil {
		if os.IsNotExist(err) {
			return env, nil
		}
		return nil, err
	}
	for line := range strings.SplitSeq(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if strings.HasPrefix(val, "'") || strings.HasSuffix(val, "'") {
			return nil, fmt.Errorf("single quotes are not supported in .env: %s", line)
		}
		if strings.HasPrefix(val, "\"") {
			unquoted, err := strconv.Unquote(val)
			if err != nil {
				return nil, fmt.Errorf("failed to unquote %s: %w", key, err)
			}
			val = unquoted
		}
		env[key] = val
	}
	return env, nil
}

// applyEnv overrides the flags that were not set explicitly with .env values.
func applyEnv(env map[string]string, set map[string]bool, flags map[string]*string) {
	for name, dst := range flags {
		if set[name] {
			continue
		}
		if v := env[envKeys[name]]; v != "" {
			*dst = v
		}
	}
}
