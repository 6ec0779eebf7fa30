// Package config resolves data locations and runtime settings from .env,
// the environment and command-line flags, in that order of precedence
// (flags win).
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/rendis/redbook/internal/engine/catalog"
	"github.com/rendis/redbook/internal/engine/fetch"
)

const (
	DefaultSpecies   = "data/species.json"
	DefaultProvinces = "data/bulgaria-provinces.json"
	DefaultTimeout   = 30 * time.Second
)

type Config struct {
	Sources catalog.Sources
	Fetch   fetch.Options
	LogFile string
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	// A missing .env is fine; a malformed one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading .env: %w", err)
	}

	cfg := Config{
		Sources: catalog.Sources{
			Species:      envOr("REDBOOK_SPECIES", DefaultSpecies),
			Provinces:    envOr("REDBOOK_PROVINCES", DefaultProvinces),
			Names:        os.Getenv("REDBOOK_NAMES"),
			NameProperty: os.Getenv("REDBOOK_NAME_PROPERTY"),
		},
		Fetch: fetch.Options{
			ProxyURL: os.Getenv("REDBOOK_PROXY"),
			Timeout:  DefaultTimeout,
			S3: fetch.S3Config{
				Region:          os.Getenv("REDBOOK_S3_REGION"),
				Endpoint:        os.Getenv("REDBOOK_S3_ENDPOINT"),
				PathStyle:       strings.EqualFold(os.Getenv("REDBOOK_S3_PATH_STYLE"), "true"),
				AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
				SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			},
		},
		LogFile: envOr("REDBOOK_LOG_FILE", defaultLogFile()),
	}

	if v := os.Getenv("REDBOOK_TIMEOUT"); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return Config{}, fmt.Errorf("REDBOOK_TIMEOUT: %w", err)
		}
		cfg.Fetch.Timeout = d
	}

	return cfg, nil
}

// RegisterFlags binds the shared data flags to fs with the current values as
// defaults, so flags override the environment.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Sources.Species, "species", c.Sources.Species, "Species JSON (path, http(s):// or s3:// URL, or .db snapshot)")
	fs.StringVar(&c.Sources.Provinces, "provinces", c.Sources.Provinces, "Province GeoJSON (path, http(s):// or s3:// URL)")
	fs.StringVar(&c.Sources.Names, "names", c.Sources.Names, "Optional JSON name table replacing the built-in one")
	fs.StringVar(&c.Sources.NameProperty, "name-property", c.Sources.NameProperty, "GeoJSON property with the province name (default NAME_1)")
	fs.StringVar(&c.Fetch.ProxyURL, "proxy", c.Fetch.ProxyURL, "HTTP/SOCKS5 proxy URL")
	fs.DurationVar(&c.Fetch.Timeout, "timeout", c.Fetch.Timeout, "Download timeout")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "Log file used while the TUI is running")
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// parseTimeout accepts a Go duration or a plain number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	return time.Duration(secs) * time.Second, nil
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "redbook.log"
	}
	return filepath.Join(dir, "redbook", "redbook.log")
}
