package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/altinukshini/poi-admin/internal/auth"
)

// Environment variables read by Load.
const (
	EnvLocation     = "POI_ADMIN_LOCATION"
	EnvBaseURL      = "POI_ADMIN_BASE_URL"
	EnvLogFile      = "POI_ADMIN_LOG_FILE"
	EnvConfigDir    = "POI_ADMIN_CONFIG_DIR"
	EnvBrowser      = "POI_ADMIN_BROWSER"
	EnvUser         = "POI_ADMIN_USER"
	EnvPasswordHash = "POI_ADMIN_PASSWORD_HASH"
)

type Config struct {
	Location     string // starting location, e.g. "/?search-query=..."
	BaseURL      string // web console the location is opened against
	LogFile      string // "-" logs to stderr
	ConfigDir    string // holds bookmarks.yaml
	Browser      string // launcher command; empty uses the system default
	User         string
	PasswordHash string // bcrypt
}

// Load reads configuration from the environment, falling back to the values
// in envFile and then to defaults. A missing envFile is not an error.
func Load(envFile string) (Config, error) {
	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = m
		case !errors.Is(err, os.ErrNotExist):
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := dotenv[key]; v != "" {
			return v
		}
		return fallback
	}

	return Config{
		Location:     get(EnvLocation, "/"),
		BaseURL:      get(EnvBaseURL, ""),
		LogFile:      get(EnvLogFile, DefaultLogFile()),
		ConfigDir:    get(EnvConfigDir, DefaultConfigDir()),
		Browser:      get(EnvBrowser, ""),
		User:         get(EnvUser, ""),
		PasswordHash: get(EnvPasswordHash, ""),
	}, nil
}

func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "poi-admin", "poi-admin.log")
}

func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "poi-admin")
}

// Credentials returns the configured login.
func (c Config) Credentials() auth.Credentials {
	return auth.Credentials{User: c.User, PasswordHash: c.PasswordHash}
}

// OpenURL joins the base URL with location. It fails when no base URL is set.
func (c Config) OpenURL(location string) (string, error) {
	if c.BaseURL == "" {
		return "", fmt.Errorf("no base URL configured (set --base-url or %s)", EnvBaseURL)
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parse location: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}

func (c Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("base URL %q must be an absolute http(s) URL", c.BaseURL)
		}
	}
	if (c.User == "") != (c.PasswordHash == "") {
		return fmt.Errorf("%s and %s must be set together", EnvUser, EnvPasswordHash)
	}
	if c.ConfigDir == "" {
		return fmt.Errorf("config directory is required")
	}
	if _, err := url.Parse(c.Location); err != nil {
		return fmt.Errorf("invalid location %q: %w", c.Location, err)
	}
	return nil
}
