package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// appName is the application name used for directories and display.
const appName = "gostac"

// Config holds the settings read from the user's config file. Every field
// has a working default; the file is optional.
type Config struct {
	// CacheDir overrides the fetched-document cache directory.
	CacheDir string `toml:"cache_dir"`
	// CacheTTLHours bounds how long fetched documents stay cached.
	CacheTTLHours int `toml:"cache_ttl_hours"`
	// CatalogType is the default save style: ABSOLUTE_PUBLISHED,
	// RELATIVE_PUBLISHED or SELF_CONTAINED.
	CatalogType string `toml:"catalog_type"`
	// ServeAddr is the default listen address for the serve command.
	ServeAddr string `toml:"serve_addr"`
	// RedisAddr, when set, switches the document cache to Redis.
	RedisAddr string `toml:"redis_addr"`
}

func defaultConfig() Config {
	return Config{
		CacheTTLHours: 24,
		CatalogType:   "SELF_CONTAINED",
		ServeAddr:     "localhost:8080",
	}
}

// loadConfig reads ~/.config/gostac/config.toml, falling back to defaults
// when the file is absent. A malformed file is an error; silently ignoring
// it would hide typos.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheTTL returns the configured cache TTL as a duration.
func (c Config) cacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// cacheDir returns the cache directory: the configured one, or the XDG
// standard (~/.cache/gostac/).
func (c Config) cacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
