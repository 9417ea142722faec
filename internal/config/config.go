// Package config loads runtime settings: defaults, then an optional YAML
// file, then PLANTRACK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/spf13/viper"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	// EnvPrefix is prepended to every key for environment overrides, e.g.
	// PLANTRACK_LOCALE.
	EnvPrefix = "PLANTRACK"
	// EnvConfigFile names the config file when --config is not given.
	EnvConfigFile = "PLANTRACK_CONFIG"
)

// Config holds all settings. Both stores keep data in process memory only.
type Config struct {
	Store       string `mapstructure:"store"`
	SeedFile    string `mapstructure:"seed_file"`
	Locale      string `mapstructure:"locale"`
	Timezone    string `mapstructure:"timezone"`
	LogUseCases bool   `mapstructure:"log_use_cases"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Store:    StoreMemory,
		Locale:   domain.LocaleES,
		Timezone: "Local",
	}
}

// DefaultPath is ~/.plantrack/config.yaml, or "" without a home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".plantrack", "config.yaml")
}

// Load resolves the config file (explicit path, then $PLANTRACK_CONFIG, then
// DefaultPath when it exists) and layers the environment on top. An explicit
// file that does not exist is an error; a missing default file is not.
func Load(path string) (Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetDefault("store", def.Store)
	v.SetDefault("seed_file", def.SeedFile)
	v.SetDefault("locale", def.Locale)
	v.SetDefault("timezone", def.Timezone)
	v.SetDefault("log_use_cases", def.LogUseCases)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		path, explicit = DefaultPath(), false
	}

	if path != "" {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil:
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		case explicit || !errors.Is(statErr, os.ErrNotExist):
			return Config{}, fmt.Errorf("config file %s: %w", path, statErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.Locale = strings.ToLower(strings.TrimSpace(cfg.Locale))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	verr := &domain.ValidationError{}
	if c.Store != StoreMemory && c.Store != StoreSQLite {
		verr.Add("store", fmt.Sprintf("must be %q or %q, got %q", StoreMemory, StoreSQLite, c.Store))
	}
	if c.Locale != domain.LocaleES && c.Locale != domain.LocaleEN {
		verr.Add("locale", fmt.Sprintf("must be %q or %q, got %q", domain.LocaleES, domain.LocaleEN, c.Locale))
	}
	if _, err := c.Location(); err != nil {
		verr.Add("timezone", err.Error())
	}
	return verr.OrNil()
}

// Location resolves Timezone. "" and "Local" mean the system zone.
func (c Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.Timezone)
	}
}
