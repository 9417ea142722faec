package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty dir and clears every PLANTRACK variable.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{EnvConfigFile, "PLANTRACK_STORE", "PLANTRACK_SEED_FILE", "PLANTRACK_LOCALE", "PLANTRACK_TIMEZONE", "PLANTRACK_LOG_USE_CASES"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return home
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	writeFile(t, path, "store: SQLite\nlocale: en\ntimezone: UTC\nlog_use_cases: true\nseed_file: /tmp/seed.yaml\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, domain.LocaleEN, cfg.Locale)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, "/tmp/seed.yaml", cfg.SeedFile)
}

func TestLoad_HomeFileAndEnvOverride(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".plantrack", "config.yaml"), "locale: en\nstore: sqlite\n")
	t.Setenv("PLANTRACK_STORE", "memory")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, domain.LocaleEN, cfg.Locale, "from the home file")
	assert.Equal(t, StoreMemory, cfg.Store, "environment wins over the file")
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "other.yaml")
	writeFile(t, path, "timezone: Europe/Madrid\n")
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Madrid", cfg.Timezone)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("PLANTRACK_STORE", "postgres")
	t.Setenv("PLANTRACK_LOCALE", "fr")
	t.Setenv("PLANTRACK_TIMEZONE", "Mars/Olympus")

	_, err := Load("")
	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("store"))
	assert.True(t, verr.Has("locale"))
	assert.True(t, verr.Has("timezone"))
}
