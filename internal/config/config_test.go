package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"FARMER_SAVE_BACKEND",
	"FARMER_SAVE_PATH",
	"FARMER_BALANCE_FILE",
	"FARMER_LOG_LEVEL",
	"FARMER_LOG_FORMAT",
	"FARMER_LOG_FILE",
	"FARMER_SEED",
	"FARMER_SAVE_SLOT",
}

// clearEnvVars unsets every variable Load reads and runs the test from an
// empty directory so no stray .env file is picked up.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Chdir(t.TempDir())
}

func TestLoad(t *testing.T) {
	t.Run("uses defaults when nothing is set", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, BackendJSON, cfg.SaveBackend)
		assert.Equal(t, "terminal_farmer_save.json", cfg.SavePath)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "terminal-farmer.log", cfg.LogFile)
		assert.Zero(t, cfg.Seed)
		assert.Empty(t, cfg.BalanceFile)
		assert.Equal(t, DefaultSaveSlot, cfg.SaveSlot)
	})

	t.Run("log settings are case-insensitive", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("FARMER_LOG_LEVEL", "DEBUG")
		t.Setenv("FARMER_LOG_FORMAT", "Json")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("reads the save slot", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("FARMER_SAVE_SLOT", "winter-run")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "winter-run", cfg.SaveSlot)
	})

	t.Run("sqlite backend gets its own default path", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("FARMER_SAVE_BACKEND", "sqlite")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "terminal_farmer.db", cfg.SavePath)
	})

	t.Run("reads environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("FARMER_SAVE_PATH", "/tmp/farm.json")
		t.Setenv("FARMER_BALANCE_FILE", "balance.yaml")
		t.Setenv("FARMER_LOG_LEVEL", "debug")
		t.Setenv("FARMER_LOG_FORMAT", "json")
		t.Setenv("FARMER_LOG_FILE", "")
		t.Setenv("FARMER_SEED", "1234")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "/tmp/farm.json", cfg.SavePath)
		assert.Equal(t, "balance.yaml", cfg.BalanceFile)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Empty(t, cfg.LogFile)
		assert.Equal(t, int64(1234), cfg.Seed)
	})

	t.Run("reads a .env file", func(t *testing.T) {
		clearEnvVars(t)
		require.NoError(t, os.WriteFile(filepath.Join(".", ".env"), []byte("FARMER_SEED=99\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("FARMER_SEED") })

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, int64(99), cfg.Seed)
	})
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string][2]string{
		"unknown backend": {"FARMER_SAVE_BACKEND", "postgres"},
		"unknown level":   {"FARMER_LOG_LEVEL", "loud"},
		"unknown format":  {"FARMER_LOG_FORMAT", "xml"},
		"bad seed":        {"FARMER_SEED", "seven"},
		"empty save path": {"FARMER_SAVE_PATH", ""},
		"empty save slot": {"FARMER_SAVE_SLOT", ""},
		"slot with slash": {"FARMER_SAVE_SLOT", "a/b"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSetBackend(t *testing.T) {
	cfg := &Config{SaveBackend: BackendJSON, SavePath: defaultJSONPath}
	cfg.SetBackend(BackendSQLite)
	assert.Equal(t, defaultSQLitePath, cfg.SavePath)

	cfg = &Config{SaveBackend: BackendJSON, SavePath: "mine.json"}
	cfg.SetBackend(BackendSQLite)
	assert.Equal(t, BackendSQLite, cfg.SaveBackend)
	assert.Equal(t, "mine.json", cfg.SavePath)
}
