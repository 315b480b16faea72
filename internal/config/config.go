package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	defaultJSONPath   = "terminal_farmer_save.json"
	defaultSQLitePath = "terminal_farmer.db"
	defaultLogFile    = "terminal-farmer.log"
	DefaultSaveSlot   = "default"
)

// Config holds the application configuration
type Config struct {
	SaveBackend string `validate:"oneof=json sqlite"`
	SavePath    string `validate:"required"`
	SaveSlot    string `validate:"required,max=64,excludesall=/\\"`
	BalanceFile string
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=text json"`
	LogFile     string
	Seed        int64
}

// Load reads configuration from the environment. A .env file in the working
// directory is used when present.
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		SaveBackend: getEnv("FARMER_SAVE_BACKEND", BackendJSON),
		BalanceFile: getEnv("FARMER_BALANCE_FILE", ""),
		SaveSlot:    getEnv("FARMER_SAVE_SLOT", DefaultSaveSlot),
		LogLevel:    strings.ToLower(getEnv("FARMER_LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("FARMER_LOG_FORMAT", "text")),
		LogFile:     getEnv("FARMER_LOG_FILE", defaultLogFile),
	}
	cfg.SavePath = getEnv("FARMER_SAVE_PATH", cfg.defaultSavePath())

	seed, err := strconv.ParseInt(getEnv("FARMER_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FARMER_SEED value: %w", err)
	}
	cfg.Seed = seed

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration after flags have been applied.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SetBackend switches the save backend. A save path still at the old
// backend's default follows to the new default.
func (c *Config) SetBackend(kind string) {
	usingDefault := c.SavePath == c.defaultSavePath()
	c.SaveBackend = kind
	if usingDefault {
		c.SavePath = c.defaultSavePath()
	}
}

func (c *Config) defaultSavePath() string {
	if c.SaveBackend == BackendSQLite {
		return defaultSQLitePath
	}
	return defaultJSONPath
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
