// Package config reads the service settings from the environment and an optional .env file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvPort       = "PORT"
	EnvDataPath   = "FORECAST_DATA_PATH"
	EnvAllowGaps  = "FORECAST_ALLOW_GAPS"
	EnvRateLimit  = "FORECAST_RATE_LIMIT"
	EnvRateWindow = "FORECAST_RATE_WINDOW"
	EnvGinMode    = "GIN_MODE"
)

const (
	DefaultPort       = 8000
	DefaultDataPath   = "daily_climate.csv"
	DefaultRateLimit  = 60
	DefaultRateWindow = time.Minute
	DefaultGinMode    = "release"
)

var (
	ErrInvalidValue = errors.New("invalid configuration value")
	ErrEnvFile      = errors.New("unable to load env file")
)

// Config holds the service settings
type Config struct {
	Port     int    `json:"port"`
	DataPath string `json:"data_path"`

	// AllowGaps accepts calendar gaps in the climate records
	AllowGaps bool `json:"allow_gaps"`

	// RateLimit is the number of requests per client IP allowed every RateWindow. Zero
	// disables rate limiting.
	RateLimit  int           `json:"rate_limit"`
	RateWindow time.Duration `json:"rate_window"`

	GinMode string `json:"gin_mode"`
}

// NewDefaultConfig returns the settings used when nothing is set in the environment
func NewDefaultConfig() *Config {
	return &Config{
		Port:       DefaultPort,
		DataPath:   DefaultDataPath,
		RateLimit:  DefaultRateLimit,
		RateWindow: DefaultRateWindow,
		GinMode:    DefaultGinMode,
	}
}

// Load reads the env files, defaulting to .env, without overriding variables that are
// already set. Missing env files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%s, %s, %w", file, err.Error(), ErrEnvFile)
		}
	}
	return FromEnv()
}

// FromEnv builds the config from environment variables falling back to defaults
func FromEnv() (*Config, error) {
	cfg := NewDefaultConfig()

	var err error
	if cfg.Port, err = envInt(EnvPort, cfg.Port); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv(EnvDataPath); ok && v != "" {
		cfg.DataPath = v
	}
	if cfg.AllowGaps, err = envBool(EnvAllowGaps, cfg.AllowGaps); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = envInt(EnvRateLimit, cfg.RateLimit); err != nil {
		return nil, err
	}
	if cfg.RateWindow, err = envDuration(EnvRateWindow, cfg.RateWindow); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv(EnvGinMode); ok && v != "" {
		cfg.GinMode = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges of the settings
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%s=%d, %w", EnvPort, c.Port, ErrInvalidValue)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%s=%d, %w", EnvRateLimit, c.RateLimit, ErrInvalidValue)
	}
	if c.RateLimit > 0 && c.RateWindow <= 0 {
		return fmt.Errorf("%s=%s, %w", EnvRateWindow, c.RateWindow, ErrInvalidValue)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%s=%q, %w", EnvGinMode, c.GinMode, ErrInvalidValue)
	}
	return nil
}

// Addr is the listen address of the server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func envInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q, %w", key, v, ErrInvalidValue)
	}
	return i, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s=%q, %w", key, v, ErrInvalidValue)
	}
	return b, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q, %w", key, v, ErrInvalidValue)
	}
	return d, nil
}
