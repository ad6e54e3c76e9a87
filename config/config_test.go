package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{EnvPort, EnvDataPath, EnvAllowGaps, EnvRateLimit, EnvRateWindow, EnvGinMode}

// clearEnv unsets every config variable for the duration of the test
func clearEnv(t *testing.T) {
	for _, key := range allKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestFromEnv(t *testing.T) {
	testData := map[string]struct {
		env      map[string]string
		expected *Config
		err      error
	}{
		"defaults": {
			expected: NewDefaultConfig(),
		},
		"all set": {
			env: map[string]string{
				EnvPort:       "9000",
				EnvDataPath:   "/data/climate.csv",
				EnvAllowGaps:  "true",
				EnvRateLimit:  "10",
				EnvRateWindow: "30s",
				EnvGinMode:    "debug",
			},
			expected: &Config{
				Port:       9000,
				DataPath:   "/data/climate.csv",
				AllowGaps:  true,
				RateLimit:  10,
				RateWindow: 30 * time.Second,
				GinMode:    "debug",
			},
		},
		"rate limit disabled": {
			env: map[string]string{
				EnvRateLimit:  "0",
				EnvRateWindow: "0s",
			},
			expected: &Config{
				Port:       DefaultPort,
				DataPath:   DefaultDataPath,
				RateLimit:  0,
				RateWindow: 0,
				GinMode:    DefaultGinMode,
			},
		},
		"bad port": {
			env: map[string]string{EnvPort: "eighty"},
			err: ErrInvalidValue,
		},
		"port out of range": {
			env: map[string]string{EnvPort: "70000"},
			err: ErrInvalidValue,
		},
		"bad bool": {
			env: map[string]string{EnvAllowGaps: "sometimes"},
			err: ErrInvalidValue,
		},
		"bad window": {
			env: map[string]string{EnvRateWindow: "soon"},
			err: ErrInvalidValue,
		},
		"unknown gin mode": {
			env: map[string]string{EnvGinMode: "verbose"},
			err: ErrInvalidValue,
		},
		"negative limit": {
			env: map[string]string{EnvRateLimit: "-1"},
			err: ErrInvalidValue,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range td.env {
				t.Setenv(k, v)
			}

			cfg, err := FromEnv()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.Nil(t, os.WriteFile(envFile, []byte("PORT=8123\nFORECAST_DATA_PATH=from_file.csv\n"), 0o600))

	// variables already set take precedence over the file
	t.Setenv(EnvDataPath, "from_env.csv")

	cfg, err := Load(envFile, filepath.Join(dir, "missing.env"))
	require.Nil(t, err)
	assert.Equal(t, 8123, cfg.Port)
	assert.Equal(t, "from_env.csv", cfg.DataPath)
	assert.Equal(t, ":8123", cfg.Addr())
}
