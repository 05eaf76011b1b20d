package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables recognised by sanchai
const (
	EnvBackendURL = "SANCHAI_BACKEND_URL"
	EnvTimeout    = "SANCHAI_TIMEOUT_SECONDS"
	EnvLogFile    = "SANCHAI_LOG_FILE"
)

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none are
// given) into the process environment. Variables that are already set win.
// Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// ApplyEnv overrides cfg with values from the environment
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv(EnvBackendURL); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	return cfg
}

// Resolve loads .env, the config file and environment overrides, in that order
func Resolve() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return DefaultConfig(), err
	}

	cfg, err := LoadConfig()
	return ApplyEnv(cfg), err
}
