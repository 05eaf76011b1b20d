// Package config handles configuration for sanchai.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sanchai/sanchai/internal/history"
	"github.com/sanchai/sanchai/internal/models"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	// BackendURL is the base URL of the chat collaborator.
	BackendURL string `json:"backend_url"`
	// TimeoutSeconds bounds each collaborator request. 0 waits indefinitely.
	TimeoutSeconds  int            `json:"timeout_seconds"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	TUITheme        string         `json:"tui_theme,omitempty"`
	TranscriptDir   string         `json:"transcript_dir,omitempty"`
	// TranscriptFormat is "markdown" or "json". Empty means markdown.
	TranscriptFormat string         `json:"transcript_format,omitempty"`
	LogFile          string         `json:"log_file,omitempty"`
	Markdown         MarkdownConfig `json:"markdown,omitempty"`
}

// Timeout returns the request timeout as a duration
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		BackendURL:       models.DefaultBackendURL,
		TimeoutSeconds:   0,
		CopyToClipboard:  false,
		TUITheme:         "tokyonight",
		TranscriptDir:    filepath.Join(homeDir, ".sanchai", "transcripts"),
		TranscriptFormat: string(history.ExportFormatMarkdown),
		Markdown:         DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".sanchai"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetTranscriptDir returns the transcript directory from config, creating it if necessary
func GetTranscriptDir(cfg Config) (string, error) {
	dir := cfg.TranscriptDir
	if dir == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(configDir, "transcripts")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create transcript directory: %w", err)
	}

	return dir, nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// settable maps the keys accepted by Set to their setters
var settable = map[string]func(*Config, string) error{
	"backend_url": func(c *Config, v string) error {
		v = strings.TrimSpace(v)
		if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
			return fmt.Errorf("backend_url must start with http:// or https://")
		}
		c.BackendURL = strings.TrimRight(v, "/")
		return nil
	},
	"timeout_seconds": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("timeout_seconds must be a non-negative integer")
		}
		c.TimeoutSeconds = n
		return nil
	},
	"copy_to_clipboard": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("copy_to_clipboard must be true or false")
		}
		c.CopyToClipboard = b
		return nil
	},
	"tui_theme": func(c *Config, v string) error {
		c.TUITheme = v
		return nil
	},
	"transcript_dir": func(c *Config, v string) error {
		c.TranscriptDir = v
		return nil
	},
	"transcript_format": func(c *Config, v string) error {
		format, err := history.ParseExportFormat(v)
		if err != nil {
			return err
		}
		c.TranscriptFormat = string(format)
		return nil
	},
	"log_file": func(c *Config, v string) error {
		c.LogFile = v
		return nil
	},
	"markdown.style": func(c *Config, v string) error {
		c.Markdown.Style = v
		return nil
	},
}

// SettableKeys returns the keys accepted by Set, sorted
func SettableKeys() []string {
	keys := make([]string, 0, len(settable))
	for k := range settable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set updates a single field of cfg from its string form
func Set(cfg *Config, key, value string) error {
	setter, ok := settable[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(SettableKeys(), ", "))
	}
	return setter(cfg, value)
}
