// Package config handles the XDG configuration directory, the optional
// config.toml settings file and the OAuth file paths.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

const (
	// AppName is the application directory name.
	AppName = "tasked"

	// SettingsFile is the optional settings filename inside Dir.
	SettingsFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultListFile is the list path used when nothing else is configured.
	DefaultListFile = "todo.txt"

	// DefaultHTTPTimeout bounds every sync request.
	DefaultHTTPTimeout = 5 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// ListFile is the task list file to open.
	ListFile string

	// DirectSave rewrites the list file in place instead of replacing it
	// atomically.
	DirectSave bool

	// LogFile receives log output while the editor owns the terminal.
	LogFile string

	// LogLevel is the minimum level logged ("debug", "info", "warn", "error").
	LogLevel string

	// HTTPTimeout bounds each sync request.
	HTTPTimeout time.Duration

	// Log is the logger commands write to. It is never nil once the
	// dispatcher has run.
	Log *log.Logger
}

// settings mirrors config.toml.
type settings struct {
	File        string `toml:"file"`
	DirectSave  bool   `toml:"direct_save"`
	LogFile     string `toml:"log_file"`
	LogLevel    string `toml:"log_level"`
	HTTPTimeout string `toml:"http_timeout"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasked or $HOME/.config/tasked.
// Settings from config.toml in that directory are applied when the file
// exists.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:         dir,
		ListFile:    DefaultListFile,
		LogLevel:    "warn",
		HTTPTimeout: DefaultHTTPTimeout,
		Log:         log.New(io.Discard),
	}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadSettings() error {
	var s settings
	_, err := toml.DecodeFile(c.SettingsPath(), &s)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}

	if s.File != "" {
		c.ListFile = expandHome(s.File)
	}
	c.DirectSave = s.DirectSave
	if s.LogFile != "" {
		c.LogFile = expandHome(s.LogFile)
	}
	if s.LogLevel != "" {
		if _, err := log.ParseLevel(s.LogLevel); err != nil {
			return fmt.Errorf("invalid %s: log_level: %w", SettingsFile, err)
		}
		c.LogLevel = s.LogLevel
	}
	if s.HTTPTimeout != "" {
		d, err := time.ParseDuration(s.HTTPTimeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid %s: http_timeout: %q", SettingsFile, s.HTTPTimeout)
		}
		c.HTTPTimeout = d
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// SettingsPath returns the path to config.toml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
