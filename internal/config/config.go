// Package config handles loading and managing invc configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/wesm/invc/internal/fileutil"
	"github.com/wesm/invc/internal/inventory"
)

// Config represents the invc configuration.
type Config struct {
	Data   DataConfig   `toml:"data"`
	Log    LogConfig    `toml:"log"`
	Search SearchConfig `toml:"search"`

	// Computed paths (not from config file)
	HomeDir    string `toml:"-"`
	configPath string
}

// DataConfig holds data storage configuration.
type DataConfig struct {
	DataDir      string `toml:"data_dir"`
	DatabasePath string `toml:"database_path"` // overrides <data_dir>/inventory.db
}

// LogConfig controls where the TUI writes its log.
type LogConfig struct {
	File  string `toml:"file"`  // empty disables logging in the TUI
	Level string `toml:"level"` // debug, info, warn or error
}

// SearchConfig holds search dialog defaults.
type SearchConfig struct {
	DefaultMode  string `toml:"default_mode"`  // name or about
	AutoWildcard bool   `toml:"auto_wildcard"` // wrap patterns without wildcards in %...%
}

const (
	configFileName  = "config.toml"
	databaseName    = "inventory.db"
	logFileName     = "invc.log"
	homeDirName     = ".invc"
	homeEnvVariable = "INVC_HOME"
)

// DefaultHome returns the default invc home directory.
// Respects INVC_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv(homeEnvVariable); h != "" {
		return expandPath(h)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return homeDirName
	}
	return filepath.Join(home, homeDirName)
}

// NewDefaultConfig returns a configuration with default values rooted at
// DefaultHome.
func NewDefaultConfig() *Config {
	return newConfig(DefaultHome())
}

func newConfig(homeDir string) *Config {
	return &Config{
		HomeDir: homeDir,
		Data: DataConfig{
			DataDir: homeDir,
		},
		Log: LogConfig{
			File:  filepath.Join(homeDir, logFileName),
			Level: "info",
		},
		Search: SearchConfig{
			DefaultMode: "name",
		},
		configPath: filepath.Join(homeDir, configFileName),
	}
}

// Load reads the configuration. An explicit path must exist; its directory
// becomes the home directory. Otherwise homeDir (or DefaultHome when
// empty) is used and its config.toml is optional.
func Load(path, homeDir string) (*Config, error) {
	explicit := path != ""
	switch {
	case explicit:
		path = expandPath(path)
		if homeDir == "" {
			abs, err := filepath.Abs(path)
			if err != nil {
				return nil, fmt.Errorf("resolve config path: %w", err)
			}
			path = abs
			homeDir = filepath.Dir(abs)
		}
	case homeDir != "":
		homeDir = expandPath(homeDir)
		path = filepath.Join(homeDir, configFileName)
	default:
		homeDir = DefaultHome()
		path = filepath.Join(homeDir, configFileName)
	}
	homeDir = expandPath(homeDir)

	cfg := newConfig(homeDir)
	cfg.configPath = path

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w%s", err, tomlHint(err))
	}

	cfg.Data.DataDir = cfg.resolve(cfg.Data.DataDir)
	cfg.Data.DatabasePath = cfg.resolve(cfg.Data.DatabasePath)
	cfg.Log.File = cfg.resolve(cfg.Log.File)

	if _, err := cfg.LogLevel(); err != nil {
		return nil, err
	}
	if _, err := cfg.SearchField(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve expands ~ and anchors relative paths at the home directory.
func (c *Config) resolve(path string) string {
	path = expandPath(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.HomeDir, path)
}

// tomlHint suggests a fix for the common mistake of writing Windows paths
// with backslashes inside basic strings.
func tomlHint(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "invalid escape") || strings.Contains(msg, "hexadecimal digits") {
		return "\nhint: use forward slashes (C:/Users/me/invc) or single quotes ('C:\\Users\\me\\invc') for Windows paths"
	}
	return ""
}

// DatabasePath returns the path to the SQLite database.
func (c *Config) DatabasePath() string {
	if c.Data.DatabasePath != "" {
		return c.Data.DatabasePath
	}
	return filepath.Join(c.Data.DataDir, databaseName)
}

// ConfigFilePath returns the path of the config file that was (or would be) loaded.
func (c *Config) ConfigFilePath() string {
	return c.configPath
}

// EnsureHomeDir creates the home directory if it does not exist.
func (c *Config) EnsureHomeDir() error {
	if err := fileutil.SecureMkdirAll(c.HomeDir, 0700); err != nil {
		return fmt.Errorf("create home directory %s: %w", c.HomeDir, err)
	}
	return nil
}

// LogLevel parses [log] level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("invalid [log] level %q: want debug, info, warn or error", c.Log.Level)
	}
	return level, nil
}

// SearchField parses [search] default_mode.
func (c *Config) SearchField() (inventory.Field, error) {
	if c.Search.DefaultMode == "" {
		return inventory.FieldName, nil
	}
	f, ok := inventory.ParseField(c.Search.DefaultMode)
	if !ok {
		return 0, fmt.Errorf("invalid [search] default_mode %q: want name or about", c.Search.DefaultMode)
	}
	return f, nil
}

// expandPath expands ~ to the user's home directory. On Windows, quotes
// left around a path by CMD are stripped first.
func expandPath(path string) string {
	if runtime.GOOS == "windows" && len(path) >= 2 {
		if (path[0] == '\'' || path[0] == '"') && path[len(path)-1] == path[0] {
			path = path[1 : len(path)-1]
		}
	}
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		return path // ~user is not expanded
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
