// ABOUTME: Astro configuration management with environment overrides
// ABOUTME: Resolves the ephemeris engine, data directory, and log level settings

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/charmbracelet/log"
	"github.com/harper/astro/internal/ephemeris"
	"github.com/harper/astro/internal/storage"
)

// DefaultEphePath is where distribution packages install the Swiss Ephemeris files.
const DefaultEphePath = "/usr/share/libswe/ephe"

// Config stores astro configuration.
// Every field can be overridden by the ASTRO_* environment variable in its env tag.
type Config struct {
	// Engine selects the ephemeris engine: "swetest" (default) or "fixture".
	Engine string `json:"engine,omitempty" env:"ASTRO_ENGINE"`

	// EphePath is the directory holding the ephemeris data files.
	// Supports ~ expansion. Defaults to DefaultEphePath.
	EphePath string `json:"ephe_path,omitempty" env:"ASTRO_EPHE_PATH"`

	// Swetest is the swetest executable name or path.
	Swetest string `json:"swetest,omitempty" env:"ASTRO_SWETEST"`

	// FixturePath is the YAML snapshot file used by the fixture engine.
	FixturePath string `json:"fixture_path,omitempty" env:"ASTRO_FIXTURE"`

	// DataDir is the directory holding astro.db.
	// Supports ~ expansion. Defaults to ~/.local/share/astro.
	DataDir string `json:"data_dir,omitempty" env:"ASTRO_DATA_DIR"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty" env:"ASTRO_LOG_LEVEL"`
}

// GetEngineKind returns the configured engine kind, defaulting to swetest.
func (c *Config) GetEngineKind() (ephemeris.Kind, error) {
	return ephemeris.ParseKind(c.Engine)
}

// GetEphePath returns the ephemeris data directory with ~ expanded.
func (c *Config) GetEphePath() string {
	if c.EphePath == "" {
		return DefaultEphePath
	}
	return ExpandPath(c.EphePath)
}

// GetSwetest returns the swetest executable, defaulting to the one on PATH.
func (c *Config) GetSwetest() string {
	if c.Swetest == "" {
		return ephemeris.DefaultBinary
	}
	return ExpandPath(c.Swetest)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured log level, defaulting to warn.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// DBPath returns the SQLite database path inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), storage.DBFilename)
}

// defaultDataDir returns the default XDG data directory for astro.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "astro")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// EngineConfig builds the ephemeris engine configuration.
func (c *Config) EngineConfig(logger *log.Logger) (ephemeris.Config, error) {
	kind, err := c.GetEngineKind()
	if err != nil {
		return ephemeris.Config{}, err
	}
	return ephemeris.Config{
		Kind:        kind,
		DataPath:    c.GetEphePath(),
		Binary:      c.GetSwetest(),
		FixturePath: ExpandPath(c.FixturePath),
		Logger:      logger,
	}, nil
}

// OpenEngine constructs the configured ephemeris engine.
func (c *Config) OpenEngine(logger *log.Logger) (ephemeris.Engine, error) {
	cfg, err := c.EngineConfig(logger)
	if err != nil {
		return nil, err
	}
	return ephemeris.New(cfg)
}

// OpenStorage opens the profile database in the data directory.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return storage.NewSQLiteDB(c.DBPath())
}

// ApplyEnv overrides fields with any ASTRO_* environment variables that are set.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "astro", "config.json")
}

// Load reads config from disk and applies environment overrides.
// A default config file is written on first run.
func Load() (*Config, error) {
	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			if saveErr := cfg.Save(); saveErr != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(path, data)
}

// atomicWrite writes data to a temp file beside path and renames it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user config directory
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
