// ABOUTME: Tests for astro config functionality
// ABOUTME: Verifies config load, save, path resolution, defaults, env overrides, and factories

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/astro/internal/ephemeris"
)

// isolate points XDG directories at a temp dir and blanks any ASTRO_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("XDG_DATA_HOME", tmpDir)
	for _, key := range []string{
		"ASTRO_ENGINE", "ASTRO_EPHE_PATH", "ASTRO_SWETEST",
		"ASTRO_FIXTURE", "ASTRO_DATA_DIR", "ASTRO_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	return tmpDir
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if !filepath.IsAbs(path) {
		t.Errorf("GetConfigPath returned non-absolute path: %s", path)
	}
}

func TestGetConfigPathWithXDGConfigHome(t *testing.T) {
	tmpDir := isolate(t)

	path := GetConfigPath()
	if !strings.HasPrefix(path, tmpDir) {
		t.Errorf("GetConfigPath should use XDG_CONFIG_HOME, got %s", path)
	}
	if !strings.HasSuffix(path, filepath.Join("astro", "config.json")) {
		t.Errorf("GetConfigPath should end with astro/config.json, got %s", path)
	}
}

func TestGetConfigPathWithoutXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path := GetConfigPath()
	if !strings.Contains(path, ".config") {
		t.Errorf("GetConfigPath should use .config fallback, got %s", path)
	}
}

func TestLoadNonExistent(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed on non-existent config: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.Engine != "" {
		t.Errorf("expected empty engine on first run, got %q", cfg.Engine)
	}

	if _, err := os.Stat(GetConfigPath()); os.IsNotExist(err) {
		t.Error("expected config file to be auto-created on first run")
	}
}

func TestLoadAutoCreatedConfigIsValidJSON(t *testing.T) {
	isolate(t)

	if _, err := Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	data, err := os.ReadFile(GetConfigPath())
	if err != nil {
		t.Fatalf("failed to read auto-created config: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("auto-created config is not valid JSON: %v", err)
	}
	if len(raw) != 0 {
		t.Errorf("expected empty default config, got %v", raw)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := isolate(t)

	configDir := filepath.Join(tmpDir, "astro")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configPath := filepath.Join(configDir, "config.json")
	if err := os.WriteFile(configPath, []byte("invalid json {{{"), 0600); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load should fail on invalid JSON")
	}
}

func TestSaveAndLoad(t *testing.T) {
	isolate(t)

	cfg := &Config{
		Engine:      "fixture",
		EphePath:    "/opt/ephe",
		FixturePath: "~/charts.yaml",
		DataDir:     "/custom/data",
		LogLevel:    "debug",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", *loaded, *cfg)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := isolate(t)

	cfg := &Config{}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(tmpDir, "astro"))
	if err != nil {
		t.Fatalf("Config directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("Config path is not a directory")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	tmpDir := isolate(t)

	cfg := &Config{Engine: "fixture"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(tmpDir, "astro"))
	if err != nil {
		t.Fatalf("read config dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.json" {
		t.Errorf("expected only config.json, got %v", entries)
	}
}

func TestSaveAndLoadPreservesJSON(t *testing.T) {
	isolate(t)

	cfg := &Config{
		Engine:  "swetest",
		DataDir: "~/my-data",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(GetConfigPath())
	if err != nil {
		t.Fatalf("read config file: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw JSON: %v", err)
	}
	if raw["engine"] != "swetest" {
		t.Errorf("expected JSON key 'engine' with value 'swetest', got %v", raw["engine"])
	}
	if raw["data_dir"] != "~/my-data" {
		t.Errorf("expected JSON key 'data_dir' with value '~/my-data', got %v", raw["data_dir"])
	}
	if _, ok := raw["ephe_path"]; ok {
		t.Error("empty ephe_path should be omitted")
	}
}

func TestSaveToUnwritableDirectory(t *testing.T) {
	// A regular file where the config directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", blocker)

	cfg := &Config{}
	if err := cfg.Save(); err == nil {
		t.Error("Expected error when saving under a regular file")
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)

	cfg := &Config{Engine: "swetest", EphePath: "/from/file", LogLevel: "info"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("ASTRO_ENGINE", "fixture")
	t.Setenv("ASTRO_FIXTURE", "/tmp/snapshots.yaml")
	t.Setenv("ASTRO_LOG_LEVEL", "debug")

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Engine != "fixture" {
		t.Errorf("expected env engine 'fixture', got %q", loaded.Engine)
	}
	if loaded.FixturePath != "/tmp/snapshots.yaml" {
		t.Errorf("expected env fixture path, got %q", loaded.FixturePath)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("expected env log level 'debug', got %q", loaded.LogLevel)
	}
	if loaded.EphePath != "/from/file" {
		t.Errorf("unset env should keep file value, got %q", loaded.EphePath)
	}

	// Env overrides are never written back.
	data, _ := os.ReadFile(GetConfigPath())
	if strings.Contains(string(data), "fixture") {
		t.Error("env override leaked into config file")
	}
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg := &Config{}

	if got := cfg.GetEphePath(); got != DefaultEphePath {
		t.Errorf("GetEphePath = %q, want %q", got, DefaultEphePath)
	}
	if got := cfg.GetSwetest(); got != ephemeris.DefaultBinary {
		t.Errorf("GetSwetest = %q, want %q", got, ephemeris.DefaultBinary)
	}
	if got := cfg.GetLogLevel(); got != "warn" {
		t.Errorf("GetLogLevel = %q, want warn", got)
	}
	kind, err := cfg.GetEngineKind()
	if err != nil {
		t.Fatalf("GetEngineKind: %v", err)
	}
	if kind != ephemeris.KindSwetest {
		t.Errorf("default engine = %s, want swetest", kind)
	}
}

func TestDefaultDataDir(t *testing.T) {
	tmpDir := isolate(t)
	cfg := &Config{}

	dataDir := cfg.GetDataDir()
	if dataDir != filepath.Join(tmpDir, "astro") {
		t.Errorf("GetDataDir = %q, want %q", dataDir, filepath.Join(tmpDir, "astro"))
	}
	if cfg.DBPath() != filepath.Join(tmpDir, "astro", "astro.db") {
		t.Errorf("DBPath = %q", cfg.DBPath())
	}
}

func TestExplicitDataDir(t *testing.T) {
	cfg := &Config{DataDir: "/custom/data/path"}
	if got := cfg.GetDataDir(); got != "/custom/data/path" {
		t.Errorf("expected '/custom/data/path', got %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("cannot get home dir: %v", err)
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/foo", filepath.Join(home, "foo")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"", ""},
	}

	for _, tt := range tests {
		result := ExpandPath(tt.input)
		if result != tt.expected {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestEngineConfig(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("cannot get home dir: %v", err)
	}

	cfg := &Config{Engine: "fixture", FixturePath: "~/snap.yaml", EphePath: "/opt/ephe", Swetest: "/usr/local/bin/swetest"}
	ec, err := cfg.EngineConfig(nil)
	if err != nil {
		t.Fatalf("EngineConfig: %v", err)
	}
	if ec.Kind != ephemeris.KindFixture {
		t.Errorf("Kind = %s, want fixture", ec.Kind)
	}
	if ec.FixturePath != filepath.Join(home, "snap.yaml") {
		t.Errorf("FixturePath = %q", ec.FixturePath)
	}
	if ec.DataPath != "/opt/ephe" {
		t.Errorf("DataPath = %q", ec.DataPath)
	}
	if ec.Binary != "/usr/local/bin/swetest" {
		t.Errorf("Binary = %q", ec.Binary)
	}
}

func TestEngineConfigUnknownEngine(t *testing.T) {
	cfg := &Config{Engine: "jpl"}
	if _, err := cfg.EngineConfig(nil); err == nil || !strings.Contains(err.Error(), "unknown engine") {
		t.Errorf("expected unknown engine error, got %v", err)
	}
}

func TestOpenEngineFixture(t *testing.T) {
	cfg := &Config{Engine: "fixture", FixturePath: "../ephemeris/testdata/synthetic-1986-12-22.yaml"}
	eng, err := cfg.OpenEngine(nil)
	if err != nil {
		t.Fatalf("OpenEngine: %v", err)
	}
	if _, ok := eng.(*ephemeris.Fixture); !ok {
		t.Errorf("expected *ephemeris.Fixture, got %T", eng)
	}
}

func TestOpenEngineMissingDataPath(t *testing.T) {
	cfg := &Config{EphePath: filepath.Join(t.TempDir(), "missing")}
	_, err := cfg.OpenEngine(nil)
	if err == nil {
		t.Fatal("expected error for missing ephemeris directory")
	}
}

func TestOpenStorageCreatesDBInDataDir(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{DataDir: tmpDir}

	store, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage failed: %v", err)
	}
	defer store.Close()

	dbPath := filepath.Join(tmpDir, "astro.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("expected database file at %s", dbPath)
	}
}
