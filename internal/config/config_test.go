// ABOUTME: Tests for fitleast configuration management.
// ABOUTME: Covers load, save, env overrides, defaults, backend selection, and path expansion.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/fitleast/internal/storage"
)

// isolate points config and data lookups at temp dirs and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	for _, k := range []string{"FITLEAST_BACKEND", "FITLEAST_DATA_DIR", "FITLEAST_REDIS_ADDR", "FITLEAST_LOG_LEVEL", "FITLEAST_REDIS_DB"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return tmpDir
}

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "sqlite" {
		t.Errorf("GetBackend() = %q, want %q", got, "sqlite")
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "Badger"}
	if got := cfg.GetBackend(); got != "badger" {
		t.Errorf("GetBackend() = %q, want %q", got, "badger")
	}
}

func TestGetDataDirDefault(t *testing.T) {
	tmpDir := isolate(t)
	cfg := &Config{}

	want := filepath.Join(tmpDir, "data", "fitleast")
	if got := cfg.GetDataDir(); got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/fitleast-test"}
	if got := cfg.GetDataDir(); got != "/tmp/fitleast-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/fitleast-test")
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/lifting"}
	want := filepath.Join(home, "lifting")
	if got := cfg.GetDataDir(); got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/fitleast", filepath.Join(home, "data/fitleast")},
		{"data/fitleast", "data/fitleast"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLogSettings(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/fl"}
	if got := cfg.GetLogLevel(); got != "info" {
		t.Errorf("GetLogLevel() = %q, want info", got)
	}
	if got := cfg.LogFilePath(); got != "" {
		t.Errorf("LogFilePath() with file logging off = %q", got)
	}
	cfg.LogFile = true
	if got := cfg.LogFilePath(); got != "/tmp/fl/fitleast.log" {
		t.Errorf("LogFilePath() = %q", got)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.Backend != "" || cfg.DataDir != "" || cfg.LogFile {
		t.Errorf("expected zero config, got %+v", cfg)
	}
	if cfg.GetBackend() != "sqlite" {
		t.Errorf("GetBackend() = %q", cfg.GetBackend())
	}
}

func TestSaveAndLoad(t *testing.T) {
	isolate(t)

	cfg := &Config{
		Backend:   "redis",
		DataDir:   "/tmp/fitleast-data",
		RedisAddr: "cache:6379",
		RedisDB:   2,
		LogLevel:  "debug",
		LogFile:   true,
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)

	if err := (&Config{Backend: "sqlite", LogLevel: "warn"}).Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	t.Setenv("FITLEAST_BACKEND", "memory")
	t.Setenv("FITLEAST_REDIS_ADDR", "10.0.0.5:6379")
	t.Setenv("FITLEAST_REDIS_DB", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Backend != "memory" {
		t.Errorf("Backend = %q, want env value memory", cfg.Backend)
	}
	if cfg.RedisAddr != "10.0.0.5:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d", cfg.RedisDB)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want file value warn", cfg.LogLevel)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	if err := (&Config{Backend: "sqlite"}).Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "nonexistent", "fitleast")); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := isolate(t)

	configDir := filepath.Join(tmpDir, "fitleast")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got := GetConfigPath(); got != "/custom/config/fitleast/config.json" {
		t.Errorf("GetConfigPath() = %q", got)
	}
}

func TestOpenStorageLocalBackends(t *testing.T) {
	for _, backend := range []string{"sqlite", "badger", "memory"} {
		t.Run(backend, func(t *testing.T) {
			cfg := &Config{Backend: backend, DataDir: t.TempDir()}
			kv, err := cfg.OpenStorage()
			if err != nil {
				t.Fatalf("OpenStorage() error = %v", err)
			}
			defer kv.Close()

			if err := kv.Set(storage.KeyStreak, []byte("2")); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, err := kv.Get(storage.KeyStreak)
			if err != nil || string(got) != "2" {
				t.Errorf("Get() = %q, %v", got, err)
			}
		})
	}
}

func TestOpenStorageUnknownBackend(t *testing.T) {
	cfg := &Config{Backend: "markdown"}
	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("expected error for unknown backend")
	}
}
