package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  host: 127.0.0.1
  port: "9000"
model:
  api_key: test-key
  name: test-model
database:
  dsn: user:pass@tcp(localhost:3306)/assistant
upload:
  dir: /tmp/uploads
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if err := LoadFrom(path); err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if Cfg.Server.Addr() != "127.0.0.1:9000" {
		t.Errorf("Unexpected server addr: %s", Cfg.Server.Addr())
	}
	if Cfg.Model.APIKey != "test-key" || Cfg.Model.Name != "test-model" {
		t.Errorf("Unexpected model config: %+v", Cfg.Model)
	}
	if Cfg.Database.DSN == "" {
		t.Error("Expected database DSN loaded")
	}
	if Cfg.Upload.Dir != "/tmp/uploads" {
		t.Errorf("Unexpected upload dir: %s", Cfg.Upload.Dir)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	if err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if Cfg.Server.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", Cfg.Server.Port)
	}
	if Cfg.Database.DSN != "" {
		t.Error("Expected empty DSN by default (memory-only mode)")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("model:\n  api_key: from-file\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("BACKEND_PORT", "9999")

	if err := LoadFrom(path); err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if Cfg.Model.APIKey != "from-env" {
		t.Errorf("Expected env override for api key, got %s", Cfg.Model.APIKey)
	}
	if Cfg.Server.Port != "9999" {
		t.Errorf("Expected env override for port, got %s", Cfg.Server.Port)
	}
}
