package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Provider.Name != "openrouter" {
		t.Fatalf("expected default provider openrouter, got %q", cfg.Provider.Name)
	}
	if cfg.Generation.Temperature != 0.1 {
		t.Fatalf("expected default temperature 0.1, got %v", cfg.Generation.Temperature)
	}
	if cfg.Generation.MaxTokens != 1500 {
		t.Fatalf("expected default max tokens 1500, got %d", cfg.Generation.MaxTokens)
	}
	if cfg.Generation.Timeout != 30*time.Second {
		t.Fatalf("expected default timeout 30s, got %v", cfg.Generation.Timeout)
	}
	if !cfg.Extraction.PartialRecovery {
		t.Fatalf("expected partial recovery enabled by default")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider.Name != "openrouter" {
		t.Fatalf("expected defaults for missing file, got provider %q", cfg.Provider.Name)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coax.yaml")
	data := []byte("provider:\n  name: none\n  model: test-model\ngeneration:\n  temperature: 0.7\n  max_tokens: 900\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider.Name != "none" {
		t.Fatalf("expected provider none, got %q", cfg.Provider.Name)
	}
	if cfg.Provider.Model != "test-model" {
		t.Fatalf("expected model override, got %q", cfg.Provider.Model)
	}
	if cfg.Generation.Temperature != 0.7 {
		t.Fatalf("expected temperature 0.7, got %v", cfg.Generation.Temperature)
	}
	if cfg.Generation.MaxTokens != 900 {
		t.Fatalf("expected max tokens 900, got %d", cfg.Generation.MaxTokens)
	}
	if cfg.LogLevel() != "DEBUG" {
		t.Fatalf("expected DEBUG log level, got %q", cfg.LogLevel())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COAX_PROVIDER", "none")
	t.Setenv("COAX_MODEL", "env-model")
	t.Setenv("COAX_TEMPERATURE", "0.9")
	t.Setenv("COAX_MAX_TOKENS", "2200")
	t.Setenv("COAX_TIMEOUT", "5s")
	t.Setenv("COAX_PARTIAL_RECOVERY", "off")
	t.Setenv("COAX_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider.Name != "none" {
		t.Fatalf("expected provider override")
	}
	if cfg.Provider.Model != "env-model" {
		t.Fatalf("expected model override")
	}
	if cfg.Generation.Temperature != 0.9 {
		t.Fatalf("expected temperature override, got %v", cfg.Generation.Temperature)
	}
	if cfg.Generation.MaxTokens != 2200 {
		t.Fatalf("expected max tokens override, got %d", cfg.Generation.MaxTokens)
	}
	if cfg.Generation.Timeout != 5*time.Second {
		t.Fatalf("expected timeout override, got %v", cfg.Generation.Timeout)
	}
	if cfg.Extraction.PartialRecovery {
		t.Fatalf("expected partial recovery disabled")
	}
	if cfg.LogLevel() != "WARN" {
		t.Fatalf("expected WARN log level, got %q", cfg.LogLevel())
	}
}

func TestParseBoolFallback(t *testing.T) {
	if !parseBool("definitely", true) {
		t.Fatalf("unparseable value should keep fallback true")
	}
	if parseBool("definitely", false) {
		t.Fatalf("unparseable value should keep fallback false")
	}
}
