package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != ":8000" {
		t.Errorf("expected :8000, got %s", cfg.Server.Addr)
	}
	if cfg.Ollama.BaseURL != "http://localhost:11434" {
		t.Errorf("expected local ollama, got %s", cfg.Ollama.BaseURL)
	}
	if cfg.Ollama.Temperature != 0.7 {
		t.Errorf("expected 0.7, got %v", cfg.Ollama.Temperature)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("expected 768, got %d", cfg.Embedding.Dimensions)
	}
}

func TestLoadFromTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.toml")
	os.WriteFile(path, []byte(`
[ollama]
model = "qwen2.5"

[database]
driver = "postgres"
postgres_url = "postgres://localhost/groto"
`), 0644)

	cfg := Load(path)
	if cfg.Ollama.Model != "qwen2.5" {
		t.Errorf("expected qwen2.5, got %s", cfg.Ollama.Model)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.Database.Driver)
	}
	// Defaults preserved
	if cfg.Server.Addr != ":8000" {
		t.Errorf("default should be preserved, got %s", cfg.Server.Addr)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("GROTO_OLLAMA_MODEL", "env-model")
	t.Setenv("GROTO_OLLAMA_TEMPERATURE", "0.2")
	t.Setenv("GROTO_OBSERVER_ENABLED", "1")

	cfg := Load("/nonexistent/path.toml")
	if cfg.Ollama.Model != "env-model" {
		t.Errorf("expected env-model, got %s", cfg.Ollama.Model)
	}
	if cfg.Ollama.Temperature != 0.2 {
		t.Errorf("expected 0.2, got %v", cfg.Ollama.Temperature)
	}
	if !cfg.Observer.Enabled {
		t.Error("expected observer enabled")
	}
}

func TestEnvOverrideBadFloatIgnored(t *testing.T) {
	t.Setenv("GROTO_OLLAMA_TEMPERATURE", "not-a-number")

	cfg := Load("/nonexistent/path.toml")
	if cfg.Ollama.Temperature != 0.7 {
		t.Errorf("expected default 0.7, got %v", cfg.Ollama.Temperature)
	}
}
