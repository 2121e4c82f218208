// Package config loads application configuration from defaults, an
// optional TOML file, and GROTO_* env var overrides, in that order.
package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Ollama    OllamaConfig    `toml:"ollama"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Database  DatabaseConfig  `toml:"database"`
	Observer  ObserverConfig  `toml:"observer"`
	Log       LogConfig       `toml:"log"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type OllamaConfig struct {
	BaseURL     string  `toml:"base_url"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

type EmbeddingConfig struct {
	Model      string `toml:"model"`
	Dimensions int    `toml:"dimensions"`
}

type DatabaseConfig struct {
	// Driver selects the vector store: "sqlite" or "postgres".
	Driver      string `toml:"driver"`
	Path        string `toml:"path"`
	PostgresURL string `toml:"postgres_url"`
}

type ObserverConfig struct {
	Enabled bool `toml:"enabled"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Server:    ServerConfig{Addr: ":8000"},
		Ollama:    OllamaConfig{BaseURL: "http://localhost:11434", Model: "llama3.2", Temperature: 0.7, MaxTokens: 2048},
		Embedding: EmbeddingConfig{Model: "nomic-embed-text", Dimensions: 768},
		Database:  DatabaseConfig{Driver: "sqlite", Path: "groto.db"},
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads config: defaults -> TOML file -> env vars (env wins).
func Load(path string) Config {
	cfg := Default()

	if path == "" {
		path = "groto.toml"
	}

	if data, err := os.ReadFile(path); err == nil {
		_ = toml.Unmarshal(data, &cfg)
	}

	// Env overrides
	if v := os.Getenv("GROTO_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("GROTO_OLLAMA_BASE_URL"); v != "" {
		cfg.Ollama.BaseURL = v
	}
	if v := os.Getenv("GROTO_OLLAMA_MODEL"); v != "" {
		cfg.Ollama.Model = v
	}
	if v := os.Getenv("GROTO_OLLAMA_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Ollama.Temperature = f
		}
	}
	if v := os.Getenv("GROTO_EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("GROTO_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("GROTO_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("GROTO_POSTGRES_URL"); v != "" {
		cfg.Database.PostgresURL = v
	}
	if v := os.Getenv("GROTO_OBSERVER_ENABLED"); v == "true" || v == "1" {
		cfg.Observer.Enabled = true
	}
	if v := os.Getenv("GROTO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg
}
