// Package config loads the coax runtime configuration from an optional YAML
// file with COAX_* environment variable overrides. Environment values always
// win over file values, which in turn win over the built-in defaults.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider struct {
		Name   string `yaml:"name"`
		Model  string `yaml:"model"`
		APIKey string `yaml:"api_key"`
	} `yaml:"provider"`
	Generation struct {
		Temperature float64       `yaml:"temperature"`
		MaxTokens   int           `yaml:"max_tokens"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"generation"`
	Extraction struct {
		PartialRecovery bool `yaml:"partial_recovery"`
	} `yaml:"extraction"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func Default() Config {
	var cfg Config
	cfg.Provider.Name = "openrouter"
	cfg.Provider.Model = "openai/gpt-4o-mini"
	cfg.Generation.Temperature = 0.1
	cfg.Generation.MaxTokens = 1500
	cfg.Generation.Timeout = 30 * time.Second
	cfg.Extraction.PartialRecovery = true
	cfg.Log.Level = "info"
	return cfg
}

// Load reads the YAML file at path on top of [Default] and then applies
// environment overrides. A missing file is not an error; an unreadable or
// malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, err
			}
		} else {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("COAX_PROVIDER"); v != "" {
		cfg.Provider.Name = v
	}
	if v := os.Getenv("COAX_MODEL"); v != "" {
		cfg.Provider.Model = v
	}
	if v := os.Getenv("COAX_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("COAX_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Generation.Temperature = f
		}
	}
	if v := os.Getenv("COAX_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Generation.MaxTokens = n
		}
	}
	if v := os.Getenv("COAX_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Generation.Timeout = d
		}
	}
	if v := os.Getenv("COAX_PARTIAL_RECOVERY"); v != "" {
		cfg.Extraction.PartialRecovery = parseBool(v, cfg.Extraction.PartialRecovery)
	}
	if v := os.Getenv("COAX_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func parseBool(input string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

// LogLevel maps the configured level name to a slog level string accepted by
// slog.Level.UnmarshalText; unknown names fall back to "INFO".
func (c Config) LogLevel() string {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return "DEBUG"
	case "warn", "warning":
		return "WARN"
	case "error":
		return "ERROR"
	default:
		return "INFO"
	}
}
