// Command coax reads a prompt, asks the configured collaborator for a
// structured answer, and prints the resulting record as JSON. It always
// prints a record: when generation or extraction fails the fallback record is
// printed instead, with diagnostics on stderr.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"coax/core/orchestrator"
	"coax/internal/config"
	"coax/internal/utils"
	"coax/providers/ai"
	"coax/providers/ai/noop"
	"coax/providers/ai/openrouter"
	"coax/schema"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("COAX_CONFIG"), "path to YAML config file")
	schemaPath := flag.String("schema", "", "path to a JSON record descriptor")
	prompt := flag.String("prompt", "", "prompt to send (defaults to remaining args)")
	pretty := flag.Bool("pretty", true, "indent the printed record")
	showStatus := flag.Bool("status", false, "print telemetry and cascade diagnostics after the call")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	text := *prompt
	if text == "" {
		text = strings.Join(flag.Args(), " ")
	}
	if text == "" {
		fmt.Fprintln(os.Stderr, "usage: coax [-config file] [-schema file] [-status] -prompt \"...\"")
		os.Exit(2)
	}

	desc, err := loadDescriptor(*schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schema error: %v\n", err)
		os.Exit(1)
	}

	orch := orchestrator.New(newGenerator(cfg),
		orchestrator.WithLogger(logger),
		orchestrator.WithTimeout(cfg.Generation.Timeout),
		orchestrator.WithGenerationDefaults(cfg.Generation.Temperature, cfg.Generation.MaxTokens),
	)

	partial := cfg.Extraction.PartialRecovery
	record := orch.GenerateStructured(context.Background(), text, desc, &orchestrator.Options{
		EnablePartialRecovery: &partial,
	})

	fmt.Println(utils.JSONToString(record, *pretty))

	if *showStatus {
		fmt.Fprintln(os.Stderr, utils.JSONToString(orch.Status(), true))
	}
}

// newGenerator wires the collaborator named in the config. "none" (and any
// unknown name) yields no collaborator, which routes every call to the
// fallback generator.
func newGenerator(cfg config.Config) ai.Generator {
	switch strings.ToLower(cfg.Provider.Name) {
	case "openrouter":
		return openrouter.New(cfg.Provider.APIKey, openrouter.WithModel(cfg.Provider.Model))
	case "noop":
		return noop.Static("{}")
	default:
		return nil
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel())); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadDescriptor(path string) (*schema.Descriptor, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var desc schema.Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parse descriptor %s: %w", path, err)
	}
	return &desc, nil
}
