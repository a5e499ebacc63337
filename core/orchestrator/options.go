package orchestrator

import (
	"log/slog"
	"time"

	"coax/core/extract"
	"coax/core/fallback"
	"coax/core/telemetry"
)

// Defaults applied when neither the orchestrator nor the per-call options
// override them.
const (
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 1500
	DefaultTimeout     = 30 * time.Second

	// The single bounded retry runs warmer and with more headroom than the
	// primary attempt; there is never a second retry.
	retryTemperatureBump = 0.2
	retryTokenBump       = 200
)

// Options are the per-call knobs of [Orchestrator.GenerateStructured]. A nil
// *Options means all defaults.
type Options struct {
	// Temperature overrides the default sampling temperature.
	Temperature *float64

	// MaxTokens overrides the default completion budget. Zero means default.
	MaxTokens int

	// Timeout bounds each collaborator call. Zero means the orchestrator
	// default.
	Timeout time.Duration

	// Retries is accepted for caller compatibility but clamped: regardless
	// of its value there is at most one retry attempt, because the retry
	// bound protects a potentially degraded collaborator from retry storms.
	Retries int

	// FallbackToConversational enables the single warmer retry after a
	// failed primary attempt. Defaults to true.
	FallbackToConversational *bool

	// EnablePartialRecovery keeps the truncation-repair and schema-recovery
	// strategies in the cascade. Defaults to true.
	EnablePartialRecovery *bool
}

// callConfig is an Options value resolved against the orchestrator defaults.
type callConfig struct {
	temperature     float64
	maxTokens       int
	timeout         time.Duration
	retryEnabled    bool
	partialRecovery bool
}

func (o *Orchestrator) resolve(opts *Options) callConfig {
	cfg := callConfig{
		temperature:     o.temperature,
		maxTokens:       o.maxTokens,
		timeout:         o.timeout,
		retryEnabled:    true,
		partialRecovery: true,
	}
	if opts == nil {
		return cfg
	}
	if opts.Temperature != nil {
		cfg.temperature = *opts.Temperature
	}
	if opts.MaxTokens > 0 {
		cfg.maxTokens = opts.MaxTokens
	}
	if opts.Timeout > 0 {
		cfg.timeout = opts.Timeout
	}
	if opts.FallbackToConversational != nil {
		cfg.retryEnabled = *opts.FallbackToConversational
	}
	if opts.EnablePartialRecovery != nil {
		cfg.partialRecovery = *opts.EnablePartialRecovery
	}
	return cfg
}

// Option configures an Orchestrator at construction time.
type Option func(*Orchestrator)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithExtractor replaces the default extraction cascade.
func WithExtractor(extractor *extract.Extractor) Option {
	return func(o *Orchestrator) {
		o.extractor = extractor
	}
}

// WithFallbackGenerator replaces the default fallback generator, e.g. to
// inject a domain-specific intent classifier.
func WithFallbackGenerator(generator *fallback.Generator) Option {
	return func(o *Orchestrator) {
		o.fallback = generator
	}
}

// WithTelemetry shares an existing telemetry handle, e.g. between several
// orchestrators behind one diagnostics endpoint.
func WithTelemetry(stats *telemetry.Telemetry) Option {
	return func(o *Orchestrator) {
		o.stats = stats
	}
}

// WithTimeout sets the default per-attempt collaborator deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.timeout = timeout
	}
}

// WithGenerationDefaults sets the default temperature and token budget used
// when a call supplies neither.
func WithGenerationDefaults(temperature float64, maxTokens int) Option {
	return func(o *Orchestrator) {
		o.temperature = temperature
		o.maxTokens = maxTokens
	}
}
