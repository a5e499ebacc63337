package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"coax/core/extract"
	"coax/core/fallback"
	"coax/core/telemetry"
	"coax/internal/utils"
	"coax/providers/ai"
	"coax/schema"
)

// ErrCollaboratorUnavailable marks calls made while no text-generation
// collaborator is wired at all. It is an expected degraded mode, logged as a
// warning and answered with a fallback record, never surfaced to callers.
var ErrCollaboratorUnavailable = errors.New("orchestrator: text generation collaborator unavailable")

// Orchestrator coordinates one or two generation attempts and the extraction
// cascade behind the always-resolves contract of [GenerateStructured].
// Construct with [New]; an Orchestrator is safe for concurrent use.
type Orchestrator struct {
	generator ai.Generator
	extractor *extract.Extractor
	fallback  *fallback.Generator
	stats     *telemetry.Telemetry
	logger    *slog.Logger

	temperature float64
	maxTokens   int
	timeout     time.Duration
}

// New creates an Orchestrator around the given collaborator. generator may
// be nil: every call then routes straight to the fallback generator, which
// keeps the public contract intact while the dependency is absent.
func New(generator ai.Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		generator:   generator,
		logger:      slog.Default(),
		temperature: DefaultTemperature,
		maxTokens:   DefaultMaxTokens,
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.extractor == nil {
		o.extractor = extract.New(extract.WithLogger(o.logger))
	}
	if o.fallback == nil {
		o.fallback = fallback.New()
	}
	if o.stats == nil {
		o.stats = telemetry.New()
	}
	return o
}

// GenerateStructured obtains a structured record for prompt. It never
// returns an error and never panics across its boundary: the result is a
// parsed record when any attempt succeeds, and a fallback record otherwise.
// When desc is non-nil the returned record contains every required field and
// only values coercible to the declared types.
//
// Each call updates telemetry exactly once, at its terminal transition:
// success on the primary attempt, success on the retry, or fallback.
func (o *Orchestrator) GenerateStructured(ctx context.Context, prompt string, desc *schema.Descriptor, opts *Options) extract.Record {
	timer := utils.NewTimer()
	o.stats.RecordRequest()

	cfg := o.resolve(opts)
	log := o.logger.With(
		"request_id", uuid.NewString(),
		"prompt_kind", classifyPrompt(prompt),
		"has_schema", desc != nil,
	)

	if o.generator == nil {
		log.Warn("no collaborator wired, building fallback record")
		rec := o.fallback.Build(desc, prompt, ErrCollaboratorUnavailable)
		o.stats.RecordFallback(timer.Elapsed())
		return rec
	}

	augmented := augmentPrompt(prompt, desc)

	rec, strategy, err := o.attempt(ctx, log, augmented, desc, cfg, 0)
	if err == nil {
		o.finishSuccess(log, "primary", strategy, timer)
		return rec
	}

	if cfg.retryEnabled {
		rec, strategy, retryErr := o.attempt(ctx, log, augmented, desc, cfg, 1)
		if retryErr == nil {
			o.finishSuccess(log, "retry", strategy, timer)
			return rec
		}
		err = retryErr
	}

	log.Warn("structured generation exhausted, building fallback record",
		"error", utils.TruncateString(err.Error(), 200),
	)
	rec = o.fallback.Build(desc, prompt, err)
	o.stats.RecordFallback(timer.Elapsed())
	return rec
}

// attempt performs one collaborator call under the configured deadline and
// runs the cascade on its output. attemptNo 1 is the bounded retry: warmer
// temperature, larger token budget. A timed-out or cancelled call is an
// ordinary failure feeding the next transition.
func (o *Orchestrator) attempt(ctx context.Context, log *slog.Logger, prompt string, desc *schema.Descriptor, cfg callConfig, attemptNo int) (extract.Record, string, error) {
	genOpts := ai.GenerateOptions{
		Temperature: cfg.temperature + retryTemperatureBump*float64(attemptNo),
		MaxTokens:   cfg.maxTokens + retryTokenBump*attemptNo,
	}

	callCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	response, err := o.generator.Generate(callCtx, prompt, nil, genOpts)
	if err != nil {
		log.Warn("collaborator call failed",
			"attempt", attemptNo,
			"collaborator", o.generator.Name(),
			"error", utils.TruncateString(err.Error(), 200),
		)
		return nil, "", fmt.Errorf("collaborator call: %w", err)
	}

	rec, strategy, err := o.extractor.Extract(response.Content, desc, extract.Params{
		DisablePartialRecovery: !cfg.partialRecovery,
	})
	if err != nil {
		return nil, "", err
	}
	return rec, strategy, nil
}

func (o *Orchestrator) finishSuccess(log *slog.Logger, path, strategy string, timer *utils.Timer) {
	elapsed := timer.Elapsed()
	o.stats.RecordSuccess(strategy, elapsed)
	log.Info("structured generation succeeded",
		"path", path,
		"strategy", strategy,
		"duration", elapsed,
	)
}

// Telemetry returns the orchestrator's telemetry handle, e.g. for explicit
// resets from an operations endpoint.
func (o *Orchestrator) Telemetry() *telemetry.Telemetry {
	return o.stats
}

// Status is the read-only diagnostics surface: counters, the registered
// cascade, and the strategy that wins most often. Observability only, not
// intended to drive control flow.
type Status struct {
	Telemetry    telemetry.Snapshot `json:"telemetry"`
	Strategies   []string           `json:"strategies"`
	TopStrategy  string             `json:"top_strategy,omitempty"`
	Collaborator string             `json:"collaborator,omitempty"`
}

// Status reports the current diagnostics snapshot.
func (o *Orchestrator) Status() Status {
	status := Status{
		Telemetry:  o.stats.Snapshot(),
		Strategies: o.extractor.StrategyNames(),
	}
	status.TopStrategy, _ = o.stats.TopStrategy()
	if o.generator != nil {
		status.Collaborator = o.generator.Name()
	}
	return status
}
