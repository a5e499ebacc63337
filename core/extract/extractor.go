package extract

import (
	"errors"
	"log/slog"
	"strings"

	"coax/schema"
)

// ErrCascadeExhausted is returned by [Extractor.Extract] when every
// registered strategy failed to recover an object from the text. Callers are
// expected to convert it into a fallback record; the cascade itself never
// substitutes a placeholder.
var ErrCascadeExhausted = errors.New("extract: all strategies exhausted")

// Params carries per-call extraction knobs.
type Params struct {
	// DisablePartialRecovery skips the partial_completion and
	// schema_based_recovery strategies, for callers that prefer a clean
	// failure over a synthesized record. The zero value keeps both enabled.
	DisablePartialRecovery bool
}

// Extractor runs the strategy cascade. The strategy list is fixed at
// construction; an Extractor is safe for concurrent use because strategies
// are stateless and the logger is.
type Extractor struct {
	strategies []Strategy
	logger     *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for per-strategy debug entries and the
// exhaustion diagnostic snapshot. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithStrategies replaces the default cascade. Order is preserved as given;
// intended for tests and for deployments that disable individual strategies.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) {
		e.strategies = strategies
	}
}

// New creates an Extractor with the [DefaultStrategies] cascade.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		strategies: DefaultStrategies(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StrategyNames returns the registered strategy names in cascade order.
func (e *Extractor) StrategyNames() []string {
	names := make([]string, len(e.strategies))
	for i, s := range e.strategies {
		names[i] = s.Name()
	}
	return names
}

// Extract runs the cascade over text. The first strategy producing a non-nil
// object wins; its name is returned alongside the record for telemetry. When
// a schema is supplied the winning record is conformed to it before being
// returned: required fields filled, declared types coerced.
//
// On exhaustion a diagnostic snapshot of the text is logged (sizes, edges,
// brace balance, quote count, fence and comment presence, never the full
// payload) and ErrCascadeExhausted is returned.
func (e *Extractor) Extract(text string, desc *schema.Descriptor, params Params) (Record, string, error) {
	for _, strategy := range e.strategies {
		if params.DisablePartialRecovery &&
			(strategy.Name() == StrategyPartialCompletion || strategy.Name() == StrategySchemaRecovery) {
			continue
		}

		rec, err := strategy.TryExtract(text, desc)
		if err != nil {
			e.logger.Debug("extraction strategy failed",
				"strategy", strategy.Name(),
				"error", err.Error(),
			)
			continue
		}
		if rec == nil {
			continue
		}
		return conformToSchema(rec, desc), strategy.Name(), nil
	}

	e.logDiagnostics(text)
	return nil, "", ErrCascadeExhausted
}

// logDiagnostics records the facts needed to diagnose systemic parsing
// regressions without payload-level debugging in production.
func (e *Extractor) logDiagnostics(text string) {
	open, closed := braceBalance(text)
	e.logger.Error("extraction cascade exhausted",
		"length", len(text),
		"head", edge(text, 150, true),
		"tail", edge(text, 150, false),
		"open_braces", open,
		"close_braces", closed,
		"quote_count", strings.Count(text, `"`),
		"has_fence", strings.Contains(text, "```"),
		"has_comments", strings.Contains(text, "//") || strings.Contains(text, "/*"),
	)
}

// edge returns the first (or last) n bytes of s.
func edge(s string, n int, head bool) string {
	if len(s) <= n {
		return s
	}
	if head {
		return s[:n]
	}
	return s[len(s)-n:]
}
