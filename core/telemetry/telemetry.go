// Package telemetry maintains the process-wide counters of the structured
// generation pipeline: attempts, parse successes, fallback uses, per-strategy
// win counts and a rolling average response time. Counters are backed by
// sync/atomic so concurrent call completions never require coordination; the
// strategy-win map is the single mutex-guarded member. The average is
// computed from two atomics read separately, so it is eventually consistent
// under concurrent completion; totals are always exact.
package telemetry

import (
	"sync"
	"sync/atomic"
	"time"
)

// Telemetry aggregates counters for one orchestrator. Create with [New];
// the zero value is also ready to use.
type Telemetry struct {
	totalRequests    atomic.Int64
	successfulParses atomic.Int64
	fallbacksUsed    atomic.Int64

	completions    atomic.Int64
	totalElapsedMs atomic.Int64

	mu           sync.Mutex
	strategyWins map[string]int64
}

// Snapshot is a read-only copy of the counters at one instant.
type Snapshot struct {
	TotalRequests         int64            `json:"total_requests"`
	SuccessfulParses      int64            `json:"successful_parses"`
	FallbacksUsed         int64            `json:"fallbacks_used"`
	StrategyUsage         map[string]int64 `json:"strategy_usage"`
	AverageResponseTimeMs float64          `json:"average_response_time_ms"`
}

// New creates an empty Telemetry.
func New() *Telemetry {
	return &Telemetry{strategyWins: map[string]int64{}}
}

// RecordRequest counts one inbound structured generation call. Called once
// per call, before any attempt is made.
func (t *Telemetry) RecordRequest() {
	t.totalRequests.Add(1)
}

// RecordSuccess counts a call that ended with a parsed record, crediting the
// winning strategy and folding the elapsed time into the rolling average.
func (t *Telemetry) RecordSuccess(strategy string, elapsed time.Duration) {
	t.successfulParses.Add(1)
	t.recordCompletion(elapsed)

	t.mu.Lock()
	if t.strategyWins == nil {
		t.strategyWins = map[string]int64{}
	}
	t.strategyWins[strategy]++
	t.mu.Unlock()
}

// RecordFallback counts a call that ended in a fallback record.
func (t *Telemetry) RecordFallback(elapsed time.Duration) {
	t.fallbacksUsed.Add(1)
	t.recordCompletion(elapsed)
}

func (t *Telemetry) recordCompletion(elapsed time.Duration) {
	t.completions.Add(1)
	t.totalElapsedMs.Add(elapsed.Milliseconds())
}

// Snapshot returns a copy of all counters. The strategy map is cloned; the
// caller may retain the snapshot freely.
func (t *Telemetry) Snapshot() Snapshot {
	snap := Snapshot{
		TotalRequests:    t.totalRequests.Load(),
		SuccessfulParses: t.successfulParses.Load(),
		FallbacksUsed:    t.fallbacksUsed.Load(),
		StrategyUsage:    map[string]int64{},
	}

	if completions := t.completions.Load(); completions > 0 {
		snap.AverageResponseTimeMs = float64(t.totalElapsedMs.Load()) / float64(completions)
	}

	t.mu.Lock()
	for name, wins := range t.strategyWins {
		snap.StrategyUsage[name] = wins
	}
	t.mu.Unlock()
	return snap
}

// TopStrategy returns the strategy with the most wins and its count. Ties
// resolve to the lexically smallest name so the result is deterministic;
// an empty name means no call has succeeded yet.
func (t *Telemetry) TopStrategy() (string, int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var top string
	var max int64
	for name, wins := range t.strategyWins {
		if wins > max || (wins == max && wins > 0 && (top == "" || name < top)) {
			top, max = name, wins
		}
	}
	return top, max
}

// Reset zeroes every counter. Intended for tests and for operators wiring a
// periodic stats flush; in-flight calls recording concurrently with Reset
// land in the fresh window.
func (t *Telemetry) Reset() {
	t.totalRequests.Store(0)
	t.successfulParses.Store(0)
	t.fallbacksUsed.Store(0)
	t.completions.Store(0)
	t.totalElapsedMs.Store(0)

	t.mu.Lock()
	t.strategyWins = map[string]int64{}
	t.mu.Unlock()
}
