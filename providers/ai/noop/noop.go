// Package noop provides a deterministic, network-free [ai.Generator] for
// tests and degraded-mode development: it replays a scripted response (or
// error) after an optional artificial delay.
package noop

import (
	"context"
	"time"

	"coax/providers/ai"
)

// Generator replays scripted responses. The zero value returns an empty JSON
// object for every call.
type Generator struct {
	// Content is the raw text returned by Generate. Empty means "{}".
	Content string

	// Err, when set, is returned instead of a response.
	Err error

	// Delay is slept (context-aware) before answering, to exercise timeout
	// paths in tests.
	Delay time.Duration
}

// Static creates a Generator that always answers with content.
func Static(content string) *Generator {
	return &Generator{Content: content}
}

// Failing creates a Generator whose every call fails with err.
func Failing(err error) *Generator {
	return &Generator{Err: err}
}

// Name implements [ai.Generator].
func (g *Generator) Name() string { return "noop" }

// Generate implements [ai.Generator].
func (g *Generator) Generate(ctx context.Context, _ string, _ []ai.Message, _ ai.GenerateOptions) (*ai.GenerateResponse, error) {
	if g.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.Delay):
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.Err != nil {
		return nil, g.Err
	}

	content := g.Content
	if content == "" {
		content = "{}"
	}
	return &ai.GenerateResponse{
		Content:   content,
		Model:     "noop",
		Timestamp: time.Now(),
	}, nil
}
