// Package openrouter implements [ai.Generator] over the OpenRouter chat
// completion API, giving access to any model the gateway fronts.
package openrouter

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/revrost/go-openrouter"

	"coax/providers/ai"
)

const defaultModel = "openai/gpt-4o-mini"

// Generator sends generation requests through an openrouter client.
type Generator struct {
	client *openrouter.Client
	model  string
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel overrides the model identifier. Defaults to the OPENROUTER_MODEL
// environment variable, then to a small general-purpose model.
func WithModel(model string) Option {
	return func(g *Generator) {
		g.model = model
	}
}

// New creates a Generator. An empty apiKey falls back to the OPENROUTER_API_KEY
// environment variable; a missing key is not an error here, the first
// Generate call will fail and the orchestrator degrades to its fallback path.
func New(apiKey string, opts ...Option) *Generator {
	if apiKey == "" {
		apiKey = os.Getenv("OPENROUTER_API_KEY")
	}

	g := &Generator{
		client: openrouter.NewClient(apiKey),
		model:  os.Getenv("OPENROUTER_MODEL"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.model == "" {
		g.model = defaultModel
	}
	return g
}

// Name implements [ai.Generator].
func (g *Generator) Name() string { return "openrouter" }

// Generate implements [ai.Generator]: one synchronous chat completion with
// the prompt as the final user message.
func (g *Generator) Generate(ctx context.Context, prompt string, history []ai.Message, opts ai.GenerateOptions) (*ai.GenerateResponse, error) {
	request := buildRequest(g.model, prompt, history, opts)

	response, err := g.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("openrouter completion: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("openrouter completion: no choices returned")
	}

	result := &ai.GenerateResponse{
		Content:   response.Choices[0].Message.Content.Text,
		Model:     response.Model,
		Timestamp: time.Now(),
	}
	if response.Usage != nil {
		result.Usage = &ai.Usage{
			PromptTokens:     response.Usage.PromptTokens,
			CompletionTokens: response.Usage.CompletionTokens,
			TotalTokens:      response.Usage.TotalTokens,
		}
	}
	return result, nil
}

// buildRequest maps the generator contract onto an openrouter request.
// Split out so the mapping is testable without network access.
func buildRequest(model, prompt string, history []ai.Message, opts ai.GenerateOptions) openrouter.ChatCompletionRequest {
	messages := make([]openrouter.ChatCompletionMessage, 0, len(history)+1)
	for _, msg := range history {
		messages = append(messages, openrouter.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: openrouter.Content{Text: msg.Content},
		})
	}
	messages = append(messages, openrouter.ChatCompletionMessage{
		Role:    openrouter.ChatMessageRoleUser,
		Content: openrouter.Content{Text: prompt},
	})

	return openrouter.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(opts.Temperature),
		MaxTokens:   opts.MaxTokens,
	}
}
