package ai

import (
	"context"
	"time"
)

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one turn of conversational context forwarded to the
// collaborator alongside the prompt.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// GenerateOptions are the sampling parameters of a single generation call.
type GenerateOptions struct {
	// Temperature is the sampling temperature. The orchestrator lowers it for
	// extraction attempts and raises it for the conversational retry.
	Temperature float64 `json:"temperature"`

	// MaxTokens caps the completion length.
	MaxTokens int `json:"max_tokens"`
}

// Usage reports the token accounting of one completed call, when the
// transport exposes it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// GenerateResponse is the collaborator's answer to one generation call.
type GenerateResponse struct {
	// Content is the raw model text, with no guarantee of being valid,
	// complete or schema-conformant JSON.
	Content string `json:"content"`

	// Model is the identifier the transport actually served, when known.
	Model string `json:"model,omitempty"`

	Usage     *Usage    `json:"usage,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Generator is the outbound collaborator contract. Implementations send the
// prompt (plus optional history) to a language model and return its raw text.
//
// Generate may fail with network errors, timeouts or malformed upstream
// responses; callers treat every error as a normal degraded-mode signal, not
// a fatal condition.
type Generator interface {
	Generate(ctx context.Context, prompt string, history []Message, opts GenerateOptions) (*GenerateResponse, error)

	// Name identifies the transport in logs and diagnostics.
	Name() string
}
