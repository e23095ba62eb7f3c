package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction for LLM interaction. Lesson Lab makes
// exactly one Generate call per user action; callers own any retry.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its response.
	// When the request carries a Schema, the provider uses its native
	// structured output mechanism and validates the returned JSON
	// against it. The Content is always the raw model text — the
	// caller remains responsible for defensive parsing.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use by default.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and the output
	// contract.
	System string

	// Messages is the conversation. Lesson Lab is single-turn, so this
	// holds one user message.
	Messages []Message

	// Schema, when set, asks the provider for JSON conforming to it.
	Schema *Schema

	// Model overrides the provider's configured model for this request.
	// Empty means use the provider default.
	Model string

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message is a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "lesson".
	Name string

	// Description tells the LLM what this schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the raw generated text. With a Schema in the request
	// this has already passed provider-side validation, but callers
	// must not trust it beyond "some text came back".
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}
