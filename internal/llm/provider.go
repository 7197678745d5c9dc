package llm

import (
	"context"
	"encoding/json"
)

// Provider abstracts the LLM backends used for AI tutoring and grading.
// The session talks to a Provider only through the premium gateway.
type Provider interface {
	// Generate sends a conversation to the LLM and returns its reply.
	// When the request carries a Schema the provider uses its native
	// structured-output mechanism and Content is the validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System sets the LLM's role and constraints (e.g. the tutor
	// persona with the lesson excerpt).
	System string

	// Messages is the conversation history. Tutor chat is multi-turn;
	// grading is single-turn.
	Messages []Message

	// Schema, when set, is the JSON Schema the response must conform
	// to. Grading uses this; chat leaves it nil for free text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero means
	// deterministic.
	Temperature float64
}

// Message is a single conversation turn.
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
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "essay-grade".
	Name string

	// Description guides generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the reply. Validated JSON when a Schema was set, raw
	// text otherwise.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns the response content as plain text, stripping JSON
// string quoting if present.
func (r *Response) Text() string {
	var s string
	if json.Unmarshal(r.Content, &s) == nil {
		return s
	}
	return string(r.Content)
}
