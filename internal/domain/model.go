// Package domain defines core entities and value objects for JARVIS.
//
// This file contains the completion backend definitions used by the
// classifier chain and the content generator.
package domain

// ProviderKind identifies which client talks to a backend.
type ProviderKind string

const (
	ProviderKindOpenAI    ProviderKind = "openai"
	ProviderKindGemini    ProviderKind = "gemini"
	ProviderKindHTTP      ProviderKind = "http"
	ProviderKindAnthropic ProviderKind = "anthropic"
	ProviderKindUnknown   ProviderKind = "unknown"
)

// ModelDefinition describes a completion backend declared in the config file.
type ModelDefinition struct {
	Name           string       `yaml:"name"`
	Provider       ProviderKind `yaml:"provider"`
	Endpoint       string       `yaml:"endpoint,omitempty"`
	AuthEnvVar     string       `yaml:"auth_env_var,omitempty"`
	ModelID        string       `yaml:"model_id"`
	MaxTokens      int          `yaml:"max_tokens,omitempty"`
	Temperature    float64      `yaml:"temperature,omitempty"`
	TimeoutSeconds int          `yaml:"timeout,omitempty"`
}

// CompletionRequest is the text-in side of a backend call.
type CompletionRequest struct {
	System      string
	Prompt      string
	History     []Message
	Temperature float64
	MaxTokens   int
	JSON        bool
}
