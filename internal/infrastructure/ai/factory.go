package ai

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// Factory builds completers for configured models, sharing one HTTP client.
type Factory struct {
	httpClient *http.Client
	getenv     func(string) string
}

// NewFactory returns a factory whose backends use httpClient. A nil client
// gets a plain client with the default timeout.
func NewFactory(httpClient *http.Client) *Factory {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: domain.DefaultHTTPClientTimeout}
	}
	return &Factory{httpClient: httpClient, getenv: os.Getenv}
}

// ForModel returns a completer for model, or an error wrapping
// domain.ErrBackendUnavailable when its credentials are missing.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Completer, error) {
	kind := model.Provider
	if kind == "" || kind == domain.ProviderKindUnknown {
		kind = inferProviderKind(model.Endpoint, model.Name)
	}

	switch kind {
	case domain.ProviderKindOpenAI:
		key := resolveAuth(f.getenv, model.AuthEnvVar, "OPENAI_API_KEY")
		if key == "" {
			return nil, missingKey(model, "OPENAI_API_KEY")
		}
		return newOpenAICompleter(model, key, f.httpClient), nil
	case domain.ProviderKindGemini:
		key := resolveAuth(f.getenv, model.AuthEnvVar, "GOOGLE_API_KEY", "GEMINI_API_KEY")
		if key == "" {
			return nil, missingKey(model, "GOOGLE_API_KEY or GEMINI_API_KEY")
		}
		return newGeminiCompleter(model, key, f.httpClient), nil
	case domain.ProviderKindAnthropic:
		key := resolveAuth(f.getenv, model.AuthEnvVar, "ANTHROPIC_API_KEY")
		if key == "" {
			return nil, missingKey(model, "ANTHROPIC_API_KEY")
		}
		model.Endpoint = valueOrDefault(model.Endpoint, "https://api.anthropic.com/v1/messages")
		return newHTTPCompleter(model, key, f.httpClient, anthropicAdapter()), nil
	case domain.ProviderKindHTTP:
		if model.Endpoint == "" {
			return nil, fmt.Errorf("model %s: http provider needs an endpoint: %w", model.Name, domain.ErrBackendUnavailable)
		}
		key := resolveAuth(f.getenv, model.AuthEnvVar)
		return newHTTPCompleter(model, key, f.httpClient, chatCompletionsAdapter()), nil
	default:
		return nil, fmt.Errorf("model %s: unsupported provider %q: %w", model.Name, kind, domain.ErrBackendUnavailable)
	}
}

func missingKey(model domain.ModelDefinition, fallback string) error {
	if model.AuthEnvVar != "" {
		return fmt.Errorf("model %s: set %s or %s: %w", model.Name, model.AuthEnvVar, fallback, domain.ErrBackendUnavailable)
	}
	return fmt.Errorf("model %s: set %s: %w", model.Name, fallback, domain.ErrBackendUnavailable)
}

func inferProviderKind(endpoint string, name string) domain.ProviderKind {
	nameLower := strings.ToLower(name)

	switch {
	case strings.Contains(endpoint, "anthropic.com"), strings.Contains(nameLower, "claude"):
		return domain.ProviderKindAnthropic
	case strings.Contains(endpoint, "openai.com"), strings.HasPrefix(nameLower, "gpt"):
		return domain.ProviderKindOpenAI
	case strings.Contains(endpoint, "googleapis.com"), strings.Contains(nameLower, "gemini"):
		return domain.ProviderKindGemini
	case strings.Contains(nameLower, "ollama"), strings.Contains(endpoint, "11434"), strings.Contains(endpoint, "localhost"), endpoint != "":
		return domain.ProviderKindHTTP
	default:
		return domain.ProviderKindUnknown
	}
}

var _ ports.CompleterFactory = (*Factory)(nil)
