package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doeshing/jarvis-go/internal/domain"
)

func TestHTTPCompleterChatCompletions(t *testing.T) {
	var got chatCompletionRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  {\"intent\":\"help\"}  "}}]}`))
	}))
	defer server.Close()

	model := domain.ModelDefinition{Name: "ollama", Endpoint: server.URL, ModelID: "llama3"}
	completer := newHTTPCompleter(model, "", server.Client(), chatCompletionsAdapter())

	reply, err := completer.Complete(context.Background(), domain.CompletionRequest{
		System:  "sys",
		Prompt:  "help",
		History: []domain.Message{{Role: domain.RoleUser, Content: "hi"}, {Role: domain.RoleAssistant, Content: "hello"}},
		JSON:    true,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != `{"intent":"help"}` {
		t.Fatalf("reply = %q", reply)
	}
	if auth != "" {
		t.Fatalf("unexpected authorization header %q", auth)
	}
	if got.Model != "llama3" || len(got.Messages) != 4 || got.Messages[0].Role != "system" || got.Messages[2].Role != domain.RoleAssistant {
		t.Fatalf("unexpected request %+v", got)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected json response format, got %+v", got.ResponseFormat)
	}
}

func TestHTTPCompleterReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer server.Close()

	model := domain.ModelDefinition{Name: "local", Endpoint: server.URL}
	_, err := newHTTPCompleter(model, "k", server.Client(), chatCompletionsAdapter()).Complete(context.Background(), domain.CompletionRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("expected error for 429")
	}
}

func TestHTTPCompleterAnthropic(t *testing.T) {
	var body map[string]interface{}
	var headers http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"hello from claude"}]}`))
	}))
	defer server.Close()

	model := domain.ModelDefinition{Name: "claude", Endpoint: server.URL}
	reply, err := newHTTPCompleter(model, "secret", server.Client(), anthropicAdapter()).Complete(context.Background(), domain.CompletionRequest{System: "be brief", Prompt: "hi"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "hello from claude" {
		t.Fatalf("reply = %q", reply)
	}
	if headers.Get("x-api-key") != "secret" || headers.Get("anthropic-version") == "" {
		t.Fatalf("missing anthropic headers: %v", headers)
	}
	if body["system"] != "be brief" {
		t.Fatalf("system prompt not sent: %v", body)
	}
	if msgs, ok := body["messages"].([]interface{}); !ok || len(msgs) != 1 {
		t.Fatalf("expected one chat message, got %v", body["messages"])
	}
}

func TestFactoryForModel(t *testing.T) {
	env := map[string]string{"MY_KEY": "abc", "GEMINI_API_KEY": "g"}
	f := NewFactory(nil)
	f.getenv = func(k string) string { return env[k] }

	tests := []struct {
		name    string
		model   domain.ModelDefinition
		wantErr bool
	}{
		{"openai without key", domain.ModelDefinition{Name: "gpt-4o-mini", Provider: domain.ProviderKindOpenAI}, true},
		{"openai custom env", domain.ModelDefinition{Name: "gpt", Provider: domain.ProviderKindOpenAI, AuthEnvVar: "MY_KEY"}, false},
		{"gemini fallback env", domain.ModelDefinition{Name: "gemini"}, false},
		{"anthropic without key", domain.ModelDefinition{Name: "claude"}, true},
		{"http without endpoint", domain.ModelDefinition{Name: "local", Provider: domain.ProviderKindHTTP}, true},
		{"ollama inferred", domain.ModelDefinition{Name: "ollama", Endpoint: "http://localhost:11434/v1/chat/completions"}, false},
		{"unknown", domain.ModelDefinition{Name: "mystery"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer, err := f.ForModel(tt.model)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrBackendUnavailable) {
					t.Fatalf("ForModel() error = %v, want ErrBackendUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForModel() error = %v", err)
			}
			if completer.Name() != tt.model.Name {
				t.Fatalf("Name() = %q", completer.Name())
			}
		})
	}
}

func TestNewHTTPClientProxy(t *testing.T) {
	if _, err := NewHTTPClient("", 0); err != nil {
		t.Fatalf("plain client error = %v", err)
	}
	if _, err := NewHTTPClient("socks5://user:pw@127.0.0.1:1080", 0); err != nil {
		t.Fatalf("socks5 client error = %v", err)
	}
	if _, err := NewHTTPClient("127.0.0.1:1080", 0); err != nil {
		t.Fatalf("bare host client error = %v", err)
	}
	if _, err := NewHTTPClient("http://127.0.0.1:8080", 0); err == nil {
		t.Fatal("expected http proxy scheme to be rejected")
	}
}
