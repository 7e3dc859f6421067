package config

import (
	"strings"
	"testing"

	"github.com/doeshing/jarvis-go/internal/domain"
)

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	if err := Validate(domain.Config{}); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := domain.Config{
		Models: []domain.ModelDefinition{
			{Name: "local", Provider: domain.ProviderKindHTTP},
			{Name: "local", Provider: "carrier-pigeon"},
		},
		Classifier:   domain.ClassifierSettings{Backends: []string{"missing"}, CacheTTL: "soon"},
		AI:           domain.AISettings{Proxy: "http://proxy:8080"},
		Files:        domain.FileSettings{EnabledTypes: []string{"txt", "exe"}},
		Confirmation: domain.ConfirmationSettings{Policy: "sometimes"},
		History:      domain.HistorySettings{Backend: "redis"},
		Web:          domain.WebSettings{SearchURL: "google"},
	}
	err := Validate(cfg)
	if err == nil {
		t.Fatalf("Validate() expected error")
	}
	for _, want := range []string{
		"needs an endpoint",
		"declared twice",
		"unknown provider",
		"classifier backend missing",
		"cache_ttl",
		"socks5",
		"unsupported type exe",
		"confirmation.policy",
		"history.backend",
		"web.search_url",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err.Error(), want)
		}
	}
}
