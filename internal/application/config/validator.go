package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/doeshing/jarvis-go/internal/domain"
)

var supportedFileTypes = map[string]bool{"txt": true, "md": true, "py": true, "docx": true, "xlsx": true, "pdf": true}

// Validate ensures config structure is consistent. All problems are reported together.
func Validate(cfg domain.Config) error {
	var errs []error
	errs = append(errs, validateModels(cfg.Models)...)
	if err := cfg.ValidateConsistency(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs,
		validateClassifier(cfg.Classifier),
		validateProxy(cfg.AI.Proxy),
		validateFiles(cfg.Files),
		validateConfirmation(cfg.Confirmation),
		validateHistory(cfg.History),
		validateWeb(cfg.Web),
	)
	return errors.Join(errs...)
}

func validateModels(models []domain.ModelDefinition) []error {
	var errs []error
	seen := make(map[string]bool, len(models))
	for i, model := range models {
		if model.Name == "" {
			errs = append(errs, fmt.Errorf("models[%d].name must be set", i))
			continue
		}
		if seen[model.Name] {
			errs = append(errs, fmt.Errorf("model %s is declared twice", model.Name))
		}
		seen[model.Name] = true
		switch model.Provider {
		case "", domain.ProviderKindOpenAI, domain.ProviderKindGemini, domain.ProviderKindAnthropic:
		case domain.ProviderKindHTTP:
			if model.Endpoint == "" {
				errs = append(errs, fmt.Errorf("model %s: http provider needs an endpoint", model.Name))
			}
		default:
			errs = append(errs, fmt.Errorf("model %s: unknown provider %s", model.Name, model.Provider))
		}
		if model.TimeoutSeconds < 0 || model.MaxTokens < 0 {
			errs = append(errs, fmt.Errorf("model %s: timeout and max_tokens must be >= 0", model.Name))
		}
	}
	return errs
}

func validateClassifier(c domain.ClassifierSettings) error {
	if c.CacheTTL != "" {
		if _, err := time.ParseDuration(c.CacheTTL); err != nil {
			return fmt.Errorf("classifier.cache_ttl invalid: %w", err)
		}
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("classifier.cache_size must be >= 0")
	}
	return nil
}

func validateProxy(proxy string) error {
	if proxy == "" || !strings.Contains(proxy, "://") {
		return nil
	}
	u, err := url.Parse(proxy)
	if err != nil {
		return fmt.Errorf("ai.proxy invalid: %w", err)
	}
	if u.Scheme != "socks5" && u.Scheme != "socks5h" {
		return fmt.Errorf("ai.proxy must use socks5, got %s", u.Scheme)
	}
	return nil
}

func validateFiles(files domain.FileSettings) error {
	for _, t := range files.EnabledTypes {
		if !supportedFileTypes[strings.TrimPrefix(strings.ToLower(t), ".")] {
			return fmt.Errorf("files.enabled_types: unsupported type %s", t)
		}
	}
	return nil
}

func validateConfirmation(c domain.ConfirmationSettings) error {
	switch strings.ToLower(c.Policy) {
	case "", domain.ConfirmAlways, domain.ConfirmNever:
		return nil
	default:
		return fmt.Errorf("confirmation.policy must be always|never, got %s", c.Policy)
	}
}

func validateHistory(history domain.HistorySettings) error {
	switch strings.ToLower(history.Backend) {
	case "", domain.HistoryBackendJSON, domain.HistoryBackendSQLite:
	default:
		return fmt.Errorf("history.backend must be json|sqlite, got %s", history.Backend)
	}
	if history.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must be >= 0")
	}
	return nil
}

func validateWeb(web domain.WebSettings) error {
	for key, raw := range map[string]string{
		"web.search_url":    web.SearchURL,
		"web.home_url":      web.HomeURL,
		"web.knowledge_url": web.KnowledgeURL,
		"web.weather_url":   web.WeatherURL,
	} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %s", key, raw)
		}
	}
	return nil
}
