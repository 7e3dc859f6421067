package ai

import (
	"context"
	"os"
	"time"

	"github.com/doeshing/jarvis-go/internal/domain"
)

// resolveAuth returns the first non-empty environment value among names.
func resolveAuth(getenv func(string) string, names ...string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		if value := getenv(name); value != "" {
			return value
		}
	}
	return ""
}

func valueOrDefault(value string, def string) string {
	if value == "" {
		return def
	}
	return value
}

func valueOrDefaultInt(value int, def int) int {
	if value <= 0 {
		return def
	}
	return value
}

func valueOrDefaultFloat(value float64, def float64) float64 {
	if value <= 0 {
		return def
	}
	return value
}

// withBackendTimeout bounds one completion call by the model's timeout.
func withBackendTimeout(ctx context.Context, model domain.ModelDefinition) (context.Context, context.CancelFunc) {
	timeout := domain.DefaultBackendTimeout
	if model.TimeoutSeconds > 0 {
		timeout = time.Duration(model.TimeoutSeconds) * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
