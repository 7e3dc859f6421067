// Package classify runs the ordered classifier strategies for one command.
package classify

import (
	"context"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// Service tries each strategy in order and returns the first success.
// The last strategy is expected to be infallible; if every strategy fails
// the command is treated as conversation.
type Service struct {
	Strategies []ports.ClassifierStrategy
	// Cache is optional. Results from the Fallback strategy are never stored.
	Cache    ports.ClassificationCache
	Fallback string
	Logger   ports.Logger
}

// Classify never fails. Strategy errors are logged at debug level.
func (s *Service) Classify(ctx context.Context, command string) domain.IntentRecord {
	command = strings.TrimSpace(command)

	if s.Cache != nil {
		if rec, ok := s.Cache.Get(command); ok {
			s.debug("classification cache hit", map[string]interface{}{"command": command})
			return rec
		}
	}

	for _, strategy := range s.Strategies {
		rec, err := strategy.Classify(ctx, command)
		if err != nil {
			s.debug("classifier strategy failed", map[string]interface{}{
				"strategy": strategy.Name(),
				"error":    err.Error(),
			})
			continue
		}

		s.debug("command classified", map[string]interface{}{
			"strategy": strategy.Name(),
			"intent":   string(rec.Intent()),
			"action":   rec.Action(),
		})
		if s.Cache != nil && strategy.Name() != s.Fallback {
			s.Cache.Set(command, rec)
		}
		return rec
	}

	return domain.ChatRecord(command)
}

func (s *Service) debug(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Debug(msg, fields)
	}
}
