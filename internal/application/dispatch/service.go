// Package dispatch routes classified commands to handlers and owns the
// single pending-confirmation slot.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

const (
	msgAwaitingConfirmation = "Another action is awaiting confirmation. Please answer yes or no first."
	msgNothingToConfirm     = "Nothing to confirm."
	msgCancelled            = "OK, action cancelled."
	msgTypeHelp             = "Type 'help' for available commands."
)

// Service is the action dispatcher. It is safe for concurrent use; calls
// are serialized.
type Service struct {
	mu          sync.Mutex
	handlers    map[domain.Intent]ports.Handler
	affirmative []string
	known       []string
	logger      ports.Logger
	now         func() time.Time
	pending     *domain.PendingConfirmation
}

// NewService builds a dispatcher. Empty affirmative defaults to "yes" and "y".
func NewService(handlers map[domain.Intent]ports.Handler, affirmative []string, logger ports.Logger) *Service {
	if len(affirmative) == 0 {
		affirmative = []string{"yes", "y"}
	}
	copied := make(map[domain.Intent]ports.Handler, len(handlers))
	for intent, h := range handlers {
		copied[intent] = h
	}
	return &Service{
		handlers:    copied,
		affirmative: affirmative,
		known:       KnownCommands,
		logger:      logger,
		now:         time.Now,
	}
}

// Execute runs the handler for rec. It never returns an error; failures are
// reported in the result text.
func (s *Service) Execute(ctx context.Context, rec domain.IntentRecord) domain.ExecutionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	handler, ok := s.handlers[rec.Intent()]
	if !ok {
		return s.suggestion(rec)
	}

	var out ports.HandlerResult
	err := s.guard(func() error {
		var err error
		out, err = handler.Handle(ctx, rec)
		return err
	})
	if err != nil {
		return s.errorResult(rec, err)
	}

	if out.Confirm == nil {
		return out.Result
	}
	if s.pending != nil {
		return domain.Failed(msgAwaitingConfirmation)
	}

	pending := *out.Confirm
	if pending.Intent == "" {
		pending.Intent = rec.Intent()
	}
	if pending.Action == "" {
		pending.Action = rec.Action()
	}
	if pending.CreatedAt.IsZero() {
		pending.CreatedAt = s.now()
	}
	s.pending = &pending
	return domain.Succeeded(pending.Prompt, domain.SideEffect{Kind: domain.EffectPendingAction, Target: pending.Payload})
}

// ResolveConfirmation commits the pending action on an affirmative answer
// and cancels it otherwise. The slot is cleared either way.
func (s *Service) ResolveConfirmation(ctx context.Context, answer string) domain.ExecutionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return domain.Failed(msgNothingToConfirm)
	}
	pending := *s.pending
	s.pending = nil

	if !s.isAffirmative(answer) {
		s.logger.Info("confirmation declined", map[string]interface{}{
			"action": pending.Action,
			"target": pending.Payload,
		})
		return domain.Failed(msgCancelled)
	}

	committer, ok := s.handlers[pending.Intent].(ports.Committer)
	if !ok {
		s.logger.Error("pending action has no committer", domain.ErrUnknownAction, map[string]interface{}{
			"intent": string(pending.Intent),
			"action": pending.Action,
		})
		return domain.Failed(fmt.Sprintf("Failed: cannot complete %s.", pending.Action))
	}

	var result domain.ExecutionResult
	err := s.guard(func() error {
		var err error
		result, err = committer.Commit(ctx, pending)
		return err
	})
	if err != nil {
		return s.errorResult(domain.NewIntentRecord(pending.Intent, pending.Action, nil), err)
	}
	return result
}

// Pending reports the action awaiting confirmation, if any.
func (s *Service) Pending() (domain.PendingConfirmation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return domain.PendingConfirmation{}, false
	}
	return *s.pending, true
}

type panicError struct {
	value interface{}
}

func (p panicError) Error() string {
	return fmt.Sprint(p.value)
}

// guard converts a handler panic into an error.
func (s *Service) guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{value: r}
		}
	}()
	return fn()
}

func (s *Service) errorResult(rec domain.IntentRecord, err error) domain.ExecutionResult {
	var p panicError
	switch {
	case errors.As(err, &p):
		s.logger.Error("handler panic", err, map[string]interface{}{
			"intent": string(rec.Intent()),
			"action": rec.Action(),
		})
		return domain.Failed("Internal error: " + p.Error())
	case errors.Is(err, domain.ErrUnknownAction):
		return s.suggestion(rec)
	case errors.Is(err, domain.ErrInvalidInput):
		return domain.Failed("Invalid input: " + detail(err, domain.ErrInvalidInput))
	default:
		s.logger.Error("handler failed", err, map[string]interface{}{
			"intent": string(rec.Intent()),
			"action": rec.Action(),
		})
		return domain.Failed("Failed: " + err.Error())
	}
}

func (s *Service) suggestion(rec domain.IntentRecord) domain.ExecutionResult {
	input := rec.String(domain.ParamMessage)
	if input == "" {
		input = rec.Action()
	}
	if matches := suggest(input, s.known); len(matches) > 0 {
		return domain.Failed("Did you mean: " + strings.Join(matches, ", ") + "?")
	}
	return domain.Failed(msgTypeHelp)
}

func (s *Service) isAffirmative(answer string) bool {
	answer = strings.TrimSpace(answer)
	for _, token := range s.affirmative {
		if strings.EqualFold(answer, strings.TrimSpace(token)) {
			return true
		}
	}
	return false
}

// detail strips the sentinel prefix from a wrapped error message.
func detail(err error, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
