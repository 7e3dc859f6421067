// Package assistant runs one command turn: confirmation handling, exit
// words, classification, dispatch and history.
package assistant

import (
	"context"
	"strings"
	"sync"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// Classifier turns a command into a record. It never fails.
type Classifier interface {
	Classify(ctx context.Context, command string) domain.IntentRecord
}

// Dispatcher executes records and owns the pending confirmation.
type Dispatcher interface {
	Execute(ctx context.Context, rec domain.IntentRecord) domain.ExecutionResult
	ResolveConfirmation(ctx context.Context, answer string) domain.ExecutionResult
	Pending() (domain.PendingConfirmation, bool)
}

// TurnResult is what a transport shows the user after one input line.
type TurnResult struct {
	Text                 string `json:"text"`
	Success              bool   `json:"success"`
	Exit                 bool   `json:"exit"`
	Reprompt             bool   `json:"-"`
	AwaitingConfirmation bool   `json:"awaiting_confirmation"`
}

// Core owns the cross-turn state. Turns are serialized.
type Core struct {
	Config     domain.Config
	Classifier Classifier
	Dispatcher Dispatcher
	Store      ports.HistoryRepository
	Window     *domain.ConversationWindow
	Logger     ports.Logger

	mu      sync.Mutex
	entries []domain.HistoryEntry
}

// NewCore wires a core and loads the persisted history. A missing window
// gets one sized from config.
func NewCore(ctx context.Context, cfg domain.Config, classifier Classifier, dispatcher Dispatcher, history ports.HistoryRepository, window *domain.ConversationWindow, logger ports.Logger) *Core {
	if window == nil {
		window = domain.NewConversationWindow(cfg.GetConversationWindow())
	}
	core := &Core{
		Config:     cfg,
		Classifier: classifier,
		Dispatcher: dispatcher,
		Store:      history,
		Window:     window,
		Logger:     logger,
	}
	if history != nil {
		entries, err := history.Load(ctx)
		if err != nil {
			logger.Warn("history not loaded", map[string]interface{}{"path": history.Path(), "error": err.Error()})
		}
		core.entries = entries
	}
	return core
}

// Turn handles one line of input.
func (c *Core) Turn(ctx context.Context, input string) TurnResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	command := strings.TrimSpace(input)
	if command == "" {
		return TurnResult{Reprompt: true, Success: true}
	}

	if pending, ok := c.Dispatcher.Pending(); ok {
		result := c.Dispatcher.ResolveConfirmation(ctx, command)
		c.record(ctx, domain.NewHistoryEntry(command, pending.Intent, pending.Action, result))
		return c.finish(result)
	}

	if c.Config.IsExitWord(command) {
		return TurnResult{Text: "Goodbye!", Success: true, Exit: true}
	}

	rec := c.Classifier.Classify(ctx, command)
	c.Logger.Debug("command classified", map[string]interface{}{
		"intent": string(rec.Intent()),
		"action": rec.Action(),
	})
	result := c.Dispatcher.Execute(ctx, rec)

	c.Window.Append(
		domain.Message{Role: domain.RoleUser, Content: command},
		domain.Message{Role: domain.RoleAssistant, Content: result.Text},
	)
	c.record(ctx, domain.NewHistoryEntry(command, rec.Intent(), rec.Action(), result))
	return c.finish(result)
}

// History returns the entries known to this session, oldest first.
func (c *Core) History() []domain.HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.HistoryEntry(nil), c.entries...)
}

// AwaitingConfirmation reports whether the next input answers a prompt.
func (c *Core) AwaitingConfirmation() bool {
	_, ok := c.Dispatcher.Pending()
	return ok
}

func (c *Core) finish(result domain.ExecutionResult) TurnResult {
	return TurnResult{
		Text:                 result.Text,
		Success:              result.Success,
		AwaitingConfirmation: c.AwaitingConfirmation(),
	}
}

func (c *Core) record(ctx context.Context, entry domain.HistoryEntry) {
	c.entries = domain.TrimHistory(append(c.entries, entry), c.Config.GetHistoryMaxEntries())
	if c.Store == nil {
		return
	}
	if err := c.Store.Record(ctx, entry); err != nil {
		c.Logger.Warn("history not saved", map[string]interface{}{"path": c.Store.Path(), "error": err.Error()})
	}
}
