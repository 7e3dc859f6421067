package handlers

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

const defaultReply = "I'm not sure how to help with that yet. Type 'help' to see what I can do."

type cannedReply struct {
	pattern *regexp.Regexp
	reply   string
}

var cannedReplies = []cannedReply{
	{regexp.MustCompile(`^(?:hi|hello|hey|good (?:morning|afternoon|evening))\b`), "Hello! I'm %s. How can I help you today?"},
	{regexp.MustCompile(`\bhow are you\b`), "I'm running smoothly, thanks for asking. What can I do for you?"},
	{regexp.MustCompile(`\bwhat can you do\b`), "I can create documents, find or delete files, open applications, search the web and chat. Type 'help' for examples."},
	{regexp.MustCompile(`\b(?:thanks|thank you)\b`), "You're welcome!"},
	{regexp.MustCompile(`^(?:bye|goodbye|see you)\b`), "Goodbye! Say 'exit' whenever you want to close me."},
}

// ConversationHandler answers small talk, then defers to the chat backend.
type ConversationHandler struct {
	AssistantName string
	Generator     ports.ContentGenerator
	// History returns the recent conversation, oldest first. Optional.
	History func() []domain.Message
	Logger  ports.Logger
}

// Handle implements ports.Handler.
func (h *ConversationHandler) Handle(ctx context.Context, rec domain.IntentRecord) (ports.HandlerResult, error) {
	if rec.Action() != domain.ActionChat {
		return ports.HandlerResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownAction, rec.Action())
	}
	message := strings.TrimSpace(rec.String(domain.ParamMessage))
	return ports.HandlerResult{Result: domain.Succeeded(h.reply(ctx, message))}, nil
}

func (h *ConversationHandler) reply(ctx context.Context, message string) string {
	lower := strings.ToLower(message)
	for _, canned := range cannedReplies {
		if canned.pattern.MatchString(lower) {
			if strings.Contains(canned.reply, "%s") {
				return fmt.Sprintf(canned.reply, h.name())
			}
			return canned.reply
		}
	}

	if h.Generator == nil || message == "" {
		return defaultReply
	}
	var history []domain.Message
	if h.History != nil {
		history = h.History()
	}
	reply, err := h.Generator.Chat(ctx, message, history)
	if err != nil {
		h.Logger.Debug("chat backend unavailable", map[string]interface{}{"error": err.Error()})
		return defaultReply
	}
	return reply
}

func (h *ConversationHandler) name() string {
	if h.AssistantName == "" {
		return domain.DefaultAssistantName
	}
	return h.AssistantName
}

var _ ports.Handler = (*ConversationHandler)(nil)
