package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

const chatSystemPrompt = "You are %s, a concise and friendly desktop assistant. Answer in a few sentences."

var generationPrompts = map[ports.ContentKind]string{
	ports.ContentJSON: "For '%s', generate structured data as a single JSON object with 'headers' (list of strings) and 'rows' (list of lists of strings). Make it realistic and useful. Output only the JSON.",
	ports.ContentCode: "Write a complete, well-documented Python script for: '%s'. Include error handling and comments. Only output raw code, no markdown formatting.",
	ports.ContentText: "Write a comprehensive, well-structured document about '%s' using Markdown formatting (# headings, **bold**, * bullets, proper paragraphs).",
}

// Generator writes document bodies and chat replies. Without a completer it
// falls back to fixed templates.
type Generator struct {
	completer     ports.Completer
	assistantName string
	logger        ports.Logger
}

// NewGenerator returns a generator. completer may be nil.
func NewGenerator(completer ports.Completer, assistantName string, logger ports.Logger) *Generator {
	return &Generator{
		completer:     completer,
		assistantName: valueOrDefault(assistantName, domain.DefaultAssistantName),
		logger:        logger,
	}
}

// Generate expands topic into content of the given kind. Remote failures
// degrade to the template, so Generate only fails on a cancelled context.
func (g *Generator) Generate(ctx context.Context, topic string, kind ports.ContentKind) (string, error) {
	topic = strings.TrimSpace(topic)
	if g.completer == nil {
		return templateContent(topic, kind), nil
	}

	prompt, ok := generationPrompts[kind]
	if !ok {
		prompt = generationPrompts[ports.ContentText]
	}
	reply, err := g.completer.Complete(ctx, domain.CompletionRequest{
		Prompt: fmt.Sprintf(prompt, topic),
		JSON:   kind == ports.ContentJSON,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		g.logger.Warn("content generation failed, using template", map[string]interface{}{
			"backend": g.completer.Name(),
			"kind":    string(kind),
			"error":   err.Error(),
		})
		return templateContent(topic, kind), nil
	}
	return stripCodeFence(reply), nil
}

// Chat answers message with the recent conversation as context.
func (g *Generator) Chat(ctx context.Context, message string, history []domain.Message) (string, error) {
	if g.completer == nil {
		return "", domain.ErrBackendUnavailable
	}
	reply, err := g.completer.Complete(ctx, domain.CompletionRequest{
		System:  fmt.Sprintf(chatSystemPrompt, g.assistantName),
		Prompt:  message,
		History: history,
	})
	if err != nil {
		return "", fmt.Errorf("chat via %s: %w", g.completer.Name(), err)
	}
	return reply, nil
}

// stripCodeFence removes a surrounding ```lang ... ``` block when present.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := trimmed[3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

var _ ports.ContentGenerator = (*Generator)(nil)
