package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// ErrNoJSON reports a completion that carried no JSON object.
var ErrNoJSON = errors.New("completion contained no JSON object")

// RemoteClassifier asks a completion backend to classify a command.
type RemoteClassifier struct {
	completer   ports.Completer
	temperature float64
	maxTokens   int
}

// NewRemoteClassifier wraps completer. Zero temperature or maxTokens use the
// classifier defaults.
func NewRemoteClassifier(completer ports.Completer, temperature float64, maxTokens int) *RemoteClassifier {
	return &RemoteClassifier{
		completer:   completer,
		temperature: valueOrDefaultFloat(temperature, domain.DefaultClassifierTemperature),
		maxTokens:   valueOrDefaultInt(maxTokens, domain.DefaultClassifierMaxTokens),
	}
}

func (c *RemoteClassifier) Name() string {
	return "remote:" + c.completer.Name()
}

// Classify returns an error for any transport or decoding failure so the
// chain can move on to the next strategy.
func (c *RemoteClassifier) Classify(ctx context.Context, command string) (domain.IntentRecord, error) {
	prompt, err := renderClassifierPrompt(command)
	if err != nil {
		return domain.IntentRecord{}, err
	}

	reply, err := c.completer.Complete(ctx, domain.CompletionRequest{
		System:      classifierSystemPrompt,
		Prompt:      prompt,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		JSON:        true,
	})
	if err != nil {
		return domain.IntentRecord{}, err
	}
	return parseClassification(reply, command)
}

type classification struct {
	Intent     string                 `json:"intent"`
	Action     string                 `json:"action"`
	Parameters map[string]interface{} `json:"parameters"`
}

// parseClassification decodes the first JSON object of reply into a record.
func parseClassification(reply string, command string) (domain.IntentRecord, error) {
	raw, ok := extractJSONObject(reply)
	if !ok {
		return domain.IntentRecord{}, ErrNoJSON
	}
	var parsed classification
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return domain.IntentRecord{}, fmt.Errorf("decode classification: %w", err)
	}

	intent, ok := domain.ParseIntent(parsed.Intent)
	if !ok {
		return domain.ChatRecord(command), nil
	}

	params := make(map[string]any, len(parsed.Parameters))
	for key, value := range parsed.Parameters {
		params[key] = scalarParam(value)
	}
	if intent == domain.IntentConversation {
		if msg, _ := params[domain.ParamMessage].(string); strings.TrimSpace(msg) == "" {
			params[domain.ParamMessage] = command
		}
	}
	action := strings.ToLower(strings.TrimSpace(parsed.Action))
	if action == "" {
		action = defaultAction(intent)
	}
	return domain.NewIntentRecord(intent, action, params), nil
}

// defaultAction fills the action for intents that only have one.
func defaultAction(intent domain.Intent) string {
	switch intent {
	case domain.IntentConversation:
		return domain.ActionChat
	case domain.IntentHelp:
		return domain.ActionShowHelp
	case domain.IntentWebBrowse:
		return domain.ActionWebSearch
	default:
		return ""
	}
}

// scalarParam keeps strings, bools and nulls and stringifies everything else.
func scalarParam(value interface{}) any {
	switch v := value.(type) {
	case nil, string, bool:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

var _ ports.ClassifierStrategy = (*RemoteClassifier)(nil)
