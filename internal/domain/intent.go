package domain

import "strings"

// Intent is the coarse category of what the user asked for.
type Intent string

const (
	IntentFileCreation   Intent = "file_creation"
	IntentFileManagement Intent = "file_management"
	IntentSystemControl  Intent = "system_control"
	IntentWebBrowse      Intent = "web_browse"
	IntentConversation   Intent = "conversation"
	IntentHelp           Intent = "help"
)

// Actions understood by the built-in handlers.
const (
	ActionCreateWord    = "create_word"
	ActionCreateExcel   = "create_excel"
	ActionCreatePDF     = "create_pdf"
	ActionCreatePython  = "create_python"
	ActionCreateText    = "create_text"
	ActionFindFile      = "find_file"
	ActionDeleteFile    = "delete_file"
	ActionListFiles     = "list_files"
	ActionOpenApp       = "open_application"
	ActionCopyClipboard = "copy_to_clipboard"
	ActionReadClipboard = "read_clipboard"
	ActionSystemStatus  = "get_system_status"
	ActionWebSearch     = "web_search"
	ActionKnowledge     = "knowledge_lookup"
	ActionWeather       = "weather"
	ActionChat          = "chat"
	ActionShowHelp      = "show_help"
)

// Parameter keys shared between classifiers and handlers.
const (
	ParamFilename    = "filename"
	ParamContent     = "content"
	ParamIsTopic     = "is_topic"
	ParamQuery       = "query"
	ParamApplication = "application"
	ParamSearchQuery = "search_query"
	ParamMessage     = "message"
	ParamText        = "text"
	ParamTopic       = "topic"
	ParamCity        = "city"
)

// Intents returns the closed intent set in canonical order.
func Intents() []Intent {
	return []Intent{
		IntentFileCreation,
		IntentFileManagement,
		IntentSystemControl,
		IntentWebBrowse,
		IntentConversation,
		IntentHelp,
	}
}

// ParseIntent reports whether raw names a member of the closed set.
func ParseIntent(raw string) (Intent, bool) {
	candidate := Intent(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Intents() {
		if candidate == known {
			return known, true
		}
	}
	return "", false
}

// IntentRecord is the classifier's structured reading of one command.
// Values are created through NewIntentRecord and never change afterwards.
type IntentRecord struct {
	intent Intent
	action string
	params map[string]any
}

// NewIntentRecord builds a record, coercing anything outside the closed
// intent set to conversation/chat. Parameter values must be string, bool or
// nil; other values are dropped.
func NewIntentRecord(intent Intent, action string, params map[string]any) IntentRecord {
	if _, ok := ParseIntent(string(intent)); !ok {
		return ChatRecord(stringParam(params, ParamMessage))
	}
	return IntentRecord{
		intent: intent,
		action: strings.TrimSpace(action),
		params: copyParams(params),
	}
}

// ChatRecord is the conversation/chat fallback carrying the raw message.
func ChatRecord(message string) IntentRecord {
	return IntentRecord{
		intent: IntentConversation,
		action: ActionChat,
		params: map[string]any{ParamMessage: message},
	}
}

func (r IntentRecord) Intent() Intent { return r.intent }
func (r IntentRecord) Action() string { return r.action }

// Params returns a copy of the parameter map.
func (r IntentRecord) Params() map[string]any {
	return copyParams(r.params)
}

// String returns the string parameter named key, or "" when absent.
func (r IntentRecord) String(key string) string {
	return stringParam(r.params, key)
}

// Bool returns the bool parameter named key. "true" strings count as true.
func (r IntentRecord) Bool(key string) bool {
	switch v := r.params[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

// Equal compares two records field by field.
func (r IntentRecord) Equal(other IntentRecord) bool {
	if r.intent != other.intent || r.action != other.action || len(r.params) != len(other.params) {
		return false
	}
	for k, v := range r.params {
		ov, ok := other.params[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

func stringParam(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

func copyParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		switch v.(type) {
		case string, bool, nil:
			out[k] = v
		}
	}
	return out
}

var extensionsByAction = map[string]string{
	ActionCreateWord:   ".docx",
	ActionCreateExcel:  ".xlsx",
	ActionCreatePDF:    ".pdf",
	ActionCreatePython: ".py",
	ActionCreateText:   ".txt",
}

// ExtensionForAction maps a create_* action to its file extension,
// defaulting to .txt.
func ExtensionForAction(action string) string {
	if ext, ok := extensionsByAction[action]; ok {
		return ext
	}
	return ".txt"
}
