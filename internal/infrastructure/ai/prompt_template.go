package ai

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/doeshing/jarvis-go/internal/domain"
)

type actionGroup struct {
	Intent  domain.Intent
	Actions []string
}

type promptExample struct {
	Command string
	JSON    string
}

type classifierPromptData struct {
	Command  string
	Intents  []domain.Intent
	Groups   []actionGroup
	Examples []promptExample
}

const classifierSystemPrompt = "You are the command analyzer of a desktop assistant. Reply with a single JSON object and nothing else."

var classifierPrompt = template.Must(template.New("classify").Parse(`Convert the user command into a JSON object with exactly this shape:
{"intent": "...", "action": "...", "parameters": {...}}

Valid intents: {{range $i, $it := .Intents}}{{if $i}}, {{end}}{{$it}}{{end}}

Actions per intent:
{{range .Groups}}- {{.Intent}}: {{range $i, $a := .Actions}}{{if $i}}, {{end}}{{$a}}{{end}}
{{end}}
Parameter rules:
- file creation uses "filename" (topic words joined by underscores plus the extension), "content" (the topic) and "is_topic" (true when content is a topic to expand)
- find_file and delete_file use "query"
- open_application uses "application"
- copy_to_clipboard uses "text"
- web_search uses "search_query"
- knowledge_lookup uses "topic" (the subject of a who/what question)
- weather uses "city"
- chat uses "message" with the original command
- parameter values are strings, booleans or null

Examples:
{{range .Examples}}"{{.Command}}" -> {{.JSON}}
{{end}}
COMMAND: "{{.Command}}"`))

func classifierActionGroups() []actionGroup {
	return []actionGroup{
		{domain.IntentFileCreation, []string{domain.ActionCreateWord, domain.ActionCreateExcel, domain.ActionCreatePDF, domain.ActionCreatePython, domain.ActionCreateText}},
		{domain.IntentFileManagement, []string{domain.ActionFindFile, domain.ActionDeleteFile, domain.ActionListFiles}},
		{domain.IntentSystemControl, []string{domain.ActionOpenApp, domain.ActionCopyClipboard, domain.ActionReadClipboard, domain.ActionSystemStatus}},
		{domain.IntentWebBrowse, []string{domain.ActionWebSearch, domain.ActionKnowledge, domain.ActionWeather}},
		{domain.IntentConversation, []string{domain.ActionChat}},
		{domain.IntentHelp, []string{domain.ActionShowHelp}},
	}
}

func classifierExamples() []promptExample {
	return []promptExample{
		{"create a pdf report on the history of AI", `{"intent": "file_creation", "action": "create_pdf", "parameters": {"filename": "history_of_AI.pdf", "content": "the history of AI", "is_topic": true}}`},
		{"open vscode", `{"intent": "system_control", "action": "open_application", "parameters": {"application": "vscode"}}`},
		{"search for golang tutorials", `{"intent": "web_browse", "action": "web_search", "parameters": {"search_query": "golang tutorials"}}`},
		{"what is the weather like in Tokyo", `{"intent": "web_browse", "action": "weather", "parameters": {"city": "Tokyo"}}`},
		{"who was Ada Lovelace", `{"intent": "web_browse", "action": "knowledge_lookup", "parameters": {"topic": "Ada Lovelace"}}`},
		{"delete notes.txt", `{"intent": "file_management", "action": "delete_file", "parameters": {"query": "notes.txt"}}`},
		{"hello", `{"intent": "conversation", "action": "chat", "parameters": {"message": "hello"}}`},
	}
}

// renderClassifierPrompt embeds command into the classification template.
func renderClassifierPrompt(command string) (string, error) {
	data := classifierPromptData{
		Command:  strings.ReplaceAll(command, `"`, `'`),
		Intents:  domain.Intents(),
		Groups:   classifierActionGroups(),
		Examples: classifierExamples(),
	}
	var buf bytes.Buffer
	if err := classifierPrompt.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
