package ai

import (
	"context"
	"regexp"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

var (
	createVerb    = regexp.MustCompile(`\b(?:create|make|generate|write)\b`)
	findVerb      = regexp.MustCompile(`\b(?:find|locate)\b|\bsearch for\b`)
	deleteVerb    = regexp.MustCompile(`\b(?:delete|remove)\b`)
	openVerb      = regexp.MustCompile(`\b(?:open|launch|start)\b`)
	webVerb       = regexp.MustCompile(`\b(?:search|browse|google)\b`)
	helpWord      = regexp.MustCompile(`\b(?:help|commands)\b|what can you do`)
	copyClipboard = regexp.MustCompile(`(?i)^copy\s+(.+?)\s+to\s+(?:the\s+|my\s+)?clipboard$`)
	readClipboard = regexp.MustCompile(`\bread\s+(?:the\s+|my\s+)?clipboard\b|what(?:'s| is) in (?:the |my )?clipboard|\bpaste\b`)
	systemStatus  = regexp.MustCompile(`\bsystem\s+(?:status|info)\b|\bstatus of (?:the |my )?system\b`)
	weatherWord   = regexp.MustCompile(`\b(?:weather|forecast)\b`)
	weatherCity   = regexp.MustCompile(`(?i)\b(?:in|for|at)\s+(.+?)\s*(?:right now|today|tonight|tomorrow|now)?[?.!\s]*$`)
	knowledgeAsk  = regexp.MustCompile(`(?i)^(?:who|what)\s+(?:is|was|are|were)\s+(.+?)[?.!\s]*$|^(?:tell me about|look up|wikipedia)\s+(.+?)[?.!\s]*$`)
	leadArticle   = regexp.MustCompile(`(?i)^(?:a|an|the)\s+`)
	fileFiller    = regexp.MustCompile(`^(?:the\s+|my\s+|a\s+)?(?:files?\s+)?(?:named\s+|called\s+)?`)
	listFiles     = []string{"list files", "show files", "list my files", "show my files"}
)

// RuleClassifier is the offline keyword strategy. It always produces a record.
type RuleClassifier struct{}

// NewRuleClassifier returns the keyword strategy.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

func (r *RuleClassifier) Name() string {
	return "rules"
}

func (r *RuleClassifier) Classify(_ context.Context, command string) (domain.IntentRecord, error) {
	return classifyByRules(command), nil
}

func classifyByRules(command string) domain.IntentRecord {
	original := strings.TrimSpace(command)
	cmd := strings.ToLower(original)

	switch {
	case createVerb.MatchString(cmd):
		return creationRecord(original, creationAction(cmd))
	case findVerb.MatchString(cmd):
		return domain.NewIntentRecord(domain.IntentFileManagement, domain.ActionFindFile, map[string]any{
			domain.ParamQuery: fileQuery(findVerb, cmd),
		})
	case deleteVerb.MatchString(cmd):
		return domain.NewIntentRecord(domain.IntentFileManagement, domain.ActionDeleteFile, map[string]any{
			domain.ParamQuery: fileQuery(deleteVerb, cmd),
		})
	case containsAny(cmd, listFiles...):
		return domain.NewIntentRecord(domain.IntentFileManagement, domain.ActionListFiles, nil)
	case openVerb.MatchString(cmd):
		return domain.NewIntentRecord(domain.IntentSystemControl, domain.ActionOpenApp, map[string]any{
			domain.ParamApplication: stripVerb(openVerb, cmd),
		})
	case copyClipboard.MatchString(original):
		text := copyClipboard.FindStringSubmatch(original)[1]
		return domain.NewIntentRecord(domain.IntentSystemControl, domain.ActionCopyClipboard, map[string]any{
			domain.ParamText: strings.Trim(text, `"'`),
		})
	case readClipboard.MatchString(cmd):
		return domain.NewIntentRecord(domain.IntentSystemControl, domain.ActionReadClipboard, nil)
	case systemStatus.MatchString(cmd):
		return domain.NewIntentRecord(domain.IntentSystemControl, domain.ActionSystemStatus, nil)
	case weatherWord.MatchString(cmd):
		city := ""
		if m := weatherCity.FindStringSubmatch(original); m != nil {
			city = strings.TrimSpace(m[1])
		}
		return domain.NewIntentRecord(domain.IntentWebBrowse, domain.ActionWeather, map[string]any{
			domain.ParamCity: city,
		})
	case knowledgeTopic(original) != "":
		return domain.NewIntentRecord(domain.IntentWebBrowse, domain.ActionKnowledge, map[string]any{
			domain.ParamTopic: knowledgeTopic(original),
		})
	case webVerb.MatchString(cmd):
		return domain.NewIntentRecord(domain.IntentWebBrowse, domain.ActionWebSearch, map[string]any{
			domain.ParamSearchQuery: stripVerb(webVerb, cmd),
		})
	case helpWord.MatchString(cmd):
		return domain.NewIntentRecord(domain.IntentHelp, domain.ActionShowHelp, nil)
	default:
		return domain.ChatRecord(original)
	}
}

// knowledgeTopic returns the subject of a "who is / what is / tell me about"
// question, or "" when the question is about the assistant itself.
func knowledgeTopic(command string) string {
	m := knowledgeAsk.FindStringSubmatch(command)
	if m == nil {
		return ""
	}
	topic := m[1]
	if topic == "" {
		topic = m[2]
	}
	topic = strings.TrimSpace(leadArticle.ReplaceAllString(strings.TrimSpace(topic), ""))
	lower := strings.ToLower(topic)
	if lower == "you" || lower == "up" || strings.HasPrefix(lower, "your ") || strings.HasPrefix(lower, "you ") {
		return ""
	}
	return topic
}

func creationAction(cmd string) string {
	switch {
	case containsAny(cmd, "word", "doc", ".docx"):
		return domain.ActionCreateWord
	case containsAny(cmd, "excel", ".xlsx", "spreadsheet"):
		return domain.ActionCreateExcel
	case strings.Contains(cmd, "pdf"):
		return domain.ActionCreatePDF
	case containsAny(cmd, "python", ".py", "script"):
		return domain.ActionCreatePython
	default:
		return domain.ActionCreateText
	}
}

func creationRecord(command string, action string) domain.IntentRecord {
	topic := extractTopic(command)
	return domain.NewIntentRecord(domain.IntentFileCreation, action, map[string]any{
		domain.ParamFilename: topicFilename(topic, domain.ExtensionForAction(action)),
		domain.ParamContent:  topic,
		domain.ParamIsTopic:  true,
	})
}

func stripVerb(verb *regexp.Regexp, cmd string) string {
	return strings.Join(strings.Fields(verb.ReplaceAllString(cmd, " ")), " ")
}

func fileQuery(verb *regexp.Regexp, cmd string) string {
	return strings.TrimSpace(fileFiller.ReplaceAllString(stripVerb(verb, cmd), ""))
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

var _ ports.ClassifierStrategy = (*RuleClassifier)(nil)
