package ai

import (
	"regexp"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
)

const defaultTopic = "document"

var (
	topicAfterPreposition = regexp.MustCompile(`(?i)\b(?:about|on|for|regarding)\s+(.+)`)
	topicAfterVerb        = regexp.MustCompile(`(?i)\b(?:create|make|generate|write)\s+(?:an?\s+)?(?:new\s+)?(?:word|excel|pdf|python|text)?\s*(?:file|doc|document|script|spreadsheet|report)?\s*(.*)`)
	filenameUnsafe        = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	whitespaceRun         = regexp.MustCompile(`\s+`)
)

// extractTopic pulls the subject out of a creation command.
func extractTopic(command string) string {
	for _, pattern := range []*regexp.Regexp{topicAfterPreposition, topicAfterVerb} {
		if m := pattern.FindStringSubmatch(command); m != nil {
			if topic := strings.TrimSpace(m[1]); topic != "" {
				return strings.TrimRight(topic, ".!?")
			}
		}
	}
	return defaultTopic
}

// topicFilename turns a topic into a safe file stem plus ext.
func topicFilename(topic string, ext string) string {
	clean := filenameUnsafe.ReplaceAllString(topic, "")
	clean = whitespaceRun.ReplaceAllString(strings.TrimSpace(clean), "_")
	if runes := []rune(clean); len(runes) > domain.MaxTopicFilenameLength {
		clean = string(runes[:domain.MaxTopicFilenameLength])
	}
	if clean == "" {
		clean = defaultTopic
	}
	return clean + ext
}
