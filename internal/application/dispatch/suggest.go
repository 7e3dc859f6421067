package dispatch

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	suggestThreshold = 0.5
	suggestTopN      = 3
)

// KnownCommands are the phrases offered when a request cannot be routed.
var KnownCommands = []string{
	"create word document",
	"create excel spreadsheet",
	"create pdf",
	"create python script",
	"create text file",
	"find file",
	"delete file",
	"list files",
	"open application",
	"copy to clipboard",
	"read clipboard",
	"system status",
	"search the web",
	"tell me about a topic",
	"weather in a city",
	"help",
}

type suggestion struct {
	name  string
	score float64
}

// suggest returns up to suggestTopN known commands similar to input.
func suggest(input string, known []string) []string {
	norm := normalizeCommand(input)
	if norm == "" {
		return nil
	}

	var results []suggestion
	for _, k := range known {
		if score := similarity(norm, normalizeCommand(k)); score >= suggestThreshold {
			results = append(results, suggestion{name: k, score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })
	if len(results) > suggestTopN {
		results = results[:suggestTopN]
	}

	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.name)
	}
	return names
}

// similarity is normalized Levenshtein with small prefix and suffix bonuses.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	score := 1.0 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
	score += 0.1 * float64(commonPrefixLen(ra, rb)) / float64(maxLen)
	score += 0.05 * float64(commonSuffixLen(ra, rb)) / float64(maxLen)
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func normalizeCommand(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

func commonPrefixLen(a, b []rune) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func commonSuffixLen(a, b []rune) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[len(a)-1-i] != b[len(b)-1-i] {
			return i
		}
	}
	return n
}
