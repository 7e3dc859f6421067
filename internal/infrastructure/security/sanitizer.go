package security

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/jarvis-go/assets"
)

// StripPattern describes one regex removed from content.
type StripPattern struct {
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		StripPatterns []StripPattern `yaml:"strip_patterns"`
	} `yaml:"rules"`
}

// Sanitizer removes script and markup injection fragments from text.
type Sanitizer struct {
	patterns []*regexp.Regexp
}

// NewSanitizer compiles the embedded rules plus any rules in path.
// A missing user file is not an error.
func NewSanitizer(path string) (*Sanitizer, error) {
	rules, err := parseRules(assets.DefaultSanitizerYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded sanitizer rules: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(expandHome(path))
		switch {
		case err == nil:
			extra, err := parseRules(data)
			if err != nil {
				return nil, fmt.Errorf("sanitizer rules %s: %w", path, err)
			}
			rules = append(rules, extra...)
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	compiled := make([]*regexp.Regexp, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", rule.Pattern, err)
		}
		compiled = append(compiled, re)
	}
	return &Sanitizer{patterns: compiled}, nil
}

// Sanitize strips every matching fragment, then trims surrounding whitespace.
func (s *Sanitizer) Sanitize(text string) string {
	for _, re := range s.patterns {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

func parseRules(data []byte) ([]StripPattern, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	return rules.Rules.StripPatterns, nil
}
