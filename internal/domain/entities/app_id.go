package entities

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

const minFallbackTokenLength = 16

var identifierTokenPattern = regexp.MustCompile(`^[a-zA-Z0-9:-]+$`)

// DefaultAppIDPatterns returns the candidate expressions tried, in order, against
// free-text app creation output. The first capture group is the app id.
func DefaultAppIDPatterns() []string {
	return []string{
		`App ID: ([0-9]+:[0-9]+:[a-z]+:[a-zA-Z0-9]+)`,
		`App ID: ([a-zA-Z0-9-]+)`,
		`([0-9]+:[0-9]+:[a-z]+:[a-zA-Z0-9]+)`,
		`([a-zA-Z0-9-]{20,})`,
		`Created app ([a-zA-Z0-9-]+)`,
		`App created: ([a-zA-Z0-9-]+)`,
		`App ID ([0-9]+:[0-9]+:[a-z]+:[a-zA-Z0-9]+)`,
		`App ID ([a-zA-Z0-9-]+)`,
		`([0-9]+:[0-9]+:[a-z]+:[a-zA-Z0-9]+)`,
		`([a-zA-Z0-9-]{15,})`,
	}
}

// AppIDExtractor pulls the app id out of provisioning-service output. Structured
// JSON output is preferred; the pattern list and the token scan are fallbacks.
type AppIDExtractor struct {
	patterns []*regexp.Regexp
}

// NewAppIDExtractor compiles the candidate patterns case-insensitively.
func NewAppIDExtractor(patterns []string) (*AppIDExtractor, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for i, pattern := range patterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid app id pattern %d %q: %w", i, pattern, err)
		}
		compiled = append(compiled, re)
	}
	return &AppIDExtractor{patterns: compiled}, nil
}

// Extract returns the app id found in output, or UnknownAppID.
func (it *AppIDExtractor) Extract(output string) string {
	if id := extractStructuredAppID(output); id != "" {
		return id
	}

	for _, re := range it.patterns {
		if match := re.FindStringSubmatch(output); len(match) > 1 && match[1] != "" {
			return match[1]
		}
	}

	longest := ""
	for _, word := range strings.Fields(output) {
		if len(word) >= minFallbackTokenLength && identifierTokenPattern.MatchString(word) &&
			len(word) > len(longest) {
			longest = word
		}
	}
	if longest != "" {
		return longest
	}

	return UnknownAppID
}

func extractStructuredAppID(output string) string {
	trimmed := strings.TrimSpace(output)
	if !gjson.Valid(trimmed) {
		return ""
	}
	for _, path := range []string{"result.appId", "appId"} {
		if value := gjson.Get(trimmed, path); value.Exists() && value.String() != "" {
			return value.String()
		}
	}
	return ""
}
