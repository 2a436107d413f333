package commands

import "strings"

// substitution renames the template identifiers in a text file.
type substitution struct {
	placeholder          string
	namespacedIdentifier string
	projectName          string
	bundleID             string
}

// apply replaces both identifiers in one pass, so replaced text is never
// matched again. The namespaced identifier is listed first because the
// placeholder is a substring of it.
func (s substitution) apply(content string) string {
	var pairs []string
	if s.namespacedIdentifier != "" {
		pairs = append(pairs, s.namespacedIdentifier, s.bundleID)
	}
	if s.placeholder != "" {
		pairs = append(pairs, s.placeholder, s.projectName)
	}
	if len(pairs) == 0 {
		return content
	}
	return strings.NewReplacer(pairs...).Replace(content)
}
