package templates

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/thoas/go-funk"
)

var placeholderPattern = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// Token returns the placeholder text for key, e.g. "{{stage}}".
func Token(key string) string {
	return "{{" + key + "}}"
}

// Render replaces every {{key}} in message with variables[key]. Placeholders
// without a matching key are left as they are.
//
// Substitution happens in a single left-to-right pass, so a value that itself
// contains a {{token}} is emitted verbatim and never substituted again.
func Render(message string, variables map[string]string) string {
	if len(variables) == 0 {
		return message
	}
	pairs := make([]string, 0, len(variables)*2)
	for _, key := range slices.Sorted(maps.Keys(variables)) {
		pairs = append(pairs, Token(key), variables[key])
	}
	return strings.NewReplacer(pairs...).Replace(message)
}

// Placeholders lists the distinct placeholder names found in message, in order of first appearance.
func Placeholders(message string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(message, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return funk.UniqString(names)
}

// Unknown returns the placeholders in message that none of the known keys would fill.
func Unknown(message string, known []string) []string {
	var unknown []string
	for _, name := range Placeholders(message) {
		if !funk.ContainsString(known, name) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
