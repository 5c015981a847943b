package parsing

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultTitle is used when no professional title can be inferred.
const DefaultTitle = "Consultant IT"

// titlePatterns are tried in order against the raw CV text. The first
// match wins, title-cased.
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)consultant\s+(\w+(?:\s+\w+){0,3})`),
	regexp.MustCompile(`(?i)(data\s+\w+)`),
	regexp.MustCompile(`(?i)(développeur\s+\w+)`),
	regexp.MustCompile(`(?i)(architecte\s+\w+)`),
}

// InferTitle guesses a professional title from raw CV text. Returns an
// empty string when nothing matches; callers decide whether to apply
// DefaultTitle.
func InferTitle(text string) string {
	for _, pattern := range titlePatterns {
		if match := pattern.FindString(text); match != "" {
			return titleCase(match)
		}
	}
	return ""
}

// titleCase uppercases the first letter of every word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
