package adapter

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// plainText reduces user-supplied text to something safe to print in a
// terminal: markup is stripped, entities are decoded, control characters
// (including escape sequences) are dropped and whitespace is collapsed.
func plainText(content string) string {
	if content == "" {
		return ""
	}
	stripped := html.UnescapeString(strictPolicy.Sanitize(content))
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, stripped)
	return strings.Join(strings.Fields(cleaned), " ")
}
