// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

// bracketed matches one (...), [...] or {...} segment. Delimiters need not
// pair up and nesting is not tracked: "(a]" is a segment too.
var bracketed = regexp.MustCompile(`[\(\[\{].*?[\)\]\}]`)

// StripBrackets removes every bracketed segment from text and trims the
// result. Citation markers ("[1]") and pronunciation or alternate-language
// annotations ("(Portuguese: ...)") are dropped this way.
func StripBrackets(text string) string {
	return strings.TrimSpace(bracketed.ReplaceAllString(text, ""))
}

func strPtr(s string) *string { return &s }
