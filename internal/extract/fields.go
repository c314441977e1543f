// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
)

// nbsp separates "(age" from "25)" inside the age annotation.
const nbsp = "\u00a0"

// Name returns the page title without bracketed annotations. Pages that
// lack the title span fall back to the first heading; if both are missing
// the name is empty.
func Name(doc *goquery.Document) string {
	if text, ok := cellText(doc.Selection, titleSelector); ok {
		return StripBrackets(text)
	}
	if text, ok := cellText(doc.Selection, headingSelector); ok {
		return StripBrackets(text)
	}
	return ""
}

// FullName returns the labeled full name, or name when the panel has none.
func FullName(panel *goquery.Selection, name string) string {
	if text, ok := cellText(panel, fullNameSelector); ok {
		return StripBrackets(text)
	}
	return StripBrackets(name)
}

// DateOfBirth returns the machine-readable birth date token. Free-text
// birth sentences are never parsed.
func DateOfBirth(panel *goquery.Selection) *string {
	text, ok := cellText(panel, birthDateSelector)
	if !ok {
		return nil
	}
	return strPtr(StripBrackets(text))
}

// Age parses the age annotation, rendered as "(age\u00a025)". The token
// after the first non-breaking space, minus its last character, must be
// an integer.
func Age(panel *goquery.Selection) (*int, error) {
	text, ok := cellText(panel, ageSelector)
	if !ok {
		return nil, nil
	}
	parts := strings.Split(text, nbsp)
	if len(parts) < 2 {
		return nil, errors.Wrapf(ErrMalformedNumber, "age %q", text)
	}
	token := dropLast(parts[1])
	age, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedNumber, "age %q", text)
	}
	return &age, nil
}

// Birthplace splits the labeled birthplace into place and country. The
// country is the last comma-separated segment and the place is what comes
// before it. A single segment is both place and country.
func Birthplace(panel *goquery.Selection) (place, country *string) {
	text, ok := cellText(panel, birthplaceSelector)
	if !ok {
		return nil, nil
	}
	normalized := StripBrackets(text)
	segments := strings.Split(normalized, ",")
	last := StripBrackets(segments[len(segments)-1])
	if len(segments) == 1 {
		return strPtr(normalized), strPtr(last)
	}
	return strPtr(strings.Join(segments[:len(segments)-1], ",")), strPtr(last)
}

// Position returns the last comma-separated role, the most specific one.
func Position(panel *goquery.Selection) *string {
	text, ok := cellText(panel, roleSelector)
	if !ok {
		return nil
	}
	roles := strings.Split(text, ",")
	return strPtr(StripBrackets(roles[len(roles)-1]))
}

// CurrentClub returns the labeled organization.
func CurrentClub(panel *goquery.Selection) *string {
	text, ok := cellText(panel, orgSelector)
	if !ok {
		return nil
	}
	return strPtr(StripBrackets(text))
}

// dropLast removes the final character of s.
func dropLast(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

// dropEnds removes the first and last characters of s.
func dropEnds(s string) string {
	r := []rune(s)
	if len(r) < 2 {
		return ""
	}
	return string(r[1 : len(r)-1])
}
