// Package lore tracks the plot keywords a session has already disclosed.
// The list is the "do not repeat" constraint fed to the narrator, so it
// only ever grows, and entries are canonicalized before comparison to
// keep near-duplicates ("The Black Obelisk" / "the black obelisk") out.
package lore

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// Canonical normalizes a keyword for storage and comparison: trimmed,
// inner whitespace collapsed, lowercased. CJK text passes through
// unchanged apart from whitespace handling.
func Canonical(keyword string) string {
	fields := strings.Fields(keyword)
	if len(fields) == 0 {
		return ""
	}
	return lower.String(strings.Join(fields, " "))
}

// Append adds keyword to the list if its canonical form is non-empty
// and not already present. It returns the (possibly unchanged) list.
func Append(list []string, keyword string) []string {
	c := Canonical(keyword)
	if c == "" {
		return list
	}
	for _, existing := range list {
		if existing == c {
			return list
		}
	}
	return append(list, c)
}

// Contains reports whether the canonical form of keyword substring-matches
// any entry in the list, in either direction. "Substring" rather than
// equality because the classifier's topic and the stored keyword are both
// free text from the generator.
func Contains(list []string, keyword string) bool {
	c := Canonical(keyword)
	if c == "" {
		return false
	}
	for _, existing := range list {
		if strings.Contains(existing, c) || strings.Contains(c, existing) {
			return true
		}
	}
	return false
}

// AppearsIn reports whether any stored keyword appears verbatim in the
// given narrative text. Used by the accept-and-log lore-repeat check.
func AppearsIn(list []string, text string) (string, bool) {
	t := lower.String(text)
	for _, existing := range list {
		if existing != "" && strings.Contains(t, existing) {
			return existing, true
		}
	}
	return "", false
}
