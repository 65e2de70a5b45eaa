package moderation

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText NFC-normalizes s, trims it and collapses runs of whitespace
func CleanText(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// SafetyContext builds the single text passed to the safety classifier
// only metadata is screened; video pixels are never inspected
func SafetyContext(title, description string) string {
	title, description = CleanText(title), CleanText(description)
	var b strings.Builder
	if title != "" {
		b.WriteString("Title: ")
		b.WriteString(title)
	}
	if description != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Description: ")
		b.WriteString(description)
	}
	return b.String()
}
