// Package markup provides the pluggable content representation for
// documents: plain text buffers and rich markup buffers share one document
// model and differ only in how their content is projected to plain text.
package markup

import (
	"html"
	"regexp"
	"strings"
)

// Representation projects a document's stored content to plain text for
// counting, blank detection, and search.
type Representation interface {
	// Plain returns the plain-text projection of content.
	Plain(content string) string
}

// PlainText is the identity representation for plain text buffers.
type PlainText struct{}

func (PlainText) Plain(content string) string { return content }

// RichText is the representation for rich markup buffers. Plain strips
// markup tags, mapping line-level tags to newlines.
type RichText struct{}

var (
	breakPattern = regexp.MustCompile(`(?i)<br\s*/?>|</(?:div|p|li|h[1-6])>`)
	// Anchored to an element name so comparison text like "a < b" is not
	// mistaken for markup.
	tagPattern = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
)

func (RichText) Plain(content string) string {
	text := breakPattern.ReplaceAllString(content, "\n")
	text = tagPattern.ReplaceAllString(text, "")
	return html.UnescapeString(text)
}

// ForContent picks the representation for a document's content. Markup
// buffers are recognized by the presence of a tag; everything else is
// treated as plain text.
func ForContent(content string) Representation {
	if tagPattern.MatchString(content) {
		return RichText{}
	}
	return PlainText{}
}

// IsBlank reports whether the plain projection of content is empty or
// whitespace-only.
func IsBlank(content string) bool {
	return strings.TrimSpace(ForContent(content).Plain(content)) == ""
}

// Stats holds line, word, and character counts for a document.
type Stats struct {
	Lines int `json:"lines"`
	Words int `json:"words"`
	Chars int `json:"chars"`
}

// Count computes stats over the plain projection of content.
func Count(content string) Stats {
	text := ForContent(content).Plain(content)
	st := Stats{
		Lines: strings.Count(text, "\n") + 1,
		Words: len(strings.Fields(text)),
		Chars: len([]rune(text)),
	}
	if text == "" {
		st.Lines = 1
	}
	return st
}
