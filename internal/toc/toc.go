// Package toc extracts a document's table of contents from raw markdown.
package toc

import (
	"regexp"
	"strings"

	"github.com/ziadkadry99/notebook/internal/slug"
)

// Heading is one heading line at level 1-3.
type Heading struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Line  int    `json:"line"` // 1-based source line.
}

// TOC is the ordered list of headings found in one document.
type TOC []Heading

var headingLine = regexp.MustCompile(`^(#{1,3})[ \t]+(.+)$`)

// Extract returns every level 1-3 ATX heading in text, in source order, with
// slugs from a collision table fresh for this call. Lines inside fenced code
// blocks are not headings.
func Extract(text string) TOC {
	assigner := slug.NewAssigner()
	var out TOC
	var fence string

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if fence != "" {
			if closesFence(line, fence) {
				fence = ""
			}
			continue
		}
		if marker := fenceMarker(line); marker != "" {
			fence = marker
			continue
		}

		m := headingLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		title := strings.TrimSpace(m[2])
		if title == "" {
			continue
		}
		out = append(out, Heading{
			Level: len(m[1]),
			Title: title,
			Slug:  assigner.Assign(title),
			Line:  i + 1,
		})
	}
	return out
}

// fenceMarker returns the run of backticks or tildes opening line if it is a
// code fence (at most three spaces of indentation), or "".
func fenceMarker(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return ""
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return ""
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return ""
	}
	// A backtick fence's info string may not contain backticks.
	if c == '`' && strings.ContainsRune(trimmed[n:], '`') {
		return ""
	}
	return trimmed[:n]
}

// closesFence reports whether line ends the block opened by fence: a run of
// the same character at least as long, followed by nothing but whitespace.
func closesFence(line, fence string) bool {
	marker := fenceMarker(line)
	if marker == "" || marker[0] != fence[0] || len(marker) < len(fence) {
		return false
	}
	return strings.TrimSpace(line) == marker
}

// Chapters returns the display subset: level 2 and 3 headings. Level 1
// headings are document titles rather than chapters.
func (t TOC) Chapters() TOC {
	var out TOC
	for _, h := range t {
		if h.Level >= 2 {
			out = append(out, h)
		}
	}
	return out
}

// Slugs returns the slugs of t in order.
func (t TOC) Slugs() []string {
	out := make([]string, len(t))
	for i, h := range t {
		out[i] = h.Slug
	}
	return out
}
