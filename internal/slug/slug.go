// Package slug turns heading text into page-scoped anchor identifiers.
package slug

import (
	"regexp"
	"strconv"
	"strings"
)

// Fallback is the base used for headings whose text normalizes to nothing
// (blank or punctuation-only headings).
const Fallback = "section"

var (
	// Unicode spaces such as U+3000 and NBSP count as whitespace.
	whitespaceRun = regexp.MustCompile(`[\s\p{Z}\x{feff}]+`)
	// Word characters, hyphen, dot and the CJK unified ideographs block are kept.
	disallowed = regexp.MustCompile(`[^\w\x{4e00}-\x{9fa5}\-.]+`)
	hyphenRun  = regexp.MustCompile(`-{2,}`)
)

// Normalize returns the base slug for text without any collision suffix.
// The result may be empty.
func Normalize(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Assigner hands out unique slugs for one parse pass. The zero value is not
// usable; call NewAssigner. An Assigner must not be shared between documents.
type Assigner struct {
	counts map[string]int
	issued map[string]bool
}

// NewAssigner returns an Assigner with an empty collision table.
func NewAssigner() *Assigner {
	return &Assigner{
		counts: make(map[string]int),
		issued: make(map[string]bool),
	}
}

// Assign returns the slug for the next heading with the given text.
// The first occurrence of a base keeps it unchanged, later ones get "-1",
// "-2" and so on. Every slug returned by one Assigner is distinct.
func (a *Assigner) Assign(text string) string {
	base := Normalize(text)
	if base == "" {
		base = Fallback
	}

	n, seen := a.counts[base]
	if !seen && !a.issued[base] {
		a.counts[base] = 0
		a.issued[base] = true
		return base
	}

	// A suffixed slug may already have been issued for an earlier base
	// ("a", "a", "a-1"), so keep counting until the candidate is free.
	for {
		n++
		candidate := base + "-" + strconv.Itoa(n)
		if !a.issued[candidate] {
			a.counts[base] = n
			a.issued[candidate] = true
			return candidate
		}
	}
}

// Len reports how many slugs have been issued.
func (a *Assigner) Len() int { return len(a.issued) }
