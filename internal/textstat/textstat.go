// Package textstat holds the small text measurements shared by the full
// engine and the real-time scorer.
package textstat

import (
	"strings"
	"unicode"
)

// Words splits s on whitespace and strips surrounding punctuation, lower-cased.
func Words(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.ToLower(strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// WordCount counts whitespace-separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// CountTerms counts how many distinct terms occur as whole words in s.
func CountTerms(s string, terms []string) int {
	set := make(map[string]struct{})
	for _, w := range Words(s) {
		set[w] = struct{}{}
	}
	n := 0
	for _, t := range terms {
		if _, ok := set[t]; ok {
			n++
		}
	}
	return n
}

// ContainsAny reports whether any term occurs as a whole word in s.
func ContainsAny(s string, terms []string) bool {
	return CountTerms(s, terms) > 0
}

// LettersAndSpaces reports whether s is non-empty and holds only letters and spaces.
func LettersAndSpaces(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Sentences splits s on terminal punctuation and drops empty pieces.
func Sentences(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// Vocabulary shared by the scorers.
var (
	ConflictTerms = []string{
		"must", "fights", "fight", "struggles", "struggle", "battles", "battle",
		"against", "confronts", "races", "survive", "escape", "stop", "save",
	}
	ProtagonistTerms = []string{
		"protagonist", "hero", "heroine", "detective", "woman", "man", "girl",
		"boy", "mother", "father", "daughter", "son", "soldier", "teenager",
		"scientist", "agent", "officer", "student", "widow", "orphan",
	}
	TransitionTerms = []string{
		"begins", "however", "finally", "meanwhile", "eventually", "then",
		"when", "until", "after", "ultimately", "but",
	}
	CharacterTerms = []string{
		"character", "characters", "protagonist", "antagonist", "hero", "heroine",
		"villain", "family", "friend", "friends", "mother", "father", "daughter",
		"son", "sister", "brother", "partner", "mentor", "rival", "he", "she",
	}
)
