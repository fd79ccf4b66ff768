package ruletext

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Keywords finds a fixed candidate list inside text, ignoring ASCII case.
// Overlapping candidates resolve to the leftmost, then longest, match.
type Keywords struct {
	candidates []string
	matcher    ahocorasick.AhoCorasick
}

// NewKeywords builds a matcher for candidates. Blank candidates are dropped
// and duplicates (ignoring case) keep their first spelling.
func NewKeywords(candidates ...string) *Keywords {
	return newKeywords(false, candidates)
}

// NewWordKeywords is NewKeywords restricted to whole-word matches, so "Orc"
// does not match inside "Sorcerer"
func NewWordKeywords(candidates ...string) *Keywords {
	return newKeywords(true, candidates)
}

func newKeywords(wholeWords bool, candidates []string) *Keywords {
	seen := make(map[string]bool, len(candidates))
	kept := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(strings.TrimSpace(c))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, strings.TrimSpace(c))
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  wholeWords,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})

	return &Keywords{
		candidates: kept,
		matcher:    builder.Build(kept),
	}
}

// First returns the candidate that appears earliest in text
func (k *Keywords) First(text string) (string, bool) {
	if len(k.candidates) == 0 || text == "" {
		return "", false
	}

	matches := k.matcher.FindAll(text)
	if len(matches) == 0 {
		return "", false
	}

	return k.candidates[matches[0].Pattern()], true
}

// All returns every candidate present in text, in order of first
// appearance, each at most once
func (k *Keywords) All(text string) []string {
	if len(k.candidates) == 0 || text == "" {
		return nil
	}

	var found []string
	seen := make(map[int]bool)
	for _, m := range k.matcher.FindAll(text) {
		if seen[m.Pattern()] {
			continue
		}
		seen[m.Pattern()] = true
		found = append(found, k.candidates[m.Pattern()])
	}

	return found
}

// Contains reports whether any candidate appears in text
func (k *Keywords) Contains(text string) bool {
	_, ok := k.First(text)
	return ok
}
