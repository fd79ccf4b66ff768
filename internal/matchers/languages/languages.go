// Package languages reads language grants and choice slots from trait and
// feature text.
package languages

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

var (
	sentenceEnd   = regexp.MustCompile(`\.(?:\s|$)`)
	ofYourChoice  = regexp.MustCompile(`(?i)\b(one|two|three|four|any|a|an)\s+of\s+your\s+choice\b`)
	choiceSlots   = regexp.MustCompile(`(?i)\b(one|two|three|four|any|a|an)\s+(?:(?:extra|other|additional)\s+)?languages?\b`)
	plusFollowing = regexp.MustCompile(`(?i)\bplus\s+one\s+of\s+the\s+following[:\s]+`)
	learnChoice   = regexp.MustCompile(`(?i)you learn (one|two|three|four|five|six) languages? of your choice`)
	traitLine     = regexp.MustCompile(`(?m)• Languages:\s*(.+?)\s*$`)
	nonSlug       = regexp.MustCompile(`[^a-z0-9]+`)
)

// NormalizeName reduces a language name to slug form: "Thieves' Cant"
// becomes "thieves-cant".
func NormalizeName(name string) string {
	name = strings.NewReplacer("'", "", "’", "", "‘", "").Replace(strings.ToLower(name))
	return strings.Trim(nonSlug.ReplaceAllString(name, "-"), "-")
}

func slugOf(entry *lookup.Entry) string {
	if entry.Slug != "" {
		return entry.Slug
	}
	return NormalizeName(entry.Name)
}

// Match finds the language a name refers to: an exact code, name or alias
// first, then a language whose slug contains, or is contained in, the
// normalized name ("thieves cant").
func Match(name string, resolver reference.Resolver) (*lookup.Entry, bool) {
	if entry, ok := resolver.Resolve(lookup.KindLanguage, name); ok {
		return entry, true
	}
	key := NormalizeName(name)
	if key == "" {
		return nil, false
	}
	for _, entry := range resolver.Entries(lookup.KindLanguage) {
		slug := NormalizeName(entry.Name)
		if strings.Contains(slug, key) || strings.Contains(key, slug) {
			return entry, true
		}
	}
	return nil, false
}

// Extract reads the first sentence of a languages trait: "You can speak,
// read, and write Common and one extra language of your choice." Known
// language names become fixed grants; counted phrases become choice slots.
// Choice slots come first, then named languages in order of appearance.
func Extract(text string, resolver reference.Resolver) []rules.LanguageGrant {
	if loc := sentenceEnd.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}

	var out []rules.LanguageGrant
	addChoice := func(word string) {
		out = append(out, rules.LanguageGrant{IsChoice: true, Quantity: ruletext.WordToNumber(word, 1)})
	}

	if m := ofYourChoice.FindStringSubmatch(text); m != nil {
		addChoice(m[1])
		text = strings.Replace(text, m[0], "", 1)
	}
	for _, m := range choiceSlots.FindAllStringSubmatch(text, -1) {
		addChoice(m[1])
	}
	text = choiceSlots.ReplaceAllString(text, "")

	following := plusFollowing.FindStringIndex(text)
	if following != nil {
		addChoice("one")
		text = text[:following[0]]
	}

	out = append(out, named(text, resolver)...)
	return out
}

func named(text string, resolver reference.Resolver) []rules.LanguageGrant {
	entries := resolver.Entries(lookup.KindLanguage)
	byName := make(map[string]*lookup.Entry, len(entries))
	candidates := make([]string, 0, len(entries))
	for _, entry := range entries {
		for _, name := range append([]string{entry.Name}, entry.Aliases...) {
			key := strings.ToLower(name)
			if _, ok := byName[key]; ok {
				continue
			}
			byName[key] = entry
			candidates = append(candidates, name)
		}
	}

	var out []rules.LanguageGrant
	seen := map[string]bool{}
	for _, found := range ruletext.NewWordKeywords(candidates...).All(text) {
		entry := byName[strings.ToLower(found)]
		slug := slugOf(entry)
		if seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, rules.LanguageGrant{Slug: slug, Quantity: 1})
	}
	return out
}

// ParseTraitLine reads the "• Languages:" line of a background description
func ParseTraitLine(text string, resolver reference.Resolver) []rules.LanguageGrant {
	m := traitLine.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	line := m[1]
	if entry, ok := resolver.Resolve(lookup.KindLanguage, line); ok {
		return []rules.LanguageGrant{{Slug: slugOf(entry), Quantity: 1}}
	}
	return Extract(line, resolver)
}

// ParseLearned reads a feat's "You learn three languages of your choice"
func ParseLearned(text string) []rules.LanguageGrant {
	m := learnChoice.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return []rules.LanguageGrant{{IsChoice: true, Quantity: ruletext.WordToNumber(m[1], 1)}}
}

// FromFeatureNames grants the languages that class features are named
// after, such as Thieves' Cant and Druidic. Only exact matches count.
func FromFeatureNames(names []string, resolver reference.Resolver) []rules.LanguageGrant {
	var out []rules.LanguageGrant
	seen := map[string]bool{}
	for _, name := range names {
		entry, ok := resolver.Resolve(lookup.KindLanguage, name)
		if !ok {
			continue
		}
		slug := slugOf(entry)
		if seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, rules.LanguageGrant{Slug: slug, Quantity: 1})
	}
	return out
}
