// Package subclasses finds the subclasses a class defines and moves their
// features, counters and spell slots out of the base class.
package subclasses

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/spellslots"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
)

const archetypes = `Martial Archetype|Primal Path|Monastic Tradition|Otherworldly Patron|Divine Domain|Arcane Tradition|Sacred Oath|Ranger Archetype|Roguish Archetype|Sorcerous Origin|Bard College|Druid Circle|College of|Artificer Specialist`

var (
	archetypeFeature = regexp.MustCompile(`(?i)^(` + archetypes + `):\s*(.+)$`)
	trailingParens   = regexp.MustCompile(`\(([^)]+)\)$`)
	startsUpper      = regexp.MustCompile(`^[A-Z]`)
	startsDigit      = regexp.MustCompile(`^\d`)

	// parenthesized suffixes that are never subclass names
	notSubclass = []*regexp.Regexp{
		regexp.MustCompile(`^CR\s+\d+`),
		regexp.MustCompile(`(?i)^\d+\s*/\s*(?:rest|day)`),
		regexp.MustCompile(`(?i)^\d+(?:st|nd|rd|th)\b`),
		regexp.MustCompile(`(?i)\buses?\b`),
		regexp.MustCompile(`(?i)^\d+\s+slots?`),
		regexp.MustCompile(`(?i)^level\s+\d+`),
		regexp.MustCompile(`(?i)^\d+\s+times?`),
	}
	qualifiers = map[string]bool{
		"revised":     true,
		"alternative": true,
		"optional":    true,
		"variant":     true,
	}

	spellTableRow = regexp.MustCompile(`(?m)^\s*(\d+)(?:st|nd|rd|th)\s*\|\s*([A-Za-z][^|\n]*?)\s*$`)
)

// Detected is the result of subclass detection. Archetype is the label of
// the first "{Archetype}: {Subclass}" feature, "Martial Archetype" for a
// fighter.
type Detected struct {
	Names     []string
	Archetype string
}

// Detect collects subclass names from "{Archetype}: {Subclass}" feature
// names, "{Feature} ({Subclass})" feature names and counter subclass tags.
// Parenthesized suffixes that read as challenge ratings, ordinals, use
// counts, qualifiers or numbers are ignored. Names are sorted and unique.
func Detect(features []rules.Feature, counters []rules.CounterDefinition) Detected {
	var d Detected
	seen := map[string]bool{}
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		d.Names = append(d.Names, name)
	}

	for _, f := range features {
		name := strings.TrimSpace(f.Name)
		if m := archetypeFeature.FindStringSubmatch(name); m != nil {
			if d.Archetype == "" {
				d.Archetype = strings.TrimSpace(m[1])
			}
			add(m[2])
		}
		if m := trailingParens.FindStringSubmatch(name); m != nil && isSubclassName(strings.TrimSpace(m[1])) {
			add(m[1])
		}
	}
	for _, c := range counters {
		add(c.Subclass)
	}

	sort.Strings(d.Names)
	return d
}

func isSubclassName(candidate string) bool {
	for _, pattern := range notSubclass {
		if pattern.MatchString(candidate) {
			return false
		}
	}
	if qualifiers[strings.ToLower(candidate)] {
		return false
	}
	if _, err := strconv.ParseFloat(candidate, 64); err == nil {
		return false
	}
	return startsUpper.MatchString(candidate) && !startsDigit.MatchString(candidate)
}

// BelongsTo reports whether a feature is named for a subclass, either
// "{Archetype}: {Subclass}" or "{Feature} ({Subclass})". Substring matches
// do not count, so "Spell Thief (Arcane Trickster)" is not a Thief feature.
func BelongsTo(featureName, subclass string) bool {
	featureName = strings.TrimSpace(featureName)
	if m := archetypeFeature.FindStringSubmatch(featureName); m != nil && strings.EqualFold(m[2], subclass) {
		return true
	}
	return strings.HasSuffix(strings.ToLower(featureName), "("+strings.ToLower(subclass)+")")
}

// Partitioned is a class split into its base and its subclasses
type Partitioned struct {
	Features   []rules.Feature
	Counters   []rules.CounterDefinition
	Subclasses []rules.SubclassPartition
}

// Partition moves every feature and counter that belongs to a detected
// subclass into that subclass. A feature matching several subclasses goes to
// the first in name order. Optional spell slots go to the subclass named by
// the casting progression, and spell tables in a subclass's feature text
// become its always-prepared spells. Everything else stays on the base.
func Partition(detected Detected, features []rules.Feature, counters []rules.CounterDefinition, casting spellslots.Progression) Partitioned {
	out := Partitioned{
		Features:   []rules.Feature{},
		Counters:   []rules.CounterDefinition{},
		Subclasses: make([]rules.SubclassPartition, 0, len(detected.Names)),
	}

	index := make(map[string]int, len(detected.Names))
	for i, name := range detected.Names {
		index[name] = i
		out.Subclasses = append(out.Subclasses, rules.SubclassPartition{
			Name:       name,
			Archetype:  detected.Archetype,
			Features:   []rules.Feature{},
			Counters:   []rules.CounterDefinition{},
			SpellSlots: []rules.SpellSlotProgression{},
			Spells:     []rules.SubclassSpells{},
		})
	}

	for _, f := range features {
		owner := -1
		for i, name := range detected.Names {
			if BelongsTo(f.Name, name) {
				owner = i
				break
			}
		}
		if owner < 0 {
			out.Features = append(out.Features, f)
			continue
		}
		sub := &out.Subclasses[owner]
		f.Subclass = sub.Name
		sub.Features = append(sub.Features, f)
		sub.Spells = append(sub.Spells, ParseSpellTable(f.Description)...)
	}

	for _, c := range counters {
		i, ok := index[c.Subclass]
		if !ok || c.Subclass == "" {
			out.Counters = append(out.Counters, c)
			continue
		}
		out.Subclasses[i].Counters = append(out.Subclasses[i].Counters, c)
	}

	if i, ok := index[casting.Subclass]; ok && casting.Subclass != "" {
		out.Subclasses[i].SpellSlots = append(out.Subclasses[i].SpellSlots, casting.Optional...)
	}
	return out
}

// ParseSpellTable reads subclass spell rows such as "3rd | bless, cure
// wounds". Rows whose second cell is not a spell list are skipped.
func ParseSpellTable(text string) []rules.SubclassSpells {
	var out []rules.SubclassSpells
	for _, m := range spellTableRow.FindAllStringSubmatch(text, -1) {
		level, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		var spells []string
		for _, name := range strings.Split(m[2], ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			spells = append(spells, ruletext.TitleCase(name))
		}
		if len(spells) == 0 {
			continue
		}
		out = append(out, rules.SubclassSpells{Level: level, Spells: spells})
	}
	return out
}
