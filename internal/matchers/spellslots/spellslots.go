// Package spellslots reads per-level spell slot strings and splits base
// class casting from subclass-only casting.
package spellslots

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
)

// CounterSpellsKnown is the counter an export uses for known spells
const CounterSpellsKnown = "Spells Known"

// A slot string holds cantrips followed by nine spell levels
const maxSlotValues = 10

var spellcastingFeature = regexp.MustCompile(`^Spellcasting\s*\((.+)\)$`)

// ParseSlots reads "3,2,0,0" (cantrips, 1st, 2nd...) for one level. Missing
// trailing values are 0. A malformed or negative value, or more than ten
// values, rejects the whole string.
func ParseSlots(csv string, level int) (rules.SpellSlotProgression, bool) {
	progression := rules.SpellSlotProgression{Level: level}
	if strings.TrimSpace(csv) == "" {
		return progression, false
	}

	parts := strings.Split(csv, ",")
	if len(parts) > maxSlotValues {
		return progression, false
	}
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return rules.SpellSlotProgression{Level: level}, false
		}
		if i == 0 {
			progression.Cantrips = n
			continue
		}
		progression.Slots[i-1] = n
	}
	return progression, true
}

// Progression is a class's spell slots split by who casts with them.
// Optional slots belong to Subclass; when no "Spellcasting (X)" feature
// names one, Subclass is empty and the optional slots belong to no one.
type Progression struct {
	Base     []rules.SpellSlotProgression
	Optional []rules.SpellSlotProgression
	Subclass string
}

// HasBaseCasting reports whether the class itself casts spells
func (p Progression) HasBaseCasting() bool {
	return len(p.Base) > 0
}

// Parse splits slot strings into base and optional progressions. "Spells
// Known" counters are merged into the optional progression, and into the
// base progression only when the class has no optional slots, since a class
// with subclass-only casting declares the subclass's spells known.
func Parse(levels []source.Autolevel) Progression {
	var p Progression
	known := map[int]int{}

	for _, level := range levels {
		if level.Slots != nil {
			if slots, ok := ParseSlots(level.Slots.Values, level.Level); ok {
				if level.Slots.Optional {
					p.Optional = append(p.Optional, slots)
				} else {
					p.Base = append(p.Base, slots)
				}
			}
		}
		for _, c := range level.Counters {
			if strings.TrimSpace(c.Name) == CounterSpellsKnown {
				known[level.Level] = c.Value
				break
			}
		}
		if p.Subclass == "" {
			p.Subclass = spellcastingSubclass(level.Features)
		}
	}

	if len(p.Optional) == 0 {
		mergeKnown(p.Base, known)
	}
	mergeKnown(p.Optional, known)
	return p
}

func spellcastingSubclass(features []source.Feature) string {
	for _, f := range features {
		if m := spellcastingFeature.FindStringSubmatch(strings.TrimSpace(f.Name)); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func mergeKnown(progression []rules.SpellSlotProgression, known map[int]int) {
	for i := range progression {
		if n, ok := known[progression[i].Level]; ok {
			progression[i].SpellsKnown = n
		}
	}
}
