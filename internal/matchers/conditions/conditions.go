// Package conditions reads advantages, disadvantages, immunities and damage
// resistances from trait, feat and item text.
package conditions

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

// DamageAll is the damage type of a resistance that covers every type
const DamageAll = "all"

var (
	advantageOn      = regexp.MustCompile(`(?i)you have advantage on ([^.]+)`)
	disadvantageOn   = regexp.MustCompile(`(?i)you have disadvantage on ([^.]+)`)
	negatesOn        = regexp.MustCompile(`(?i)(?:doesn't|doesn’t|does not) impose disadvantage on ([^.]+)`)
	skillCheckPhrase = regexp.MustCompile(`(?i)^[A-Z][a-z]+\s*\([^)]+\)(?:\s+and\s+[A-Z][a-z]+\s*\([^)]+\))?\s+checks?\b`)
	skillInCheck     = regexp.MustCompile(`(?i)([A-Z][a-z]+)\s*\(([^)]+)\)`)
	skillCheckTail   = regexp.MustCompile(`(?i)\s+checks?\s*(.*)$`)

	immuneTo           = regexp.MustCompile(`(?i)immune to (disease|magical aging)`)
	savesAgainstBeing  = regexp.MustCompile(`(?i)advantage on saving throws against being (\w+)`)
	savesAgainstPoison = regexp.MustCompile(`(?i)advantage on saving throws against poison`)

	resistAll      = regexp.MustCompile(`(?i)you (?:gain|have) resistance to all damage`)
	resistDuration = regexp.MustCompile(`(?i)(for \d+ (?:minute|hour)s?)`)
	resistDealtBy  = regexp.MustCompile(`(?i)you have resistance to (the damage dealt by [^.]+)`)
	resistTypes    = regexp.MustCompile(`(?i)you (?:gain|have) resistance to ([^.]+?) damage([^.]*)`)
	forClause      = regexp.MustCompile(`(?i)\b(for [^.,]+)`)
	typeSeparator  = regexp.MustCompile(`(?i)\s*,\s*(?:and\s+|or\s+)?|\s+and\s+|\s+or\s+`)
	singleWord     = regexp.MustCompile(`^[a-z]+$`)
)

// Parse reads general advantage, disadvantage and "doesn't impose
// disadvantage" phrases. Advantages on named skill checks are left to
// ParseSkillAdvantages.
func Parse(text string) []rules.ConditionGrant {
	var out []rules.ConditionGrant
	for _, m := range advantageOn.FindAllStringSubmatch(text, -1) {
		if skillCheckPhrase.MatchString(m[1]) {
			continue
		}
		out = append(out, rules.ConditionGrant{Effect: rules.ConditionAdvantage, Target: strings.TrimSpace(m[1])})
	}
	for _, m := range negatesOn.FindAllStringSubmatch(text, -1) {
		out = append(out, rules.ConditionGrant{Effect: rules.ConditionNegateDisadvantage, Target: strings.TrimSpace(m[1])})
	}
	for _, m := range disadvantageOn.FindAllStringSubmatch(text, -1) {
		if skillCheckPhrase.MatchString(m[1]) {
			continue
		}
		out = append(out, rules.ConditionGrant{Effect: rules.ConditionDisadvantage, Target: strings.TrimSpace(m[1])})
	}
	return out
}

// ParseSkillAdvantages reads "You have advantage on Wisdom (Perception) and
// Intelligence (Investigation) checks that rely on sight" into one grant per
// skill, keeping any trailing qualifier as the condition.
func ParseSkillAdvantages(text string, resolver reference.Resolver) []rules.ConditionGrant {
	var out []rules.ConditionGrant
	for _, m := range advantageOn.FindAllStringSubmatch(text, -1) {
		phrase := strings.TrimSpace(m[1])
		if !skillCheckPhrase.MatchString(phrase) {
			continue
		}
		condition := ""
		if tail := skillCheckTail.FindStringSubmatch(phrase); tail != nil {
			condition = strings.TrimSpace(tail[1])
		}
		for _, skill := range skillInCheck.FindAllStringSubmatch(phrase, -1) {
			target := strings.ToLower(strings.TrimSpace(skill[2]))
			if entry, ok := resolver.Resolve(lookup.KindSkill, target); ok {
				target = entry.Code
			}
			out = append(out, rules.ConditionGrant{
				Effect:    rules.ConditionAdvantage,
				Target:    target,
				Condition: condition,
			})
		}
	}
	return out
}

// ParseSaveAdvantages reads racial "advantage on saving throws against
// being frightened" and "against poison" into grants targeting the
// condition's code.
func ParseSaveAdvantages(text string, resolver reference.Resolver) []rules.ConditionGrant {
	var out []rules.ConditionGrant
	if m := savesAgainstBeing.FindStringSubmatch(text); m != nil {
		out = append(out, rules.ConditionGrant{
			Effect: rules.ConditionAdvantage,
			Target: conditionCode(m[1], resolver),
		})
	}
	if savesAgainstPoison.MatchString(text) {
		out = append(out, rules.ConditionGrant{
			Effect: rules.ConditionAdvantage,
			Target: conditionCode("poisoned", resolver),
		})
	}
	return out
}

// ParseImmunities reads "immune to disease" and "immune to magical aging"
func ParseImmunities(text string) []rules.ConditionGrant {
	m := immuneTo.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return []rules.ConditionGrant{{
		Effect: rules.ConditionImmunity,
		Target: strings.ToLower(m[1]),
	}}
}

func conditionCode(name string, resolver reference.Resolver) string {
	if entry, ok := resolver.Resolve(lookup.KindCondition, name); ok {
		return entry.Code
	}
	return strings.ToLower(name)
}

// ParseResistances reads damage resistances in the order: resistance to all
// damage (with an optional "for 1 hour" duration), resistance to "the damage
// dealt by traps" (all types, conditional), then resistance to one or more
// named damage types.
func ParseResistances(text string) []rules.ResistanceGrant {
	if resistAll.MatchString(text) {
		grant := rules.ResistanceGrant{DamageType: DamageAll}
		if m := resistDuration.FindStringSubmatch(text); m != nil {
			grant.Duration = strings.ToLower(strings.TrimSpace(m[1]))
		}
		return []rules.ResistanceGrant{grant}
	}

	if m := resistDealtBy.FindStringSubmatch(text); m != nil {
		return []rules.ResistanceGrant{{DamageType: DamageAll, Condition: strings.TrimSpace(m[1])}}
	}

	m := resistTypes.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	duration := ""
	if d := forClause.FindStringSubmatch(m[2]); d != nil {
		duration = strings.TrimSpace(d[1])
	}

	var out []rules.ResistanceGrant
	for _, part := range typeSeparator.Split(m[1], -1) {
		damage := strings.ToLower(strings.TrimSpace(part))
		if !singleWord.MatchString(damage) {
			continue
		}
		out = append(out, rules.ResistanceGrant{DamageType: damage, Duration: duration})
	}
	return out
}

// ParseResistList reads a race's comma-separated resist attribute
func ParseResistList(csv string) []rules.ResistanceGrant {
	var out []rules.ResistanceGrant
	for _, part := range strings.Split(csv, ",") {
		damage := strings.ToLower(strings.TrimSpace(part))
		if damage == "" {
			continue
		}
		out = append(out, rules.ResistanceGrant{DamageType: damage})
	}
	return out
}
