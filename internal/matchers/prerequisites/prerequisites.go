// Package prerequisites reads feat prerequisites and class multiclass
// requirements.
//
// Feat prerequisites come back grouped: entries sharing a Group are
// alternatives, separate groups must all be met.
package prerequisites

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/proficiencies"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

const abilityNames = `Strength|Dexterity|Constitution|Intelligence|Wisdom|Charisma`

// Weapon categories that expand to every weapon they contain
const (
	categorySimpleWeapon  = "simple_weapon"
	categoryMartialWeapon = "martial_weapon"
)

var (
	abilityPattern     = regexp.MustCompile(`(?i)^(` + abilityNames + `)(\s+or\s+(` + abilityNames + `))?\s+(\d+)\s+or\s+higher$`)
	orSeparator        = regexp.MustCompile(`(?i)\s+or\s+`)
	proficiencyPattern = regexp.MustCompile(`(?i)^Proficiency (with|in)\s+(.+)$`)
	leadingArticle     = regexp.MustCompile(`^(?:a|an)\s+`)

	trailingProficiency = regexp.MustCompile(`(?i),\s+Proficiency (with|in)\s+(?:the\s+)?(.+?)(?:\s+skill)?$`)
	subracePattern      = regexp.MustCompile(`^[A-Z][a-z]+(?:-[A-Z][a-z]+)?\s*\([A-Z][a-z]+\)$`)
	raceOrPattern       = regexp.MustCompile(`^[A-Z][a-z]+(?:-[A-Z][a-z]+)?\s+or\s+[A-Z][a-z]+(?:-[A-Z][a-z]+)?$`)
	raceListPattern     = regexp.MustCompile(`^[A-Z][a-z]+(?:-[A-Z][a-z]+)?(?:\s+[A-Z][a-z]+)?(?:,\s+[A-Z][a-z]+(?:-[A-Z][a-z]+)?(?:\s+[A-Z][a-z]+)*)*`)

	multiclassSection = regexp.MustCompile(`(?is)Ability Score Minimum:(.+?)(?:Proficiencies Gained:|$)`)
	multiclassAtLeast = regexp.MustCompile(`(?i)at least 1 of`)
	multiclassOrLine  = regexp.MustCompile(`(?i)•\s*(?:` + abilityNames + `)\s+\d+\s*,\s*or\b`)
	multiclassBullet  = regexp.MustCompile(`(?i)•\s*(` + abilityNames + `)\s+(\d+)`)
)

// ParseFeat reads a feat's prerequisite line. Patterns are tried in order:
// ability score minimums ("Intelligence or Wisdom 13 or higher"),
// proficiencies ("Proficiency with medium armor"), race lists ("Dwarf,
// Gnome, Halfling, Small Race, Proficiency in Acrobatics"), then the whole
// text as a free-form requirement.
func ParseFeat(text string, resolver reference.Resolver) []rules.Prerequisite {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	const group = 1
	switch {
	case abilityPattern.MatchString(text):
		return parseAbility(text, group, resolver)
	case proficiencyPattern.MatchString(text):
		return parseProficiency(text, group, resolver)
	case isRaceList(text):
		return parseRaces(text, group, resolver)
	}
	return []rules.Prerequisite{other(text, group)}
}

func other(text string, group int) rules.Prerequisite {
	return rules.Prerequisite{Kind: rules.PrerequisiteOther, Target: text, Group: group}
}

func parseAbility(text string, group int, resolver reference.Resolver) []rules.Prerequisite {
	m := abilityPattern.FindStringSubmatch(text)
	minimum, err := strconv.Atoi(m[4])
	if err != nil {
		return nil
	}

	var out []rules.Prerequisite
	for _, name := range []string{m[1], m[3]} {
		if name == "" {
			continue
		}
		entry, ok := resolver.Resolve(lookup.KindAbility, name)
		if !ok {
			continue
		}
		out = append(out, rules.Prerequisite{
			Kind:    rules.PrerequisiteAbility,
			Target:  entry.Code,
			Minimum: minimum,
			Group:   group,
		})
	}
	return out
}

func parseProficiency(text string, group int, resolver reference.Resolver) []rules.Prerequisite {
	m := proficiencyPattern.FindStringSubmatch(text)
	preposition := strings.ToLower(m[1])
	name := strings.TrimSpace(m[2])

	if preposition == "in" {
		if code, ok := findSkill(name, resolver); ok {
			return []rules.Prerequisite{{Kind: rules.PrerequisiteProficiency, Target: code, Group: group}}
		}
	}

	entry, ok := findType(name, resolver)
	if !ok {
		return []rules.Prerequisite{other(text, group)}
	}

	out := []rules.Prerequisite{{Kind: rules.PrerequisiteProficiency, Target: entry.Code, Group: group}}
	if category := weaponCategory(entry); category != "" {
		for _, weapon := range resolver.Entries(lookup.KindProficiencyType) {
			if weapon.Category != category {
				continue
			}
			out = append(out, rules.Prerequisite{Kind: rules.PrerequisiteProficiency, Target: weapon.Code, Group: group})
		}
	}
	return out
}

func weaponCategory(entry *lookup.Entry) string {
	switch strings.ToLower(entry.Name) {
	case "simple weapons":
		return categorySimpleWeapon
	case "martial weapons":
		return categoryMartialWeapon
	}
	return ""
}

func findSkill(name string, resolver reference.Resolver) (string, bool) {
	if entry, ok := resolver.Resolve(lookup.KindSkill, name); ok {
		return entry.Code, true
	}
	lower := strings.ToLower(name)
	for _, entry := range resolver.Entries(lookup.KindSkill) {
		if strings.Contains(strings.ToLower(entry.Name), lower) {
			return entry.Code, true
		}
	}
	return "", false
}

func findType(name string, resolver reference.Resolver) (*lookup.Entry, bool) {
	normalized := leadingArticle.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "")
	if entry, ok := resolver.Resolve(lookup.KindProficiencyType, normalized); ok {
		return entry, true
	}

	has := func(words ...string) bool {
		for _, w := range words {
			if !strings.Contains(normalized, w) {
				return false
			}
		}
		return true
	}
	for _, fuzzy := range []struct {
		words []string
		code  string
	}{
		{[]string{"light", "armor"}, "Light Armor"},
		{[]string{"medium", "armor"}, "Medium Armor"},
		{[]string{"heavy", "armor"}, "Heavy Armor"},
		{[]string{"martial", "weapon"}, "Martial Weapons"},
		{[]string{"simple", "weapon"}, "Simple Weapons"},
	} {
		if has(fuzzy.words...) {
			return resolver.Resolve(lookup.KindProficiencyType, fuzzy.code)
		}
	}

	return proficiencies.MatchType(normalized, resolver)
}

func isRaceList(text string) bool {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "ability to") || strings.Contains(lower, "feature") {
		return false
	}
	withoutProficiency := trailingProficiency.ReplaceAllString(text, "")
	if strings.Contains(strings.ToLower(withoutProficiency), "the ") {
		return false
	}
	return subracePattern.MatchString(text) ||
		raceOrPattern.MatchString(text) ||
		raceListPattern.MatchString(text)
}

func parseRaces(text string, group int, resolver reference.Resolver) []rules.Prerequisite {
	var out []rules.Prerequisite

	m := trailingProficiency.FindStringSubmatchIndex(text)
	races := text
	if m != nil {
		races = text[:m[0]]
	}

	for _, name := range splitRaceList(races) {
		if name == "" || strings.Contains(strings.ToLower(name), "small race") {
			continue
		}
		if entry, ok := resolver.Resolve(lookup.KindClass, name); ok {
			out = append(out, rules.Prerequisite{Kind: rules.PrerequisiteClass, Target: entry.Code, Group: group})
			continue
		}
		out = append(out, rules.Prerequisite{Kind: rules.PrerequisiteRace, Target: name, Group: group})
	}

	if m != nil {
		preposition := text[m[2]:m[3]]
		name := text[m[4]:m[5]]
		out = append(out, parseProficiency("Proficiency "+preposition+" "+name, group+1, resolver)...)
	}
	return out
}

func splitRaceList(text string) []string {
	parts := strings.Split(orSeparator.ReplaceAllString(text, ", "), ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

// ParseMulticlass reads the "Ability Score Minimum:" block of a class's
// multiclassing feature. Requirements listed with "at least 1 of" or a
// trailing ", or" are alternatives.
func ParseMulticlass(text string, resolver reference.Resolver) []rules.MulticlassRequirement {
	section := multiclassSection.FindStringSubmatch(text)
	if section == nil {
		return nil
	}
	block := section[1]
	isOr := multiclassAtLeast.MatchString(block) || multiclassOrLine.MatchString(block)

	var out []rules.MulticlassRequirement
	for _, m := range multiclassBullet.FindAllStringSubmatch(block, -1) {
		minimum, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		entry, ok := resolver.Resolve(lookup.KindAbility, m[1])
		if !ok {
			continue
		}
		out = append(out, rules.MulticlassRequirement{Ability: entry.Code, Minimum: minimum, IsOr: isOr})
	}
	return out
}
