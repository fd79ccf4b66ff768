// Package modifiers reads signed adjustments to abilities, skills and derived
// stats out of race ability lists, machine-readable modifier lines and item
// or feat prose.
package modifiers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

// Modifier line categories as written by the export
const (
	LineCategoryBonus        = "bonus"
	LineCategoryAbilityScore = "ability score"
	LineCategorySkill        = "skill"
)

// Targets for attack and damage bonuses that only apply to one attack form,
// and for magical armor class bonuses.
const (
	TargetMelee  = "melee"
	TargetRanged = "ranged"
	TargetWeapon = "weapon"
	TargetMagic  = "magic"
	TargetFeat   = "feat"
)

var (
	abilityBonus   = regexp.MustCompile(`^([A-Za-z]{3})\s*([+-]?\d+)$`)
	modifierLine   = regexp.MustCompile(`([\w\s]+)\s*([+\-]\d+)`)
	setScore       = regexp.MustCompile(`(?i)Your\s+(\w+)\s+score\s+is\s+(\d+)\s+(while\s+[^.]+)`)
	speedReduced   = regexp.MustCompile(`(?i)speed\s+is\s+reduced\s+by\s+(\d+)\s+feet`)
	passiveBonus   = regexp.MustCompile(`(?i)\+(\d+)\s+bonus\s+to\s+(?:your\s+)?passive`)
	passiveSkill   = regexp.MustCompile(`(?i)passive\s+(Strength|Dexterity|Constitution|Intelligence|Wisdom|Charisma)\s*\(([^)]+)\)`)
	hitPointsBonus = regexp.MustCompile(`(?i)hit point maximum increases by an additional (\d+) hit points?`)

	choiceDifferent = regexp.MustCompile(`(?i)(\w+)\s+(?:different|other)\s+ability scores?\s+of your choice\s+increases?\s+by\s+(\d+)`)
	choiceOther     = regexp.MustCompile(`(?i)one other ability score of your choice increases by (\d+)`)
	choiceAny       = regexp.MustCompile(`(?i)one ability score of your choice increases by (\d+)`)
	choiceEither    = regexp.MustCompile(`(?i)Increase either your (\w+) or (\w+) score by (\d+)`)

	bonusFeat = regexp.MustCompile(`(?i)you\s+gain\s+(?:one|a)\s+feat\s+of\s+your\s+choice`)
)

// ParseAbilityBonuses reads a race ability list such as "Str +2, Cha +1".
// Parts whose code does not resolve are skipped.
func ParseAbilityBonuses(list string, resolver reference.Resolver) []rules.Modifier {
	var out []rules.Modifier
	for _, part := range strings.Split(list, ",") {
		m := abilityBonus.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		value, err := strconv.Atoi(strings.TrimPrefix(m[2], "+"))
		if err != nil {
			continue
		}
		entry, ok := resolver.Resolve(lookup.KindAbility, m[1])
		if !ok {
			continue
		}
		out = append(out, rules.Modifier{
			Category: rules.ModifierAbilityScore,
			Target:   entry.Code,
			Value:    value,
		})
	}
	return out
}

// ParseModifierText reads one modifier line such as "Strength +2" or
// "ranged attacks +1". category is the line's declared category, used to
// tell magical armor class bonuses apart and to classify bare ability and
// skill lines.
func ParseModifierText(text, category string, resolver reference.Resolver) (rules.Modifier, bool) {
	m := modifierLine.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return rules.Modifier{}, false
	}
	target := strings.TrimSpace(m[1])
	value, err := strconv.Atoi(m[2])
	if err != nil {
		return rules.Modifier{}, false
	}
	category = strings.ToLower(strings.TrimSpace(category))

	mod := rules.Modifier{Value: value}
	switch {
	case strings.Contains(target, "saving throw"):
		mod.Category = rules.ModifierSavingThrow
		if entry, ok := matchAbility(target, resolver); ok {
			mod.Target = entry.Code
		}
	case strings.Contains(target, "spell attack"):
		mod.Category = rules.ModifierSpellAttack
	case strings.Contains(target, "spell dc"):
		mod.Category = rules.ModifierSpellDC
	case target == "ac" || target == "armor class":
		mod.Category = rules.ModifierAC
		if category == LineCategoryBonus {
			mod.Target = TargetMagic
		}
	case strings.Contains(target, "initiative"):
		mod.Category = rules.ModifierInitiative
	case strings.Contains(target, "attack"):
		mod.Category = rules.ModifierAttackBonus
		mod.Target = attackForm(target, "attack")
	case strings.Contains(target, "damage"):
		mod.Category = rules.ModifierDamageBonus
		mod.Target = attackForm(target, "damage")
	case category == LineCategoryAbilityScore:
		mod.Category = rules.ModifierAbilityScore
		entry, ok := matchAbility(target, resolver)
		if !ok {
			return rules.Modifier{}, false
		}
		mod.Target = entry.Code
	case category == LineCategorySkill:
		mod.Category = rules.ModifierSkill
		if entry, ok := matchSkill(target, resolver); ok {
			mod.Target = entry.Code
		}
	default:
		mod.Category = rules.ModifierBonus
	}

	return mod, true
}

// ParseModifierLines runs ParseModifierText over every declared modifier,
// dropping the lines that carry no signed value.
func ParseModifierLines(lines []source.Modifier, resolver reference.Resolver) []rules.Modifier {
	var out []rules.Modifier
	for _, line := range lines {
		if mod, ok := ParseModifierText(line.Text, line.Category, resolver); ok {
			out = append(out, mod)
		}
	}
	return out
}

func attackForm(target, noun string) string {
	for _, form := range []string{TargetMelee, TargetRanged, TargetWeapon} {
		if strings.Contains(target, form+" "+noun) {
			return form
		}
	}
	return ""
}

// matchAbility tries the whole text first, then any ability whose name or
// code appears inside it ("strength save").
func matchAbility(text string, resolver reference.Resolver) (*lookup.Entry, bool) {
	if entry, ok := resolver.Resolve(lookup.KindAbility, text); ok {
		return entry, true
	}
	entries := resolver.Entries(lookup.KindAbility)
	for _, entry := range entries {
		if strings.Contains(text, strings.ToLower(entry.Name)) {
			return entry, true
		}
	}
	for _, entry := range entries {
		if containsWord(text, strings.ToLower(entry.Code)) {
			return entry, true
		}
	}
	return nil, false
}

func matchSkill(text string, resolver reference.Resolver) (*lookup.Entry, bool) {
	if entry, ok := resolver.Resolve(lookup.KindSkill, text); ok {
		return entry, true
	}
	for _, entry := range resolver.Entries(lookup.KindSkill) {
		if strings.Contains(text, strings.ToLower(entry.Name)) {
			return entry, true
		}
	}
	return nil, false
}

func containsWord(text, word string) bool {
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		if field == word {
			return true
		}
	}
	return false
}

// ParseSetScore reads "Your Strength score is 19 while you wear these
// gauntlets." into a set_score modifier keeping the "while" clause.
func ParseSetScore(text string, resolver reference.Resolver) []rules.Modifier {
	m := setScore.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	value, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	entry, ok := resolver.Resolve(lookup.KindAbility, m[1])
	if !ok {
		return nil
	}
	return []rules.Modifier{{
		Category:  rules.ModifierSetScore,
		Target:    entry.Code,
		Value:     value,
		Condition: strings.TrimSpace(m[3]),
	}}
}

// ParseSpeedPenalty reads heavy armor's "your speed is reduced by 10 feet"
// when the wearer lacks the listed Strength. No penalty is produced without
// a Strength requirement.
func ParseSpeedPenalty(text string, strength int) []rules.Modifier {
	if strength <= 0 {
		return nil
	}
	m := speedReduced.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	feet, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return []rules.Modifier{{
		Category:  rules.ModifierSpeed,
		Value:     -feet,
		Condition: "strength < " + strconv.Itoa(strength),
	}}
}

// ParsePassiveScores reads "+5 bonus to your passive Wisdom (Perception)".
// Feats that offer the bonus for one of several abilities name all of
// them; only the skill of the ability the feat raises is kept, so chosen
// must hold the feat's ability_score modifiers.
func ParsePassiveScores(text string, chosen []rules.Modifier, resolver reference.Resolver) []rules.Modifier {
	m := passiveBonus.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}

	ability := ""
	for _, mod := range chosen {
		if mod.Category == rules.ModifierAbilityScore && mod.Target != "" {
			ability = mod.Target
			break
		}
	}
	if ability == "" {
		return nil
	}

	for _, match := range passiveSkill.FindAllStringSubmatch(text, -1) {
		entry, ok := resolver.Resolve(lookup.KindAbility, match[1])
		if !ok || entry.Code != ability {
			continue
		}
		target := strings.ToLower(strings.TrimSpace(match[2]))
		if skill, ok := resolver.Resolve(lookup.KindSkill, target); ok {
			target = skill.Code
		}
		return []rules.Modifier{{
			Category: rules.ModifierPassiveScore,
			Target:   target,
			Value:    value,
		}}
	}
	return nil
}

// ParseHitPointsPerLevel reads "hit point maximum increases by an additional
// 2 hit points" for every level.
func ParseHitPointsPerLevel(text string) []rules.Modifier {
	m := hitPointsBonus.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return []rules.Modifier{{
		Category: rules.ModifierHitPointsPerLevel,
		Value:    value,
	}}
}

// ParseAbilityChoice reads the free ability increase of an "Ability Score
// Increase" trait: "Two different ability scores of your choice increase by
// 1", "one other ability score of your choice increases by 1", or "Increase
// either your Intelligence or Wisdom score by 1". fixed lists the abilities
// the race already raises, which "other" choices exclude.
func ParseAbilityChoice(text string, fixed []rules.Modifier, resolver reference.Resolver) *rules.AbilityChoice {
	if m := choiceDifferent.FindStringSubmatch(text); m != nil {
		value, err := strconv.Atoi(m[2])
		if err != nil {
			return nil
		}
		choice := &rules.AbilityChoice{Count: ruletext.WordToNumber(m[1], 1), Value: value}
		if strings.Contains(strings.ToLower(m[0]), "other") {
			choice.Excludes = abilityCodes(fixed)
		}
		return choice
	}
	if m := choiceOther.FindStringSubmatch(text); m != nil {
		value, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		return &rules.AbilityChoice{Count: 1, Value: value, Excludes: abilityCodes(fixed)}
	}
	if m := choiceAny.FindStringSubmatch(text); m != nil {
		value, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		return &rules.AbilityChoice{Count: 1, Value: value}
	}
	if m := choiceEither.FindStringSubmatch(text); m != nil {
		value, err := strconv.Atoi(m[3])
		if err != nil {
			return nil
		}
		choice := &rules.AbilityChoice{Count: 1, Value: value}
		for _, name := range m[1:3] {
			if entry, ok := resolver.Resolve(lookup.KindAbility, name); ok {
				choice.Options = append(choice.Options, entry.Code)
			}
		}
		return choice
	}
	return nil
}

func abilityCodes(mods []rules.Modifier) []string {
	var codes []string
	for _, mod := range mods {
		if mod.Category == rules.ModifierAbilityScore && mod.Target != "" {
			codes = append(codes, mod.Target)
		}
	}
	return codes
}

// ParseBonusFeat reads the free feat a trait grants, either a trait named
// "Feat" or text saying "you gain one feat of your choice".
func ParseBonusFeat(traitName, text string) []rules.Modifier {
	if !strings.EqualFold(strings.TrimSpace(traitName), TargetFeat) && !bonusFeat.MatchString(text) {
		return nil
	}
	return []rules.Modifier{{
		Category: rules.ModifierBonus,
		Target:   TargetFeat,
		Value:    1,
	}}
}
