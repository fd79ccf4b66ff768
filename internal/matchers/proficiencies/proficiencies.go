// Package proficiencies reads proficiency grants and choices out of
// comma-separated export lists and rule prose, and matches proficiency names
// against the proficiency_type reference table.
package proficiencies

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

// Type codes used for tool choices that name a category instead of a tool
const (
	CategoryArtisan           = "artisan"
	CategoryMusicalInstrument = "musical_instrument"
)

var (
	choicePhrases = ruletext.NewKeywords(
		"any one", "one type of", "choose one", "your choice", "of your choice",
		"any musical instrument", "any artisan",
	)
	armorWords = ruletext.NewKeywords("armor", "shield")
	toolWords  = ruletext.NewKeywords("tools", "kit", "gaming set", "instrument")

	namedWeapons = map[string]bool{
		"battleaxe": true, "handaxe": true, "light hammer": true, "warhammer": true,
		"longsword": true, "shortsword": true, "rapier": true, "greatsword": true,
		"dagger": true, "mace": true, "quarterstaff": true, "crossbow": true, "bow": true,
	}

	// short forms used by exports for the armor and weapon categories
	fuzzyTypes = map[string]string{
		"martial": "martialweapons",
		"simple":  "simpleweapons",
		"light":   "lightarmor",
		"medium":  "mediumarmor",
		"heavy":   "heavyarmor",
		"shield":  "shields",
	}

	musicalInstruments = regexp.MustCompile(`(?i)musical\s+instruments?`)
	choiceCountWord    = regexp.MustCompile(`(?i)\b(one|two|three|four|five)\b`)
	listSeparator      = regexp.MustCompile(`(?i),\s*(?:and\s+)?|\s+and\s+`)

	textChoice = regexp.MustCompile(`(?i)gain proficiency (?:with|in)(?: any combination of)?\s+(one|two|three|four|five|six)\s+(.+?)\s+of your choice`)
	textGrant  = regexp.MustCompile(`(?im)(?:gain|have) proficiency (?:with|in)\s+([^.\n]+?)\.?$`)
	requires   = regexp.MustCompile(`(?i)Proficienc(?:y|ies):\s*([^\n]+)`)

	skillAndTool   = regexp.MustCompile(`(?i)(\w+)\s+skill\s+proficienc(?:y|ies)\s+and\s+(\w+)\s+tool\s+proficienc(?:y|ies)\s+of your choice`)
	skillInChoice  = regexp.MustCompile(`(?i)You gain proficienc(?:y|ies) in (\w+)\s+skills?\s+of your choice`)
	skillOfChoice  = regexp.MustCompile(`(?i)(\w+)\s+skill\s+proficienc(?:y|ies)\s+of your choice`)
	toolInChoice   = regexp.MustCompile(`(?i)You gain proficienc(?:y|ies) in (\w+)\s+tools?\s+of your choice`)
	toolOfChoice   = regexp.MustCompile(`(?i)(\w+)\s+tool\s+proficienc(?:y|ies)\s+of your choice`)
	toolTraitLine  = regexp.MustCompile(`(?m)• Tool Proficiencies:\s*(.+?)\s*$`)
	oneTypeOf      = regexp.MustCompile(`(?i)one\s+type\s+of\s+(.+?)$`)
	pronounObjects = map[string]bool{"it": true, "them": true, "this weapon": true, "this armor": true}
)

// IsChoice reports whether a proficiency name is a player choice such as
// "any one type of artisan's tools" rather than one specific proficiency
func IsChoice(name string) bool {
	return choicePhrases.Contains(name)
}

// InferKind guesses the kind of a proficiency from its name. Names that are
// not recognizably armor, weapons or tools are skills.
func InferKind(name string) rules.ProficiencyKind {
	lower := strings.ToLower(strings.TrimSpace(name))
	switch {
	case armorWords.Contains(lower):
		return rules.ProficiencyArmor
	case strings.Contains(lower, "weapon") || namedWeapons[lower]:
		return rules.ProficiencyWeapon
	case toolWords.Contains(lower):
		return rules.ProficiencyTool
	default:
		return rules.ProficiencySkill
	}
}

// normalizeName drops apostrophes and spaces so "Thieves' Tools" and
// "thieves tools" compare equal
func normalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\'', '’', '‘', ' ', '-':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

// MatchType finds the proficiency type a name refers to: an exact match on
// name, code or alias, then the short category forms ("martial",
// "light"), then any type whose name contains the search term or is
// contained in it. Choice phrases never match.
func MatchType(name string, resolver reference.Resolver) (*lookup.Entry, bool) {
	if IsChoice(name) {
		return nil, false
	}
	key := normalizeName(name)
	if key == "" {
		return nil, false
	}

	entries := resolver.Entries(lookup.KindProficiencyType)
	byKey := func(want string) (*lookup.Entry, bool) {
		for _, entry := range entries {
			if normalizeName(entry.Name) == want || normalizeName(entry.Code) == want {
				return entry, true
			}
			for _, alias := range entry.Aliases {
				if normalizeName(alias) == want {
					return entry, true
				}
			}
		}
		return nil, false
	}

	if entry, ok := byKey(key); ok {
		return entry, true
	}
	if target, ok := fuzzyTypes[key]; ok {
		if entry, ok := byKey(target); ok {
			return entry, true
		}
	}
	for _, entry := range entries {
		candidate := normalizeName(entry.Name)
		if strings.Contains(candidate, key) || strings.Contains(key, candidate) {
			return entry, true
		}
	}
	return nil, false
}

func grant(kind rules.ProficiencyKind, name string, resolver reference.Resolver) rules.ProficiencyGrant {
	g := rules.ProficiencyGrant{
		Kind:     kind,
		Name:     strings.ToLower(strings.TrimSpace(name)),
		Quantity: 1,
	}
	if kind == rules.ProficiencySkill {
		if entry, ok := resolver.Resolve(lookup.KindSkill, name); ok {
			g.TypeCode = entry.Code
			return g
		}
	}
	if entry, ok := MatchType(name, resolver); ok {
		g.TypeCode = entry.Code
	}
	return g
}

func splitList(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "none") {
			continue
		}
		out = append(out, part)
	}
	return out
}

// ParseList reads a comma-separated armor, weapon or tool list. "None"
// entries are skipped.
func ParseList(csv string, kind rules.ProficiencyKind, resolver reference.Resolver) []rules.ProficiencyGrant {
	var out []rules.ProficiencyGrant
	for _, name := range splitList(csv) {
		out = append(out, grant(kind, name, resolver))
	}
	return out
}

// ParseClassProficiencies reads a class's combined saving throw and skill
// list ("Strength, Constitution, Athletics, Intimidation"). Ability names
// are saving throws; everything else is a skill. When numSkills is set the
// skills form one choice group and every option carries numSkills as the
// number to pick.
func ParseClassProficiencies(csv string, numSkills int, resolver reference.Resolver) []rules.ProficiencyGrant {
	var out, skills []rules.ProficiencyGrant
	for _, name := range splitList(csv) {
		if entry, ok := resolver.Resolve(lookup.KindAbility, name); ok && strings.EqualFold(entry.Name, name) {
			out = append(out, rules.ProficiencyGrant{
				Kind:     rules.ProficiencySavingThrow,
				Name:     strings.ToLower(name),
				TypeCode: entry.Code,
				Quantity: 1,
			})
			continue
		}
		skills = append(skills, grant(rules.ProficiencySkill, name, resolver))
	}

	if numSkills > 0 {
		for i := range skills {
			skills[i].IsChoice = true
			skills[i].ChoiceGroup = "skill_choice_1"
			skills[i].Quantity = numSkills
		}
	}

	return append(out, skills...)
}

// ParseToolChoices reads a class tool list where entries may be a choice
// of artisan's tools or musical instruments ("Three musical instruments of
// your choice"). Each choice is its own group.
func ParseToolChoices(csv string, resolver reference.Resolver) []rules.ProficiencyGrant {
	var out []rules.ProficiencyGrant
	group := 1
	for _, name := range splitList(csv) {
		category := ""
		switch {
		case strings.Contains(strings.ToLower(name), "artisan") && IsChoice(name):
			category = CategoryArtisan
		case isInstrumentChoice(name):
			category = CategoryMusicalInstrument
		}
		if category == "" {
			out = append(out, grant(rules.ProficiencyTool, name, resolver))
			continue
		}
		out = append(out, rules.ProficiencyGrant{
			Kind:        rules.ProficiencyTool,
			Name:        strings.ToLower(name),
			TypeCode:    category,
			IsChoice:    true,
			ChoiceGroup: fmt.Sprintf("tool_choice_%d", group),
			Quantity:    choiceQuantity(name),
		})
		group++
	}
	return out
}

func isInstrumentChoice(name string) bool {
	lower := strings.ToLower(name)
	if !musicalInstruments.MatchString(lower) {
		return false
	}
	if strings.Contains(lower, "your choice") || strings.Contains(lower, "any ") {
		return true
	}
	return choiceCountWord.MatchString(lower)
}

func choiceQuantity(name string) int {
	if m := choiceCountWord.FindStringSubmatch(name); m != nil {
		return ruletext.WordToNumber(m[1], 1)
	}
	return 1
}

// ParseText reads proficiencies granted in prose: "You gain proficiency
// with medium armor and shields" or "You gain proficiency in any
// combination of three skills or tools of your choice". A counted choice
// wins over a plain list.
func ParseText(text string, resolver reference.Resolver) []rules.ProficiencyGrant {
	if m := textChoice.FindStringSubmatch(text); m != nil {
		desc := strings.TrimSpace(m[2])
		return []rules.ProficiencyGrant{{
			Kind:        InferKind(desc),
			Name:        strings.ToLower(desc),
			IsChoice:    true,
			ChoiceGroup: "proficiency_choice_1",
			Quantity:    ruletext.WordToNumber(m[1], 1),
		}}
	}

	m := textGrant.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var out []rules.ProficiencyGrant
	for _, item := range listSeparator.Split(m[1], -1) {
		item = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(item), "the "))
		if item == "" || pronounObjects[strings.ToLower(item)] {
			continue
		}
		out = append(out, grant(InferKind(item), item, resolver))
	}
	return out
}

// ParseRequirements reads an item's "Proficiency: martial weapons, longsword"
// line: the proficiencies needed to use the item well, not ones it grants.
func ParseRequirements(text string, resolver reference.Resolver) []rules.ProficiencyGrant {
	m := requires.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var out []rules.ProficiencyGrant
	for _, name := range splitList(m[1]) {
		out = append(out, grant(InferKind(name), name, resolver))
	}
	return out
}

// ParseBackgroundProficiencies reads a background's comma-separated
// proficiency list. Kits, tools, gaming sets and instruments are tools,
// everything else a skill. Language entries are left to the language
// matcher.
func ParseBackgroundProficiencies(csv string, resolver reference.Resolver) []rules.ProficiencyGrant {
	var out []rules.ProficiencyGrant
	for _, name := range splitList(csv) {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "language") {
			continue
		}
		kind := rules.ProficiencySkill
		if toolWords.Contains(lower) {
			kind = rules.ProficiencyTool
		}
		out = append(out, grant(kind, name, resolver))
	}
	return out
}

// ParseTraitTools reads the "• Tool Proficiencies:" line of a background
// description. "One type of gaming set" is a single choice.
func ParseTraitTools(text string, resolver reference.Resolver) []rules.ProficiencyGrant {
	m := toolTraitLine.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	line := strings.TrimSpace(m[1])

	if c := oneTypeOf.FindStringSubmatch(line); c != nil {
		g := grant(rules.ProficiencyTool, strings.TrimSpace(c[1]), resolver)
		g.IsChoice = true
		g.ChoiceGroup = "tool_choice_1"
		return []rules.ProficiencyGrant{g}
	}

	return ParseList(line, rules.ProficiencyTool, resolver)
}

// ParseTraitChoices reads open skill and tool choices from a racial trait:
// "one skill proficiency and one tool proficiency of your choice", "You gain
// proficiency in two skills of your choice".
func ParseTraitChoices(text string) []rules.ProficiencyGrant {
	choice := func(kind rules.ProficiencyKind, word string) rules.ProficiencyGrant {
		return rules.ProficiencyGrant{
			Kind:     kind,
			IsChoice: true,
			Quantity: ruletext.WordToNumber(word, 1),
		}
	}

	if m := skillAndTool.FindStringSubmatch(text); m != nil {
		return []rules.ProficiencyGrant{
			choice(rules.ProficiencySkill, m[1]),
			choice(rules.ProficiencyTool, m[2]),
		}
	}

	var out []rules.ProficiencyGrant
	if m := skillInChoice.FindStringSubmatch(text); m != nil {
		out = append(out, choice(rules.ProficiencySkill, m[1]))
	} else if m := skillOfChoice.FindStringSubmatch(text); m != nil {
		out = append(out, choice(rules.ProficiencySkill, m[1]))
	}
	if m := toolInChoice.FindStringSubmatch(text); m != nil {
		out = append(out, choice(rules.ProficiencyTool, m[1]))
	} else if m := toolOfChoice.FindStringSubmatch(text); m != nil {
		out = append(out, choice(rules.ProficiencyTool, m[1]))
	}
	return out
}

// NumberChoiceGroups gives every choice grant without a group its own
// "<kind>_choice_N" group, counting per kind in order.
func NumberChoiceGroups(grants []rules.ProficiencyGrant) {
	counts := map[rules.ProficiencyKind]int{}
	for _, g := range grants {
		if g.IsChoice && g.ChoiceGroup != "" {
			counts[g.Kind]++
		}
	}
	for i := range grants {
		if !grants[i].IsChoice || grants[i].ChoiceGroup != "" {
			continue
		}
		counts[grants[i].Kind]++
		grants[i].ChoiceGroup = fmt.Sprintf("%s_choice_%d", grants[i].Kind, counts[grants[i].Kind])
	}
}
