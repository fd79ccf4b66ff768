package proficiencies

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

const doubled = `(?:add\s+(?:double|twice)\s+your\s+proficiency\s+bonus|proficiency\s+bonus\s+is\s+doubled)`

var (
	considered = regexp.MustCompile(`(?i)considered\s+proficient`)

	// patterns in the order they are tried; skill patterns after the first
	// only add skills not already found
	checkThenDoubled  = regexp.MustCompile(`(?i)([A-Z][a-z]+)\s*\(([^)]+)\)\s+checks?\s*(?:(related to|when|while)\s+(.+?))?,?\s*(?:you\s+(?:are|can)|` + doubled + `)`)
	doubledToCheck    = regexp.MustCompile(`(?i)add\s+(?:double|twice)\s+your\s+proficiency\s+bonus\s+to\s+([A-Z][a-z]+)\s*\(([^)]+)\)\s+checks?`)
	proficientDoubled = regexp.MustCompile(`(?i)proficient\s+in\s+(?:the\s+)?([A-Z][a-z]+)\s+skill[^.]*add\s+(?:double|twice)\s+your\s+proficiency\s+bonus`)
	doubledUsingSkill = regexp.MustCompile(`(?i)proficiency\s+bonus\s+is\s+doubled\s+for\s+any\s+ability\s+check[^.]*(?:uses|using)\s+(?:the\s+)?([A-Z][a-z]+)\s+skill`)
	expertiseIn       = regexp.MustCompile(`(?i)(?:have|gain)\s+expertise\s+in\s+(?:the\s+)?([A-Z][a-z]+)\s+skill`)
	toolDoubled       = regexp.MustCompile(`(?i)ability\s+check\s+with\s+([^,]+?(?:tools?|kit))[^.]*` + doubled)
)

// ParseExpertise reads doubled proficiency bonuses: "Intelligence (History)
// check related to the origin of stonework, you are considered proficient
// ... add double your proficiency bonus", "have expertise in the Stealth
// skill", "ability check with thieves' tools ... proficiency bonus is
// doubled". A skill found by an earlier pattern is not repeated.
func ParseExpertise(text string, resolver reference.Resolver) []rules.ExpertiseGrant {
	grantsProficiency := considered.MatchString(text)

	var out []rules.ExpertiseGrant
	seen := map[string]bool{}
	addSkill := func(skill, ability, condition string, proficient bool) {
		code := skillCode(skill, resolver)
		if seen[code] {
			return
		}
		seen[code] = true
		g := rules.ExpertiseGrant{
			Skill:             code,
			Condition:         condition,
			GrantsProficiency: proficient,
		}
		if ability != "" {
			if entry, ok := resolver.Resolve(lookup.KindAbility, ability); ok {
				g.Ability = entry.Code
			}
		}
		out = append(out, g)
	}

	for _, m := range checkThenDoubled.FindAllStringSubmatch(text, -1) {
		condition := ""
		if m[3] != "" && m[4] != "" {
			condition = strings.ToLower(m[3]) + " " + strings.TrimSpace(m[4])
		}
		addSkill(m[2], m[1], condition, grantsProficiency)
	}
	for _, m := range doubledToCheck.FindAllStringSubmatch(text, -1) {
		addSkill(m[2], m[1], "", grantsProficiency)
	}
	for _, m := range proficientDoubled.FindAllStringSubmatch(text, -1) {
		addSkill(m[1], "", "", true)
	}
	for _, m := range doubledUsingSkill.FindAllStringSubmatch(text, -1) {
		addSkill(m[1], "", "", false)
	}
	for _, m := range expertiseIn.FindAllStringSubmatch(text, -1) {
		addSkill(m[1], "", "", false)
	}
	for _, m := range toolDoubled.FindAllStringSubmatch(text, -1) {
		tool := strings.ToLower(strings.TrimSpace(m[1]))
		if entry, ok := MatchType(tool, resolver); ok {
			tool = entry.Code
		}
		out = append(out, rules.ExpertiseGrant{Tool: tool})
	}

	return out
}

func skillCode(name string, resolver reference.Resolver) string {
	name = strings.TrimSpace(name)
	if entry, ok := resolver.Resolve(lookup.KindSkill, name); ok {
		return entry.Code
	}
	return strings.ToLower(name)
}
