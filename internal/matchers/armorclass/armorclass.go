// Package armorclass reads unarmored defense formulas.
package armorclass

import (
	"regexp"
	"strconv"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

var (
	abilityFormula = regexp.MustCompile(`(?i)\bAC\s+(?:equals|is|of|as|becomes)\s+(\d+)\s*\+\s*your\s+(\w+)\s+modifier(?:\s*\+\s*your\s+(\w+)\s+modifier)?`)
	flatFormula    = regexp.MustCompile(`(?i)\bbase\s+AC\s+(?:is|of|equals)\s+(\d+)\b`)
	shieldAllowed  = regexp.MustCompile(`(?i)(?:can|could)\s+use\s+a\s+shield|(?:using|wielding|with)\s+a\s+shield\s+and\s+still|shield\s+and\s+still\s+gain`)
	noArmor        = regexp.MustCompile(`(?i)can(?:'t|’t|not)\s+wear\s+armor`)
)

// ParseUnarmored reads an armor class formula such as "your AC equals 10 +
// your Dexterity modifier + your Constitution modifier" or "your base AC is
// 13". Abilities are resolved to codes; an unresolved ability drops the
// formula. Returns nil when no formula is present.
func ParseUnarmored(text string, resolver reference.Resolver) *rules.UnarmoredAC {
	var ac *rules.UnarmoredAC

	if m := abilityFormula.FindStringSubmatch(text); m != nil {
		base, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		first, ok := resolver.Resolve(lookup.KindAbility, m[2])
		if !ok {
			return nil
		}
		ac = &rules.UnarmoredAC{BaseAC: base, Ability: first.Code}
		if m[3] != "" {
			second, ok := resolver.Resolve(lookup.KindAbility, m[3])
			if !ok {
				return nil
			}
			ac.SecondAbility = second.Code
		}
	} else if m := flatFormula.FindStringSubmatch(text); m != nil {
		base, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		ac = &rules.UnarmoredAC{BaseAC: base}
	}
	if ac == nil {
		return nil
	}

	ac.AllowsShield = shieldAllowed.MatchString(text)
	ac.ReplacesArmor = noArmor.MatchString(text)
	return ac
}
