// Package naturalweapons reads claws, bites and horns granted by racial
// traits.
package naturalweapons

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
	"github.com/KirkDiggler/rpg-ruletext/internal/reference"
)

var (
	typeFirst = regexp.MustCompile(`(?i)deals?\s+(\w+)\s+damage\s+equal\s+to\s+(\d*d\d+)(?:\s*\+\s*your\s+(\w+)\s+modifier)?`)
	diceFirst = regexp.MustCompile(`(?i)deals?\s+(\d*d\d+)(?:\s*\+\s*your\s+(\w+)\s+modifier)?\s+(\w+)\s+damage`)
	namedAre  = regexp.MustCompile(`(?i)\byour\s+([a-z]+(?:\s+[a-z]+)?)\s+(?:are|is)\s+(?:a\s+)?natural\s+weapons?`)
	useYour   = regexp.MustCompile(`(?i)\buse\s+your\s+([a-z]+(?:\s+[a-z]+)?)\s+to\s+make\s+unarmed\s+strikes`)
)

// Parse reads the damage a natural weapon deals, "you deal slashing damage
// equal to 1d4 + your Strength modifier" or "deals 1d6 + your Strength
// modifier piercing damage". The weapon is named by the text when it says
// "your claws are natural weapons", otherwise by the trait. Returns nil when
// the text grants no natural weapon or its damage type is unknown.
func Parse(name, text string, resolver reference.Resolver) *rules.NaturalWeapon {
	var damageType, formula, ability string
	if m := typeFirst.FindStringSubmatch(text); m != nil {
		damageType, formula, ability = m[1], m[2], m[3]
	} else if m := diceFirst.FindStringSubmatch(text); m != nil {
		formula, ability, damageType = m[1], m[2], m[3]
	} else {
		return nil
	}

	dice := ruletext.NormalizeDice(formula)
	if dice == "" {
		return nil
	}
	damage, ok := resolver.Resolve(lookup.KindDamageType, damageType)
	if !ok {
		return nil
	}

	weapon := &rules.NaturalWeapon{
		Name:       weaponName(name, text),
		DamageDice: dice,
		DamageType: damage.Code,
	}
	if ability != "" {
		if entry, ok := resolver.Resolve(lookup.KindAbility, ability); ok {
			weapon.Ability = entry.Code
		}
	}
	return weapon
}

func weaponName(trait, text string) string {
	if m := namedAre.FindStringSubmatch(text); m != nil {
		return ruletext.TitleCase(m[1])
	}
	if m := useYour.FindStringSubmatch(text); m != nil {
		return ruletext.TitleCase(m[1])
	}
	return strings.TrimSpace(trait)
}
