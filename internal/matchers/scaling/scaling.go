// Package scaling reads how spell effects grow with slot level or
// character level.
package scaling

import (
	"regexp"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
)

const higherLevelsHeading = "At Higher Levels:"

// Character levels at which cantrip damage grows
var cantripLevels = []int{0, 5, 11, 17}

var (
	increment       = regexp.MustCompile(`(?i)increases?\s+by\s+(\d*d\d+)`)
	moreProjectiles = regexp.MustCompile(`(?i)creates?\s+(` + ruletext.NumberWordPattern + `)\s+(?:more|additional)\s+([a-z]+?)s?\s+for\s+each\s+slot\s+level\s+above\s+(\w+)`)
	moreBeams       = regexp.MustCompile(`(?i)creates?\s+more\s+than\s+one\s+([a-z]+?)s?\s+when\s+you\s+reach\s+higher\s+levels`)
	beamStep        = regexp.MustCompile(`(?i)\b(` + ruletext.NumberWordPattern + `)\s+[a-z]+s?\s+at\s+\d+(?:st|nd|rd|th)\s+level`)
	countedWords    = regexp.MustCompile(`(?i)\b(` + ruletext.NumberWordPattern + `)((?:\s+[a-z]+){1,3})\b`)
	damageName      = regexp.MustCompile(`(?i)^(\w+)\s+damage$`)
)

// SplitHigherLevels separates the "At Higher Levels:" paragraph from a
// spell's description. The paragraph runs to the next blank line.
func SplitHigherLevels(text string) (description, higher string) {
	at := strings.Index(text, higherLevelsHeading)
	if at < 0 {
		return strings.TrimSpace(text), ""
	}

	rest := text[at+len(higherLevelsHeading):]
	end := strings.Index(rest, "\n\n")
	tail := ""
	if end >= 0 {
		tail = rest[end:]
		rest = rest[:end]
	}

	description = strings.TrimSpace(strings.TrimRight(text[:at], " \n") + tail)
	return description, strings.TrimSpace(rest)
}

// ParseIncrement reads the dice an effect grows by, "the damage increases
// by 1d6 for each slot level above 1st"
func ParseIncrement(higher string) string {
	m := increment.FindStringSubmatch(higher)
	if m == nil {
		return ""
	}
	return ruletext.NormalizeDice(m[1])
}

// ParseProjectiles reads "the spell creates one more dart for each slot
// level above 1st". The starting count comes from the description ("You
// create three glowing darts") and is 1 when the description never says.
func ParseProjectiles(description, higher string) *rules.ProjectileScaling {
	m := moreProjectiles.FindStringSubmatch(higher)
	if m == nil {
		return nil
	}
	perLevel := ruletext.WordToNumber(m[1], 0)
	if perLevel <= 0 {
		return nil
	}
	name := strings.ToLower(m[2])
	return &rules.ProjectileScaling{
		Count:    baseCount(description, name),
		PerLevel: perLevel,
		Name:     name,
	}
}

// baseCount reads "three glowing darts": a number word followed within
// three words by the projectile name
func baseCount(description, name string) int {
	for _, m := range countedWords.FindAllStringSubmatch(description, -1) {
		for _, word := range strings.Fields(m[2]) {
			word = strings.ToLower(word)
			if word != name && word != name+"s" {
				continue
			}
			if n := ruletext.WordToNumber(m[1], 0); n > 0 {
				return n
			}
		}
	}
	return 1
}

// ParseBeams reads cantrips that add beams with character level, "the spell
// creates more than one beam when you reach higher levels: two beams at 5th
// level". A cantrip starts with one beam.
func ParseBeams(description string) *rules.ProjectileScaling {
	m := moreBeams.FindStringSubmatch(description)
	if m == nil {
		return nil
	}
	perLevel := 1
	if step := beamStep.FindStringSubmatch(description); step != nil {
		if n := ruletext.WordToNumber(step[1], 0); n > 1 {
			perLevel = n - 1
		}
	}
	return &rules.ProjectileScaling{Count: 1, PerLevel: perLevel, Name: strings.ToLower(m[1])}
}

// EffectType classifies a roll description. Damage wins over healing.
func EffectType(description string) rules.EffectType {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "damage"):
		return rules.EffectDamage
	case strings.Contains(lower, "heal"), strings.Contains(lower, "regain"):
		return rules.EffectHealing
	}
	return rules.EffectOther
}

// DamageTypeName reads "Acid Damage" as "Acid". Other descriptions yield "".
func DamageTypeName(description string) string {
	m := damageName.FindStringSubmatch(strings.TrimSpace(description))
	if m == nil {
		return ""
	}
	return ruletext.UpperFirst(strings.ToLower(m[1]))
}

// ParseEffects turns a spell's rolls into effects. A cantrip roll at level
// 0, 5, 11 or 17 scales with character level; any other leveled roll scales
// with the slot it is cast from; a roll without a level does not scale.
// Damage and healing effects carry the higher-levels increment, and
// projectile scaling attaches to the first damage effect.
func ParseEffects(rolls []source.Roll, spellLevel int, description, higher string) []rules.SpellEffect {
	effects := make([]rules.SpellEffect, 0, len(rolls))
	inc := ParseIncrement(higher)

	for _, roll := range rolls {
		effect := rules.SpellEffect{
			Type:        EffectType(roll.Description),
			Description: strings.TrimSpace(roll.Description),
			DamageType:  DamageTypeName(roll.Description),
			DiceFormula: strings.TrimSpace(roll.Formula),
			ScalingType: rules.ScalingNone,
		}
		if roll.Level != nil {
			level := *roll.Level
			if spellLevel == 0 && slices.Contains(cantripLevels, level) {
				effect.ScalingType = rules.ScalingCharacterLevel
				effect.MinCharacterLevel = level
			} else {
				effect.ScalingType = rules.ScalingSpellSlot
				effect.MinSpellSlot = level
			}
		}
		if effect.Type != rules.EffectOther {
			effect.ScalingIncrement = inc
		}
		effects = append(effects, effect)
	}

	projectiles := ParseProjectiles(description, higher)
	if projectiles == nil && spellLevel == 0 {
		projectiles = ParseBeams(description)
	}
	if projectiles != nil {
		for i := range effects {
			if effects[i].Type == rules.EffectDamage {
				effects[i].Projectiles = projectiles
				break
			}
		}
	}
	return effects
}
