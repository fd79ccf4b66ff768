package counters

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
)

// Usage formulas for limits that scale with the character
const (
	FormulaProficiencyBonus = "proficiency_bonus"
	formulaModifierSuffix   = "_modifier"
)

var (
	usesProficiency = regexp.MustCompile(`(?i)a number of times equal to your proficiency bonus`)
	usesModifier    = regexp.MustCompile(`(?i)a number of times equal to (?:1 \+ )?your (strength|dexterity|constitution|intelligence|wisdom|charisma) modifier`)
	usesTimes       = regexp.MustCompile(`(?i)\b(once|twice|(one|two|three|four|five|six) times)\b`)
)

// ParseUsageLimit reads how many times a trait or feature can be used
// between rests. Text without a reset phrase has no limit and yields nil.
func ParseUsageLimit(text string) *rules.UsageLimit {
	reset := ParseResetTiming(text)
	if reset == "" {
		return nil
	}

	limit := &rules.UsageLimit{MaxUses: 1, Reset: reset}
	switch {
	case usesProficiency.MatchString(text):
		limit.MaxUses = 0
		limit.UsesFormula = FormulaProficiencyBonus
	case usesModifier.MatchString(text):
		m := usesModifier.FindStringSubmatch(text)
		limit.MaxUses = 0
		limit.UsesFormula = strings.ToLower(m[1]) + formulaModifierSuffix
	default:
		if m := usesTimes.FindStringSubmatch(text); m != nil {
			switch strings.ToLower(m[1]) {
			case "once":
			case "twice":
				limit.MaxUses = 2
			default:
				limit.MaxUses = ruletext.WordToNumber(m[2], 1)
			}
		}
	}
	return limit
}
