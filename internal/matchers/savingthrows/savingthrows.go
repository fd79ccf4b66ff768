// Package savingthrows reads the saving throws a spell, item or feature
// demands and classifies what a success does.
package savingthrows

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
)

// Context windows around a mention, in bytes
const (
	lookBehind         = 100
	recurringLookAhead = 50
	modifierWindow     = 80
	effectWindow       = 200
	recurringEffect    = 250
)

var abilities = []struct {
	code    string
	pattern *regexp.Regexp
}{
	{"STR", mention("Strength")},
	{"DEX", mention("Dexterity")},
	{"CON", mention("Constitution")},
	{"INT", mention("Intelligence")},
	{"WIS", mention("Wisdom")},
	{"CHA", mention("Charisma")},
}

func mention(ability string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + ability + `\s+(?:saving\s+throws?|saves?)\b`)
}

var recurringPhrases = []string{
	"at the end of each of its turns",
	"on each of your turns",
	"end of each turn",
	"repeat the save",
	"can repeat",
	"can make another",
	"make another",
	"each time",
}

var (
	advantageMakes    = regexp.MustCompile(`(?i)makes?\s+(?:all\s+)?.*saving\s+throws?\s+with\s+advantage\b`)
	advantageOn       = regexp.MustCompile(`(?i)\badvantage\s+on.{0,50}?saving\s+throws?`)
	advantageNear     = regexp.MustCompile(`(?i)saving\s+throws?.{0,20}with\s+advantage\b`)
	opponentAdvantage = regexp.MustCompile(`(?i)does\s+so\s+with\s+advantage\s+if`)
	disadvantageMakes = regexp.MustCompile(`(?i)makes?\s+(?:this\s+)?.*saving\s+throws?\s+with\s+disadvantage`)
	disadvantageOn    = regexp.MustCompile(`(?i)disadvantage\s+on.{0,50}?saving\s+throws?`)
	endsEffect        = regexp.MustCompile(`(?i)to\s+end\s+(?:the\s+)?(?:effect|condition)|end\s+(?:this\s+)?(?:effect|condition)`)
	halfTake          = regexp.MustCompile(`(?i)\btakes?\s+(?:half|1/2)`)
	halfDamage        = regexp.MustCompile(`(?i)half\s+(?:the\s+|as\s+much\s+)?damage`)
	orTakeDamage      = regexp.MustCompile(`(?i)or\s+takes?\s+.*?damage`)
	successfulSave    = regexp.MustCompile(`(?i)on\s+a\s+successful\s+(?:one|save)`)
	failedThenDamage  = regexp.MustCompile(`(?i)on\s+a\s+failed\s+save.*takes?\s+\d+d\d+`)
	damageThenFailed  = regexp.MustCompile(`(?i)takes?\s+\d+d\d+.*on\s+a\s+failed\s+save`)
	orBecomeCondition = regexp.MustCompile(`(?i)or\s+(?:be|become|becomes)\s+(?:charmed|frightened|paralyzed|stunned|poisoned|restrained|blinded|deafened|petrified|banished|incapacitated|cursed)`)
)

// window returns text[start:end] clamped to the text and widened to rune
// boundaries
func window(text string, start, end int) string {
	start = max(start, 0)
	end = min(end, len(text))
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	if start >= end {
		return ""
	}
	return text[start:end]
}

// Parse finds every "{Ability} saving throw" mention. For each one it
// decides whether the save repeats, whether it is made with advantage or
// disadvantage, and what a success does, then keeps one requirement per
// (ability, recurring, modifier).
func Parse(text string) []rules.SavingThrowRequirement {
	var out []rules.SavingThrowRequirement
	seen := map[string]bool{}

	for _, ability := range abilities {
		for _, loc := range ability.pattern.FindAllStringIndex(text, -1) {
			at := loc[0]
			before := at - lookBehind

			recurring := isRecurring(window(text, before, at+recurringLookAhead))
			length := effectWindow
			if recurring {
				length = recurringEffect
			}

			req := rules.SavingThrowRequirement{
				Ability:   ability.code,
				Effect:    Effect(window(text, before, max(before, 0)+length)),
				Recurring: recurring,
				Modifier:  Modifier(window(text, at-modifierWindow, at+modifierWindow)),
			}
			if seen[req.Key()] {
				continue
			}
			seen[req.Key()] = true
			out = append(out, req)
		}
	}
	return out
}

func isRecurring(context string) bool {
	lower := strings.ToLower(context)
	for _, phrase := range recurringPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Modifier reads whether a save is made with advantage or disadvantage.
// "does so with advantage if" grants the opponent advantage, so it reads as
// disadvantage for the target.
func Modifier(context string) rules.SaveModifier {
	opponent := opponentAdvantage.MatchString(context)
	if advantageMakes.MatchString(context) ||
		advantageOn.MatchString(context) ||
		(advantageNear.MatchString(context) && !opponent) {
		return rules.SaveModifierAdvantage
	}
	if disadvantageMakes.MatchString(context) || disadvantageOn.MatchString(context) || opponent {
		return rules.SaveModifierDisadvantage
	}
	return rules.SaveModifierNone
}

// Effect classifies what a successful save does. Checks run in priority
// order: ends effect, half damage, full damage, negates, reduced duration.
// Returns "" when nothing matches.
func Effect(context string) rules.SaveEffect {
	lower := strings.ToLower(context)
	switch {
	case endsEffect.MatchString(context):
		return rules.SaveEndsEffect
	case halfTake.MatchString(context),
		halfDamage.MatchString(context),
		orTakeDamage.MatchString(context),
		successfulSave.MatchString(context):
		return rules.SaveHalfDamage
	case failedThenDamage.MatchString(context), damageThenFailed.MatchString(context):
		return rules.SaveFullDamage
	case orBecomeCondition.MatchString(context),
		strings.Contains(lower, "negates"),
		strings.Contains(lower, "avoids"):
		return rules.SaveNegates
	case strings.Contains(lower, "end") &&
		(strings.Contains(lower, "effect") || strings.Contains(lower, "condition")):
		return rules.SaveEndsEffect
	case strings.Contains(lower, "duration") &&
		(strings.Contains(lower, "reduced") || strings.Contains(lower, "shorter")):
		return rules.SaveReducedDuration
	}
	return ""
}
