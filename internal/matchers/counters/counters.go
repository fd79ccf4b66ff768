// Package counters builds per-level resource counters for a class: the
// values the export declares, two named corrections for values it leaves
// out, and choice counts read from feature prose.
package counters

import (
	"regexp"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
)

// Counters the named corrections apply to
const (
	CounterRage = "Rage"
	CounterKi   = "Ki"
)

// ParseResetCode maps an export reset code (L, S, D) to a timing
func ParseResetCode(code string) rules.ResetTiming {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "L":
		return rules.ResetLongRest
	case "S":
		return rules.ResetShortRest
	case "D":
		return rules.ResetDawn
	}
	return rules.ResetNone
}

var (
	resetShortOrLong = regexp.MustCompile(`(?i)finish (?:a|your) short (?:rest )?or long rest`)
	resetLong        = regexp.MustCompile(`(?i)finish (?:a|your) long rest`)
	resetShort       = regexp.MustCompile(`(?i)finish (?:a|your) short rest`)
	resetDawn        = regexp.MustCompile(`(?i)\b(?:at|each|next|daily at) dawn\b`)
)

// ParseResetTiming reads when a feature's uses come back. A short or long
// rest counts as a short rest. Text with no reset phrase yields "".
func ParseResetTiming(text string) rules.ResetTiming {
	switch {
	case resetShortOrLong.MatchString(text):
		return rules.ResetShortRest
	case resetLong.MatchString(text):
		return rules.ResetLongRest
	case resetShort.MatchString(text):
		return rules.ResetShortRest
	case resetDawn.MatchString(text):
		return rules.ResetDawn
	}
	return ""
}

// FromAutolevels reads the counters an export declares per level
func FromAutolevels(levels []source.Autolevel) []rules.CounterDefinition {
	var out []rules.CounterDefinition
	for _, level := range levels {
		for _, c := range level.Counters {
			if strings.TrimSpace(c.Name) == "" {
				continue
			}
			out = append(out, rules.CounterDefinition{
				Name:     strings.TrimSpace(c.Name),
				Level:    level.Level,
				Value:    c.Value,
				Reset:    ParseResetCode(c.Reset),
				Subclass: strings.TrimSpace(c.Subclass),
			})
		}
	}
	return out
}

// ApplyCorrections fills the two gaps the export is known to have.
// Barbarian Rage stops at level 17 or 19 but becomes unlimited at 20.
// Monk Ki starts at level 2 and the level 1 entry is a placeholder.
func ApplyCorrections(className string, counters []rules.CounterDefinition) []rules.CounterDefinition {
	switch strings.ToLower(strings.TrimSpace(className)) {
	case "barbarian":
		return correctRage(counters)
	case "monk":
		return correctKi(counters)
	}
	return counters
}

func correctRage(counters []rules.CounterDefinition) []rules.CounterDefinition {
	var last *rules.CounterDefinition
	for i := range counters {
		c := &counters[i]
		if c.Name != CounterRage || c.Subclass != "" {
			continue
		}
		if c.Level >= 20 {
			return counters
		}
		if last == nil || c.Level > last.Level {
			last = c
		}
	}
	if last == nil || (last.Level != 17 && last.Level != 19) {
		return counters
	}
	return append(counters[:len(counters):len(counters)], rules.CounterDefinition{
		Name:  CounterRage,
		Level: 20,
		Value: rules.Unlimited,
		Reset: last.Reset,
	})
}

func correctKi(counters []rules.CounterDefinition) []rules.CounterDefinition {
	startsAtTwo := false
	for _, c := range counters {
		if c.Name == CounterKi && c.Level == 2 && c.Subclass == "" {
			startsAtTwo = true
			break
		}
	}
	if !startsAtTwo {
		return counters
	}

	out := counters[:0:0]
	for _, c := range counters {
		if c.Name == CounterKi && c.Level == 1 && c.Subclass == "" && (c.Value == 0 || c.Value == 1) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Dedupe keeps the first counter for each (name, level, subclass)
func Dedupe(counters []rules.CounterDefinition) []rules.CounterDefinition {
	seen := make(map[string]bool, len(counters))
	out := make([]rules.CounterDefinition, 0, len(counters))
	for _, c := range counters {
		if seen[c.Key()] {
			continue
		}
		seen[c.Key()] = true
		out = append(out, c)
	}
	return out
}

// Sort orders counters by name, subclass, then level
func Sort(counters []rules.CounterDefinition) {
	sort.SliceStable(counters, func(i, j int) bool {
		a, b := counters[i], counters[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Subclass != b.Subclass {
			return a.Subclass < b.Subclass
		}
		return a.Level < b.Level
	})
}
