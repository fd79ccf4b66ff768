// Package spells reads the spells a feat or racial trait lets a character
// cast.
package spells

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
)

var (
	learnSpell      = regexp.MustCompile(`(?i)you learn the ([a-z][a-z\s']+?) spell`)
	genericSpell    = regexp.MustCompile(`(?i)^\d+(?:st|nd|rd|th)-level|cantrip|of your choice`)
	levelChoice     = regexp.MustCompile(`(?i)(one|two|three)\s+(\d+)(?:st|nd|rd|th)-level spells? of your choice`)
	schoolLimit     = regexp.MustCompile(`(?i)must be from the ([a-z]+)(?: or ([a-z]+))? school`)
	cantripChoice   = regexp.MustCompile(`(?i)(one|two|three|four)\s+([a-z]+)\s+cantrips?\s+of your choice`)
	classSpell      = regexp.MustCompile(`(?i)(one|two|three)\s+(\d+)(?:st|nd|rd|th)-level\s+([a-z]+)\s+spell`)
	ritualOnly      = regexp.MustCompile(`(?i)must have the ritual tag`)
	raceCantripList = regexp.MustCompile(`(?i)you know (?:one|a) (?:\w+ )?cantrip of your choice from the ([\w\s]+?) spell list`)
	raceCantrip     = regexp.MustCompile(`(?i)you know the ([\w\s']+?) cantrip`)
	raceAtLevel     = regexp.MustCompile(`(?i)once you reach (\d+)(?:st|nd|rd|th) level[^.]*?cast the ([\w\s']+?) spell`)
	raceOnce        = regexp.MustCompile(`(?i)you can cast the ([\w\s']+?) spell once`)
	shortRest       = regexp.MustCompile(`(?i)short or long rest|short rest`)
)

// DetectReset reads how often a granted spell comes back
func DetectReset(text string) rules.ResetTiming {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "finish a long rest"):
		return rules.ResetLongRest
	case strings.Contains(lower, "finish a short or long rest"), strings.Contains(lower, "finish a short rest"):
		return rules.ResetShortRest
	}
	return ""
}

func choiceGroup(n int) string {
	return fmt.Sprintf("spell_choice_%d", n)
}

// ParseFeat reads fixed spells ("you learn the misty step spell") and
// spell choices: levelled spells limited by school, class cantrips and
// class spells, optionally ritual-only.
func ParseFeat(text string) []rules.SpellGrant {
	var out []rules.SpellGrant
	reset := DetectReset(text)

	for _, m := range learnSpell.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if genericSpell.MatchString(name) {
			continue
		}
		out = append(out, rules.SpellGrant{Name: ruletext.TitleCase(name), Reset: reset})
	}

	group := 0
	schools := schoolLimit.FindStringSubmatch(text)
	if m := levelChoice.FindStringSubmatch(text); m != nil && schools != nil {
		if level, err := strconv.Atoi(m[2]); err == nil {
			group++
			grant := rules.SpellGrant{
				IsChoice:    true,
				ChoiceGroup: choiceGroup(group),
				Quantity:    ruletext.WordToNumber(m[1], 1),
				MaxLevel:    level,
			}
			for _, school := range schools[1:] {
				if school != "" {
					grant.Schools = append(grant.Schools, strings.ToLower(school))
				}
			}
			out = append(out, grant)
		}
	}

	if m := cantripChoice.FindStringSubmatch(text); m != nil {
		group++
		out = append(out, rules.SpellGrant{
			SpellList:   strings.ToLower(m[2]),
			IsCantrip:   true,
			IsChoice:    true,
			ChoiceGroup: choiceGroup(group),
			Quantity:    ruletext.WordToNumber(m[1], 1),
		})
	}

	if m := classSpell.FindStringSubmatch(text); m != nil && schools == nil {
		if level, err := strconv.Atoi(m[2]); err == nil {
			group++
			out = append(out, rules.SpellGrant{
				SpellList:   strings.ToLower(m[3]),
				IsChoice:    true,
				ChoiceGroup: choiceGroup(group),
				Quantity:    ruletext.WordToNumber(m[1], 1),
				MaxLevel:    level,
				RitualOnly:  ritualOnly.MatchString(text),
			})
		}
	}
	return out
}

// ParseRace reads innate spellcasting from one racial trait: cantrip
// choices from a class list ("cleric or wizard" yields one choice per
// list), fixed cantrips, spells unlocked at a character level, and spells
// castable once per rest.
func ParseRace(text string) []rules.SpellGrant {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "cantrip") && !strings.Contains(lower, "cast") && !strings.Contains(lower, "spell") {
		return nil
	}

	var out []rules.SpellGrant
	seen := map[string]bool{}
	if m := raceCantripList.FindStringSubmatch(text); m != nil {
		for _, class := range strings.Split(strings.ToLower(strings.TrimSpace(m[1])), " or ") {
			out = append(out, rules.SpellGrant{
				SpellList: strings.TrimSpace(class),
				IsCantrip: true,
				IsChoice:  true,
				Quantity:  1,
			})
		}
	}

	for _, m := range raceCantrip.FindAllStringSubmatch(text, -1) {
		out = append(out, rules.SpellGrant{Name: ruletext.TitleCase(strings.TrimSpace(m[1])), IsCantrip: true})
	}

	for _, m := range raceAtLevel.FindAllStringSubmatch(text, -1) {
		level, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		name := ruletext.TitleCase(strings.TrimSpace(m[2]))
		seen[name] = true
		out = append(out, rules.SpellGrant{
			Name:     name,
			MinLevel: level,
			Reset:    rules.ResetLongRest,
		})
	}

	for _, m := range raceOnce.FindAllStringSubmatch(text, -1) {
		name := ruletext.TitleCase(strings.TrimSpace(m[1]))
		if seen[name] {
			continue
		}
		reset := rules.ResetLongRest
		if shortRest.MatchString(text) {
			reset = rules.ResetShortRest
		}
		out = append(out, rules.SpellGrant{Name: name, Reset: reset})
	}
	return out
}
