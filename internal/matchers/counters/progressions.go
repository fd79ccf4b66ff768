package counters

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
)

// choicePattern maps a feature name fragment to the counter it feeds.
// Additional marks features that add to a running total.
type choicePattern struct {
	Feature    string
	Counter    string
	Subclass   string
	Additional bool
}

// More specific fragments come first
var choicePatterns = []choicePattern{
	{Feature: "Additional Arcane Shot", Counter: "Arcane Shots Known", Subclass: "Arcane Archer", Additional: true},
	{Feature: "Arcane Shot", Counter: "Arcane Shots Known", Subclass: "Arcane Archer"},
	{Feature: "Additional Maneuvers", Counter: "Maneuvers Known", Subclass: "Battle Master", Additional: true},
	{Feature: "Combat Superiority", Counter: "Maneuvers Known", Subclass: "Battle Master"},
	{Feature: "Extra Elemental Discipline", Counter: "Elemental Disciplines Known", Subclass: "Way of the Four Elements", Additional: true},
	{Feature: "Disciple of the Elements", Counter: "Elemental Disciplines Known", Subclass: "Way of the Four Elements"},
	{Feature: "Additional Fighting Style", Counter: "Fighting Styles Known", Additional: true},
	{Feature: "Fighting Style", Counter: "Fighting Styles Known"},
	{Feature: "Metamagic", Counter: "Metamagic Known"},
	{Feature: "Infuse Item", Counter: "Infusions Known"},
	{Feature: "Rune Carver", Counter: "Runes Known", Subclass: "Rune Knight"},
}

func findChoicePattern(featureName string) (choicePattern, bool) {
	for _, p := range choicePatterns {
		if strings.Contains(featureName, p.Feature) {
			return p, true
		}
	}
	return choicePattern{}, false
}

// Progress is the running total of each choice counter, keyed by counter
// name. Totals only grow.
type Progress map[string]int

func (p Progress) record(name string, value int) {
	if value > p[name] {
		p[name] = value
	}
}

var (
	subclassInName     = regexp.MustCompile(`\(([^)]+)\)`)
	embeddedRow        = regexp.MustCompile(`(?im)(?:^|\s)(\d+)(?:st|nd|rd|th)\s*\|\s*(\d+)(?:\s*\|\s*\d+)?`)
	shouldKnow         = regexp.MustCompile(`(?i)should know\s+(\d+)\s+`)
	learnAdditional    = regexp.MustCompile(`(?i)(?:learn|gain)\s+(one|two|three|four|five)\s+additional`)
	countAdditional    = regexp.MustCompile(`(?i)(one|two|three|four|five)\s+additional`)
	chooseSecond       = regexp.MustCompile(`(?i)(?:choose|can choose)\s+a\s+second`)
	initialCount       = regexp.MustCompile(`(?i)(?:learn|gain|choose|pick)\s+(one|two|three|four|five|six|seven|eight|nine|ten)\b`)
	anotherCount       = regexp.MustCompile(`(?i)another\s+(one|two|three)`)
	additionalLevels   = regexp.MustCompile(`(?i)(?:additional|another)[^.]*?at\s+([\d,\s]+(?:st|nd|rd|th)[^.]*)`)
	ordinalLevel       = regexp.MustCompile(`(?i)(\d+)(?:st|nd|rd|th)`)
	chooseOneFollowing = regexp.MustCompile(`(?i)choose\s+one\s+of\s+the\s+following`)
	oneOfYourChoice    = regexp.MustCompile(`(?i)one\s+(?:other\s+)?(?:\w+\s+)?(?:discipline|style|option)\s+of\s+your\s+choice`)
)

// ParseChoiceProgressions reads how many maneuvers, metamagic options,
// infusions, runes and similar choices a class knows at each level. Features
// are matched by name against a fixed pattern list; counts come from, in
// order: an embedded "3rd | 2" table, "should know N", additional-choice
// wording added to the running total, an initial count plus the levels it
// grows at, and finally "choose one of the following". progress carries
// running totals across calls and may be nil. Results are de-duplicated by
// (name, level, subclass).
func ParseChoiceProgressions(features []rules.Feature, progress Progress) []rules.CounterDefinition {
	if progress == nil {
		progress = Progress{}
	}

	var out []rules.CounterDefinition
	seen := map[string]bool{}
	for _, feature := range features {
		pattern, ok := findChoicePattern(feature.Name)
		if !ok {
			continue
		}
		subclass := pattern.Subclass
		if m := subclassInName.FindStringSubmatch(feature.Name); m != nil {
			subclass = strings.TrimSpace(m[1])
		}

		for _, c := range extractChoices(feature.Description, feature.Level, pattern, subclass, progress[pattern.Counter]) {
			if seen[c.Key()] {
				continue
			}
			seen[c.Key()] = true
			out = append(out, c)
			progress.record(pattern.Counter, c.Value)
		}
	}
	return out
}

func extractChoices(text string, level int, pattern choicePattern, subclass string, total int) []rules.CounterDefinition {
	counter := func(level, value int) rules.CounterDefinition {
		return rules.CounterDefinition{
			Name:     pattern.Counter,
			Level:    level,
			Value:    value,
			Reset:    rules.ResetNone,
			Subclass: subclass,
		}
	}

	if rows := embeddedRow.FindAllStringSubmatch(text, -1); len(rows) > 0 {
		var out []rules.CounterDefinition
		for _, row := range rows {
			rowLevel, errLevel := strconv.Atoi(row[1])
			value, errValue := strconv.Atoi(row[2])
			if errLevel != nil || errValue != nil {
				continue
			}
			out = append(out, counter(rowLevel, value))
		}
		if len(out) > 0 {
			return out
		}
	}

	if m := shouldKnow.FindStringSubmatch(text); m != nil {
		if value, err := strconv.Atoi(m[1]); err == nil {
			return []rules.CounterDefinition{counter(level, value)}
		}
	}

	if pattern.Additional {
		if chooseSecond.MatchString(text) {
			return []rules.CounterDefinition{counter(level, 2)}
		}
		added := 1
		if m := learnAdditional.FindStringSubmatch(text); m != nil {
			added = ruletext.WordToNumber(m[1], 1)
		} else if m := countAdditional.FindStringSubmatch(text); m != nil {
			added = ruletext.WordToNumber(m[1], 1)
		}
		return []rules.CounterDefinition{counter(level, total+added)}
	}

	var out []rules.CounterDefinition
	if m := initialCount.FindStringSubmatch(text); m != nil {
		running := ruletext.WordToNumber(m[1], 0)
		if running > 0 {
			out = append(out, counter(level, running))
			step := perLevelCount(text)
			for _, at := range growthLevels(text) {
				running += step
				out = append(out, counter(at, running))
			}
		}
	}

	if len(out) == 0 && (chooseOneFollowing.MatchString(text) || oneOfYourChoice.MatchString(text)) {
		out = append(out, counter(level, 1))
	}
	return out
}

func perLevelCount(text string) int {
	if m := countAdditional.FindStringSubmatch(text); m != nil {
		return ruletext.WordToNumber(m[1], 1)
	}
	if m := anotherCount.FindStringSubmatch(text); m != nil {
		return ruletext.WordToNumber(m[1], 1)
	}
	return 1
}

func growthLevels(text string) []int {
	m := additionalLevels.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var levels []int
	for _, o := range ordinalLevel.FindAllStringSubmatch(m[1], -1) {
		if n, err := strconv.Atoi(o[1]); err == nil {
			levels = append(levels, n)
		}
	}
	return levels
}
