// Package equipment reads starting-equipment text into choice groups.
//
// Each bullet line is one of: a category choice ("any two simple weapons of
// your choice"), an either/or ("your choice of a shortbow or a sling"), a
// lettered choice ("(a) a greataxe or (b) any martial melee weapon"), or a
// list of items granted outright.
package equipment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
)

// Item is one resolved entry of an equipment line
type Item struct {
	Kind     rules.EquipmentKind
	Value    string
	Quantity int
}

var (
	anyWeaponsLine    = regexp.MustCompile(`(?i)^any\s+(?:(two|three|four|five|one|\d+)\s+)?(simple|martial)(?:\s+(melee|ranged))?\s+weapons?\s*(?:of\s+your\s+choice)?$`)
	yourChoiceLine    = regexp.MustCompile(`(?i)^your\s+choice\s+of\s+(.+?)\s+or\s+(.+)$`)
	letterMarker      = regexp.MustCompile(`(?i)\(([a-z])\)`)
	trailingOr        = regexp.MustCompile(`(?i)\s*,?\s*or\s*$`)
	trailingComma     = regexp.MustCompile(`\s*,\s*$`)
	listSeparator     = regexp.MustCompile(`(?i),\s+(?:and\s+)?|\s+and\s+`)
	compoundSeparator = regexp.MustCompile(`(?i),?\s+and\s+`)
	leadingArticle    = regexp.MustCompile(`(?i)^(?:a|an|the)\s+`)
	wordQuantity      = regexp.MustCompile(`(?i)^(two|three|four|five|six|seven|eight|nine|ten|twenty)\s+`)
	digitQuantity     = regexp.MustCompile(`^(\d+)\s+`)
	weaponCategory    = regexp.MustCompile(`(?i)^(?:any\s+)?(martial|simple)\s+(?:(melee|ranged)\s+)?weapons?$`)
	armorCategory     = regexp.MustCompile(`(?i)^(?:any\s+)?(light|medium|heavy)\s+armou?r$`)
	instrumentAny     = regexp.MustCompile(`(?i)^(?:any\s+)?(?:other\s+)?musical\s+instruments?(?:\s+of\s+your\s+choice)?$`)
	instrumentOne     = regexp.MustCompile(`(?i)^(?:one\s+)?musical\s+instruments?$`)
	parenQuantity     = regexp.MustCompile(`(?i)(?:quiver\s+of\s+)?(\w+)\s*\((\d+)\)`)
	trailingParen     = regexp.MustCompile(`\s*\([^)]+\)\s*$`)
	hasParen          = regexp.MustCompile(`\([^)]+\)`)
	startingIntro     = regexp.MustCompile(`You (?:begin play|start) with the following equipment`)
)

// CategoryMusicalInstrument is the category value for any musical instrument
const CategoryMusicalInstrument = "musical_instrument"

// ParseStartingEquipment reads a class's starting-equipment text. When the
// text carries the usual "You start with the following equipment" intro only
// the bullets after it are read, up to the "If you forgo" gold alternative.
func ParseStartingEquipment(text string) []rules.EquipmentChoice {
	text = equipmentSection(text)

	var choices []rules.EquipmentChoice
	group := 1
	for _, line := range Bullets(text) {
		parsed, isChoice := parseLine(line, fmt.Sprintf("choice_%d", group))
		choices = append(choices, parsed...)
		if isChoice {
			group++
		}
	}

	return choices
}

func equipmentSection(text string) string {
	loc := startingIntro.FindStringIndex(text)
	if loc == nil {
		return text
	}

	rest := text[loc[1]:]
	start := strings.IndexAny(rest, "•-")
	if start < 0 {
		return text
	}
	rest = rest[start:]
	if end := strings.Index(rest, "\n\nIf you forgo"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

// Bullets splits text into bullet entries. Lines starting with "•" or "-"
// open an entry, other lines continue it, and a blank line closes it. Text
// without any bullet is read one line per entry.
func Bullets(text string) []string {
	lines := strings.Split(text, "\n")

	hasBullet := false
	for _, line := range lines {
		if isBullet(line) {
			hasBullet = true
			break
		}
	}

	var out []string
	if !hasBullet {
		for _, line := range lines {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return out
	}

	var current []string
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, " "))
			current = nil
		}
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case isBullet(trimmed):
			flush()
			body := strings.TrimSpace(strings.TrimLeft(trimmed, "•-"))
			if body != "" {
				current = append(current, body)
			}
		case len(current) > 0:
			current = append(current, trimmed)
		}
	}
	flush()

	return out
}

func isBullet(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-")
}

// parseLine reads one bullet. The second result reports whether the line
// used up the choice group id.
func parseLine(line, group string) ([]rules.EquipmentChoice, bool) {
	line = strings.TrimSpace(line)

	if m := anyWeaponsLine.FindStringSubmatch(line); m != nil {
		quantity := 1
		if m[1] != "" {
			quantity = ruletext.WordToNumber(m[1], 1)
		}
		category := strings.ToLower(m[2])
		if m[3] != "" {
			category += "_" + strings.ToLower(m[3])
		}
		return []rules.EquipmentChoice{{
			Group:       group,
			Quantity:    quantity,
			Kind:        rules.EquipmentCategory,
			Value:       category,
			Description: line,
		}}, true
	}

	if m := yourChoiceLine.FindStringSubmatch(line); m != nil {
		var out []rules.EquipmentChoice
		for i, option := range []string{m[1], m[2]} {
			option = leadingArticle.ReplaceAllString(strings.TrimSpace(option), "")
			out = append(out, optionChoices(group, i+1, option)...)
		}
		return out, true
	}

	if letterMarker.MatchString(line) {
		options := letteredOptions(line)
		if len(options) == 0 {
			return nil, false
		}
		var out []rules.EquipmentChoice
		for i, option := range options {
			out = append(out, optionChoices(group, i+1, option)...)
		}
		return out, true
	}

	var out []rules.EquipmentChoice
	for _, part := range listSeparator.Split(line, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		for _, item := range ParseCompound(part) {
			out = append(out, rules.EquipmentChoice{
				Quantity:    item.Quantity,
				Kind:        item.Kind,
				Value:       item.Value,
				Description: part,
			})
		}
	}
	return out, false
}

// letteredOptions splits "(a) X, (b) Y or (c) Z" into its option texts
func letteredOptions(line string) []string {
	markers := letterMarker.FindAllStringIndex(line, -1)

	var options []string
	for i, marker := range markers {
		end := len(line)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		option := line[marker[1]:end]
		option = trailingOr.ReplaceAllString(option, "")
		option = trailingComma.ReplaceAllString(option, "")
		option = strings.TrimSpace(option)
		if option != "" {
			options = append(options, option)
		}
	}

	return options
}

func optionChoices(group string, option int, text string) []rules.EquipmentChoice {
	items := ParseCompound(text)
	out := make([]rules.EquipmentChoice, 0, len(items))
	for _, item := range items {
		opt := option
		out = append(out, rules.EquipmentChoice{
			Group:       group,
			Option:      &opt,
			Quantity:    item.Quantity,
			Kind:        item.Kind,
			Value:       item.Value,
			Description: text,
		})
	}
	return out
}

// ParseCompound splits "a longbow and a quiver of 20 arrows" into items
func ParseCompound(text string) []Item {
	var items []Item
	for _, part := range compoundSeparator.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, ",") && !hasParen.MatchString(part) {
			for _, sub := range strings.Split(part, ",") {
				if item, ok := ParseItem(sub); ok {
					items = append(items, item)
				}
			}
			continue
		}

		if item, ok := ParseItem(part); ok {
			items = append(items, item)
		}
	}
	return items
}

// ParseItem decomposes one item phrase: quantity prefix, article, weapon,
// armor or instrument category, "arrows (20)" style counts, else a literal
// item name
func ParseItem(s string) (Item, bool) {
	part := strings.TrimSpace(s)
	if part == "" {
		return Item{}, false
	}

	quantity := 1
	if m := wordQuantity.FindStringSubmatch(part); m != nil {
		quantity = ruletext.WordToNumber(m[1], 1)
		part = part[len(m[0]):]
	}
	if m := digitQuantity.FindStringSubmatch(part); m != nil {
		quantity = ruletext.WordToNumber(m[1], quantity)
		part = part[len(m[0]):]
	}
	part = leadingArticle.ReplaceAllString(part, "")

	if m := weaponCategory.FindStringSubmatch(part); m != nil {
		category := strings.ToLower(m[1])
		if m[2] != "" {
			category += "_" + strings.ToLower(m[2])
		}
		return Item{Kind: rules.EquipmentCategory, Value: category, Quantity: quantity}, true
	}

	if m := armorCategory.FindStringSubmatch(part); m != nil {
		return Item{Kind: rules.EquipmentCategory, Value: strings.ToLower(m[1]) + "_armor", Quantity: quantity}, true
	}

	if instrumentAny.MatchString(part) || instrumentOne.MatchString(part) {
		return Item{Kind: rules.EquipmentCategory, Value: CategoryMusicalInstrument, Quantity: quantity}, true
	}

	if m := parenQuantity.FindStringSubmatch(part); m != nil {
		count := ruletext.WordToNumber(m[2], 0)
		if count > 0 {
			return Item{Kind: rules.EquipmentItem, Value: NormalizeItemName(m[1]), Quantity: count}, true
		}
	}

	name := strings.TrimSpace(trailingParen.ReplaceAllString(part, ""))
	if name == "" {
		return Item{}, false
	}

	return Item{Kind: rules.EquipmentItem, Value: NormalizeItemName(name), Quantity: quantity}, true
}
