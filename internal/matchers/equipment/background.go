package equipment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
)

var (
	choiceParen  = regexp.MustCompile(`(?i)\(([^)]*choice[^)]*)\)`)
	leadingAnd   = regexp.MustCompile(`(?i)^and\s+`)
	setOf        = regexp.MustCompile(`(?i)\s*set\s+of\s+`)
	containingGP = regexp.MustCompile(`(?i)^(.+?)\s+containing\s+(\d+)\s+gp$`)
)

const equipmentLine = "• Equipment:"

// ParseBackgroundEquipment reads the "• Equipment:" line of a background
// description. A pouch "containing 15 gp" yields the pouch plus a gp entry.
func ParseBackgroundEquipment(text string) []rules.EquipmentChoice {
	section, ok := backgroundSection(text)
	if !ok {
		return nil
	}

	var out []rules.EquipmentChoice
	group := 1
	for _, part := range splitOutsideParens(section) {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "and") {
			continue
		}
		part = strings.TrimSpace(leadingAnd.ReplaceAllString(part, ""))
		if part == "" {
			continue
		}

		entry := rules.EquipmentChoice{Kind: rules.EquipmentItem, Quantity: 1}
		if m := choiceParen.FindStringSubmatch(part); m != nil {
			one := 1
			entry.Group = fmt.Sprintf("choice_%d", group)
			entry.Option = &one
			entry.Description = strings.TrimSpace(m[1])
			part = strings.TrimSpace(choiceParen.ReplaceAllString(part, ""))
			group++
		}

		if m := digitQuantity.FindStringSubmatch(part); m != nil {
			entry.Quantity = ruletext.WordToNumber(m[1], 1)
			part = strings.TrimSpace(part[len(m[0]):])
		}

		name := leadingArticle.ReplaceAllString(part, "")
		name = strings.TrimSpace(setOf.ReplaceAllString(name, ""))

		if m := containingGP.FindStringSubmatch(name); m != nil {
			entry.Value = strings.TrimSpace(m[1])
			out = append(out, entry, rules.EquipmentChoice{
				Kind:     rules.EquipmentItem,
				Value:    "gp",
				Quantity: ruletext.WordToNumber(m[2], 0),
			})
			continue
		}

		if name == "" {
			continue
		}
		entry.Value = name
		out = append(out, entry)
	}

	return out
}

// backgroundSection returns the text after "• Equipment:" up to a blank
// line or a new line starting with a capital letter or bullet
func backgroundSection(text string) (string, bool) {
	idx := strings.Index(text, equipmentLine)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimLeft(text[idx+len(equipmentLine):], " \t")

	end := len(rest)
	for i := 0; i < len(rest); i++ {
		if rest[i] != '\n' {
			continue
		}
		if i+1 < len(rest) {
			next := rest[i+1:]
			if next[0] == '\n' || (next[0] >= 'A' && next[0] <= 'Z') || strings.HasPrefix(next, "•") {
				end = i
				break
			}
		}
	}

	section := strings.TrimSpace(strings.ReplaceAll(rest[:end], "\n", " "))
	return section, section != ""
}

func splitOutsideParens(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
