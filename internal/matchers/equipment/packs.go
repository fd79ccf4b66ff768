package equipment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
)

type packRule struct {
	pattern *regexp.Regexp
	name    string
	// counted rules take their quantity from the first capture group,
	// measured rules put it into the name instead
	counted  bool
	measured bool
}

// fixed names for pack lines whose wording differs from the item's name
var packRules = []packRule{
	{pattern: regexp.MustCompile(`(?i)^an?\s+bag\s+of\s+[\d,]+\s+ball\s+bearings`), name: "ball bearings (bag of 1,000)"},
	{pattern: regexp.MustCompile(`(?i)^(\d+)\s+feet\s+of\s+string`), name: "string (%s feet)", measured: true},
	{pattern: regexp.MustCompile(`(?i)^(\d+)\s+feet(?:\s+of)?\s+hempen\s+rope`), name: "hempen rope (50 feet)"},
	{pattern: regexp.MustCompile(`(?i)^(\d+)\s+days?\s+(?:of\s+)?rations`), name: "rations (1 day)", counted: true},
	{pattern: regexp.MustCompile(`(?i)^(\d+)\s+flasks?\s+of\s+oil`), name: "oil (flask)", counted: true},
	{pattern: regexp.MustCompile(`(?i)^(\d+)\s+sheets?\s+of\s+paper`), name: "paper (one sheet)", counted: true},
	{pattern: regexp.MustCompile(`(?i)^(\d+)\s+sheets?\s+of\s+parchment`), name: "parchment (one sheet)", counted: true},
	{pattern: regexp.MustCompile(`(?i)^an?\s+bottle\s+of\s+ink`), name: "ink (1-ounce bottle)"},
	{pattern: regexp.MustCompile(`(?i)^(\d+)\s+cases?\s+for\s+maps\s+and\s+scrolls`), name: "map or scroll case", counted: true},
	{pattern: regexp.MustCompile(`(?i)^an?\s+vial\s+of\s+perfume`), name: "perfume (vial)"},
	{pattern: regexp.MustCompile(`(?i)^(\d+)\s+costumes?`), name: "costume clothes", counted: true},
	{pattern: regexp.MustCompile(`(?i)^an?\s+book\s+of\s+lore`), name: "book"},
	{pattern: regexp.MustCompile(`(?i)^an?\s+set\s+of\s+fine\s+clothes`), name: "fine clothes"},
	{pattern: regexp.MustCompile(`(?i)^(\d+)\s+blocks?\s+of\s+incense`), name: "incense", counted: true},
}

var (
	packCounted = regexp.MustCompile(`^(\d+)\s+(.+)$`)
	packArticle = regexp.MustCompile(`(?i)^an?\s+(.+)$`)
	packBullet  = regexp.MustCompile(`(?m)•\s*(.+?)\s*$`)
)

// pluralExceptions are names that end in "s" but are already singular
var pluralExceptions = []string{"clothes", "mess", "rations", "ball bearings", "tools", "supplies"}

// ParsePackContents reads the "Includes:" bullet list of an equipment pack
func ParsePackContents(description string) []rules.PackItem {
	idx := strings.Index(description, "Includes:")
	if idx < 0 {
		return nil
	}
	section := description[idx+len("Includes:"):]
	if end := strings.Index(section, "Source:"); end >= 0 {
		section = section[:end]
	}

	var items []rules.PackItem
	for _, m := range packBullet.FindAllStringSubmatch(section, -1) {
		if item, ok := parsePackLine(m[1]); ok {
			items = append(items, item)
		}
	}
	return items
}

func parsePackLine(line string) (rules.PackItem, bool) {
	line = strings.TrimRight(strings.TrimSpace(line), ".")
	if line == "" {
		return rules.PackItem{}, false
	}

	for _, rule := range packRules {
		m := rule.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		item := rules.PackItem{Name: rule.name, Quantity: 1}
		switch {
		case rule.counted:
			item.Quantity = ruletext.WordToNumber(m[1], 1)
		case rule.measured:
			item.Name = fmt.Sprintf(rule.name, m[1])
		}
		return item, true
	}

	if m := packCounted.FindStringSubmatch(line); m != nil {
		return rules.PackItem{Name: NormalizeItemName(m[2]), Quantity: ruletext.WordToNumber(m[1], 1)}, true
	}
	if m := packArticle.FindStringSubmatch(line); m != nil {
		return rules.PackItem{Name: NormalizeItemName(m[1]), Quantity: 1}, true
	}

	return rules.PackItem{Name: NormalizeItemName(line), Quantity: 1}, true
}

// NormalizeItemName lower-cases name and drops a plural "s" ("torches"
// becomes "torch"), leaving names such as "rations" and "clothes" alone
func NormalizeItemName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	for _, exception := range pluralExceptions {
		if strings.Contains(name, exception) {
			return name
		}
	}

	if !strings.HasSuffix(name, "s") || strings.HasSuffix(name, "ss") {
		return name
	}
	if strings.HasSuffix(name, "ches") || strings.HasSuffix(name, "shes") {
		return name[:len(name)-2]
	}
	return name[:len(name)-1]
}
