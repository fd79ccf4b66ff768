// Package charges reads item charges, how they recharge and what the
// item's spells cost.
package charges

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/matchers/counters"
	"github.com/KirkDiggler/rpg-ruletext/internal/pkg/ruletext"
)

// RechargeAll is the recharge formula of an item that regains every charge
const RechargeAll = "all"

// FormulaSpellLevel is the cost formula of a spell that costs one charge
// per spell level
const FormulaSpellLevel = "spell_level"

var (
	maxCharges   = regexp.MustCompile(`(?i)\b(?:has|have|holds?|starts\s+with)\s+(` + ruletext.NumberWordPattern + `)\s+charges\b`)
	regainClause = regexp.MustCompile(`(?i)regains?\s+(all(?:\s+of\s+its)?|[\dd\s+]+?)\s+(?:expended\s+)?charges[^.]*`)

	fixedCost    = regexp.MustCompile(`(?i)([a-z][a-z'’ /-]*?)\s*\((\d+)\s+charges?\)`)
	perLevelCost = regexp.MustCompile(`(?i)([a-z][a-z'’ /-]*?)\s*\((\d+)\s+charges?\s+per\s+spell\s+level,\s*up\s+to\s+(\d+)(?:st|nd|rd|th)\)`)
	expendToCast = regexp.MustCompile(`(?i)expend\s+(` + ruletext.NumberWordPattern + `)(\s+or\s+more)?\s+(?:of\s+its\s+)?charges?\s+to\s+cast\s+(?:the\s+)?([a-z][a-z'’ /-]*?)\s+spell\b`)

	listLead = regexp.MustCompile(`(?i)^(?:or|and)\s+`)
)

// Parse reads "has 7 charges" and "regains 1d6 + 1 expended charges daily at
// dawn". Spells cast from the item are attached; open-ended costs ("1 or
// more of its charges") are capped at the item's maximum. Returns nil when
// the item has no charges.
func Parse(text string) *rules.ChargeMechanic {
	m := maxCharges.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	maximum := ruletext.WordToNumber(m[1], 0)
	if maximum <= 0 {
		return nil
	}

	mechanic := &rules.ChargeMechanic{Max: maximum, Spells: ParseSpellCosts(text)}
	for i := range mechanic.Spells {
		if mechanic.Spells[i].CostMax == 0 {
			mechanic.Spells[i].CostMax = maximum
		}
	}

	if regain := regainClause.FindStringSubmatch(text); regain != nil {
		mechanic.RechargeFormula = rechargeFormula(regain[1])
		mechanic.RechargeTiming = counters.ParseResetTiming(regain[0])
	}
	return mechanic
}

func rechargeFormula(amount string) string {
	amount = strings.TrimSpace(amount)
	if strings.HasPrefix(strings.ToLower(amount), RechargeAll) {
		return RechargeAll
	}
	if n, err := strconv.Atoi(amount); err == nil {
		return strconv.Itoa(n)
	}
	return ruletext.NormalizeDice(amount)
}

// ParseSpellCosts reads the spells an item casts and their charge costs:
// "lesser restoration (2 charges)", "cure wounds (1 charge per spell level,
// up to 4th)" and "expend 1 of its charges to cast the fireball spell". A
// CostMax of 0 means the cost is open-ended. One entry per spell, first
// mention wins.
func ParseSpellCosts(text string) []rules.SpellChargeCost {
	type found struct {
		at   int
		cost rules.SpellChargeCost
	}
	var all []found

	for _, m := range perLevelCost.FindAllStringSubmatchIndex(text, -1) {
		per, errPer := strconv.Atoi(text[m[4]:m[5]])
		upTo, errUpTo := strconv.Atoi(text[m[6]:m[7]])
		if errPer != nil || errUpTo != nil {
			continue
		}
		formula := FormulaSpellLevel
		if per != 1 {
			formula = strconv.Itoa(per) + "*" + FormulaSpellLevel
		}
		all = append(all, found{m[0], rules.SpellChargeCost{
			Name:        spellName(text[m[2]:m[3]]),
			CostMin:     per,
			CostMax:     per * upTo,
			CostFormula: formula,
		}})
	}
	for _, m := range fixedCost.FindAllStringSubmatchIndex(text, -1) {
		cost, err := strconv.Atoi(text[m[4]:m[5]])
		if err != nil {
			continue
		}
		all = append(all, found{m[0], rules.SpellChargeCost{Name: spellName(text[m[2]:m[3]]), CostMin: cost, CostMax: cost}})
	}
	for _, m := range expendToCast.FindAllStringSubmatchIndex(text, -1) {
		cost := ruletext.WordToNumber(text[m[2]:m[3]], 0)
		if cost <= 0 {
			continue
		}
		c := rules.SpellChargeCost{Name: spellName(text[m[6]:m[7]]), CostMin: cost, CostMax: cost}
		if m[4] >= 0 {
			c.CostMax = 0
		}
		all = append(all, found{m[0], c})
	}

	var out []rules.SpellChargeCost
	seen := map[string]bool{}
	for len(all) > 0 {
		first := 0
		for i := range all {
			if all[i].at < all[first].at {
				first = i
			}
		}
		c := all[first].cost
		all = append(all[:first], all[first+1:]...)
		if c.Name == "" || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c)
	}
	return out
}

func spellName(raw string) string {
	name := listLead.ReplaceAllString(strings.TrimSpace(raw), "")
	return ruletext.TitleCase(name)
}
