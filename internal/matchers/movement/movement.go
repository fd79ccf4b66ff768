// Package movement reads movement speeds and movement cost changes.
package movement

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
)

// Movement types
const (
	TypeWalk   = "walk"
	TypeFly    = "fly"
	TypeSwim   = "swim"
	TypeClimb  = "climb"
	TypeBurrow = "burrow"
)

// Activities with a movement cost
const (
	ActivityClimbing         = "climbing"
	ActivitySwimming         = "swimming"
	ActivityStandingUp       = "standing_from_prone"
	ActivityDifficultTerrain = "difficult_terrain"
	ActivityRunningJump      = "running_jump"
)

var movementTypes = map[string]string{
	"walk":      TypeWalk,
	"walking":   TypeWalk,
	"fly":       TypeFly,
	"flying":    TypeFly,
	"swim":      TypeSwim,
	"swimming":  TypeSwim,
	"climb":     TypeClimb,
	"climbing":  TypeClimb,
	"burrow":    TypeBurrow,
	"burrowing": TypeBurrow,
}

const typeNames = `walk|walking|fly|flying|swim|swimming|climb|climbing|burrow|burrowing`

var (
	speedOf          = regexp.MustCompile(`(?i)\b(` + typeNames + `)\s+speed\s+of\s+(\d+)\s*(?:feet|ft\.?)`)
	speedEqual       = regexp.MustCompile(`(?i)\b(` + typeNames + `)\s+speed\s+(?:is\s+)?equal\s+to\s+your\s+walking\s+speed`)
	baseWalking      = regexp.MustCompile(`(?i)\bbase walking speed is\s+(\d+)\s*feet`)
	speedIncrease    = regexp.MustCompile(`(?i)\byour\s+(?:(` + typeNames + `)\s+)?speed\s+increases\s+by\s+(\d+)\s*feet([^.]*)`)
	whileClause      = regexp.MustCompile(`(?i)\b((?:while|when|if)\s+[^,.]+)`)
	climbNoCost      = regexp.MustCompile(`(?i)climbing\s+(?:doesn't|doesn’t|does not|no longer)\s+costs?\s+(?:you\s+)?extra\s+movement`)
	swimNoCost       = regexp.MustCompile(`(?i)swimming\s+(?:doesn't|doesn’t|does not|no longer)\s+costs?\s+(?:you\s+)?extra\s+movement`)
	standUp          = regexp.MustCompile(`(?i)stand(?:ing)?\s+up[^.]*?(?:only|uses only)\s+(\d+)\s+feet\s+of\s+(?:your\s+)?movement`)
	difficultTerrain = regexp.MustCompile(`(?i)(nonmagical\s+)?difficult\s+terrain\s+(?:doesn't|doesn’t|does not|no longer)\s+costs?\s+(?:you\s+)?extra\s+movement|moving\s+through\s+(nonmagical\s+)?difficult\s+terrain\s+costs\s+(?:you\s+)?no\s+extra\s+movement`)
	runningJump      = regexp.MustCompile(`(?i)running\s+(?:long\s+jump|high\s+jump)[^.]*?after\s+moving\s+only\s+(\d+)\s+feet`)
)

func movementType(word string) string {
	return movementTypes[strings.ToLower(word)]
}

// ParseSpeeds reads movement modes: "flying speed of 50 feet", "swim speed
// equal to your walking speed" and "base walking speed is 25 feet". A speed
// equal to walking takes the walking value passed in. One grant per
// movement type, first mention wins.
func ParseSpeeds(text string, walking int) []rules.SpeedGrant {
	type found struct {
		at    int
		grant rules.SpeedGrant
	}
	var all []found

	for _, m := range speedOf.FindAllStringSubmatchIndex(text, -1) {
		feet, err := strconv.Atoi(text[m[4]:m[5]])
		if err != nil {
			continue
		}
		all = append(all, found{m[0], rules.SpeedGrant{MovementType: movementType(text[m[2]:m[3]]), Feet: feet}})
	}
	for _, m := range speedEqual.FindAllStringSubmatchIndex(text, -1) {
		all = append(all, found{m[0], rules.SpeedGrant{
			MovementType:  movementType(text[m[2]:m[3]]),
			Feet:          walking,
			EqualsWalking: true,
		}})
	}
	for _, m := range baseWalking.FindAllStringSubmatchIndex(text, -1) {
		feet, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		all = append(all, found{m[0], rules.SpeedGrant{MovementType: TypeWalk, Feet: feet}})
	}

	var out []rules.SpeedGrant
	seen := map[string]bool{}
	for len(all) > 0 {
		first := 0
		for i := range all {
			if all[i].at < all[first].at {
				first = i
			}
		}
		grant := all[first].grant
		all = append(all[:first], all[first+1:]...)
		if grant.MovementType == "" || seen[grant.MovementType] {
			continue
		}
		seen[grant.MovementType] = true
		out = append(out, grant)
	}
	return out
}

// ParseBaseWalking reads "base walking speed is N feet"
func ParseBaseWalking(text string) (int, bool) {
	m := baseWalking.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	feet, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return feet, true
}

// ParseModifiers reads speed increases and activities that cost less
// movement than usual.
func ParseModifiers(text string) []rules.MovementModifier {
	var out []rules.MovementModifier

	for _, m := range speedIncrease.FindAllStringSubmatch(text, -1) {
		feet, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		kind := TypeWalk
		if m[1] != "" {
			kind = movementType(m[1])
		}
		mod := rules.MovementModifier{Type: rules.MovementSpeedBonus, Value: feet, MovementType: kind}
		if c := whileClause.FindStringSubmatch(m[3]); c != nil {
			mod.Condition = strings.TrimSpace(c[1])
		}
		out = append(out, mod)
	}

	if climbNoCost.MatchString(text) {
		out = append(out, rules.MovementModifier{Type: rules.MovementCost, Activity: ActivityClimbing, Cost: rules.CostNormal})
	}
	if swimNoCost.MatchString(text) {
		out = append(out, rules.MovementModifier{Type: rules.MovementCost, Activity: ActivitySwimming, Cost: rules.CostNormal})
	}
	if m := standUp.FindStringSubmatch(text); m != nil {
		out = append(out, rules.MovementModifier{Type: rules.MovementCost, Activity: ActivityStandingUp, Cost: m[1]})
	}
	if m := difficultTerrain.FindStringSubmatch(text); m != nil {
		mod := rules.MovementModifier{Type: rules.MovementCost, Activity: ActivityDifficultTerrain, Cost: rules.CostNormal}
		if m[1] != "" || m[2] != "" {
			mod.Condition = "nonmagical"
		}
		out = append(out, mod)
	}
	if m := runningJump.FindStringSubmatch(text); m != nil {
		out = append(out, rules.MovementModifier{Type: rules.MovementCost, Activity: ActivityRunningJump, Cost: m[1]})
	}
	return out
}
