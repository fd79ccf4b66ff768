package ruletext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
)

var diceFormula = regexp.MustCompile(`^(\d*)d(\d+)(?:\s*([+-])\s*(\d+))?$`)

// Dice is a parsed "NdM+K" formula
type Dice struct {
	Count    int
	Size     int
	Modifier int
}

// String formats the dice without spaces, "2d6+1"
func (d Dice) String() string {
	s := fmt.Sprintf("%dd%d", d.Count, d.Size)
	switch {
	case d.Modifier > 0:
		s += "+" + strconv.Itoa(d.Modifier)
	case d.Modifier < 0:
		s += strconv.Itoa(d.Modifier)
	}
	return s
}

// ParseDice parses a formula such as "d8", "2d6" or "1d6 + 1". The count
// and size are checked by building a toolkit roll so anything the roller
// would refuse is refused here too.
func ParseDice(formula string) (Dice, error) {
	m := diceFormula.FindStringSubmatch(strings.ToLower(strings.TrimSpace(formula)))
	if m == nil {
		return Dice{}, errors.InvalidArgumentf("invalid dice formula: %q", formula)
	}

	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Dice{}, errors.InvalidArgumentf("invalid dice count in formula: %q", formula)
		}
		count = n
	}

	size, err := strconv.Atoi(m[2])
	if err != nil {
		return Dice{}, errors.InvalidArgumentf("invalid die size in formula: %q", formula)
	}

	if count <= 0 || size <= 0 {
		return Dice{}, errors.InvalidArgumentf("dice count and size must be positive: %q", formula)
	}

	if _, err := dice.NewRoll(count, size); err != nil {
		return Dice{}, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "invalid dice formula: %q", formula)
	}

	d := Dice{Count: count, Size: size}
	if m[3] != "" {
		mod, err := strconv.Atoi(m[4])
		if err != nil {
			return Dice{}, errors.InvalidArgumentf("invalid modifier in formula: %q", formula)
		}
		if m[3] == "-" {
			mod = -mod
		}
		d.Modifier = mod
	}

	return d, nil
}

// NormalizeDice returns the canonical spelling of formula, or "" when it
// is not a valid dice formula
func NormalizeDice(formula string) string {
	d, err := ParseDice(formula)
	if err != nil {
		return ""
	}
	return d.String()
}
