package ruletext

import (
	"strconv"
	"strings"
)

var numberWords = map[string]int{
	"a":       1,
	"an":      1,
	"any":     1,
	"one":     1,
	"single":  1,
	"two":     2,
	"several": 2,
	"three":   3,
	"four":    4,
	"five":    5,
	"six":     6,
	"seven":   7,
	"eight":   8,
	"nine":    9,
	"ten":     10,
	"twenty":  20,
}

// WordToNumber converts a number word or a run of digits to an int.
// Unrecognized tokens yield def.
func WordToNumber(word string, def int) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return def
	}

	if n, ok := numberWords[word]; ok {
		return n
	}

	if n, err := strconv.Atoi(word); err == nil {
		return n
	}

	return def
}

// NumberWordPattern is a regexp alternation matching every word WordToNumber
// knows plus digits, for embedding in larger patterns
const NumberWordPattern = `(?:\d+|an?|any|one|single|two|several|three|four|five|six|seven|eight|nine|ten|twenty)`

var ordinalWords = map[string]int{
	"first":   1,
	"second":  2,
	"third":   3,
	"fourth":  4,
	"fifth":   5,
	"sixth":   6,
	"seventh": 7,
	"eighth":  8,
	"ninth":   9,
	"tenth":   10,
}

// Ordinal parses "5th", "1st", "22nd" or "third" into its number
func Ordinal(text string) (int, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if n, ok := ordinalWords[text]; ok {
		return n, true
	}

	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if digits, found := strings.CutSuffix(text, suffix); found {
			n, err := strconv.Atoi(digits)
			if err != nil || n <= 0 {
				return 0, false
			}
			return n, true
		}
	}

	return 0, false
}

// OrdinalSuffix formats n as "1st", "2nd", "11th"
func OrdinalSuffix(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
