package ruletext

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug folds name to ASCII and joins its words with dashes.
// "Mordenkainen's Sword" becomes "mordenkainens-sword", "Élan" becomes "elan".
func Slug(name string) string {
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r == '\'' || r == '’' || r == '‘':
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}

	return b.String()
}

// TitleCase capitalizes every word of s, "cure wounds" becomes "Cure Wounds".
// Apostrophes do not start a new word.
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(s)))
}

// UpperFirst capitalizes the first letter of s and leaves the rest alone
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Squash collapses whitespace runs to one space and trims s
func Squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
