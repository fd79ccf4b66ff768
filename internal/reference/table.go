package reference

import (
	"strings"
	"unicode"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
)

// table indexes one lookup kind for the three matching passes
type table struct {
	entries []*lookup.Entry
	byCode  map[string]*lookup.Entry
	byName  map[string]*lookup.Entry
	byAlias map[string]*lookup.Entry
}

func newTable(entries []*lookup.Entry) *table {
	t := &table{
		entries: make([]*lookup.Entry, 0, len(entries)),
		byCode:  make(map[string]*lookup.Entry, len(entries)),
		byName:  make(map[string]*lookup.Entry, len(entries)),
		byAlias: make(map[string]*lookup.Entry),
	}

	for _, entry := range entries {
		if entry == nil {
			continue
		}
		t.entries = append(t.entries, entry)

		// first entry wins on collisions so table order decides
		putOnce(t.byCode, strings.ToLower(entry.Code), entry)
		putOnce(t.byName, Normalize(entry.Name), entry)
		if entry.Slug != "" {
			putOnce(t.byName, Normalize(entry.Slug), entry)
		}
		for _, alias := range entry.Aliases {
			putOnce(t.byAlias, Normalize(alias), entry)
		}
	}

	return t
}

func putOnce(index map[string]*lookup.Entry, key string, entry *lookup.Entry) {
	if key == "" {
		return
	}
	if _, ok := index[key]; !ok {
		index[key] = entry
	}
}

func (t *table) find(name string) (*lookup.Entry, bool) {
	name = strings.TrimSpace(name)

	if entry, ok := t.byCode[strings.ToLower(name)]; ok {
		return entry, true
	}

	normalized := Normalize(name)
	if entry, ok := t.byName[normalized]; ok {
		return entry, true
	}
	if entry, ok := t.byAlias[normalized]; ok {
		return entry, true
	}

	return nil, false
}

// Normalize lower-cases name, drops apostrophes and collapses every other
// run of non-alphanumeric characters into a single dash.
// "Thieves' Tools" becomes "thieves-tools".
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r == '\'' || r == '‘' || r == '’':
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
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
