package reference

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-ruletext/internal/entities/lookup"
)

//go:embed fallback.yaml
var fallbackYAML []byte

var fallbackTables = sync.OnceValue(func() map[lookup.Kind][]*lookup.Entry {
	tables, err := parseFallback(fallbackYAML)
	if err != nil {
		panic(fmt.Sprintf("reference: embedded fallback.yaml is invalid: %v", err))
	}
	return tables
})

func parseFallback(data []byte) (map[lookup.Kind][]*lookup.Entry, error) {
	var raw map[string][]*lookup.Entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	tables := make(map[lookup.Kind][]*lookup.Entry, len(raw))
	for name, entries := range raw {
		kind := lookup.Kind(name)
		if !kind.Valid() {
			return nil, fmt.Errorf("unknown kind %q", name)
		}
		for i, entry := range entries {
			if entry.Code == "" {
				return nil, fmt.Errorf("%s entry %d has no code", name, i)
			}
			if entry.ID == 0 {
				entry.ID = i + 1
			}
			if entry.Slug == "" {
				entry.Slug = Normalize(entry.Name)
			}
		}
		tables[kind] = entries
	}

	return tables, nil
}

// Fallback returns a copy of the static table for kind
func Fallback(kind lookup.Kind) []*lookup.Entry {
	static := fallbackTables()[kind]

	out := make([]*lookup.Entry, 0, len(static))
	for _, entry := range static {
		clone := *entry
		if entry.Aliases != nil {
			clone.Aliases = append([]string(nil), entry.Aliases...)
		}
		out = append(out, &clone)
	}

	return out
}
