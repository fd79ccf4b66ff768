// Package lookup defines the reference data the extraction engine resolves
// names against.
package lookup

// Kind names one lookup table
type Kind string

// Lookup kinds
const (
	KindAbility         Kind = "ability"
	KindSkill           Kind = "skill"
	KindClass           Kind = "class"
	KindCondition       Kind = "condition"
	KindLanguage        Kind = "language"
	KindProficiencyType Kind = "proficiency_type"
	KindSource          Kind = "source"
	KindDamageType      Kind = "damage_type"
)

// AllKinds lists every lookup kind in warm-up order
var AllKinds = []Kind{
	KindAbility,
	KindSkill,
	KindClass,
	KindCondition,
	KindLanguage,
	KindProficiencyType,
	KindSource,
	KindDamageType,
}

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Entry is one row of a lookup table.
// Code is the canonical short form (STR, athletics, PHB); Slug is the
// normalized name used for fuzzy matching.
type Entry struct {
	ID       int      `json:"id" yaml:"id"`
	Code     string   `json:"code" yaml:"code"`
	Name     string   `json:"name" yaml:"name"`
	Slug     string   `json:"slug,omitempty" yaml:"slug,omitempty"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
	Ability  string   `json:"ability,omitempty" yaml:"ability,omitempty"`
	Aliases  []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}
