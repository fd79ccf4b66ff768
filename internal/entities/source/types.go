// Package source defines the entity nodes read from sourcebook exports.
// Only the text fields and machine-readable progressions the extraction
// engine consumes are modeled.
package source

import "github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"

// Roll is a dice roll element. Level is nil when the roll does not scale;
// a cantrip roll at level 0 is its base damage.
type Roll struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Formula     string `json:"formula" yaml:"formula"`
	Level       *int   `json:"level,omitempty" yaml:"level,omitempty"`
}

// Fact converts the roll to its extracted form. A missing level becomes 0.
func (r Roll) Fact() rules.Roll {
	roll := rules.Roll{Description: r.Description, Formula: r.Formula}
	if r.Level != nil {
		roll.Level = *r.Level
	}
	return roll
}

// Facts converts every roll. The result is never nil.
func Facts(rolls []Roll) []rules.Roll {
	out := make([]rules.Roll, 0, len(rolls))
	for _, r := range rolls {
		out = append(out, r.Fact())
	}
	return out
}

// Modifier is a machine-readable modifier line such as "dexterity +1"
type Modifier struct {
	Category string `json:"category" yaml:"category"`
	Text     string `json:"text" yaml:"text"`
}

// Counter is a per-level resource value declared by the export
type Counter struct {
	Name     string `json:"name" yaml:"name"`
	Value    int    `json:"value" yaml:"value"`
	Reset    string `json:"reset,omitempty" yaml:"reset,omitempty"`
	Subclass string `json:"subclass,omitempty" yaml:"subclass,omitempty"`
}

// Slots is the comma separated spell slot string of one level, ordered
// cantrips,1st..9th. Optional slots only apply to a subclass.
type Slots struct {
	Values   string `json:"values" yaml:"values"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Feature is a class feature
type Feature struct {
	Name      string     `json:"name" yaml:"name"`
	Text      string     `json:"text" yaml:"text"`
	Optional  bool       `json:"optional,omitempty" yaml:"optional,omitempty"`
	Special   []string   `json:"special,omitempty" yaml:"special,omitempty"`
	Rolls     []Roll     `json:"rolls,omitempty" yaml:"rolls,omitempty"`
	Modifiers []Modifier `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
}

// Autolevel groups everything a class gains at one level
type Autolevel struct {
	Level            int       `json:"level" yaml:"level"`
	ScoreImprovement bool      `json:"score_improvement,omitempty" yaml:"score_improvement,omitempty"`
	Slots            *Slots    `json:"slots,omitempty" yaml:"slots,omitempty"`
	Features         []Feature `json:"features,omitempty" yaml:"features,omitempty"`
	Counters         []Counter `json:"counters,omitempty" yaml:"counters,omitempty"`
}

// Class is a character class node
type Class struct {
	Name         string      `json:"name" yaml:"name"`
	HitDie       int         `json:"hit_die,omitempty" yaml:"hit_die,omitempty"`
	Proficiency  string      `json:"proficiency,omitempty" yaml:"proficiency,omitempty"`
	NumSkills    int         `json:"num_skills,omitempty" yaml:"num_skills,omitempty"`
	Armor        string      `json:"armor,omitempty" yaml:"armor,omitempty"`
	Weapons      string      `json:"weapons,omitempty" yaml:"weapons,omitempty"`
	Tools        string      `json:"tools,omitempty" yaml:"tools,omitempty"`
	SpellAbility string      `json:"spell_ability,omitempty" yaml:"spell_ability,omitempty"`
	Autolevels   []Autolevel `json:"autolevels,omitempty" yaml:"autolevels,omitempty"`
}

// Trait is a racial or background trait
type Trait struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Text     string `json:"text" yaml:"text"`
	Rolls    []Roll `json:"rolls,omitempty" yaml:"rolls,omitempty"`
}

// Race is a race or subrace node
type Race struct {
	Name         string     `json:"name" yaml:"name"`
	Size         string     `json:"size,omitempty" yaml:"size,omitempty"`
	Speed        int        `json:"speed,omitempty" yaml:"speed,omitempty"`
	Ability      string     `json:"ability,omitempty" yaml:"ability,omitempty"`
	Proficiency  string     `json:"proficiency,omitempty" yaml:"proficiency,omitempty"`
	SpellAbility string     `json:"spell_ability,omitempty" yaml:"spell_ability,omitempty"`
	Resist       string     `json:"resist,omitempty" yaml:"resist,omitempty"`
	Traits       []Trait    `json:"traits,omitempty" yaml:"traits,omitempty"`
	Modifiers    []Modifier `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
}

// Background is a character background node
type Background struct {
	Name        string  `json:"name" yaml:"name"`
	Proficiency string  `json:"proficiency,omitempty" yaml:"proficiency,omitempty"`
	Traits      []Trait `json:"traits,omitempty" yaml:"traits,omitempty"`
}

// Feat is a feat node
type Feat struct {
	Name         string     `json:"name" yaml:"name"`
	Prerequisite string     `json:"prerequisite,omitempty" yaml:"prerequisite,omitempty"`
	Text         string     `json:"text" yaml:"text"`
	Proficiency  string     `json:"proficiency,omitempty" yaml:"proficiency,omitempty"`
	Modifiers    []Modifier `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
}

// Item is an item node
type Item struct {
	Name       string     `json:"name" yaml:"name"`
	Type       string     `json:"type,omitempty" yaml:"type,omitempty"`
	Detail     string     `json:"detail,omitempty" yaml:"detail,omitempty"`
	Magic      bool       `json:"magic,omitempty" yaml:"magic,omitempty"`
	Properties string     `json:"properties,omitempty" yaml:"properties,omitempty"`
	Strength   int        `json:"strength,omitempty" yaml:"strength,omitempty"`
	Stealth    bool       `json:"stealth,omitempty" yaml:"stealth,omitempty"`
	Text       string     `json:"text" yaml:"text"`
	Rolls      []Roll     `json:"rolls,omitempty" yaml:"rolls,omitempty"`
	Modifiers  []Modifier `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
}

// Spell is a spell node
type Spell struct {
	Name       string `json:"name" yaml:"name"`
	Level      int    `json:"level" yaml:"level"`
	School     string `json:"school,omitempty" yaml:"school,omitempty"`
	Components string `json:"components,omitempty" yaml:"components,omitempty"`
	Duration   string `json:"duration,omitempty" yaml:"duration,omitempty"`
	Classes    string `json:"classes,omitempty" yaml:"classes,omitempty"`
	Text       string `json:"text" yaml:"text"`
	Rolls      []Roll `json:"rolls,omitempty" yaml:"rolls,omitempty"`
}

// Bundle is one import batch worth of entities
type Bundle struct {
	Classes     []*Class      `json:"classes,omitempty" yaml:"classes,omitempty"`
	Races       []*Race       `json:"races,omitempty" yaml:"races,omitempty"`
	Backgrounds []*Background `json:"backgrounds,omitempty" yaml:"backgrounds,omitempty"`
	Feats       []*Feat       `json:"feats,omitempty" yaml:"feats,omitempty"`
	Items       []*Item       `json:"items,omitempty" yaml:"items,omitempty"`
	Spells      []*Spell      `json:"spells,omitempty" yaml:"spells,omitempty"`
}

// Size returns the number of entities in the bundle
func (b *Bundle) Size() int {
	if b == nil {
		return 0
	}
	return len(b.Classes) + len(b.Races) + len(b.Backgrounds) + len(b.Feats) + len(b.Items) + len(b.Spells)
}

// GetName returns the class name, or "" for a nil class
func (c *Class) GetName() string {
	if c == nil {
		return ""
	}
	return c.Name
}

// GetName returns the race name, or "" for a nil race
func (r *Race) GetName() string {
	if r == nil {
		return ""
	}
	return r.Name
}

// GetName returns the background name, or "" for a nil background
func (b *Background) GetName() string {
	if b == nil {
		return ""
	}
	return b.Name
}

// GetName returns the feat name, or "" for a nil feat
func (f *Feat) GetName() string {
	if f == nil {
		return ""
	}
	return f.Name
}

// GetName returns the item name, or "" for a nil item
func (i *Item) GetName() string {
	if i == nil {
		return ""
	}
	return i.Name
}

// GetName returns the spell name, or "" for a nil spell
func (s *Spell) GetName() string {
	if s == nil {
		return ""
	}
	return s.Name
}
