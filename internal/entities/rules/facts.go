// Package rules holds the structured facts extracted from rule text.
// Facts are plain values; none of them owns another fact and all of them
// serialize independently.
package rules

import "strconv"

// ModifierCategory classifies a Modifier
type ModifierCategory string

// Modifier categories
const (
	ModifierAbilityScore      ModifierCategory = "ability_score"
	ModifierSkill             ModifierCategory = "skill"
	ModifierSavingThrow       ModifierCategory = "saving_throw"
	ModifierAC                ModifierCategory = "ac"
	ModifierInitiative        ModifierCategory = "initiative"
	ModifierSpeed             ModifierCategory = "speed"
	ModifierHitPointsPerLevel ModifierCategory = "hit_points_per_level"
	ModifierPassiveScore      ModifierCategory = "passive_score"
	ModifierSpellAttack       ModifierCategory = "spell_attack"
	ModifierSpellDC           ModifierCategory = "spell_dc"
	ModifierAttackBonus       ModifierCategory = "attack_bonus"
	ModifierDamageBonus       ModifierCategory = "damage_bonus"
	ModifierBonus             ModifierCategory = "bonus"
	ModifierSetScore          ModifierCategory = "set_score"
)

// Modifier is a signed adjustment to an ability, skill or derived stat
type Modifier struct {
	Category  ModifierCategory `json:"category"`
	Target    string           `json:"target,omitempty"`
	Value     int              `json:"value"`
	Condition string           `json:"condition,omitempty"`
}

// ProficiencyKind is the broad kind of a proficiency
type ProficiencyKind string

// Proficiency kinds
const (
	ProficiencyWeapon      ProficiencyKind = "weapon"
	ProficiencyArmor       ProficiencyKind = "armor"
	ProficiencyTool        ProficiencyKind = "tool"
	ProficiencySkill       ProficiencyKind = "skill"
	ProficiencySavingThrow ProficiencyKind = "saving_throw"
)

// ProficiencyGrant grants, or offers a choice of, one proficiency.
// Name is always lower-case.
type ProficiencyGrant struct {
	Kind        ProficiencyKind `json:"kind"`
	Name        string          `json:"name"`
	TypeCode    string          `json:"type_code,omitempty"`
	IsChoice    bool            `json:"is_choice"`
	ChoiceGroup string          `json:"choice_group,omitempty"`
	Quantity    int             `json:"quantity"`
}

// ExpertiseGrant doubles the proficiency bonus for a skill or tool
type ExpertiseGrant struct {
	Skill             string `json:"skill,omitempty"`
	Tool              string `json:"tool,omitempty"`
	Ability           string `json:"ability,omitempty"`
	Condition         string `json:"condition,omitempty"`
	GrantsProficiency bool   `json:"grants_proficiency"`
}

// ResetTiming is when a limited resource comes back
type ResetTiming string

// Reset timings
const (
	ResetNone      ResetTiming = "none"
	ResetShortRest ResetTiming = "short_rest"
	ResetLongRest  ResetTiming = "long_rest"
	ResetDawn      ResetTiming = "dawn"
)

// Unlimited is the counter value for a resource with no cap
const Unlimited = -1

// CounterDefinition is the value of a named resource at one level
type CounterDefinition struct {
	Name     string      `json:"name"`
	Level    int         `json:"level"`
	Value    int         `json:"value"`
	Reset    ResetTiming `json:"reset"`
	Subclass string      `json:"subclass,omitempty"`
}

// Key identifies a counter for de-duplication
func (c CounterDefinition) Key() string {
	return c.Name + "|" + strconv.Itoa(c.Level) + "|" + c.Subclass
}

// UsageLimit is how often a trait or feature can be used
type UsageLimit struct {
	MaxUses     int         `json:"max_uses"`
	UsesFormula string      `json:"uses_formula,omitempty"`
	Reset       ResetTiming `json:"reset"`
}

// EquipmentKind says whether an equipment choice names an item or a category
type EquipmentKind string

// Equipment kinds
const (
	EquipmentItem     EquipmentKind = "item"
	EquipmentCategory EquipmentKind = "category"
)

// EquipmentChoice is one starting-equipment entry.
// Option is nil for items granted outright.
type EquipmentChoice struct {
	Group       string        `json:"group"`
	Option      *int          `json:"option"`
	Quantity    int           `json:"quantity"`
	Kind        EquipmentKind `json:"kind"`
	Value       string        `json:"value"`
	Description string        `json:"description,omitempty"`
}

// PackItem is one line of an equipment pack's contents
type PackItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// LanguageGrant grants a language, or a choice slot when Slug is empty
type LanguageGrant struct {
	Slug     string `json:"slug,omitempty"`
	IsChoice bool   `json:"is_choice"`
	Quantity int    `json:"quantity"`
}

// SaveEffect is what a successful save does
type SaveEffect string

// Saving throw effects
const (
	SaveNegates         SaveEffect = "negates"
	SaveHalfDamage      SaveEffect = "half_damage"
	SaveFullDamage      SaveEffect = "full_damage"
	SaveEndsEffect      SaveEffect = "ends_effect"
	SaveReducedDuration SaveEffect = "reduced_duration"
)

// SaveModifier is an advantage state on a saving throw
type SaveModifier string

// Saving throw modifiers
const (
	SaveModifierNone         SaveModifier = "none"
	SaveModifierAdvantage    SaveModifier = "advantage"
	SaveModifierDisadvantage SaveModifier = "disadvantage"
)

// SavingThrowRequirement is a saving throw demanded by a feature or spell.
// Effect is empty when the text does not say what a success does.
type SavingThrowRequirement struct {
	Ability   string       `json:"ability"`
	Effect    SaveEffect   `json:"effect,omitempty"`
	Recurring bool         `json:"recurring"`
	Modifier  SaveModifier `json:"modifier"`
}

// Key identifies a requirement for de-duplication
func (r SavingThrowRequirement) Key() string {
	recurring := "0"
	if r.Recurring {
		recurring = "1"
	}
	return r.Ability + "|" + recurring + "|" + string(r.Modifier)
}

// MovementModifierType separates movement costs from speed bonuses
type MovementModifierType string

// Movement modifier types
const (
	MovementCost       MovementModifierType = "movement_cost"
	MovementSpeedBonus MovementModifierType = "speed_bonus"
)

// CostNormal is the movement cost of an activity that costs no extra movement
const CostNormal = "normal"

// MovementModifier changes how movement is spent or how fast a creature is.
// Cost is either CostNormal or a number of feet.
type MovementModifier struct {
	Type         MovementModifierType `json:"type"`
	Activity     string               `json:"activity,omitempty"`
	Cost         string               `json:"cost,omitempty"`
	Value        int                  `json:"value,omitempty"`
	MovementType string               `json:"movement_type,omitempty"`
	Condition    string               `json:"condition,omitempty"`
}

// SpeedGrant is a movement mode and its speed in feet
type SpeedGrant struct {
	MovementType  string `json:"movement_type"`
	Feet          int    `json:"feet"`
	EqualsWalking bool   `json:"equals_walking,omitempty"`
}

// SpellSlotProgression is the spell slots available at one class level.
// Slots[0] is the number of 1st-level slots.
type SpellSlotProgression struct {
	Level       int    `json:"level"`
	Cantrips    int    `json:"cantrips"`
	Slots       [9]int `json:"slots"`
	SpellsKnown int    `json:"spells_known,omitempty"`
}

// SubclassSpells lists spells a subclass always has prepared from a level on
type SubclassSpells struct {
	Level  int      `json:"level"`
	Spells []string `json:"spells"`
}

// SubclassPartition is the slice of a class that belongs to one subclass
type SubclassPartition struct {
	Name       string                 `json:"name"`
	Archetype  string                 `json:"archetype,omitempty"`
	Features   []Feature              `json:"features"`
	Counters   []CounterDefinition    `json:"counters"`
	SpellSlots []SpellSlotProgression `json:"spell_slots"`
	Spells     []SubclassSpells       `json:"spells"`
}

// Roll is a dice roll attached to a feature, trait or item
type Roll struct {
	Description string `json:"description,omitempty"`
	Formula     string `json:"formula"`
	Level       int    `json:"level,omitempty"`
}

// Feature is a class feature after text processing
type Feature struct {
	Name        string      `json:"name"`
	Level       int         `json:"level"`
	Description string      `json:"description"`
	Optional    bool        `json:"optional"`
	SortOrder   int         `json:"sort_order"`
	Reset       ResetTiming `json:"reset,omitempty"`
	Rolls       []Roll      `json:"rolls"`
	Special     []string    `json:"special,omitempty"`
	Modifiers   []Modifier  `json:"modifiers"`
	Subclass    string      `json:"subclass,omitempty"`
}

// NaturalWeapon is an unarmed strike granted by a trait
type NaturalWeapon struct {
	Name       string `json:"name"`
	DamageDice string `json:"damage_dice"`
	DamageType string `json:"damage_type"`
	Ability    string `json:"ability,omitempty"`
}

// UnarmoredAC is an armor class formula that applies without armor.
// Ability is empty for flat formulas.
type UnarmoredAC struct {
	BaseAC        int    `json:"base_ac"`
	Ability       string `json:"ability,omitempty"`
	SecondAbility string `json:"second_ability,omitempty"`
	AllowsShield  bool   `json:"allows_shield"`
	ReplacesArmor bool   `json:"replaces_armor"`
}

// SpellChargeCost is a spell an item casts and what it costs in charges
type SpellChargeCost struct {
	Name        string `json:"name"`
	CostMin     int    `json:"cost_min"`
	CostMax     int    `json:"cost_max"`
	CostFormula string `json:"cost_formula,omitempty"`
}

// ChargeMechanic describes an item's charges and how they come back
type ChargeMechanic struct {
	Max             int               `json:"max"`
	RechargeFormula string            `json:"recharge_formula,omitempty"`
	RechargeTiming  ResetTiming       `json:"recharge_timing,omitempty"`
	Spells          []SpellChargeCost `json:"spells"`
}

// RandomTableEntry is one row of a roll table
type RandomTableEntry struct {
	RollMin int      `json:"roll_min"`
	RollMax int      `json:"roll_max"`
	Result  string   `json:"result"`
	Columns []string `json:"columns,omitempty"`
}

// RandomTable is a table embedded in rule text
type RandomTable struct {
	Name               string             `json:"name"`
	DiceType           string             `json:"dice_type,omitempty"`
	IsLevelProgression bool               `json:"is_level_progression,omitempty"`
	Entries            []RandomTableEntry `json:"entries"`
}

// ScalingType says what makes a spell effect grow
type ScalingType string

// Scaling types
const (
	ScalingNone           ScalingType = "none"
	ScalingCharacterLevel ScalingType = "character_level"
	ScalingSpellSlot      ScalingType = "spell_slot_level"
)

// EffectType classifies a spell effect
type EffectType string

// Effect types
const (
	EffectDamage  EffectType = "damage"
	EffectHealing EffectType = "healing"
	EffectOther   EffectType = "other"
)

// ProjectileScaling is the number of darts, rays or beams a spell creates
type ProjectileScaling struct {
	Count    int    `json:"count"`
	PerLevel int    `json:"per_level"`
	Name     string `json:"name"`
}

// SpellEffect is one roll of a spell with its scaling
type SpellEffect struct {
	Type              EffectType         `json:"type"`
	Description       string             `json:"description,omitempty"`
	DamageType        string             `json:"damage_type,omitempty"`
	DiceFormula       string             `json:"dice_formula"`
	ScalingType       ScalingType        `json:"scaling_type"`
	MinCharacterLevel int                `json:"min_character_level,omitempty"`
	MinSpellSlot      int                `json:"min_spell_slot,omitempty"`
	ScalingIncrement  string             `json:"scaling_increment,omitempty"`
	Projectiles       *ProjectileScaling `json:"projectiles,omitempty"`
}

// ConditionEffect is how a feature relates to a condition or roll type
type ConditionEffect string

// Condition effects
const (
	ConditionAdvantage          ConditionEffect = "advantage"
	ConditionDisadvantage       ConditionEffect = "disadvantage"
	ConditionImmunity           ConditionEffect = "immunity"
	ConditionNegateDisadvantage ConditionEffect = "negates_disadvantage"
)

// ConditionGrant is an advantage, disadvantage or immunity granted by text
type ConditionGrant struct {
	Effect    ConditionEffect `json:"effect"`
	Target    string          `json:"target"`
	Condition string          `json:"condition,omitempty"`
}

// ResistanceGrant is a damage resistance. DamageType "all" covers every type.
type ResistanceGrant struct {
	DamageType string `json:"damage_type"`
	Condition  string `json:"condition,omitempty"`
	Duration   string `json:"duration,omitempty"`
}

// PrerequisiteKind classifies a feat prerequisite
type PrerequisiteKind string

// Prerequisite kinds
const (
	PrerequisiteAbility     PrerequisiteKind = "ability_score"
	PrerequisiteProficiency PrerequisiteKind = "proficiency"
	PrerequisiteRace        PrerequisiteKind = "race"
	PrerequisiteClass       PrerequisiteKind = "class"
	PrerequisiteOther       PrerequisiteKind = "other"
)

// Prerequisite is one requirement of a feat. Prerequisites sharing a Group
// are alternatives (OR); different groups must all hold (AND).
type Prerequisite struct {
	Kind    PrerequisiteKind `json:"kind"`
	Target  string           `json:"target"`
	Minimum int              `json:"minimum,omitempty"`
	Group   int              `json:"group"`
}

// MulticlassRequirement is a minimum score needed to multiclass
type MulticlassRequirement struct {
	Ability string `json:"ability"`
	Minimum int    `json:"minimum"`
	IsOr    bool   `json:"is_or"`
}

// AbilityChoice lets the player pick ability scores to raise
type AbilityChoice struct {
	Count    int      `json:"count"`
	Value    int      `json:"value"`
	Options  []string `json:"options,omitempty"`
	Excludes []string `json:"excludes,omitempty"`
}

// SpellGrant is a spell a race or feat lets the character cast, or a
// choice of spells when IsChoice is set. MinLevel is the character level the
// spell becomes available at; MaxLevel caps the spell level of a choice.
type SpellGrant struct {
	Name        string      `json:"name,omitempty"`
	SpellList   string      `json:"spell_list,omitempty"`
	IsCantrip   bool        `json:"is_cantrip"`
	IsChoice    bool        `json:"is_choice"`
	ChoiceGroup string      `json:"choice_group,omitempty"`
	Quantity    int         `json:"quantity,omitempty"`
	MinLevel    int         `json:"min_level,omitempty"`
	MaxLevel    int         `json:"max_level,omitempty"`
	Schools     []string    `json:"schools,omitempty"`
	RitualOnly  bool        `json:"ritual_only,omitempty"`
	Reset       ResetTiming `json:"reset,omitempty"`
}

// SourceCitation is a book and page a piece of content is printed in
type SourceCitation struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Pages string `json:"pages,omitempty"`
}
