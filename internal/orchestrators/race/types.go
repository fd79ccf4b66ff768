package race

import (
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
)

// ExtractInput defines the request for extracting a race or subrace
type ExtractInput struct {
	Race *source.Race
}

// ExtractOutput defines the response for extracting a race or subrace
type ExtractOutput struct {
	Payload *Payload
}

// Trait is a racial trait with its citation stripped
type Trait struct {
	Name        string            `json:"name"`
	Category    string            `json:"category,omitempty"`
	Description string            `json:"description"`
	Rolls       []rules.Roll      `json:"rolls"`
	UsageLimit  *rules.UsageLimit `json:"usage_limit,omitempty"`
}

// Payload is every fact extracted from one race. BaseRace and Subrace are
// set only for "Base (Sub)" names. Lists are never nil.
type Payload struct {
	Name           string                         `json:"name"`
	BaseRace       string                         `json:"base_race,omitempty"`
	Subrace        string                         `json:"subrace,omitempty"`
	Size           string                         `json:"size,omitempty"`
	Modifiers      []rules.Modifier               `json:"modifiers"`
	AbilityChoices []rules.AbilityChoice          `json:"ability_choices"`
	Proficiencies  []rules.ProficiencyGrant       `json:"proficiencies"`
	Languages      []rules.LanguageGrant          `json:"languages"`
	Speeds         []rules.SpeedGrant             `json:"speeds"`
	Movement       []rules.MovementModifier       `json:"movement"`
	NaturalWeapons []rules.NaturalWeapon          `json:"natural_weapons"`
	UnarmoredAC    *rules.UnarmoredAC             `json:"unarmored_ac,omitempty"`
	Conditions     []rules.ConditionGrant         `json:"conditions"`
	Resistances    []rules.ResistanceGrant        `json:"resistances"`
	Traits         []Trait                        `json:"traits"`
	SavingThrows   []rules.SavingThrowRequirement `json:"saving_throws"`
	Spells         []rules.SpellGrant             `json:"spells"`
	Sources        []rules.SourceCitation         `json:"sources"`
}
