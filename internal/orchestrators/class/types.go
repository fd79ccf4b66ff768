package class

import (
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
)

// ExtractInput defines the request for extracting a class
type ExtractInput struct {
	Class *source.Class
}

// ExtractOutput defines the response for extracting a class
type ExtractOutput struct {
	Payload *Payload
}

// Payload is every fact extracted from one class. Lists are never nil.
type Payload struct {
	Name                   string                         `json:"name"`
	HitDie                 int                            `json:"hit_die"`
	SpellcastingAbility    string                         `json:"spellcasting_ability,omitempty"`
	Archetype              string                         `json:"archetype,omitempty"`
	Proficiencies          []rules.ProficiencyGrant       `json:"proficiencies"`
	Features               []rules.Feature                `json:"features"`
	ScoreImprovementLevels []int                          `json:"score_improvement_levels"`
	MulticlassRequirements []rules.MulticlassRequirement  `json:"multiclass_requirements"`
	SpellSlots             []rules.SpellSlotProgression   `json:"spell_slots"`
	Counters               []rules.CounterDefinition      `json:"counters"`
	Subclasses             []rules.SubclassPartition      `json:"subclasses"`
	Equipment              []rules.EquipmentChoice        `json:"equipment"`
	Languages              []rules.LanguageGrant          `json:"languages"`
	SavingThrows           []rules.SavingThrowRequirement `json:"saving_throws"`
	Expertise              []rules.ExpertiseGrant         `json:"expertise"`
	Sources                []rules.SourceCitation         `json:"sources"`
}
