package feat

import (
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
)

// ExtractInput defines the request for extracting a feat
type ExtractInput struct {
	Feat *source.Feat
}

// ExtractOutput defines the response for extracting a feat
type ExtractOutput struct {
	Payload *Payload
}

// Payload is every fact extracted from one feat. Lists are never nil.
type Payload struct {
	Name           string                   `json:"name"`
	Description    string                   `json:"description"`
	Prerequisites  []rules.Prerequisite     `json:"prerequisites"`
	Proficiencies  []rules.ProficiencyGrant `json:"proficiencies"`
	Modifiers      []rules.Modifier         `json:"modifiers"`
	AbilityChoices []rules.AbilityChoice    `json:"ability_choices"`
	Conditions     []rules.ConditionGrant   `json:"conditions"`
	Resistances    []rules.ResistanceGrant  `json:"resistances"`
	Expertise      []rules.ExpertiseGrant   `json:"expertise"`
	Languages      []rules.LanguageGrant    `json:"languages"`
	Speeds         []rules.SpeedGrant       `json:"speeds"`
	Movement       []rules.MovementModifier `json:"movement"`
	UnarmoredAC    *rules.UnarmoredAC       `json:"unarmored_ac,omitempty"`
	UsageLimit     *rules.UsageLimit        `json:"usage_limit,omitempty"`
	Spells         []rules.SpellGrant       `json:"spells"`
	Sources        []rules.SourceCitation   `json:"sources"`
}
