package spell

import (
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
)

// ExtractInput defines the request for extracting a spell
type ExtractInput struct {
	Spell *source.Spell
}

// ExtractOutput defines the response for extracting a spell
type ExtractOutput struct {
	Payload *Payload
}

// Payload is every fact extracted from one spell. Classes holds the codes
// of the classes whose lists carry the spell. Lists are never nil.
type Payload struct {
	Name         string                         `json:"name"`
	Level        int                            `json:"level"`
	School       string                         `json:"school,omitempty"`
	Description  string                         `json:"description"`
	HigherLevels string                         `json:"higher_levels,omitempty"`
	Classes      []string                       `json:"classes"`
	Effects      []rules.SpellEffect            `json:"effects"`
	SavingThrows []rules.SavingThrowRequirement `json:"saving_throws"`
	RandomTables []rules.RandomTable            `json:"random_tables"`
	Sources      []rules.SourceCitation         `json:"sources"`
}
