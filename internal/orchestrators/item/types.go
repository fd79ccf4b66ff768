package item

import (
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/rules"
	"github.com/KirkDiggler/rpg-ruletext/internal/entities/source"
)

// ExtractInput defines the request for extracting an item
type ExtractInput struct {
	Item *source.Item
}

// ExtractOutput defines the response for extracting an item
type ExtractOutput struct {
	Payload *Payload
}

// Payload is every fact extracted from one item. Proficiencies are the
// ones needed to use the item, not ones it grants. Lists are never nil.
type Payload struct {
	Name          string                         `json:"name"`
	Type          string                         `json:"type,omitempty"`
	Magic         bool                           `json:"magic"`
	Description   string                         `json:"description"`
	Modifiers     []rules.Modifier               `json:"modifiers"`
	Conditions    []rules.ConditionGrant         `json:"conditions"`
	Resistances   []rules.ResistanceGrant        `json:"resistances"`
	Proficiencies []rules.ProficiencyGrant       `json:"proficiencies"`
	Charges       *rules.ChargeMechanic          `json:"charges,omitempty"`
	SavingThrows  []rules.SavingThrowRequirement `json:"saving_throws"`
	RandomTables  []rules.RandomTable            `json:"random_tables"`
	Rolls         []rules.Roll                   `json:"rolls"`
	PackContents  []rules.PackItem               `json:"pack_contents"`
	Sources       []rules.SourceCitation         `json:"sources"`
}
